package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/context-lens/internal/app"
	"github.com/Veraticus/context-lens/internal/cli"
	"github.com/Veraticus/context-lens/internal/model"
)

const historyPaneWidth = 32

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case ScreenLogin:
		return m.renderLogin()
	case ScreenMain:
		return m.renderMain()
	default:
		return m.theme.StatusPending.Render("Loading Context Lens...")
	}
}

func (m Model) renderLogin() string {
	form := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render(cli.LensIcon+" Welcome to Context Lens"),
		m.theme.Subtitle.Render("Snap a photo of anything broken and get a diagnosis."),
		"",
		m.theme.Bold.Render("Name"),
		m.userInput.View(),
		"",
		m.theme.Bold.Render("Preferred currency"),
		m.currencyInput.View(),
		"",
		cli.RenderCurrencies(strings.ToUpper(strings.TrimSpace(m.currencyInput.Value()))),
		"",
		m.theme.Subtitle.Render("Tab to switch fields • Enter to continue • Ctrl+C to quit"),
		m.renderStatusLine(),
	)
	return m.theme.FocusedPane.Render(form)
}

func (m Model) renderMain() string {
	header := m.renderHeader()

	history := m.renderHistory()
	workspaceWidth := max(m.width-historyPaneWidth-4, 30)
	workspace := m.renderWorkspace(workspaceWidth)

	body := lipgloss.JoinHorizontal(lipgloss.Top, history, workspace)

	footer := m.help.View(m.keymap)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderStatusLine(), footer)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render(cli.LensIcon + " Context Lens")
	if m.state.User == nil {
		return title
	}
	user := m.theme.Subtitle.Render(fmt.Sprintf("  %s · %s", m.state.User.Username, m.state.User.Currency))
	return title + user
}

func (m Model) renderHistory() string {
	lines := []string{
		m.theme.Bold.Render(fmt.Sprintf("History (%d/%d)", len(m.state.History), model.MaxHistoryItems)),
	}

	if len(m.state.History) == 0 {
		lines = append(lines, m.theme.StatusPending.Render("No history yet"))
	}

	now := m.config.Now()
	for i, item := range m.state.History {
		title := truncate(item.Title(), historyPaneWidth-6)
		line := fmt.Sprintf("%s\n  %s", title, cli.RelativeTime(item.Timestamp, now))

		switch {
		case i == m.cursor && m.focus == FocusHistory:
			line = m.theme.Selected.Render("› " + line)
		case item.ID == m.state.ActiveHistoryID:
			line = m.theme.Highlighted.Render("• " + line)
		default:
			line = "  " + line
		}
		lines = append(lines, line)
	}

	style := m.theme.Pane
	if m.focus == FocusHistory {
		style = m.theme.FocusedPane
	}
	return style.Width(historyPaneWidth).Render(strings.Join(lines, "\n"))
}

func (m Model) renderWorkspace(width int) string {
	var sections []string

	switch {
	case m.focus == FocusPath:
		sections = append(sections, m.theme.Bold.Render("Open image"), m.pathInput.View())
	case m.state.Image == nil:
		sections = append(sections, m.theme.StatusPending.Render("No image selected. Press o to open one."))
	default:
		label := fmt.Sprintf("Image: %s (%s)", m.state.Image.FileName, m.state.Image.MIMEType)
		if m.state.Image.Restored {
			label += " from history"
		}
		sections = append(sections, m.theme.Bold.Render(label))
	}

	switch {
	case m.focus == FocusNote:
		sections = append(sections, m.theme.Bold.Render("Note"), m.noteInput.View())
	case m.state.Note != "":
		sections = append(sections, m.theme.Normal.Render("Note: "+m.state.Note))
	}

	sections = append(sections, "", m.renderOutcome())

	return m.theme.Pane.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderOutcome shows the loading state, the failure, or the report.
func (m Model) renderOutcome() string {
	switch {
	case m.analyzing || m.state.Status == app.StatusRequesting:
		elapsed := m.elapsed()
		return lipgloss.JoinVertical(lipgloss.Left,
			m.spinner.View()+" "+m.theme.StatusInfo.Render(app.LoadingMessage(elapsed)),
			m.progress.ViewAs(app.LoadingProgress(elapsed)/100),
			m.theme.Subtitle.Render("Esc to cancel"),
		)
	case m.state.Status == app.StatusFailed:
		return m.theme.StatusError.Render(m.state.Error) + "\n" +
			m.theme.Subtitle.Render("Press a to try again.")
	case m.state.Result != nil:
		return cli.RenderReport(*m.state.Result)
	case m.state.Image != nil:
		return m.theme.Subtitle.Render("Press a to analyze, n to add a note.")
	default:
		return ""
	}
}

func (m Model) renderStatusLine() string {
	switch {
	case m.errText != "":
		return m.theme.StatusError.Render(cli.ErrorIcon + " " + m.errText)
	case m.notice != "":
		return m.theme.StatusSuccess.Render(cli.SuccessIcon + " " + m.notice)
	default:
		return ""
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if limit <= 1 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
