// Package tui implements the interactive single-screen interface on bubbletea.
package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/context-lens/internal/app"
	"github.com/Veraticus/context-lens/internal/common"
	"github.com/Veraticus/context-lens/internal/config"
	"github.com/Veraticus/context-lens/internal/model"
	"github.com/Veraticus/context-lens/internal/tui/themes"
)

// Screen is the top-level page shown.
type Screen int

// Screens.
const (
	ScreenLoading Screen = iota
	ScreenLogin
	ScreenMain
)

// Focus is the element receiving key presses.
type Focus int

// Focus targets.
const (
	FocusHistory Focus = iota
	FocusPath
	FocusNote
	FocusUsername
	FocusCurrency
)

// Model holds the main TUI state. Application state lives in the controller;
// state is the latest snapshot of it.
type Model struct {
	ctx           context.Context
	ctrl          *app.Controller
	theme         themes.Theme
	spinner       spinner.Model
	progress      progress.Model
	help          help.Model
	pathInput     textinput.Model
	noteInput     textinput.Model
	userInput     textinput.Model
	currencyInput textinput.Model
	config        Config
	keymap        KeyMap
	notice        string
	errText       string
	state         app.State
	height        int
	width         int
	cursor        int
	focus         Focus
	screen        Screen
	analyzing     bool
	showHelp      bool
	quitting      bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, ctrl *app.Controller, cfg Config) Model {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = s.Style.Foreground(cfg.Theme.Primary)

	userInput := newInput(cfg, "Your name", 64)
	currencyInput := newInput(cfg, model.DefaultCurrency, 3)
	currencyInput.SetValue(model.DefaultCurrency)

	return Model{
		ctx:           ctx,
		ctrl:          ctrl,
		config:        cfg,
		theme:         cfg.Theme,
		keymap:        DefaultKeyMap(),
		spinner:       s,
		progress:      progress.New(progress.WithSolidFill(string(cfg.Theme.Primary)), progress.WithWidth(30)),
		help:          help.New(),
		pathInput:     newInput(cfg, "~/Pictures/photo.jpg", 512),
		noteInput:     newInput(cfg, "Optional note, e.g. cracked screen", 280),
		userInput:     userInput,
		currencyInput: currencyInput,
		width:         cfg.Width,
		height:        cfg.Height,
		screen:        ScreenLoading,
		focus:         FocusHistory,
		state:         app.State{History: []model.HistoryItem{}},
	}
}

func newInput(cfg Config, placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = "› "
	if !cfg.Animations {
		ti.Cursor.SetMode(cursor.CursorStatic)
	}
	return ti
}

// Init loads the persisted state.
func (m Model) Init() tea.Cmd {
	return m.loadState()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case stateLoadedMsg:
		m.refresh()
		if msg.err != nil {
			m.errText = describeError(msg.err)
		}
		return m, m.enterScreen()

	case actionDoneMsg:
		m.refresh()
		m.setOutcome(msg.err, msg.notice)
		return m, m.enterScreen()

	case analysisDoneMsg:
		m.analyzing = false
		m.refresh()
		m.cursor = 0
		switch {
		case msg.err == nil:
			m.notice = "Analysis complete."
		case errors.Is(msg.err, common.ErrAnalysisCanceled):
			m.notice = "Analysis canceled."
		case m.state.Status == app.StatusFailed:
			// The failure message is part of the state and rendered with the result area.
		default:
			m.errText = describeError(msg.err)
		}
		return m, nil

	case loadingTickMsg:
		m.refresh()
		if m.analyzing {
			return m, m.tickLoading()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.analyzing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocusedInput(msg)
}

// handleKey routes a key press by screen and focus.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		return m.quit()
	}

	switch {
	case m.screen == ScreenLogin:
		return m.handleLoginKey(msg)
	case m.screen != ScreenMain:
		return m, nil
	case m.focus == FocusPath || m.focus == FocusNote:
		return m.handleInputKey(msg)
	default:
		return m.handleMainKey(msg)
	}
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.NextField):
		if m.focus == FocusUsername {
			return m, m.focusOn(FocusCurrency)
		}
		return m, m.focusOn(FocusUsername)

	case key.Matches(msg, m.keymap.Submit):
		username := m.userInput.Value()
		currency := m.currencyInput.Value()
		m.errText = ""
		return m, m.runAction("Welcome, "+strings.TrimSpace(username)+"!", func(ctx context.Context) error {
			return m.ctrl.Login(ctx, username, currency)
		})
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		return m, m.focusOn(FocusHistory)

	case key.Matches(msg, m.keymap.Submit):
		var err error
		if m.focus == FocusPath {
			path := config.ExpandPath(strings.TrimSpace(m.pathInput.Value()))
			err = m.ctrl.SelectFile(path)
			if err == nil {
				m.notice = "Image selected. Press a to analyze."
			}
		} else {
			err = m.ctrl.SetNote(m.noteInput.Value())
		}
		m.refresh()
		if err != nil {
			m.errText = describeError(err)
			return m, nil
		}
		m.errText = ""
		return m, m.focusOn(FocusHistory)
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m.quit()

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keymap.Cancel):
		if m.analyzing && m.ctrl.Cancel() {
			m.refresh()
			m.notice = "Canceling analysis..."
			return m, nil
		}
		m.notice, m.errText = "", ""
		return m, nil

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.state.History)-1 {
			m.cursor++
		}
		return m, nil
	}

	if m.analyzing {
		if key.Matches(msg, m.keymap.Open, m.keymap.Note, m.keymap.Analyze, m.keymap.Clear,
			m.keymap.Select, m.keymap.Delete, m.keymap.ClearHistory, m.keymap.Logout) {
			m.errText = describeError(common.ErrAnalysisInFlight)
		}
		return m, nil
	}

	m.notice, m.errText = "", ""

	switch {
	case key.Matches(msg, m.keymap.Open):
		m.pathInput.SetValue("")
		return m, m.focusOn(FocusPath)

	case key.Matches(msg, m.keymap.Note):
		m.noteInput.SetValue(m.state.Note)
		m.noteInput.CursorEnd()
		return m, m.focusOn(FocusNote)

	case key.Matches(msg, m.keymap.Analyze):
		if m.state.Image == nil {
			m.errText = describeError(common.ErrNoImageSelected)
			return m, nil
		}
		m.analyzing = true
		cmds := []tea.Cmd{m.submitAnalysis(), m.tickLoading()}
		if m.config.Animations {
			cmds = append(cmds, m.spinner.Tick)
		}
		return m, tea.Batch(cmds...)

	case key.Matches(msg, m.keymap.Clear):
		if err := m.ctrl.ClearSelection(); err != nil {
			m.errText = describeError(err)
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.Select):
		item, ok := m.highlighted()
		if !ok {
			return m, nil
		}
		if err := m.ctrl.SelectHistoryItem(item.ID); err != nil {
			m.errText = describeError(err)
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.Delete):
		item, ok := m.highlighted()
		if !ok {
			return m, nil
		}
		return m, m.runAction("Deleted "+item.Title()+".", func(ctx context.Context) error {
			return m.ctrl.DeleteHistoryItem(ctx, item.ID)
		})

	case key.Matches(msg, m.keymap.ClearHistory):
		return m, m.runAction("History cleared.", m.ctrl.ClearHistory)

	case key.Matches(msg, m.keymap.Logout):
		return m, m.runAction("Logged out.", m.ctrl.Logout)
	}

	return m, nil
}

// updateFocusedInput forwards a message to the focused text input.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	input := m.input(m.focus)
	if input == nil {
		return m, nil
	}
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	return m, cmd
}

func (m *Model) input(f Focus) *textinput.Model {
	switch f {
	case FocusPath:
		return &m.pathInput
	case FocusNote:
		return &m.noteInput
	case FocusUsername:
		return &m.userInput
	case FocusCurrency:
		return &m.currencyInput
	default:
		return nil
	}
}

// focusOn moves focus, blurring every other input.
func (m *Model) focusOn(f Focus) tea.Cmd {
	for _, other := range []Focus{FocusPath, FocusNote, FocusUsername, FocusCurrency} {
		if other != f {
			m.input(other).Blur()
		}
	}
	m.focus = f
	if input := m.input(f); input != nil {
		return input.Focus()
	}
	return nil
}

// enterScreen picks login or main from the login state.
func (m *Model) enterScreen() tea.Cmd {
	if m.state.LoggedIn() {
		if m.screen != ScreenMain {
			m.screen = ScreenMain
			return m.focusOn(FocusHistory)
		}
		return nil
	}
	if m.screen != ScreenLogin {
		m.screen = ScreenLogin
		m.userInput.SetValue("")
		return m.focusOn(FocusUsername)
	}
	return nil
}

func (m *Model) refresh() {
	m.state = m.ctrl.Snapshot()
	if m.cursor >= len(m.state.History) {
		m.cursor = max(len(m.state.History)-1, 0)
	}
}

func (m *Model) setOutcome(err error, notice string) {
	if err != nil {
		m.errText = describeError(err)
		m.notice = ""
		return
	}
	m.errText = ""
	m.notice = notice
}

func (m Model) highlighted() (model.HistoryItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.History) {
		return model.HistoryItem{}, false
	}
	return m.state.History[m.cursor], true
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.analyzing {
		m.ctrl.Cancel()
	}
	m.quitting = true
	return m, tea.Quit
}

// elapsed is the time since the outstanding analysis started.
func (m Model) elapsed() time.Duration {
	if m.state.RequestStarted.IsZero() {
		return 0
	}
	return m.config.Now().Sub(m.state.RequestStarted)
}

func describeError(err error) string {
	msg := common.UserMessage(err, "")
	if msg != "" {
		return msg
	}
	return err.Error()
}
