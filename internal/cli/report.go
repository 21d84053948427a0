package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/context-lens/internal/model"
)

// confidenceThreshold separates high-confidence reports from tentative ones.
const confidenceThreshold = 80

// RenderReport renders one analysis. Undecoded responses fall back to the raw text.
func RenderReport(resp model.FullAnalysisResponse) string {
	var sections []string

	if resp.Data != nil {
		sections = append(sections, renderResult(resp.Data)...)
	} else {
		raw := strings.TrimSpace(resp.RawText)
		if raw == "" {
			raw = "The model returned no text."
		}
		sections = append(sections,
			FormatWarning("The response could not be read as a structured report."),
			RenderBox("Raw Analysis", raw))
	}

	if len(resp.GroundingSources) > 0 {
		sections = append(sections, renderSources(resp.GroundingSources))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderResult(r *model.AnalysisResult) []string {
	name := r.ObjectName
	if name == "" {
		name = "Object Detected"
	}

	confidence := fmt.Sprintf("%d%% Confidence", r.ConfidenceScore)
	if r.ConfidenceScore > confidenceThreshold {
		confidence = SuccessStyle.Render(confidence)
	} else {
		confidence = WarningStyle.Render(confidence)
	}

	sections := []string{FormatTitle(name) + "  " + confidence}

	if r.HasSafetyWarning() {
		sections = append(sections, SafetyBoxStyle.Render(WarningIcon+" Safety Warning\n"+*r.SafetyWarning))
	}

	issue := BoldStyle.Render(r.IssueDetected)
	if r.Importance != "" {
		issue += "\n" + SubtitleStyle.Render(r.Importance)
	}
	sections = append(sections, issue)

	if len(r.LikelyCauses) > 0 {
		sections = append(sections, SectionStyle.Render("Likely Causes")+"\n"+bulletList(r.LikelyCauses))
	}
	if len(r.Steps) > 0 {
		sections = append(sections, SectionStyle.Render(ToolIcon+" How to Fix It")+"\n"+numberedList(r.Steps))
	}

	sections = append(sections, renderEstimates(r.Estimation), renderProducts(r))
	return sections
}

func renderEstimates(e model.Estimation) string {
	price := orNA(e.PriceRange)
	duration := orNA(e.TimeEstimate)
	return SectionStyle.Render("Estimates") + "\n" +
		fmt.Sprintf("  %s Estimated Cost: %s\n", MoneyIcon, BoldStyle.Render(price)) +
		fmt.Sprintf("  %s Time to Fix:    %s", ClockIcon, BoldStyle.Render(duration))
}

func renderProducts(r *model.AnalysisResult) string {
	header := SectionStyle.Render(CartIcon + " Parts & Tools")
	if shopping := r.ShoppingURL(); shopping != "" {
		return header + "\n" +
			fmt.Sprintf("  You might need parts like: %q\n", *r.ProductSearchQuery) +
			"  Find on Google Shopping: " + LinkStyle.Render(shopping)
	}
	return header + "\n" +
		"  No specific parts detected, but you can browse tools or related items.\n" +
		"  Search Solutions: " + LinkStyle.Render(r.FixSearchURL())
}

func renderSources(sources []model.GroundingSource) string {
	lines := make([]string, 0, len(sources))
	for _, s := range sources {
		title := s.Title
		if title == "" {
			title = "Source Link"
		}
		lines = append(lines, fmt.Sprintf("  %s %s\n    %s", LinkIcon, title, LinkStyle.Render(s.URI)))
	}
	return SectionStyle.Render("Sources") + "\n" + strings.Join(lines, "\n")
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "  • " + item
	}
	return strings.Join(lines, "\n")
}

func numberedList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("  %d. %s", i+1, item)
	}
	return strings.Join(lines, "\n")
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// RenderProfile renders the logged-in profile.
func RenderProfile(p *model.UserProfile) string {
	if p == nil {
		return FormatInfo("Not logged in. Run: lens login <username>")
	}
	content := fmt.Sprintf("Username: %s\nCurrency: %s\nSince:    %s",
		p.Username, p.Currency, p.CreatedAt.Local().Format("Jan 2, 2006"))
	return RenderBox("Profile", content)
}

// RenderCurrencies lists the currencies offered at login.
func RenderCurrencies(current string) string {
	lines := make([]string, 0, len(model.SupportedCurrencies))
	for _, c := range model.SupportedCurrencies {
		marker := "  "
		if c.Code == current {
			marker = SuccessStyle.Render(SuccessIcon + " ")
		}
		lines = append(lines, fmt.Sprintf("%s%s  %s", marker, BoldStyle.Render(c.Code), c.Label))
	}
	return strings.Join(lines, "\n")
}

// RelativeTime describes t relative to now for history listings.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	default:
		return t.Local().Format("Jan 2, 2006 15:04")
	}
}

// RenderHistoryList renders the history, most recent first.
func RenderHistoryList(items []model.HistoryItem, now time.Time) string {
	if len(items) == 0 {
		return SubtleStyle.Render("No history yet.")
	}

	lines := make([]string, 0, len(items))
	for i, item := range items {
		line := fmt.Sprintf("%2d. %s  %s  %s",
			i+1,
			BoldStyle.Render(item.Title()),
			SubtleStyle.Render(RelativeTime(item.Timestamp, now)),
			SubtleStyle.Render(item.ID))
		if item.Note != "" {
			line += "\n    " + SubtitleStyle.Render(fmt.Sprintf("%q", item.Note))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// RenderHistoryItem renders one past analysis with its note.
func RenderHistoryItem(item model.HistoryItem, now time.Time) string {
	header := SubtleStyle.Render(fmt.Sprintf("%s • %s", item.ID, RelativeTime(item.Timestamp, now)))
	if item.Note != "" {
		header += "\n" + SubtitleStyle.Render("Note: "+item.Note)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", RenderReport(item.Result))
}
