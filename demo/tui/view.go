package tui

import (
	"fmt"
	"strings"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render("🔎 TrustLens Demo"))
	b.WriteString("\n\n")

	switch m.State {
	case StateInput:
		b.WriteString(HighlightStyle.Render(fmt.Sprintf("Mode: %s", m.ContentType)))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("Type content to analyze:"))
		b.WriteString("\n")
		b.WriteString("> " + m.Input + "█")
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("Enter to analyze | Tab to switch text/url | Esc to quit"))

	case StateAnalyzing:
		b.WriteString(InfoStyle.Render("⏳ Analyzing..."))

	case StateComplete:
		b.WriteString(BoxStyle.Render(m.formatResult()))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("Esc to analyze something else | Ctrl+C to quit"))

	case StateError:
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("❌ Error: %v", m.Err)))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("Esc to try again | Ctrl+C to quit"))
	}

	b.WriteString("\n")
	return b.String()
}

// formatResult renders the unified result box
func (m Model) formatResult() string {
	r := m.Result
	var b strings.Builder

	b.WriteString(LabelStyle(string(r.Label)).Render(string(r.Label)))
	b.WriteString("  " + r.OneLineDescription)
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Source Integrity:     %3d/100\n", r.Scores.SourceIntegrity))
	b.WriteString(fmt.Sprintf("Content Authenticity: %3d/100\n", r.Scores.ContentAuthenticity))
	b.WriteString(fmt.Sprintf("Trust Explainability: %3d/100\n", r.Scores.TrustExplainability))
	b.WriteString("\n")

	if r.Summary != "" {
		b.WriteString(r.Summary)
		b.WriteString("\n\n")
	}

	if len(r.Claims) > 0 {
		b.WriteString(fmt.Sprintf("Claims checked: %d\n", len(r.Claims)))
		for _, claim := range r.Claims {
			preview := claim.Text
			if len(preview) > 70 {
				preview = preview[:70] + "..."
			}
			b.WriteString(fmt.Sprintf("  [%s] %s\n", claim.Verdict, preview))
		}
		b.WriteString("\n")
	}

	if len(r.Sources) > 0 {
		b.WriteString("Sources:\n")
		for _, s := range r.Sources {
			b.WriteString(InfoStyle.Render(fmt.Sprintf("  %s (%.2f)\n", s.URL, s.Credibility)))
		}
	}

	if r.EducationalInsight != "" {
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("💡 " + r.EducationalInsight))
	}

	return b.String()
}
