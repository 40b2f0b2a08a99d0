package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case AnalysisCompleteMsg:
		return m.handleAnalysisComplete(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.State == StateComplete || m.State == StateError {
			m.State = StateInput
			m.Input = ""
			m.Result = nil
			m.Err = nil
			return m, nil
		}
		return m, tea.Quit
	}

	if m.State != StateInput {
		return m, nil
	}

	switch msg.String() {
	case "tab":
		if m.ContentType == "text" {
			m.ContentType = "url"
		} else {
			m.ContentType = "text"
		}
	case "enter":
		if strings.TrimSpace(m.Input) == "" {
			return m, nil
		}
		m.State = StateAnalyzing
		return m, analyze(m.Client, m.ContentType, m.Input)
	case "backspace":
		if len(m.Input) > 0 {
			m.Input = m.Input[:len(m.Input)-1]
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.Input += string(msg.Runes)
		} else if msg.Type == tea.KeySpace {
			m.Input += " "
		}
	}
	return m, nil
}

// handleAnalysisComplete processes the API response
func (m Model) handleAnalysisComplete(msg AnalysisCompleteMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.State = StateComplete
	m.Result = msg.Result
	return m, nil
}
