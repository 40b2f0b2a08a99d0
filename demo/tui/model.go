package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"trustlens/types"
)

// State represents the demo state machine
type State string

const (
	StateInput     State = "input"
	StateAnalyzing State = "analyzing"
	StateComplete  State = "complete"
	StateError     State = "error"
)

// AnalysisCompleteMsg carries the finished result back into the update loop
type AnalysisCompleteMsg struct {
	Result *types.UnifiedResult
	Err    error
}

// Model represents the TUI client state (thin client over the analysis API)
type Model struct {
	Client *APIClient

	State       State
	ContentType string
	Input       string
	Result      *types.UnifiedResult
	Err         error
}

// NewModel creates a new TUI model
func NewModel(apiURL string) Model {
	return Model{
		Client:      NewAPIClient(apiURL),
		State:       StateInput,
		ContentType: "text",
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return nil
}

// analyze runs the API call off the update loop
func analyze(client *APIClient, contentType, input string) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Analyze(contentType, input)
		return AnalysisCompleteMsg{Result: result, Err: err}
	}
}
