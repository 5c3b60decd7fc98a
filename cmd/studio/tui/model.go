// Package tui is the terminal dashboard for driving a codereel server.
// It polls the API for connectivity and capabilities, triggers lesson
// generation and lists the most recent renders.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// State tracks what the studio is currently doing.
type State int

const (
	StateReady State = iota
	StateGenerating
	StateDone
	StateFailed
)

const historyLimit = 8

// Model is the bubbletea model behind the studio dashboard.
type Model struct {
	Client    *StudioClient
	State     State
	Connected bool
	Caps      *AuthStatus
	Upload    bool
	Lessons   []Lesson
	Result    *GenerateResult
	Err       error
}

// NewModel creates the initial model pointed at the API under baseURL.
// Uploads default to on to match the server's own default.
func NewModel(baseURL string) Model {
	return Model{
		Client: NewStudioClient(baseURL),
		State:  StateReady,
		Upload: true,
	}
}

// Init kicks off the status poll and loads the first page of history.
func (m Model) Init() tea.Cmd {
	return tea.Batch(checkStatus(m.Client), fetchHistory(m.Client), tickCmd())
}
