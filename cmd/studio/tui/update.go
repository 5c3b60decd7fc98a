package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Update handles incoming messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case TickMsg:
		return m, tea.Batch(checkStatus(m.Client), tickCmd())
	case StatusMsg:
		return m.handleStatus(msg)
	case HistoryMsg:
		return m.handleHistory(msg)
	case GenerateDoneMsg:
		return m.handleGenerateDone(msg)
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "g":
		if m.State == StateGenerating {
			return m, nil
		}
		m.State = StateGenerating
		m.Result = nil
		m.Err = nil
		return m, generateLesson(m.Client, m.Upload)
	case "u":
		if m.State != StateGenerating {
			m.Upload = !m.Upload
		}
		return m, nil
	case "r":
		return m, fetchHistory(m.Client)
	}
	return m, nil
}

func (m Model) handleStatus(msg StatusMsg) (tea.Model, tea.Cmd) {
	m.Connected = msg.Err == nil
	if msg.Status != nil {
		m.Caps = msg.Status
	}
	return m, nil
}

func (m Model) handleHistory(msg HistoryMsg) (tea.Model, tea.Cmd) {
	// A failed refresh keeps the last good list on screen.
	if msg.Err == nil {
		m.Lessons = msg.Lessons
	}
	return m, nil
}

func (m Model) handleGenerateDone(msg GenerateDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateFailed
		m.Err = msg.Err
		return m, nil
	}
	m.Result = msg.Result
	if !msg.Result.Success {
		m.State = StateFailed
		m.Err = errors.New(msg.Result.Error)
		return m, nil
	}
	m.State = StateDone
	m.Err = nil
	return m, fetchHistory(m.Client)
}
