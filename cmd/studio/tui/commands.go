package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const statusPollInterval = 2 * time.Second

// checkStatus returns a command that polls the API status endpoint.
func checkStatus(client *StudioClient) tea.Cmd {
	return func() tea.Msg {
		status, err := client.AuthStatus()
		return StatusMsg{Status: status, Err: err}
	}
}

// fetchHistory returns a command that loads the recent lesson list.
func fetchHistory(client *StudioClient) tea.Cmd {
	return func() tea.Msg {
		lessons, err := client.History(historyLimit)
		return HistoryMsg{Lessons: lessons, Err: err}
	}
}

// generateLesson returns a command that runs one AI generation end to end.
func generateLesson(client *StudioClient, upload bool) tea.Cmd {
	return func() tea.Msg {
		result, err := client.GenerateAI(upload)
		return GenerateDoneMsg{Result: result, Err: err}
	}
}

// tickCmd returns a command that ticks on the status poll interval.
func tickCmd() tea.Cmd {
	return tea.Tick(statusPollInterval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
