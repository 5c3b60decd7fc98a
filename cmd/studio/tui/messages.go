package tui

import "time"

// StatusMsg carries a fresh snapshot of the API's auth and capability state.
type StatusMsg struct {
	Status *AuthStatus
	Err    error
}

// HistoryMsg carries the latest page of generated lessons.
type HistoryMsg struct {
	Lessons []Lesson
	Err     error
}

// GenerateDoneMsg reports a finished or failed generation run.
type GenerateDoneMsg struct {
	Result *GenerateResult
	Err    error
}

// TickMsg drives the periodic status poll.
type TickMsg struct {
	Time time.Time
}
