package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timerFiredMsg carries a scheduled callback back into Update, so every
// game callback runs on the program's event loop.
type timerFiredMsg struct {
	fn func()
}

// teaScheduler turns scheduled callbacks into tea.Tick commands. Callers
// collect the commands with Flush at the end of each Update.
type teaScheduler struct {
	pending []tea.Cmd
}

func (s *teaScheduler) After(d time.Duration, fn func()) {
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return timerFiredMsg{fn: fn}
	}))
}

func (s *teaScheduler) Now() time.Time {
	return time.Now()
}

// Flush returns the commands scheduled since the last call.
func (s *teaScheduler) Flush() tea.Cmd {
	cmds := s.pending
	s.pending = nil
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}
