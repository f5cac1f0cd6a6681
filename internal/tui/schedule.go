package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// schedule is a cancellable repeating timer. Restarting or stopping bumps the
// sequence so ticks already in flight are recognised as stale.
type schedule struct {
	every time.Duration
	seq   int
	on    bool
	msg   func(seq int) tea.Msg
}

func newSchedule(every time.Duration, msg func(seq int) tea.Msg) schedule {
	return schedule{every: every, msg: msg}
}

func (s *schedule) restart() tea.Cmd {
	s.seq++
	s.on = true
	seq, msg := s.seq, s.msg
	return tea.Tick(s.every, func(time.Time) tea.Msg { return msg(seq) })
}

func (s *schedule) stop() {
	s.seq++
	s.on = false
}

// current reports whether a tick with seq belongs to the running schedule.
func (s *schedule) current(seq int) bool {
	return s.on && seq == s.seq
}
