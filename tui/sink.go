package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"housing-dashboard/models"
)

// Sink is a renderer that keeps the latest snapshot for the UI and wakes
// the event loop without ever blocking the caller.
type Sink struct {
	mu     sync.Mutex
	latest models.Snapshot
	ready  chan struct{}
}

// NewSink creates an empty Sink.
func NewSink() *Sink {
	return &Sink{ready: make(chan struct{}, 1)}
}

func (s *Sink) Render(snap models.Snapshot) {
	s.mu.Lock()
	s.latest = snap
	s.mu.Unlock()

	select {
	case s.ready <- struct{}{}:
	default:
	}
}

// Latest returns the most recent snapshot.
func (s *Sink) Latest() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

type snapshotMsg struct{}

func (s *Sink) wait() tea.Cmd {
	return func() tea.Msg {
		<-s.ready
		return snapshotMsg{}
	}
}
