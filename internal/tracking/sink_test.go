package tracking

import (
	"context"
	"sync"
)

// call is one recorded sink invocation.
type call struct {
	Kind  string
	Name  string
	Props Properties
}

// spySink implements Sink for testing.
type spySink struct {
	mu    sync.Mutex
	calls []call
	err   error
}

func (s *spySink) record(kind, name string, props Properties) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call{Kind: kind, Name: name, Props: props})
	return s.err
}

func (s *spySink) Identify(_ context.Context, userID string, traits Properties) error {
	return s.record("identify", userID, traits)
}

func (s *spySink) Track(_ context.Context, event string, properties Properties) error {
	return s.record("track", event, properties)
}

func (s *spySink) Page(_ context.Context, name string, properties Properties) error {
	return s.record("page", name, properties)
}

func (s *spySink) last() call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[len(s.calls)-1]
}

func (s *spySink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}
