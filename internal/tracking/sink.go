package tracking

import (
	"context"
	"sync/atomic"
)

// Sink is the analytics collector the tracker forwards to.
type Sink interface {
	Identify(ctx context.Context, userID string, traits Properties) error
	Track(ctx context.Context, event string, properties Properties) error
	Page(ctx context.Context, name string, properties Properties) error
}

// sinkSlot is shared by a Tracker and every tracker derived with With, so a
// sink attached later becomes visible to all of them.
type sinkSlot struct {
	v atomic.Pointer[sinkBox]
}

type sinkBox struct {
	sink Sink
}

func (s *sinkSlot) load() Sink {
	if b := s.v.Load(); b != nil {
		return b.sink
	}
	return nil
}

func (s *sinkSlot) store(sink Sink) {
	if sink == nil {
		s.v.Store(nil)
		return
	}
	s.v.Store(&sinkBox{sink: sink})
}
