package tracking

import (
	"context"
)

// Recorder observes sink calls.
type Recorder interface {
	RecordCall(call, event string, err error)
}

type instrumentedSink struct {
	next     Sink
	recorder Recorder
}

// InstrumentSink wraps next so every call is reported to recorder. Errors
// are passed through unchanged. Page names are caller supplied and are not
// reported.
func InstrumentSink(next Sink, recorder Recorder) Sink {
	return &instrumentedSink{next: next, recorder: recorder}
}

func (s *instrumentedSink) Identify(ctx context.Context, userID string, traits Properties) error {
	err := s.next.Identify(ctx, userID, traits)
	s.recorder.RecordCall("identify", "", err)
	return err
}

func (s *instrumentedSink) Track(ctx context.Context, event string, properties Properties) error {
	err := s.next.Track(ctx, event, properties)
	s.recorder.RecordCall("track", event, err)
	return err
}

func (s *instrumentedSink) Page(ctx context.Context, name string, properties Properties) error {
	err := s.next.Page(ctx, name, properties)
	s.recorder.RecordCall("page", "", err)
	return err
}
