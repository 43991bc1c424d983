package tracking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	call  string
	event string
	err   error
}

type fakeRecorder struct {
	calls []recordedCall
}

func (f *fakeRecorder) RecordCall(call, event string, err error) {
	f.calls = append(f.calls, recordedCall{call: call, event: event, err: err})
}

func TestInstrumentSink(t *testing.T) {
	inner := &spySink{}
	rec := &fakeRecorder{}
	sink := InstrumentSink(inner, rec)
	ctx := context.Background()

	require.NoError(t, sink.Identify(ctx, "u1", nil))
	require.NoError(t, sink.Track(ctx, EventCartViewed, nil))
	require.NoError(t, sink.Page(ctx, "Home", nil))

	assert.Equal(t, 3, inner.count())
	require.Len(t, rec.calls, 3)
	assert.Equal(t, recordedCall{call: "identify"}, rec.calls[0])
	assert.Equal(t, recordedCall{call: "track", event: EventCartViewed}, rec.calls[1])
	assert.Equal(t, recordedCall{call: "page"}, rec.calls[2])
	assert.Equal(t, "Home", inner.last().Name)
}

func TestInstrumentSink_PassesErrorThrough(t *testing.T) {
	boom := errors.New("boom")
	inner := &spySink{err: boom}
	rec := &fakeRecorder{}

	err := InstrumentSink(inner, rec).Track(context.Background(), EventOrderCompleted, nil)

	assert.Same(t, boom, err)
	require.Len(t, rec.calls, 1)
	assert.Same(t, boom, rec.calls[0].err)
}
