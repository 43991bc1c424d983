package main

import (
	"context"
	"testing"

	"storefront/internal/tracking"
	"storefront/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type nopSink struct{}

func (nopSink) Identify(context.Context, string, tracking.Properties) error { return nil }
func (nopSink) Track(context.Context, string, tracking.Properties) error    { return nil }
func (nopSink) Page(context.Context, string, tracking.Properties) error     { return nil }

type countingCloser struct {
	closed int
}

func (c *countingCloser) Close() error {
	c.closed++
	return nil
}

func TestSinkLifecycle_AttachThenShutdown(t *testing.T) {
	tr := tracking.New()
	l := &sinkLifecycle{tracker: tr}
	closer := &countingCloser{}

	require.True(t, l.attach(nopSink{}, closer))
	assert.True(t, tr.Ready())

	require.NoError(t, l.shutdown())
	assert.False(t, tr.Ready())
	assert.Equal(t, 1, closer.closed)

	require.NoError(t, l.shutdown())
	assert.Equal(t, 1, closer.closed)
}

func TestSinkLifecycle_LateConnectAfterShutdown(t *testing.T) {
	tr := tracking.New()
	l := &sinkLifecycle{tracker: tr}
	require.NoError(t, l.shutdown())

	closer := &countingCloser{}
	assert.False(t, l.attach(nopSink{}, closer))
	assert.False(t, tr.Ready())
	assert.Equal(t, 1, closer.closed)
}

func TestCloseAll(t *testing.T) {
	a, b := &countingCloser{}, &countingCloser{}
	require.NoError(t, closeAll{a, b}.Close())
	assert.Equal(t, 1, a.closed)
	assert.Equal(t, 1, b.closed)
}

func TestConnectPublisher_Drivers(t *testing.T) {
	pub, closer, err := connectPublisher(context.Background(), &config.Config{SinkDriver: "none"}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, pub)
	assert.Nil(t, closer)

	_, _, err = connectPublisher(context.Background(), &config.Config{SinkDriver: "carrier-pigeon"}, zap.NewNop())
	assert.ErrorContains(t, err, "unknown sink driver")
}
