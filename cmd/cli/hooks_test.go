package main

import (
	"context"
	"testing"

	"storefront/internal/storefront"
	"storefront/internal/tracking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spySink struct {
	tracks []string
	pages  []tracking.Properties
}

func (s *spySink) Identify(context.Context, string, tracking.Properties) error { return nil }

func (s *spySink) Track(_ context.Context, event string, _ tracking.Properties) error {
	s.tracks = append(s.tracks, event)
	return nil
}

func (s *spySink) Page(_ context.Context, name string, props tracking.Properties) error {
	if name == storefront.BrandShopPage {
		s.pages = append(s.pages, props)
	}
	return nil
}

func TestHookSteps_OnlyTransitionsReachSink(t *testing.T) {
	sink := &spySink{}
	h := newStorefrontHooks(tracking.New(tracking.WithSink(sink)))

	h.run(context.Background(), h.steps())

	assert.Equal(t, []string{tracking.EventCartViewed, tracking.EventCartViewed}, sink.tracks)
	require.Len(t, sink.pages, 2)
	assert.Equal(t, "acme", sink.pages[0]["brand"])
	assert.Equal(t, "globex", sink.pages[1]["brand"])
}

func TestHookSteps_DetachedTrackerDropsQuietly(t *testing.T) {
	h := newStorefrontHooks(tracking.New())
	for _, s := range h.steps() {
		assert.NoError(t, s.run(context.Background()), s.label)
	}
}

func TestStoreLocation(t *testing.T) {
	assert.Equal(t, tracking.Location{Protocol: "https:", Host: "shop.example.com"}, storeLocation("https://shop.example.com"))
	assert.Equal(t, tracking.Location{Protocol: "http:", Host: "localhost"}, storeLocation("not a url"))
}
