package main

import (
	"testing"

	"storefront/internal/api"
	"storefront/internal/tracking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSamplesTargetRegisteredRoutes(t *testing.T) {
	router := api.NewRouter(api.NewEventHandler(tracking.New(), "", nil, nil), nil)

	routes := map[string]bool{}
	for _, r := range router.Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	for name, s := range sampleEvents() {
		assert.True(t, routes["POST "+s.path], "sample %s posts to unknown route %s", name, s.path)
	}
}

func TestJourneyUsesKnownSamples(t *testing.T) {
	events := sampleEvents()
	for _, name := range journey {
		_, ok := events[name]
		assert.True(t, ok, name)
	}
}

func TestDemoCartValue(t *testing.T) {
	require.Len(t, demoCart(), 2)
	assert.InDelta(t, 49.48, tracking.CartValue(demoCart()), 1e-9)
}
