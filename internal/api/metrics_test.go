package api

import (
	"fmt"
	"net/http"
	"testing"

	"storefront/internal/tracking"
	"storefront/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPage_DistinctNamesKeepMetricSeriesBounded(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)
	tr := tracking.New()
	router := NewRouter(NewEventHandler(tr, "", rec, zap.NewNop()), nil)

	// Dropped while detached, then sent once a sink is attached.
	for i := 0; i < 100; i++ {
		w := post(router, "/page", fmt.Sprintf(`{"name":"landing-%d"}`, i))
		require.Equal(t, http.StatusAccepted, w.Code)
	}
	sink := &spySink{}
	tr.Attach(tracking.InstrumentSink(sink, rec))
	for i := 0; i < 100; i++ {
		w := post(router, "/page", fmt.Sprintf(`{"name":"landing-%d"}`, i))
		require.Equal(t, http.StatusAccepted, w.Code)
	}

	count, err := testutil.GatherAndCount(reg, "storefront_analytics_calls_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, sink.calls, 100)
	assert.Equal(t, "landing-99", sink.calls[99].Name)
}
