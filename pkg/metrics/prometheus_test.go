package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)

	rec.RecordCall("track", "Cart Viewed", nil)
	rec.RecordCall("track", "Cart Viewed", nil)
	rec.RecordCall("track", "Cart Viewed", errors.New("down"))
	rec.RecordDropped("page", "Home")

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.calls.WithLabelValues("track", "Cart Viewed", OutcomeSent)))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.calls.WithLabelValues("track", "Cart Viewed", OutcomeFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.calls.WithLabelValues("page", "", OutcomeDropped)))
}

func TestRecorder_PageNamesDoNotGrowSeries(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)

	for i := 0; i < 200; i++ {
		name := fmt.Sprintf("page-%d", i)
		rec.RecordCall("page", name, nil)
		rec.RecordDropped("page", name)
	}

	assert.Equal(t, 2, testutil.CollectAndCount(rec.calls))
	assert.Equal(t, 200.0, testutil.ToFloat64(rec.calls.WithLabelValues("page", "", OutcomeSent)))
}
