package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Sink call outcomes.
const (
	OutcomeSent    = "sent"
	OutcomeFailed  = "failed"
	OutcomeDropped = "dropped"
)

// Recorder counts analytics sink calls.
type Recorder struct {
	calls *prometheus.CounterVec
}

// NewRecorder creates a Recorder and registers its collectors with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_analytics_calls_total",
				Help: "Total number of analytics calls by type, event and outcome.",
			},
			[]string{"call", "event", "outcome"},
		),
	}
	reg.MustRegister(r.calls)
	return r
}

// RecordCall counts a call that reached the sink.
func (r *Recorder) RecordCall(call, event string, err error) {
	outcome := OutcomeSent
	if err != nil {
		outcome = OutcomeFailed
	}
	r.calls.WithLabelValues(call, eventLabel(call, event), outcome).Inc()
}

// RecordDropped counts a call made while no sink was attached.
func (r *Recorder) RecordDropped(call, event string) {
	r.calls.WithLabelValues(call, eventLabel(call, event), OutcomeDropped).Inc()
}

// eventLabel keeps the label set bounded: only track calls carry a name from
// the fixed event list, page names and identify calls collapse to "".
func eventLabel(call, event string) string {
	if call != "track" {
		return ""
	}
	return event
}

// MetricsHandler returns the HTTP handler exposing the default registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
