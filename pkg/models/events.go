package models

import "time"

// Properties is a flat event payload.
type Properties map[string]any

// CallType is the kind of analytics call an envelope carries.
type CallType string

const (
	CallIdentify CallType = "identify"
	CallTrack    CallType = "track"
	CallPage     CallType = "page"
)

// RoutingKey returns the broker routing key for the call type.
func (c CallType) RoutingKey() string {
	return "analytics." + string(c)
}

// Envelope is one identify, track or page call as it travels over the broker.
type Envelope struct {
	MessageID     string     `json:"message_id"`
	CorrelationID string     `json:"correlation_id"`
	Type          CallType   `json:"type"`
	Event         string     `json:"event,omitempty"`
	UserID        string     `json:"user_id,omitempty"`
	Properties    Properties `json:"properties"`
	Timestamp     time.Time  `json:"timestamp"`
}

// Revenue extracts a numeric revenue property, if any.
func (e Envelope) Revenue() (float64, bool) {
	switch v := e.Properties["revenue"].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
