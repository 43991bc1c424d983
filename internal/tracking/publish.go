package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/pkg/middleware"
	"storefront/pkg/models"

	"github.com/google/uuid"
)

// EventPublisher defines the interface for publishing events.
type EventPublisher interface {
	Publish(routingKey string, body []byte, correlationID string) error
}

// PublisherSink delivers tracker calls as JSON envelopes over a broker.
type PublisherSink struct {
	Publisher EventPublisher
	now       func() time.Time
}

// NewPublisherSink creates a sink on top of pub.
func NewPublisherSink(pub EventPublisher) *PublisherSink {
	return &PublisherSink{Publisher: pub, now: time.Now}
}

// Identify implements Sink.
func (s *PublisherSink) Identify(ctx context.Context, userID string, traits Properties) error {
	return s.publish(ctx, models.Envelope{Type: models.CallIdentify, UserID: userID, Properties: traits})
}

// Track implements Sink.
func (s *PublisherSink) Track(ctx context.Context, event string, properties Properties) error {
	return s.publish(ctx, models.Envelope{Type: models.CallTrack, Event: event, Properties: properties})
}

// Page implements Sink.
func (s *PublisherSink) Page(ctx context.Context, name string, properties Properties) error {
	return s.publish(ctx, models.Envelope{Type: models.CallPage, Event: name, Properties: properties})
}

func (s *PublisherSink) publish(ctx context.Context, env models.Envelope) error {
	env.MessageID = uuid.New().String()
	env.CorrelationID = middleware.CorrelationIDFromContext(ctx)
	env.Timestamp = s.now().UTC()

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode %s envelope: %w", env.Type, err)
	}
	return s.Publisher.Publish(env.Type.RoutingKey(), body, env.CorrelationID)
}
