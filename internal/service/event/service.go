package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/mailtocall-api/pkg/circuitbreaker"
	"github.com/jwalitptl/mailtocall-api/pkg/messaging"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
	ActionPurged  = "purged"

	breakerMaxFailures = 5
	breakerTimeout     = 30 * time.Second
)

// Emitter publishes entity change events.
type Emitter interface {
	Emit(ctx context.Context, resource, action string, payload interface{})
}

type EventService struct {
	broker  messaging.Broker
	channel string
	breaker *circuitbreaker.CircuitBreaker
	now     func() time.Time
}

func NewEventService(broker messaging.Broker, channel string) *EventService {
	if broker == nil {
		broker = messaging.NopBroker{}
	}
	return &EventService{
		broker:  broker,
		channel: channel,
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "event-broker",
			MaxFailures: breakerMaxFailures,
			Timeout:     breakerTimeout,
		}),
		now: time.Now,
	}
}

// Emit publishes "<resource>.<action>". Delivery is best effort: a failed
// publish is logged and otherwise ignored, and after repeated failures
// events are dropped until the broker recovers.
func (s *EventService) Emit(ctx context.Context, resource, action string, payload interface{}) {
	msg := messaging.Message{
		ID:         uuid.NewString(),
		Type:       Type(resource, action),
		Payload:    payload,
		OccurredAt: s.now().UTC(),
	}

	err := s.breaker.Execute(func() error {
		return s.broker.Publish(ctx, s.channel, msg)
	})
	if errors.Is(err, circuitbreaker.ErrOpen) {
		log.Debug().Str("event_type", msg.Type).Msg("event broker unavailable, dropping event")
		return
	}
	if err != nil {
		log.Warn().
			Err(err).
			Str("event_type", msg.Type).
			Str("channel", s.channel).
			Msg("failed to publish event")
	}
}

func Type(resource, action string) string {
	return fmt.Sprintf("%s.%s", resource, action)
}
