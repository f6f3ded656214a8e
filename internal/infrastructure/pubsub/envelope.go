// Package pubsub publishes domain events to the configured bus.
package pubsub

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/modorifa/rifas/internal/domain/shared/events"
)

// Envelope is the wire format shared by every bus driver. Payload carries
// the event's own JSON.
type Envelope struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	InstanceID  string          `json:"instance_id,omitempty"`
	Payload     json.RawMessage `json:"payload"`
}

func newEnvelope(event events.DomainEvent, instanceID string) (*Envelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", event.GetEventType(), err)
	}
	return &Envelope{
		ID:          uuid.NewString(),
		Type:        event.GetEventType(),
		AggregateID: event.GetAggregateID(),
		OccurredAt:  event.GetOccurredAt(),
		InstanceID:  instanceID,
		Payload:     payload,
	}, nil
}

func encode(event events.DomainEvent, instanceID string) ([]byte, *Envelope, error) {
	env, err := newEnvelope(event, instanceID)
	if err != nil {
		return nil, nil, err
	}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal event envelope: %w", err)
	}
	return data, env, nil
}
