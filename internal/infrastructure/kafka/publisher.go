// Package kafka adapts the shared producer to the domain's event publisher
// port. Events are serialized as JSON with the event id and type carried in
// message headers; the aggregate id keys the message so consumers see each
// aggregate's events in order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/event"
	"github.com/remy-crypto/dunkuloans-sub000/pkg/kafka"
)

// EventPublisher implements port.EventPublisher on top of the shared producer.
type EventPublisher struct {
	producer *kafka.Producer
	topic    string
}

// NewEventPublisher creates a publisher writing to the given topic.
func NewEventPublisher(producer *kafka.Producer, topic string) *EventPublisher {
	return &EventPublisher{producer: producer, topic: topic}
}

// Publish serializes and sends the events in a single batch.
func (p *EventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", e.EventType(), err)
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(e.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_id":   e.EventID(),
				"event_type": e.EventType(),
			},
		})
	}

	return p.producer.Publish(ctx, p.topic, messages...)
}
