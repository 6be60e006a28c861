package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/apache/pulsar-client-go/pulsar"
)

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// UserEvent is published after a write to the users collection takes effect.
type UserEvent struct {
	UserID    string `json:"userId"`
	Action    string `json:"action"`
	Timestamp int64  `json:"timestamp"`
}

// NewUserEvent stamps an event with the current UTC time.
func NewUserEvent(userID, action string) UserEvent {
	return UserEvent{
		UserID:    userID,
		Action:    action,
		Timestamp: time.Now().UTC().Unix(),
	}
}

// Notifier delivers user events to interested consumers.
type Notifier interface {
	Notify(event UserEvent) error
	Close()
}

// NoopNotifier drops every event. It is used when no broker is configured.
type NoopNotifier struct{}

func (NoopNotifier) Notify(UserEvent) error { return nil }

func (NoopNotifier) Close() {}

type EventPublisher struct {
	client   pulsar.Client
	producer pulsar.Producer
}

// NewEventPublisher initializes the Pulsar client and producer.
func NewEventPublisher(pulsarURL, topic string) (*EventPublisher, error) {
	client, err := pulsar.NewClient(pulsar.ClientOptions{
		URL: pulsarURL,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create Pulsar client: %w", err)
	}

	producer, err := client.CreateProducer(pulsar.ProducerOptions{
		Topic: topic,
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("could not create Pulsar producer: %w", err)
	}

	return &EventPublisher{
		client:   client,
		producer: producer,
	}, nil
}

// Notify publishes an event to Pulsar keyed by user ID, so events for the
// same user stay ordered within a partition.
func (p *EventPublisher) Notify(event UserEvent) error {
	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not serialize event payload: %w", err)
	}

	_, err = p.producer.Send(context.Background(), &pulsar.ProducerMessage{
		Key:     event.UserID,
		Payload: message,
	})
	if err != nil {
		return fmt.Errorf("could not send event to Pulsar: %w", err)
	}

	return nil
}

// Close closes the Pulsar producer and client.
func (p *EventPublisher) Close() {
	p.producer.Close()
	p.client.Close()
}
