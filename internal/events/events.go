// Package events publishes order lifecycle notifications to a message broker.
package events

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
)

type Event struct {
	Type           string    `json:"type"`
	OrderID        string    `json:"orderId"`
	UserID         string    `json:"userId"`
	RestaurantID   string    `json:"restaurantId"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	Total          float64   `json:"total"`
	OccurredAt     time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }

type Options struct {
	Driver       string
	KafkaBrokers []string
	KafkaTopic   string
	AMQPURL      string
}

// New builds the publisher selected by Driver: "kafka", "rabbitmq" or empty for none.
func New(opts Options) (Publisher, error) {
	switch strings.ToLower(opts.Driver) {
	case "", "none":
		return NopPublisher{}, nil
	case "kafka":
		if len(opts.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("events: KAFKA_BROKERS is required for the kafka driver")
		}
		return NewKafkaPublisher(opts.KafkaBrokers, opts.KafkaTopic), nil
	case "rabbitmq", "amqp":
		if opts.AMQPURL == "" {
			return nil, fmt.Errorf("events: AMQP_URL is required for the rabbitmq driver")
		}
		return DialRabbit(opts.AMQPURL)
	}
	return nil, fmt.Errorf("events: unknown driver %q", opts.Driver)
}
