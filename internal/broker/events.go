package broker

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OrderEvent is the payload published for every order lifecycle change.
type OrderEvent struct {
	EventID        uuid.UUID  `json:"event_id"`
	Type           string     `json:"type"`
	OrderID        uuid.UUID  `json:"order_id"`
	OrderNumber    string     `json:"order_number"`
	Status         string     `json:"status"`
	AssemblyStatus string     `json:"assembly_status,omitempty"`
	UserID         *uuid.UUID `json:"user_id,omitempty"`
	TotalAmount    string     `json:"total_amount"`
	OccurredAt     time.Time  `json:"occurred_at"`
}

// NewOrderEvent stamps a fresh event ID and the current time.
func NewOrderEvent(eventType string, orderID uuid.UUID, orderNumber, status string) *OrderEvent {
	return &OrderEvent{
		EventID:     uuid.New(),
		Type:        eventType,
		OrderID:     orderID,
		OrderNumber: orderNumber,
		Status:      status,
		OccurredAt:  time.Now().UTC(),
	}
}

// Key partitions events by order so one order's events stay ordered.
func (e *OrderEvent) Key() string {
	return "order-" + e.OrderID.String()
}

// EventPublisher publishes order events to Kafka.
type EventPublisher struct {
	producer *Producer
}

func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

func (ep *EventPublisher) PublishOrderEvent(ctx context.Context, event *OrderEvent) error {
	return ep.producer.PublishEvent(ctx, event.Key(), event)
}

// NopPublisher drops events. Used when KAFKA_BROKERS is empty.
type NopPublisher struct{}

func (NopPublisher) PublishOrderEvent(ctx context.Context, event *OrderEvent) error { return nil }
