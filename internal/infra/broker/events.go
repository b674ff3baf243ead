package broker

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/domain/model"

	"github.com/google/uuid"
)

// EventPublisher handles publishing order events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

func orderKey(orderID int64) string {
	return fmt.Sprintf("order-%d", orderID)
}

func newBase(eventType string) model.BaseEvent {
	return model.BaseEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
	}
}

// PublishOrderPlaced publishes order.placed
func (ep *EventPublisher) PublishOrderPlaced(ctx context.Context, event model.OrderPlacedEvent) error {
	event.BaseEvent = newBase(model.EventTypeOrderPlaced)
	return ep.producer.PublishEvent(ctx, orderKey(event.OrderID), event)
}

// PublishOrderStatusChanged publishes order.status_changed
func (ep *EventPublisher) PublishOrderStatusChanged(ctx context.Context, event model.OrderStatusChangedEvent) error {
	event.BaseEvent = newBase(model.EventTypeOrderStatusChanged)
	return ep.producer.PublishEvent(ctx, orderKey(event.OrderID), event)
}

// NopPublisher is used when no brokers are configured
type NopPublisher struct{}

func (NopPublisher) PublishOrderPlaced(context.Context, model.OrderPlacedEvent) error { return nil }

func (NopPublisher) PublishOrderStatusChanged(context.Context, model.OrderStatusChangedEvent) error {
	return nil
}
