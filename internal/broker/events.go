package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/opentocoder/storefront/internal/models"
)

// EventPublisher publishes storefront domain events. Events are emitted
// after the owning transaction commits; a publish failure never unwinds a
// committed order.
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishOrderPlaced publishes an OrderPlaced event
func (ep *EventPublisher) PublishOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error {
	key := fmt.Sprintf("order-%s", event.OrderID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishOrderCancelled publishes an OrderCancelled event
func (ep *EventPublisher) PublishOrderCancelled(ctx context.Context, event *models.OrderCancelledEvent) error {
	key := fmt.Sprintf("order-%s", event.OrderID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// EventHandler routes fulfillment events to a registered handler
type EventHandler struct {
	onFulfillment func(context.Context, *models.FulfillmentEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnFulfillment registers a handler for paid/shipped/delivered events
func (eh *EventHandler) OnFulfillment(handler func(context.Context, *models.FulfillmentEvent) error) {
	eh.onFulfillment = handler
}

// HandleMessage decodes a message and dispatches fulfillment events; events
// published by this service itself are ignored
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var base models.BaseEvent
	if err := json.Unmarshal(msg.Value, &base); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	switch base.EventType {
	case models.EventTypeOrderPaid, models.EventTypeOrderShipped, models.EventTypeOrderDelivered:
		if eh.onFulfillment != nil {
			var event models.FulfillmentEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal fulfillment event: %w", err)
			}
			return eh.onFulfillment(ctx, &event)
		}

	case models.EventTypeOrderPlaced, models.EventTypeOrderCancelled:
		// our own events; nothing to do

	default:
		log.Printf("Unhandled event type: %s", base.EventType)
	}

	return nil
}
