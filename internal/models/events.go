package models

import (
	"time"

	"github.com/google/uuid"
)

// Event types on the order-events topic. ORDER_PLACED and ORDER_CANCELLED are
// published by this service after commit; the fulfillment events arrive from
// external flows and are consumed by the worker.
const (
	EventTypeOrderPlaced    = "ORDER_PLACED"
	EventTypeOrderCancelled = "ORDER_CANCELLED"
	EventTypeOrderPaid      = "ORDER_PAID"
	EventTypeOrderShipped   = "ORDER_SHIPPED"
	EventTypeOrderDelivered = "ORDER_DELIVERED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderItemData represents item data in events
type OrderItemData struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Price       int64     `json:"price"`
}

// OrderPlacedEvent published after a placement transaction commits
type OrderPlacedEvent struct {
	BaseEvent
	OrderID uuid.UUID       `json:"order_id"`
	UserID  uuid.UUID       `json:"user_id"`
	Total   int64           `json:"total"`
	Items   []OrderItemData `json:"items"`
}

// OrderCancelledEvent published after a cancellation commits
type OrderCancelledEvent struct {
	BaseEvent
	OrderID uuid.UUID `json:"order_id"`
	UserID  uuid.UUID `json:"user_id"`
	Reason  string    `json:"reason"`
}

// FulfillmentEvent is the shape of status updates arriving from external
// fulfillment systems (paid, shipped, delivered)
type FulfillmentEvent struct {
	BaseEvent
	OrderID uuid.UUID `json:"order_id"`
}
