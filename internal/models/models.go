package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Product represents a product in the catalog.
// Price is stored in minor units (cents). Stock is kept non-negative by the
// placement and cancellation transactions; nothing else writes it.
type Product struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Price       int64     `db:"price" json:"price"`
	Stock       int       `db:"stock" json:"stock"`
	Category    string    `db:"category" json:"category"`
	ImageURL    *string   `db:"image_url" json:"image_url,omitempty"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// IsAvailable reports whether the product can be added to a cart
func (p *Product) IsAvailable() bool {
	return p.IsActive && p.Stock > 0
}

// CartItem is a persisted cart row, unique per (user, product)
type CartItem struct {
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	ProductID uuid.UUID `db:"product_id" json:"product_id"`
	Quantity  int       `db:"quantity" json:"quantity"`
}

// CartLine is one element of a cart snapshot: the product joined with the
// quantity, priced at read time. The snapshot price is display-only; the
// placement transaction re-reads the price under lock.
type CartLine struct {
	ProductID   uuid.UUID `db:"product_id" json:"product_id"`
	ProductName string    `db:"product_name" json:"product_name"`
	UnitPrice   int64     `db:"unit_price" json:"unit_price"`
	Quantity    int       `db:"quantity" json:"quantity"`
	Subtotal    int64     `json:"subtotal"`
}

// Cart is a user's cart snapshot as returned to clients
type Cart struct {
	UserID uuid.UUID  `json:"user_id"`
	Items  []CartLine `json:"items"`
	Total  int64      `json:"total"`
}

// IsEmpty reports whether the snapshot has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order represents a placed order. Status is the only field mutated after
// creation: by cancellation here, or by fulfillment flows via the worker.
type Order struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Status    string    `db:"status" json:"status"`
	Total     int64     `db:"total" json:"total"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CanCancel reports whether the order is still cancellable
func (o *Order) CanCancel() bool {
	return o.Status == OrderStatusPending
}

// OrderItem is an order line. ProductName and Price are copied from the
// product at order-creation time and never change afterwards, even if the
// product is later renamed or repriced.
type OrderItem struct {
	ID          uuid.UUID `db:"id" json:"id"`
	OrderID     uuid.UUID `db:"order_id" json:"order_id"`
	ProductID   uuid.UUID `db:"product_id" json:"product_id"`
	ProductName string    `db:"product_name" json:"product_name"`
	Quantity    int       `db:"quantity" json:"quantity"`
	Price       int64     `db:"price" json:"price"`
	Subtotal    int64     `db:"subtotal" json:"subtotal"`
}

// OrderWithItems pairs an order with its lines
type OrderWithItems struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}

// ProcessedEvent records a consumed event for idempotency
type ProcessedEvent struct {
	EventID     string    `db:"event_id"`
	EventType   string    `db:"event_type"`
	ProcessedAt time.Time `db:"processed_at"`
}

// nextStatus maps the forward fulfillment transitions. Cancellation is not
// part of this chain; it is gated separately on pending.
var nextStatus = map[string]string{
	OrderStatusPending: OrderStatusPaid,
	OrderStatusPaid:    OrderStatusShipped,
	OrderStatusShipped: OrderStatusDelivered,
}

// CanTransition reports whether a fulfillment transition from -> to is legal
func CanTransition(from, to string) bool {
	return nextStatus[from] == to
}
