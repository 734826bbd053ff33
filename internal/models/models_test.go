package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanCancel(t *testing.T) {
	order := &Order{Status: OrderStatusPending}
	assert.True(t, order.CanCancel())

	for _, status := range []string{OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled} {
		order.Status = status
		assert.False(t, order.CanCancel(), "status %s must not be cancellable", status)
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(OrderStatusPending, OrderStatusPaid))
	assert.True(t, CanTransition(OrderStatusPaid, OrderStatusShipped))
	assert.True(t, CanTransition(OrderStatusShipped, OrderStatusDelivered))

	// no skipping ahead, no moving backwards, no leaving cancelled
	assert.False(t, CanTransition(OrderStatusPending, OrderStatusShipped))
	assert.False(t, CanTransition(OrderStatusPaid, OrderStatusPending))
	assert.False(t, CanTransition(OrderStatusCancelled, OrderStatusPaid))
	assert.False(t, CanTransition(OrderStatusDelivered, OrderStatusPaid))
}

func TestProductIsAvailable(t *testing.T) {
	p := &Product{IsActive: true, Stock: 3}
	assert.True(t, p.IsAvailable())

	p.Stock = 0
	assert.False(t, p.IsAvailable())

	p.Stock = 3
	p.IsActive = false
	assert.False(t, p.IsAvailable())
}

func TestCartIsEmpty(t *testing.T) {
	cart := &Cart{}
	assert.True(t, cart.IsEmpty())

	cart.Items = []CartLine{{ProductID: uuid.New(), Quantity: 1}}
	assert.False(t, cart.IsEmpty())
}

func TestInsufficientStockErrorMessage(t *testing.T) {
	err := &InsufficientStockError{
		ProductID:   uuid.New(),
		ProductName: "Espresso Grinder",
		Requested:   3,
		Available:   1,
	}
	assert.Equal(t, "insufficient stock for Espresso Grinder: requested 3, available 1", err.Error())
}

func TestProductUnavailableErrorMessage(t *testing.T) {
	id := uuid.New()
	err := &ProductUnavailableError{ProductID: id}
	assert.Contains(t, err.Error(), id.String())
	assert.Contains(t, err.Error(), "not found or inactive")
}
