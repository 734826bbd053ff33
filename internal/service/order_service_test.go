package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/opentocoder/storefront/internal/models"
)

func TestPlaceOrderFromSnapshotEmptyCart(t *testing.T) {
	svc := NewOrderService(nil, nil)
	userID := uuid.New()

	// nil snapshot and zero-line snapshot are both rejected before any
	// transaction is opened
	result, err := svc.PlaceOrderFromSnapshot(context.Background(), userID, nil)
	assert.ErrorIs(t, err, models.ErrEmptyCart)
	assert.Nil(t, result)

	result, err = svc.PlaceOrderFromSnapshot(context.Background(), userID, &models.Cart{UserID: userID})
	assert.ErrorIs(t, err, models.ErrEmptyCart)
	assert.Nil(t, result)
}

func TestCartAddItemRejectsNonPositiveQuantity(t *testing.T) {
	svc := NewCartService(nil)

	_, err := svc.AddItem(context.Background(), uuid.New(), uuid.New(), 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.AddItem(context.Background(), uuid.New(), uuid.New(), -2)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}
