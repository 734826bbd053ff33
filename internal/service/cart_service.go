package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opentocoder/storefront/internal/models"
	"github.com/opentocoder/storefront/internal/store"
	"github.com/opentocoder/storefront/internal/util"
)

// Cart-layer validation errors; mapped to 4xx by the handlers
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrProductInactive  = errors.New("product is not available")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrNotEnoughStock   = errors.New("insufficient stock")
	ErrCartItemNotFound = errors.New("item not in cart")
)

// CartService manages cart rows and produces snapshots. The stock checks
// here are advisory, keeping obviously-doomed lines out of carts; the
// placement transaction is the only authority on stock.
type CartService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(store *store.Store) *CartService {
	return &CartService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// GetCart returns the user's current cart snapshot
func (cs *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return cs.store.GetCartSnapshot(ctx, userID)
}

// AddItem adds quantity of a product to the cart, merging with an existing
// line for the same product
func (cs *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := cs.store.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsAvailable() {
		return nil, ErrProductInactive
	}
	if product.Stock < quantity {
		return nil, ErrNotEnoughStock
	}

	if err := cs.store.AddCartItem(ctx, userID, productID, quantity); err != nil {
		return nil, err
	}
	return cs.store.GetCartSnapshot(ctx, userID)
}

// UpdateItem sets a cart line's quantity; zero or negative removes the line
func (cs *CartService) UpdateItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		if _, err := cs.store.RemoveCartItem(ctx, userID, productID); err != nil {
			return nil, err
		}
		return cs.store.GetCartSnapshot(ctx, userID)
	}

	product, err := cs.store.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if product.Stock < quantity {
		return nil, ErrNotEnoughStock
	}

	updated, err := cs.store.UpdateCartItemQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrCartItemNotFound
	}
	return cs.store.GetCartSnapshot(ctx, userID)
}

// RemoveItem deletes a cart line
func (cs *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	removed, err := cs.store.RemoveCartItem(ctx, userID, productID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrCartItemNotFound
	}
	return nil
}
