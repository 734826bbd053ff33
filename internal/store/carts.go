package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/opentocoder/storefront/internal/models"
)

// GetCartSnapshot reads the user's cart joined with current product data,
// ordered by when each line was added. Prices in the snapshot are
// read-time values; the placement transaction re-reads them under lock.
func (s *Store) GetCartSnapshot(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var lines []models.CartLine
	err := s.db.SelectContext(ctx, &lines,
		`SELECT p.id AS product_id, p.name AS product_name, p.price AS unit_price, c.quantity
		 FROM cart_items c
		 JOIN products p ON c.product_id = p.id
		 WHERE c.user_id = $1 AND p.is_active
		 ORDER BY c.created_at`, userID)
	if err != nil {
		return nil, err
	}

	cart := &models.Cart{UserID: userID, Items: lines}
	for i := range cart.Items {
		cart.Items[i].Subtotal = cart.Items[i].UnitPrice * int64(cart.Items[i].Quantity)
		cart.Total += cart.Items[i].Subtotal
	}
	return cart, nil
}

// AddCartItem adds quantity to the user's cart, merging with an existing
// line for the same product
func (s *Store) AddCartItem(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cart_items (user_id, product_id, quantity)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, product_id)
		 DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		userID, productID, quantity)
	return err
}

// UpdateCartItemQuantity sets the quantity of an existing cart line
func (s *Store) UpdateCartItemQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE cart_items SET quantity = $1 WHERE user_id = $2 AND product_id = $3",
		quantity, userID, productID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// RemoveCartItem deletes a single cart line
func (s *Store) RemoveCartItem(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2",
		userID, productID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ClearCart deletes all of the user's cart lines
func (s *Store) ClearCart(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM cart_items WHERE user_id = $1", userID)
	return err
}
