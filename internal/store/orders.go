package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/opentocoder/storefront/internal/models"
)

// lockedProduct is the per-line read taken under FOR UPDATE during placement
type lockedProduct struct {
	Name     string `db:"name"`
	Price    int64  `db:"price"`
	Stock    int    `db:"stock"`
	IsActive bool   `db:"is_active"`
}

// PlaceOrderTx converts a cart snapshot into an order in one transaction:
// per line it re-reads the product row under a FOR UPDATE lock, checks
// availability and stock, debits the stock, then inserts the order with its
// items (name and price copied from the locked read, not the snapshot) and
// clears the user's cart. Any failure rolls back the whole operation.
//
// Duplicate lines for the same product are processed independently and will
// debit twice; the cart layer keys lines uniquely per product.
func (s *Store) PlaceOrderTx(ctx context.Context, userID uuid.UUID, lines []models.CartLine) (*models.OrderWithItems, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	type pricedLine struct {
		productID uuid.UUID
		name      string
		quantity  int
		price     int64
		subtotal  int64
	}

	priced := make([]pricedLine, 0, len(lines))
	var total int64

	for _, line := range lines {
		var lp lockedProduct
		err := tx.GetContext(ctx, &lp,
			"SELECT name, price, stock, is_active FROM products WHERE id = $1 FOR UPDATE",
			line.ProductID)
		if err == sql.ErrNoRows {
			return nil, &models.ProductUnavailableError{ProductID: line.ProductID}
		}
		if err != nil {
			return nil, fmt.Errorf("failed to lock product %s: %w", line.ProductID, err)
		}
		if !lp.IsActive {
			return nil, &models.ProductUnavailableError{ProductID: line.ProductID}
		}
		if lp.Stock < line.Quantity {
			return nil, &models.InsufficientStockError{
				ProductID:   line.ProductID,
				ProductName: lp.Name,
				Requested:   line.Quantity,
				Available:   lp.Stock,
			}
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2",
			line.Quantity, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to debit stock for %s: %w", line.ProductID, err)
		}

		subtotal := lp.Price * int64(line.Quantity)
		total += subtotal
		priced = append(priced, pricedLine{
			productID: line.ProductID,
			name:      lp.Name,
			quantity:  line.Quantity,
			price:     lp.Price,
			subtotal:  subtotal,
		})
	}

	order := models.Order{
		ID:     uuid.New(),
		UserID: userID,
		Status: models.OrderStatusPending,
		Total:  total,
	}
	err = tx.GetContext(ctx, &order,
		`INSERT INTO orders (id, user_id, status, total)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, status, total, created_at, updated_at`,
		order.ID, order.UserID, order.Status, order.Total)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	items := make([]models.OrderItem, 0, len(priced))
	for _, p := range priced {
		item := models.OrderItem{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   p.productID,
			ProductName: p.name,
			Quantity:    p.quantity,
			Price:       p.price,
			Subtotal:    p.subtotal,
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (id, order_id, product_id, product_name, quantity, price, subtotal)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			item.ID, item.OrderID, item.ProductID, item.ProductName,
			item.Quantity, item.Price, item.Subtotal)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}
		items = append(items, item)
	}

	if _, err = tx.ExecContext(ctx,
		"DELETE FROM cart_items WHERE user_id = $1", userID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	return &models.OrderWithItems{Order: order, Items: items}, nil
}

// CancelOrderTx cancels a pending order and credits each item's quantity back
// to its product, all in one transaction. This is a compensating action with
// its own state history; stock sold to other orders in the meantime is
// untouched. Partial credit cannot persist: any failure rolls back the status
// flip along with every credit.
func (s *Store) CancelOrderTx(ctx context.Context, orderID, userID uuid.UUID) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var order models.Order
	err = tx.GetContext(ctx, &order,
		"SELECT * FROM orders WHERE id = $1 FOR UPDATE", orderID)
	if err == sql.ErrNoRows {
		return models.ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock order %s: %w", orderID, err)
	}
	if order.UserID != userID {
		return models.ErrForbidden
	}
	if !order.CanCancel() {
		return models.ErrInvalidState
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2",
		models.OrderStatusCancelled, orderID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	var items []models.OrderItem
	if err = tx.SelectContext(ctx, &items,
		"SELECT * FROM order_items WHERE order_id = $1", orderID); err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}

	for _, item := range items {
		_, err = tx.ExecContext(ctx,
			"UPDATE products SET stock = stock + $1, updated_at = NOW() WHERE id = $2",
			item.Quantity, item.ProductID)
		if err != nil {
			return fmt.Errorf("failed to restore stock for %s: %w", item.ProductID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cancellation: %w", err)
	}
	return nil
}

// AdvanceOrderStatusTx applies a fulfillment transition with consumer-side
// idempotency: the processed-events insert shares the transaction with the
// status update, so an event is applied at most once. An event whose
// transition is not legal from the current status is recorded and skipped.
// Returns whether the transition was applied.
func (s *Store) AdvanceOrderStatusTx(ctx context.Context, orderID uuid.UUID, toStatus, eventID, eventType string) (bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO processed_events (event_id, event_type) VALUES ($1, $2) ON CONFLICT (event_id) DO NOTHING",
		eventID, eventType)
	if err != nil {
		return false, fmt.Errorf("failed to record event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false, nil // already processed
	}

	var current string
	err = tx.GetContext(ctx, &current,
		"SELECT status FROM orders WHERE id = $1 FOR UPDATE", orderID)
	if err == sql.ErrNoRows {
		return false, models.ErrOrderNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to lock order %s: %w", orderID, err)
	}

	applied := false
	if models.CanTransition(current, toStatus) {
		_, err = tx.ExecContext(ctx,
			"UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2",
			toStatus, orderID)
		if err != nil {
			return false, fmt.Errorf("failed to update order status: %w", err)
		}
		applied = true
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit status update: %w", err)
	}
	return applied, nil
}

// GetOrderByID retrieves an order with its items
func (s *Store) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.OrderWithItems, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, models.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := s.GetOrderItemsByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.OrderWithItems{Order: order, Items: items}, nil
}

// GetOrderItemsByOrderID retrieves all items for an order
func (s *Store) GetOrderItemsByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.db.SelectContext(ctx, &items,
		"SELECT * FROM order_items WHERE order_id = $1", orderID)
	return items, err
}

// GetOrdersByUserID retrieves orders for a user, newest first
func (s *Store) GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE user_id = $1 ORDER BY created_at DESC", userID)
	return orders, err
}
