package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opentocoder/storefront/internal/broker"
	"github.com/opentocoder/storefront/internal/models"
	"github.com/opentocoder/storefront/internal/store"
	"github.com/opentocoder/storefront/internal/util"
)

// OrderService drives order placement and cancellation. The transactional
// work lives in the store; this layer reads the cart snapshot, applies the
// empty-cart precondition, and handles events, metrics and logging.
type OrderService struct {
	store          *store.Store
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(store *store.Store, eventPublisher *broker.EventPublisher) *OrderService {
	return &OrderService{
		store:          store,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// PlaceOrder checks out the user's current cart. The snapshot is read before
// the transaction opens so no lock is held during the cart read.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uuid.UUID) (*models.OrderWithItems, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.PlaceOrder")
	defer span.End()

	cart, err := s.store.GetCartSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.PlaceOrderFromSnapshot(ctx, userID, cart)
}

// PlaceOrderFromSnapshot runs the placement transaction for an already-read
// cart snapshot. Rejections (empty cart, unavailable product, insufficient
// stock) leave no side effects; the caller may adjust the cart and resubmit.
func (s *OrderService) PlaceOrderFromSnapshot(ctx context.Context, userID uuid.UUID, cart *models.Cart) (*models.OrderWithItems, error) {
	if cart == nil || cart.IsEmpty() {
		util.OrdersRejectedTotal.WithLabelValues("empty_cart").Inc()
		return nil, models.ErrEmptyCart
	}

	start := time.Now()
	result, err := s.store.PlaceOrderTx(ctx, userID, cart.Items)
	util.OrderPlacementLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		var unavailable *models.ProductUnavailableError
		var insufficient *models.InsufficientStockError
		switch {
		case errors.As(err, &unavailable):
			util.OrdersRejectedTotal.WithLabelValues("product_unavailable").Inc()
		case errors.As(err, &insufficient):
			util.OrdersRejectedTotal.WithLabelValues("insufficient_stock").Inc()
			s.logger.Info("Order rejected on stock",
				zap.String("user_id", userID.String()),
				zap.String("product_id", insufficient.ProductID.String()),
				zap.Int("requested", insufficient.Requested),
				zap.Int("available", insufficient.Available))
		default:
			util.OrdersRejectedTotal.WithLabelValues("storage_error").Inc()
		}
		return nil, err
	}

	util.OrdersPlacedTotal.Inc()
	for _, item := range result.Items {
		util.StockDebitedTotal.Add(float64(item.Quantity))
	}
	s.logger.Info("Order placed",
		zap.String("order_id", result.Order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int64("total", result.Order.Total))

	s.publishOrderPlaced(ctx, result)
	return result, nil
}

// CancelOrder cancels a pending order owned by the user, restoring the stock
// recorded in its items
func (s *OrderService) CancelOrder(ctx context.Context, orderID, userID uuid.UUID) error {
	ctx, span := util.StartSpan(ctx, "OrderService.CancelOrder")
	defer span.End()

	if err := s.store.CancelOrderTx(ctx, orderID, userID); err != nil {
		return err
	}

	util.OrdersCancelledTotal.Inc()
	if items, err := s.store.GetOrderItemsByOrderID(ctx, orderID); err == nil {
		for _, item := range items {
			util.StockRestoredTotal.Add(float64(item.Quantity))
		}
	}
	s.logger.Info("Order cancelled",
		zap.String("order_id", orderID.String()),
		zap.String("user_id", userID.String()))

	if s.eventPublisher != nil {
		event := &models.OrderCancelledEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeOrderCancelled,
				Timestamp: time.Now(),
			},
			OrderID: orderID,
			UserID:  userID,
			Reason:  "cancelled_by_user",
		}
		if err := s.eventPublisher.PublishOrderCancelled(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderCancelled event", zap.Error(err))
		}
	}
	return nil
}

// GetOrder retrieves an order with its items, verifying ownership
func (s *OrderService) GetOrder(ctx context.Context, orderID, userID uuid.UUID) (*models.OrderWithItems, error) {
	result, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if result.Order.UserID != userID {
		return nil, models.ErrForbidden
	}
	return result, nil
}

// ListOrders retrieves the user's orders, newest first
func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.store.GetOrdersByUserID(ctx, userID)
}

func (s *OrderService) publishOrderPlaced(ctx context.Context, result *models.OrderWithItems) {
	if s.eventPublisher == nil {
		return
	}

	items := make([]models.OrderItemData, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, models.OrderItemData{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	event := &models.OrderPlacedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderPlaced,
			Timestamp: time.Now(),
		},
		OrderID: result.Order.ID,
		UserID:  result.Order.UserID,
		Total:   result.Order.Total,
		Items:   items,
	}

	if err := s.eventPublisher.PublishOrderPlaced(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderPlaced event", zap.Error(err))
	}
}
