package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/opentocoder/storefront/internal/models"
	"github.com/opentocoder/storefront/internal/store"
	"github.com/opentocoder/storefront/internal/util"
)

// FulfillmentService applies order status transitions arriving from external
// fulfillment systems (payment capture, shipping, delivery). Cancellation
// stays with OrderService; this path only moves orders forward.
type FulfillmentService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewFulfillmentService creates a new fulfillment service
func NewFulfillmentService(store *store.Store) *FulfillmentService {
	return &FulfillmentService{
		store:  store,
		logger: util.GetLogger(),
	}
}

var eventStatus = map[string]string{
	models.EventTypeOrderPaid:      models.OrderStatusPaid,
	models.EventTypeOrderShipped:   models.OrderStatusShipped,
	models.EventTypeOrderDelivered: models.OrderStatusDelivered,
}

// HandleEvent applies one fulfillment event. Duplicate events and events
// whose transition is illegal from the current status are skipped; an
// unknown order is logged and dropped rather than retried forever.
func (fs *FulfillmentService) HandleEvent(ctx context.Context, event *models.FulfillmentEvent) error {
	ctx, span := util.StartSpan(ctx, "FulfillmentService.HandleEvent")
	defer span.End()

	toStatus, ok := eventStatus[event.EventType]
	if !ok {
		fs.logger.Warn("Unknown fulfillment event type", zap.String("type", event.EventType))
		return nil
	}

	applied, err := fs.store.AdvanceOrderStatusTx(ctx, event.OrderID, toStatus, event.EventID, event.EventType)
	if err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			fs.logger.Warn("Fulfillment event for unknown order",
				zap.String("order_id", event.OrderID.String()),
				zap.String("event_id", event.EventID))
			util.FulfillmentEventsTotal.WithLabelValues(event.EventType, "unknown_order").Inc()
			return nil
		}
		util.FulfillmentEventsTotal.WithLabelValues(event.EventType, "error").Inc()
		return err
	}

	if applied {
		util.FulfillmentEventsTotal.WithLabelValues(event.EventType, "applied").Inc()
		fs.logger.Info("Order status advanced",
			zap.String("order_id", event.OrderID.String()),
			zap.String("status", toStatus))
	} else {
		util.FulfillmentEventsTotal.WithLabelValues(event.EventType, "skipped").Inc()
	}
	return nil
}
