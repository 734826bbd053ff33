package worker

import (
	"context"
	"log"

	"github.com/opentocoder/storefront/internal/broker"
	"github.com/opentocoder/storefront/internal/service"
)

// FulfillmentWorker consumes the order-events topic and applies status
// transitions published by external fulfillment systems
type FulfillmentWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
}

// NewFulfillmentWorker creates a new fulfillment worker
func NewFulfillmentWorker(consumer *broker.Consumer, fulfillment *service.FulfillmentService) *FulfillmentWorker {
	eventHandler := broker.NewEventHandler()
	eventHandler.OnFulfillment(fulfillment.HandleEvent)

	return &FulfillmentWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
	}
}

// Start starts the worker
func (w *FulfillmentWorker) Start(ctx context.Context) error {
	log.Println("Starting fulfillment worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *FulfillmentWorker) Stop() error {
	log.Println("Stopping fulfillment worker...")
	return w.consumer.Close()
}
