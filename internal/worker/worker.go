package worker

import (
	"context"
	"errors"
	"log"

	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/broker"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/models"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/store"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// NotificationWorker consumes marketplace events and dispatches notifications.
// Delivery is log-only here; the consumer commits regardless so a broken
// notification never wedges the partition.
type NotificationWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	st           *store.Store
	logger       *zap.Logger
}

// NewNotificationWorker creates a new notification worker
func NewNotificationWorker(consumer *broker.Consumer, st *store.Store) *NotificationWorker {
	w := &NotificationWorker{
		consumer: consumer,
		st:       st,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnOrderPlaced(w.handleOrderPlaced)
	eventHandler.OnOrderCancelled(w.handleOrderCancelled)
	eventHandler.OnOrderStatusUpdated(w.handleOrderStatusUpdated)
	eventHandler.OnReviewSubmitted(w.handleReviewSubmitted)
	eventHandler.OnReviewModerated(w.handleReviewModerated)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *NotificationWorker) Start(ctx context.Context) error {
	log.Println("Starting notification worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *NotificationWorker) Stop() error {
	log.Println("Stopping notification worker...")
	return w.consumer.Close()
}

func (w *NotificationWorker) handleOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error {
	w.logger.Info("Notify: order placed",
		zap.String("order_number", event.OrderNumber),
		zap.String("customer_id", event.CustomerID),
		zap.Float64("grand_total", event.GrandTotal))

	// Each vendor on the order gets its own notification
	seen := map[string]bool{}
	for _, item := range event.Items {
		if seen[item.VendorID] {
			continue
		}
		seen[item.VendorID] = true
		w.logger.Info("Notify: new sale for vendor",
			zap.String("order_number", event.OrderNumber),
			zap.String("vendor_id", item.VendorID))
	}

	w.checkLowStock(ctx, event)
	return nil
}

func (w *NotificationWorker) handleOrderCancelled(_ context.Context, event *models.OrderCancelledEvent) error {
	w.logger.Info("Notify: order cancelled",
		zap.String("order_number", event.OrderNumber),
		zap.String("customer_id", event.CustomerID),
		zap.String("reason", event.Reason))
	return nil
}

func (w *NotificationWorker) handleOrderStatusUpdated(_ context.Context, event *models.OrderStatusUpdatedEvent) error {
	w.logger.Info("Notify: order status updated",
		zap.String("order_number", event.OrderNumber),
		zap.String("customer_id", event.CustomerID),
		zap.String("item_status", event.ItemStatus),
		zap.String("order_status", event.OrderStatus))
	return nil
}

func (w *NotificationWorker) handleReviewSubmitted(_ context.Context, event *models.ReviewSubmittedEvent) error {
	w.logger.Info("Notify: review submitted",
		zap.String("review_id", event.ReviewID),
		zap.String("vendor_id", event.VendorID),
		zap.Int("rating", event.Rating))
	return nil
}

func (w *NotificationWorker) handleReviewModerated(_ context.Context, event *models.ReviewModeratedEvent) error {
	w.logger.Info("Notify: review moderated",
		zap.String("review_id", event.ReviewID),
		zap.String("action", event.Action))
	return nil
}

// checkLowStock inspects the products sold on an order and raises an alert
// for any that fell to or below their restock threshold.
func (w *NotificationWorker) checkLowStock(ctx context.Context, event *models.OrderPlacedEvent) {
	for _, item := range event.Items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			continue
		}
		product, err := w.st.GetProduct(ctx, productID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			w.logger.Warn("Low stock check failed", zap.Error(err))
			continue
		}
		if product.LowStock() {
			util.LowStockAlertsTotal.Inc()
			w.logger.Warn("Low stock alert",
				zap.String("product_id", product.ID.Hex()),
				zap.String("vendor_id", product.Vendor.Hex()),
				zap.Int("quantity", product.Inventory.Quantity),
				zap.Int("threshold", product.Inventory.LowStockThreshold))
		}
	}
}
