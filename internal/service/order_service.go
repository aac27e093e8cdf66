package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/config"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/broker"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/models"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/redisclient"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/store"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/util"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// OrderService owns the order lifecycle: creation, cancellation and vendor
// fulfillment updates, with inventory and vendor counters kept consistent
// inside one transaction per operation.
type OrderService struct {
	store          *store.Store
	cache          *redisclient.Client
	eventPublisher *broker.EventPublisher
	business       config.BusinessConfig
	logger         *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(st *store.Store, cache *redisclient.Client, eventPublisher *broker.EventPublisher, business config.BusinessConfig) *OrderService {
	return &OrderService{
		store:          st,
		cache:          cache,
		eventPublisher: eventPublisher,
		business:       business,
		logger:         util.GetLogger(),
	}
}

// CreateOrderRequest represents a checkout request
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod   string             `json:"paymentMethod" binding:"required,oneof=card paypal bank_transfer cash_on_delivery"`
	ShippingAddress AddressRequest     `json:"shippingAddress" binding:"required"`
	BillingAddress  *AddressRequest    `json:"billingAddress,omitempty"`
	Notes           string             `json:"notes,omitempty"`
}

// OrderItemRequest represents one requested line item
type OrderItemRequest struct {
	Product  string `json:"product" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// AddressRequest represents a shipping or billing address
type AddressRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	ZipCode string `json:"zipCode" binding:"required"`
	Country string `json:"country" binding:"required"`
}

func (a AddressRequest) model() models.Address {
	return models.Address{
		Name:    a.Name,
		Phone:   a.Phone,
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
		Country: a.Country,
	}
}

// CreateOrder validates stock, snapshots discounted prices, computes totals
// and commits the order, inventory decrements and vendor counter increments
// as one transaction. A failing line item aborts the whole checkout.
func (s *OrderService) CreateOrder(ctx context.Context, customerID primitive.ObjectID, req *CreateOrderRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	now := time.Now()
	order := &models.Order{
		OrderNumber:     generateOrderNumber(),
		Customer:        customerID,
		Status:          models.OrderStatusPending,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress.model(),
		Notes:           req.Notes,
	}
	if req.BillingAddress != nil {
		order.BillingAddress = req.BillingAddress.model()
	} else {
		order.BillingAddress = order.ShippingAddress
	}
	order.PaymentStatus = models.PaymentStatusPaid
	if req.PaymentMethod == models.PaymentMethodCashOnDelivery {
		order.PaymentStatus = models.PaymentStatusPending
	}

	productIDs := make([]string, 0, len(req.Items))

	err := s.store.WithTransaction(ctx, func(txCtx context.Context) error {
		order.Items = order.Items[:0]
		var totalAmount float64

		for _, item := range req.Items {
			productID, err := primitive.ObjectIDFromHex(item.Product)
			if err != nil {
				return fmt.Errorf("%w: %s", store.ErrProductUnavailable, item.Product)
			}

			product, err := s.store.GetProduct(txCtx, productID)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: %s", store.ErrProductUnavailable, item.Product)
			}
			if err != nil {
				return err
			}
			if !product.IsActive {
				return fmt.Errorf("%w: %s", store.ErrProductUnavailable, product.Name)
			}

			if product.Inventory.TrackQuantity && product.Inventory.Quantity < item.Quantity {
				return fmt.Errorf("%w: %s", store.ErrInsufficientStock, product.Name)
			}

			unitPrice := product.DiscountedPriceAt(now)
			lineTotal := unitPrice * float64(item.Quantity)

			order.Items = append(order.Items, models.OrderItem{
				Product:     product.ID,
				Vendor:      product.Vendor,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				Price:       unitPrice,
				Total:       lineTotal,
				Status:      models.OrderStatusPending,
			})
			totalAmount += lineTotal
			productIDs = append(productIDs, product.ID.Hex())

			if product.Inventory.TrackQuantity {
				if err := s.store.AdjustInventory(txCtx, product.ID, -item.Quantity, item.Quantity); err != nil {
					return fmt.Errorf("failed to adjust inventory: %w", err)
				}
			}
		}

		order.TotalAmount = totalAmount
		order.ShippingCost, order.Tax, order.GrandTotal = computeTotals(totalAmount, s.business)

		if err := s.store.InsertOrder(txCtx, order); err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		// One increment per line item; a vendor with two items gets two.
		for _, item := range order.Items {
			if err := s.store.ApplyVendorSale(txCtx, item.Vendor, item.Total); err != nil {
				return fmt.Errorf("failed to update vendor stats: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrProductUnavailable):
			util.OrdersFailedTotal.WithLabelValues("product_unavailable").Inc()
		case errors.Is(err, store.ErrInsufficientStock):
			util.OrdersFailedTotal.WithLabelValues("insufficient_stock").Inc()
		default:
			util.OrdersFailedTotal.WithLabelValues("db_error").Inc()
		}
		return nil, err
	}

	util.OrdersCreatedTotal.Inc()
	util.OrderValue.Observe(order.GrandTotal)
	s.logger.Info("Order created",
		zap.String("order_number", order.OrderNumber),
		zap.Float64("grand_total", order.GrandTotal))

	s.invalidateProducts(ctx, productIDs)
	s.publishOrderPlaced(ctx, order)

	return order, nil
}

// CancelOrder reverses an order while it is still pending or confirmed. The
// inverse inventory and vendor counter updates commit atomically with the
// status change. paymentStatus is not touched; refunds are out of scope.
func (s *OrderService) CancelOrder(ctx context.Context, orderID, customerID primitive.ObjectID, reason string) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CancelOrder")
	defer span.End()

	var cancelled *models.Order
	var productIDs []string

	err := s.store.WithTransaction(ctx, func(txCtx context.Context) error {
		order, err := s.store.GetOrderForCustomer(txCtx, orderID, customerID)
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrNotCancellable
		}
		if err != nil {
			return err
		}
		if !order.Cancellable() {
			return store.ErrNotCancellable
		}

		for i, item := range order.Items {
			product, err := s.store.GetProduct(txCtx, item.Product)
			if err == nil && product.Inventory.TrackQuantity {
				if err := s.store.AdjustInventory(txCtx, item.Product, item.Quantity, -item.Quantity); err != nil {
					return fmt.Errorf("failed to restore inventory: %w", err)
				}
				productIDs = append(productIDs, item.Product.Hex())
			} else if err != nil && !errors.Is(err, store.ErrNotFound) {
				return err
			}

			if err := s.store.ReverseVendorSale(txCtx, item.Vendor, item.Total); err != nil {
				return fmt.Errorf("failed to reverse vendor stats: %w", err)
			}
			order.Items[i].Status = models.OrderStatusCancelled
		}

		now := time.Now()
		cancelled, err = s.store.ReplaceOrderItems(txCtx, order.ID, order.Items, map[string]interface{}{
			"status":       models.OrderStatusCancelled,
			"cancelledAt":  now,
			"refundReason": reason,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	util.OrdersCancelledTotal.Inc()
	s.logger.Info("Order cancelled",
		zap.String("order_number", cancelled.OrderNumber),
		zap.String("reason", reason))

	s.invalidateProducts(ctx, productIDs)
	s.publishOrderCancelled(ctx, cancelled, reason)

	return cancelled, nil
}

// UpdateOrderStatusRequest represents a vendor fulfillment update
type UpdateOrderStatusRequest struct {
	Status         string `json:"status" binding:"required"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
	Carrier        string `json:"carrier,omitempty"`
	TrackingURL    string `json:"trackingUrl,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// UpdateOrderStatus advances the calling vendor's line items. Other vendors'
// items are untouched; the order-level status is re-derived from all items.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID, userID primitive.ObjectID, req *UpdateOrderStatusRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.UpdateOrderStatus")
	defer span.End()

	if !models.ValidItemStatus(req.Status) {
		return nil, ErrInvalidStatus
	}

	vendor, err := s.store.GetVendorByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, err
	}

	var tracking *models.Tracking
	if req.TrackingNumber != "" {
		tracking = &models.Tracking{
			TrackingNumber: req.TrackingNumber,
			Carrier:        req.Carrier,
			TrackingURL:    req.TrackingURL,
		}
	}

	// Read and write inside one transaction so two vendors updating the
	// same order cannot overwrite each other's line items.
	var updated *models.Order
	err = s.store.WithTransaction(ctx, func(txCtx context.Context) error {
		order, err := s.store.GetOrderForVendor(txCtx, orderID, vendor.ID)
		if err != nil {
			return err
		}

		derived, err := applyVendorFulfillment(order, vendor.ID, req.Status, tracking)
		if err != nil {
			return err
		}

		set := map[string]interface{}{"status": derived}
		if req.Notes != "" {
			set["notes"] = req.Notes
		}
		if derived == models.OrderStatusDelivered {
			set["deliveredAt"] = time.Now()
		}

		updated, err = s.store.ReplaceOrderItems(txCtx, order.ID, order.Items, set)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order status updated",
		zap.String("order_number", updated.OrderNumber),
		zap.String("vendor_id", vendor.ID.Hex()),
		zap.String("item_status", req.Status),
		zap.String("order_status", updated.Status))

	s.publishOrderStatusUpdated(ctx, updated, vendor.ID, req.Status)

	return updated, nil
}

// GetOrder retrieves an order visible to the caller: admins see everything,
// customers their own orders, vendors orders containing their items.
func (s *OrderService) GetOrder(ctx context.Context, orderID, userID primitive.ObjectID, role string) (*models.Order, error) {
	if role == models.RoleAdmin {
		return s.store.GetOrder(ctx, orderID)
	}

	order, err := s.store.GetOrderForCustomer(ctx, orderID, userID)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	vendor, verr := s.store.GetVendorByUser(ctx, userID)
	if verr != nil {
		return nil, store.ErrNotFound
	}
	return s.store.GetOrderForVendor(ctx, orderID, vendor.ID)
}

// ListCustomerOrders returns a customer's orders
func (s *OrderService) ListCustomerOrders(ctx context.Context, customerID primitive.ObjectID, status string, opts store.ListOptions) ([]models.Order, int64, error) {
	return s.store.ListOrders(ctx, store.OrderFilter{Customer: &customerID, Status: status}, opts)
}

// ListVendorOrders returns orders containing the calling vendor's items
func (s *OrderService) ListVendorOrders(ctx context.Context, userID primitive.ObjectID, status string, opts store.ListOptions) ([]models.Order, int64, error) {
	vendor, err := s.store.GetVendorByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, 0, ErrVendorNotFound
	}
	if err != nil {
		return nil, 0, err
	}
	return s.store.ListOrders(ctx, store.OrderFilter{Vendor: &vendor.ID, Status: status}, opts)
}

// ListAllOrders returns all orders, admin scope
func (s *OrderService) ListAllOrders(ctx context.Context, status, search string, opts store.ListOptions) ([]models.Order, int64, error) {
	return s.store.ListOrders(ctx, store.OrderFilter{Status: status, Search: search}, opts)
}

// computeTotals derives shipping, tax and grand total from the item subtotal.
// Shipping is waived above the free-shipping threshold.
// applyVendorFulfillment sets the vendor's line items to the given status,
// attaching tracking when present, and returns the re-derived order-level
// status. Cancelled orders cannot be updated.
func applyVendorFulfillment(order *models.Order, vendorID primitive.ObjectID, status string, tracking *models.Tracking) (string, error) {
	if order.Status == models.OrderStatusCancelled {
		return "", ErrOrderClosed
	}
	for i := range order.Items {
		if order.Items[i].Vendor != vendorID {
			continue
		}
		order.Items[i].Status = status
		if tracking != nil {
			order.Items[i].Tracking = tracking
		}
	}
	return models.DeriveStatus(order.Items), nil
}

func computeTotals(totalAmount float64, business config.BusinessConfig) (shipping, tax, grandTotal float64) {
	shipping = business.FlatShippingFee
	if totalAmount > business.FreeShippingAbove {
		shipping = 0
	}
	tax = totalAmount * business.TaxRate
	return shipping, tax, totalAmount + shipping + tax
}

func generateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}

func (s *OrderService) invalidateProducts(ctx context.Context, ids []string) {
	if s.cache == nil || len(ids) == 0 {
		return
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = redisclient.ProductKey(id)
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("Failed to invalidate product cache", zap.Error(err))
	}
}

func (s *OrderService) publishOrderPlaced(ctx context.Context, order *models.Order) {
	if s.eventPublisher == nil {
		return
	}
	items := make([]models.OrderItemData, len(order.Items))
	for i, it := range order.Items {
		items[i] = models.OrderItemData{
			ProductID: it.Product.Hex(),
			VendorID:  it.Vendor.Hex(),
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
			Total:     it.Total,
		}
	}
	event := &models.OrderPlacedEvent{
		BaseEvent:   newBaseEvent(models.EventTypeOrderPlaced),
		OrderID:     order.ID.Hex(),
		OrderNumber: order.OrderNumber,
		CustomerID:  order.Customer.Hex(),
		GrandTotal:  order.GrandTotal,
		Items:       items,
	}
	if err := s.eventPublisher.PublishOrderPlaced(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderPlaced event", zap.Error(err))
	}
}

func (s *OrderService) publishOrderCancelled(ctx context.Context, order *models.Order, reason string) {
	if s.eventPublisher == nil {
		return
	}
	event := &models.OrderCancelledEvent{
		BaseEvent:   newBaseEvent(models.EventTypeOrderCancelled),
		OrderID:     order.ID.Hex(),
		OrderNumber: order.OrderNumber,
		CustomerID:  order.Customer.Hex(),
		Reason:      reason,
	}
	if err := s.eventPublisher.PublishOrderCancelled(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderCancelled event", zap.Error(err))
	}
}

func (s *OrderService) publishOrderStatusUpdated(ctx context.Context, order *models.Order, vendorID primitive.ObjectID, itemStatus string) {
	if s.eventPublisher == nil {
		return
	}
	event := &models.OrderStatusUpdatedEvent{
		BaseEvent:   newBaseEvent(models.EventTypeOrderStatusUpdated),
		OrderID:     order.ID.Hex(),
		OrderNumber: order.OrderNumber,
		CustomerID:  order.Customer.Hex(),
		VendorID:    vendorID.Hex(),
		ItemStatus:  itemStatus,
		OrderStatus: order.Status,
	}
	if err := s.eventPublisher.PublishOrderStatusUpdated(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderStatusUpdated event", zap.Error(err))
	}
}

func newBaseEvent(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}
