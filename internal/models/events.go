package models

import "time"

// Event types
const (
	EventTypeOrderPlaced        = "ORDER_PLACED"
	EventTypeOrderCancelled     = "ORDER_CANCELLED"
	EventTypeOrderStatusUpdated = "ORDER_STATUS_UPDATED"
	EventTypeReviewSubmitted    = "REVIEW_SUBMITTED"
	EventTypeReviewModerated    = "REVIEW_MODERATED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderItemData represents line-item data carried in events
type OrderItemData struct {
	ProductID string  `json:"product_id"`
	VendorID  string  `json:"vendor_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// OrderPlacedEvent is published after an order commits
type OrderPlacedEvent struct {
	BaseEvent
	OrderID     string          `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	CustomerID  string          `json:"customer_id"`
	GrandTotal  float64         `json:"grand_total"`
	Items       []OrderItemData `json:"items"`
}

// OrderCancelledEvent is published after a customer cancellation commits
type OrderCancelledEvent struct {
	BaseEvent
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	CustomerID  string `json:"customer_id"`
	Reason      string `json:"reason"`
}

// OrderStatusUpdatedEvent is published when a vendor advances its line items
type OrderStatusUpdatedEvent struct {
	BaseEvent
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	CustomerID  string `json:"customer_id"`
	VendorID    string `json:"vendor_id"`
	ItemStatus  string `json:"item_status"`
	OrderStatus string `json:"order_status"`
}

// ReviewSubmittedEvent is published when a customer creates a review
type ReviewSubmittedEvent struct {
	BaseEvent
	ReviewID  string `json:"review_id"`
	ProductID string `json:"product_id"`
	VendorID  string `json:"vendor_id"`
	Rating    int    `json:"rating"`
}

// ReviewModeratedEvent is published when an admin approves or rejects a review
type ReviewModeratedEvent struct {
	BaseEvent
	ReviewID  string `json:"review_id"`
	ProductID string `json:"product_id"`
	VendorID  string `json:"vendor_id"`
	Action    string `json:"action"`
}
