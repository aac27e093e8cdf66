package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fulfillment statuses. Line items carry their own status per vendor; the
// order-level status is derived, never written independently.
const (
	OrderStatusPending          = "pending"
	OrderStatusConfirmed        = "confirmed"
	OrderStatusShipped          = "shipped"
	OrderStatusDelivered        = "delivered"
	OrderStatusCancelled        = "cancelled"
	OrderStatusPartiallyShipped = "partially_shipped"
)

// Payment methods
const (
	PaymentMethodCard           = "card"
	PaymentMethodPaypal         = "paypal"
	PaymentMethodBankTransfer   = "bank_transfer"
	PaymentMethodCashOnDelivery = "cash_on_delivery"
)

// Payment statuses
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Address is a shipping or billing address
type Address struct {
	Name    string `bson:"name" json:"name"`
	Phone   string `bson:"phone" json:"phone"`
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	ZipCode string `bson:"zipCode" json:"zipCode"`
	Country string `bson:"country" json:"country"`
}

// Tracking holds shipment tracking details set by a vendor
type Tracking struct {
	TrackingNumber string `bson:"trackingNumber" json:"trackingNumber"`
	Carrier        string `bson:"carrier,omitempty" json:"carrier,omitempty"`
	TrackingURL    string `bson:"trackingUrl,omitempty" json:"trackingUrl,omitempty"`
}

// OrderItem is one line of an order. Price and total are snapshots taken at
// purchase time and are never re-linked to the live product price.
type OrderItem struct {
	Product     primitive.ObjectID `bson:"product" json:"product"`
	Vendor      primitive.ObjectID `bson:"vendor" json:"vendor"`
	ProductName string             `bson:"productName" json:"productName"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Price       float64            `bson:"price" json:"price"`
	Total       float64            `bson:"total" json:"total"`
	Status      string             `bson:"status" json:"status"`
	Tracking    *Tracking          `bson:"tracking,omitempty" json:"tracking,omitempty"`
}

// Order represents a customer order spanning one or more vendors
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber     string             `bson:"orderNumber" json:"orderNumber"`
	Customer        primitive.ObjectID `bson:"customer" json:"customer"`
	Items           []OrderItem        `bson:"items" json:"items"`
	TotalAmount     float64            `bson:"totalAmount" json:"totalAmount"`
	ShippingCost    float64            `bson:"shippingCost" json:"shippingCost"`
	Tax             float64            `bson:"tax" json:"tax"`
	GrandTotal      float64            `bson:"grandTotal" json:"grandTotal"`
	Status          string             `bson:"status" json:"status"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus   string             `bson:"paymentStatus" json:"paymentStatus"`
	ShippingAddress Address            `bson:"shippingAddress" json:"shippingAddress"`
	BillingAddress  Address            `bson:"billingAddress" json:"billingAddress"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CancelledAt     *time.Time         `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	DeliveredAt     *time.Time         `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	RefundReason    string             `bson:"refundReason,omitempty" json:"refundReason,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

var statusRank = map[string]int{
	OrderStatusPending:   0,
	OrderStatusConfirmed: 1,
	OrderStatusShipped:   2,
	OrderStatusDelivered: 3,
}

// ValidItemStatus reports whether s is a status a vendor may set on its items.
func ValidItemStatus(s string) bool {
	_, ok := statusRank[s]
	return ok
}

// DeriveStatus computes the order-level status from its line items. Items in
// lockstep yield that status directly; once any item is shipped or delivered
// while others lag behind, the order reports partially_shipped.
func DeriveStatus(items []OrderItem) string {
	if len(items) == 0 {
		return OrderStatusPending
	}

	first := items[0].Status
	uniform := true
	maxRank := -1
	for _, it := range items {
		if it.Status != first {
			uniform = false
		}
		if r, ok := statusRank[it.Status]; ok && r > maxRank {
			maxRank = r
		}
	}

	if uniform {
		return first
	}
	if maxRank >= statusRank[OrderStatusShipped] {
		return OrderStatusPartiallyShipped
	}
	return OrderStatusPending
}

// Cancellable reports whether the customer may still cancel the order.
func (o *Order) Cancellable() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}

// VendorItems returns the line items fulfilled by the given vendor.
func (o *Order) VendorItems(vendorID primitive.ObjectID) []OrderItem {
	var items []OrderItem
	for _, it := range o.Items {
		if it.Vendor == vendorID {
			items = append(items, it)
		}
	}
	return items
}
