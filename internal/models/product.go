package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Discount types
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// ProductCategories is the allowed category set
var ProductCategories = []string{
	"Electronics",
	"Clothing",
	"Home & Garden",
	"Sports & Outdoors",
	"Books",
	"Beauty & Health",
	"Toys & Games",
	"Automotive",
	"Jewelry",
	"Art & Crafts",
	"Other",
}

// ValidCategory reports whether c is one of the allowed product categories.
func ValidCategory(c string) bool {
	for _, v := range ProductCategories {
		if v == c {
			return true
		}
	}
	return false
}

// Discount is an optional time-boxed price reduction
type Discount struct {
	Type      string     `bson:"type" json:"type"`
	Value     float64    `bson:"value" json:"value"`
	StartDate *time.Time `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate   *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`
}

// Inventory tracks product stock
type Inventory struct {
	Quantity          int  `bson:"quantity" json:"quantity"`
	LowStockThreshold int  `bson:"lowStockThreshold" json:"lowStockThreshold"`
	TrackQuantity     bool `bson:"trackQuantity" json:"trackQuantity"`
}

// Specification is an ordered name/value attribute pair
type Specification struct {
	Name  string `bson:"name" json:"name"`
	Value string `bson:"value" json:"value"`
}

// Product represents a catalog item owned by a vendor
type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Vendor         primitive.ObjectID `bson:"vendor" json:"vendor"`
	Name           string             `bson:"name" json:"name"`
	Description    string             `bson:"description" json:"description"`
	Category       string             `bson:"category" json:"category"`
	Price          float64            `bson:"price" json:"price"`
	ComparePrice   float64            `bson:"comparePrice,omitempty" json:"comparePrice,omitempty"`
	Cost           float64            `bson:"cost,omitempty" json:"cost,omitempty"`
	SKU            string             `bson:"sku" json:"sku"`
	Inventory      Inventory          `bson:"inventory" json:"inventory"`
	Images         []string           `bson:"images,omitempty" json:"images,omitempty"`
	Specifications []Specification    `bson:"specifications,omitempty" json:"specifications,omitempty"`
	Weight         float64            `bson:"weight,omitempty" json:"weight,omitempty"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	IsFeatured     bool               `bson:"isFeatured" json:"isFeatured"`
	Tags           []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Rating         Rating             `bson:"rating" json:"rating"`
	TotalSales     int                `bson:"totalSales" json:"totalSales"`
	Discount       *Discount          `bson:"discount,omitempty" json:"discount,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DiscountedPriceAt returns the effective unit price at time t. The discount
// applies only when t falls inside its optional start/end window, and a fixed
// discount never drives the price below zero. The result is derived, never
// persisted.
func (p *Product) DiscountedPriceAt(t time.Time) float64 {
	d := p.Discount
	if d == nil {
		return p.Price
	}
	if d.StartDate != nil && d.StartDate.After(t) {
		return p.Price
	}
	if d.EndDate != nil && d.EndDate.Before(t) {
		return p.Price
	}

	switch d.Type {
	case DiscountTypePercentage:
		return p.Price - p.Price*(d.Value/100)
	case DiscountTypeFixed:
		discounted := p.Price - d.Value
		if discounted < 0 {
			return 0
		}
		return discounted
	default:
		return p.Price
	}
}

// DiscountedPrice returns the effective unit price right now.
func (p *Product) DiscountedPrice() float64 {
	return p.DiscountedPriceAt(time.Now())
}

// LowStock reports whether tracked inventory is at or below its threshold.
func (p *Product) LowStock() bool {
	return p.Inventory.TrackQuantity && p.Inventory.Quantity <= p.Inventory.LowStockThreshold
}
