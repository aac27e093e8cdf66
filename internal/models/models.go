package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleCustomer = "customer"
	RoleVendor   = "vendor"
	RoleAdmin    = "admin"
)

// User represents a platform account
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Avatar    string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Rating is a denormalized review aggregate stored on products and vendors
type Rating struct {
	Average float64 `bson:"average" json:"average"`
	Count   int     `bson:"count" json:"count"`
}

// BankDetails holds vendor payout information
type BankDetails struct {
	AccountName   string `bson:"accountName,omitempty" json:"accountName,omitempty"`
	AccountNumber string `bson:"accountNumber,omitempty" json:"accountNumber,omitempty"`
	BankName      string `bson:"bankName,omitempty" json:"bankName,omitempty"`
	RoutingNumber string `bson:"routingNumber,omitempty" json:"routingNumber,omitempty"`
}

// StoreSettings holds vendor storefront policies
type StoreSettings struct {
	ReturnPolicy   string `bson:"returnPolicy" json:"returnPolicy"`
	ShippingPolicy string `bson:"shippingPolicy" json:"shippingPolicy"`
	ProcessingTime int    `bson:"processingTime" json:"processingTime"`
}

// Vendor represents a seller profile, one per user
type Vendor struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User             primitive.ObjectID `bson:"user" json:"user"`
	StoreName        string             `bson:"storeName" json:"storeName"`
	StoreDescription string             `bson:"storeDescription,omitempty" json:"storeDescription,omitempty"`
	BusinessLicense  string             `bson:"businessLicense,omitempty" json:"businessLicense,omitempty"`
	TaxID            string             `bson:"taxId,omitempty" json:"taxId,omitempty"`
	BankDetails      BankDetails        `bson:"bankDetails,omitempty" json:"bankDetails,omitempty"`
	StoreSettings    StoreSettings      `bson:"storeSettings" json:"storeSettings"`
	CommissionRate   float64            `bson:"commissionRate" json:"commissionRate"`
	IsApproved       bool               `bson:"isApproved" json:"isApproved"`
	RejectionReason  string             `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	TotalSales       float64            `bson:"totalSales" json:"totalSales"`
	TotalOrders      int                `bson:"totalOrders" json:"totalOrders"`
	Rating           Rating             `bson:"rating" json:"rating"`
	StoreLogo        string             `bson:"storeLogo,omitempty" json:"storeLogo,omitempty"`
	StoreBanner      string             `bson:"storeBanner,omitempty" json:"storeBanner,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DefaultStoreSettings returns the settings applied at vendor registration.
func DefaultStoreSettings() StoreSettings {
	return StoreSettings{
		ReturnPolicy:   "30 days return policy",
		ShippingPolicy: "Ships within 3-5 business days",
		ProcessingTime: 2,
	}
}
