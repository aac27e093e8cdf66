package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Moderation actions
const (
	ModerationApprove = "approve"
	ModerationReject  = "reject"
)

// VendorResponse is a vendor's public reply to a review
type VendorResponse struct {
	Message     string    `bson:"message" json:"message"`
	RespondedAt time.Time `bson:"respondedAt" json:"respondedAt"`
}

// Review is a customer review of a purchased product. The vendor reference is
// denormalized from the product so vendor ratings aggregate without a join.
type Review struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Customer           primitive.ObjectID `bson:"customer" json:"customer"`
	Product            primitive.ObjectID `bson:"product" json:"product"`
	Vendor             primitive.ObjectID `bson:"vendor" json:"vendor"`
	Order              primitive.ObjectID `bson:"order" json:"order"`
	Rating             int                `bson:"rating" json:"rating"`
	Title              string             `bson:"title,omitempty" json:"title,omitempty"`
	Comment            string             `bson:"comment" json:"comment"`
	Images             []string           `bson:"images,omitempty" json:"images,omitempty"`
	IsVerifiedPurchase bool               `bson:"isVerifiedPurchase" json:"isVerifiedPurchase"`
	IsApproved         bool               `bson:"isApproved" json:"isApproved"`
	VendorResponse     *VendorResponse    `bson:"vendorResponse,omitempty" json:"vendorResponse,omitempty"`
	ModerationReason   string             `bson:"moderationReason,omitempty" json:"moderationReason,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}
