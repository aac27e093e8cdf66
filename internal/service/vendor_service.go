package service

import (
	"context"
	"errors"

	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/models"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/store"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// VendorService handles vendor onboarding, the public storefront read side
// and the admin approval workflow.
type VendorService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewVendorService creates a new vendor service
func NewVendorService(st *store.Store) *VendorService {
	return &VendorService{
		store:  st,
		logger: util.GetLogger(),
	}
}

// PublicVendor is the storefront view of a vendor. Payout and tax fields
// never leave the service.
type PublicVendor struct {
	ID               primitive.ObjectID   `json:"id"`
	StoreName        string               `json:"storeName"`
	StoreDescription string               `json:"storeDescription,omitempty"`
	StoreSettings    models.StoreSettings `json:"storeSettings"`
	Rating           models.Rating        `json:"rating"`
	TotalSales       float64              `json:"totalSales"`
	TotalOrders      int                  `json:"totalOrders"`
	StoreLogo        string               `json:"storeLogo,omitempty"`
	StoreBanner      string               `json:"storeBanner,omitempty"`
}

func publicView(v *models.Vendor) PublicVendor {
	return PublicVendor{
		ID:               v.ID,
		StoreName:        v.StoreName,
		StoreDescription: v.StoreDescription,
		StoreSettings:    v.StoreSettings,
		Rating:           v.Rating,
		TotalSales:       v.TotalSales,
		TotalOrders:      v.TotalOrders,
		StoreLogo:        v.StoreLogo,
		StoreBanner:      v.StoreBanner,
	}
}

// ListVendors lists approved vendors for the public storefront
func (s *VendorService) ListVendors(ctx context.Context, search string, opts store.ListOptions) ([]PublicVendor, int64, error) {
	vendors, total, err := s.store.ListVendors(ctx, store.VendorFilter{ApprovedOnly: true, Search: search}, opts)
	if err != nil {
		return nil, 0, err
	}
	out := make([]PublicVendor, len(vendors))
	for i := range vendors {
		out[i] = publicView(&vendors[i])
	}
	return out, total, nil
}

// GetVendor serves a single approved vendor's storefront
func (s *VendorService) GetVendor(ctx context.Context, vendorID primitive.ObjectID) (*PublicVendor, error) {
	vendor, err := s.store.GetVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if !vendor.IsApproved {
		return nil, store.ErrNotFound
	}
	view := publicView(vendor)
	return &view, nil
}

// Profile returns the calling vendor's full own profile
func (s *VendorService) Profile(ctx context.Context, userID primitive.ObjectID) (*models.Vendor, error) {
	vendor, err := s.store.GetVendorByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrVendorNotFound
	}
	return vendor, err
}

// UpdateProfileRequest represents a vendor profile edit
type UpdateProfileRequest struct {
	StoreName        *string               `json:"storeName,omitempty"`
	StoreDescription *string               `json:"storeDescription,omitempty"`
	BankDetails      *models.BankDetails   `json:"bankDetails,omitempty"`
	StoreSettings    *models.StoreSettings `json:"storeSettings,omitempty"`
	StoreLogo        *string               `json:"storeLogo,omitempty"`
	StoreBanner      *string               `json:"storeBanner,omitempty"`
}

// UpdateProfile edits the calling vendor's profile
func (s *VendorService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, req *UpdateProfileRequest) (*models.Vendor, error) {
	ctx, span := util.StartSpan(ctx, "VendorService.UpdateProfile")
	defer span.End()

	vendor, err := s.store.GetVendorByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.StoreName != nil {
		set["storeName"] = *req.StoreName
	}
	if req.StoreDescription != nil {
		set["storeDescription"] = *req.StoreDescription
	}
	if req.BankDetails != nil {
		set["bankDetails"] = *req.BankDetails
	}
	if req.StoreSettings != nil {
		set["storeSettings"] = *req.StoreSettings
	}
	if req.StoreLogo != nil {
		set["storeLogo"] = *req.StoreLogo
	}
	if req.StoreBanner != nil {
		set["storeBanner"] = *req.StoreBanner
	}
	if len(set) == 0 {
		return vendor, nil
	}
	return s.store.UpdateVendor(ctx, vendor.ID, set)
}

// SetStoreMedia records uploaded logo and banner paths on the vendor profile
func (s *VendorService) SetStoreMedia(ctx context.Context, userID primitive.ObjectID, logoPath, bannerPath string) (*models.Vendor, error) {
	vendor, err := s.store.GetVendorByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if logoPath != "" {
		set["storeLogo"] = logoPath
	}
	if bannerPath != "" {
		set["storeBanner"] = bannerPath
	}
	if len(set) == 0 {
		return vendor, nil
	}
	return s.store.UpdateVendor(ctx, vendor.ID, set)
}

// PendingVendors lists vendors awaiting approval, admin scope
func (s *VendorService) PendingVendors(ctx context.Context, opts store.ListOptions) ([]models.Vendor, int64, error) {
	return s.store.ListVendors(ctx, store.VendorFilter{PendingOnly: true}, opts)
}

// AllVendors lists every vendor regardless of approval, admin scope
func (s *VendorService) AllVendors(ctx context.Context, search string, opts store.ListOptions) ([]models.Vendor, int64, error) {
	return s.store.ListVendors(ctx, store.VendorFilter{Search: search}, opts)
}

// ApproveVendor flips a vendor to approved and clears any prior rejection
func (s *VendorService) ApproveVendor(ctx context.Context, vendorID primitive.ObjectID) (*models.Vendor, error) {
	ctx, span := util.StartSpan(ctx, "VendorService.ApproveVendor")
	defer span.End()

	vendor, err := s.store.UpdateVendor(ctx, vendorID, bson.M{
		"isApproved":      true,
		"rejectionReason": "",
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Vendor approved", zap.String("vendor_id", vendorID.Hex()))
	return vendor, nil
}

// RejectVendor marks a vendor as rejected with the given reason
func (s *VendorService) RejectVendor(ctx context.Context, vendorID primitive.ObjectID, reason string) (*models.Vendor, error) {
	ctx, span := util.StartSpan(ctx, "VendorService.RejectVendor")
	defer span.End()

	vendor, err := s.store.UpdateVendor(ctx, vendorID, bson.M{
		"isApproved":      false,
		"rejectionReason": reason,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Vendor rejected",
		zap.String("vendor_id", vendorID.Hex()),
		zap.String("reason", reason))
	return vendor, nil
}
