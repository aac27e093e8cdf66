package service

import (
	"context"
	"errors"

	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/models"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/redisclient"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/store"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ProductService handles the catalog: vendor-scoped CRUD and the public
// read side, with a read-through cache on single-product lookups.
type ProductService struct {
	store  *store.Store
	cache  *redisclient.Client
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(st *store.Store, cache *redisclient.Client) *ProductService {
	return &ProductService{
		store:  st,
		cache:  cache,
		logger: util.GetLogger(),
	}
}

// CreateProductRequest represents a new catalog entry
type CreateProductRequest struct {
	Name           string                 `json:"name" binding:"required"`
	Description    string                 `json:"description" binding:"required"`
	Category       string                 `json:"category" binding:"required"`
	Price          float64                `json:"price" binding:"required,gt=0"`
	ComparePrice   float64                `json:"comparePrice,omitempty"`
	Cost           float64                `json:"cost,omitempty"`
	SKU            string                 `json:"sku" binding:"required"`
	Inventory      models.Inventory       `json:"inventory"`
	Images         []string               `json:"images,omitempty"`
	Specifications []models.Specification `json:"specifications,omitempty"`
	Weight         float64                `json:"weight,omitempty"`
	Tags           []string               `json:"tags,omitempty"`
	Discount       *models.Discount       `json:"discount,omitempty"`
}

// CreateProduct adds a product for the calling vendor. Only approved vendors
// may publish.
func (s *ProductService) CreateProduct(ctx context.Context, userID primitive.ObjectID, req *CreateProductRequest) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.CreateProduct")
	defer span.End()

	vendor, err := s.approvedVendor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !models.ValidCategory(req.Category) {
		return nil, ErrInvalidCategory
	}

	product := &models.Product{
		Vendor:         vendor.ID,
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		Price:          req.Price,
		ComparePrice:   req.ComparePrice,
		Cost:           req.Cost,
		SKU:            req.SKU,
		Inventory:      req.Inventory,
		Images:         req.Images,
		Specifications: req.Specifications,
		Weight:         req.Weight,
		Tags:           req.Tags,
		Discount:       req.Discount,
		IsActive:       true,
	}
	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.Hex()),
		zap.String("vendor_id", vendor.ID.Hex()),
		zap.String("sku", product.SKU))
	return product, nil
}

// GetProduct serves a single product, read-through cached
func (s *ProductService) GetProduct(ctx context.Context, productID primitive.ObjectID) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.GetProduct")
	defer span.End()

	key := redisclient.ProductKey(productID.Hex())
	if s.cache != nil {
		var cached models.Product
		err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil {
			util.CacheHitsTotal.WithLabelValues("product").Inc()
			return &cached, nil
		}
		if !errors.Is(err, redisclient.ErrCacheMiss) {
			s.logger.Warn("Product cache read failed", zap.Error(err))
		}
		util.CacheMissesTotal.WithLabelValues("product").Inc()
	}

	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, product, redisclient.ProductTTL); err != nil {
			s.logger.Warn("Product cache write failed", zap.Error(err))
		}
	}
	return product, nil
}

// ListProducts serves the public catalog listing; only active products
func (s *ProductService) ListProducts(ctx context.Context, f store.ProductFilter, opts store.ListOptions) ([]models.Product, int64, error) {
	f.ActiveOnly = true
	return s.store.ListProducts(ctx, f, opts)
}

// VendorProducts lists the calling vendor's own products, active or not
func (s *ProductService) VendorProducts(ctx context.Context, userID primitive.ObjectID, opts store.ListOptions) ([]models.Product, int64, error) {
	vendor, err := s.store.GetVendorByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, 0, ErrVendorNotFound
	}
	if err != nil {
		return nil, 0, err
	}
	return s.store.ListProducts(ctx, store.ProductFilter{Vendor: &vendor.ID}, opts)
}

// UpdateProductRequest represents a partial product edit
type UpdateProductRequest struct {
	Name           *string                `json:"name,omitempty"`
	Description    *string                `json:"description,omitempty"`
	Category       *string                `json:"category,omitempty"`
	Price          *float64               `json:"price,omitempty" binding:"omitempty,gt=0"`
	ComparePrice   *float64               `json:"comparePrice,omitempty"`
	Inventory      *models.Inventory      `json:"inventory,omitempty"`
	Images         []string               `json:"images,omitempty"`
	Specifications []models.Specification `json:"specifications,omitempty"`
	Tags           []string               `json:"tags,omitempty"`
	Discount       *models.Discount       `json:"discount,omitempty"`
	IsActive       *bool                  `json:"isActive,omitempty"`
}

// UpdateProduct edits the calling vendor's own product
func (s *ProductService) UpdateProduct(ctx context.Context, userID, productID primitive.ObjectID, req *UpdateProductRequest) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.UpdateProduct")
	defer span.End()

	vendor, err := s.approvedVendor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetVendorProduct(ctx, productID, vendor.ID); err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Category != nil {
		if !models.ValidCategory(*req.Category) {
			return nil, ErrInvalidCategory
		}
		set["category"] = *req.Category
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.ComparePrice != nil {
		set["comparePrice"] = *req.ComparePrice
	}
	if req.Inventory != nil {
		set["inventory"] = *req.Inventory
	}
	if req.Images != nil {
		set["images"] = req.Images
	}
	if req.Specifications != nil {
		set["specifications"] = req.Specifications
	}
	if req.Tags != nil {
		set["tags"] = req.Tags
	}
	if req.Discount != nil {
		set["discount"] = *req.Discount
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}
	if len(set) == 0 {
		return s.store.GetProduct(ctx, productID)
	}

	updated, err := s.store.UpdateProduct(ctx, productID, set)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, productID)
	return updated, nil
}

// DeleteProduct removes the calling vendor's own product
func (s *ProductService) DeleteProduct(ctx context.Context, userID, productID primitive.ObjectID) error {
	ctx, span := util.StartSpan(ctx, "ProductService.DeleteProduct")
	defer span.End()

	vendor, err := s.store.GetVendorByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrVendorNotFound
	}
	if err != nil {
		return err
	}
	if _, err := s.store.GetVendorProduct(ctx, productID, vendor.ID); err != nil {
		return err
	}
	if err := s.store.DeleteProduct(ctx, productID); err != nil {
		return err
	}
	s.invalidate(ctx, productID)

	s.logger.Info("Product deleted",
		zap.String("product_id", productID.Hex()),
		zap.String("vendor_id", vendor.ID.Hex()))
	return nil
}

// AddProductImages appends uploaded image paths to a vendor's product
func (s *ProductService) AddProductImages(ctx context.Context, userID, productID primitive.ObjectID, paths []string) (*models.Product, error) {
	vendor, err := s.store.GetVendorByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, err
	}
	product, err := s.store.GetVendorProduct(ctx, productID, vendor.ID)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateProduct(ctx, productID, bson.M{
		"images": append(product.Images, paths...),
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, productID)
	return updated, nil
}

// Categories returns the fixed category list alongside those in use
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	inUse, err := s.store.DistinctCategories(ctx)
	if err != nil {
		return nil, err
	}
	if len(inUse) == 0 {
		return models.ProductCategories, nil
	}
	return inUse, nil
}

// LowStock lists the calling vendor's products at or below their threshold
func (s *ProductService) LowStock(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Product, error) {
	vendor, err := s.store.GetVendorByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.store.LowStockProducts(ctx, vendor.ID, limit)
}

func (s *ProductService) approvedVendor(ctx context.Context, userID primitive.ObjectID) (*models.Vendor, error) {
	vendor, err := s.store.GetVendorByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, err
	}
	if !vendor.IsApproved {
		return nil, ErrVendorNotApproved
	}
	return vendor, nil
}

func (s *ProductService) invalidate(ctx context.Context, productID primitive.ObjectID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, redisclient.ProductKey(productID.Hex())); err != nil {
		s.logger.Warn("Failed to invalidate product cache", zap.Error(err))
	}
}
