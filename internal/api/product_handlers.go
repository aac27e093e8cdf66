package api

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strconv"

	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/service"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// saveUploads writes multipart files under the upload dir with generated
// names and returns their public paths
func (h *Handler) saveUploads(c *gin.Context, files []*multipart.FileHeader) ([]string, error) {
	var paths []string
	for _, file := range files {
		name := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(file.Filename))
		if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, name)); err != nil {
			return nil, err
		}
		paths = append(paths, "/uploads/"+name)
	}
	return paths, nil
}

func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		respondBadRequest(c, "Invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// listProducts serves the public catalog with filters
func (h *Handler) listProducts(c *gin.Context) {
	filter := store.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if v := c.Query("vendor"); v != "" {
		vendorID, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			respondBadRequest(c, "Invalid vendor id")
			return
		}
		filter.Vendor = &vendorID
	}
	if v := c.Query("minPrice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &p
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &p
		}
	}

	opts := listOptions(c)
	products, total, err := h.productService.ListProducts(c.Request.Context(), filter, opts)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, products, opts, total)
}

// getProduct serves one product
func (h *Handler) getProduct(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, product)
}

// listCategories serves the category list
func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.productService.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, categories)
}

// listVendorProducts serves the calling vendor's own catalog
func (h *Handler) listVendorProducts(c *gin.Context) {
	opts := listOptions(c)
	products, total, err := h.productService.VendorProducts(c.Request.Context(), currentUserID(c), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, products, opts, total)
}

// createProduct handles a vendor adding a product
func (h *Handler) createProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, product)
}

// updateProduct handles a vendor editing their product
func (h *Handler) updateProduct(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), currentUserID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, product)
}

// deleteProduct handles a vendor removing their product
func (h *Handler) deleteProduct(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.productService.DeleteProduct(c.Request.Context(), currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Product deleted")
}

// uploadProductImages accepts multipart image uploads for a product
func (h *Handler) uploadProductImages(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		respondBadRequest(c, "Invalid multipart form")
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		respondBadRequest(c, "No images provided")
		return
	}

	paths, err := h.saveUploads(c, files)
	if err != nil {
		respondError(c, err)
		return
	}

	product, err := h.productService.AddProductImages(c.Request.Context(), currentUserID(c), id, paths)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, product)
}

// listLowStock serves the vendor's products at or below their threshold
func (h *Handler) listLowStock(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	products, err := h.productService.LowStock(c.Request.Context(), currentUserID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, products)
}
