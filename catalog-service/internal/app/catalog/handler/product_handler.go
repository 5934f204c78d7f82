package handler

import (
	"net/http"

	"storefront/catalog-service/internal/app/catalog/entity"

	"github.com/gin-gonic/gin"
)

// ListProducts - GET /api/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var q entity.ProductListQuery
	if !h.bindQuery(c, &q) {
		return
	}

	page, err := h.catalogService.ListProducts(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Failed to get products")
		return
	}

	c.JSON(http.StatusOK, entity.Response{Success: true, Data: page.Products, Pagination: &page.Pagination})
}

// GetDiscountedProducts - GET /api/products/discounted
func (h *CatalogHandler) GetDiscountedProducts(c *gin.Context) {
	var q entity.PageQuery
	if !h.bindQuery(c, &q) {
		return
	}

	page, err := h.catalogService.GetDiscountedProducts(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Failed to get discounted products")
		return
	}

	c.JSON(http.StatusOK, entity.Response{Success: true, Data: page.Products, Pagination: &page.Pagination})
}

// GetProductsByCategory - GET /api/products/category/:categoryId
func (h *CatalogHandler) GetProductsByCategory(c *gin.Context) {
	categoryID, ok := parseObjectID(c, "categoryId", "category")
	if !ok {
		return
	}

	var q entity.PageQuery
	if !h.bindQuery(c, &q) {
		return
	}

	page, err := h.catalogService.GetProductsByCategory(c.Request.Context(), categoryID, q)
	if err != nil {
		respondError(c, err, "Failed to get products by category")
		return
	}

	c.JSON(http.StatusOK, entity.Response{Success: true, Data: page.Products, Pagination: &page.Pagination})
}

// GetProduct - GET /api/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseObjectID(c, "id", "product")
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get product")
		return
	}

	c.JSON(http.StatusOK, entity.Response{Success: true, Data: product})
}

// CreateProduct - POST /api/products/create-product
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req entity.CreateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, entity.Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// UpdateProduct - PUT /api/products/edit-product/:id
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseObjectID(c, "id", "product")
	if !ok {
		return
	}

	var req entity.UpdateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, entity.Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// UpdateStock - PATCH /api/products/:id/stock
func (h *CatalogHandler) UpdateStock(c *gin.Context) {
	id, ok := parseObjectID(c, "id", "product")
	if !ok {
		return
	}

	var req entity.UpdateStockRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.catalogService.UpdateStock(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update stock")
		return
	}

	c.JSON(http.StatusOK, entity.Response{
		Success: true,
		Message: "Stock updated successfully",
		Data:    product,
	})
}

// UpdateDiscount - PATCH /api/products/:id/discount
func (h *CatalogHandler) UpdateDiscount(c *gin.Context) {
	id, ok := parseObjectID(c, "id", "product")
	if !ok {
		return
	}

	var req entity.UpdateDiscountRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.catalogService.UpdateDiscount(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update discount")
		return
	}

	c.JSON(http.StatusOK, entity.Response{
		Success: true,
		Message: "Discount updated successfully",
		Data:    product,
	})
}

// AddRating - PATCH /api/products/:id/rating
func (h *CatalogHandler) AddRating(c *gin.Context) {
	id, ok := parseObjectID(c, "id", "product")
	if !ok {
		return
	}

	var req entity.RatingRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.catalogService.AddRating(c.Request.Context(), id, req.Rating)
	if err != nil {
		respondError(c, err, "Failed to update rating")
		return
	}

	c.JSON(http.StatusOK, entity.Response{
		Success: true,
		Message: "Rating updated successfully",
		Data:    product,
	})
}

// DeleteProduct - DELETE /api/products/delete-product/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseObjectID(c, "id", "product")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete product")
		return
	}

	c.JSON(http.StatusOK, entity.Response{Success: true, Message: "Product deleted successfully"})
}
