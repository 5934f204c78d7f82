package handler

import (
	"net/http"

	"storefront/catalog-service/internal/app/catalog/entity"
	"storefront/catalog-service/internal/app/catalog/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// CatalogHandler обрабатывает HTTP запросы к категориям и товарам
type CatalogHandler struct {
	catalogService service.CatalogServiceInterface
	validator      *validator.Validate
}

func NewCatalogHandler(catalogService service.CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// CreateCategory - POST /api/categories/create-category
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req entity.CreateCategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, entity.Response{
		Success: true,
		Message: "Category created successfully",
		Data:    category,
	})
}

// UpdateCategory - PUT /api/categories/edit-category/:id
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseObjectID(c, "id", "category")
	if !ok {
		return
	}

	var req entity.UpdateCategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	category, err := h.catalogService.UpdateCategory(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, entity.Response{
		Success: true,
		Message: "Category updated successfully",
		Data:    category,
	})
}

// DeleteCategory - DELETE /api/categories/delete-category/:id
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseObjectID(c, "id", "category")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete category")
		return
	}

	c.JSON(http.StatusOK, entity.Response{Success: true, Message: "Category deleted successfully"})
}

// GetAllCategories - GET /api/categories
func (h *CatalogHandler) GetAllCategories(c *gin.Context) {
	categories, err := h.catalogService.GetAllCategories(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get categories")
		return
	}

	c.JSON(http.StatusOK, entity.Response{Success: true, Count: countOf(len(categories)), Data: categories})
}

// ListCategories - GET /api/categories/advanced
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	var q entity.CategoryListQuery
	if !h.bindQuery(c, &q) {
		return
	}

	page, err := h.catalogService.ListCategories(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Failed to get categories")
		return
	}

	c.JSON(http.StatusOK, entity.Response{
		Success:    true,
		Data:       page.Categories,
		Pagination: &page.Pagination,
	})
}

// GetActiveCategories - GET /api/categories/active
func (h *CatalogHandler) GetActiveCategories(c *gin.Context) {
	categories, err := h.catalogService.GetActiveCategories(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get active categories")
		return
	}

	c.JSON(http.StatusOK, entity.Response{Success: true, Count: countOf(len(categories)), Data: categories})
}

// GetMainCategories - GET /api/categories/main
func (h *CatalogHandler) GetMainCategories(c *gin.Context) {
	categories, err := h.catalogService.GetMainCategories(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get main categories")
		return
	}

	c.JSON(http.StatusOK, entity.Response{Success: true, Count: countOf(len(categories)), Data: categories})
}

// GetSubCategories - GET /api/categories/sub/:parentId
func (h *CatalogHandler) GetSubCategories(c *gin.Context) {
	parentID, ok := parseObjectID(c, "parentId", "parent category")
	if !ok {
		return
	}

	categories, parent, err := h.catalogService.GetSubCategories(c.Request.Context(), parentID)
	if err != nil {
		respondError(c, err, "Failed to get subcategories")
		return
	}

	c.JSON(http.StatusOK, entity.Response{
		Success:        true,
		Count:          countOf(len(categories)),
		ParentCategory: parent,
		Data:           categories,
	})
}

// GetCategory - GET /api/categories/id/:id
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := parseObjectID(c, "id", "category")
	if !ok {
		return
	}

	category, err := h.catalogService.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get category")
		return
	}

	c.JSON(http.StatusOK, entity.Response{Success: true, Data: category})
}

// GetCategoryBySlug - GET /api/categories/slug/:slug
func (h *CatalogHandler) GetCategoryBySlug(c *gin.Context) {
	categorySlug := c.Param("slug")
	if categorySlug == "" {
		badRequest(c, "Slug is required")
		return
	}

	category, err := h.catalogService.GetCategoryBySlug(c.Request.Context(), categorySlug)
	if err != nil {
		respondError(c, err, "Failed to get category")
		return
	}

	c.JSON(http.StatusOK, entity.Response{Success: true, Data: category})
}
