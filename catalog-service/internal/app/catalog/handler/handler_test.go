package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/catalog-service/internal/app/catalog/config"
	"storefront/catalog-service/internal/app/catalog/entity"
	"storefront/catalog-service/internal/app/catalog/query"
	"storefront/catalog-service/internal/app/catalog/repository"
	"storefront/catalog-service/internal/app/catalog/repository/mocks"
	"storefront/catalog-service/internal/app/catalog/service"
	"storefront/pkg/clock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Хелперы для создания тестового окружения

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	router       *gin.Engine
	categoryRepo *mocks.MockCategoryRepository
	productRepo  *mocks.MockProductRepository
	publisher    *mocks.MockMessagePublisher
}

func setupTestRouter(ping PingFunc) *testEnv {
	env := &testEnv{
		categoryRepo: new(mocks.MockCategoryRepository),
		productRepo:  new(mocks.MockProductRepository),
		publisher:    new(mocks.MockMessagePublisher),
	}

	catalogService := service.NewCatalogService(env.categoryRepo, env.productRepo, env.publisher, config.CatalogConfig{
		SlugLocale:        "tr",
		CategoryPageLimit: 3,
		ProductPageLimit:  10,
		MaxPageLimit:      100,
	}, clock.NewFixed(testNow))

	if ping == nil {
		ping = func(context.Context) error { return nil }
	}
	env.router = SetupRoutes(NewCatalogHandler(catalogService), ping, config.CORSConfig{AllowOrigins: []string{"*"}})
	return env
}

func (env *testEnv) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

type testResponse struct {
	Success        bool                `json:"success"`
	Message        string              `json:"message"`
	Error          string              `json:"error"`
	Count          *int                `json:"count"`
	ParentCategory *entity.CategoryRef `json:"parentCategory"`
	Pagination     *entity.Pagination  `json:"pagination"`
	Data           json.RawMessage     `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) testResponse {
	t.Helper()
	var resp testResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func newTestCategory(name string) *entity.Category {
	return &entity.Category{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Slug:      name,
		IsActive:  true,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
}

func newTestProduct(categoryID primitive.ObjectID) *entity.Product {
	return &entity.Product{
		ID:        primitive.NewObjectID(),
		Name:      "Laptop",
		Price:     1000,
		Category:  categoryID,
		InStock:   true,
		Discount:  entity.Discount{Type: entity.DiscountPercentage, Value: 10, IsActive: true},
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
}

func noCategories() map[primitive.ObjectID]entity.Category {
	return map[primitive.ObjectID]entity.Category{}
}

// ==================== Health ====================

func TestRouter_Health(t *testing.T) {
	env := setupTestRouter(nil)

	w := env.do(http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRouter_Health_StoreUnavailable(t *testing.T) {
	env := setupTestRouter(func(context.Context) error { return errors.New("no reachable servers") })

	w := env.do(http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "no reachable servers")
}

func TestCorsConfig(t *testing.T) {
	all := corsConfig(config.CORSConfig{AllowOrigins: []string{"*"}})
	assert.True(t, all.AllowAllOrigins)
	assert.Empty(t, all.AllowOrigins)
	assert.False(t, all.AllowCredentials)

	listed := corsConfig(config.CORSConfig{AllowOrigins: []string{"https://shop.example.com"}})
	assert.False(t, listed.AllowAllOrigins)
	assert.Equal(t, []string{"https://shop.example.com"}, listed.AllowOrigins)
	assert.True(t, listed.AllowCredentials)
}

// ==================== Category Handler Tests ====================

func TestCatalogHandler_CreateCategory_Success(t *testing.T) {
	env := setupTestRouter(nil)

	env.categoryRepo.On("GetByName", mock.Anything, "Elektronik").Return(nil, repository.ErrCategoryNotFound)
	env.categoryRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Category")).Return(nil)
	env.categoryRepo.On("GetByIDs", mock.Anything, mock.Anything).Return(noCategories(), nil)
	env.publisher.On("PublishMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	w := env.do(http.MethodPost, "/api/categories/create-category", entity.CreateCategoryRequest{Name: "Elektronik"})

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "Category created successfully", resp.Message)

	var view entity.CategoryView
	require.NoError(t, json.Unmarshal(resp.Data, &view))
	assert.Equal(t, "elektronik", view.Slug)
	assert.True(t, view.IsActive)
	assert.Nil(t, view.ParentCategory)
}

func TestCatalogHandler_CreateCategory_ValidationError(t *testing.T) {
	env := setupTestRouter(nil)

	w := env.do(http.MethodPost, "/api/categories/create-category", entity.CreateCategoryRequest{Name: "A"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "Name is min", resp.Message)
	env.categoryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogHandler_CreateCategory_InvalidJSON(t *testing.T) {
	env := setupTestRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/categories/create-category", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", decode(t, w).Message)
}

func TestCatalogHandler_CreateCategory_DuplicateName(t *testing.T) {
	env := setupTestRouter(nil)
	existing := newTestCategory("Elektronik")

	env.categoryRepo.On("GetByName", mock.Anything, "Elektronik").Return(existing, nil)

	w := env.do(http.MethodPost, "/api/categories/create-category", entity.CreateCategoryRequest{Name: "Elektronik"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.ErrDuplicateName.Error(), decode(t, w).Message)
}

func TestCatalogHandler_UpdateCategory_InvalidID(t *testing.T) {
	env := setupTestRouter(nil)

	w := env.do(http.MethodPut, "/api/categories/edit-category/not-an-id", entity.UpdateCategoryRequest{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid category ID", decode(t, w).Message)
}

func TestCatalogHandler_DeleteCategory_NotFound(t *testing.T) {
	env := setupTestRouter(nil)
	id := primitive.NewObjectID()

	env.categoryRepo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrCategoryNotFound)

	w := env.do(http.MethodDelete, "/api/categories/delete-category/"+id.Hex(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Category not found", decode(t, w).Message)
}

func TestCatalogHandler_GetAllCategories_WithCount(t *testing.T) {
	env := setupTestRouter(nil)
	categories := []entity.Category{*newTestCategory("Books"), *newTestCategory("Music")}

	env.categoryRepo.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(categories, nil)
	env.categoryRepo.On("GetByIDs", mock.Anything, mock.Anything).Return(noCategories(), nil)

	w := env.do(http.MethodGet, "/api/categories", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 2, *resp.Count)
	assert.Nil(t, resp.Pagination)
}

func TestCatalogHandler_GetAllCategories_StoreFailure(t *testing.T) {
	env := setupTestRouter(nil)

	env.categoryRepo.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

	w := env.do(http.MethodGet, "/api/categories", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "connection reset")
}

func TestCatalogHandler_ListCategories_Pagination(t *testing.T) {
	env := setupTestRouter(nil)
	categories := []entity.Category{*newTestCategory("Books")}

	env.categoryRepo.On("FindPage", mock.Anything, mock.Anything, mock.MatchedBy(func(plan query.Plan) bool {
		return plan.Limit == 3 && plan.Skip == 3
	})).Return(categories, int64(7), nil)
	env.categoryRepo.On("GetByIDs", mock.Anything, mock.Anything).Return(noCategories(), nil)

	w := env.do(http.MethodGet, "/api/categories/advanced?page=2&isActive=true", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Pagination)
	assert.Equal(t, 2, resp.Pagination.CurrentPage)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	require.NotNil(t, resp.Pagination.TotalCategories)
	assert.Equal(t, int64(7), *resp.Pagination.TotalCategories)
	assert.Nil(t, resp.Pagination.TotalProducts)
	assert.True(t, resp.Pagination.HasNextPage)
	assert.True(t, resp.Pagination.HasPrevPage)
}

func TestCatalogHandler_ListCategories_InvalidSort(t *testing.T) {
	env := setupTestRouter(nil)

	w := env.do(http.MethodGet, "/api/categories/advanced?sortBy=password", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "SortBy is oneof", decode(t, w).Message)
}

func TestCatalogHandler_GetSubCategories(t *testing.T) {
	env := setupTestRouter(nil)
	parent := newTestCategory("Electronics")
	child := newTestCategory("Phones")
	child.ParentCategory = &parent.ID

	env.categoryRepo.On("GetByID", mock.Anything, parent.ID).Return(parent, nil)
	env.categoryRepo.On("Find", mock.Anything, mock.Anything, mock.Anything).Return([]entity.Category{*child}, nil)
	env.categoryRepo.On("GetByIDs", mock.Anything, []primitive.ObjectID{parent.ID}).
		Return(map[primitive.ObjectID]entity.Category{parent.ID: *parent}, nil)

	w := env.do(http.MethodGet, "/api/categories/sub/"+parent.ID.Hex(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 1, *resp.Count)
	require.NotNil(t, resp.ParentCategory)
	assert.Equal(t, parent.ID, resp.ParentCategory.ID)
	assert.Equal(t, "Electronics", resp.ParentCategory.Name)
}

func TestCatalogHandler_GetCategoryBySlug(t *testing.T) {
	env := setupTestRouter(nil)
	category := newTestCategory("elektronik")

	env.categoryRepo.On("GetBySlug", mock.Anything, "elektronik").Return(category, nil)
	env.categoryRepo.On("GetByIDs", mock.Anything, mock.Anything).Return(noCategories(), nil)

	w := env.do(http.MethodGet, "/api/categories/slug/Elektronik", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var view entity.CategoryView
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &view))
	assert.Equal(t, category.ID, view.ID)
}

// ==================== Product Handler Tests ====================

func TestCatalogHandler_ListProducts_Pagination(t *testing.T) {
	env := setupTestRouter(nil)
	category := newTestCategory("Electronics")
	products := []entity.Product{*newTestProduct(category.ID), *newTestProduct(category.ID)}

	env.productRepo.On("FindPage", mock.Anything, mock.Anything, mock.MatchedBy(func(plan query.Plan) bool {
		return plan.Limit == 10 && plan.Skip == 10
	})).Return(products, int64(25), nil)
	env.categoryRepo.On("GetByIDs", mock.Anything, []primitive.ObjectID{category.ID}).
		Return(map[primitive.ObjectID]entity.Category{category.ID: *category}, nil)

	w := env.do(http.MethodGet, "/api/products?page=2&limit=10&inStock=true", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Pagination)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	require.NotNil(t, resp.Pagination.TotalProducts)
	assert.Equal(t, int64(25), *resp.Pagination.TotalProducts)
	assert.True(t, resp.Pagination.HasNextPage)
	assert.True(t, resp.Pagination.HasPrevPage)

	var views []entity.ProductView
	require.NoError(t, json.Unmarshal(resp.Data, &views))
	require.Len(t, views, 2)
	assert.Equal(t, 900.0, views[0].DiscountedPrice)
	require.NotNil(t, views[0].Category)
	assert.Equal(t, "Electronics", views[0].Category.Name)
}

func TestCatalogHandler_ListProducts_PriceRangeInverted(t *testing.T) {
	env := setupTestRouter(nil)

	w := env.do(http.MethodGet, "/api/products?minPrice=500&maxPrice=100", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env.productRepo.AssertNotCalled(t, "FindPage", mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalogHandler_ListProducts_PageOutOfRange(t *testing.T) {
	env := setupTestRouter(nil)

	w := env.do(http.MethodGet, "/api/products?page=100000000000000000&limit=100", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Page is lte", decode(t, w).Message)
	env.productRepo.AssertNotCalled(t, "FindPage", mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalogHandler_GetProductsByCategory_Empty(t *testing.T) {
	env := setupTestRouter(nil)
	categoryID := primitive.NewObjectID()

	env.productRepo.On("FindPage", mock.Anything, mock.Anything, mock.Anything).Return([]entity.Product{}, int64(0), nil)
	env.categoryRepo.On("GetByIDs", mock.Anything, mock.Anything).Return(noCategories(), nil)

	w := env.do(http.MethodGet, "/api/products/category/"+categoryID.Hex(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.JSONEq(t, "[]", string(resp.Data))
	assert.Equal(t, 0, resp.Pagination.TotalPages)
	assert.False(t, resp.Pagination.HasNextPage)
}

func TestCatalogHandler_GetProduct_NotFound(t *testing.T) {
	env := setupTestRouter(nil)
	id := primitive.NewObjectID()

	env.productRepo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrProductNotFound)

	w := env.do(http.MethodGet, "/api/products/"+id.Hex(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", decode(t, w).Message)
}

func TestCatalogHandler_CreateProduct_UnknownCategory(t *testing.T) {
	env := setupTestRouter(nil)
	categoryID := primitive.NewObjectID()
	price := 100.0

	env.categoryRepo.On("GetByID", mock.Anything, categoryID).Return(nil, repository.ErrCategoryNotFound)

	w := env.do(http.MethodPost, "/api/products/create-product", entity.CreateProductRequest{
		Name:     "Laptop",
		Price:    &price,
		Category: categoryID.Hex(),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env.productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogHandler_CreateProduct_MissingPrice(t *testing.T) {
	env := setupTestRouter(nil)

	w := env.do(http.MethodPost, "/api/products/create-product", entity.CreateProductRequest{
		Name:     "Laptop",
		Category: primitive.NewObjectID().Hex(),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Price is required", decode(t, w).Message)
}

func TestCatalogHandler_UpdateDiscount_MissingDiscount(t *testing.T) {
	env := setupTestRouter(nil)

	w := env.do(http.MethodPatch, "/api/products/"+primitive.NewObjectID().Hex()+"/discount", map[string]interface{}{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Discount is required", decode(t, w).Message)
}

func TestCatalogHandler_AddRating_Success(t *testing.T) {
	env := setupTestRouter(nil)
	product := newTestProduct(primitive.NewObjectID())
	product.Ratings = entity.Ratings{Average: 4, Count: 3}

	env.productRepo.On("AddRating", mock.Anything, product.ID, 4.0, testNow).Return(product, nil)
	env.categoryRepo.On("GetByIDs", mock.Anything, mock.Anything).Return(noCategories(), nil)

	w := env.do(http.MethodPatch, "/api/products/"+product.ID.Hex()+"/rating", entity.RatingRequest{Rating: 4})

	assert.Equal(t, http.StatusOK, w.Code)
	var view entity.ProductView
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &view))
	assert.Equal(t, entity.Ratings{Average: 4, Count: 3}, view.Ratings)
}

func TestCatalogHandler_AddRating_OutOfRange(t *testing.T) {
	env := setupTestRouter(nil)

	w := env.do(http.MethodPatch, "/api/products/"+primitive.NewObjectID().Hex()+"/rating", entity.RatingRequest{Rating: 6})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Rating is lte", decode(t, w).Message)
	env.productRepo.AssertNotCalled(t, "AddRating", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalogHandler_DeleteProduct(t *testing.T) {
	env := setupTestRouter(nil)
	product := newTestProduct(primitive.NewObjectID())

	env.productRepo.On("Delete", mock.Anything, product.ID).Return(product, nil)
	env.publisher.On("PublishMessage", mock.Anything, product.ID.Hex(), mock.Anything).Return(nil)

	w := env.do(http.MethodDelete, "/api/products/delete-product/"+product.ID.Hex(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product deleted successfully", decode(t, w).Message)
	env.publisher.AssertExpectations(t)
}

func TestCatalogHandler_DeleteProduct_NotFound(t *testing.T) {
	env := setupTestRouter(nil)
	id := primitive.NewObjectID()

	env.productRepo.On("Delete", mock.Anything, id).Return(nil, repository.ErrProductNotFound)

	w := env.do(http.MethodDelete, "/api/products/delete-product/"+id.Hex(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env.publisher.AssertNotCalled(t, "PublishMessage", mock.Anything, mock.Anything, mock.Anything)
}
