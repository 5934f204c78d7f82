package service

import (
	"time"

	"storefront/catalog-service/internal/app/catalog/config"
	"storefront/catalog-service/internal/app/catalog/entity"
	"storefront/catalog-service/internal/app/catalog/repository/mocks"
	"storefront/pkg/clock"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Хелперы для создания тестового окружения

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type testDeps struct {
	categoryRepo *mocks.MockCategoryRepository
	productRepo  *mocks.MockProductRepository
	publisher    *mocks.MockMessagePublisher
	clock        *clock.Fixed
}

func setupTestService() (*CatalogService, *testDeps) {
	deps := &testDeps{
		categoryRepo: new(mocks.MockCategoryRepository),
		productRepo:  new(mocks.MockProductRepository),
		publisher:    new(mocks.MockMessagePublisher),
		clock:        clock.NewFixed(testNow),
	}

	cfg := config.CatalogConfig{
		SlugLocale:        "tr",
		CategoryPageLimit: 3,
		ProductPageLimit:  10,
		MaxPageLimit:      100,
	}

	return NewCatalogService(deps.categoryRepo, deps.productRepo, deps.publisher, cfg, deps.clock), deps
}

func newTestCategory(name string, parent *primitive.ObjectID) *entity.Category {
	return &entity.Category{
		ID:             primitive.NewObjectID(),
		Name:           name,
		Slug:           name,
		ParentCategory: parent,
		IsActive:       true,
		CreatedAt:      testNow.Add(-time.Hour),
		UpdatedAt:      testNow.Add(-time.Hour),
	}
}

func newTestProduct(categoryID primitive.ObjectID) *entity.Product {
	return &entity.Product{
		ID:            primitive.NewObjectID(),
		Name:          "Laptop",
		Description:   "High-performance laptop",
		Price:         1000,
		Brand:         "Acme",
		Category:      categoryID,
		Tags:          []string{"computers"},
		InStock:       true,
		StockQuantity: 5,
		Discount:      entity.Discount{Type: entity.DiscountPercentage},
		CreatedAt:     testNow.Add(-time.Hour),
		UpdatedAt:     testNow.Add(-time.Hour),
	}
}

func categoryMap(categories ...*entity.Category) map[primitive.ObjectID]entity.Category {
	m := make(map[primitive.ObjectID]entity.Category, len(categories))
	for _, c := range categories {
		m[c.ID] = *c
	}
	return m
}

func strPtr(s string) *string     { return &s }
func boolPtr(b bool) *bool        { return &b }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func int64Ptr(i int64) *int64 { return &i }
