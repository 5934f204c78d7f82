package service

import (
	"context"

	"storefront/catalog-service/internal/app/catalog/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogServiceInterface - операции каталога, доступные HTTP слою
type CatalogServiceInterface interface {
	CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.CategoryView, error)
	UpdateCategory(ctx context.Context, id primitive.ObjectID, req *entity.UpdateCategoryRequest) (*entity.CategoryView, error)
	DeleteCategory(ctx context.Context, id primitive.ObjectID) error
	GetAllCategories(ctx context.Context) ([]entity.CategoryView, error)
	ListCategories(ctx context.Context, q entity.CategoryListQuery) (*entity.CategoryPage, error)
	GetActiveCategories(ctx context.Context) ([]entity.CategoryView, error)
	GetMainCategories(ctx context.Context) ([]entity.CategoryView, error)
	GetSubCategories(ctx context.Context, parentID primitive.ObjectID) ([]entity.CategoryView, *entity.CategoryRef, error)
	GetCategory(ctx context.Context, id primitive.ObjectID) (*entity.CategoryView, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*entity.CategoryView, error)

	ListProducts(ctx context.Context, q entity.ProductListQuery) (*entity.ProductPage, error)
	GetDiscountedProducts(ctx context.Context, q entity.PageQuery) (*entity.ProductPage, error)
	GetProductsByCategory(ctx context.Context, categoryID primitive.ObjectID, q entity.PageQuery) (*entity.ProductPage, error)
	GetProduct(ctx context.Context, id primitive.ObjectID) (*entity.ProductView, error)
	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.ProductView, error)
	UpdateProduct(ctx context.Context, id primitive.ObjectID, req *entity.UpdateProductRequest) (*entity.ProductView, error)
	UpdateStock(ctx context.Context, id primitive.ObjectID, req *entity.UpdateStockRequest) (*entity.ProductView, error)
	UpdateDiscount(ctx context.Context, id primitive.ObjectID, req *entity.UpdateDiscountRequest) (*entity.ProductView, error)
	AddRating(ctx context.Context, id primitive.ObjectID, sample float64) (*entity.ProductView, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
}

var _ CatalogServiceInterface = (*CatalogService)(nil)
