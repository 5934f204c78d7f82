package repository

import (
	"context"
	"errors"
	"time"

	"storefront/catalog-service/internal/app/catalog/entity"
	"storefront/catalog-service/internal/app/catalog/query"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Имя сервиса в метриках хранилища
const serviceName = "catalog-service"

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateKey     = errors.New("duplicate key")
)

// CategoryRepository - хранилище категорий (коллекция categories)
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]entity.Category, error)
	Find(ctx context.Context, predicate query.Predicate, plan query.Plan) ([]entity.Category, error)
	FindPage(ctx context.Context, predicate query.Predicate, plan query.Plan) ([]entity.Category, int64, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProductRepository - хранилище товаров (коллекция products)
// Узкие обновления (склад, скидка, оценка) выполняются одной атомарной операцией
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error)
	FindPage(ctx context.Context, predicate query.Predicate, plan query.Plan) ([]entity.Product, int64, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id primitive.ObjectID, stockQuantity *int, inStock *bool, now time.Time) (*entity.Product, error)
	UpdateDiscount(ctx context.Context, id primitive.ObjectID, discount entity.Discount, now time.Time) (*entity.Product, error)
	AddRating(ctx context.Context, id primitive.ObjectID, sample float64, now time.Time) (*entity.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*entity.Product, error)
}
