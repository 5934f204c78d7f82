package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category представляет категорию каталога (коллекция categories)
// ParentCategory == nil означает категорию верхнего уровня
type Category struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name           string              `bson:"name" json:"name"`
	Slug           string              `bson:"slug" json:"slug"`
	Description    string              `bson:"description,omitempty" json:"description,omitempty"`
	ParentCategory *primitive.ObjectID `bson:"parentCategory" json:"parentCategory"`
	IsActive       bool                `bson:"isActive" json:"isActive"`
	SortOrder      int                 `bson:"sortOrder" json:"sortOrder"`
	Image          string              `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Discount описывает скидку товара; действует только при IsActive и внутри окна [StartDate, EndDate]
type Discount struct {
	Type      DiscountType `bson:"type" json:"type"`
	Value     float64      `bson:"value" json:"value"`
	IsActive  bool         `bson:"isActive" json:"isActive"`
	StartDate *time.Time   `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate   *time.Time   `bson:"endDate,omitempty" json:"endDate,omitempty"`
}

// Ratings - скользящее среднее оценок, история не хранится
type Ratings struct {
	Average float64 `bson:"average" json:"average"`
	Count   int     `bson:"count" json:"count"`
}

// Product представляет товар каталога (коллекция products)
// Category - слабая ссылка, удаление категории товар не затрагивает
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Price         float64            `bson:"price" json:"price"`
	Brand         string             `bson:"brand,omitempty" json:"brand,omitempty"`
	Category      primitive.ObjectID `bson:"category" json:"category"`
	Tags          []string           `bson:"tags" json:"tags"`
	InStock       bool               `bson:"inStock" json:"inStock"`
	StockQuantity int                `bson:"stockQuantity" json:"stockQuantity"`
	Ratings       Ratings            `bson:"ratings" json:"ratings"`
	Discount      Discount           `bson:"discount" json:"discount"`
	Colors        []string           `bson:"colors" json:"colors"`
	Sizes         []string           `bson:"sizes" json:"sizes"`
	Images        []string           `bson:"images" json:"images"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CategoryRef - краткое представление категории при подстановке ссылок
type CategoryRef struct {
	ID   primitive.ObjectID `json:"id"`
	Name string             `json:"name"`
	Slug string             `json:"slug,omitempty"`
}

// CategoryView - категория с подставленной родительской категорией
type CategoryView struct {
	Category
	ParentCategory *CategoryRef `json:"parentCategory"`
}

// ProductView - товар в ответе API: подставленная категория и цена со скидкой на момент чтения
type ProductView struct {
	Product
	Category        *CategoryRef `json:"category"`
	DiscountedPrice float64      `json:"discountedPrice"`
}

// Типы событий каталога для Kafka
const (
	EventProductCreated  = "PRODUCT_CREATED"
	EventProductUpdated  = "PRODUCT_UPDATED"
	EventProductDeleted  = "PRODUCT_DELETED"
	EventCategoryChanged = "CATEGORY_CHANGED"
)

// ProductEvent публикуется при создании, изменении цены или скидки и удалении товара
type ProductEvent struct {
	EventType       string    `json:"event_type"`
	ProductID       string    `json:"product_id"`
	Name            string    `json:"name"`
	Price           float64   `json:"price"`
	DiscountedPrice float64   `json:"discounted_price"`
	CategoryID      string    `json:"category_id"`
	Timestamp       time.Time `json:"timestamp"`
}

// CategoryEvent публикуется при любом изменении дерева категорий
type CategoryEvent struct {
	EventType  string    `json:"event_type"`
	Action     string    `json:"action"` // created, updated, deleted
	CategoryID string    `json:"category_id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Timestamp  time.Time `json:"timestamp"`
}
