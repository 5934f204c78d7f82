package entity

import (
	"bytes"
	"encoding/json"
	"time"
)

// Запросы на изменение категорий

type CreateCategoryRequest struct {
	Name           string  `json:"name" validate:"required,min=2,max=100"`
	Description    string  `json:"description" validate:"omitempty,max=500"`
	ParentCategory *string `json:"parentCategory"` // пусто или "null" - верхний уровень
	IsActive       *bool   `json:"isActive"`
	SortOrder      *int    `json:"sortOrder"`
	Image          string  `json:"image" validate:"omitempty,url"`
}

// UpdateCategoryRequest - частичное обновление, меняются только переданные поля
type UpdateCategoryRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description    *string `json:"description" validate:"omitempty,max=500"`
	ParentCategory *string `json:"parentCategory"`
	IsActive       *bool   `json:"isActive"`
	SortOrder      *int    `json:"sortOrder"`
	Image          *string `json:"image" validate:"omitempty,url"`
}

// Запросы на изменение товаров

type DiscountInput struct {
	Type      string       `json:"type" validate:"omitempty,oneof=percentage fixed"`
	Value     *float64     `json:"value" validate:"omitempty,gte=0"`
	IsActive  *bool        `json:"isActive"`
	StartDate NullableTime `json:"startDate"`
	EndDate   NullableTime `json:"endDate"`
}

// NullableTime различает отсутствующее поле и явный null
// Set == true и Time == nil означает "сбросить дату"
type NullableTime struct {
	Set  bool
	Time *time.Time
}

// At - заданная дата
func At(t time.Time) NullableTime {
	return NullableTime{Set: true, Time: &t}
}

func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Time = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	n.Time = &t
	return nil
}

func (n NullableTime) MarshalJSON() ([]byte, error) {
	if n.Time == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Time)
}

type CreateProductRequest struct {
	Name          string         `json:"name" validate:"required,min=2,max=200"`
	Description   string         `json:"description" validate:"omitempty,max=1000"`
	Price         *float64       `json:"price" validate:"required,gte=0"`
	Brand         string         `json:"brand" validate:"omitempty,max=100"`
	Category      string         `json:"category" validate:"required,len=24,hexadecimal"`
	Tags          []string       `json:"tags" validate:"omitempty,dive,max=50"`
	InStock       *bool          `json:"inStock"`
	StockQuantity *int           `json:"stockQuantity" validate:"omitempty,gte=0"`
	Discount      *DiscountInput `json:"discount"`
	Colors        []string       `json:"colors"`
	Sizes         []string       `json:"sizes"`
	Images        []string       `json:"images" validate:"omitempty,dive,url"`
}

// UpdateProductRequest - частичное обновление товара
type UpdateProductRequest struct {
	Name          *string        `json:"name" validate:"omitempty,min=2,max=200"`
	Description   *string        `json:"description" validate:"omitempty,max=1000"`
	Price         *float64       `json:"price" validate:"omitempty,gte=0"`
	Brand         *string        `json:"brand" validate:"omitempty,max=100"`
	Category      *string        `json:"category" validate:"omitempty,len=24,hexadecimal"`
	Tags          []string       `json:"tags" validate:"omitempty,dive,max=50"`
	InStock       *bool          `json:"inStock"`
	StockQuantity *int           `json:"stockQuantity" validate:"omitempty,gte=0"`
	Discount      *DiscountInput `json:"discount"`
	Colors        []string       `json:"colors"`
	Sizes         []string       `json:"sizes"`
	Images        []string       `json:"images" validate:"omitempty,dive,url"`
}

type UpdateStockRequest struct {
	StockQuantity *int  `json:"stockQuantity" validate:"omitempty,gte=0"`
	InStock       *bool `json:"inStock"`
}

type UpdateDiscountRequest struct {
	Discount *DiscountInput `json:"discount" validate:"required"`
}

type RatingRequest struct {
	Rating float64 `json:"rating" validate:"required,gte=1,lte=5"`
}

// Параметры листингов (query string)

type CategoryListQuery struct {
	Page           int    `form:"page" validate:"omitempty,gte=1,lte=100000"`
	Limit          int    `form:"limit" validate:"omitempty,gte=1,lte=100"`
	Search         string `form:"search" validate:"omitempty,max=100"`
	IsActive       string `form:"isActive" validate:"omitempty,oneof=true false"`
	ParentCategory string `form:"parentCategory"`
	SortBy         string `form:"sortBy" validate:"omitempty,oneof=name slug sortOrder isActive createdAt updatedAt"`
	SortOrder      string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

type ProductListQuery struct {
	Page      int      `form:"page" validate:"omitempty,gte=1,lte=100000"`
	Limit     int      `form:"limit" validate:"omitempty,gte=1,lte=100"`
	Category  string   `form:"category" validate:"omitempty,len=24,hexadecimal"`
	Brand     string   `form:"brand" validate:"omitempty,max=100"`
	MinPrice  *float64 `form:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice  *float64 `form:"maxPrice" validate:"omitempty,gte=0"`
	InStock   string   `form:"inStock" validate:"omitempty,oneof=true false"`
	Tags      []string `form:"tags"`
	Search    string   `form:"search" validate:"omitempty,max=100"`
	SortBy    string   `form:"sortBy" validate:"omitempty,oneof=name price createdAt updatedAt ratings.average"`
	SortOrder string   `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

// PageQuery - только окно и сортировка (discounted, by-category)
type PageQuery struct {
	Page      int    `form:"page" validate:"omitempty,gte=1,lte=100000"`
	Limit     int    `form:"limit" validate:"omitempty,gte=1,lte=100"`
	SortBy    string `form:"sortBy" validate:"omitempty,oneof=name price createdAt updatedAt ratings.average"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

// Ответы

type Pagination struct {
	CurrentPage     int    `json:"currentPage"`
	TotalPages      int    `json:"totalPages"`
	TotalCategories *int64 `json:"totalCategories,omitempty"`
	TotalProducts   *int64 `json:"totalProducts,omitempty"`
	HasNextPage     bool   `json:"hasNextPage"`
	HasPrevPage     bool   `json:"hasPrevPage"`
	Limit           int    `json:"limit"`
}

// Response - общий конверт всех ответов API
type Response struct {
	Success        bool         `json:"success"`
	Message        string       `json:"message,omitempty"`
	Data           interface{}  `json:"data,omitempty"`
	Error          string       `json:"error,omitempty"`
	Count          *int         `json:"count,omitempty"`
	ParentCategory *CategoryRef `json:"parentCategory,omitempty"`
	Pagination     *Pagination  `json:"pagination,omitempty"`
}

// CategoryPage - страница категорий с метаданными пагинации
type CategoryPage struct {
	Categories []CategoryView
	Pagination Pagination
}

type ProductPage struct {
	Products   []ProductView
	Pagination Pagination
}
