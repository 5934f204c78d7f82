package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/catalog-service/internal/app/catalog/entity"
	"storefront/catalog-service/internal/app/catalog/query"
	"storefront/catalog-service/internal/app/catalog/repository"
	"storefront/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListProducts - фильтруемый и постраничный список товаров
func (s *CatalogService) ListProducts(ctx context.Context, q entity.ProductListQuery) (*entity.ProductPage, error) {
	filter := query.ProductFilter{
		Search:   optional(q.Search),
		Category: optional(q.Category),
		Brand:    optional(q.Brand),
		InStock:  parseBool(q.InStock),
		Tags:     splitTags(q.Tags),
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return nil, fmt.Errorf("%w: minPrice is greater than maxPrice", ErrInvalidInput)
	}

	return s.productPage(ctx, filter.Build(), query.Params{
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Page:      q.Page,
		Limit:     q.Limit,
	}, "products_all")
}

// GetDiscountedProducts - товары со скидкой, действующей сейчас
func (s *CatalogService) GetDiscountedProducts(ctx context.Context, q entity.PageQuery) (*entity.ProductPage, error) {
	return s.productPage(ctx, query.DiscountedFilter(s.clock.Now()), pageParams(q), "products_discounted")
}

// GetProductsByCategory не проверяет существование категории: пустая категория дает пустую страницу
func (s *CatalogService) GetProductsByCategory(ctx context.Context, categoryID primitive.ObjectID, q entity.PageQuery) (*entity.ProductPage, error) {
	hex := categoryID.Hex()
	predicate := query.ProductFilter{Category: &hex}.Build()
	return s.productPage(ctx, predicate, pageParams(q), "products_by_category")
}

func (s *CatalogService) productPage(ctx context.Context, predicate query.Predicate, params query.Params, listing string) (*entity.ProductPage, error) {
	plan := query.NewPlan(params, s.productRules)

	products, total, err := s.productRepo.FindPage(ctx, predicate, plan)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	metrics.CatalogListingResults.WithLabelValues(listing).Observe(float64(len(products)))

	views, err := s.productViews(ctx, products)
	if err != nil {
		return nil, err
	}

	return &entity.ProductPage{
		Products:   views,
		Pagination: productPagination(query.NewPagination(plan, total)),
	}, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id primitive.ObjectID) (*entity.ProductView, error) {
	product, err := s.getProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.productView(ctx, product)
}

// CreateProduct создает товар; категория должна существовать
func (s *CatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.ProductView, error) {
	categoryID, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	discount, err := discountFromInput(entity.Discount{Type: entity.DiscountPercentage}, req.Discount)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	product := &entity.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Brand:       strings.TrimSpace(req.Brand),
		Category:    categoryID,
		Tags:        orEmpty(req.Tags),
		InStock:     true,
		Discount:    discount,
		Colors:      orEmpty(req.Colors),
		Sizes:       orEmpty(req.Sizes),
		Images:      orEmpty(req.Images),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	metrics.CatalogProductsChanged.WithLabelValues("create").Inc()
	s.publishProductEvent(ctx, entity.EventProductCreated, product)

	return s.productView(ctx, product)
}

// UpdateProduct частично обновляет товар
// Событие PRODUCT_UPDATED отправляется только при смене цены или скидки
func (s *CatalogService) UpdateProduct(ctx context.Context, id primitive.ObjectID, req *entity.UpdateProductRequest) (*entity.ProductView, error) {
	product, err := s.getProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	oldPrice, oldDiscount := product.Price, product.Discount

	if req.Category != nil {
		categoryID, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		product.Category = categoryID
	}
	if req.Discount != nil {
		discount, err := discountFromInput(product.Discount, req.Discount)
		if err != nil {
			return nil, err
		}
		product.Discount = discount
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Brand != nil {
		product.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Tags != nil {
		product.Tags = req.Tags
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.Colors != nil {
		product.Colors = req.Colors
	}
	if req.Sizes != nil {
		product.Sizes = req.Sizes
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	product.UpdatedAt = s.clock.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	metrics.CatalogProductsChanged.WithLabelValues("update").Inc()
	if product.Price != oldPrice || !sameDiscount(product.Discount, oldDiscount) {
		s.publishProductEvent(ctx, entity.EventProductUpdated, product)
	}

	return s.productView(ctx, product)
}

// UpdateStock меняет только переданные поля склада
func (s *CatalogService) UpdateStock(ctx context.Context, id primitive.ObjectID, req *entity.UpdateStockRequest) (*entity.ProductView, error) {
	if req.StockQuantity == nil && req.InStock == nil {
		return nil, fmt.Errorf("%w: stockQuantity or inStock is required", ErrInvalidInput)
	}

	product, err := s.productRepo.UpdateStock(ctx, id, req.StockQuantity, req.InStock, s.clock.Now())
	if err != nil {
		return nil, productError("failed to update stock", err)
	}

	metrics.CatalogProductsChanged.WithLabelValues("stock").Inc()
	return s.productView(ctx, product)
}

// UpdateDiscount заменяет скидку товара
func (s *CatalogService) UpdateDiscount(ctx context.Context, id primitive.ObjectID, req *entity.UpdateDiscountRequest) (*entity.ProductView, error) {
	discount, err := discountFromInput(entity.Discount{Type: entity.DiscountPercentage}, req.Discount)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.UpdateDiscount(ctx, id, discount, s.clock.Now())
	if err != nil {
		return nil, productError("failed to update discount", err)
	}

	metrics.CatalogProductsChanged.WithLabelValues("discount").Inc()
	s.publishProductEvent(ctx, entity.EventProductUpdated, product)

	return s.productView(ctx, product)
}

// AddRating учитывает одну оценку в среднем рейтинге товара
func (s *CatalogService) AddRating(ctx context.Context, id primitive.ObjectID, sample float64) (*entity.ProductView, error) {
	if sample < 1 || sample > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}

	product, err := s.productRepo.AddRating(ctx, id, sample, s.clock.Now())
	if err != nil {
		return nil, productError("failed to add rating", err)
	}

	metrics.CatalogRatingsSubmitted.Observe(sample)
	return s.productView(ctx, product)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	product, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return productError("failed to delete product", err)
	}

	metrics.CatalogProductsChanged.WithLabelValues("delete").Inc()
	s.publishProductEvent(ctx, entity.EventProductDeleted, product)
	return nil
}

func (s *CatalogService) getProduct(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, productError("failed to get product", err)
	}
	return product, nil
}

// resolveCategory проверяет формат id и существование категории товара
func (s *CatalogService) resolveCategory(ctx context.Context, raw string) (primitive.ObjectID, error) {
	categoryID, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: malformed category id %q", ErrInvalidReference, raw)
	}

	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return primitive.NilObjectID, fmt.Errorf("%w: category %s does not exist", ErrInvalidReference, raw)
		}
		return primitive.NilObjectID, fmt.Errorf("failed to check category: %w", err)
	}
	return categoryID, nil
}

func productError(op string, err error) error {
	if errors.Is(err, repository.ErrProductNotFound) {
		return ErrProductNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// discountFromInput накладывает переданные поля скидки на base; явный null сбрасывает дату окна
func discountFromInput(base entity.Discount, in *entity.DiscountInput) (entity.Discount, error) {
	if in == nil {
		return base, nil
	}

	d := base
	if in.Type != "" {
		switch entity.DiscountType(in.Type) {
		case entity.DiscountPercentage, entity.DiscountFixed:
			d.Type = entity.DiscountType(in.Type)
		default:
			return d, fmt.Errorf("%w: unknown discount type %q", ErrInvalidInput, in.Type)
		}
	}
	if d.Type == "" {
		d.Type = entity.DiscountPercentage
	}
	if in.Value != nil {
		if *in.Value < 0 {
			return d, fmt.Errorf("%w: discount value must be non-negative", ErrInvalidInput)
		}
		d.Value = *in.Value
	}
	if in.IsActive != nil {
		d.IsActive = *in.IsActive
	}
	if in.StartDate.Set {
		d.StartDate = utcOrNil(in.StartDate.Time)
	}
	if in.EndDate.Set {
		d.EndDate = utcOrNil(in.EndDate.Time)
	}
	if d.StartDate != nil && d.EndDate != nil && d.EndDate.Before(*d.StartDate) {
		return d, fmt.Errorf("%w: discount endDate is before startDate", ErrInvalidInput)
	}
	return d, nil
}

func utcOrNil(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func sameDiscount(a, b entity.Discount) bool {
	return a.Type == b.Type && a.Value == b.Value && a.IsActive == b.IsActive &&
		sameTime(a.StartDate, b.StartDate) && sameTime(a.EndDate, b.EndDate)
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func pageParams(q entity.PageQuery) query.Params {
	return query.Params{SortBy: q.SortBy, SortOrder: q.SortOrder, Page: q.Page, Limit: q.Limit}
}

// splitTags принимает и повторяющийся параметр tags, и список через запятую
func splitTags(raw []string) []string {
	var tags []string
	for _, item := range raw {
		for _, tag := range strings.Split(item, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
