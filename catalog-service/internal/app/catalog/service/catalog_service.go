package service

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/catalog-service/internal/app/catalog/config"
	"storefront/catalog-service/internal/app/catalog/entity"
	"storefront/catalog-service/internal/app/catalog/pricing"
	"storefront/catalog-service/internal/app/catalog/query"
	"storefront/catalog-service/internal/app/catalog/repository"
	"storefront/catalog-service/internal/app/catalog/slug"
	"storefront/catalog-service/internal/app/catalog/util"
	"storefront/pkg/clock"
	"storefront/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogService обрабатывает бизнес-логику каталога
// Координирует репозитории, построение запросов и отправку событий в Kafka
type CatalogService struct {
	categoryRepo  repository.CategoryRepository
	productRepo   repository.ProductRepository
	publisher     util.MessagePublisher
	slugs         *slug.Resolver
	clock         clock.Clock
	categoryRules query.Rules // листинг /categories/advanced
	productRules  query.Rules
}

// NewCatalogService создает сервис каталога с внедрением зависимостей
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	publisher util.MessagePublisher,
	cfg config.CatalogConfig,
	clk clock.Clock,
) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		publisher:    publisher,
		slugs:        slug.NewResolver(cfg.SlugLocale),
		clock:        clk,
		categoryRules: query.Rules{
			Allowed:      query.CategorySortFields,
			DefaultLimit: cfg.CategoryPageLimit,
			MaxLimit:     cfg.MaxPageLimit,
		},
		productRules: query.Rules{
			Allowed:      query.ProductSortFields,
			DefaultLimit: cfg.ProductPageLimit,
			MaxLimit:     cfg.MaxPageLimit,
		},
	}
}

// categoryViews подставляет родительские категории {id, name, slug}
func (s *CatalogService) categoryViews(ctx context.Context, categories []entity.Category) ([]entity.CategoryView, error) {
	ids := make([]primitive.ObjectID, 0, len(categories))
	seen := make(map[primitive.ObjectID]bool)
	for _, c := range categories {
		if c.ParentCategory != nil && !seen[*c.ParentCategory] {
			seen[*c.ParentCategory] = true
			ids = append(ids, *c.ParentCategory)
		}
	}

	parents, err := s.categoryRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load parent categories: %w", err)
	}

	views := make([]entity.CategoryView, 0, len(categories))
	for _, c := range categories {
		view := entity.CategoryView{Category: c}
		if c.ParentCategory != nil {
			if parent, ok := parents[*c.ParentCategory]; ok {
				view.ParentCategory = &entity.CategoryRef{ID: parent.ID, Name: parent.Name, Slug: parent.Slug}
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *CatalogService) categoryView(ctx context.Context, category *entity.Category) (*entity.CategoryView, error) {
	views, err := s.categoryViews(ctx, []entity.Category{*category})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// productViews подставляет категорию {id, name} и считает цену со скидкой на текущий момент
func (s *CatalogService) productViews(ctx context.Context, products []entity.Product) ([]entity.ProductView, error) {
	ids := make([]primitive.ObjectID, 0, len(products))
	seen := make(map[primitive.ObjectID]bool)
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			ids = append(ids, p.Category)
		}
	}

	categories, err := s.categoryRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load product categories: %w", err)
	}

	now := s.clock.Now()
	views := make([]entity.ProductView, 0, len(products))
	for _, p := range products {
		view := entity.ProductView{
			Product:         p,
			DiscountedPrice: pricing.DiscountedPrice(p.Price, p.Discount, now),
		}
		if c, ok := categories[p.Category]; ok {
			view.Category = &entity.CategoryRef{ID: c.ID, Name: c.Name}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *CatalogService) productView(ctx context.Context, product *entity.Product) (*entity.ProductView, error) {
	views, err := s.productViews(ctx, []entity.Product{*product})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func categoryPagination(p query.Pagination) entity.Pagination {
	total := p.Total
	return entity.Pagination{
		CurrentPage:     p.CurrentPage,
		TotalPages:      p.TotalPages,
		TotalCategories: &total,
		HasNextPage:     p.HasNextPage,
		HasPrevPage:     p.HasPrevPage,
		Limit:           p.Limit,
	}
}

func productPagination(p query.Pagination) entity.Pagination {
	total := p.Total
	return entity.Pagination{
		CurrentPage:   p.CurrentPage,
		TotalPages:    p.TotalPages,
		TotalProducts: &total,
		HasNextPage:   p.HasNextPage,
		HasPrevPage:   p.HasPrevPage,
		Limit:         p.Limit,
	}
}

// publish отправляет событие в Kafka
// Изменение уже сохранено, поэтому ошибка отправки только логируется
func (s *CatalogService) publish(ctx context.Context, key string, event interface{}) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Failed to marshal catalog event")
		return
	}

	if err := s.publisher.PublishMessage(ctx, key, data); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Failed to publish catalog event")
	}
}

func (s *CatalogService) publishProductEvent(ctx context.Context, eventType string, p *entity.Product) {
	now := s.clock.Now()
	s.publish(ctx, p.ID.Hex(), entity.ProductEvent{
		EventType:       eventType,
		ProductID:       p.ID.Hex(),
		Name:            p.Name,
		Price:           p.Price,
		DiscountedPrice: pricing.DiscountedPrice(p.Price, p.Discount, now),
		CategoryID:      p.Category.Hex(),
		Timestamp:       now,
	})
}

func (s *CatalogService) publishCategoryEvent(ctx context.Context, action string, c *entity.Category) {
	s.publish(ctx, c.ID.Hex(), entity.CategoryEvent{
		EventType:  entity.EventCategoryChanged,
		Action:     action,
		CategoryID: c.ID.Hex(),
		Name:       c.Name,
		Slug:       c.Slug,
		Timestamp:  s.clock.Now(),
	})
}
