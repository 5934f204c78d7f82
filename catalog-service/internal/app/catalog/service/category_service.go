package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/catalog-service/internal/app/catalog/entity"
	"storefront/catalog-service/internal/app/catalog/query"
	"storefront/catalog-service/internal/app/catalog/repository"
	"storefront/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Порядок простых списков категорий
var (
	allCategoriesOrder    = bson.D{{Key: "sortOrder", Value: 1}, {Key: "createdAt", Value: -1}}
	activeCategoriesOrder = bson.D{{Key: "sortOrder", Value: 1}, {Key: "name", Value: 1}}
)

// CreateCategory создает категорию; slug выводится из имени
func (s *CatalogService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.CategoryView, error) {
	name := strings.TrimSpace(req.Name)
	categorySlug := s.slugs.Make(name)
	if name == "" || categorySlug == "" {
		return nil, fmt.Errorf("%w: category name must contain letters or digits", ErrInvalidInput)
	}

	if err := s.ensureNameFree(ctx, name, nil); err != nil {
		return nil, err
	}

	parent, err := s.ResolveParent(ctx, nil, req.ParentCategory)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	category := &entity.Category{
		Name:           name,
		Slug:           categorySlug,
		Description:    strings.TrimSpace(req.Description),
		ParentCategory: parent,
		IsActive:       true,
		Image:          req.Image,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	metrics.CatalogCategoriesCreated.Inc()
	s.publishCategoryEvent(ctx, "created", category)

	return s.categoryView(ctx, category)
}

// ensureNameFree возвращает ErrDuplicateName, если имя занято другой категорией
func (s *CatalogService) ensureNameFree(ctx context.Context, name string, self *primitive.ObjectID) error {
	existing, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check category name: %w", err)
	}
	if self != nil && existing.ID == *self {
		return nil
	}
	return ErrDuplicateName
}

// UpdateCategory частично обновляет категорию; slug пересчитывается только при смене имени
func (s *CatalogService) UpdateCategory(ctx context.Context, id primitive.ObjectID, req *entity.UpdateCategoryRequest) (*entity.CategoryView, error) {
	category, err := s.getCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		categorySlug := s.slugs.Make(name)
		if name == "" || categorySlug == "" {
			return nil, fmt.Errorf("%w: category name must contain letters or digits", ErrInvalidInput)
		}
		if name != category.Name {
			if err := s.ensureNameFree(ctx, name, &id); err != nil {
				return nil, err
			}
		}
		category.Name = name
		category.Slug = categorySlug
	}

	if req.ParentCategory != nil {
		parent, err := s.ResolveParent(ctx, &id, req.ParentCategory)
		if err != nil {
			return nil, err
		}
		category.ParentCategory = parent
	}

	if req.Description != nil {
		category.Description = strings.TrimSpace(*req.Description)
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	if req.Image != nil {
		category.Image = *req.Image
	}
	category.UpdatedAt = s.clock.Now()

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, ErrDuplicateName
		case errors.Is(err, repository.ErrCategoryNotFound):
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.publishCategoryEvent(ctx, "updated", category)

	return s.categoryView(ctx, category)
}

// DeleteCategory удаляет категорию; дочерние категории и товары не затрагиваются
func (s *CatalogService) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	category, err := s.getCategory(ctx, id)
	if err != nil {
		return err
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.publishCategoryEvent(ctx, "deleted", category)
	return nil
}

func (s *CatalogService) getCategory(ctx context.Context, id primitive.ObjectID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (s *CatalogService) listCategories(ctx context.Context, predicate query.Predicate, plan query.Plan, listing string) ([]entity.CategoryView, error) {
	categories, err := s.categoryRepo.Find(ctx, predicate, plan)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	metrics.CatalogListingResults.WithLabelValues(listing).Observe(float64(len(categories)))

	return s.categoryViews(ctx, categories)
}

// GetAllCategories возвращает все категории по sortOrder, затем новые первыми
func (s *CatalogService) GetAllCategories(ctx context.Context) ([]entity.CategoryView, error) {
	return s.listCategories(ctx, query.Predicate{}, query.Ordered(allCategoriesOrder), "categories_all")
}

// ListCategories - фильтруемый и постраничный список категорий
func (s *CatalogService) ListCategories(ctx context.Context, q entity.CategoryListQuery) (*entity.CategoryPage, error) {
	filter := query.CategoryFilter{
		Search:   optional(q.Search),
		IsActive: parseBool(q.IsActive),
	}
	if q.ParentCategory != "" {
		filter.ParentCategory = &q.ParentCategory
	}
	predicate := filter.Build()

	plan := query.NewPlan(query.Params{
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Page:      q.Page,
		Limit:     q.Limit,
	}, s.categoryRules)

	categories, total, err := s.categoryRepo.FindPage(ctx, predicate, plan)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	metrics.CatalogListingResults.WithLabelValues("categories_advanced").Observe(float64(len(categories)))

	views, err := s.categoryViews(ctx, categories)
	if err != nil {
		return nil, err
	}

	return &entity.CategoryPage{
		Categories: views,
		Pagination: categoryPagination(query.NewPagination(plan, total)),
	}, nil
}

// GetActiveCategories возвращает активные категории всех уровней
func (s *CatalogService) GetActiveCategories(ctx context.Context) ([]entity.CategoryView, error) {
	active := true
	predicate := query.CategoryFilter{IsActive: &active}.Build()
	return s.listCategories(ctx, predicate, query.Ordered(activeCategoriesOrder), "categories_active")
}

// GetMainCategories возвращает активные категории верхнего уровня
func (s *CatalogService) GetMainCategories(ctx context.Context) ([]entity.CategoryView, error) {
	active := true
	parent := query.NullParent
	predicate := query.CategoryFilter{IsActive: &active, ParentCategory: &parent}.Build()
	return s.listCategories(ctx, predicate, query.Ordered(activeCategoriesOrder), "categories_main")
}

// GetSubCategories возвращает активные дочерние категории и краткие данные родителя
func (s *CatalogService) GetSubCategories(ctx context.Context, parentID primitive.ObjectID) ([]entity.CategoryView, *entity.CategoryRef, error) {
	parent, err := s.getCategory(ctx, parentID)
	if err != nil {
		return nil, nil, err
	}

	active := true
	hex := parentID.Hex()
	predicate := query.CategoryFilter{IsActive: &active, ParentCategory: &hex}.Build()

	views, err := s.listCategories(ctx, predicate, query.Ordered(activeCategoriesOrder), "categories_sub")
	if err != nil {
		return nil, nil, err
	}

	return views, &entity.CategoryRef{ID: parent.ID, Name: parent.Name, Slug: parent.Slug}, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id primitive.ObjectID) (*entity.CategoryView, error) {
	category, err := s.getCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.categoryView(ctx, category)
}

func (s *CatalogService) GetCategoryBySlug(ctx context.Context, categorySlug string) (*entity.CategoryView, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(categorySlug)))
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	}
	return s.categoryView(ctx, category)
}

// optional превращает пустой параметр запроса в отсутствующую опцию
func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// parseBool: "true"/"false" - значение, всё остальное - опция не задана
func parseBool(s string) *bool {
	switch s {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}
