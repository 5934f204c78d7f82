package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/catalog-service/internal/app/catalog/query"
	"storefront/catalog-service/internal/app/catalog/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResolveParent проверяет ссылку на родительскую категорию
// nil, пустая строка и "null" означают категорию верхнего уровня.
// self - id изменяемой категории (nil при создании); цепочка предков
// обходится вверх не дальше общего числа категорий, и встреча self
// означает цикл
func (s *CatalogService) ResolveParent(ctx context.Context, self *primitive.ObjectID, parent *string) (*primitive.ObjectID, error) {
	if parent == nil {
		return nil, nil
	}
	raw := strings.TrimSpace(*parent)
	if raw == "" || raw == query.NullParent {
		return nil, nil
	}

	parentID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed parent category id %q", ErrInvalidReference, raw)
	}

	if self != nil && parentID == *self {
		return nil, ErrCategoryCycle
	}

	candidate, err := s.categoryRepo.GetByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, fmt.Errorf("%w: parent category %s does not exist", ErrInvalidReference, raw)
		}
		return nil, fmt.Errorf("failed to resolve parent category: %w", err)
	}

	if self == nil {
		return &parentID, nil
	}

	total, err := s.categoryRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve parent category: %w", err)
	}

	current := candidate
	for steps := int64(0); current.ParentCategory != nil && steps < total; steps++ {
		next := *current.ParentCategory
		if next == *self {
			return nil, ErrCategoryCycle
		}

		current, err = s.categoryRepo.GetByID(ctx, next)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				// оборванная цепочка: выше предков нет
				break
			}
			return nil, fmt.Errorf("failed to walk category chain: %w", err)
		}
	}

	return &parentID, nil
}
