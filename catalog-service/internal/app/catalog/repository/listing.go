package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/catalog-service/internal/app/catalog/query"
	"storefront/pkg/metrics"

	"go.mongodb.org/mongo-driver/mongo"
)

// find выполняет запрос с порядком и окном плана
func find[T any](ctx context.Context, collection *mongo.Collection, predicate query.Predicate, plan query.Plan) ([]T, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpFind, collection.Name())

	cursor, err := collection.Find(ctx, predicate.Document(), plan.FindOptions())
	if err != nil {
		timer.Observe(err)
		return nil, fmt.Errorf("failed to find %s: %w", collection.Name(), err)
	}
	defer cursor.Close(ctx)

	items := make([]T, 0)
	if err := cursor.All(ctx, &items); err != nil {
		timer.Observe(err)
		return nil, fmt.Errorf("failed to decode %s: %w", collection.Name(), err)
	}
	timer.Observe(nil)

	return items, nil
}

// findPage возвращает страницу документов и общее число совпадений
// Оба запроса используют один и тот же предикат
func findPage[T any](ctx context.Context, collection *mongo.Collection, predicate query.Predicate, plan query.Plan) ([]T, int64, error) {
	items, err := find[T](ctx, collection, predicate, plan)
	if err != nil {
		return nil, 0, err
	}

	timer := metrics.NewDbTimer(serviceName, metrics.DbOpCount, collection.Name())
	total, err := collection.CountDocuments(ctx, predicate.Document())
	timer.Observe(err)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count %s: %w", collection.Name(), err)
	}

	return items, total, nil
}

// writeError переводит ошибку записи в ошибку репозитория
func writeError(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", op, ErrDuplicateKey)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// notFound подменяет mongo.ErrNoDocuments на sentinel-ошибку
func notFound(err, sentinel error, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return sentinel
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ignoreNoDocuments: отсутствие документа не считается ошибкой хранилища в метриках
func ignoreNoDocuments(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	return err
}
