package repository

import (
	"context"
	"fmt"
	"time"

	"storefront/catalog-service/internal/app/catalog/entity"
	"storefront/catalog-service/internal/app/catalog/query"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const categoriesCollection = "categories"

type categoryRepository struct {
	collection *mongo.Collection
}

// NewCategoryRepository создает репозиторий категорий и индексы коллекции
// Уникальные индексы name и slug защищают от дублей при гонке создания
func NewCategoryRepository(db *mongo.Database) CategoryRepository {
	collection := db.Collection(categoriesCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetName("name_unique").SetUnique(true)},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetName("slug_unique").SetUnique(true)},
		{Keys: bson.D{{Key: "parentCategory", Value: 1}, {Key: "isActive", Value: 1}}, Options: options.Index().SetName("parent_active_idx")},
		{Keys: bson.D{{Key: "sortOrder", Value: 1}, {Key: "name", Value: 1}}, Options: options.Index().SetName("sort_order_idx")},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		// индексы могли быть созданы ранее с другими опциями
		logger.Warn().Err(err).Str("collection", categoriesCollection).Msg("Failed to create indexes")
	}

	return &categoryRepository{collection: collection}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, categoriesCollection)
	result, err := r.collection.InsertOne(ctx, category)
	timer.Observe(err)
	if err != nil {
		return writeError("failed to create category", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		category.ID = oid
	}
	return nil
}

func (r *categoryRepository) findOne(ctx context.Context, filter bson.M, op string) (*entity.Category, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpFind, categoriesCollection)

	var category entity.Category
	err := r.collection.FindOne(ctx, filter).Decode(&category)
	timer.Observe(ignoreNoDocuments(err))
	if err != nil {
		return nil, notFound(err, ErrCategoryNotFound, op)
	}

	return &category, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error) {
	return r.findOne(ctx, bson.M{"_id": id}, "failed to get category")
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return r.findOne(ctx, bson.M{"slug": slug}, "failed to get category by slug")
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.findOne(ctx, bson.M{"name": name}, "failed to get category by name")
}

// GetByIDs загружает категории для подстановки ссылок; отсутствующие id просто не попадают в результат
func (r *categoryRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]entity.Category, error) {
	result := make(map[primitive.ObjectID]entity.Category, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	timer := metrics.NewDbTimer(serviceName, metrics.DbOpFind, categoriesCollection)
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		timer.Observe(err)
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []entity.Category
	if err := cursor.All(ctx, &categories); err != nil {
		timer.Observe(err)
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	timer.Observe(nil)

	for _, c := range categories {
		result[c.ID] = c
	}
	return result, nil
}

func (r *categoryRepository) Find(ctx context.Context, predicate query.Predicate, plan query.Plan) ([]entity.Category, error) {
	return find[entity.Category](ctx, r.collection, predicate, plan)
}

func (r *categoryRepository) FindPage(ctx context.Context, predicate query.Predicate, plan query.Plan) ([]entity.Category, int64, error) {
	return findPage[entity.Category](ctx, r.collection, predicate, plan)
}

func (r *categoryRepository) Count(ctx context.Context) (int64, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpCount, categoriesCollection)
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	timer.Observe(err)
	if err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return total, nil
}

// Update сохраняет все изменяемые поля категории
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	update := bson.M{
		"$set": bson.M{
			"name":           category.Name,
			"slug":           category.Slug,
			"description":    category.Description,
			"parentCategory": category.ParentCategory,
			"isActive":       category.IsActive,
			"sortOrder":      category.SortOrder,
			"image":          category.Image,
			"updatedAt":      category.UpdatedAt,
		},
	}

	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, categoriesCollection)
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": category.ID}, update)
	timer.Observe(err)
	if err != nil {
		return writeError("failed to update category", err)
	}

	if result.MatchedCount == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// Delete удаляет категорию без каскада на дочерние категории и товары
func (r *categoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpDelete, categoriesCollection)
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	timer.Observe(err)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
