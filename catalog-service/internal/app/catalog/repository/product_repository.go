package repository

import (
	"context"
	"time"

	"storefront/catalog-service/internal/app/catalog/entity"
	"storefront/catalog-service/internal/app/catalog/query"
	"storefront/catalog-service/internal/app/catalog/rating"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productsCollection = "products"

type productRepository struct {
	collection *mongo.Collection
}

// NewProductRepository создает репозиторий товаров
// Текстовый индекс name+description нужен для фильтра search
func NewProductRepository(db *mongo.Database) ProductRepository {
	collection := db.Collection(productsCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}}, Options: options.Index().SetName("text_search_idx")},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "inStock", Value: 1}}, Options: options.Index().SetName("category_stock_idx")},
		{Keys: bson.D{{Key: "brand", Value: 1}, {Key: "category", Value: 1}}, Options: options.Index().SetName("brand_category_idx")},
		{Keys: bson.D{{Key: "price", Value: 1}}, Options: options.Index().SetName("price_idx")},
		{Keys: bson.D{{Key: "discount.isActive", Value: 1}}, Options: options.Index().SetName("discount_active_idx")},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn().Err(err).Str("collection", productsCollection).Msg("Failed to create indexes")
	}

	return &productRepository{collection: collection}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, productsCollection)
	result, err := r.collection.InsertOne(ctx, product)
	timer.Observe(err)
	if err != nil {
		return writeError("failed to create product", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpFind, productsCollection)

	var product entity.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	timer.Observe(ignoreNoDocuments(err))
	if err != nil {
		return nil, notFound(err, ErrProductNotFound, "failed to get product")
	}

	return &product, nil
}

func (r *productRepository) FindPage(ctx context.Context, predicate query.Predicate, plan query.Plan) ([]entity.Product, int64, error) {
	return findPage[entity.Product](ctx, r.collection, predicate, plan)
}

// Update сохраняет все изменяемые поля товара; рейтинг не трогается
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	update := bson.M{
		"$set": bson.M{
			"name":          product.Name,
			"description":   product.Description,
			"price":         product.Price,
			"brand":         product.Brand,
			"category":      product.Category,
			"tags":          product.Tags,
			"inStock":       product.InStock,
			"stockQuantity": product.StockQuantity,
			"discount":      product.Discount,
			"colors":        product.Colors,
			"sizes":         product.Sizes,
			"images":        product.Images,
			"updatedAt":     product.UpdatedAt,
		},
	}

	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, productsCollection)
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": product.ID}, update)
	timer.Observe(err)
	if err != nil {
		return writeError("failed to update product", err)
	}

	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

// UpdateStock меняет только переданные поля склада
func (r *productRepository) UpdateStock(ctx context.Context, id primitive.ObjectID, stockQuantity *int, inStock *bool, now time.Time) (*entity.Product, error) {
	set := bson.M{"updatedAt": now}
	if stockQuantity != nil {
		set["stockQuantity"] = *stockQuantity
	}
	if inStock != nil {
		set["inStock"] = *inStock
	}

	return r.findOneAndUpdate(ctx, id, bson.M{"$set": set}, "failed to update stock")
}

// UpdateDiscount заменяет скидку целиком
func (r *productRepository) UpdateDiscount(ctx context.Context, id primitive.ObjectID, discount entity.Discount, now time.Time) (*entity.Product, error) {
	update := bson.M{"$set": bson.M{"discount": discount, "updatedAt": now}}
	return r.findOneAndUpdate(ctx, id, update, "failed to update discount")
}

// AddRating добавляет оценку атомарным update pipeline
func (r *productRepository) AddRating(ctx context.Context, id primitive.ObjectID, sample float64, now time.Time) (*entity.Product, error) {
	return r.findOneAndUpdate(ctx, id, rating.Pipeline(sample, now), "failed to add rating")
}

func (r *productRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update interface{}, op string) (*entity.Product, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, productsCollection)
	var product entity.Product
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&product)
	timer.Observe(ignoreNoDocuments(err))
	if err != nil {
		return nil, notFound(err, ErrProductNotFound, op)
	}

	return &product, nil
}

// Delete удаляет товар и возвращает удалённый документ для события
func (r *productRepository) Delete(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpDelete, productsCollection)
	var product entity.Product
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&product)
	timer.Observe(ignoreNoDocuments(err))
	if err != nil {
		return nil, notFound(err, ErrProductNotFound, "failed to delete product")
	}

	return &product, nil
}
