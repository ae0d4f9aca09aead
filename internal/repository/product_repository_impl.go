package repository

import (
	"context"
	"errors"

	"github.com/dmitryhil/vineweb/internal/catalog"
	"github.com/dmitryhil/vineweb/internal/domain"
	"github.com/dmitryhil/vineweb/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productsCollection = "products"

type MongoDBProductRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBProductRepository(db *mongo.Database) ProductRepository {
	return &MongoDBProductRepositoryImpl{db: db}
}

func (r *MongoDBProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (product domain.Product, err error) {
	result, err := r.db.Collection(productsCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return
	}

	data.ID = result.InsertedID.(primitive.ObjectID)
	return data, nil
}

func (r *MongoDBProductRepositoryImpl) GetProducts(ctx context.Context, query catalog.Query) (data []domain.Product, total int64, err error) {
	filter := buildProductFilter(query.Criteria)

	opts := options.Find().
		SetSort(buildProductSort(query.Sort)).
		SetSkip(query.Offset()).
		SetLimit(int64(query.Limit))

	if query.Sort.Field == "name" {
		opts.SetCollation(&options.Collation{Locale: "en"})
	}

	cursor, err := r.db.Collection(productsCollection).Find(ctx, filter, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}

	data = []domain.Product{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}

	total, err = r.db.Collection(productsCollection).CountDocuments(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}

	return data, total, nil
}

func (r *MongoDBProductRepositoryImpl) GetProductByID(ctx context.Context, id string) (product domain.Product, err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return product, errs.ErrProductNotFound
	}

	filter := bson.D{{Key: "_id", Value: productID}}

	err = r.db.Collection(productsCollection).FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return product, errs.ErrProductNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductByID").Msg("")
		return product, err
	}

	return product, nil
}

func (r *MongoDBProductRepositoryImpl) GetProductsByIDs(ctx context.Context, ids []primitive.ObjectID) (data []domain.Product, err error) {
	data = []domain.Product{}
	if len(ids) == 0 {
		return data, nil
	}

	cursor, err := r.db.Collection(productsCollection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductsByIDs").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductsByIDs").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) UpdateProduct(ctx context.Context, id string, changes domain.ProductChanges) (product domain.Product, err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return product, errs.ErrProductNotFound
	}

	filter := bson.D{{Key: "_id", Value: productID}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err = r.db.Collection(productsCollection).FindOneAndUpdate(ctx, filter, buildProductUpdate(changes), opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return product, errs.ErrProductNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateProduct").Msg("Failed to update product")
		return product, err
	}

	return product, nil
}

func (r *MongoDBProductRepositoryImpl) DeleteProduct(ctx context.Context, id string) (product domain.Product, err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return product, errs.ErrProductNotFound
	}

	filter := bson.D{{Key: "_id", Value: productID}}

	err = r.db.Collection(productsCollection).FindOneAndDelete(ctx, filter).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return product, errs.ErrProductNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
		return product, err
	}

	return product, nil
}

// IncrementStock applies a single atomic $inc; delta is negative for orders.
func (r *MongoDBProductRepositoryImpl) IncrementStock(ctx context.Context, id primitive.ObjectID, delta int64) (err error) {
	filter := bson.D{{Key: "_id", Value: id}}
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "stockQuantity", Value: delta}}}}

	result, err := r.db.Collection(productsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "IncrementStock").Msg("Failed to update product stock")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrProductNotFound
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) CountProducts(ctx context.Context, criteria catalog.Criteria) (count int64, err error) {
	count, err = r.db.Collection(productsCollection).CountDocuments(ctx, buildProductFilter(criteria))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CountProducts").Msg("")
	}

	return
}

func (r *MongoDBProductRepositoryImpl) CountDiscountedProducts(ctx context.Context) (count int64, err error) {
	count, err = r.db.Collection(productsCollection).CountDocuments(ctx, bson.M{"discount": bson.M{"$gt": 0}})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CountDiscountedProducts").Msg("")
	}

	return
}

func (r *MongoDBProductRepositoryImpl) CountByCategory(ctx context.Context) (counts map[string]int64, err error) {
	return countGroupedBy(ctx, r.db.Collection(productsCollection), "category")
}

func (r *MongoDBProductRepositoryImpl) GetLowStockProducts(ctx context.Context, threshold int64, limit int64) (data []domain.Product, err error) {
	filter := bson.M{"stockQuantity": bson.M{"$lt": threshold}, "inStock": true}
	opts := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "stockQuantity", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.db.Collection(productsCollection).Find(ctx, filter, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetLowStockProducts").Msg("")
		return
	}

	data = []domain.Product{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetLowStockProducts").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) GetImagePaths(ctx context.Context) (paths []string, err error) {
	opts := options.Find().SetProjection(bson.D{{Key: "image", Value: 1}, {Key: "images", Value: 1}})

	cursor, err := r.db.Collection(productsCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetImagePaths").Msg("")
		return
	}

	var products []domain.Product
	if err = cursor.All(ctx, &products); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetImagePaths").Msg("")
		return
	}

	for _, p := range products {
		paths = append(paths, p.StoredImages()...)
	}

	return paths, nil
}

type groupCount struct {
	Key   string `bson:"_id"`
	Count int64  `bson:"count"`
}

func countGroupedBy(ctx context.Context, collection *mongo.Collection, field string) (counts map[string]int64, err error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "countGroupedBy").Str("field", field).Msg("")
		return
	}

	var groups []groupCount
	if err = cursor.All(ctx, &groups); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "countGroupedBy").Str("field", field).Msg("")
		return
	}

	counts = make(map[string]int64, len(groups))
	for _, g := range groups {
		counts[g.Key] = g.Count
	}

	return counts, nil
}
