package repository

import (
	"context"
	"errors"
	"time"

	"github.com/dmitryhil/vineweb/internal/domain"
	pkgdto "github.com/dmitryhil/vineweb/pkg/dto"
	"github.com/dmitryhil/vineweb/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ordersCollection = "orders"

type MongoDBOrderRepositoryImpl struct {
	db           *mongo.Database
	transactions bool
}

// CreateNewMongoDBOrderRepository returns a repository whose HandleTrx opens a
// multi-document transaction when transactions is true. Standalone servers do
// not support them, in which case HandleTrx runs fn directly.
func CreateNewMongoDBOrderRepository(db *mongo.Database, transactions bool) OrderRepository {
	return &MongoDBOrderRepositoryImpl{db: db, transactions: transactions}
}

func (r *MongoDBOrderRepositoryImpl) HandleTrx(ctx context.Context, fn func(ctx context.Context) error) error {
	if !r.transactions {
		return fn(ctx)
	}

	session, err := r.db.Client().StartSession()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "HandleTrx").Msg("")
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(ctx mongo.SessionContext) (interface{}, error) {
		err := fn(ctx)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "HandleTrx").Msg("")
		}
		return nil, err
	})

	return err
}

func (r *MongoDBOrderRepositoryImpl) AddOrder(ctx context.Context, data domain.Order) (order domain.Order, err error) {
	result, err := r.db.Collection(ordersCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddOrder").Msg("")
		return
	}

	data.ID = result.InsertedID.(primitive.ObjectID)
	return data, nil
}

func (r *MongoDBOrderRepositoryImpl) DeleteOrder(ctx context.Context, id primitive.ObjectID) (err error) {
	_, err = r.db.Collection(ordersCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteOrder").Msg("")
	}

	return
}

func (r *MongoDBOrderRepositoryImpl) GetOrders(ctx context.Context, filter pkgdto.Filter) (data []domain.Order, total int64, err error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(filter.Offset()).
		SetLimit(int64(filter.Limit))

	cursor, err := r.db.Collection(ordersCollection).Find(ctx, query, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrders").Msg("")
		return
	}

	data = []domain.Order{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrders").Msg("")
		return
	}

	total, err = r.db.Collection(ordersCollection).CountDocuments(ctx, query)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrders").Msg("")
		return
	}

	return data, total, nil
}

func (r *MongoDBOrderRepositoryImpl) GetOrderByID(ctx context.Context, id string) (order domain.Order, err error) {
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return order, errs.ErrOrderNotFound
	}

	err = r.db.Collection(ordersCollection).FindOne(ctx, bson.D{{Key: "_id", Value: orderID}}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return order, errs.ErrOrderNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrderByID").Msg("")
		return order, err
	}

	return order, nil
}

func (r *MongoDBOrderRepositoryImpl) UpdateOrderStatus(ctx context.Context, id string, status string, at time.Time) (order domain.Order, err error) {
	return r.setOrderFields(ctx, id, bson.D{{Key: "status", Value: status}, {Key: "updatedAt", Value: at}}, "UpdateOrderStatus")
}

func (r *MongoDBOrderRepositoryImpl) UpdatePaymentStatus(ctx context.Context, id string, paymentStatus string, at time.Time) (order domain.Order, err error) {
	return r.setOrderFields(ctx, id, bson.D{{Key: "paymentStatus", Value: paymentStatus}, {Key: "updatedAt", Value: at}}, "UpdatePaymentStatus")
}

func (r *MongoDBOrderRepositoryImpl) setOrderFields(ctx context.Context, id string, set bson.D, component string) (order domain.Order, err error) {
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return order, errs.ErrOrderNotFound
	}

	filter := bson.D{{Key: "_id", Value: orderID}}
	update := bson.D{{Key: "$set", Value: set}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err = r.db.Collection(ordersCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return order, errs.ErrOrderNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("Failed to update order")
		return order, err
	}

	return order, nil
}

func (r *MongoDBOrderRepositoryImpl) CountOrders(ctx context.Context) (count int64, err error) {
	count, err = r.db.Collection(ordersCollection).CountDocuments(ctx, bson.D{})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CountOrders").Msg("")
	}

	return
}

func (r *MongoDBOrderRepositoryImpl) CountByStatus(ctx context.Context) (counts map[string]int64, err error) {
	return countGroupedBy(ctx, r.db.Collection(ordersCollection), "status")
}

func (r *MongoDBOrderRepositoryImpl) GetRecentOrders(ctx context.Context, limit int64) (data []domain.Order, err error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).SetLimit(limit)

	cursor, err := r.db.Collection(ordersCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetRecentOrders").Msg("")
		return
	}

	data = []domain.Order{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetRecentOrders").Msg("")
		return
	}

	return data, nil
}
