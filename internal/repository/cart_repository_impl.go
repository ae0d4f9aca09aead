package repository

import (
	"context"
	"errors"

	"github.com/dmitryhil/vineweb/internal/domain"
	"github.com/dmitryhil/vineweb/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	cartsCollection     = "carts"
	wishlistsCollection = "wishlists"
)

type MongoDBCartRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBCartRepository(db *mongo.Database) CartRepository {
	return &MongoDBCartRepositoryImpl{db: db}
}

func (r *MongoDBCartRepositoryImpl) GetCartByUser(ctx context.Context, userID primitive.ObjectID) (cart domain.Cart, err error) {
	err = r.db.Collection(cartsCollection).FindOne(ctx, bson.D{{Key: "user", Value: userID}}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return cart, errs.ErrCartNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetCartByUser").Msg("")
		return cart, err
	}

	return cart, nil
}

func (r *MongoDBCartRepositoryImpl) SaveCart(ctx context.Context, cart domain.Cart) (err error) {
	filter := bson.D{{Key: "user", Value: cart.User}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "items", Value: cart.Items},
		{Key: "updatedAt", Value: cart.UpdatedAt},
	}}}

	_, err = r.db.Collection(cartsCollection).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SaveCart").Msg("")
	}

	return
}

func (r *MongoDBCartRepositoryImpl) DeleteCart(ctx context.Context, userID primitive.ObjectID) (err error) {
	_, err = r.db.Collection(cartsCollection).DeleteOne(ctx, bson.D{{Key: "user", Value: userID}})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteCart").Msg("")
	}

	return
}

type MongoDBWishlistRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBWishlistRepository(db *mongo.Database) WishlistRepository {
	return &MongoDBWishlistRepositoryImpl{db: db}
}

func (r *MongoDBWishlistRepositoryImpl) GetWishlistByUser(ctx context.Context, userID primitive.ObjectID) (wishlist domain.Wishlist, err error) {
	err = r.db.Collection(wishlistsCollection).FindOne(ctx, bson.D{{Key: "user", Value: userID}}).Decode(&wishlist)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return wishlist, errs.ErrWishlistNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetWishlistByUser").Msg("")
		return wishlist, err
	}

	return wishlist, nil
}

func (r *MongoDBWishlistRepositoryImpl) SaveWishlist(ctx context.Context, wishlist domain.Wishlist) (err error) {
	filter := bson.D{{Key: "user", Value: wishlist.User}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "products", Value: wishlist.Products},
		{Key: "updatedAt", Value: wishlist.UpdatedAt},
	}}}

	_, err = r.db.Collection(wishlistsCollection).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SaveWishlist").Msg("")
	}

	return
}
