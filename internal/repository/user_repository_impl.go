package repository

import (
	"context"
	"errors"
	"time"

	"github.com/dmitryhil/vineweb/internal/domain"
	"github.com/dmitryhil/vineweb/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const usersCollection = "users"

type MongoDBUserRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBUserRepository(db *mongo.Database) UserRepository {
	return &MongoDBUserRepositoryImpl{db: db}
}

func (r *MongoDBUserRepositoryImpl) AddUser(ctx context.Context, data domain.User) (user domain.User, err error) {
	result, err := r.db.Collection(usersCollection).InsertOne(ctx, data)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user, errs.ErrUserAlreadyExists
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "AddUser").Msg("")
		return
	}

	data.ID = result.InsertedID.(primitive.ObjectID)
	return data, nil
}

func (r *MongoDBUserRepositoryImpl) GetUserByID(ctx context.Context, id string) (user domain.User, err error) {
	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return user, errs.ErrUserNotFound
	}

	return r.findOne(ctx, bson.D{{Key: "_id", Value: userID}}, "GetUserByID")
}

func (r *MongoDBUserRepositoryImpl) GetUserByLogin(ctx context.Context, login string) (user domain.User, err error) {
	filter := bson.M{"$or": bson.A{bson.M{"username": login}, bson.M{"email": login}}}
	return r.findOne(ctx, filter, "GetUserByLogin")
}

func (r *MongoDBUserRepositoryImpl) findOne(ctx context.Context, filter interface{}, component string) (user domain.User, err error) {
	err = r.db.Collection(usersCollection).FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user, errs.ErrUserNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return user, err
	}

	return user, nil
}

func (r *MongoDBUserRepositoryImpl) ExistsByUsernameOrEmail(ctx context.Context, username string, email string) (exists bool, err error) {
	filter := bson.M{"$or": bson.A{bson.M{"username": username}, bson.M{"email": email}}}
	return r.exists(ctx, filter, "ExistsByUsernameOrEmail")
}

func (r *MongoDBUserRepositoryImpl) ExistsByRole(ctx context.Context, role string) (exists bool, err error) {
	return r.exists(ctx, bson.M{"role": role}, "ExistsByRole")
}

func (r *MongoDBUserRepositoryImpl) exists(ctx context.Context, filter interface{}, component string) (exists bool, err error) {
	count, err := r.db.Collection(usersCollection).CountDocuments(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return
	}

	return count > 0, nil
}

func (r *MongoDBUserRepositoryImpl) UpdateLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) (err error) {
	filter := bson.D{{Key: "_id", Value: id}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "lastLogin", Value: at}}}}

	result, err := r.db.Collection(usersCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateLastLogin").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrUserNotFound
	}

	return nil
}

func (r *MongoDBUserRepositoryImpl) CountUsers(ctx context.Context, role string) (count int64, err error) {
	filter := bson.M{}
	if role != "" {
		filter["role"] = role
	}

	count, err = r.db.Collection(usersCollection).CountDocuments(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CountUsers").Msg("")
	}

	return
}
