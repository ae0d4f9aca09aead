package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	ID       primitive.ObjectID `bson:"_id"`
	Product  primitive.ObjectID `bson:"product"`
	Size     string             `bson:"size"`
	Quantity int64              `bson:"quantity"`
}

type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	User      primitive.ObjectID `bson:"user"`
	Items     []CartItem         `bson:"items"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

type Wishlist struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	User      primitive.ObjectID   `bson:"user"`
	Products  []primitive.ObjectID `bson:"products"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}
