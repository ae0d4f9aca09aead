package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Username       string             `bson:"username"`
	Email          string             `bson:"email"`
	HashedPassword string             `bson:"password"`
	Role           string             `bson:"role"`
	FirstName      string             `bson:"firstName,omitempty"`
	LastName       string             `bson:"lastName,omitempty"`
	Phone          string             `bson:"phone,omitempty"`
	Address        Address            `bson:"address"`
	CreatedAt      time.Time          `bson:"createdAt"`
	LastLogin      *time.Time         `bson:"lastLogin,omitempty"`
}
