package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite is unique per (userId, movieId) while active; the index is partial
// on isActive so a removed favorite can be re-added later.
type Favorite struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"userId" json:"user_id"`
	MovieID        primitive.ObjectID `bson:"movieId" json:"movie_id"`
	Note           string             `bson:"note,omitempty" json:"note,omitempty"`
	PersonalRating int                `bson:"personalRating,omitempty" json:"personal_rating,omitempty"`
	IsActive       bool               `bson:"isActive" json:"is_active"`
	CreatedAt      time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updated_at"`
}
