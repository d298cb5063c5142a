package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating holds one user's rating of one movie. A unique compound index on
// (userId, movieId) backs the one-active-rating-per-movie invariant; soft
// deleted ratings keep the audit trail but are excluded from stats.
type Rating struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"user_id"`
	MovieID   primitive.ObjectID `bson:"movieId" json:"movie_id"`
	Value     int                `bson:"value" json:"value"`
	Review    string             `bson:"review,omitempty" json:"review,omitempty"`
	IsActive  bool               `bson:"isActive" json:"is_active"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_at"`
}
