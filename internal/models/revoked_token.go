package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RevokedToken blocks a logged-out JWT until its natural expiry. A TTL index
// on expiresAt purges entries automatically, so the store never needs manual
// cleanup.
type RevokedToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Token     string             `bson:"token" json:"-"`
	UserID    primitive.ObjectID `bson:"userId,omitempty" json:"user_id,omitempty"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expires_at"`
	RevokedAt time.Time          `bson:"revokedAt" json:"revoked_at"`
}
