package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kinostream/backend/internal/database"
	"github.com/kinostream/backend/internal/models"
)

type MongoTokenStore struct {
	collection *mongo.Collection
}

func NewMongoTokenStore(db *database.Mongo) *MongoTokenStore {
	return &MongoTokenStore{collection: db.Collection("revoked_tokens")}
}

func (s *MongoTokenStore) Revoke(ctx context.Context, t *models.RevokedToken) error {
	t.RevokedAt = time.Now().UTC()

	_, err := s.collection.InsertOne(ctx, t)
	if mongo.IsDuplicateKeyError(err) {
		// Already revoked; logout is idempotent.
		return nil
	}
	return err
}

func (s *MongoTokenStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	err := s.collection.FindOne(ctx, bson.M{"token": token}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
