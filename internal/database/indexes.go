package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique, compound, partial and TTL indexes the
// application relies on. CreateMany is idempotent for identical definitions,
// so this runs on every startup.
func EnsureIndexes(ctx context.Context, m *Mongo) error {
	indexes := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		},
		"movies": {
			{Keys: bson.D{{Key: "title", Value: 1}}},
			{Keys: bson.D{{Key: "genres", Value: 1}}},
			{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		"ratings": {
			{
				Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "movieId", Value: 1}},
				Options: options.Index().SetUnique(true).SetPartialFilterExpression(bson.M{"isActive": true}),
			},
			{Keys: bson.D{{Key: "movieId", Value: 1}, {Key: "isActive", Value: 1}}},
		},
		"comments": {
			{Keys: bson.D{{Key: "movieId", Value: 1}, {Key: "isActive", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		"favorites": {
			{
				Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "movieId", Value: 1}},
				Options: options.Index().SetUnique(true).SetPartialFilterExpression(bson.M{"isActive": true}),
			},
		},
		"revoked_tokens": {
			{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)},
			// TTL: the document disappears the moment the token would have
			// expired anyway.
			{Keys: bson.D{{Key: "expiresAt", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
		},
	}

	for coll, models := range indexes {
		if _, err := m.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
