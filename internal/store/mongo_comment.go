package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kinostream/backend/internal/database"
	"github.com/kinostream/backend/internal/models"
)

type MongoCommentStore struct {
	collection *mongo.Collection
}

func NewMongoCommentStore(db *database.Mongo) *MongoCommentStore {
	return &MongoCommentStore{collection: db.Collection("comments")}
}

func (s *MongoCommentStore) Insert(ctx context.Context, cm *models.Comment) error {
	now := time.Now().UTC()
	cm.CreatedAt = now
	cm.UpdatedAt = now
	cm.IsActive = true

	res, err := s.collection.InsertOne(ctx, cm)
	if err != nil {
		return err
	}

	cm.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoCommentStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var cm models.Comment
	err := s.collection.FindOne(ctx, bson.M{"_id": id, "isActive": true}).Decode(&cm)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cm, nil
}

func (s *MongoCommentStore) ListByMovie(ctx context.Context, movieID primitive.ObjectID, page, limit int) ([]models.Comment, int64, error) {
	query := bson.M{"movieId": movieID, "isActive": true}

	total, err := s.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := s.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}

	comments := []models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (s *MongoCommentStore) Update(ctx context.Context, cm *models.Comment) error {
	cm.UpdatedAt = time.Now().UTC()

	res, err := s.collection.ReplaceOne(ctx, bson.M{"_id": cm.ID, "isActive": true}, cm)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoCommentStore) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": id, "isActive": true},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
