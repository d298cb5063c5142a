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

type MongoRatingStore struct {
	collection *mongo.Collection
}

func NewMongoRatingStore(db *database.Mongo) *MongoRatingStore {
	return &MongoRatingStore{collection: db.Collection("ratings")}
}

func (s *MongoRatingStore) Insert(ctx context.Context, r *models.Rating) error {
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	r.IsActive = true

	res, err := s.collection.InsertOne(ctx, r)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}

	r.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoRatingStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Rating, error) {
	var r models.Rating
	err := s.collection.FindOne(ctx, bson.M{"_id": id, "isActive": true}).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *MongoRatingStore) FindActiveByUserAndMovie(ctx context.Context, userID, movieID primitive.ObjectID) (*models.Rating, error) {
	var r models.Rating
	err := s.collection.FindOne(ctx, bson.M{
		"userId":   userID,
		"movieId":  movieID,
		"isActive": true,
	}).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *MongoRatingStore) ListByMovie(ctx context.Context, movieID primitive.ObjectID, page, limit int) ([]models.Rating, int64, error) {
	return s.list(ctx, bson.M{"movieId": movieID, "isActive": true}, page, limit)
}

func (s *MongoRatingStore) ListByUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]models.Rating, int64, error) {
	return s.list(ctx, bson.M{"userId": userID, "isActive": true}, page, limit)
}

func (s *MongoRatingStore) list(ctx context.Context, query bson.M, page, limit int) ([]models.Rating, int64, error) {
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

	ratings := []models.Rating{}
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, 0, err
	}
	return ratings, total, nil
}

func (s *MongoRatingStore) Update(ctx context.Context, r *models.Rating) error {
	r.UpdatedAt = time.Now().UTC()

	res, err := s.collection.ReplaceOne(ctx, bson.M{"_id": r.ID, "isActive": true}, r)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoRatingStore) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
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

// CountActiveByValue groups the movie's active ratings by star value. The
// service folds the buckets into the denormalized snapshot.
func (s *MongoRatingStore) CountActiveByValue(ctx context.Context, movieID primitive.ObjectID) (map[int]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"movieId": movieID, "isActive": true}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$value",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var buckets []struct {
		Value int   `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}

	counts := make(map[int]int64, len(buckets))
	for _, b := range buckets {
		counts[b.Value] = b.Count
	}
	return counts, nil
}
