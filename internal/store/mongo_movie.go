package store

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kinostream/backend/internal/database"
	"github.com/kinostream/backend/internal/models"
)

type MongoMovieStore struct {
	collection *mongo.Collection
}

func NewMongoMovieStore(db *database.Mongo) *MongoMovieStore {
	return &MongoMovieStore{collection: db.Collection("movies")}
}

func (s *MongoMovieStore) Create(ctx context.Context, m *models.Movie) error {
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	m.IsActive = true
	m.RatingStats = models.ZeroRatingStats()

	res, err := s.collection.InsertOne(ctx, m)
	if err != nil {
		return err
	}

	m.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID only returns active movies; a soft-deleted movie reads as missing.
func (s *MongoMovieStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Movie, error) {
	var m models.Movie
	err := s.collection.FindOne(ctx, bson.M{"_id": id, "isActive": true}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *MongoMovieStore) List(ctx context.Context, filter MovieFilter, page, limit int) ([]models.Movie, int64, error) {
	query := bson.M{"isActive": true}
	if filter.Genre != "" {
		query["genres"] = filter.Genre
	}
	if filter.Search != "" {
		query["title"] = bson.M{"$regex": regexp.QuoteMeta(filter.Search), "$options": "i"}
	}

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

	movies := []models.Movie{}
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, 0, err
	}
	return movies, total, nil
}

func (s *MongoMovieStore) Update(ctx context.Context, m *models.Movie) error {
	m.UpdatedAt = time.Now().UTC()

	res, err := s.collection.ReplaceOne(ctx, bson.M{"_id": m.ID, "isActive": true}, m)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoMovieStore) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
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

func (s *MongoMovieStore) IncrementViewCount(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": id, "isActive": true},
		bson.M{"$inc": bson.M{"viewCount": 1}},
	)
	return err
}

func (s *MongoMovieStore) UpdateRatingStats(ctx context.Context, id primitive.ObjectID, stats models.RatingStats) error {
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"ratingStats": stats, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
