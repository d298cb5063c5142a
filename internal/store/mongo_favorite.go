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

type MongoFavoriteStore struct {
	collection *mongo.Collection
}

func NewMongoFavoriteStore(db *database.Mongo) *MongoFavoriteStore {
	return &MongoFavoriteStore{collection: db.Collection("favorites")}
}

func (s *MongoFavoriteStore) Insert(ctx context.Context, f *models.Favorite) error {
	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now
	f.IsActive = true

	res, err := s.collection.InsertOne(ctx, f)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}

	f.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoFavoriteStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Favorite, error) {
	var f models.Favorite
	err := s.collection.FindOne(ctx, bson.M{"_id": id, "isActive": true}).Decode(&f)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *MongoFavoriteStore) FindByUserAndMovie(ctx context.Context, userID, movieID primitive.ObjectID) (*models.Favorite, error) {
	var f models.Favorite
	err := s.collection.FindOne(ctx, bson.M{"userId": userID, "movieId": movieID}).Decode(&f)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *MongoFavoriteStore) ListByUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]models.Favorite, int64, error) {
	query := bson.M{"userId": userID, "isActive": true}

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

	favorites := []models.Favorite{}
	if err := cursor.All(ctx, &favorites); err != nil {
		return nil, 0, err
	}
	return favorites, total, nil
}

func (s *MongoFavoriteStore) Update(ctx context.Context, f *models.Favorite) error {
	f.UpdatedAt = time.Now().UTC()

	res, err := s.collection.ReplaceOne(ctx, bson.M{"_id": f.ID}, f)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoFavoriteStore) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
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
