// Package store holds the persistence interfaces the services depend on and
// their MongoDB implementations. Read paths on soft-deleted resources filter
// isActive at the query site rather than through hidden hooks.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kinostream/backend/internal/models"
)

// ErrNotFound is returned when a document does not exist or is inactive.
var ErrNotFound = errors.New("document not found")

// ErrDuplicate is returned when a unique index rejects a write.
var ErrDuplicate = errors.New("duplicate document")

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MovieFilter narrows movie list queries.
type MovieFilter struct {
	Genre  string
	Search string
}

type MovieStore interface {
	Create(ctx context.Context, m *models.Movie) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Movie, error)
	List(ctx context.Context, filter MovieFilter, page, limit int) ([]models.Movie, int64, error)
	Update(ctx context.Context, m *models.Movie) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	IncrementViewCount(ctx context.Context, id primitive.ObjectID) error
	UpdateRatingStats(ctx context.Context, id primitive.ObjectID, stats models.RatingStats) error
}

type RatingStore interface {
	Insert(ctx context.Context, r *models.Rating) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Rating, error)
	FindActiveByUserAndMovie(ctx context.Context, userID, movieID primitive.ObjectID) (*models.Rating, error)
	ListByMovie(ctx context.Context, movieID primitive.ObjectID, page, limit int) ([]models.Rating, int64, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]models.Rating, int64, error)
	Update(ctx context.Context, r *models.Rating) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	// CountActiveByValue groups active ratings of a movie by star value.
	CountActiveByValue(ctx context.Context, movieID primitive.ObjectID) (map[int]int64, error)
}

type CommentStore interface {
	Insert(ctx context.Context, cm *models.Comment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	ListByMovie(ctx context.Context, movieID primitive.ObjectID, page, limit int) ([]models.Comment, int64, error)
	Update(ctx context.Context, cm *models.Comment) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

type FavoriteStore interface {
	Insert(ctx context.Context, f *models.Favorite) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Favorite, error)
	// FindByUserAndMovie returns the favorite for the pair regardless of its
	// active flag, so a removed favorite can be reactivated.
	FindByUserAndMovie(ctx context.Context, userID, movieID primitive.ObjectID) (*models.Favorite, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]models.Favorite, int64, error)
	Update(ctx context.Context, f *models.Favorite) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

type TokenStore interface {
	Revoke(ctx context.Context, t *models.RevokedToken) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
