package rating

import (
	"context"
	"errors"
	"math"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kinostream/backend/internal/models"
	"github.com/kinostream/backend/internal/store"
)

var (
	ErrMovieNotFound  = errors.New("movie not found")
	ErrRatingNotFound = errors.New("rating not found")
	ErrNotOwner       = errors.New("rating belongs to another user")
)

type Service struct {
	ratings store.RatingStore
	movies  store.MovieStore
}

func NewService(ratings store.RatingStore, movies store.MovieStore) *Service {
	return &Service{ratings: ratings, movies: movies}
}

// Rate creates the caller's rating for a movie, or updates it in place when
// an active one already exists. Returns the rating and whether it was newly
// created. The movie must exist before anything is written.
func (s *Service) Rate(ctx context.Context, userID, movieID primitive.ObjectID, value int, review string) (*models.Rating, bool, error) {
	if _, err := s.movies.FindByID(ctx, movieID); err != nil {
		return nil, false, ErrMovieNotFound
	}

	existing, err := s.ratings.FindActiveByUserAndMovie(ctx, userID, movieID)
	if err == nil {
		existing.Value = value
		existing.Review = review
		if err := s.ratings.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		if err := s.recomputeStats(ctx, movieID); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, err
	}

	r := &models.Rating{UserID: userID, MovieID: movieID, Value: value, Review: review}
	if err := s.ratings.Insert(ctx, r); err != nil {
		return nil, false, err
	}
	if err := s.recomputeStats(ctx, movieID); err != nil {
		return nil, false, err
	}
	return r, true, nil
}

func (s *Service) Update(ctx context.Context, userID, ratingID primitive.ObjectID, value int, review string) (*models.Rating, error) {
	r, err := s.ratings.FindByID(ctx, ratingID)
	if err != nil {
		return nil, ErrRatingNotFound
	}
	if r.UserID != userID {
		return nil, ErrNotOwner
	}

	r.Value = value
	r.Review = review
	if err := s.ratings.Update(ctx, r); err != nil {
		return nil, err
	}
	if err := s.recomputeStats(ctx, r.MovieID); err != nil {
		return nil, err
	}
	return r, nil
}

// Delete soft-deletes the rating so the audit trail survives, then recomputes
// the snapshot without it.
func (s *Service) Delete(ctx context.Context, userID, ratingID primitive.ObjectID) error {
	r, err := s.ratings.FindByID(ctx, ratingID)
	if err != nil {
		return ErrRatingNotFound
	}
	if r.UserID != userID {
		return ErrNotOwner
	}

	if err := s.ratings.SoftDelete(ctx, ratingID); err != nil {
		return err
	}
	return s.recomputeStats(ctx, r.MovieID)
}

func (s *Service) recomputeStats(ctx context.Context, movieID primitive.ObjectID) error {
	counts, err := s.ratings.CountActiveByValue(ctx, movieID)
	if err != nil {
		return err
	}
	return s.movies.UpdateRatingStats(ctx, movieID, ComputeStats(counts))
}

// ComputeStats folds per-star counts into the denormalized snapshot. Zero
// active ratings yield average 0, count 0 and all-zero buckets. The average
// is rounded to one decimal.
func ComputeStats(counts map[int]int64) models.RatingStats {
	stats := models.ZeroRatingStats()

	var sum, total int64
	for star := 1; star <= 5; star++ {
		n := counts[star]
		stats.Distribution[strconv.Itoa(star)] = n
		sum += int64(star) * n
		total += n
	}

	if total == 0 {
		return stats
	}

	stats.Count = total
	stats.Average = math.Round(float64(sum)/float64(total)*10) / 10
	return stats
}
