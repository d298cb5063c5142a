package media

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kinostream/backend/internal/response"
	"github.com/kinostream/backend/internal/store"
)

// Presigner is the playback-URL contract; the S3 Service satisfies it and
// tests substitute a stub.
type Presigner interface {
	PlaybackURL(key string) (string, time.Time, error)
}

type Handler struct {
	movies  store.MovieStore
	presign Presigner
}

func NewHandler(movies store.MovieStore, presign Presigner) *Handler {
	return &Handler{movies: movies, presign: presign}
}

func (h *Handler) GetVideo(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid movie ID", nil)
	}

	m, err := h.movies.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.NotFound(c, "Movie")
		}
		return response.InternalError(c, "Failed to fetch movie")
	}

	if m.Media.VideoKey == "" {
		return response.NotFound(c, "Video")
	}

	if h.presign == nil {
		return response.InternalError(c, "Media storage is not configured")
	}

	url, expiresAt, err := h.presign.PlaybackURL(m.Media.VideoKey)
	if err != nil {
		return response.InternalError(c, "Failed to generate playback URL")
	}

	return response.Success(c, fiber.Map{
		"url":        url,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	}, "Playback URL generated successfully")
}

func (h *Handler) GetVideoInfo(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid movie ID", nil)
	}

	m, err := h.movies.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.NotFound(c, "Movie")
		}
		return response.InternalError(c, "Failed to fetch movie")
	}

	return response.Success(c, fiber.Map{
		"duration_minutes": m.DurationMinutes,
		"format":           m.Media.Format,
		"width":            m.Media.Width,
		"height":           m.Media.Height,
	}, "Video info retrieved successfully")
}
