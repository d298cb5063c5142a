package favorite

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kinostream/backend/internal/auth"
	"github.com/kinostream/backend/internal/models"
	"github.com/kinostream/backend/internal/response"
	"github.com/kinostream/backend/internal/store"
	"github.com/kinostream/backend/internal/validation"
)

var policy = bluemonday.StrictPolicy()

type Handler struct {
	favorites store.FavoriteStore
	movies    store.MovieStore
}

func NewHandler(favorites store.FavoriteStore, movies store.MovieStore) *Handler {
	return &Handler{favorites: favorites, movies: movies}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var body struct {
		MovieID        string `json:"movieId"`
		Note           string `json:"note"`
		PersonalRating int    `json:"personalRating"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	v := validation.New()
	v.Require("movieId", body.MovieID)
	v.MaxLength("note", body.Note, 500)
	if body.PersonalRating != 0 {
		v.IntRange("personalRating", body.PersonalRating, 1, 5)
	}
	if !v.Valid() {
		return response.ValidationError(c, v.Errors())
	}

	movieID, err := primitive.ObjectIDFromHex(body.MovieID)
	if err != nil {
		return response.BadRequest(c, "Invalid movie ID", nil)
	}

	if _, err := h.movies.FindByID(c.Context(), movieID); err != nil {
		return response.NotFound(c, "Movie")
	}

	userID := auth.CurrentUserID(c)
	note := policy.Sanitize(body.Note)

	// Re-adding a previously removed favorite reactivates the old document
	// rather than violating the partial unique index.
	existing, err := h.favorites.FindByUserAndMovie(c.Context(), userID, movieID)
	if err == nil {
		if existing.IsActive {
			return response.Conflict(c, "Movie is already in favorites")
		}
		existing.IsActive = true
		existing.Note = note
		existing.PersonalRating = body.PersonalRating
		if err := h.favorites.Update(c.Context(), existing); err != nil {
			return response.InternalError(c, "Failed to add favorite")
		}
		return response.Created(c, existing, "Movie added to favorites")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return response.InternalError(c, "Failed to add favorite")
	}

	f := &models.Favorite{
		UserID:         userID,
		MovieID:        movieID,
		Note:           note,
		PersonalRating: body.PersonalRating,
	}

	if err := h.favorites.Insert(c.Context(), f); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return response.Conflict(c, "Movie is already in favorites")
		}
		return response.InternalError(c, "Failed to add favorite")
	}

	return response.Created(c, f, "Movie added to favorites")
}

func (h *Handler) List(c *fiber.Ctx) error {
	page, limit := response.PageParams(c, 20, 50)

	favorites, total, err := h.favorites.ListByUser(c.Context(), auth.CurrentUserID(c), page, limit)
	if err != nil {
		return response.InternalError(c, "Failed to fetch favorites")
	}

	return response.SuccessWithPagination(c, favorites,
		response.CalculatePagination(page, limit, total), "Favorites retrieved successfully")
}

func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid favorite ID", nil)
	}

	var body struct {
		Note           string `json:"note"`
		PersonalRating int    `json:"personalRating"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	v := validation.New()
	v.MaxLength("note", body.Note, 500)
	if body.PersonalRating != 0 {
		v.IntRange("personalRating", body.PersonalRating, 1, 5)
	}
	if !v.Valid() {
		return response.ValidationError(c, v.Errors())
	}

	f, err := h.favorites.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.NotFound(c, "Favorite")
		}
		return response.InternalError(c, "Failed to fetch favorite")
	}

	if f.UserID != auth.CurrentUserID(c) {
		return response.Forbidden(c, "You can only update your own favorites")
	}

	f.Note = policy.Sanitize(body.Note)
	f.PersonalRating = body.PersonalRating
	if err := h.favorites.Update(c.Context(), f); err != nil {
		return response.InternalError(c, "Failed to update favorite")
	}

	return response.Success(c, f, "Favorite updated successfully")
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid favorite ID", nil)
	}

	f, err := h.favorites.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.NotFound(c, "Favorite")
		}
		return response.InternalError(c, "Failed to fetch favorite")
	}

	if f.UserID != auth.CurrentUserID(c) {
		return response.Forbidden(c, "You can only remove your own favorites")
	}

	if err := h.favorites.SoftDelete(c.Context(), id); err != nil {
		return response.InternalError(c, "Failed to remove favorite")
	}

	return response.Success(c, nil, "Movie removed from favorites")
}
