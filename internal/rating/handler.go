package rating

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kinostream/backend/internal/auth"
	"github.com/kinostream/backend/internal/response"
	"github.com/kinostream/backend/internal/store"
	"github.com/kinostream/backend/internal/validation"
)

var policy = bluemonday.StrictPolicy()

const maxReviewLength = 1000

type Handler struct {
	svc     *Service
	ratings store.RatingStore
}

func NewHandler(svc *Service, ratings store.RatingStore) *Handler {
	return &Handler{svc: svc, ratings: ratings}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var body struct {
		MovieID string `json:"movieId"`
		Value   int    `json:"value"`
		Review  string `json:"review"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	v := validation.New()
	v.Require("movieId", body.MovieID)
	v.IntRange("value", body.Value, 1, 5)
	v.MaxLength("review", body.Review, maxReviewLength)
	if !v.Valid() {
		return response.ValidationError(c, v.Errors())
	}

	movieID, err := primitive.ObjectIDFromHex(body.MovieID)
	if err != nil {
		return response.BadRequest(c, "Invalid movie ID", nil)
	}

	r, created, err := h.svc.Rate(c.Context(), auth.CurrentUserID(c), movieID, body.Value, policy.Sanitize(body.Review))
	if err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			return response.NotFound(c, "Movie")
		}
		return response.InternalError(c, "Failed to save rating")
	}

	if created {
		return response.Created(c, r, "Rating created successfully")
	}
	return response.Success(c, r, "Rating updated successfully")
}

func (h *Handler) ListByMovie(c *fiber.Ctx) error {
	movieID, err := primitive.ObjectIDFromHex(c.Params("movieId"))
	if err != nil {
		return response.BadRequest(c, "Invalid movie ID", nil)
	}

	page, limit := response.PageParams(c, 20, 50)

	ratings, total, err := h.ratings.ListByMovie(c.Context(), movieID, page, limit)
	if err != nil {
		return response.InternalError(c, "Failed to fetch ratings")
	}

	return response.SuccessWithPagination(c, ratings,
		response.CalculatePagination(page, limit, total), "Ratings retrieved successfully")
}

func (h *Handler) ListMine(c *fiber.Ctx) error {
	page, limit := response.PageParams(c, 20, 50)

	ratings, total, err := h.ratings.ListByUser(c.Context(), auth.CurrentUserID(c), page, limit)
	if err != nil {
		return response.InternalError(c, "Failed to fetch ratings")
	}

	return response.SuccessWithPagination(c, ratings,
		response.CalculatePagination(page, limit, total), "Ratings retrieved successfully")
}

func (h *Handler) Update(c *fiber.Ctx) error {
	ratingID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid rating ID", nil)
	}

	var body struct {
		Value  int    `json:"value"`
		Review string `json:"review"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	v := validation.New()
	v.IntRange("value", body.Value, 1, 5)
	v.MaxLength("review", body.Review, maxReviewLength)
	if !v.Valid() {
		return response.ValidationError(c, v.Errors())
	}

	r, err := h.svc.Update(c.Context(), auth.CurrentUserID(c), ratingID, body.Value, policy.Sanitize(body.Review))
	if err != nil {
		switch {
		case errors.Is(err, ErrRatingNotFound):
			return response.NotFound(c, "Rating")
		case errors.Is(err, ErrNotOwner):
			return response.Forbidden(c, "You can only update your own ratings")
		default:
			return response.InternalError(c, "Failed to update rating")
		}
	}

	return response.Success(c, r, "Rating updated successfully")
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	ratingID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid rating ID", nil)
	}

	if err := h.svc.Delete(c.Context(), auth.CurrentUserID(c), ratingID); err != nil {
		switch {
		case errors.Is(err, ErrRatingNotFound):
			return response.NotFound(c, "Rating")
		case errors.Is(err, ErrNotOwner):
			return response.Forbidden(c, "You can only delete your own ratings")
		default:
			return response.InternalError(c, "Failed to delete rating")
		}
	}

	return response.Success(c, nil, "Rating deleted successfully")
}
