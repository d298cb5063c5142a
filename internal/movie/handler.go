package movie

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kinostream/backend/internal/auth"
	"github.com/kinostream/backend/internal/models"
	"github.com/kinostream/backend/internal/response"
	"github.com/kinostream/backend/internal/store"
	"github.com/kinostream/backend/internal/validation"
)

const releaseDateLayout = "2006-01-02"

type Handler struct {
	movies store.MovieStore
}

func NewHandler(movies store.MovieStore) *Handler {
	return &Handler{movies: movies}
}

type movieBody struct {
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Synopsis        string              `json:"synopsis"`
	ReleaseDate     string              `json:"releaseDate"`
	DurationMinutes int                 `json:"durationMinutes"`
	Genres          []string            `json:"genres"`
	Cast            []models.CastMember `json:"cast"`
	Media           models.Media        `json:"media"`
}

func (b *movieBody) validate() (time.Time, map[string]string) {
	v := validation.New()
	v.Require("title", b.Title)
	v.MaxLength("title", b.Title, 200)
	v.Check(b.DurationMinutes > 0, "durationMinutes", "must be a positive number of minutes")
	v.Check(len(b.Genres) > 0, "genres", "at least one genre is required")
	v.Require("releaseDate", b.ReleaseDate)

	releaseDate, err := time.Parse(releaseDateLayout, b.ReleaseDate)
	if err != nil {
		v.AddError("releaseDate", "must be a date in YYYY-MM-DD format")
	}

	if !v.Valid() {
		return time.Time{}, v.Errors()
	}
	return releaseDate, nil
}

func (h *Handler) List(c *fiber.Ctx) error {
	page, limit := response.PageParams(c, 20, 100)
	filter := store.MovieFilter{
		Genre:  c.Query("genre"),
		Search: c.Query("search"),
	}

	movies, total, err := h.movies.List(c.Context(), filter, page, limit)
	if err != nil {
		return response.InternalError(c, "Failed to fetch movies")
	}

	return response.SuccessWithPagination(c, movies,
		response.CalculatePagination(page, limit, total), "Movies retrieved successfully")
}

// Get returns the movie and counts the view. The counter bump is fire and
// forget relative to the read; the returned document reflects the new count.
func (h *Handler) Get(c *fiber.Ctx) error {
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

	if err := h.movies.IncrementViewCount(c.Context(), id); err == nil {
		m.ViewCount++
	}

	return response.Success(c, m, "Movie retrieved successfully")
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var body movieBody
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	releaseDate, errs := body.validate()
	if errs != nil {
		return response.ValidationError(c, errs)
	}

	m := &models.Movie{
		Title:           body.Title,
		Description:     body.Description,
		Synopsis:        body.Synopsis,
		ReleaseDate:     releaseDate,
		DurationMinutes: body.DurationMinutes,
		Genres:          body.Genres,
		Cast:            body.Cast,
		Media:           body.Media,
		CreatedBy:       auth.CurrentUserID(c),
	}

	if err := h.movies.Create(c.Context(), m); err != nil {
		return response.InternalError(c, "Failed to create movie")
	}

	return response.Created(c, m, "Movie created successfully")
}

func (h *Handler) Update(c *fiber.Ctx) error {
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

	var body movieBody
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	releaseDate, errs := body.validate()
	if errs != nil {
		return response.ValidationError(c, errs)
	}

	m.Title = body.Title
	m.Description = body.Description
	m.Synopsis = body.Synopsis
	m.ReleaseDate = releaseDate
	m.DurationMinutes = body.DurationMinutes
	m.Genres = body.Genres
	m.Cast = body.Cast
	m.Media = body.Media

	if err := h.movies.Update(c.Context(), m); err != nil {
		return response.InternalError(c, "Failed to update movie")
	}

	return response.Success(c, m, "Movie updated successfully")
}

// Delete flips isActive; the document and its ratings history stay behind.
func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid movie ID", nil)
	}

	if err := h.movies.SoftDelete(c.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.NotFound(c, "Movie")
		}
		return response.InternalError(c, "Failed to delete movie")
	}

	return response.Success(c, nil, "Movie deleted successfully")
}
