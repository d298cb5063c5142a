package comment

import (
	"errors"
	"strings"

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
	comments store.CommentStore
	movies   store.MovieStore
}

func NewHandler(comments store.CommentStore, movies store.MovieStore) *Handler {
	return &Handler{comments: comments, movies: movies}
}

func validateContent(content string) (string, map[string]string) {
	content = strings.TrimSpace(content)

	v := validation.New()
	v.Require("content", content)
	v.MaxLength("content", content, models.MaxCommentLength)
	if !v.Valid() {
		return "", v.Errors()
	}
	return policy.Sanitize(content), nil
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var body struct {
		MovieID string `json:"movieId"`
		Content string `json:"content"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	content, errs := validateContent(body.Content)
	if errs != nil {
		return response.ValidationError(c, errs)
	}

	movieID, err := primitive.ObjectIDFromHex(body.MovieID)
	if err != nil {
		return response.BadRequest(c, "Invalid movie ID", nil)
	}

	if _, err := h.movies.FindByID(c.Context(), movieID); err != nil {
		return response.NotFound(c, "Movie")
	}

	cm := &models.Comment{
		UserID:  auth.CurrentUserID(c),
		MovieID: movieID,
		Content: content,
	}

	if err := h.comments.Insert(c.Context(), cm); err != nil {
		return response.InternalError(c, "Failed to create comment")
	}

	return response.Created(c, cm, "Comment created successfully")
}

func (h *Handler) ListByMovie(c *fiber.Ctx) error {
	movieID, err := primitive.ObjectIDFromHex(c.Params("movieId"))
	if err != nil {
		return response.BadRequest(c, "Invalid movie ID", nil)
	}

	page, limit := response.PageParams(c, 20, 50)

	comments, total, err := h.comments.ListByMovie(c.Context(), movieID, page, limit)
	if err != nil {
		return response.InternalError(c, "Failed to fetch comments")
	}

	return response.SuccessWithPagination(c, comments,
		response.CalculatePagination(page, limit, total), "Comments retrieved successfully")
}

// canModify allows the author plus moderators and admins.
func canModify(c *fiber.Ctx, cm *models.Comment) bool {
	u := auth.CurrentUser(c)
	if u == nil {
		return false
	}
	return cm.UserID == u.ID || u.Role == models.RoleModerator || u.Role == models.RoleAdmin
}

func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid comment ID", nil)
	}

	var body struct {
		Content string `json:"content"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	content, errs := validateContent(body.Content)
	if errs != nil {
		return response.ValidationError(c, errs)
	}

	cm, err := h.comments.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.NotFound(c, "Comment")
		}
		return response.InternalError(c, "Failed to fetch comment")
	}

	if !canModify(c, cm) {
		return response.Forbidden(c, "You can only update your own comments")
	}

	cm.Content = content
	if err := h.comments.Update(c.Context(), cm); err != nil {
		return response.InternalError(c, "Failed to update comment")
	}

	return response.Success(c, cm, "Comment updated successfully")
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid comment ID", nil)
	}

	cm, err := h.comments.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.NotFound(c, "Comment")
		}
		return response.InternalError(c, "Failed to fetch comment")
	}

	if !canModify(c, cm) {
		return response.Forbidden(c, "You can only delete your own comments")
	}

	if err := h.comments.SoftDelete(c.Context(), id); err != nil {
		return response.InternalError(c, "Failed to delete comment")
	}

	return response.Success(c, nil, "Comment deleted successfully")
}
