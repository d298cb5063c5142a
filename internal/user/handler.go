package user

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kinostream/backend/internal/auth"
	"github.com/kinostream/backend/internal/models"
	"github.com/kinostream/backend/internal/response"
	"github.com/kinostream/backend/internal/store"
	"github.com/kinostream/backend/internal/utils"
	"github.com/kinostream/backend/internal/validation"
)

type Handler struct {
	users store.UserStore
}

func NewHandler(users store.UserStore) *Handler {
	return &Handler{users: users}
}

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	u := auth.CurrentUser(c)
	if u == nil {
		return response.Unauthorized(c, "User not found")
	}
	return response.Success(c, u, "Profile retrieved successfully")
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	u := auth.CurrentUser(c)
	if u == nil {
		return response.Unauthorized(c, "User not found")
	}

	var body struct {
		FirstName   string              `json:"firstName"`
		LastName    string              `json:"lastName"`
		Username    string              `json:"username"`
		Age         int                 `json:"age"`
		Preferences *models.Preferences `json:"preferences"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	v := validation.New()
	if body.Age != 0 {
		v.IntRange("age", body.Age, 13, 120)
	}
	if body.Username != "" {
		v.MinLength("username", body.Username, 3)
		v.MaxLength("username", body.Username, 30)
	}
	if !v.Valid() {
		return response.ValidationError(c, v.Errors())
	}

	if body.Username != "" && body.Username != u.Username {
		if existing, err := h.users.FindByUsername(c.Context(), body.Username); err == nil && existing.ID != u.ID {
			return response.Conflict(c, "Username already taken")
		}
		u.Username = body.Username
	}

	if body.FirstName != "" {
		u.FirstName = body.FirstName
	}
	if body.LastName != "" {
		u.LastName = body.LastName
	}
	if body.Age != 0 {
		u.Age = body.Age
	}
	if body.Preferences != nil {
		u.Preferences = *body.Preferences
	}

	if err := h.users.Update(c.Context(), u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return response.Conflict(c, "Username already taken")
		}
		return response.InternalError(c, "Failed to update profile")
	}

	return response.Success(c, u, "Profile updated successfully")
}

func (h *Handler) ChangePassword(c *fiber.Ctx) error {
	u := auth.CurrentUser(c)
	if u == nil {
		return response.Unauthorized(c, "User not found")
	}

	var body struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	v := validation.New()
	v.Require("currentPassword", body.CurrentPassword)
	v.Require("newPassword", body.NewPassword)
	v.Password("newPassword", body.NewPassword)
	if !v.Valid() {
		return response.ValidationError(c, v.Errors())
	}

	if !utils.CheckPasswordHash(body.CurrentPassword, u.PasswordHash) {
		return response.Unauthorized(c, "Current password is incorrect")
	}

	hash, err := utils.HashPassword(body.NewPassword)
	if err != nil {
		return response.InternalError(c, "Failed to hash password")
	}

	u.PasswordHash = hash
	if err := h.users.Update(c.Context(), u); err != nil {
		return response.InternalError(c, "Failed to change password")
	}

	return response.Success(c, nil, "Password changed successfully")
}

// DeleteAccount is the one hard-delete path: the document is removed, not
// flagged inactive.
func (h *Handler) DeleteAccount(c *fiber.Ctx) error {
	userID := auth.CurrentUserID(c)

	if err := h.users.Delete(c.Context(), userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.NotFound(c, "User")
		}
		return response.InternalError(c, "Failed to delete account")
	}

	return response.Success(c, nil, "Account deleted successfully")
}
