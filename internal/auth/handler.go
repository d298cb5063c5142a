package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kinostream/backend/internal/models"
	"github.com/kinostream/backend/internal/response"
	"github.com/kinostream/backend/internal/validation"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var body struct {
		Email           string `json:"email"`
		Username        string `json:"username"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
		FirstName       string `json:"firstName"`
		LastName        string `json:"lastName"`
		Age             int    `json:"age"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	v := validation.New()
	v.Require("email", body.Email)
	v.Email("email", body.Email)
	v.Require("password", body.Password)
	v.Password("password", body.Password)
	v.Match("confirmPassword", body.Password, body.ConfirmPassword)
	v.Require("firstName", body.FirstName)
	v.Require("lastName", body.LastName)
	v.IntRange("age", body.Age, 13, 120)
	if body.Username != "" {
		v.MinLength("username", body.Username, 3)
		v.MaxLength("username", body.Username, 30)
	}
	if !v.Valid() {
		return response.ValidationError(c, v.Errors())
	}

	u := &models.User{
		Email:     body.Email,
		Username:  body.Username,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Age:       body.Age,
	}

	token, err := h.svc.Register(c.Context(), u, body.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) || errors.Is(err, ErrUsernameTaken) {
			return response.Conflict(c, err.Error())
		}
		return response.InternalError(c, "Failed to create user")
	}

	return response.Created(c, fiber.Map{
		"token": token,
		"user":  u,
	}, "Registration successful")
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	v := validation.New()
	v.Require("email", body.Email)
	v.Require("password", body.Password)
	if !v.Valid() {
		return response.ValidationError(c, v.Errors())
	}

	u, token, err := h.svc.Login(c.Context(), body.Email, body.Password)
	if err != nil {
		return response.Unauthorized(c, "Invalid email or password")
	}

	return response.Success(c, fiber.Map{
		"token": token,
		"user":  u,
	}, "Login successful")
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	token, _ := c.Locals(LocalToken).(string)
	if token == "" {
		return response.Unauthorized(c, "User not authenticated")
	}

	if err := h.svc.Logout(c.Context(), token); err != nil {
		return response.InternalError(c, "Failed to log out")
	}

	return response.Success(c, nil, "Logout successful")
}

const resetSentMessage = "If an account with that email exists, a reset token has been sent"

func (h *Handler) ForgotPassword(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	v := validation.New()
	v.Require("email", body.Email)
	v.Email("email", body.Email)
	if !v.Valid() {
		return response.ValidationError(c, v.Errors())
	}

	if err := h.svc.ForgotPassword(c.Context(), body.Email); err != nil {
		return response.InternalError(c, "Failed to process request")
	}

	return response.Success(c, nil, resetSentMessage)
}

func (h *Handler) ResetPassword(c *fiber.Ctx) error {
	var body struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	v := validation.New()
	v.Require("token", body.Token)
	v.Require("newPassword", body.NewPassword)
	v.Password("newPassword", body.NewPassword)
	if !v.Valid() {
		return response.ValidationError(c, v.Errors())
	}

	if err := h.svc.ResetPassword(c.Context(), body.Token, body.NewPassword); err != nil {
		if errors.Is(err, ErrInvalidResetToken) {
			return response.BadRequest(c, "Invalid or expired token", nil)
		}
		return response.InternalError(c, "Failed to reset password")
	}

	return response.Success(c, nil, "Password reset successful")
}
