package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kinostream/backend/internal/models"
	"github.com/kinostream/backend/internal/response"
	"github.com/kinostream/backend/internal/utils"
)

// Locals keys set by Protected for downstream handlers.
const (
	LocalUserID = "user_id"
	LocalUser   = "user"
	LocalToken  = "token"
)

// Protected gates a route on a valid, non-revoked token belonging to an
// active user. Check order: revocation store, signature/expiry, user lookup.
func (s *Service) Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return response.Error(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Missing authorization token", nil)
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return response.Error(c, fiber.StatusUnauthorized, "INVALID_TOKEN_FORMAT", "Invalid token format", nil)
		}
		tokenStr := tokenParts[1]

		revoked, err := s.tokens.IsRevoked(c.Context(), tokenStr)
		if err != nil {
			return response.InternalError(c, "Failed to verify token")
		}
		if revoked {
			return response.Error(c, fiber.StatusUnauthorized, "TOKEN_REVOKED", "Token has been revoked", nil)
		}

		claims, err := utils.ParseToken(s.secret(), tokenStr)
		if err != nil {
			return response.Error(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token", nil)
		}

		u, err := s.findByHexID(c.Context(), claims.UserID)
		if err != nil {
			return response.Unauthorized(c, "User not found")
		}
		if !u.IsActive {
			return response.Unauthorized(c, "Account is deactivated")
		}

		c.Locals(LocalUserID, u.ID)
		c.Locals(LocalUser, u)
		c.Locals(LocalToken, tokenStr)
		return c.Next()
	}
}

// RoleProtected must run after Protected.
func RoleProtected(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := CurrentUser(c)
		if u == nil {
			return response.Unauthorized(c, "User not found")
		}

		for _, role := range allowedRoles {
			if u.Role == role {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// CurrentUser returns the authenticated user set by Protected, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(LocalUser).(*models.User)
	return u
}

// CurrentUserID returns the authenticated user's id set by Protected.
func CurrentUserID(c *fiber.Ctx) primitive.ObjectID {
	id, _ := c.Locals(LocalUserID).(primitive.ObjectID)
	return id
}

func (s *Service) findByHexID(ctx context.Context, hexID string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}
