package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kinostream/backend/internal/config"
	"github.com/kinostream/backend/internal/mailer"
	"github.com/kinostream/backend/internal/models"
	"github.com/kinostream/backend/internal/store"
	"github.com/kinostream/backend/internal/utils"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

type Service struct {
	cfg    *config.Config
	users  store.UserStore
	tokens store.TokenStore
	mail   mailer.Mailer
}

func NewService(cfg *config.Config, users store.UserStore, tokens store.TokenStore, mail mailer.Mailer) *Service {
	return &Service{cfg: cfg, users: users, tokens: tokens, mail: mail}
}

func (s *Service) secret() []byte {
	return []byte(s.cfg.JWTSecret)
}

func (s *Service) Register(ctx context.Context, u *models.User, password string) (string, error) {
	if _, err := s.users.FindByEmail(ctx, u.Email); err == nil {
		return "", ErrEmailTaken
	}
	if u.Username != "" {
		if _, err := s.users.FindByUsername(ctx, u.Username); err == nil {
			return "", ErrUsernameTaken
		}
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return "", err
	}

	u.PasswordHash = hash
	u.Role = models.RoleUser
	u.IsActive = true

	if err := s.users.Create(ctx, u); err != nil {
		// The unique index catches the race the pre-checks miss.
		if errors.Is(err, store.ErrDuplicate) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	return s.issueToken(u)
}

func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, u.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	if !u.IsActive {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Logout records the token in the revocation store bounded by the token's own
// expiry claim, so the TTL index purges the record the moment the token would
// die naturally.
func (s *Service) Logout(ctx context.Context, token string) error {
	expiresAt, err := utils.TokenExpiry(token)
	if err != nil {
		return err
	}

	return s.tokens.Revoke(ctx, &models.RevokedToken{Token: token, ExpiresAt: expiresAt})
}

// ForgotPassword never reveals whether the email exists.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil
	}

	token, expiresAt, err := utils.GenerateResetToken(s.secret(), u.ID.Hex(), s.cfg.ResetTokenTTL)
	if err != nil {
		return err
	}

	u.ResetToken = token
	u.ResetTokenExpiresAt = &expiresAt
	if err := s.users.Update(ctx, u); err != nil {
		return err
	}

	body := fmt.Sprintf("Use this token to reset your password (valid for 1 hour):\n\n%s", token)
	return s.mail.Send(u.Email, "Password reset", body)
}

// ResetPassword requires a valid signature AND a match against the token
// stored on the user record, so an older token dies the moment a new one is
// issued.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := utils.ParseResetToken(s.secret(), token)
	if err != nil {
		return ErrInvalidResetToken
	}

	u, err := s.findByHexID(ctx, userID)
	if err != nil {
		return ErrInvalidResetToken
	}

	if u.ResetToken == "" || u.ResetToken != token {
		return ErrInvalidResetToken
	}
	if u.ResetTokenExpiresAt == nil || u.ResetTokenExpiresAt.Before(time.Now()) {
		return ErrInvalidResetToken
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	u.PasswordHash = hash
	u.ResetToken = ""
	u.ResetTokenExpiresAt = nil
	return s.users.Update(ctx, u)
}

func (s *Service) issueToken(u *models.User) (string, error) {
	return utils.GenerateToken(s.secret(), u.ID.Hex(), u.Email, u.Role, s.cfg.JWTExpiry)
}
