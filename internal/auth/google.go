package auth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/kinostream/backend/internal/config"
	"github.com/kinostream/backend/internal/models"
	"github.com/kinostream/backend/internal/response"
)

// GoogleHandler implements the OAuth code flow and issues the platform JWT.
// First-time Google sign-ins are auto-provisioned with the default role.
type GoogleHandler struct {
	svc        *Service
	oauth      *oauth2.Config
	stateStore map[string]time.Time
	stateMutex sync.Mutex
}

func NewGoogleHandler(cfg *config.Config, svc *Service) *GoogleHandler {
	return &GoogleHandler{
		svc: svc,
		oauth: &oauth2.Config{
			RedirectURL:  cfg.GoogleRedirectURL,
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		stateStore: make(map[string]time.Time),
	}
}

func (h *GoogleHandler) generateState() string {
	b := make([]byte, 32)
	rand.Read(b)
	state := base64.URLEncoding.EncodeToString(b)

	h.stateMutex.Lock()
	defer h.stateMutex.Unlock()
	h.stateStore[state] = time.Now().Add(5 * time.Minute)

	for k, v := range h.stateStore {
		if time.Now().After(v) {
			delete(h.stateStore, k)
		}
	}
	return state
}

func (h *GoogleHandler) validateState(state string) bool {
	h.stateMutex.Lock()
	defer h.stateMutex.Unlock()

	expiry, exists := h.stateStore[state]
	if !exists || time.Now().After(expiry) {
		return false
	}
	delete(h.stateStore, state)
	return true
}

func (h *GoogleHandler) Login(c *fiber.Ctx) error {
	return c.Redirect(h.oauth.AuthCodeURL(h.generateState()))
}

func (h *GoogleHandler) Callback(c *fiber.Ctx) error {
	if !h.validateState(c.Query("state")) {
		return response.BadRequest(c, "Invalid state parameter", nil)
	}

	token, err := h.oauth.Exchange(c.Context(), c.Query("code"))
	if err != nil {
		return response.InternalError(c, "Failed to exchange token")
	}

	client := h.oauth.Client(c.Context(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return response.InternalError(c, "Failed to get user info")
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	var userData struct {
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
	}
	if err := json.Unmarshal(data, &userData); err != nil || userData.Email == "" {
		return response.InternalError(c, "Failed to parse user info")
	}

	u, err := h.svc.users.FindByEmail(c.Context(), userData.Email)
	if err != nil {
		u = &models.User{
			Email:     userData.Email,
			FirstName: userData.GivenName,
			LastName:  userData.FamilyName,
			Role:      models.RoleUser,
			IsActive:  true,
		}
		if err := h.svc.users.Create(c.Context(), u); err != nil {
			return response.InternalError(c, "Failed to create user")
		}
	}

	jwtToken, err := h.svc.issueToken(u)
	if err != nil {
		return response.InternalError(c, "Failed to issue token")
	}

	return response.Success(c, fiber.Map{
		"token": jwtToken,
		"user":  u,
	}, "Login successful")
}
