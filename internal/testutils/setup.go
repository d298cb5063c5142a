package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/kinostream/backend/internal/config"
	"github.com/kinostream/backend/internal/models"
	"github.com/kinostream/backend/internal/server"
	"github.com/kinostream/backend/internal/utils"
)

const TestJWTSecret = "test_secret_key_minimum_32_characters_long_for_testing_only"

// Env bundles the fiber app with its in-memory backing stores so tests can
// seed and inspect state directly.
type Env struct {
	App       *fiber.App
	Cfg       *config.Config
	Users     *MemoryUserStore
	Movies    *MemoryMovieStore
	Ratings   *MemoryRatingStore
	Comments  *MemoryCommentStore
	Favorites *MemoryFavoriteStore
	Tokens    *MemoryTokenStore
	Mailer    *RecordingMailer
}

func Setup(t *testing.T) *Env {
	t.Helper()

	env := &Env{
		Cfg: &config.Config{
			Env:            "test",
			JWTSecret:      TestJWTSecret,
			JWTExpiry:      time.Hour,
			ResetTokenTTL:  time.Hour,
			PlaybackURLTTL: time.Hour,
		},
		Users:     NewMemoryUserStore(),
		Movies:    NewMemoryMovieStore(),
		Ratings:   NewMemoryRatingStore(),
		Comments:  NewMemoryCommentStore(),
		Favorites: NewMemoryFavoriteStore(),
		Tokens:    NewMemoryTokenStore(),
		Mailer:    &RecordingMailer{},
	}

	env.App = server.New(server.Deps{
		Cfg:       env.Cfg,
		Users:     env.Users,
		Movies:    env.Movies,
		Ratings:   env.Ratings,
		Comments:  env.Comments,
		Favorites: env.Favorites,
		Tokens:    env.Tokens,
		Mailer:    env.Mailer,
		Presigner: &StaticPresigner{URL: "https://media.test/playback"},
	})

	return env
}

// RecordingMailer captures outgoing mail for assertions.
type RecordingMailer struct {
	mu   sync.Mutex
	Sent []SentMail
}

type SentMail struct {
	To      string
	Subject string
	Body    string
}

func (m *RecordingMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *RecordingMailer) Last() *SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return nil
	}
	return &m.Sent[len(m.Sent)-1]
}

// StaticPresigner stands in for the S3 presigner.
type StaticPresigner struct {
	URL string
}

func (p *StaticPresigner) PlaybackURL(key string) (string, time.Time, error) {
	return p.URL + "/" + key, time.Now().Add(time.Hour), nil
}

func (e *Env) CreateTestUser(t *testing.T, email, password, role string) *models.User {
	t.Helper()

	hash, err := utils.HashPassword(password)
	assert.NoError(t, err, "Failed to hash test password")

	u := &models.User{
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Age:       30,
		Role:      role,
		IsActive:  true,
	}
	u.PasswordHash = hash

	err = e.Users.Create(context.Background(), u)
	assert.NoError(t, err, "Failed to create test user")
	return u
}

func (e *Env) CreateTestMovie(t *testing.T, title string) *models.Movie {
	t.Helper()

	m := &models.Movie{
		Title:           title,
		Description:     "A test movie",
		ReleaseDate:     time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 120,
		Genres:          []string{"Drama"},
		Media: models.Media{
			VideoKey: "videos/" + title + ".mp4",
			Format:   "mp4",
			Width:    1920,
			Height:   1080,
		},
	}

	err := e.Movies.Create(context.Background(), m)
	assert.NoError(t, err, "Failed to create test movie")
	return m
}

func (e *Env) AuthToken(t *testing.T, u *models.User) string {
	t.Helper()

	token, err := utils.GenerateToken([]byte(e.Cfg.JWTSecret), u.ID.Hex(), u.Email, u.Role, e.Cfg.JWTExpiry)
	assert.NoError(t, err, "Failed to generate test token")
	return token
}

func MakeRequest(app *fiber.App, method, url string, body interface{}, token string) (*httptest.ResponseRecorder, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, url, bodyReader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()

	resp, err := app.Test(req, -1)
	if err != nil {
		return rec, err
	}

	rec.Code = resp.StatusCode

	io.Copy(rec.Body, resp.Body)
	resp.Body.Close()

	return rec, nil
}

func ParseResponse(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if resp.Body.Len() == 0 {
		t.Log("Warning: Response body is empty")
		return
	}

	err := json.NewDecoder(resp.Body).Decode(v)
	if err != nil && err != io.EOF {
		t.Logf("Response body: %s", resp.Body.String())
		assert.NoError(t, err, "Failed to parse response")
	}
}

type StandardResponse struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message"`
	Data       interface{}  `json:"data"`
	Error      *ErrorDetail `json:"error"`
	Pagination *Pagination  `json:"pagination"`
	Timestamp  string       `json:"timestamp"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int64 `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
}

func AssertSuccess(t *testing.T, resp *httptest.ResponseRecorder) {
	t.Helper()

	var result StandardResponse
	ParseResponse(t, resp, &result)
	assert.True(t, result.Success, "Expected success response")
	assert.Empty(t, result.Error, "Expected no error")
}

func AssertError(t *testing.T, resp *httptest.ResponseRecorder, expectedCode string) {
	t.Helper()

	var result StandardResponse
	ParseResponse(t, resp, &result)
	assert.False(t, result.Success, "Expected error response")
	assert.NotNil(t, result.Error, "Expected error object")
	if result.Error != nil {
		assert.Equal(t, expectedCode, result.Error.Code, "Error code mismatch")
	}
}
