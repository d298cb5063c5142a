package movie_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kinostream/backend/internal/testutils"
)

func movieBody(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":           title,
		"description":     "A movie about things",
		"releaseDate":     "2021-06-01",
		"durationMinutes": 95,
		"genres":          []string{"Thriller"},
	}
}

func TestCreateMovie(t *testing.T) {
	env := testutils.Setup(t)
	admin := env.CreateTestUser(t, "admin@example.com", "Str0ng!pass", "admin")
	user := env.CreateTestUser(t, "user@example.com", "Str0ng!pass", "user")

	t.Run("Success - Admin creates a movie", func(t *testing.T) {
		resp, err := testutils.MakeRequest(env.App, "POST", "/api/movies", movieBody("Sicario"), env.AuthToken(t, admin))
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		data := result.Data.(map[string]interface{})
		assert.Equal(t, "Sicario", data["title"])

		// New movies start with an empty rating snapshot.
		stats := data["rating_stats"].(map[string]interface{})
		assert.Equal(t, 0.0, stats["average"])
		assert.Equal(t, 0.0, stats["count"])
	})

	t.Run("Error - Regular user is forbidden", func(t *testing.T) {
		resp, err := testutils.MakeRequest(env.App, "POST", "/api/movies", movieBody("Blocked"), env.AuthToken(t, user))
		assert.NoError(t, err)
		assert.Equal(t, 403, resp.Code)
		testutils.AssertError(t, resp, "FORBIDDEN")
	})

	t.Run("Error - No token", func(t *testing.T) {
		resp, err := testutils.MakeRequest(env.App, "POST", "/api/movies", movieBody("Blocked"), "")
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.Code)
	})

	t.Run("Error - Bad release date", func(t *testing.T) {
		body := movieBody("Bad Date")
		body["releaseDate"] = "01/06/2021"

		resp, err := testutils.MakeRequest(env.App, "POST", "/api/movies", body, env.AuthToken(t, admin))
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)
		testutils.AssertError(t, resp, "VALIDATION_ERROR")
	})

	t.Run("Error - Missing genres", func(t *testing.T) {
		body := movieBody("No Genres")
		body["genres"] = []string{}

		resp, err := testutils.MakeRequest(env.App, "POST", "/api/movies", body, env.AuthToken(t, admin))
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)
		testutils.AssertError(t, resp, "VALIDATION_ERROR")
	})
}

func TestListMovies(t *testing.T) {
	env := testutils.Setup(t)

	for i := 1; i <= 15; i++ {
		env.CreateTestMovie(t, fmt.Sprintf("Movie %02d", i))
	}

	t.Run("Pagination - First page of 10", func(t *testing.T) {
		resp, err := testutils.MakeRequest(env.App, "GET", "/api/movies?page=1&limit=10", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		assert.Len(t, result.Data, 10)
		assert.Equal(t, int64(15), result.Pagination.TotalItems)
		assert.Equal(t, int64(2), result.Pagination.TotalPages)
		assert.True(t, result.Pagination.HasNextPage)
		assert.False(t, result.Pagination.HasPrevPage)
	})

	t.Run("Pagination - Second page has the remainder", func(t *testing.T) {
		resp, err := testutils.MakeRequest(env.App, "GET", "/api/movies?page=2&limit=10", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		assert.Len(t, result.Data, 5)
		assert.False(t, result.Pagination.HasNextPage)
		assert.True(t, result.Pagination.HasPrevPage)
	})

	t.Run("Pagination - Limit is clamped to 100", func(t *testing.T) {
		resp, err := testutils.MakeRequest(env.App, "GET", "/api/movies?limit=500", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		assert.Equal(t, 100, result.Pagination.ItemsPerPage)
	})

	t.Run("Filter - Title search", func(t *testing.T) {
		resp, err := testutils.MakeRequest(env.App, "GET", "/api/movies?search=Movie+07", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		assert.Len(t, result.Data, 1)
	})
}

func TestGetMovie(t *testing.T) {
	env := testutils.Setup(t)
	movie := env.CreateTestMovie(t, "Whiplash")

	t.Run("Success - Each read bumps the view counter", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			resp, err := testutils.MakeRequest(env.App, "GET", "/api/movies/"+movie.ID.Hex(), nil, "")
			assert.NoError(t, err)
			assert.Equal(t, 200, resp.Code)
		}

		m, err := env.Movies.FindByID(context.Background(), movie.ID)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), m.ViewCount)
	})

	t.Run("Error - Unknown ID", func(t *testing.T) {
		resp, err := testutils.MakeRequest(env.App, "GET", "/api/movies/000000000000000000000000", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)
		testutils.AssertError(t, resp, "NOT_FOUND")
	})

	t.Run("Error - Malformed ID", func(t *testing.T) {
		resp, err := testutils.MakeRequest(env.App, "GET", "/api/movies/not-an-id", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)
	})
}

func TestUpdateMovie(t *testing.T) {
	env := testutils.Setup(t)
	moderator := env.CreateTestUser(t, "mod@example.com", "Str0ng!pass", "moderator")
	user := env.CreateTestUser(t, "user@example.com", "Str0ng!pass", "user")
	movie := env.CreateTestMovie(t, "Old Title")

	t.Run("Success - Moderator updates a movie", func(t *testing.T) {
		body := movieBody("New Title")

		resp, err := testutils.MakeRequest(env.App, "PUT", "/api/movies/"+movie.ID.Hex(), body, env.AuthToken(t, moderator))
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		m, err := env.Movies.FindByID(context.Background(), movie.ID)
		assert.NoError(t, err)
		assert.Equal(t, "New Title", m.Title)
	})

	t.Run("Error - Regular user is forbidden", func(t *testing.T) {
		resp, err := testutils.MakeRequest(env.App, "PUT", "/api/movies/"+movie.ID.Hex(), movieBody("Nope"), env.AuthToken(t, user))
		assert.NoError(t, err)
		assert.Equal(t, 403, resp.Code)
	})
}

func TestDeleteMovie(t *testing.T) {
	env := testutils.Setup(t)
	admin := env.CreateTestUser(t, "admin@example.com", "Str0ng!pass", "admin")
	moderator := env.CreateTestUser(t, "mod@example.com", "Str0ng!pass", "moderator")
	movie := env.CreateTestMovie(t, "Doomed")

	t.Run("Error - Moderator cannot delete", func(t *testing.T) {
		resp, err := testutils.MakeRequest(env.App, "DELETE", "/api/movies/"+movie.ID.Hex(), nil, env.AuthToken(t, moderator))
		assert.NoError(t, err)
		assert.Equal(t, 403, resp.Code)
	})

	t.Run("Success - Admin delete hides the movie from reads", func(t *testing.T) {
		resp, err := testutils.MakeRequest(env.App, "DELETE", "/api/movies/"+movie.ID.Hex(), nil, env.AuthToken(t, admin))
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		// Gone from the detail endpoint.
		resp, err = testutils.MakeRequest(env.App, "GET", "/api/movies/"+movie.ID.Hex(), nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)

		// And from listings.
		resp, err = testutils.MakeRequest(env.App, "GET", "/api/movies", nil, "")
		assert.NoError(t, err)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		assert.Equal(t, int64(0), result.Pagination.TotalItems)
	})
}
