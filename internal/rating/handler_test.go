package rating_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kinostream/backend/internal/testutils"
)

func TestCreateRating(t *testing.T) {
	env := testutils.Setup(t)
	u := env.CreateTestUser(t, "rater@example.com", "Str0ng!pass", "user")
	token := env.AuthToken(t, u)
	movie := env.CreateTestMovie(t, "Inception")

	t.Run("Success - First rating creates a document", func(t *testing.T) {
		body := map[string]interface{}{
			"movieId": movie.ID.Hex(),
			"value":   4,
			"review":  "Solid heist movie",
		}

		resp, err := testutils.MakeRequest(env.App, "POST", "/api/ratings", body, token)
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		assert.Equal(t, "Rating created successfully", result.Message)
		assert.Equal(t, 1, env.Ratings.ActiveCountForPair(u.ID, movie.ID))

		m, err := env.Movies.FindByID(context.Background(), movie.ID)
		assert.NoError(t, err)
		assert.Equal(t, 4.0, m.RatingStats.Average)
		assert.Equal(t, int64(1), m.RatingStats.Count)
	})

	t.Run("Success - Rating the same movie again updates in place", func(t *testing.T) {
		body := map[string]interface{}{
			"movieId": movie.ID.Hex(),
			"value":   2,
		}

		resp, err := testutils.MakeRequest(env.App, "POST", "/api/ratings", body, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		assert.Equal(t, "Rating updated successfully", result.Message)

		// Still exactly one active document for the pair, holding the new value.
		assert.Equal(t, 1, env.Ratings.ActiveCountForPair(u.ID, movie.ID))

		m, err := env.Movies.FindByID(context.Background(), movie.ID)
		assert.NoError(t, err)
		assert.Equal(t, 2.0, m.RatingStats.Average)
		assert.Equal(t, int64(1), m.RatingStats.Count)
	})

	t.Run("Error - Value out of range", func(t *testing.T) {
		body := map[string]interface{}{
			"movieId": movie.ID.Hex(),
			"value":   6,
		}

		resp, err := testutils.MakeRequest(env.App, "POST", "/api/ratings", body, token)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)
		testutils.AssertError(t, resp, "VALIDATION_ERROR")
	})

	t.Run("Error - Unknown movie", func(t *testing.T) {
		body := map[string]interface{}{
			"movieId": "000000000000000000000000",
			"value":   3,
		}

		resp, err := testutils.MakeRequest(env.App, "POST", "/api/ratings", body, token)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)
		testutils.AssertError(t, resp, "NOT_FOUND")
	})

	t.Run("Error - Unauthenticated", func(t *testing.T) {
		body := map[string]interface{}{
			"movieId": movie.ID.Hex(),
			"value":   3,
		}

		resp, err := testutils.MakeRequest(env.App, "POST", "/api/ratings", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.Code)
	})
}

func TestRatingStatsSnapshot(t *testing.T) {
	env := testutils.Setup(t)
	movie := env.CreateTestMovie(t, "Heat")

	values := []int{5, 4, 1, 2, 5}
	for i, v := range values {
		u := env.CreateTestUser(t, fmt.Sprintf("user%d@example.com", i), "Str0ng!pass", "user")
		body := map[string]interface{}{"movieId": movie.ID.Hex(), "value": v}

		resp, err := testutils.MakeRequest(env.App, "POST", "/api/ratings", body, env.AuthToken(t, u))
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.Code)
	}

	m, err := env.Movies.FindByID(context.Background(), movie.ID)
	assert.NoError(t, err)
	assert.Equal(t, 3.4, m.RatingStats.Average)
	assert.Equal(t, int64(5), m.RatingStats.Count)
	assert.Equal(t, map[string]int64{"1": 1, "2": 1, "3": 0, "4": 1, "5": 2}, m.RatingStats.Distribution)
}

func TestDeleteRating(t *testing.T) {
	env := testutils.Setup(t)
	owner := env.CreateTestUser(t, "owner@example.com", "Str0ng!pass", "user")
	other := env.CreateTestUser(t, "other@example.com", "Str0ng!pass", "user")
	movie := env.CreateTestMovie(t, "Alien")

	body := map[string]interface{}{"movieId": movie.ID.Hex(), "value": 5}
	resp, err := testutils.MakeRequest(env.App, "POST", "/api/ratings", body, env.AuthToken(t, owner))
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.Code)

	var created testutils.StandardResponse
	testutils.ParseResponse(t, resp, &created)
	ratingID := created.Data.(map[string]interface{})["id"].(string)

	t.Run("Error - Another user cannot delete it", func(t *testing.T) {
		resp, err := testutils.MakeRequest(env.App, "DELETE", "/api/ratings/"+ratingID, nil, env.AuthToken(t, other))
		assert.NoError(t, err)
		assert.Equal(t, 403, resp.Code)
		testutils.AssertError(t, resp, "FORBIDDEN")
	})

	t.Run("Success - Deleting the only rating resets the snapshot", func(t *testing.T) {
		resp, err := testutils.MakeRequest(env.App, "DELETE", "/api/ratings/"+ratingID, nil, env.AuthToken(t, owner))
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		assert.Equal(t, 0, env.Ratings.ActiveCountForPair(owner.ID, movie.ID))

		m, err := env.Movies.FindByID(context.Background(), movie.ID)
		assert.NoError(t, err)
		assert.Equal(t, 0.0, m.RatingStats.Average)
		assert.Equal(t, int64(0), m.RatingStats.Count)
		assert.Equal(t, map[string]int64{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0}, m.RatingStats.Distribution)
	})

	t.Run("Success - Rating again after delete creates a fresh document", func(t *testing.T) {
		body := map[string]interface{}{"movieId": movie.ID.Hex(), "value": 3}

		resp, err := testutils.MakeRequest(env.App, "POST", "/api/ratings", body, env.AuthToken(t, owner))
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.Code)
		assert.Equal(t, 1, env.Ratings.ActiveCountForPair(owner.ID, movie.ID))
	})

	t.Run("Error - Deleting a missing rating", func(t *testing.T) {
		resp, err := testutils.MakeRequest(env.App, "DELETE", "/api/ratings/000000000000000000000000", nil, env.AuthToken(t, owner))
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)
	})
}

func TestListRatingsByMovie(t *testing.T) {
	env := testutils.Setup(t)
	movie := env.CreateTestMovie(t, "Arrival")

	for i := 0; i < 3; i++ {
		u := env.CreateTestUser(t, fmt.Sprintf("viewer%d@example.com", i), "Str0ng!pass", "user")
		body := map[string]interface{}{"movieId": movie.ID.Hex(), "value": 4}
		resp, err := testutils.MakeRequest(env.App, "POST", "/api/ratings", body, env.AuthToken(t, u))
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.Code)
	}

	// Public route, no token required.
	resp, err := testutils.MakeRequest(env.App, "GET", "/api/ratings/movie/"+movie.ID.Hex(), nil, "")
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.Code)

	var result testutils.StandardResponse
	testutils.ParseResponse(t, resp, &result)
	assert.Len(t, result.Data, 3)
	assert.Equal(t, int64(3), result.Pagination.TotalItems)
}
