package favorite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kinostream/backend/internal/testutils"
)

func TestAddFavorite(t *testing.T) {
	env := testutils.Setup(t)
	u := env.CreateTestUser(t, "fan@example.com", "Str0ng!pass", "user")
	token := env.AuthToken(t, u)
	movie := env.CreateTestMovie(t, "Dune")

	t.Run("Success - Add a favorite", func(t *testing.T) {
		body := map[string]interface{}{
			"movieId":        movie.ID.Hex(),
			"note":           "Watch in IMAX",
			"personalRating": 5,
		}

		resp, err := testutils.MakeRequest(env.App, "POST", "/api/favorites", body, token)
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		data := result.Data.(map[string]interface{})
		assert.Equal(t, "Watch in IMAX", data["note"])
	})

	t.Run("Error - Adding the same movie twice", func(t *testing.T) {
		body := map[string]interface{}{"movieId": movie.ID.Hex()}

		resp, err := testutils.MakeRequest(env.App, "POST", "/api/favorites", body, token)
		assert.NoError(t, err)
		assert.Equal(t, 409, resp.Code)
		testutils.AssertError(t, resp, "CONFLICT")
	})

	t.Run("Error - Unknown movie", func(t *testing.T) {
		body := map[string]interface{}{"movieId": "000000000000000000000000"}

		resp, err := testutils.MakeRequest(env.App, "POST", "/api/favorites", body, token)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)
	})

	t.Run("Error - Personal rating out of range", func(t *testing.T) {
		other := env.CreateTestMovie(t, "Tenet")
		body := map[string]interface{}{
			"movieId":        other.ID.Hex(),
			"personalRating": 9,
		}

		resp, err := testutils.MakeRequest(env.App, "POST", "/api/favorites", body, token)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)
		testutils.AssertError(t, resp, "VALIDATION_ERROR")
	})
}

func TestRemoveAndReAddFavorite(t *testing.T) {
	env := testutils.Setup(t)
	u := env.CreateTestUser(t, "fan@example.com", "Str0ng!pass", "user")
	token := env.AuthToken(t, u)
	movie := env.CreateTestMovie(t, "Dune")

	body := map[string]interface{}{"movieId": movie.ID.Hex(), "note": "first run"}
	resp, err := testutils.MakeRequest(env.App, "POST", "/api/favorites", body, token)
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.Code)

	var created testutils.StandardResponse
	testutils.ParseResponse(t, resp, &created)
	favID := created.Data.(map[string]interface{})["id"].(string)

	t.Run("Remove hides it from the list", func(t *testing.T) {
		resp, err := testutils.MakeRequest(env.App, "DELETE", "/api/favorites/"+favID, nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		resp, err = testutils.MakeRequest(env.App, "GET", "/api/favorites", nil, token)
		assert.NoError(t, err)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		assert.Equal(t, int64(0), result.Pagination.TotalItems)
	})

	t.Run("Re-adding reactivates the old document", func(t *testing.T) {
		body := map[string]interface{}{"movieId": movie.ID.Hex(), "note": "second run"}

		resp, err := testutils.MakeRequest(env.App, "POST", "/api/favorites", body, token)
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		data := result.Data.(map[string]interface{})
		assert.Equal(t, favID, data["id"], "the original document should be reactivated")
		assert.Equal(t, "second run", data["note"])
	})
}

func TestFavoriteOwnership(t *testing.T) {
	env := testutils.Setup(t)
	owner := env.CreateTestUser(t, "owner@example.com", "Str0ng!pass", "user")
	other := env.CreateTestUser(t, "other@example.com", "Str0ng!pass", "user")
	movie := env.CreateTestMovie(t, "Dune")

	body := map[string]interface{}{"movieId": movie.ID.Hex()}
	resp, err := testutils.MakeRequest(env.App, "POST", "/api/favorites", body, env.AuthToken(t, owner))
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.Code)

	var created testutils.StandardResponse
	testutils.ParseResponse(t, resp, &created)
	favID := created.Data.(map[string]interface{})["id"].(string)

	t.Run("Error - Another user cannot update it", func(t *testing.T) {
		body := map[string]interface{}{"note": "not yours"}

		resp, err := testutils.MakeRequest(env.App, "PUT", "/api/favorites/"+favID, body, env.AuthToken(t, other))
		assert.NoError(t, err)
		assert.Equal(t, 403, resp.Code)
		testutils.AssertError(t, resp, "FORBIDDEN")
	})

	t.Run("Error - Another user cannot remove it", func(t *testing.T) {
		resp, err := testutils.MakeRequest(env.App, "DELETE", "/api/favorites/"+favID, nil, env.AuthToken(t, other))
		assert.NoError(t, err)
		assert.Equal(t, 403, resp.Code)
	})

	t.Run("Lists are scoped per user", func(t *testing.T) {
		resp, err := testutils.MakeRequest(env.App, "GET", "/api/favorites", nil, env.AuthToken(t, other))
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		assert.Equal(t, int64(0), result.Pagination.TotalItems)
	})
}
