package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kinostream/backend/internal/testutils"
)

func TestGetProfile(t *testing.T) {
	env := testutils.Setup(t)
	u := env.CreateTestUser(t, "me@example.com", "Str0ng!pass", "user")

	resp, err := testutils.MakeRequest(env.App, "GET", "/api/users/profile", nil, env.AuthToken(t, u))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.Code)

	var result testutils.StandardResponse
	testutils.ParseResponse(t, resp, &result)
	data := result.Data.(map[string]interface{})
	assert.Equal(t, "me@example.com", data["email"])
	assert.Nil(t, data["passwordHash"])
}

func TestUpdateProfile(t *testing.T) {
	env := testutils.Setup(t)
	u := env.CreateTestUser(t, "me@example.com", "Str0ng!pass", "user")
	token := env.AuthToken(t, u)

	t.Run("Success - Update name and preferences", func(t *testing.T) {
		body := map[string]interface{}{
			"firstName": "Updated",
			"preferences": map[string]interface{}{
				"favorite_genres": []string{"Sci-Fi", "Noir"},
				"autoplay":        true,
			},
		}

		resp, err := testutils.MakeRequest(env.App, "PUT", "/api/users/profile", body, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		data := result.Data.(map[string]interface{})
		assert.Equal(t, "Updated", data["first_name"])

		prefs := data["preferences"].(map[string]interface{})
		assert.Equal(t, true, prefs["autoplay"])
	})

	t.Run("Error - Username already taken", func(t *testing.T) {
		taken := env.CreateTestUser(t, "taken@example.com", "Str0ng!pass", "user")
		taken.Username = "cinephile"
		assert.NoError(t, env.Users.Update(context.Background(), taken))

		body := map[string]interface{}{"username": "cinephile"}

		resp, err := testutils.MakeRequest(env.App, "PUT", "/api/users/profile", body, token)
		assert.NoError(t, err)
		assert.Equal(t, 409, resp.Code)
		testutils.AssertError(t, resp, "CONFLICT")
	})

	t.Run("Error - Age out of range", func(t *testing.T) {
		body := map[string]interface{}{"age": 150}

		resp, err := testutils.MakeRequest(env.App, "PUT", "/api/users/profile", body, token)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)
	})
}

func TestChangePassword(t *testing.T) {
	env := testutils.Setup(t)
	u := env.CreateTestUser(t, "me@example.com", "Str0ng!pass", "user")
	token := env.AuthToken(t, u)

	t.Run("Error - Wrong current password", func(t *testing.T) {
		body := map[string]interface{}{
			"currentPassword": "WrongPass1!",
			"newPassword":     "N3w!passw0rd",
		}

		resp, err := testutils.MakeRequest(env.App, "PUT", "/api/users/change-password", body, token)
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.Code)
	})

	t.Run("Error - Weak new password", func(t *testing.T) {
		body := map[string]interface{}{
			"currentPassword": "Str0ng!pass",
			"newPassword":     "short",
		}

		resp, err := testutils.MakeRequest(env.App, "PUT", "/api/users/change-password", body, token)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)
		testutils.AssertError(t, resp, "VALIDATION_ERROR")
	})

	t.Run("Success - Old password stops working", func(t *testing.T) {
		body := map[string]interface{}{
			"currentPassword": "Str0ng!pass",
			"newPassword":     "N3w!passw0rd",
		}

		resp, err := testutils.MakeRequest(env.App, "PUT", "/api/users/change-password", body, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		loginBody := map[string]interface{}{"email": "me@example.com", "password": "Str0ng!pass"}
		resp, err = testutils.MakeRequest(env.App, "POST", "/api/auth/login", loginBody, "")
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.Code)

		loginBody["password"] = "N3w!passw0rd"
		resp, err = testutils.MakeRequest(env.App, "POST", "/api/auth/login", loginBody, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)
	})
}

func TestDeleteAccount(t *testing.T) {
	env := testutils.Setup(t)
	u := env.CreateTestUser(t, "me@example.com", "Str0ng!pass", "user")
	token := env.AuthToken(t, u)

	before := env.Users.Count()

	resp, err := testutils.MakeRequest(env.App, "DELETE", "/api/users/account", nil, token)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.Code)

	// Hard delete: the document is gone, not flagged.
	assert.Equal(t, before-1, env.Users.Count())

	// The still-valid token no longer maps to a user.
	resp, err = testutils.MakeRequest(env.App, "GET", "/api/users/profile", nil, token)
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.Code)
}
