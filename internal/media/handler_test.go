package media_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kinostream/backend/internal/testutils"
)

func TestGetVideo(t *testing.T) {
	env := testutils.Setup(t)
	u := env.CreateTestUser(t, "viewer@example.com", "Str0ng!pass", "user")
	token := env.AuthToken(t, u)
	movie := env.CreateTestMovie(t, "Blade Runner")

	t.Run("Success - Returns a presigned URL for the video key", func(t *testing.T) {
		resp, err := testutils.MakeRequest(env.App, "GET", "/api/movies/"+movie.ID.Hex()+"/video", nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		data := result.Data.(map[string]interface{})
		url := data["url"].(string)
		assert.True(t, strings.HasPrefix(url, "https://media.test/playback/"))
		assert.Contains(t, url, movie.Media.VideoKey)
		assert.NotEmpty(t, data["expires_at"])
	})

	t.Run("Error - Playback requires authentication", func(t *testing.T) {
		resp, err := testutils.MakeRequest(env.App, "GET", "/api/movies/"+movie.ID.Hex()+"/video", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.Code)
	})

	t.Run("Error - Movie without a video key", func(t *testing.T) {
		bare := env.CreateTestMovie(t, "No Video")
		bare.Media.VideoKey = ""
		assert.NoError(t, env.Movies.Update(context.Background(), bare))

		resp, err := testutils.MakeRequest(env.App, "GET", "/api/movies/"+bare.ID.Hex()+"/video", nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)
		testutils.AssertError(t, resp, "NOT_FOUND")
	})

	t.Run("Error - Unknown movie", func(t *testing.T) {
		resp, err := testutils.MakeRequest(env.App, "GET", "/api/movies/000000000000000000000000/video", nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)
	})
}

func TestGetVideoInfo(t *testing.T) {
	env := testutils.Setup(t)
	u := env.CreateTestUser(t, "viewer@example.com", "Str0ng!pass", "user")
	movie := env.CreateTestMovie(t, "Blade Runner")

	resp, err := testutils.MakeRequest(env.App, "GET", "/api/movies/"+movie.ID.Hex()+"/video/info", nil, env.AuthToken(t, u))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.Code)

	var result testutils.StandardResponse
	testutils.ParseResponse(t, resp, &result)
	data := result.Data.(map[string]interface{})
	assert.Equal(t, "mp4", data["format"])
	assert.Equal(t, float64(120), data["duration_minutes"])
	assert.Equal(t, float64(1920), data["width"])
	assert.Equal(t, float64(1080), data["height"])
}
