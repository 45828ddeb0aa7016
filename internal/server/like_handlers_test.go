package server

import (
	"context"
	"testing"

	"formhub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeForm(t *testing.T) {
	deps := defaultDeps()
	deps.forms.getByID = formFixture(1)
	liked := map[[2]uint]bool{}
	deps.likes.exists = func(_ context.Context, userID, formID uint) (bool, error) {
		return liked[[2]uint{userID, formID}], nil
	}
	deps.likes.create = func(_ context.Context, like *models.Like) error {
		liked[[2]uint{like.UserID, like.FormID}] = true
		return nil
	}
	deps.likes.countByForm = func(_ context.Context, _ uint) (int64, error) {
		return int64(len(liked)), nil
	}
	app := newTestApp(t, deps)
	_, token := registerUser(t, app, "Ana", "ana@example.com")

	t.Run("first like", func(t *testing.T) {
		resp, err := app.Test(authedRequest(t, fiber.MethodPost, "/likes/1", token, nil), -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var body map[string]interface{}
		decodeBody(t, resp, &body)
		assert.Equal(t, "Like added successfully", body["message"])
		assert.Equal(t, float64(1), body["likes_count"])
	})

	t.Run("second like from the same user", func(t *testing.T) {
		resp, err := app.Test(authedRequest(t, fiber.MethodPost, "/likes/1", token, nil), -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var body map[string]interface{}
		decodeBody(t, resp, &body)
		assert.Equal(t, "You already liked this form.", body["error"])
	})

	t.Run("unknown form", func(t *testing.T) {
		resp, err := app.Test(authedRequest(t, fiber.MethodPost, "/likes/9", token, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestGetLikes(t *testing.T) {
	deps := defaultDeps()
	deps.likes.countByForm = func(_ context.Context, formID uint) (int64, error) {
		assert.Equal(t, uint(2), formID)
		return 7, nil
	}
	app := newTestApp(t, deps)
	_, token := registerUser(t, app, "Ana", "ana@example.com")

	resp, err := app.Test(authedRequest(t, fiber.MethodGet, "/likes/2", token, nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, float64(7), body["likes_count"])
}
