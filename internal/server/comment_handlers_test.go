package server

import (
	"context"
	"testing"

	"formhub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment(t *testing.T) {
	deps := defaultDeps()
	deps.forms.getByID = formFixture(1)
	var created *models.Comment
	deps.comments.create = func(_ context.Context, c *models.Comment) error {
		c.ID = 4
		created = c
		return nil
	}
	app := newTestApp(t, deps)
	userID, token := registerUser(t, app, "Ana", "ana@example.com")

	t.Run("authenticated user is the author", func(t *testing.T) {
		resp, err := app.Test(authedRequest(t, fiber.MethodPost, "/comments/1", token, fiber.Map{
			"comment": "buen formulario",
		}), -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var body map[string]interface{}
		decodeBody(t, resp, &body)
		assert.Equal(t, float64(4), body["id"])
		assert.Equal(t, "Ana", body["name"])
		assert.Equal(t, "buen formulario", body["comment"])
		require.NotNil(t, created)
		assert.Equal(t, userID, created.UserID)
	})

	t.Run("empty comment", func(t *testing.T) {
		resp, err := app.Test(authedRequest(t, fiber.MethodPost, "/comments/1", token, fiber.Map{
			"comment": "   ",
		}), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown form", func(t *testing.T) {
		resp, err := app.Test(authedRequest(t, fiber.MethodPost, "/comments/9", token, fiber.Map{
			"comment": "hola",
		}), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestGetComments(t *testing.T) {
	deps := defaultDeps()
	app := newTestApp(t, deps)
	userID, token := registerUser(t, app, "Ana", "ana@example.com")

	deps.comments.listByForm = func(_ context.Context, formID uint) ([]models.Comment, error) {
		return []models.Comment{
			{ID: 1, FormID: formID, UserID: userID, Comment: "a"},
			{ID: 2, FormID: formID, UserID: userID, Comment: "b"},
		}, nil
	}

	resp, err := app.Test(authedRequest(t, fiber.MethodGet, "/comments/1", token, nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body []map[string]interface{}
	decodeBody(t, resp, &body)
	require.Len(t, body, 2)
	assert.Equal(t, "Ana", body[0]["name"])
}

func TestDeleteComment(t *testing.T) {
	deps := defaultDeps()
	deps.comments.deleteFn = func(_ context.Context, id uint) error {
		if id != 4 {
			return models.NewNotFoundError("Comment", id)
		}
		return nil
	}
	app := newTestApp(t, deps)
	_, token := registerUser(t, app, "Ana", "ana@example.com")

	t.Run("confirms with legacy body", func(t *testing.T) {
		resp, err := app.Test(authedRequest(t, fiber.MethodDelete, "/comment/4", token, nil), -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body string
		decodeBody(t, resp, &body)
		assert.Equal(t, "Deleted successfully", body)
	})

	t.Run("unknown comment", func(t *testing.T) {
		resp, err := app.Test(authedRequest(t, fiber.MethodDelete, "/comment/99", token, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}
