package server

import (
	"formhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LikeForm handles POST /likes/:formId
// @Summary Like a form once per user
// @Tags likes
// @Produce json
// @Param formId path int true "Form ID"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /likes/{formId} [post]
func (s *Server) LikeForm(c *fiber.Ctx) error {
	formID, err := parseID(c, "formId")
	if err != nil {
		return respondError(c, err)
	}

	userID, ok := currentUserID(c)
	if !ok {
		return respondError(c, models.NewUnauthorizedError("Invalid or expired token"))
	}

	count, err := s.likeService.Like(c.UserContext(), formID, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Like added successfully",
		"likes_count": count,
	})
}

// GetLikes handles GET /likes/:formId
// @Summary Count a form's likes
// @Tags likes
// @Produce json
// @Param formId path int true "Form ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /likes/{formId} [get]
func (s *Server) GetLikes(c *fiber.Ctx) error {
	formID, err := parseID(c, "formId")
	if err != nil {
		return respondError(c, err)
	}

	count, err := s.likeService.Count(c.UserContext(), formID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"likes_count": count,
	})
}
