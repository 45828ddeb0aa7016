package server

import (
	"strings"

	"formhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

type createCommentRequest struct {
	Comment string `json:"comment"`
}

// GetComments handles GET /comments/:formId
// @Summary List a form's comments with author names
// @Tags comments
// @Produce json
// @Param formId path int true "Form ID"
// @Success 200 {array} service.CommentView
// @Security BearerAuth
// @Router /comments/{formId} [get]
func (s *Server) GetComments(c *fiber.Ctx) error {
	formID, err := parseID(c, "formId")
	if err != nil {
		return respondError(c, err)
	}

	views, err := s.commentService.List(c.UserContext(), formID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}

// CreateComment handles POST /comments/:formId
// @Summary Comment on a form as the authenticated user
// @Tags comments
// @Accept json
// @Produce json
// @Param formId path int true "Form ID"
// @Param request body createCommentRequest true "Comment text"
// @Success 201 {object} service.CommentView
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /comments/{formId} [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	formID, err := parseID(c, "formId")
	if err != nil {
		return respondError(c, err)
	}

	userID, ok := currentUserID(c)
	if !ok {
		return respondError(c, models.NewUnauthorizedError("Invalid or expired token"))
	}

	var req createCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Faltan datos"))
	}
	if strings.TrimSpace(req.Comment) == "" {
		return respondError(c, models.NewValidationError("Faltan datos"))
	}

	view, err := s.commentService.Create(c.UserContext(), formID, userID, req.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// DeleteComment handles DELETE /comment/:commentId
// @Summary Delete a comment
// @Tags comments
// @Produce json
// @Param commentId path int true "Comment ID"
// @Success 200 {string} string
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /comment/{commentId} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "commentId")
	if err != nil {
		return respondError(c, err)
	}

	if err := s.commentService.Delete(c.UserContext(), commentID); err != nil {
		return respondError(c, err)
	}
	return c.JSON("Deleted successfully")
}
