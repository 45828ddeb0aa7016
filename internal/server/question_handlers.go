package server

import (
	"formhub/internal/models"
	"formhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetQuestions handles GET /get-question/:formId
// @Summary List a form's questions with the form title and description
// @Tags questions
// @Produce json
// @Param formId path int true "Form ID"
// @Success 200 {array} service.QuestionView
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /get-question/{formId} [get]
func (s *Server) GetQuestions(c *fiber.Ctx) error {
	formID, err := parseID(c, "formId")
	if err != nil {
		return respondError(c, err)
	}

	views, err := s.questionService.List(c.UserContext(), formID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}

// CreateQuestions handles POST /get-question/:formId
// @Summary Bulk-create questions for a form
// @Tags questions
// @Accept json
// @Produce json
// @Param formId path int true "Form ID"
// @Param request body []service.QuestionInput true "Questions"
// @Success 201 {array} service.CreatedQuestionView
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /get-question/{formId} [post]
func (s *Server) CreateQuestions(c *fiber.Ctx) error {
	formID, err := parseID(c, "formId")
	if err != nil {
		return respondError(c, err)
	}

	var inputs []service.QuestionInput
	if err := c.BodyParser(&inputs); err != nil {
		return respondError(c, models.NewValidationError("Faltan datos"))
	}

	created, err := s.questionService.BulkCreate(c.UserContext(), formID, inputs)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpsertQuestions handles PUT /get-question/:formId
// @Summary Bulk-upsert questions; each item reports its own outcome
// @Tags questions
// @Accept json
// @Produce json
// @Param formId path int true "Form ID"
// @Param request body []service.QuestionInput true "Questions"
// @Success 200 {array} service.UpsertEntry
// @Security BearerAuth
// @Router /get-question/{formId} [put]
func (s *Server) UpsertQuestions(c *fiber.Ctx) error {
	formID, err := parseID(c, "formId")
	if err != nil {
		return respondError(c, err)
	}

	var inputs []service.QuestionInput
	if err := c.BodyParser(&inputs); err != nil {
		return respondError(c, models.NewValidationError("Faltan datos"))
	}

	entries := s.questionService.BulkUpsert(c.UserContext(), formID, inputs)
	return c.JSON(entries)
}
