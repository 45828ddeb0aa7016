package server

import (
	"formhub/internal/models"
	"formhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAnswers handles GET /get-answer/:formId
// @Summary List a form's answers
// @Tags answers
// @Produce json
// @Param formId path int true "Form ID"
// @Success 200 {array} service.AnswerView
// @Security BearerAuth
// @Router /get-answer/{formId} [get]
func (s *Server) GetAnswers(c *fiber.Ctx) error {
	formID, err := parseID(c, "formId")
	if err != nil {
		return respondError(c, err)
	}

	views, err := s.answerService.List(c.UserContext(), formID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}

// CreateAnswers handles POST /get-answer/:formId
// @Summary Bulk-submit answers for a form
// @Tags answers
// @Accept json
// @Produce json
// @Param formId path int true "Form ID"
// @Param request body []service.AnswerInput true "Answers"
// @Success 201 {array} service.CreatedAnswerView
// @Security BearerAuth
// @Router /get-answer/{formId} [post]
func (s *Server) CreateAnswers(c *fiber.Ctx) error {
	formID, err := parseID(c, "formId")
	if err != nil {
		return respondError(c, err)
	}

	var inputs []service.AnswerInput
	if err := c.BodyParser(&inputs); err != nil {
		return respondError(c, models.NewValidationError("Faltan datos"))
	}

	created, err := s.answerService.BulkCreate(c.UserContext(), formID, inputs)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetLatestAnswers handles GET /get-answers
// @Summary Summarize who answered which form, first response per pair
// @Tags answers
// @Produce json
// @Success 200 {array} service.ResponseSummaryView
// @Security BearerAuth
// @Router /get-answers [get]
func (s *Server) GetLatestAnswers(c *fiber.Ctx) error {
	views, err := s.answerService.LatestPerFormUser(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}
