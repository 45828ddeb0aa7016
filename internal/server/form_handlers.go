package server

import (
	"strings"

	"formhub/internal/models"
	"formhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createFormRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateFormRequest struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type deleteFormRequest struct {
	ID uint `json:"id"`
}

// GetForms handles GET /forms-info
// @Summary List all forms with owner names
// @Tags forms
// @Produce json
// @Success 200 {array} service.FormView
// @Security BearerAuth
// @Router /forms-info [get]
func (s *Server) GetForms(c *fiber.Ctx) error {
	views, err := s.formService.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}

// GetUserForms handles GET /forms-info/:userId
// @Summary List the forms owned by one user
// @Tags forms
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {array} service.FormView
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /forms-info/{userId} [get]
func (s *Server) GetUserForms(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return respondError(c, err)
	}

	views, err := s.formService.ListByUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}

// CreateForm handles POST /forms-info
// @Summary Create a form owned by the authenticated user
// @Tags forms
// @Accept json
// @Produce json
// @Param request body createFormRequest true "Form details"
// @Success 201 {object} service.FormView
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /forms-info [post]
func (s *Server) CreateForm(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondError(c, models.NewUnauthorizedError("Invalid or expired token"))
	}

	var req createFormRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Faltan datos"))
	}
	if strings.TrimSpace(req.Title) == "" {
		return respondError(c, models.NewValidationError("Faltan datos"))
	}

	view, err := s.formService.Create(c.UserContext(), service.CreateFormInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// UpdateForm handles PUT /forms-info
// @Summary Replace a form's title, description and status
// @Tags forms
// @Accept json
// @Produce json
// @Param request body updateFormRequest true "Form fields"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /forms-info [put]
func (s *Server) UpdateForm(c *fiber.Ctx) error {
	var req updateFormRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Faltan datos"))
	}
	if req.ID == 0 {
		return respondError(c, models.NewValidationError("Faltan datos"))
	}

	view, err := s.formService.Update(c.UserContext(), service.UpdateFormInput{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Updated successfully",
		"data":    view,
	})
}

// DeleteForm handles DELETE /forms-info
// @Summary Delete a form; dependent rows cascade
// @Tags forms
// @Accept json
// @Produce json
// @Param request body deleteFormRequest true "Form ID"
// @Success 200 {string} string
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /forms-info [delete]
func (s *Server) DeleteForm(c *fiber.Ctx) error {
	var req deleteFormRequest
	if err := c.BodyParser(&req); err != nil || req.ID == 0 {
		return respondError(c, models.NewValidationError("Faltan datos"))
	}

	if err := s.formService.Delete(c.UserContext(), req.ID); err != nil {
		return respondError(c, err)
	}
	return c.JSON("Delete Successfully")
}

// GetUnansweredForms handles GET /unanswered-forms/:userId
// @Summary List the forms a user has not answered yet
// @Tags forms
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {array} service.FormView
// @Security BearerAuth
// @Router /unanswered-forms/{userId} [get]
func (s *Server) GetUnansweredForms(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return respondError(c, err)
	}

	views, err := s.formService.ListUnanswered(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}

// SearchForms handles GET /search-forms
// @Summary Fuzzy search forms by title and description
// @Tags forms
// @Produce json
// @Param query query string true "Search text"
// @Success 200 {array} service.SearchResultView
// @Failure 400 {object} models.ErrorResponse
// @Router /search-forms [get]
func (s *Server) SearchForms(c *fiber.Ctx) error {
	views, err := s.formService.Search(c.UserContext(), c.Query("query"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}
