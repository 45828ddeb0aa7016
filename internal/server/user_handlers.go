package server

import (
	"time"

	"formhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

type userListItem struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	Email     string     `json:"email"`
	LastLogin *time.Time `json:"last_login"`
}

type updateRoleRequest struct {
	ID   uint   `json:"id"`
	Role string `json:"role"`
}

// GetUsers handles GET /get-users
// @Summary List all users
// @Tags users
// @Produce json
// @Success 200 {array} userListItem
// @Router /get-users [get]
func (s *Server) GetUsers(c *fiber.Ctx) error {
	users, err := s.userRepo.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	items := make([]userListItem, 0, len(users))
	for i := range users {
		items = append(items, userListItem{
			ID:        users[i].ID,
			Name:      users[i].Name,
			Role:      users[i].Role,
			Email:     users[i].Email,
			LastLogin: users[i].LastLogin,
		})
	}
	return c.JSON(items)
}

// UpdateUserRole handles PUT /get-users
// @Summary Update a user's role
// @Tags users
// @Accept json
// @Produce json
// @Param request body updateRoleRequest true "User ID and new role"
// @Success 200 {string} string
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /get-users [put]
func (s *Server) UpdateUserRole(c *fiber.Ctx) error {
	var req updateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Faltan datos"))
	}
	if req.ID == 0 || req.Role == "" {
		return respondError(c, models.NewValidationError("Faltan datos"))
	}

	if err := s.authService.SetRole(c.UserContext(), req.ID, req.Role); err != nil {
		if models.IsNotFound(err) {
			return respondError(c, models.NewNotFoundMessage("Usuario no encontrado"))
		}
		return respondError(c, err)
	}

	return c.JSON("Update Success")
}
