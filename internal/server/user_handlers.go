package server

import (
	"forkful/internal/models"
	"forkful/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me (protected)
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetProfile(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me (protected)
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Name           string `json:"name"`
		Bio            string `json:"bio"`
		Location       string `json:"location"`
		ProfilePicture string `json:"profile_picture"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:         userID,
		Name:           req.Name,
		Bio:            req.Bio,
		Location:       req.Location,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id (public)
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetProfile(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// SearchUsers handles GET /api/users/search?q= (public)
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	query := c.Query("q")
	p := parsePagination(c, 20)

	users, err := s.userService.SearchUsers(c.UserContext(), query, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}
