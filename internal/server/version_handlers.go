package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetRecipeVersions handles GET /api/recipes/:id/versions (public).
// History is returned newest first and includes versions a fork inherited
// from its source.
func (s *Server) GetRecipeVersions(c *fiber.Ctx) error {
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	history, err := s.recipeService.GetHistory(c.UserContext(), recipeID, currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(history)
}

// GetRecipeVersion handles GET /api/recipes/:id/versions/:versionId (public).
// Requesting a version outside the recipe's history is a 400, not a 404.
func (s *Server) GetRecipeVersion(c *fiber.Ctx) error {
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	versionID, err := s.parseID(c, "versionId")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	version, err := s.recipeService.GetVersion(c.UserContext(), recipeID, versionID, currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(version)
}
