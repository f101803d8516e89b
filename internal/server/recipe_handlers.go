package server

import (
	"forkful/internal/models"
	"forkful/internal/service"

	"github.com/gofiber/fiber/v2"
)

// recipeContentRequest is the version-content part of recipe payloads.
type recipeContentRequest struct {
	Ingredients  []models.Ingredient   `json:"ingredients"`
	Instructions []models.Instruction  `json:"instructions"`
	CookingTime  models.CookingTime    `json:"cooking_time"`
	Servings     int                   `json:"servings"`
	Notes        string                `json:"notes"`
	Images       []models.VersionImage `json:"images"`
}

func (r recipeContentRequest) toInput() service.VersionContentInput {
	return service.VersionContentInput{
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		CookingTime:  r.CookingTime,
		Servings:     r.Servings,
		Notes:        r.Notes,
		Images:       r.Images,
	}
}

// CreateRecipe handles POST /api/recipes (protected)
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Cuisine     string   `json:"cuisine"`
		Tags        []string `json:"tags"`
		IsPrivate   bool     `json:"is_private"`
		Changelog   string   `json:"changelog"`
		recipeContentRequest
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.CreateRecipe(c.UserContext(), service.CreateRecipeInput{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Cuisine:     req.Cuisine,
		Tags:        req.Tags,
		IsPrivate:   req.IsPrivate,
		Changelog:   req.Changelog,
		Content:     req.toInput(),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(recipe)
}

// GetRecipes handles GET /api/recipes and /api/recipes/recent (public)
func (s *Server) GetRecipes(c *fiber.Ctx) error {
	currentUserID, _ := s.optionalUserID(c)
	p := parsePagination(c, 20)

	recipes, err := s.recipeService.ListRecent(c.UserContext(), p.Limit, p.Offset, currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(recipes)
}

// GetTrendingRecipes handles GET /api/recipes/trending (public)
func (s *Server) GetTrendingRecipes(c *fiber.Ctx) error {
	currentUserID, _ := s.optionalUserID(c)

	recipes, err := s.recipeService.ListTrending(c.UserContext(), currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(recipes)
}

// GetRecipe handles GET /api/recipes/:id (public, private recipes owner-only)
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	recipe, err := s.recipeService.GetRecipe(c.UserContext(), recipeID, currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(recipe)
}

// UpdateRecipe handles PUT /api/recipes/:id (protected, author-only).
// Every successful edit appends a new version; the changelog is mandatory.
func (s *Server) UpdateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Cuisine     string   `json:"cuisine"`
		Tags        []string `json:"tags"`
		IsPrivate   *bool    `json:"is_private"`
		Changelog   string   `json:"changelog"`
		recipeContentRequest
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.EditRecipe(c.UserContext(), service.EditRecipeInput{
		UserID:      userID,
		RecipeID:    recipeID,
		Name:        req.Name,
		Description: req.Description,
		Cuisine:     req.Cuisine,
		Tags:        req.Tags,
		IsPrivate:   req.IsPrivate,
		Changelog:   req.Changelog,
		Content:     req.toInput(),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(recipe)
}

// DeleteRecipe handles DELETE /api/recipes/:id (protected, author-only)
func (s *Server) DeleteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.recipeService.DeleteRecipe(c.UserContext(), userID, recipeID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Recipe deleted"})
}

// ForkRecipe handles POST /api/recipes/:id/fork (protected)
func (s *Server) ForkRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	fork, err := s.recipeService.ForkRecipe(c.UserContext(), userID, recipeID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fork)
}

// RevertRecipe handles POST /api/recipes/:id/revert (protected, author-only)
func (s *Server) RevertRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		VersionID uint   `json:"version_id"`
		Changelog string `json:"changelog"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.VersionID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("version_id is required"))
	}

	recipe, err := s.recipeService.RevertRecipe(c.UserContext(), service.RevertRecipeInput{
		UserID:    userID,
		RecipeID:  recipeID,
		VersionID: req.VersionID,
		Changelog: req.Changelog,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(recipe)
}

// LikeRecipe handles POST /api/recipes/:id/like (protected)
func (s *Server) LikeRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	info, err := s.recipeService.LikeRecipe(c.UserContext(), userID, recipeID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(info)
}

// UnlikeRecipe handles POST /api/recipes/:id/unlike (protected)
func (s *Server) UnlikeRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	info, err := s.recipeService.UnlikeRecipe(c.UserContext(), userID, recipeID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(info)
}

// GetRecipeLikes handles GET /api/recipes/:id/likes (public)
func (s *Server) GetRecipeLikes(c *fiber.Ctx) error {
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	info, err := s.recipeService.GetLikes(c.UserContext(), recipeID, currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(info)
}

// GetRecipeForks handles GET /api/recipes/:id/forks (public)
func (s *Server) GetRecipeForks(c *fiber.Ctx) error {
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	forks, err := s.recipeService.GetForks(c.UserContext(), recipeID, currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(forks)
}

// GetUserRecipes handles GET /api/users/:id/recipes (public; private recipes
// included only when the caller is the author)
func (s *Server) GetUserRecipes(c *fiber.Ctx) error {
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)
	p := parsePagination(c, 20)

	recipes, err := s.recipeService.GetUserRecipes(c.UserContext(), authorID, p.Limit, p.Offset, currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(recipes)
}
