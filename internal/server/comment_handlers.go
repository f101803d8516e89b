package server

import (
	"forkful/internal/models"
	"forkful/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/recipes/:id/comments (protected)
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		UserID:   userID,
		RecipeID: recipeID,
		Content:  req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments handles GET /api/recipes/:id/comments (public)
func (s *Server) GetComments(c *fiber.Ctx) error {
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)
	p := parsePagination(c, 50)

	comments, err := s.commentService.ListComments(c.UserContext(), recipeID, p.Limit, p.Offset, currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comments)
}

// DeleteComment handles DELETE /api/comments/:id (protected, author-only)
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.UserContext(), userID, commentID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}

// ToggleCommentLike handles POST /api/comments/:id/like (protected).
// Comment likes are a single toggle endpoint, unlike the recipe like pair.
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.ToggleCommentLike(c.UserContext(), userID, commentID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comment)
}
