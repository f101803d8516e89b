package server

import (
	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/users/:id/follow (protected)
func (s *Server) FollowUser(c *fiber.Ctx) error {
	followerID := c.Locals("userID").(uint)
	followedID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.Follow(c.UserContext(), followerID, followedID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Followed"})
}

// UnfollowUser handles POST /api/users/:id/unfollow (protected)
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	followerID := c.Locals("userID").(uint)
	followedID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.Unfollow(c.UserContext(), followerID, followedID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Unfollowed"})
}

// IsFollowingUser handles GET /api/users/:id/is-following (protected)
func (s *Server) IsFollowingUser(c *fiber.Ctx) error {
	followerID := c.Locals("userID").(uint)
	followedID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	following, err := s.followService.IsFollowing(c.UserContext(), followerID, followedID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"is_following": following})
}

// GetFollowers handles GET /api/users/:id/followers (public)
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 50)

	followers, err := s.followService.Followers(c.UserContext(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(followers)
}

// GetFollowing handles GET /api/users/:id/following (public)
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 50)

	following, err := s.followService.Following(c.UserContext(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(following)
}
