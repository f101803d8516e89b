package service

import (
	"context"
	"errors"

	"forkful/internal/models"
	"forkful/internal/repository"

	"gorm.io/gorm"
)

// FollowService provides follow-graph business logic.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// Follow creates the follow edge from followerID to followedID.
func (s *FollowService) Follow(ctx context.Context, followerID, followedID uint) error {
	if followerID == followedID {
		return models.NewValidationError("You cannot follow yourself")
	}
	if err := s.ensureUserExists(ctx, followedID); err != nil {
		return err
	}
	if err := s.followRepo.Follow(ctx, followerID, followedID); err != nil {
		if errors.Is(err, repository.ErrAlreadyFollowing) {
			return models.NewConflictError("Already following this user")
		}
		return err
	}
	return nil
}

// Unfollow removes the follow edge from followerID to followedID.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followedID uint) error {
	if followerID == followedID {
		return models.NewValidationError("You cannot unfollow yourself")
	}
	if err := s.followRepo.Unfollow(ctx, followerID, followedID); err != nil {
		if errors.Is(err, repository.ErrNotFollowing) {
			return models.NewValidationError("You are not following this user")
		}
		return err
	}
	return nil
}

// IsFollowing reports whether followerID follows followedID.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	return s.followRepo.IsFollowing(ctx, followerID, followedID)
}

// Followers lists the users following userID.
func (s *FollowService) Followers(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowers(ctx, userID, limit, offset)
}

// Following lists the users userID follows.
func (s *FollowService) Following(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowing(ctx, userID, limit, offset)
}

func (s *FollowService) ensureUserExists(ctx context.Context, userID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("User", userID)
		}
		return err
	}
	return nil
}
