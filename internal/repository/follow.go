package repository

import (
	"context"
	"errors"
	"strings"

	"forkful/internal/cache"
	"forkful/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow graph operations
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followedID uint) error
	Unfollow(ctx context.Context, followerID, followedID uint) error
	IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error)
	ListFollowers(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error)
	ListFollowing(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error)
}

// ErrAlreadyFollowing is returned when the follow edge already exists.
var ErrAlreadyFollowing = errors.New("already following")

// ErrNotFollowing is returned when unfollowing an edge that does not exist.
var ErrNotFollowing = errors.New("not following")

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow creates the edge and bumps both users' counters in one transaction.
// The unique index on (follower_id, followed_id) is the concurrency guard:
// a duplicate insert surfaces as ErrAlreadyFollowing, not a double count.
func (r *followRepository) Follow(ctx context.Context, followerID, followedID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		follow := models.Follow{FollowerID: followerID, FollowedID: followedID}
		if err := tx.Create(&follow).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyFollowing
			}
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", followerID).
			Update("following_count", gorm.Expr("following_count + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", followedID).
			Update("follower_count", gorm.Expr("follower_count + 1")).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, followedID)
	return nil
}

func (r *followRepository) Unfollow(ctx context.Context, followerID, followedID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
			Delete(&models.Follow{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFollowing
		}
		if err := tx.Model(&models.User{}).Where("id = ? AND following_count > 0", followerID).
			Update("following_count", gorm.Expr("following_count - 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ? AND follower_count > 0", followedID).
			Update("follower_count", gorm.Expr("follower_count - 1")).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, followedID)
	return nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *followRepository) ListFollowers(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", userID).
		Order("follows.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	return users, err
}

func (r *followRepository) ListFollowing(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	return users, err
}

// isUniqueViolation detects a unique-index conflict on Postgres (SQLSTATE
// 23505) and on the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint")
}
