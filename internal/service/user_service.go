package service

import (
	"context"
	"errors"
	"strings"

	"forkful/internal/cache"
	"forkful/internal/models"
	"forkful/internal/repository"
	"forkful/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService provides account and profile business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// RegisterInput is the input for creating an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateProfileInput is the input for updating the caller's own profile.
// Empty fields are left unchanged.
type UpdateProfileInput struct {
	UserID         uint
	Name           string
	Bio            string
	Location       string
	ProfilePicture string
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register validates the input, hashes the password, and creates the account.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, models.NewValidationError("Name, email, and password are required")
	}
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("An account with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    in.Email,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies email/password and returns the user. Failures are
// deliberately indistinguishable: no account and wrong password both yield
// the same error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	return user, nil
}

// GetProfile fetches a user's public profile, cache-aside.
func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	user := &models.User{}
	err := cache.Aside(ctx, cache.UserKey(id), user, cache.UserTTL, func() error {
		fetched, fetchErr := s.userRepo.GetByID(ctx, id)
		if fetchErr != nil {
			return fetchErr
		}
		*user = *fetched
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the non-empty fields to the caller's own profile.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", in.UserID)
		}
		return nil, err
	}

	if in.Name != "" {
		if err := validation.ValidateName(in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Name = strings.TrimSpace(in.Name)
	}
	if in.Bio != "" {
		if len(in.Bio) > 500 {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.Location != "" {
		user.Location = in.Location
	}
	if in.ProfilePicture != "" {
		user.ProfilePicture = in.ProfilePicture
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SearchUsers finds users by name or email fragment.
func (s *UserService) SearchUsers(ctx context.Context, query string, limit, offset int) ([]*models.User, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.userRepo.Search(ctx, query, limit, offset)
}
