package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"wishlisted/internal/cache"
	apperrors "wishlisted/internal/errors"
	"wishlisted/internal/model"
	"wishlisted/internal/repository"
)

const (
	bcryptCost   = 10
	userCacheTTL = 5 * time.Minute
)

// UpdateUserInput carries the optional profile fields of a PATCH. Nil means
// leave the field alone; password is re-hashed when present.
type UpdateUserInput struct {
	Email    *string
	Password *string
	Name     *string
	Surname  *string
	Picture  *string
	IsActive *bool
}

// UserService exposes registration, profile reads and profile mutations.
// All reads return the password-stripped public projection.
type UserService interface {
	Register(ctx context.Context, email, password, name, surname string) (*model.PublicUser, error)
	GetPublicUser(ctx context.Context, id uint) (*model.PublicUser, error)
	ListUsers(ctx context.Context) ([]model.PublicUser, error)
	Update(ctx context.Context, id uint, input UpdateUserInput) (*model.PublicUser, error)
	Remove(ctx context.Context, id uint) (int64, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("public_user:%d", id)
}

// Register creates a user with a hashed password, refusing duplicate emails.
func (s *userService) Register(ctx context.Context, email, password, name, surname string) (*model.PublicUser, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashed),
		Name:         name,
		Surname:      surname,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user.Public(), nil
}

func (s *userService) GetPublicUser(ctx context.Context, id uint) (*model.PublicUser, error) {
	var cached model.PublicUser
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	public := user.Public()
	s.cache.SetJSON(ctx, s.cacheKey(id), public, userCacheTTL)
	return public, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.PublicUser, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	public := make([]model.PublicUser, len(users))
	for i := range users {
		public[i] = *users[i].Public()
	}
	return public, nil
}

// Update applies the provided fields and invalidates the cached projection.
func (s *userService) Update(ctx context.Context, id uint, input UpdateUserInput) (*model.PublicUser, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Surname != nil {
		user.Surname = *input.Surname
	}
	if input.Picture != nil {
		user.Picture = *input.Picture
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return user.Public(), nil
}

// Remove deletes the user and reports affected rows. Owned wishes go with the
// user; reservations held elsewhere are released by the repository.
func (s *userService) Remove(ctx context.Context, id uint) (int64, error) {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return affected, nil
}
