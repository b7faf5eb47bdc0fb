package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"wishlisted/internal/auth"
	apperrors "wishlisted/internal/errors"
	"wishlisted/internal/model"
	"wishlisted/internal/repository"
)

// AuthService owns the token lifecycle: issue on sign-in, rotate on refresh,
// revoke on sign-out. Exactly one AuthToken row exists per signed-in user.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*auth.TokenPair, *model.PublicUser, error)
	SignIn(ctx context.Context, userID uint, email string) (*auth.TokenPair, error)
	Refresh(ctx context.Context, email, presentedRefreshToken string) (*auth.TokenPair, error)
	SignOut(ctx context.Context, email string) (int64, error)
}

type authService struct {
	userRepo   repository.UserRepository
	tokenRepo  repository.TokenRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
	}
}

// Login verifies the email/password pair and signs the user in.
func (s *authService) Login(ctx context.Context, email, password string) (*auth.TokenPair, *model.PublicUser, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		// Same failure for unknown email and wrong password.
		return nil, nil, apperrors.ErrBadCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apperrors.ErrBadCredentials
	}

	pair, err := s.SignIn(ctx, user.ID, user.Email)
	if err != nil {
		return nil, nil, err
	}
	return pair, user.Public(), nil
}

// SignIn issues a fresh pair and persists it, overwriting any previous pair in
// place rather than appending a second row.
func (s *authService) SignIn(ctx context.Context, userID uint, email string) (*auth.TokenPair, error) {
	pair, err := s.jwtService.GeneratePair(userID, email)
	if err != nil {
		return nil, fmt.Errorf("generate token pair: %w", err)
	}

	token := &model.AuthToken{
		UserID:       userID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
	if err := s.tokenRepo.Upsert(ctx, token); err != nil {
		return nil, fmt.Errorf("persist token pair: %w", err)
	}
	return pair, nil
}

// Refresh rotates the stored pair for the user resolved by email. The
// presented refresh token must match the persisted one, so a rotated-out
// token is refused even while its signature is still valid.
func (s *authService) Refresh(ctx context.Context, email, presentedRefreshToken string) (*auth.TokenPair, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	stored, err := s.tokenRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if subtle.ConstantTimeCompare([]byte(stored.RefreshToken), []byte(presentedRefreshToken)) != 1 {
		return nil, apperrors.ErrInvalidToken
	}

	return s.SignIn(ctx, user.ID, user.Email)
}

// SignOut deletes the user's token row and reports how many rows were removed.
func (s *authService) SignOut(ctx context.Context, email string) (int64, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.ErrUserNotFound
		}
		return 0, fmt.Errorf("find user: %w", err)
	}

	affected, err := s.tokenRepo.DeleteByUserID(ctx, user.ID)
	if err != nil {
		return 0, fmt.Errorf("delete token row: %w", err)
	}
	return affected, nil
}
