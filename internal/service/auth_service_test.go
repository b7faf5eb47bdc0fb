package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"wishlisted/internal/auth"
	apperrors "wishlisted/internal/errors"
	"wishlisted/internal/model"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService("test-secret", 5*time.Minute, 30*24*time.Hour)
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenRepository) {
				mUser.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           7,
					Email:        "test@example.com",
					PasswordHash: string(hashed),
					Name:         "Test",
					Surname:      "User",
				}, nil)
				mToken.On("Upsert", mock.Anything, mock.AnythingOfType("*model.AuthToken")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown email",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenRepository) {
				mUser.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrBadCredentials,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "not-the-password",
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenRepository) {
				mUser.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           7,
					Email:        "test@example.com",
					PasswordHash: string(hashed),
				}, nil)
			},
			expectedError: apperrors.ErrBadCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockTokenRepo := new(MockTokenRepository)
			tt.setupMock(mockUserRepo, mockTokenRepo)

			svc := NewAuthService(mockUserRepo, mockTokenRepo, newTestJWTService())
			pair, user, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, pair)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, pair.AccessToken)
				assert.NotEmpty(t, pair.RefreshToken)
				assert.Equal(t, tt.email, user.Email)
			}

			mockUserRepo.AssertExpectations(t)
			mockTokenRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_SignIn_PersistsSingleRow(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockTokenRepo := new(MockTokenRepository)

	var persisted []*model.AuthToken
	mockTokenRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*model.AuthToken")).
		Run(func(args mock.Arguments) {
			persisted = append(persisted, args.Get(1).(*model.AuthToken))
		}).Return(nil)

	svc := NewAuthService(mockUserRepo, mockTokenRepo, newTestJWTService())

	first, err := svc.SignIn(context.Background(), 7, "test@example.com")
	assert.NoError(t, err)
	second, err := svc.SignIn(context.Background(), 7, "test@example.com")
	assert.NoError(t, err)

	// Both sign-ins target the same user row; the second pair replaces the first.
	assert.Len(t, persisted, 2)
	assert.Equal(t, uint(7), persisted[0].UserID)
	assert.Equal(t, uint(7), persisted[1].UserID)
	assert.Equal(t, second.AccessToken, persisted[1].AccessToken)
	assert.Equal(t, second.RefreshToken, persisted[1].RefreshToken)

	// The rotated-out pair stays cryptographically valid until its own expiry.
	jwtService := newTestJWTService()
	claims, err := jwtService.ValidateToken(first.RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
}

func TestAuthService_Refresh(t *testing.T) {
	jwtService := newTestJWTService()
	storedPair, err := jwtService.GeneratePair(7, "test@example.com")
	assert.NoError(t, err)
	// Signing is deterministic, so this pair gets a different lifetime to
	// guarantee it differs from the stored one.
	rotatedOutPair, err := auth.NewJWTService("test-secret", 5*time.Minute, 29*24*time.Hour).
		GeneratePair(7, "test@example.com")
	assert.NoError(t, err)

	user := &model.User{ID: 7, Email: "test@example.com"}
	storedRow := &model.AuthToken{UserID: 7, AccessToken: storedPair.AccessToken, RefreshToken: storedPair.RefreshToken}

	tests := []struct {
		name          string
		email         string
		presented     string
		setupMock     func(*MockUserRepository, *MockTokenRepository)
		expectedError error
	}{
		{
			name:      "successful rotation",
			email:     "test@example.com",
			presented: storedPair.RefreshToken,
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenRepository) {
				mUser.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)
				mToken.On("FindByUserID", mock.Anything, uint(7)).Return(storedRow, nil)
				mToken.On("Upsert", mock.Anything, mock.AnythingOfType("*model.AuthToken")).Return(nil)
			},
		},
		{
			name:      "rotated-out refresh token is rejected",
			email:     "test@example.com",
			presented: rotatedOutPair.RefreshToken,
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenRepository) {
				mUser.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)
				mToken.On("FindByUserID", mock.Anything, uint(7)).Return(storedRow, nil)
			},
			expectedError: apperrors.ErrInvalidToken,
		},
		{
			name:      "no token row",
			email:     "test@example.com",
			presented: storedPair.RefreshToken,
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenRepository) {
				mUser.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)
				mToken.On("FindByUserID", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidToken,
		},
		{
			name:      "unknown user",
			email:     "ghost@example.com",
			presented: storedPair.RefreshToken,
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenRepository) {
				mUser.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockTokenRepo := new(MockTokenRepository)
			tt.setupMock(mockUserRepo, mockTokenRepo)

			svc := NewAuthService(mockUserRepo, mockTokenRepo, jwtService)
			pair, err := svc.Refresh(context.Background(), tt.email, tt.presented)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, pair)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, pair.AccessToken)
				assert.NotEmpty(t, pair.RefreshToken)
			}

			mockUserRepo.AssertExpectations(t)
			mockTokenRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_SignOut(t *testing.T) {
	tests := []struct {
		name             string
		email            string
		setupMock        func(*MockUserRepository, *MockTokenRepository)
		expectedError    error
		expectedAffected int64
	}{
		{
			name:  "removes the token row",
			email: "test@example.com",
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenRepository) {
				mUser.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{ID: 7, Email: "test@example.com"}, nil)
				mToken.On("DeleteByUserID", mock.Anything, uint(7)).Return(int64(1), nil)
			},
			expectedAffected: 1,
		},
		{
			name:  "no row to remove",
			email: "test@example.com",
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenRepository) {
				mUser.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{ID: 7, Email: "test@example.com"}, nil)
				mToken.On("DeleteByUserID", mock.Anything, uint(7)).Return(int64(0), nil)
			},
			expectedAffected: 0,
		},
		{
			name:  "unknown user",
			email: "ghost@example.com",
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenRepository) {
				mUser.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockTokenRepo := new(MockTokenRepository)
			tt.setupMock(mockUserRepo, mockTokenRepo)

			svc := NewAuthService(mockUserRepo, mockTokenRepo, newTestJWTService())
			affected, err := svc.SignOut(context.Background(), tt.email)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedAffected, affected)
			}

			mockUserRepo.AssertExpectations(t)
			mockTokenRepo.AssertExpectations(t)
		})
	}
}
