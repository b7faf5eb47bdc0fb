package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"wishlisted/internal/cache"
	apperrors "wishlisted/internal/errors"
	"wishlisted/internal/model"
)

// A nil cache client degrades to uncached reads, which is exactly what the
// service tests want.
var noCache *cache.Client

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "successful registration",
			email: "test@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:  "duplicate email",
			email: "existing@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: apperrors.ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo, noCache)
			user, err := svc.Register(context.Background(), tt.email, "password123", "Test", "User")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, "Test", user.Name)
				assert.Equal(t, "User", user.Surname)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_Register_HashesPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	var created *model.User
	mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.User)
		}).Return(nil)

	svc := NewUserService(mockRepo, noCache)
	_, err := svc.Register(context.Background(), "test@example.com", "password123", "Test", "User")
	assert.NoError(t, err)

	assert.NotEqual(t, "password123", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("password123")))
}

func TestUserService_GetPublicUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(7)).Return(&model.User{
		ID:           7,
		Email:        "test@example.com",
		PasswordHash: "$2a$10$secret",
		Name:         "Test",
		Surname:      "User",
	}, nil)
	mockRepo.On("FindByID", mock.Anything, uint(8)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewUserService(mockRepo, noCache)

	user, err := svc.GetPublicUser(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, "test@example.com", user.Email)

	_, err = svc.GetPublicUser(context.Background(), 8)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_Update(t *testing.T) {
	newName := "Renamed"
	newPassword := "newpassword"

	mockRepo := new(MockUserRepository)
	stored := &model.User{ID: 7, Email: "test@example.com", PasswordHash: "old-hash", Name: "Test", Surname: "User"}
	mockRepo.On("FindByID", mock.Anything, uint(7)).Return(stored, nil)
	mockRepo.On("Update", mock.Anything, stored).Return(nil)

	svc := NewUserService(mockRepo, noCache)
	user, err := svc.Update(context.Background(), 7, UpdateUserInput{Name: &newName, Password: &newPassword})

	assert.NoError(t, err)
	assert.Equal(t, "Renamed", user.Name)
	assert.Equal(t, "User", user.Surname)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(newPassword)))
	mockRepo.AssertExpectations(t)
}

func TestUserService_Remove(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("Delete", mock.Anything, uint(7)).Return(int64(1), nil)

	svc := NewUserService(mockRepo, noCache)
	affected, err := svc.Remove(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}
