package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "wishlisted/internal/errors"
	"wishlisted/internal/model"
)

func TestFriendService_AddFriend(t *testing.T) {
	userA := &model.User{ID: 1, Email: "a@example.com", Name: "A"}
	userB := &model.User{ID: 2, Email: "b@example.com", Name: "B"}

	tests := []struct {
		name          string
		userID        uint
		friendID      uint
		setupMock     func(*MockUserRepository, *MockFollowRepository)
		expectedError error
	}{
		{
			name:     "adds a friend",
			userID:   1,
			friendID: 2,
			setupMock: func(mUser *MockUserRepository, mFollow *MockFollowRepository) {
				mUser.On("FindByID", mock.Anything, uint(1)).Return(userA, nil)
				mUser.On("FindByID", mock.Anything, uint(2)).Return(userB, nil)
				mFollow.On("Create", mock.Anything, uint(1), uint(2)).Return(nil)
			},
		},
		{
			name:     "unknown friend",
			userID:   1,
			friendID: 99,
			setupMock: func(mUser *MockUserRepository, mFollow *MockFollowRepository) {
				mUser.On("FindByID", mock.Anything, uint(1)).Return(userA, nil)
				mUser.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrFriendNotFound,
		},
		{
			name:     "unknown user",
			userID:   77,
			friendID: 2,
			setupMock: func(mUser *MockUserRepository, mFollow *MockFollowRepository) {
				mUser.On("FindByID", mock.Anything, uint(77)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
		{
			name:          "cannot follow self",
			userID:        1,
			friendID:      1,
			setupMock:     func(mUser *MockUserRepository, mFollow *MockFollowRepository) {},
			expectedError: apperrors.ErrSelfFriend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockFollowRepo := new(MockFollowRepository)
			tt.setupMock(mockUserRepo, mockFollowRepo)

			svc := NewFriendService(mockUserRepo, mockFollowRepo)
			err := svc.AddFriend(context.Background(), tt.userID, tt.friendID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockUserRepo.AssertExpectations(t)
			mockFollowRepo.AssertExpectations(t)
		})
	}
}

// Repeat adds hit the idempotent edge write both times; neither call errors.
func TestFriendService_AddFriend_Idempotent(t *testing.T) {
	userA := &model.User{ID: 1}
	userB := &model.User{ID: 2}

	mockUserRepo := new(MockUserRepository)
	mockFollowRepo := new(MockFollowRepository)
	mockUserRepo.On("FindByID", mock.Anything, uint(1)).Return(userA, nil)
	mockUserRepo.On("FindByID", mock.Anything, uint(2)).Return(userB, nil)
	mockFollowRepo.On("Create", mock.Anything, uint(1), uint(2)).Return(nil).Twice()

	svc := NewFriendService(mockUserRepo, mockFollowRepo)
	assert.NoError(t, svc.AddFriend(context.Background(), 1, 2))
	assert.NoError(t, svc.AddFriend(context.Background(), 1, 2))

	mockFollowRepo.AssertExpectations(t)
}

func TestFriendService_RemoveFriend(t *testing.T) {
	userA := &model.User{ID: 1}
	userB := &model.User{ID: 2}

	tests := []struct {
		name          string
		friendID      uint
		setupMock     func(*MockUserRepository, *MockFollowRepository)
		expectedError error
	}{
		{
			name:     "removes the edge",
			friendID: 2,
			setupMock: func(mUser *MockUserRepository, mFollow *MockFollowRepository) {
				mUser.On("FindByID", mock.Anything, uint(1)).Return(userA, nil)
				mUser.On("FindByID", mock.Anything, uint(2)).Return(userB, nil)
				mFollow.On("Delete", mock.Anything, uint(1), uint(2)).Return(int64(1), nil)
			},
		},
		{
			name:     "unknown friend",
			friendID: 99,
			setupMock: func(mUser *MockUserRepository, mFollow *MockFollowRepository) {
				mUser.On("FindByID", mock.Anything, uint(1)).Return(userA, nil)
				mUser.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrFriendNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockFollowRepo := new(MockFollowRepository)
			tt.setupMock(mockUserRepo, mockFollowRepo)

			svc := NewFriendService(mockUserRepo, mockFollowRepo)
			err := svc.RemoveFriend(context.Background(), 1, tt.friendID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockFollowRepo.AssertExpectations(t)
		})
	}
}

// Both views come from the same edge rows, so A following B implies B has A
// as a follower.
func TestFriendService_GetFriends_Symmetry(t *testing.T) {
	userA := model.User{ID: 1, Email: "a@example.com", Name: "A"}
	userB := model.User{ID: 2, Email: "b@example.com", Name: "B"}

	mockUserRepo := new(MockUserRepository)
	mockFollowRepo := new(MockFollowRepository)
	mockUserRepo.On("FindByID", mock.Anything, uint(1)).Return(&userA, nil)
	mockUserRepo.On("FindByID", mock.Anything, uint(2)).Return(&userB, nil)
	// A follows B: the edge appears as A's following and as B's follower.
	mockFollowRepo.On("ListFollowings", mock.Anything, uint(1)).Return([]model.User{userB}, nil)
	mockFollowRepo.On("ListFollowers", mock.Anything, uint(1)).Return([]model.User{}, nil)
	mockFollowRepo.On("ListFollowings", mock.Anything, uint(2)).Return([]model.User{}, nil)
	mockFollowRepo.On("ListFollowers", mock.Anything, uint(2)).Return([]model.User{userA}, nil)

	svc := NewFriendService(mockUserRepo, mockFollowRepo)

	friendsOfA, err := svc.GetFriends(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, friendsOfA.Followings, 1)
	assert.Equal(t, uint(2), friendsOfA.Followings[0].ID)
	assert.Empty(t, friendsOfA.Followers)

	friendsOfB, err := svc.GetFriends(context.Background(), 2)
	assert.NoError(t, err)
	assert.Len(t, friendsOfB.Followers, 1)
	assert.Equal(t, uint(1), friendsOfB.Followers[0].ID)
	assert.Empty(t, friendsOfB.Followings)
}
