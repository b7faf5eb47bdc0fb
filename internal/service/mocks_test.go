package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wishlisted/internal/model"
	"wishlisted/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockTokenRepository is a mock implementation of repository.TokenRepository.
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) FindByUserID(ctx context.Context, userID uint) (*model.AuthToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthToken), args.Error(1)
}

func (m *MockTokenRepository) Upsert(ctx context.Context, token *model.AuthToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) DeleteByUserID(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockWishRepository is a mock implementation of repository.WishRepository.
// WithTransaction runs the callback against the mock itself, so reserve and
// cancel paths exercise their locking reads through the same expectations.
type MockWishRepository struct {
	mock.Mock
}

func (m *MockWishRepository) Create(ctx context.Context, wish *model.Wish) error {
	args := m.Called(ctx, wish)
	return args.Error(0)
}

func (m *MockWishRepository) Save(ctx context.Context, wish *model.Wish) error {
	wish.SyncReserved()
	args := m.Called(ctx, wish)
	return args.Error(0)
}

func (m *MockWishRepository) FindByID(ctx context.Context, id uint) (*model.Wish, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Wish), args.Error(1)
}

func (m *MockWishRepository) FindByIDWithRelations(ctx context.Context, id uint) (*model.Wish, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Wish), args.Error(1)
}

func (m *MockWishRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Wish, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Wish), args.Error(1)
}

func (m *MockWishRepository) FindByOwner(ctx context.Context, ownerID uint) ([]model.Wish, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Wish), args.Error(1)
}

func (m *MockWishRepository) FindByReserver(ctx context.Context, reserverID uint) ([]model.Wish, error) {
	args := m.Called(ctx, reserverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Wish), args.Error(1)
}

func (m *MockWishRepository) Delete(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWishRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.WishRepository) error) error {
	return fn(ctx, m)
}

// MockFollowRepository is a mock implementation of repository.FollowRepository.
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(ctx context.Context, followerID, followeeID uint) error {
	args := m.Called(ctx, followerID, followeeID)
	return args.Error(0)
}

func (m *MockFollowRepository) Delete(ctx context.Context, followerID, followeeID uint) (int64, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFollowRepository) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) ListFollowings(ctx context.Context, followerID uint) ([]model.User, error) {
	args := m.Called(ctx, followerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockFollowRepository) ListFollowers(ctx context.Context, followeeID uint) ([]model.User, error) {
	args := m.Called(ctx, followeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}
