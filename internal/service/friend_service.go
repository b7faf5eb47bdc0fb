package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "wishlisted/internal/errors"
	"wishlisted/internal/model"
	"wishlisted/internal/repository"
)

// Friends bundles both directions of a user's follow relations.
type Friends struct {
	Followings []model.PublicUser `json:"followings"`
	Followers  []model.PublicUser `json:"followers"`
}

// FriendService maintains the follow graph. Each relation is one directed edge
// row, so "B in A's followings" and "A in B's followers" are two reads of the
// same fact and cannot disagree.
type FriendService interface {
	AddFriend(ctx context.Context, userID, friendID uint) error
	RemoveFriend(ctx context.Context, userID, friendID uint) error
	GetFriends(ctx context.Context, userID uint) (*Friends, error)
}

type friendService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// NewFriendService creates a new friend service.
func NewFriendService(userRepo repository.UserRepository, followRepo repository.FollowRepository) FriendService {
	return &friendService{userRepo: userRepo, followRepo: followRepo}
}

// AddFriend adds friendID to userID's followings. Repeat calls are no-ops.
func (s *friendService) AddFriend(ctx context.Context, userID, friendID uint) error {
	if userID == friendID {
		return apperrors.ErrSelfFriend
	}
	if err := s.resolve(ctx, userID, apperrors.ErrUserNotFound); err != nil {
		return err
	}
	if err := s.resolve(ctx, friendID, apperrors.ErrFriendNotFound); err != nil {
		return err
	}
	if err := s.followRepo.Create(ctx, userID, friendID); err != nil {
		return fmt.Errorf("create follow edge: %w", err)
	}
	return nil
}

// RemoveFriend removes friendID from userID's followings. Removing an edge
// that does not exist is a no-op, mirroring AddFriend's idempotency.
func (s *friendService) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	if err := s.resolve(ctx, userID, apperrors.ErrUserNotFound); err != nil {
		return err
	}
	if err := s.resolve(ctx, friendID, apperrors.ErrFriendNotFound); err != nil {
		return err
	}
	if _, err := s.followRepo.Delete(ctx, userID, friendID); err != nil {
		return fmt.Errorf("delete follow edge: %w", err)
	}
	return nil
}

// GetFriends returns both directions of userID's relations as public views.
func (s *friendService) GetFriends(ctx context.Context, userID uint) (*Friends, error) {
	if err := s.resolve(ctx, userID, apperrors.ErrUserNotFound); err != nil {
		return nil, err
	}

	followings, err := s.followRepo.ListFollowings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list followings: %w", err)
	}
	followers, err := s.followRepo.ListFollowers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}

	return &Friends{
		Followings: toPublicUsers(followings),
		Followers:  toPublicUsers(followers),
	}, nil
}

func (s *friendService) resolve(ctx context.Context, id uint, notFound error) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound
		}
		return fmt.Errorf("find user %d: %w", id, err)
	}
	return nil
}

func toPublicUsers(users []model.User) []model.PublicUser {
	public := make([]model.PublicUser, len(users))
	for i := range users {
		public[i] = *users[i].Public()
	}
	return public
}
