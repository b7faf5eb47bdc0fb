package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wishlisted/internal/model"
)

// FollowRepository stores directed follow edges. A single row serves both the
// followings and followers views, so symmetry holds by construction.
type FollowRepository interface {
	Create(ctx context.Context, followerID, followeeID uint) error
	Delete(ctx context.Context, followerID, followeeID uint) (int64, error)
	Exists(ctx context.Context, followerID, followeeID uint) (bool, error)
	ListFollowings(ctx context.Context, followerID uint) ([]model.User, error)
	ListFollowers(ctx context.Context, followeeID uint) ([]model.User, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository builds a GORM-backed follow repository.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, followerID, followeeID uint) error {
	f := &model.Follow{FollowerID: followerID, FolloweeID: followeeID}
	// Idempotent: re-following is a no-op thanks to the unique pair index.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(f).Error
}

func (r *followRepository) Delete(ctx context.Context, followerID, followeeID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&model.Follow{})
	return res.RowsAffected, res.Error
}

func (r *followRepository) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *followRepository) ListFollowings(ctx context.Context, followerID uint) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ?", followerID).
		Find(&users).Error
	return users, err
}

func (r *followRepository) ListFollowers(ctx context.Context, followeeID uint) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followee_id = ?", followeeID).
		Find(&users).Error
	return users, err
}
