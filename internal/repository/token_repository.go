package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wishlisted/internal/model"
)

// TokenRepository persists the single AuthToken row each user holds.
type TokenRepository interface {
	FindByUserID(ctx context.Context, userID uint) (*model.AuthToken, error)
	// Upsert writes the pair for the user, inserting the row on first sign-in
	// and overwriting both token columns afterwards.
	Upsert(ctx context.Context, token *model.AuthToken) error
	DeleteByUserID(ctx context.Context, userID uint) (int64, error)
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new token repository.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) FindByUserID(ctx context.Context, userID uint) (*model.AuthToken, error) {
	var token model.AuthToken
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) Upsert(ctx context.Context, token *model.AuthToken) error {
	// The unique index on user_id turns a concurrent double insert into an
	// update of the same row instead of a duplicate.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"access_token", "refresh_token", "updated_at"}),
	}).Create(token).Error
}

func (r *tokenRepository) DeleteByUserID(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.AuthToken{})
	return res.RowsAffected, res.Error
}
