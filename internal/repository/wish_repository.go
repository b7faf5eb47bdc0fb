package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wishlisted/internal/model"
)

// WishRepository defines wish persistence operations. Reserve/cancel callers
// run inside WithTransaction and re-read with FindByIDForUpdate so the
// read-then-write on the reserver column cannot race.
type WishRepository interface {
	Create(ctx context.Context, wish *model.Wish) error
	Save(ctx context.Context, wish *model.Wish) error
	FindByID(ctx context.Context, id uint) (*model.Wish, error)
	FindByIDWithRelations(ctx context.Context, id uint) (*model.Wish, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Wish, error)
	FindByOwner(ctx context.Context, ownerID uint) ([]model.Wish, error)
	FindByReserver(ctx context.Context, reserverID uint) ([]model.Wish, error)
	Delete(ctx context.Context, id uint) (int64, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo WishRepository) error) error
}

type wishRepository struct {
	db *gorm.DB
}

// NewWishRepository creates a new wish repository.
func NewWishRepository(db *gorm.DB) WishRepository {
	return &wishRepository{db: db}
}

func (r *wishRepository) Create(ctx context.Context, wish *model.Wish) error {
	return r.db.WithContext(ctx).Create(wish).Error
}

// Save writes the full record, including a nil reserver reference.
func (r *wishRepository) Save(ctx context.Context, wish *model.Wish) error {
	wish.SyncReserved()
	return r.db.WithContext(ctx).Omit("Owner", "ReservedBy").Save(wish).Error
}

func (r *wishRepository) FindByID(ctx context.Context, id uint) (*model.Wish, error) {
	var wish model.Wish
	if err := r.db.WithContext(ctx).First(&wish, id).Error; err != nil {
		return nil, err
	}
	return &wish, nil
}

// FindByIDWithRelations loads the wish with owner and reserver populated.
func (r *wishRepository) FindByIDWithRelations(ctx context.Context, id uint) (*model.Wish, error) {
	var wish model.Wish
	if err := r.db.WithContext(ctx).
		Preload("Owner").Preload("ReservedBy").
		First(&wish, id).Error; err != nil {
		return nil, err
	}
	return &wish, nil
}

// FindByIDForUpdate takes a row-level lock on the wish for the reservation
// critical section.
func (r *wishRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Wish, error) {
	var wish model.Wish
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&wish, id).Error; err != nil {
		return nil, err
	}
	return &wish, nil
}

func (r *wishRepository) FindByOwner(ctx context.Context, ownerID uint) ([]model.Wish, error) {
	var wishes []model.Wish
	if err := r.db.WithContext(ctx).
		Preload("Owner").Preload("ReservedBy").
		Where("owner_id = ?", ownerID).Find(&wishes).Error; err != nil {
		return nil, err
	}
	return wishes, nil
}

func (r *wishRepository) FindByReserver(ctx context.Context, reserverID uint) ([]model.Wish, error) {
	var wishes []model.Wish
	if err := r.db.WithContext(ctx).
		Preload("Owner").Preload("ReservedBy").
		Where("reserved_by_id = ?", reserverID).Find(&wishes).Error; err != nil {
		return nil, err
	}
	return wishes, nil
}

func (r *wishRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Wish{}, id)
	return res.RowsAffected, res.Error
}

// WithTransaction executes fn against a transaction-scoped repository.
func (r *wishRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo WishRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &wishRepository{db: tx})
	})
}
