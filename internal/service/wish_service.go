package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "wishlisted/internal/errors"
	"wishlisted/internal/model"
	"wishlisted/internal/repository"
)

// WishView is the outward projection of a wish. ReservedBy is nulled for
// anonymous reservations unless the viewer is the reserver.
type WishView struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Price       decimal.Decimal   `json:"price"`
	CanBeAnon   bool              `json:"canBeAnon"`
	IsHidden    bool              `json:"isHidden"`
	IsReserved  bool              `json:"isReserved"`
	Picture     string            `json:"picture,omitempty"`
	Owner       *model.PublicUser `json:"owner,omitempty"`
	ReservedBy  *model.PublicUser `json:"reservedBy"`
}

// WishLists is the findAll result: wishes the user owns and wishes the user
// has reserved for others.
type WishLists struct {
	Wishes       []WishView `json:"wishes"`
	Reservations []WishView `json:"reservations"`
}

// CreateWishInput carries the fields of a new wish.
type CreateWishInput struct {
	Title       string
	Description string
	Price       decimal.Decimal
	CanBeAnon   bool
	IsHidden    bool
	Picture     string
}

// UpdateWishInput carries the optional fields of a wish PATCH.
type UpdateWishInput struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	CanBeAnon   *bool
	IsHidden    *bool
	Picture     *string
}

// WishService owns wish CRUD and the reservation state machine:
// Open -> Reserved on reserve, Reserved -> Open on cancel, nothing else.
type WishService interface {
	Create(ctx context.Context, ownerID uint, input CreateWishInput) (*WishView, error)
	Update(ctx context.Context, actorID, wishID uint, input UpdateWishInput) (*WishView, error)
	Remove(ctx context.Context, actorID, wishID uint) (int64, error)
	// FindAll returns the lists for userID as seen by viewerID (0 = anonymous).
	FindAll(ctx context.Context, userID, viewerID uint) (*WishLists, error)
	Reserve(ctx context.Context, reserverID, wishID uint) (*WishView, error)
	Cancel(ctx context.Context, reserverID, wishID uint) (*WishView, error)
}

type wishService struct {
	wishRepo repository.WishRepository
	userRepo repository.UserRepository
}

// NewWishService creates a new wish service.
func NewWishService(wishRepo repository.WishRepository, userRepo repository.UserRepository) WishService {
	return &wishService{wishRepo: wishRepo, userRepo: userRepo}
}

// Create persists a wish for the given owner.
func (s *wishService) Create(ctx context.Context, ownerID uint, input CreateWishInput) (*WishView, error) {
	owner, err := s.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find owner: %w", err)
	}

	wish := &model.Wish{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		CanBeAnon:   input.CanBeAnon,
		IsHidden:    input.IsHidden,
		Picture:     input.Picture,
		OwnerID:     owner.ID,
	}
	if err := s.wishRepo.Create(ctx, wish); err != nil {
		return nil, fmt.Errorf("create wish: %w", err)
	}

	wish.Owner = owner
	return s.project(wish, ownerID), nil
}

// Update applies the provided fields. Only the owner may update.
func (s *wishService) Update(ctx context.Context, actorID, wishID uint, input UpdateWishInput) (*WishView, error) {
	wish, err := s.wishRepo.FindByIDWithRelations(ctx, wishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWishNotFound
		}
		return nil, fmt.Errorf("find wish: %w", err)
	}
	if wish.OwnerID != actorID {
		return nil, apperrors.ErrNotOwner
	}

	if input.Title != nil {
		wish.Title = *input.Title
	}
	if input.Description != nil {
		wish.Description = *input.Description
	}
	if input.Price != nil {
		wish.Price = *input.Price
	}
	if input.CanBeAnon != nil {
		wish.CanBeAnon = *input.CanBeAnon
	}
	if input.IsHidden != nil {
		wish.IsHidden = *input.IsHidden
	}
	if input.Picture != nil {
		wish.Picture = *input.Picture
	}

	if err := s.wishRepo.Save(ctx, wish); err != nil {
		return nil, fmt.Errorf("save wish: %w", err)
	}
	return s.project(wish, actorID), nil
}

// Remove deletes the wish. Only the owner may delete.
func (s *wishService) Remove(ctx context.Context, actorID, wishID uint) (int64, error) {
	wish, err := s.wishRepo.FindByID(ctx, wishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.ErrWishNotFound
		}
		return 0, fmt.Errorf("find wish: %w", err)
	}
	if wish.OwnerID != actorID {
		return 0, apperrors.ErrNotOwner
	}
	return s.wishRepo.Delete(ctx, wishID)
}

// FindAll returns userID's own wishes and reservations, projected for viewerID.
func (s *wishService) FindAll(ctx context.Context, userID, viewerID uint) (*WishLists, error) {
	owned, err := s.wishRepo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list owned wishes: %w", err)
	}
	reserved, err := s.wishRepo.FindByReserver(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	lists := &WishLists{
		Wishes:       make([]WishView, len(owned)),
		Reservations: make([]WishView, len(reserved)),
	}
	for i := range owned {
		lists.Wishes[i] = *s.project(&owned[i], viewerID)
	}
	for i := range reserved {
		lists.Reservations[i] = *s.project(&reserved[i], viewerID)
	}
	return lists, nil
}

// Reserve moves an open wish to Reserved for reserverID. The wish row is
// locked for the read-check-write, so two concurrent reserves cannot both
// observe it open.
func (s *wishService) Reserve(ctx context.Context, reserverID, wishID uint) (*WishView, error) {
	reserver, err := s.userRepo.FindByID(ctx, reserverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find reserver: %w", err)
	}

	var reserved *model.Wish
	err = s.wishRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.WishRepository) error {
		wish, err := txRepo.FindByIDForUpdate(ctx, wishID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrWishNotFound
			}
			return fmt.Errorf("find wish: %w", err)
		}
		if wish.ReservedByID != nil {
			return apperrors.ErrWishAlreadyReserved
		}

		wish.ReservedByID = &reserver.ID
		if err := txRepo.Save(ctx, wish); err != nil {
			return fmt.Errorf("save wish: %w", err)
		}
		reserved = wish
		return nil
	})
	if err != nil {
		return nil, err
	}

	owner, err := s.userRepo.FindByID(ctx, reserved.OwnerID)
	if err == nil {
		reserved.Owner = owner
	}
	reserved.ReservedBy = reserver
	return s.project(reserved, reserverID), nil
}

// Cancel moves a reserved wish back to Open. Only the reserver may cancel,
// never the owner.
func (s *wishService) Cancel(ctx context.Context, reserverID, wishID uint) (*WishView, error) {
	var cancelled *model.Wish
	err := s.wishRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.WishRepository) error {
		wish, err := txRepo.FindByIDForUpdate(ctx, wishID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrWishNotFound
			}
			return fmt.Errorf("find wish: %w", err)
		}
		if wish.ReservedByID == nil {
			return apperrors.ErrWishNotReserved
		}
		if *wish.ReservedByID != reserverID {
			return apperrors.ErrNotReserver
		}

		wish.ReservedByID = nil
		if err := txRepo.Save(ctx, wish); err != nil {
			return fmt.Errorf("save wish: %w", err)
		}
		cancelled = wish
		return nil
	})
	if err != nil {
		return nil, err
	}

	owner, err := s.userRepo.FindByID(ctx, cancelled.OwnerID)
	if err == nil {
		cancelled.Owner = owner
	}
	return s.project(cancelled, reserverID), nil
}

// project builds the outward view. The anonymity rule lives here, at the read
// boundary: a canBeAnon reservation shows its reserver only to the reserver.
func (s *wishService) project(wish *model.Wish, viewerID uint) *WishView {
	wish.SyncReserved()

	view := &WishView{
		ID:          wish.ID,
		Title:       wish.Title,
		Description: wish.Description,
		Price:       wish.Price,
		CanBeAnon:   wish.CanBeAnon,
		IsHidden:    wish.IsHidden,
		IsReserved:  wish.IsReserved,
		Picture:     wish.Picture,
		Owner:       wish.Owner.Public(),
	}

	if wish.ReservedByID == nil {
		return view
	}
	if wish.CanBeAnon && *wish.ReservedByID != viewerID {
		return view
	}
	view.ReservedBy = wish.ReservedBy.Public()
	return view
}
