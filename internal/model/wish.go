package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wish represents a single wishlist item. ReservedBy is nil while the wish is
// open; IsReserved is derived from it and never trusted as stored.
type Wish struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Title        string          `json:"title" gorm:"size:255;not null"`
	Description  string          `json:"description" gorm:"size:2048"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null;default:0"`
	CanBeAnon    bool            `json:"canBeAnon" gorm:"default:false"`
	IsHidden     bool            `json:"isHidden" gorm:"default:false"`
	IsReserved   bool            `json:"isReserved" gorm:"default:false"`
	Picture      string          `json:"picture,omitempty" gorm:"size:512"`
	OwnerID      uint            `json:"ownerId" gorm:"not null;index"`
	ReservedByID *uint           `json:"-" gorm:"index"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	Owner      *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	ReservedBy *User `json:"-" gorm:"foreignKey:ReservedByID"`
}

// AfterFind keeps the derived reservation flag consistent with the reserver
// reference on every load.
func (w *Wish) AfterFind(tx *gorm.DB) error {
	w.SyncReserved()
	return nil
}

// BeforeSave recomputes the flag before it is written, so a stale stored copy
// can never diverge from the reserver reference.
func (w *Wish) BeforeSave(tx *gorm.DB) error {
	w.SyncReserved()
	return nil
}

// SyncReserved recomputes IsReserved from the reserver reference.
func (w *Wish) SyncReserved() {
	w.IsReserved = w.ReservedByID != nil
}
