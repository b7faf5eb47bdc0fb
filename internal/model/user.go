package model

import "time"

// User represents a registered wishlist owner.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Name         string    `json:"name" gorm:"size:255;not null"`
	Surname      string    `json:"surname" gorm:"size:255;not null"`
	Picture      string    `json:"picture,omitempty" gorm:"size:512"`
	IsActive     bool      `json:"isActive" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Wishes []Wish `json:"wishes,omitempty" gorm:"foreignKey:OwnerID"`
}

// PublicUser is the password-stripped projection returned by the API.
type PublicUser struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Picture  string `json:"picture,omitempty"`
	IsActive bool   `json:"isActive"`
}

// Public projects a user into its password-stripped view.
func (u *User) Public() *PublicUser {
	if u == nil {
		return nil
	}
	return &PublicUser{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Surname:  u.Surname,
		Picture:  u.Picture,
		IsActive: u.IsActive,
	}
}
