package model

import "time"

// AuthToken is the single token row kept per user. Sign-in and refresh rotate
// the pair in place; sign-out deletes the row. The unique index on UserID is
// what makes concurrent first sign-ins safe.
type AuthToken struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"userId" gorm:"uniqueIndex;not null"`
	AccessToken  string    `json:"accessToken" gorm:"size:1024;not null"`
	RefreshToken string    `json:"refreshToken" gorm:"size:1024;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
