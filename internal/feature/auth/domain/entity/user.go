// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User is a registered account.
type User struct {
	// ID is a uuid assigned at registration and never changed.
	ID string `gorm:"primaryKey;size:36" json:"_id"`

	Name string `gorm:"size:255;not null" json:"name"`

	// Email is stored lower-cased and must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// Password holds the bcrypt hash. It is never serialized.
	Password string `gorm:"size:255;not null" json:"-"`

	// Avatar is a Gravatar URL derived from Email.
	Avatar string `gorm:"size:512" json:"avatar"`

	CreatedAt time.Time `json:"date"`
	UpdatedAt time.Time `json:"-"`
}
