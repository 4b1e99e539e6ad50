package entity

import (
	"time"
)

// Credential is a stored user account
type Credential struct {
	ID           string     `bson:"_id,omitempty"`
	Email        string     `bson:"email"` // unique index
	PasswordHash string     `bson:"passwordHash"`
	ResetToken   string     `bson:"resetToken,omitempty"`
	ResetExpiry  *time.Time `bson:"resetExpiry,omitempty"`
	CreatedAt    time.Time  `bson:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt"`
}
