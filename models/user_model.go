package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email        string `json:"email" gorm:"unique;not null"`
	PasswordHash string `json:"-"`
	IsVerified   bool   `json:"is_verified" gorm:"default:false"`
	// Invite token for the first-login claim flow. Single use, expiring;
	// cleared once the account is claimed.
	InviteToken   string     `json:"-" gorm:"size:64;index"`
	InviteExpires *time.Time `json:"-"`
}
