package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultUserImage is assigned when an account is registered without an upload.
const DefaultUserImage = "/images/defaultProfile.png"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an administrative account used only for authentication.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Email        string    `db:"email" json:"email"`
	Role         string    `db:"role" json:"role"`
	Img          string    `db:"img" json:"img"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"-"`
}
