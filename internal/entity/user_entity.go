package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleShop     UserRole = "shop"
)

// User is owned by the platform's account subsystem. This service only reads
// the public profile fields it needs for counterpart presentation.
type User struct {
	Id        uuid.UUID
	Username  string
	Role      UserRole
	AvatarURL *string

	// Shop-only presentation fields. Nil for customers.
	ShopName    *string
	ShopLogoURL *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsShop reports whether the user should be presented with shop branding.
func (u *User) IsShop() bool {
	return u.Role == UserRoleShop
}
