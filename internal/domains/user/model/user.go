package model

import (
	"time"

	"github.com/google/uuid"
)

// User type values stored in users.user_type.
const (
	UserTypeVisitor  = "visitor"
	UserTypeMerchant = "merchant"
	UserTypeAdmin    = "admin"
)

// User is a row in the users table. Accounts themselves live in the
// external identity provider; this table only carries the role and the
// directory profile fields.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserType  string    `json:"user_type" db:"user_type"`
	Location  *string   `json:"location,omitempty" db:"location"`
	Slug      *string   `json:"slug,omitempty" db:"slug"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsValidUserType reports whether t is one of the enumerated roles.
func IsValidUserType(t string) bool {
	switch t {
	case UserTypeVisitor, UserTypeMerchant, UserTypeAdmin:
		return true
	}
	return false
}
