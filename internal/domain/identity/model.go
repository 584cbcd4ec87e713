package identity

import (
	"time"

	"github.com/google/uuid"
)

// User maps to the app_user table.
type User struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Username         string    `db:"username" json:"username"`
	Email            string    `db:"email" json:"email"`
	FirstName        *string   `db:"first_name" json:"first_name,omitempty"`
	LastName         *string   `db:"last_name" json:"last_name,omitempty"`
	Role             string    `db:"role" json:"role"`
	SubscriptionType string    `db:"subscription_type" json:"subscription_type"`
	IsActive         bool      `db:"is_active" json:"is_active"`
	Location         *string   `db:"location" json:"location,omitempty"`
	PasswordHash     string    `db:"password_hash" json:"-"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// RegisterRequest is the payload accepted by the registration endpoint.
type RegisterRequest struct {
	Username        string  `json:"username"`
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	PasswordConfirm string  `json:"password_confirm"`
	FirstName       *string `json:"first_name,omitempty"`
	LastName        *string `json:"last_name,omitempty"`
	Location        *string `json:"location,omitempty"`
}

// DisplayName renders a user the way list rows do: full name, then username.
func (u *User) DisplayName() string {
	if u.FirstName != nil && *u.FirstName != "" {
		if u.LastName != nil && *u.LastName != "" {
			return *u.FirstName + " " + *u.LastName
		}
		return *u.FirstName
	}
	return u.Username
}
