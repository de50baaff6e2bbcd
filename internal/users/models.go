package users

import (
	"time"

	"eventhub/internal/shared/constants"
)

// User as persisted under the users key. Credentials are stored as entered.
type User struct {
	ID        int64     `json:"id" validate:"required,min=1"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email" validate:"required"`
	Password  string    `json:"password"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role" validate:"oneof=user admin"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == constants.RoleAdmin
}

// Profile is a user without credentials.
type Profile struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, Role: u.Role}
}

func IsValidRole(role string) bool {
	switch role {
	case constants.RoleUser, constants.RoleAdmin:
		return true
	default:
		return false
	}
}
