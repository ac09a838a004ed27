package account

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser       Role = "user"
	RoleRestaurant Role = "restaurant"
)

// ParseRole accepts a role name in any letter case.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleRestaurant:
		return RoleRestaurant, nil
	}
	return "", ErrInvalidRole
}

// Account is a user or a restaurant. Type and Photo are only stored for restaurants.
type Account struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	Role        Role      `json:"role"`
	Contact     string    `json:"contact"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	Type        string    `json:"type,omitempty"`
	Photo       string    `json:"photo,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Address  string
}

// UpdateProfileParams holds optional fields; nil keeps the stored value.
type UpdateProfileParams struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	Contact     *string `json:"contact"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
	Photo       *string `json:"photo"`
}

type LoginResult struct {
	Token   string
	Account Account
}
