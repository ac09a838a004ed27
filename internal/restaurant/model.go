package restaurant

import (
	"time"

	"github.com/google/uuid"
)

type MenuItem struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurantId"`
	Position     int       `json:"position"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	Mood         string    `json:"mood"`
	Tags         []string  `json:"tags"`
}

// Restaurant is the public view of a restaurant account; it never carries the password.
type Restaurant struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Type        string     `json:"type"`
	Address     string     `json:"address"`
	Contact     string     `json:"contact"`
	Photo       string     `json:"photo"`
	Description string     `json:"description"`
	Menu        []MenuItem `json:"menu"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// MenuItemMatch is a menu item found by tag search, with its restaurant's name.
type MenuItemMatch struct {
	MenuItem
	RestaurantName string `json:"restaurantName"`
}

type MenuItemInput struct {
	Name        string   `json:"name"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Mood        string   `json:"mood"`
	Tags        []string `json:"tags"`
}

type UpdateProfileParams struct {
	Name        *string `json:"name"`
	Type        *string `json:"type"`
	Address     *string `json:"address"`
	Contact     *string `json:"contact"`
	Photo       *string `json:"photo"`
	Description *string `json:"description"`
}
