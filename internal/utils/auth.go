package utils

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UserRoleKey contextKey = "role"
)

const (
	RoleUser       = "user"
	RoleRestaurant = "restaurant"
)
