package restaurant

import "yumexpress-be/internal/apperr"

// MaxPrice is the largest value a NUMERIC(10,2) price column holds.
const MaxPrice = 99999999.99

var (
	ErrRestaurantNotFound = apperr.New(apperr.ErrNotFound, "restaurant not found")
	ErrMenuItemNotFound   = apperr.New(apperr.ErrNotFound, "menu item not found")
	ErrInvalidMenuItem    = apperr.Validation("valid name and price are required")
	ErrNegativePrice      = apperr.Validation("price must not be negative")
	ErrPriceTooLarge      = apperr.Validation("price must not exceed 99999999.99")
)
