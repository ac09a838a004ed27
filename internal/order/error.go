package order

import (
	"fmt"

	"yumexpress-be/internal/apperr"
)

const (
	deletedRestaurantName = "Deleted Restaurant"
	unknownUserName       = "Unknown"
)

var (
	ErrOrderNotFound      = apperr.New(apperr.ErrNotFound, "order not found")
	ErrUserNotFound       = apperr.New(apperr.ErrNotFound, "user not found")
	ErrRestaurantNotFound = apperr.New(apperr.ErrNotFound, "restaurant not found")
	ErrNotOrderOwner      = apperr.New(apperr.ErrForbidden, "access denied: order belongs to another account")
	ErrStatusChanged      = apperr.New(apperr.ErrInvalidTransition, "order status was changed by another request")
	ErrStatusRequired     = apperr.Validation("status is required")
)

func invalidTransition(from, to OrderStatus) error {
	return apperr.New(apperr.ErrInvalidTransition,
		fmt.Sprintf("cannot change order status from %q to %q", from, to))
}
