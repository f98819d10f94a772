// internal/services/errors.go
package services

import "errors"

// Validation failures surface to the client as user-facing messages; the
// operation aborts with no partial state change before the failing check.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrNotificationNotFound = errors.New("notification not found")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")

	ErrInsufficientBalance = errors.New("insufficient balance for this product")
	ErrOutOfStock          = errors.New("product is out of stock")
	ErrCouponNotUsable     = errors.New("coupon is expired or fully used")

	ErrInvalidTransition = errors.New("order status does not allow this transition")

	// ErrConflict reports a lost optimistic-concurrency race: another writer
	// updated the row between read and write.
	ErrConflict = errors.New("record was modified concurrently, retry")
)
