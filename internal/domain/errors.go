package domain

import "errors"

var (
	// ErrValidation rejects a malformed order before it reaches storage.
	ErrValidation = errors.New("order validation failed")

	// ErrOrderNotFound is returned for reads of an unknown order id.
	ErrOrderNotFound = errors.New("order not found")

	ErrCustomerNotFound = errors.New("customer not found")
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrInvalidCoupon    = errors.New("invalid coupon code")

	// ErrStatusConflict means the optimistic precondition on an advance
	// failed: the stored status no longer matches what the caller saw,
	// or the order is already terminal.
	ErrStatusConflict = errors.New("order status conflict")

	// ErrEstimationFailed marks a failed or timed-out ETA lookup. It is
	// logged and swallowed; it never rolls back a committed transition.
	ErrEstimationFailed = errors.New("eta estimation failed")
)
