package relationship

import "errors"

var (
	// ErrInvalidTarget means the request carried neither a target uid nor a
	// target email.
	ErrInvalidTarget = errors.New("relationship: no target uid or email supplied")

	// ErrUserNotFound means the target did not resolve to a real account.
	ErrUserNotFound = errors.New("relationship: user not found")

	// ErrSelfAction means the actor targeted themselves.
	ErrSelfAction = errors.New("relationship: cannot perform this action on yourself")

	// ErrTxConflict is returned by a Store when a concurrent transaction
	// touched one of the pair's rows; the caller may retry.
	ErrTxConflict = errors.New("relationship: transaction conflict")

	// ErrTxExhausted means the bounded retry loop gave up.
	ErrTxExhausted = errors.New("relationship: transaction retries exhausted")
)
