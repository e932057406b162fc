// Package common defines shared constants and sentinel errors used across
// the moneyledger layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository/gateway-level errors.
	ErrNotFound = errors.New("not found")

	// Auth/session errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoSession    = errors.New("no active session")
	ErrTokenExpired = errors.New("token expired")

	// Category validation errors. These are raised before any remote call
	// and carry the user-facing reason code.
	ErrCategoryExists          = errors.New("category exists")
	ErrCategoryNameExists      = errors.New("category name exists")
	ErrCategoryHasTransactions = errors.New("category has associated transactions")

	// Category transport failures, wrapped around the underlying error so
	// the caller sees both the reason code and the detail.
	ErrCategoryAddFailed    = errors.New("category add failed")
	ErrCategoryUpdateFailed = errors.New("category update failed")
	ErrCategoryDeleteFailed = errors.New("category delete failed")

	// Degraded-initialization errors.
	ErrSeedingFailed = errors.New("category initialization failed")
)
