// Package common defines shared constants and sentinel errors used across
// kcaldiary components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// ErrNoProfileSnapshot signals that a member has never completed
	// onboarding: no profile snapshot exists, so no nutrient goal can be
	// derived for single-day lookups. A precondition failure, not an
	// internal error.
	ErrNoProfileSnapshot = errors.New("member has no profile snapshot")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
