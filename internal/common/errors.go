// Package common contains shared constants and sentinel errors used across
// the Perfect Match client layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Backend taxonomy. The api package maps transport failures and HTTP
	// status codes onto these values.
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrServer       = errors.New("server error")
	ErrTimeout      = errors.New("request timed out")
	ErrNetwork      = errors.New("network error")

	// Validation / submission errors.
	ErrValidation = errors.New("validation failed")
)
