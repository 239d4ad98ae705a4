// Package internalerr holds sentinel errors shared across packages.
package internalerr

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrModelMissing  = errors.New("model unavailable")
)
