package model

import "errors"

var (
	// ErrInvalidManifest rejects the whole batch before any work begins.
	ErrInvalidManifest = errors.New("manifest is missing or has no items")

	ErrMerchantNotFound = errors.New("merchant not found")
)
