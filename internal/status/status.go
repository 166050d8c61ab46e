package status

import "errors"

var (
	ErrAuthRequired       = errors.New("auth: authentication required")
	ErrBackendUnavailable = errors.New("backend: store unavailable")
	ErrConflict           = errors.New("order: already processed")
	ErrNotFound           = errors.New("record: not found")
	ErrValidation         = errors.New("input: validation failed")
)
