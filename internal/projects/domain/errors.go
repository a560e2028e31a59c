package domain

import "errors"

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrStoreUnavailable = errors.New("project store unavailable")
)
