package domain

import "errors"

// ErrNotFound signals an absent row regardless of the storage backend.
var ErrNotFound = errors.New("not found")
