package repository

import "errors"

// ErrNotFound is returned when a booking does not exist or is owned by
// another user. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("booking not found")
