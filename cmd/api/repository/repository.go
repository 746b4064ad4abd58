package repository

import "errors"

// ErrNotFound is returned when the requested entity does not exist.
// Handlers map it to a client-visible 404.
var ErrNotFound = errors.New("not found")
