package gateway

import "errors"

// ErrNotFound is returned when the catalog has no classification for a movie.
var ErrNotFound = errors.New("not found")

// ErrTechnicalFailure is returned when the catalog could not be queried.
var ErrTechnicalFailure = errors.New("technical failure")
