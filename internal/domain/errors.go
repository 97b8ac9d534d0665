package domain

import "errors"

var (
	// ErrConflict is returned when a user with the same domain id already exists
	ErrConflict = errors.New("conflict")
	// ErrNotFound is returned when a lookup by domain id misses
	ErrNotFound = errors.New("not found")
	// ErrBadRequest covers unparseable bodies, non-numeric ids and missing fields
	ErrBadRequest = errors.New("bad request")
	// ErrUpstream wraps failures talking to the placeholder source
	ErrUpstream = errors.New("upstream failure")
)
