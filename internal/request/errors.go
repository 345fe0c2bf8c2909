package request

import "errors"

// ErrNotFound is returned when no request has the given id.
var ErrNotFound = errors.New("booking request not found")

// ErrInvalidAction is returned for actions other than approve and decline.
var ErrInvalidAction = errors.New("invalid request action")

// ErrNotPending is returned when a request has already been decided.
// Handlers should translate this into an HTTP 409 response.
var ErrNotPending = errors.New("booking request is not pending")
