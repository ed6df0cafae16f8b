// Package common defines sentinel errors shared by the store, services and
// HTTP layers. Callers should match them with errors.Is.
package common

import "errors"

var (
	// Client-side errors.
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("invalid username or password")
	ErrAlreadyExists = errors.New("already exists")

	// Upstream errors (inference endpoint, payment provider).
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrUpstream            = errors.New("upstream error")

	// ErrUnparseable is returned when generated quiz text yields no questions.
	ErrUnparseable = errors.New("unparseable quiz text")
)
