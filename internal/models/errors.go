package models

import "errors"

// Custom errors
var (
	ErrDocumentUnavailable = errors.New("required document unavailable")
	ErrMalformedDocument   = errors.New("malformed document")
	ErrNoSnapshot          = errors.New("no snapshot available yet")
	ErrInvalidBoundaries   = errors.New("leg boundaries must be non-empty and strictly increasing")
	ErrTeamNotFound        = errors.New("team not found")
)
