package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrConflict              = errors.New("conflict")
	ErrMarketClosed          = errors.New("market closed")
	ErrInvalidTransition     = errors.New("invalid round transition")
	ErrStatisticsUnavailable = errors.New("statistics unavailable for round")
	ErrSequenceAborted       = errors.New("finalize sequence aborted")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
