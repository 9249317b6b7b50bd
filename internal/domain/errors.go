package domain

import "errors"

var (
	// ErrInvalidToken means the stored or supplied token could not be decoded
	ErrInvalidToken = errors.New("invalid token")
	// ErrNotAuthenticated means an operation requires a logged-in session
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrSubmitInFlight means a booking submission is already outstanding
	ErrSubmitInFlight = errors.New("submission already in progress")
	// ErrIncompleteDraft means the booking draft is missing required fields
	ErrIncompleteDraft = errors.New("booking draft is incomplete")
	// ErrInvalidRange means the draft time range is ill-ordered
	ErrInvalidRange = errors.New("booking end must be after start")
)
