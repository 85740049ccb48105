package domain

import "errors"

var (
	ErrInputRejected      = errors.New("input rejected")
	ErrValidationFailed   = errors.New("document validation failed")
	ErrSubmissionFailed   = errors.New("failed to send invoice")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrInvalidTransition  = errors.New("action not allowed in current state")
	ErrUnknownField       = errors.New("unknown field")
	ErrLineNotFound       = errors.New("material line not found")
	ErrTermNotFound       = errors.New("term not found")
	ErrSessionNotFound    = errors.New("session not found")
)
