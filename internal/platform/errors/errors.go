package apperrors

import "errors"

var (
	ErrInvalidInput              = errors.New("invalid input")
	ErrNotFound                  = errors.New("not found")
	ErrNoActiveSession           = errors.New("no active session")
	ErrSessionAlreadyActive      = errors.New("a session is already active, end your current session first")
	ErrSessionNotFound           = errors.New("session not found")
	ErrSessionNotActive          = errors.New("session is not active")
	ErrCannotDeleteActiveSession = errors.New("cannot delete an active session")
	ErrPersistence               = errors.New("persistence failure")
)
