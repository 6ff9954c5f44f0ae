package domain

import "errors"

// Sentinel errors shared by services and repositories. Controllers map them to HTTP status codes.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrDuplicateVenue     = errors.New("venue name already in use")
	ErrAlreadyRegistered  = errors.New("participant already registered for event")

	// ErrSourceUnresolved is returned when neither the override nor the event's sheet link yields a spreadsheet ID.
	ErrSourceUnresolved = errors.New("no spreadsheet id found for event")
	// ErrSourceAccess is returned when the spreadsheet cannot be opened or read.
	ErrSourceAccess = errors.New("spreadsheet access error")
)
