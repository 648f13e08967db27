package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed lifecycle operation. Every kind is caller-correctable.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindForbidden    ErrorKind = "forbidden"
	KindInvalidInput ErrorKind = "invalid_input"
)

// Sentinels for errors.Is checks against a *BookingError.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)

// BookingError is returned by the lifecycle manager when a precondition fails.
// Code is a stable machine-readable identifier such as "room_not_found".
type BookingError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is lets errors.Is(err, ErrConflict) and friends match on Kind.
func (e *BookingError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrConflict:
		return e.Kind == KindConflict
	case ErrForbidden:
		return e.Kind == KindForbidden
	case ErrInvalidInput:
		return e.Kind == KindInvalidInput
	}
	return false
}

func notFound(code, format string, args ...any) *BookingError {
	return &BookingError{Kind: KindNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

func conflict(code, format string, args ...any) *BookingError {
	return &BookingError{Kind: KindConflict, Code: code, Message: fmt.Sprintf(format, args...)}
}

func forbidden(code, format string, args ...any) *BookingError {
	return &BookingError{Kind: KindForbidden, Code: code, Message: fmt.Sprintf(format, args...)}
}

func invalidInput(code, format string, args ...any) *BookingError {
	return &BookingError{Kind: KindInvalidInput, Code: code, Message: fmt.Sprintf(format, args...)}
}
