// Package apperr carries the error kinds shared by repositories, usecases and
// handlers. A kind decides the HTTP status; the message is safe to show to
// the client.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	NotFound          Kind = "not_found"
	Conflict          Kind = "conflict"
	InsufficientSeats Kind = "insufficient_seats"
	AlreadyPaid       Kind = "already_paid"
	Validation        Kind = "validation"
	Forbidden         Kind = "forbidden"
	Internal          Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Details map[string]string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on kind. A target with a message also has to match the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// Kind sentinels, for errors.Is.
var (
	ErrNotFound          = &Error{Kind: NotFound}
	ErrConflict          = &Error{Kind: Conflict}
	ErrInsufficientSeats = &Error{Kind: InsufficientSeats}
	ErrAlreadyPaid       = &Error{Kind: AlreadyPaid}
	ErrValidation        = &Error{Kind: Validation}
	ErrForbidden         = &Error{Kind: Forbidden}
	ErrInternal          = &Error{Kind: Internal}
)

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NewNotFound(message string) *Error { return New(NotFound, message) }

func NewConflict(message string) *Error { return New(Conflict, message) }

func NewForbidden(message string) *Error { return New(Forbidden, message) }

func NewValidation(message string, details map[string]string) *Error {
	return &Error{Kind: Validation, Message: message, Details: details}
}

// NewInternal hides err from the client.
func NewInternal(err error) *Error {
	return Wrap(Internal, "Internal server error", err)
}

// KindOf reports the kind of err, Internal when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// As unwraps err into an *Error, promoting unknown errors to Internal.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewInternal(err)
}
