// Package apperr defines the error taxonomy shared by every service. Handlers
// translate these into the tagged response envelope; anything that is not an
// *Error is treated as a storage failure.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Validation Kind = iota + 1 // malformed or missing input
	NotFound                   // referenced entity absent
	Conflict                   // duplicate natural key, session state conflicts
	BusinessRule               // stock, payment, cancellation window violations
	Storage                    // transaction failure, connectivity
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the kind to the status the handler should respond with
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case Validation:
		return 400
	case NotFound:
		return 404
	case Conflict:
		return 409
	case BusinessRule:
		return 422
	default:
		return 500
	}
}

func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: Validation, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: NotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: Conflict, Message: fmt.Sprintf(format, args...)}
}

func BusinessRulef(format string, args ...interface{}) *Error {
	return &Error{Kind: BusinessRule, Message: fmt.Sprintf(format, args...)}
}

func Wrap(err error, message string) *Error {
	return &Error{Kind: Storage, Message: message, Err: err}
}

// IsKind reports whether err is an *Error of the given kind
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// StatusOf resolves the HTTP status for any error
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus()
	}
	return 500
}
