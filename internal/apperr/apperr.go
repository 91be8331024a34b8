// Package apperr defines the typed failures returned by the services.
package apperr

import (
	"errors"
	"fmt"
)

// Code is the machine-readable failure class.
type Code string

const (
	CodeUnauthorized           Code = "UNAUTHORIZED"
	CodeForbidden              Code = "FORBIDDEN"
	CodeNotFound               Code = "NOT_FOUND"
	CodeBadRequest             Code = "BAD_REQUEST"
	CodeInvalidTransition      Code = "INVALID_TRANSITION"
	CodeConflict               Code = "CONFLICT"
	CodeExternalServiceFailure Code = "EXTERNAL_SERVICE_FAILURE"
	CodeInternal               Code = "INTERNAL"
)

// Error is a typed failure. Two Errors match under errors.Is when their codes match.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is checks.
var (
	ErrUnauthorized           = &Error{Code: CodeUnauthorized, Message: "unauthorized"}
	ErrForbidden              = &Error{Code: CodeForbidden, Message: "forbidden"}
	ErrNotFound               = &Error{Code: CodeNotFound, Message: "not found"}
	ErrBadRequest             = &Error{Code: CodeBadRequest, Message: "bad request"}
	ErrInvalidTransition      = &Error{Code: CodeInvalidTransition, Message: "invalid transition"}
	ErrConflict               = &Error{Code: CodeConflict, Message: "conflict"}
	ErrExternalServiceFailure = &Error{Code: CodeExternalServiceFailure, Message: "external service failure"}
)

func Unauthorized(message string) error {
	return &Error{Code: CodeUnauthorized, Message: message}
}

func Forbidden(message string) error {
	return &Error{Code: CodeForbidden, Message: message}
}

func NotFound(message string) error {
	return &Error{Code: CodeNotFound, Message: message}
}

func BadRequest(message string) error {
	return &Error{Code: CodeBadRequest, Message: message}
}

func InvalidTransition(message string) error {
	return &Error{Code: CodeInvalidTransition, Message: message}
}

func Conflict(message string) error {
	return &Error{Code: CodeConflict, Message: message}
}

func ExternalServiceFailure(message string, err error) error {
	return &Error{Code: CodeExternalServiceFailure, Message: message, Err: err}
}

func Internal(message string, err error) error {
	return &Error{Code: CodeInternal, Message: message, Err: err}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf returns the caller-safe message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

func IsInvalidTransition(err error) bool {
	return errors.Is(err, ErrInvalidTransition)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsExternalServiceFailure(err error) bool {
	return errors.Is(err, ErrExternalServiceFailure)
}
