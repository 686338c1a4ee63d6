package domain

import "errors"

// ErrorKind classifies a failure without binding it to a transport status
// code. The HTTP layer owns the mapping to response codes.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "not_found"
	KindUnauthorized ErrorKind = "unauthorized"
	KindConflict     ErrorKind = "conflict"
	KindBadRequest   ErrorKind = "bad_request"
	KindInvalidState ErrorKind = "invalid_state"
)

// Error typed failure returned by use cases and repositories
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewUnauthorizedError(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NewBadRequestError(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

func NewInvalidStateError(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message}
}

// KindOf extract the kind from an error chain, empty for untyped errors
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// ErrNoSuchUser failed to validate the credential
var ErrNoSuchUser = NewUnauthorizedError("No such user or password is incorrect")

// ErrDuplicatedUser unique key constraint violation
var ErrDuplicatedUser = NewConflictError("Username or email is already registered")

// ErrUserTooManyRetry login attempts exceeded the configured maximum
var ErrUserTooManyRetry = NewUnauthorizedError("Too many login attempts, retry later")
