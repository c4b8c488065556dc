package model

import (
	"fmt"

	"github.com/pkg/errors"
)

// NotFoundError is an error signaling that something was not found in the
// database
type NotFoundError string

// Error implements the error interface
func (e NotFoundError) Error() string {
	return string(e)
}

// NotFoundErrorFmt returns a NotFoundError from the passed format string and parameters
func NotFoundErrorFmt(format string, params ...any) NotFoundError {
	return NotFoundError(fmt.Sprintf(format, params...))
}

// AlreadyExistsError is an error signaling that a record with the same unique
// key is already stored
type AlreadyExistsError string

// Error implements the error interface
func (e AlreadyExistsError) Error() string {
	return string(e)
}

// AlreadyExistsErrorFmt returns an AlreadyExistsError from the passed format string and parameters
func AlreadyExistsErrorFmt(format string, params ...any) AlreadyExistsError {
	return AlreadyExistsError(fmt.Sprintf(format, params...))
}

// ValidationError is returned when a record is rejected before it is written.
// Its message is safe to show to clients.
type ValidationError string

// Error implements the error interface
func (e ValidationError) Error() string {
	return string(e)
}

// ErrInvalidCredentials is returned by UsersStore.Authenticate when the
// password does not match the stored hash
var ErrInvalidCredentials = errors.New("invalid credentials")
