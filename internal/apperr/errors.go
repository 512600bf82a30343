// Package apperr holds the error kinds shared by the fitness packages and their mapping to
// HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError is returned for input that can never succeed: a disallowed field in an
// update, a malformed date or timezone, a bad numeric parameter.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Message
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

func Validation(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError means an entity, a specific version of it, or its sync record is absent.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func NotFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// ComputationError is returned by metric functions that were given an input they cannot score,
// e.g. TRIMP for a run without heart rate.
type ComputationError struct {
	Message string
}

func (e *ComputationError) Error() string {
	return "computation: " + e.Message
}

func Computation(format string, args ...any) error {
	return &ComputationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError is returned when a concurrent writer won the race for an entity's next version.
// Callers may retry after reading the current state again.
type ConflictError struct {
	Message string
	Err     error
}

func (e *ConflictError) Error() string {
	if e.Err == nil {
		return "conflict: " + e.Message
	}
	return fmt.Sprintf("conflict: %s: %s", e.Message, e.Err)
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

func Conflict(err error, format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...), Err: err}
}

// ExternalServiceError wraps a failure of a third party API such as Google Calendar.
type ExternalServiceError struct {
	Service string
	Op      string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Service, e.Op, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

func External(service, op string, err error) error {
	return &ExternalServiceError{Service: service, Op: op, Err: err}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsComputation(err error) bool {
	var target *ComputationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

func IsExternal(err error) bool {
	var target *ExternalServiceError
	return errors.As(err, &target)
}

// HTTPStatus maps an error to the status code handlers answer with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidation(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	case IsComputation(err):
		return http.StatusUnprocessableEntity
	case IsConflict(err):
		return http.StatusConflict
	case IsExternal(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is what handlers show to clients: the error text for the typed kinds,
// a generic text for anything else.
func PublicMessage(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
