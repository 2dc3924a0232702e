package service

import (
	"errors"
	"net/http"
)

// Sentinel errors for use with errors.Is
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)

type (
	// ValidationError indicates missing or malformed input.
	ValidationError struct {
		Message string
		Err     error
	}

	// NotFoundError indicates a referenced entity does not exist.
	NotFoundError struct {
		Message string
	}

	// ForbiddenError indicates the acting user may not change the resource.
	ForbiddenError struct {
		Message string
	}
)

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}
func (e *NotFoundError) Error() string  { return e.Message }
func (e *ForbiddenError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ForbiddenError) Is(target error) bool  { return target == ErrForbidden }

func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }
func (e *NotFoundError) StatusCode() int   { return http.StatusNotFound }
func (e *ForbiddenError) StatusCode() int  { return http.StatusForbidden }

// StatusCode maps an error returned by a service to an HTTP status. Errors outside
// the taxonomy are unexpected failures.
func StatusCode(err error) int {
	var se interface{ StatusCode() int }
	if errors.As(err, &se) {
		return se.StatusCode()
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the message of a taxonomy error, or fallback for
// unexpected failures.
func PublicMessage(err error, fallback string) string {
	var (
		ve *ValidationError
		ne *NotFoundError
		fe *ForbiddenError
	)
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.As(err, &ne):
		return ne.Message
	case errors.As(err, &fe):
		return fe.Message
	default:
		return fallback
	}
}
