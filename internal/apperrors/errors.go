// Package apperrors defines the error kinds returned by the NLP service and
// their HTTP status mapping.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the HTTP boundary.
type Kind string

const (
	KindValidation    Kind = "VALIDATION_ERROR"
	KindInputTooLarge Kind = "INPUT_TOO_LARGE"
	KindModelFailure  Kind = "MODEL_FAILURE"
	KindHTTP          Kind = "HTTP_ERROR"
	KindInternal      Kind = "INTERNAL_ERROR"
)

// Error is a classified application error. Message is the user-facing
// prefix, Err the underlying cause whose text is appended to it.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Message
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation wraps a request decoding or schema error.
func Validation(err error) *Error {
	return &Error{Kind: KindValidation, Message: "Invalid request body", Err: err}
}

// InputTooLarge wraps a body-size violation.
func InputTooLarge(err error) *Error {
	return &Error{Kind: KindInputTooLarge, Message: "Request body too large", Err: err}
}

// ModelFailure wraps any tokenizer, generator or classifier failure. task is
// the user-facing operation name, e.g. "summarization".
func ModelFailure(task string, err error) *Error {
	return &Error{Kind: KindModelFailure, Message: "Error in " + task, Err: err}
}

// HTTP is an expected framework-level error whose status is preserved.
func HTTP(status int, detail string) *Error {
	return &Error{Kind: KindHTTP, Message: "HTTP error occurred", Status: status, Err: errors.New(detail)}
}

// Internal wraps an unclassified failure.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "An unexpected error occurred", Err: err}
}

// From returns err as an *Error, classifying unknown errors as internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	if appErr := From(err); appErr != nil {
		return appErr.Kind
	}
	return ""
}

// HTTPStatus maps err onto a response status code.
func HTTPStatus(err error) int {
	appErr := From(err)
	if appErr == nil {
		return http.StatusOK
	}

	switch appErr.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindInputTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindHTTP:
		if appErr.Status != 0 {
			return appErr.Status
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
