package rest

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the uniform error envelope returned to the admin console.
// The message of a validation error aggregates all field violations.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// ErrEmptyUpdate is returned by the partial-update builder when the payload
// contains no recognized field. Callers treat it as "nothing to change",
// which is distinct from a record that vanished concurrently.
var ErrEmptyUpdate = errors.New("no recognized field in update payload")

func validationError(message string) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Message: message}
}

func notFoundError(singular string) *Error {
	return &Error{Status: http.StatusNotFound, Message: "This " + singular + " does not exist"}
}

func executionError(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message}
}

func internalError() *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "internal server error"}
}
