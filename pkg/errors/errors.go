package errors

import (
	"net/http"

	"github.com/tsel-ticketmaster/tm-scan/pkg/status"
)

// AppError carries the HTTP status code and machine-readable status
// alongside the human-readable message, so handlers can translate any
// error bubbling out of a use case without type switching.
type AppError struct {
	HTTPStatusCode int
	Status         string
	Message        string
}

func (e *AppError) Error() string {
	return e.Message
}

func New(httpStatusCode int, status string, message string) error {
	return &AppError{
		HTTPStatusCode: httpStatusCode,
		Status:         status,
		Message:        message,
	}
}

// Destruct normalizes an error into an AppError. Errors that are not
// AppError are treated as internal server errors.
func Destruct(err error) *AppError {
	if ae, ok := err.(*AppError); ok {
		return ae
	}

	return &AppError{
		HTTPStatusCode: http.StatusInternalServerError,
		Status:         status.INTERNAL_SERVER_ERROR,
		Message:        err.Error(),
	}
}
