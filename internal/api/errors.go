package api

import (
	"net/http"

	"github.com/campus-housing-api/internal/service"
	"github.com/campus-housing-api/pkg/jwt"
	"github.com/pkg/errors"
)

const internalServerError = "Internal Server Error"

// apiError is an error converted for the response boundary.
// Operational errors are expected failures whose message is safe to show.
type apiError struct {
	status      int
	message     string
	operational bool
	cause       error
}

func (e *apiError) Error() string { return e.message }

func (e *apiError) Unwrap() error { return e.cause }

// newAPIError builds an operational error raised directly by a handler
func newAPIError(status int, message string) *apiError {
	return &apiError{
		status:      status,
		message:     message,
		operational: true,
		cause:       errors.New(message),
	}
}

// convertError maps service errors onto HTTP statuses
func convertError(err error) *apiError {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae
	}

	status := 0
	message := ""
	switch {
	case errors.Is(err, service.ErrDocumentFormat),
		errors.Is(err, service.ErrInvalidSkip),
		errors.Is(err, service.ErrInvalidTableName),
		errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrSourceNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateUser):
		status, message = http.StatusConflict, service.ErrDuplicateUser.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, service.ErrInvalidCredentials.Error()
	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, jwt.ErrTokenInvalid),
		errors.Is(err, jwt.ErrTokenExpired):
		status = http.StatusUnauthorized
	}

	if status != 0 {
		if message == "" {
			message = err.Error()
		}
		return &apiError{status: status, message: message, operational: true, cause: err}
	}

	var qe *service.QueryError
	if errors.As(err, &qe) {
		return &apiError{status: http.StatusInternalServerError, message: qe.Error(), cause: err}
	}

	return &apiError{status: http.StatusInternalServerError, message: err.Error(), cause: err}
}
