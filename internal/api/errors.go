package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
)

// Client-facing messages
const (
	msgInvalidID      = "Invalid id"
	msgTaskNotFound   = "Task not found"
	msgInvalidRequest = "Invalid request format"
	msgBodyTooLarge   = "Request body too large"
	msgInvalidEntity  = "Invalid entity data"
	msgInternal       = "Internal Server Error"
	msgNotFound       = "Not Found"
	msgMethodNotAllow = "Method Not Allowed"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Validation errors, including malformed ids
	case domain.IsValidationError(err),
		errors.Is(err, shared.ErrMalformedJSON),
		errors.Is(err, shared.ErrNotJSONObject),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, shared.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge

	// Not found errors
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing error message
// based on the error type. Validation messages are written for clients and
// are passed through; anything unrecognized becomes a generic message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgInternal
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message

	case errors.Is(err, shared.ErrMalformedJSON):
		return msgInvalidRequest

	case errors.Is(err, shared.ErrNotJSONObject):
		return shared.ErrNotJSONObject.Error()

	case errors.Is(err, shared.ErrBodyTooLarge):
		return msgBodyTooLarge

	case errors.Is(err, store.ErrInvalidEntity):
		return msgInvalidEntity

	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return msgTaskNotFound

	default:
		return msgInternal
	}
}
