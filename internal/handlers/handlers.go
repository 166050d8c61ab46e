package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"eventhub/internal/status"
	"eventhub/models"
)

// identity extracts the signed-in user from the request, or a zero
// Identity when the request is anonymous.
func identity(e *core.RequestEvent) models.Identity {
	if e.Auth == nil {
		return models.Identity{}
	}
	return models.Identity{
		ID:    e.Auth.Id,
		Email: e.Auth.GetString("email"),
	}
}

// apiError converts a service failure into the user-visible notification
// shape. Every failure surfaces as a notice; none terminates the app.
func apiError(err error) error {
	switch {
	case errors.Is(err, status.ErrAuthRequired):
		return apis.NewUnauthorizedError("You must be logged in.", err)
	case errors.Is(err, status.ErrConflict):
		return apis.NewApiError(http.StatusConflict, "Order has already been processed.", err)
	case errors.Is(err, status.ErrNotFound):
		return apis.NewNotFoundError("Record not found.", err)
	case errors.Is(err, status.ErrValidation):
		return apis.NewBadRequestError("Invalid input.", err)
	default:
		return apis.NewApiError(http.StatusServiceUnavailable, "Service temporarily unavailable.", err)
	}
}
