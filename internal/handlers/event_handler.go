package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"eventhub/internal/services"
)

type EventHandler struct {
	app    *pocketbase.PocketBase
	events *services.EventService
}

func NewEventHandler(app *pocketbase.PocketBase, events *services.EventService) *EventHandler {
	return &EventHandler{app: app, events: events}
}

// CreateEvent - Validate and publish a new listing owned by the caller.
func (h *EventHandler) CreateEvent(e *core.RequestEvent) error {
	var input services.CreateEventInput
	if err := e.BindBody(&input); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	created, err := h.events.Create(e.Request.Context(), identity(e), input)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"message": "Event added successfully!",
		"event":   created,
	})
}

// GetListings - The organizer's own events.
func (h *EventHandler) GetListings(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("You must be logged in.", nil)
	}

	events, err := h.events.Listings(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"events": events})
}

// DeleteEvent - Irreversible single delete; the client supplies the
// confirming gesture.
func (h *EventHandler) DeleteEvent(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("You must be logged in.", nil)
	}

	if err := h.events.Delete(e.Request.Context(), e.Request.PathValue("id")); err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"message": "Event deleted successfully!"})
}

// BulkDeleteEvents - Remove every listing owned by the caller in one batch.
func (h *EventHandler) BulkDeleteEvents(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("You must be logged in.", nil)
	}

	if err := h.events.BulkDelete(e.Request.Context(), e.Auth.Id); err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"message": "All events deleted successfully!"})
}
