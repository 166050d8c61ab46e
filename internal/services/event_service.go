package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"eventhub/internal/status"
	"eventhub/models"
)

// CreateEventInput carries the seller's form fields. Validation runs
// before any store call; the image stays a plain URI.
type CreateEventInput struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Date        string  `json:"date" validate:"required"`
	Location    string  `json:"location" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Image       string  `json:"image" validate:"omitempty,url"`
	Capacity    int     `json:"capacity" validate:"required,gt=0"`
}

// EventService is the seller-side catalog manager.
type EventService struct {
	events   EventStore
	validate *validator.Validate
}

func NewEventService(events EventStore) *EventService {
	return &EventService{events: events, validate: validator.New()}
}

// Create validates the listing and stamps the creating identity as owner.
func (s *EventService) Create(ctx context.Context, organizer models.Identity, input CreateEventInput) (models.Event, error) {
	if !organizer.Valid() {
		return models.Event{}, status.ErrAuthRequired
	}
	if err := s.validate.Struct(input); err != nil {
		return models.Event{}, fmt.Errorf("%w: %v", status.ErrValidation, err)
	}

	ev := models.Event{
		Name:           input.Name,
		Category:       input.Category,
		Price:          input.Price,
		Date:           input.Date,
		Location:       input.Location,
		Description:    input.Description,
		Image:          input.Image,
		Capacity:       input.Capacity,
		OrganizerID:    organizer.ID,
		OrganizerEmail: organizer.Email,
	}

	created, err := s.events.InsertEvent(ctx, ev)
	if err != nil {
		return models.Event{}, fmt.Errorf("%w: %v", status.ErrBackendUnavailable, err)
	}
	return created, nil
}

func (s *EventService) Listings(ctx context.Context, organizerID string) ([]models.Event, error) {
	events, err := s.events.ListEventsByOrganizer(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", status.ErrBackendUnavailable, err)
	}
	return events, nil
}

// Delete removes a single listing. Irreversible; the confirming gesture
// lives in the client.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.events.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("%w: event %s", status.ErrNotFound, id)
	}
	return nil
}

// BulkDelete removes every listing owned by the organizer as one
// all-or-nothing batch.
func (s *EventService) BulkDelete(ctx context.Context, organizerID string) error {
	events, err := s.Listings(ctx, organizerID)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	ids := make([]string, len(events))
	for i, ev := range events {
		ids[i] = ev.ID
	}
	if err := s.events.DeleteEventsBatch(ctx, ids); err != nil {
		return fmt.Errorf("%w: %v", status.ErrBackendUnavailable, err)
	}
	return nil
}
