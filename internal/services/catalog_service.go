package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"eventhub/internal/status"
	"eventhub/models"
)

// CatalogService loads the published event catalog and keeps the last
// successful fetch around: a failed refresh reports the error but leaves
// the prior catalog available.
type CatalogService struct {
	events EventStore

	mu         sync.RWMutex
	cached     []models.Event
	categories []string
}

func NewCatalogService(events EventStore) *CatalogService {
	return &CatalogService{events: events}
}

// Load fetches the full catalog and re-derives the category list. On a
// backend failure it returns the previous snapshot together with the error
// so callers can render stale-but-available data.
func (s *CatalogService) Load(ctx context.Context) ([]models.Event, []string, error) {
	events, err := s.events.ListEvents(ctx)
	if err != nil {
		slog.Error("catalog load failed, serving prior snapshot", "error", err)
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.cached, s.categories, fmt.Errorf("%w: %v", status.ErrBackendUnavailable, err)
	}

	categories := Categories(events)

	s.mu.Lock()
	s.cached = events
	s.categories = categories
	s.mu.Unlock()

	return events, categories, nil
}

// Categories returns the distinct category values in order of first
// occurrence.
func Categories(events []models.Event) []string {
	seen := make(map[string]bool, len(events))
	categories := []string{}
	for _, ev := range events {
		if ev.Category == "" || seen[ev.Category] {
			continue
		}
		seen[ev.Category] = true
		categories = append(categories, ev.Category)
	}
	return categories
}

// FilterEvents narrows the catalog to events whose name contains term
// case-insensitively and whose category matches exactly (empty category
// matches everything). It preserves catalog order and never mutates its
// input.
func FilterEvents(events []models.Event, term, category string) []models.Event {
	term = strings.ToLower(term)

	filtered := []models.Event{}
	for _, ev := range events {
		if !strings.Contains(strings.ToLower(ev.Name), term) {
			continue
		}
		if category != "" && ev.Category != category {
			continue
		}
		filtered = append(filtered, ev)
	}
	return filtered
}
