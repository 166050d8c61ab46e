package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"eventhub/internal/services"
	"eventhub/monitoring"
)

type CatalogHandler struct {
	app     *pocketbase.PocketBase
	catalog *services.CatalogService
	monitor *monitoring.Monitor
}

func NewCatalogHandler(app *pocketbase.PocketBase, catalog *services.CatalogService, monitor *monitoring.Monitor) *CatalogHandler {
	return &CatalogHandler{
		app:     app,
		catalog: catalog,
		monitor: monitor,
	}
}

// GetEvents - Load the catalog and apply search/category filtering.
// A backend failure still answers with the prior snapshot, flagged stale.
func (h *CatalogHandler) GetEvents(e *core.RequestEvent) error {
	ctx := e.Request.Context()
	term := e.Request.URL.Query().Get("search")
	category := e.Request.URL.Query().Get("category")

	events, categories, err := h.catalog.Load(ctx)
	stale := err != nil
	if stale {
		h.monitor.TrackCatalogLoad("error")
	} else {
		h.monitor.TrackCatalogLoad("ok")
	}

	return e.JSON(http.StatusOK, map[string]any{
		"events":     services.FilterEvents(events, term, category),
		"categories": categories,
		"stale":      stale,
	})
}
