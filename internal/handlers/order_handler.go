package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"eventhub/internal/services"
	"eventhub/models"
	"eventhub/monitoring"
)

type OrderHandler struct {
	app     *pocketbase.PocketBase
	orders  *services.OrderService
	export  *services.ExportService
	monitor *monitoring.Monitor
}

func NewOrderHandler(app *pocketbase.PocketBase, orders *services.OrderService, export *services.ExportService, monitor *monitoring.Monitor) *OrderHandler {
	return &OrderHandler{
		app:     app,
		orders:  orders,
		export:  export,
		monitor: monitor,
	}
}

// SubmitOrder - Create one order per checkout line item.
func (h *OrderHandler) SubmitOrder(e *core.RequestEvent) error {
	var req struct {
		Fields   models.BuyerFields `json:"fields"`
		Checkout models.Checkout    `json:"checkout"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	created, err := h.orders.Submit(e.Request.Context(), identity(e), req.Fields, req.Checkout)
	if err != nil {
		h.monitor.TrackOrderOperation("submit", "error")
		return apiError(err)
	}
	h.monitor.TrackOrderOperation("submit", "ok")

	return e.JSON(http.StatusOK, map[string]any{
		"message": "Your tickets have been purchased successfully.",
		"orders":  created,
	})
}

// GetBuyerOrders - The signed-in buyer's tickets.
func (h *OrderHandler) GetBuyerOrders(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("You must be logged in.", nil)
	}
	orders, err := h.orders.BuyerOrders(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"orders": orders})
}

// GetOrganizerOrders - Orders against the signed-in organizer's events.
func (h *OrderHandler) GetOrganizerOrders(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("You must be logged in.", nil)
	}
	orders, err := h.orders.OrganizerOrders(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"orders": orders})
}

func (h *OrderHandler) AcceptOrder(e *core.RequestEvent) error {
	return h.transition(e, "accept", h.orders.Accept)
}

func (h *OrderHandler) RejectOrder(e *core.RequestEvent) error {
	return h.transition(e, "reject", h.orders.Reject)
}

// CancelOrder - Buyer-initiated unconditional delete.
func (h *OrderHandler) CancelOrder(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("You must be logged in.", nil)
	}

	if err := h.orders.Cancel(e.Request.Context(), e.Request.PathValue("id")); err != nil {
		h.monitor.TrackOrderOperation("cancel", "error")
		return apiError(err)
	}
	h.monitor.TrackOrderOperation("cancel", "ok")
	return e.JSON(http.StatusOK, map[string]any{"message": "Your ticket purchase has been canceled successfully."})
}

// BulkDeleteOrders - All-or-nothing batch removal.
func (h *OrderHandler) BulkDeleteOrders(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("You must be logged in.", nil)
	}

	var req struct {
		IDs []string `json:"ids"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := h.orders.BulkDelete(e.Request.Context(), req.IDs); err != nil {
		h.monitor.TrackOrderOperation("bulk_delete", "error")
		return apiError(err)
	}
	h.monitor.TrackOrderOperation("bulk_delete", "ok")
	return e.JSON(http.StatusOK, map[string]any{"message": "All orders deleted successfully!"})
}

// GetEarnings - Recompute earnings from the authoritative order set.
func (h *OrderHandler) GetEarnings(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("You must be logged in.", nil)
	}

	earnings, breakdown, err := h.orders.Earnings(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{
		"earnings":  earnings,
		"breakdown": breakdown,
	})
}

// ExportEarnings - Download the earnings overview as a PDF.
func (h *OrderHandler) ExportEarnings(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("You must be logged in.", nil)
	}

	_, breakdown, err := h.orders.Earnings(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return apiError(err)
	}

	pdf := h.export.EarningsReport(breakdown)
	e.Response.Header().Set("Content-Type", "application/pdf")
	e.Response.Header().Set("Content-Disposition", `attachment; filename="earnings.pdf"`)
	e.Response.WriteHeader(http.StatusOK)
	_, err = e.Response.Write(pdf)
	return err
}

// GetOrderStats - Per-status order counts for the organizer dashboard,
// read with a direct SQL query.
func (h *OrderHandler) GetOrderStats(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("You must be logged in.", nil)
	}

	type statusCount struct {
		Status string `db:"status" json:"status"`
		Count  int    `db:"count" json:"count"`
	}

	counts := []statusCount{}
	err := h.app.DB().
		Select("status", "COUNT(*) as count").
		From("orders").
		Where(dbx.HashExp{"organizer": e.Auth.Id}).
		GroupBy("status").
		All(&counts)
	if err != nil {
		return apis.NewBadRequestError("Failed to fetch order stats", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"counts":       counts,
		"generated_at": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *OrderHandler) transition(e *core.RequestEvent, op string, fn func(ctx context.Context, id string) (models.Order, error)) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("You must be logged in.", nil)
	}

	order, err := fn(e.Request.Context(), e.Request.PathValue("id"))
	if err != nil {
		h.monitor.TrackOrderOperation(op, "error")
		return apiError(err)
	}
	h.monitor.TrackOrderOperation(op, "ok")

	return e.JSON(http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Order %sed successfully!", op),
		"order":   order,
	})
}
