package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"eventhub/internal/services"
	"eventhub/models"
)

type CartHandler struct {
	app  *pocketbase.PocketBase
	cart *services.CartService
}

func NewCartHandler(app *pocketbase.PocketBase, cart *services.CartService) *CartHandler {
	return &CartHandler{app: app, cart: cart}
}

func (h *CartHandler) GetCart(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("You must be logged in.", nil)
	}
	items, err := h.cart.Cart(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"items": items})
}

func (h *CartHandler) AddToCart(e *core.RequestEvent) error {
	return h.add(e, h.cart.AddToCart)
}

func (h *CartHandler) RemoveFromCart(e *core.RequestEvent) error {
	return h.remove(e, h.cart.RemoveFromCart)
}

func (h *CartHandler) GetWishlist(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("You must be logged in.", nil)
	}
	items, err := h.cart.Wishlist(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"items": items})
}

func (h *CartHandler) AddToWishlist(e *core.RequestEvent) error {
	return h.add(e, h.cart.AddToWishlist)
}

func (h *CartHandler) RemoveFromWishlist(e *core.RequestEvent) error {
	return h.remove(e, h.cart.RemoveFromWishlist)
}

// BeginCheckout - Build the checkout set: the posted event, or the whole
// cart when the body carries none.
func (h *CartHandler) BeginCheckout(e *core.RequestEvent) error {
	var req struct {
		Event *models.Event `json:"event"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	checkout, err := h.cart.BeginCheckout(e.Request.Context(), identity(e), req.Event)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, checkout)
}

func (h *CartHandler) add(e *core.RequestEvent, op func(ctx context.Context, userID string, ev models.Event) ([]models.Event, error)) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("You must be logged in.", nil)
	}

	var ev models.Event
	if err := e.BindBody(&ev); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	items, err := op(e.Request.Context(), e.Auth.Id, ev)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"items": items})
}

func (h *CartHandler) remove(e *core.RequestEvent, op func(ctx context.Context, userID string, index int) ([]models.Event, error)) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("You must be logged in.", nil)
	}

	index, err := strconv.Atoi(e.Request.PathValue("index"))
	if err != nil {
		return apis.NewBadRequestError("Invalid item index", err)
	}

	items, err := op(e.Request.Context(), e.Auth.Id, index)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"items": items})
}
