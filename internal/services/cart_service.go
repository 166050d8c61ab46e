package services

import (
	"context"
	"fmt"
	"time"

	"eventhub/internal/status"
	"eventhub/models"
)

// CartService maintains the per-user cart and wishlist sequences. Both are
// positional lists of event snapshots taken at add time; the same event may
// appear any number of times. The cart is ephemeral (expires after cartTTL),
// the wishlist persists indefinitely.
type CartService struct {
	kv      KVStore
	cartTTL time.Duration
}

func NewCartService(kv KVStore, cartTTL time.Duration) *CartService {
	return &CartService{kv: kv, cartTTL: cartTTL}
}

func cartKey(userID string) string     { return fmt.Sprintf("cart:%s", userID) }
func wishlistKey(userID string) string { return fmt.Sprintf("wishlist:%s", userID) }

func (s *CartService) Cart(ctx context.Context, userID string) ([]models.Event, error) {
	return s.kv.GetItems(ctx, cartKey(userID))
}

func (s *CartService) Wishlist(ctx context.Context, userID string) ([]models.Event, error) {
	return s.kv.GetItems(ctx, wishlistKey(userID))
}

func (s *CartService) AddToCart(ctx context.Context, userID string, ev models.Event) ([]models.Event, error) {
	return s.add(ctx, cartKey(userID), ev, s.cartTTL)
}

func (s *CartService) AddToWishlist(ctx context.Context, userID string, ev models.Event) ([]models.Event, error) {
	return s.add(ctx, wishlistKey(userID), ev, 0)
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID string, index int) ([]models.Event, error) {
	return s.remove(ctx, cartKey(userID), index, s.cartTTL)
}

func (s *CartService) RemoveFromWishlist(ctx context.Context, userID string, index int) ([]models.Event, error) {
	return s.remove(ctx, wishlistKey(userID), index, 0)
}

// ClearCart drops the whole cart after a successful order batch.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	return s.kv.DeleteKey(ctx, cartKey(userID))
}

func (s *CartService) add(ctx context.Context, key string, ev models.Event, ttl time.Duration) ([]models.Event, error) {
	items, err := s.kv.GetItems(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", status.ErrBackendUnavailable, err)
	}
	items = append(items, ev)
	if err := s.kv.SetItems(ctx, key, items, ttl); err != nil {
		return nil, fmt.Errorf("%w: %v", status.ErrBackendUnavailable, err)
	}
	return items, nil
}

func (s *CartService) remove(ctx context.Context, key string, index int, ttl time.Duration) ([]models.Event, error) {
	items, err := s.kv.GetItems(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", status.ErrBackendUnavailable, err)
	}
	if index < 0 || index >= len(items) {
		return nil, fmt.Errorf("%w: item %d", status.ErrNotFound, index)
	}
	items = append(items[:index], items[index+1:]...)
	if err := s.kv.SetItems(ctx, key, items, ttl); err != nil {
		return nil, fmt.Errorf("%w: %v", status.ErrBackendUnavailable, err)
	}
	return items, nil
}

// BeginCheckout builds the checkout set: the explicit event when given,
// otherwise the whole current cart. Requires a signed-in identity; without
// one nothing is read or written.
func (s *CartService) BeginCheckout(ctx context.Context, identity models.Identity, ev *models.Event) (models.Checkout, error) {
	if !identity.Valid() {
		return models.Checkout{}, status.ErrAuthRequired
	}

	if ev != nil {
		return models.Checkout{Items: []models.Event{*ev}, Total: ev.Price}, nil
	}

	items, err := s.Cart(ctx, identity.ID)
	if err != nil {
		return models.Checkout{}, fmt.Errorf("%w: %v", status.ErrBackendUnavailable, err)
	}

	total := 0.0
	for _, item := range items {
		total += item.Price
	}
	return models.Checkout{Items: items, Total: total}, nil
}
