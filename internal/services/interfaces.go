package services

import (
	"context"
	"time"

	"eventhub/models"
)

// EventStore is the slice of the document store backing the catalog and
// the seller's event management.
type EventStore interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	ListEventsByOrganizer(ctx context.Context, organizerID string) ([]models.Event, error)
	InsertEvent(ctx context.Context, ev models.Event) (models.Event, error)
	GetEvent(ctx context.Context, id string) (models.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	DeleteEventsBatch(ctx context.Context, ids []string) error
}

// OrderStore is the slice of the document store backing the order lifecycle.
type OrderStore interface {
	InsertOrder(ctx context.Context, o models.Order) (models.Order, error)
	GetOrder(ctx context.Context, id string) (models.Order, error)
	SetOrderStatus(ctx context.Context, id, status string) error
	AttachTicket(ctx context.Context, id string, png []byte) error
	ListOrdersByBuyer(ctx context.Context, buyerID string) ([]models.Order, error)
	ListOrdersByOrganizer(ctx context.Context, organizerID string) ([]models.Order, error)
	DeleteOrder(ctx context.Context, id string) error
	DeleteOrdersBatch(ctx context.Context, ids []string) error
}

// KVStore holds ordered event snapshots (cart, wishlist) under plain keys.
type KVStore interface {
	GetItems(ctx context.Context, key string) ([]models.Event, error)
	SetItems(ctx context.Context, key string, items []models.Event, ttl time.Duration) error
	DeleteKey(ctx context.Context, key string) error
}

// Notifier pushes a fire-and-forget message to a realtime channel.
type Notifier interface {
	Publish(channel string, message map[string]any)
}
