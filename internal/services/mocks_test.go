package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"eventhub/models"
)

type mockEventStore struct {
	mock.Mock
}

func (m *mockEventStore) ListEvents(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *mockEventStore) ListEventsByOrganizer(ctx context.Context, organizerID string) ([]models.Event, error) {
	args := m.Called(ctx, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *mockEventStore) InsertEvent(ctx context.Context, ev models.Event) (models.Event, error) {
	args := m.Called(ctx, ev)
	return args.Get(0).(models.Event), args.Error(1)
}

func (m *mockEventStore) GetEvent(ctx context.Context, id string) (models.Event, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Event), args.Error(1)
}

func (m *mockEventStore) DeleteEvent(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockEventStore) DeleteEventsBatch(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

type mockOrderStore struct {
	mock.Mock
}

func (m *mockOrderStore) InsertOrder(ctx context.Context, o models.Order) (models.Order, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(models.Order), args.Error(1)
}

func (m *mockOrderStore) GetOrder(ctx context.Context, id string) (models.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Order), args.Error(1)
}

func (m *mockOrderStore) SetOrderStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockOrderStore) AttachTicket(ctx context.Context, id string, png []byte) error {
	args := m.Called(ctx, id, png)
	return args.Error(0)
}

func (m *mockOrderStore) ListOrdersByBuyer(ctx context.Context, buyerID string) ([]models.Order, error) {
	args := m.Called(ctx, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *mockOrderStore) ListOrdersByOrganizer(ctx context.Context, organizerID string) ([]models.Order, error) {
	args := m.Called(ctx, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *mockOrderStore) DeleteOrder(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOrderStore) DeleteOrdersBatch(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

type mockKVStore struct {
	mock.Mock
}

func (m *mockKVStore) GetItems(ctx context.Context, key string) ([]models.Event, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *mockKVStore) SetItems(ctx context.Context, key string, items []models.Event, ttl time.Duration) error {
	args := m.Called(ctx, key, items, ttl)
	return args.Error(0)
}

func (m *mockKVStore) DeleteKey(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Publish(channel string, message map[string]any) {
	m.Called(channel, message)
}
