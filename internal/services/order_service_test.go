package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"eventhub/internal/status"
	"eventhub/models"
)

func buyerFixture() (models.Identity, models.BuyerFields) {
	return models.Identity{ID: "u1", Email: "buyer@test.io"},
		models.BuyerFields{Name: "Alex", Email: "buyer@test.io", PaymentMethod: "creditCard"}
}

func checkoutFixture() models.Checkout {
	return models.Checkout{
		Items: []models.Event{
			{ID: "e1", Name: "Jazz Night", Price: 10, OrganizerID: "s1", OrganizerEmail: "s1@test.io"},
			{ID: "e2", Name: "Go Conference", Price: 20, OrganizerID: "s2", OrganizerEmail: "s2@test.io"},
		},
		Total: 30,
	}
}

func newOrderServiceWith(orders *mockOrderStore, kv *mockKVStore, notifier *mockNotifier) *OrderService {
	return NewOrderService(orders, NewCartService(kv, cartTTL), notifier)
}

func TestOrderService_Submit(t *testing.T) {
	orders := new(mockOrderStore)
	kv := new(mockKVStore)
	notifier := new(mockNotifier)

	identity, fields := buyerFixture()
	co := checkoutFixture()

	orders.On("InsertOrder", mock.Anything, mock.MatchedBy(func(o models.Order) bool {
		return o.BuyerID == "u1" && o.Status == models.OrderPending
	})).Return(models.Order{ID: "o1", OrganizerID: "s1", EventName: "Jazz Night"}, nil).Once()
	orders.On("InsertOrder", mock.Anything, mock.MatchedBy(func(o models.Order) bool {
		return o.BuyerID == "u1" && o.Status == models.OrderPending
	})).Return(models.Order{ID: "o2", OrganizerID: "s2", EventName: "Go Conference"}, nil).Once()
	kv.On("DeleteKey", mock.Anything, "cart:u1").Return(nil)
	notifier.On("Publish", mock.Anything, mock.Anything).Return()

	svc := newOrderServiceWith(orders, kv, notifier)
	created, err := svc.Submit(context.Background(), identity, fields, co)

	assert.NoError(t, err)
	assert.Len(t, created, 2)
	orders.AssertNumberOfCalls(t, "InsertOrder", 2)
	kv.AssertCalled(t, "DeleteKey", mock.Anything, "cart:u1")
	notifier.AssertNumberOfCalls(t, "Publish", 2)
}

func TestOrderService_Submit_RequiresIdentity(t *testing.T) {
	orders := new(mockOrderStore)
	kv := new(mockKVStore)
	notifier := new(mockNotifier)

	_, fields := buyerFixture()

	svc := newOrderServiceWith(orders, kv, notifier)
	_, err := svc.Submit(context.Background(), models.Identity{}, fields, checkoutFixture())

	assert.ErrorIs(t, err, status.ErrAuthRequired)
	orders.AssertNotCalled(t, "InsertOrder", mock.Anything, mock.Anything)
}

func TestOrderService_Submit_ValidatesBuyerFields(t *testing.T) {
	orders := new(mockOrderStore)
	kv := new(mockKVStore)
	notifier := new(mockNotifier)

	identity, _ := buyerFixture()

	tests := []struct {
		name   string
		fields models.BuyerFields
	}{
		{"missing name", models.BuyerFields{Email: "a@b.io", PaymentMethod: "creditCard"}},
		{"malformed email", models.BuyerFields{Name: "Alex", Email: "nope", PaymentMethod: "creditCard"}},
		{"unknown payment method", models.BuyerFields{Name: "Alex", Email: "a@b.io", PaymentMethod: "cash"}},
	}

	svc := newOrderServiceWith(orders, kv, notifier)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), identity, tt.fields, checkoutFixture())
			assert.ErrorIs(t, err, status.ErrValidation)
		})
	}
	orders.AssertNotCalled(t, "InsertOrder", mock.Anything, mock.Anything)
}

func TestOrderService_Submit_EmptyCheckout(t *testing.T) {
	orders := new(mockOrderStore)
	kv := new(mockKVStore)
	notifier := new(mockNotifier)

	identity, fields := buyerFixture()

	svc := newOrderServiceWith(orders, kv, notifier)
	_, err := svc.Submit(context.Background(), identity, fields, models.Checkout{})

	assert.ErrorIs(t, err, status.ErrValidation)
}

func TestOrderService_Submit_PartialFailureKeepsCart(t *testing.T) {
	orders := new(mockOrderStore)
	kv := new(mockKVStore)
	notifier := new(mockNotifier)

	identity, fields := buyerFixture()
	co := checkoutFixture()

	orders.On("InsertOrder", mock.Anything, mock.MatchedBy(func(o models.Order) bool {
		return o.EventID == "e1"
	})).Return(models.Order{ID: "o1"}, nil)
	orders.On("InsertOrder", mock.Anything, mock.MatchedBy(func(o models.Order) bool {
		return o.EventID == "e2"
	})).Return(models.Order{}, errors.New("insert failed"))

	svc := newOrderServiceWith(orders, kv, notifier)
	_, err := svc.Submit(context.Background(), identity, fields, co)

	assert.ErrorIs(t, err, status.ErrBackendUnavailable)
	kv.AssertNotCalled(t, "DeleteKey", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestOrderService_Accept(t *testing.T) {
	orders := new(mockOrderStore)
	kv := new(mockKVStore)
	notifier := new(mockNotifier)

	pending := models.Order{ID: "o1", EventPrice: 100, BuyerID: "u1", Status: models.OrderPending}
	orders.On("GetOrder", mock.Anything, "o1").Return(pending, nil)
	orders.On("SetOrderStatus", mock.Anything, "o1", models.OrderAccepted).Return(nil)
	orders.On("AttachTicket", mock.Anything, "o1", mock.Anything).Return(nil)
	notifier.On("Publish", "user-u1", mock.MatchedBy(func(msg map[string]any) bool {
		return msg["status"] == models.OrderAccepted
	})).Return()

	svc := newOrderServiceWith(orders, kv, notifier)
	order, err := svc.Accept(context.Background(), "o1")

	assert.NoError(t, err)
	assert.Equal(t, models.OrderAccepted, order.Status)
	assert.True(t, svc.OptimisticEarnings().Equal(decimal.NewFromInt(80)))
	orders.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestOrderService_Accept_AlreadyProcessed(t *testing.T) {
	orders := new(mockOrderStore)
	kv := new(mockKVStore)
	notifier := new(mockNotifier)

	accepted := models.Order{ID: "o1", Status: models.OrderAccepted}
	orders.On("GetOrder", mock.Anything, "o1").Return(accepted, nil)

	svc := newOrderServiceWith(orders, kv, notifier)
	_, err := svc.Accept(context.Background(), "o1")

	assert.ErrorIs(t, err, status.ErrConflict)
	orders.AssertNotCalled(t, "SetOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	assert.True(t, svc.OptimisticEarnings().IsZero())
}

func TestOrderService_Accept_NotFound(t *testing.T) {
	orders := new(mockOrderStore)
	kv := new(mockKVStore)
	notifier := new(mockNotifier)

	orders.On("GetOrder", mock.Anything, "missing").Return(models.Order{}, errors.New("no rows"))

	svc := newOrderServiceWith(orders, kv, notifier)
	_, err := svc.Accept(context.Background(), "missing")

	assert.ErrorIs(t, err, status.ErrNotFound)
}

func TestOrderService_Reject(t *testing.T) {
	orders := new(mockOrderStore)
	kv := new(mockKVStore)
	notifier := new(mockNotifier)

	pending := models.Order{ID: "o1", EventPrice: 100, BuyerID: "u1", Status: models.OrderPending}
	orders.On("GetOrder", mock.Anything, "o1").Return(pending, nil)
	orders.On("SetOrderStatus", mock.Anything, "o1", models.OrderRejected).Return(nil)
	notifier.On("Publish", "user-u1", mock.Anything).Return()

	svc := newOrderServiceWith(orders, kv, notifier)
	order, err := svc.Reject(context.Background(), "o1")

	assert.NoError(t, err)
	assert.Equal(t, models.OrderRejected, order.Status)
	// Rejection never moves the earnings figure.
	assert.True(t, svc.OptimisticEarnings().IsZero())
	orders.AssertNotCalled(t, "AttachTicket", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_Reject_EmptyStatusTreatedAsPending(t *testing.T) {
	orders := new(mockOrderStore)
	kv := new(mockKVStore)
	notifier := new(mockNotifier)

	legacy := models.Order{ID: "o1", BuyerID: "u1"}
	orders.On("GetOrder", mock.Anything, "o1").Return(legacy, nil)
	orders.On("SetOrderStatus", mock.Anything, "o1", models.OrderRejected).Return(nil)
	notifier.On("Publish", "user-u1", mock.Anything).Return()

	svc := newOrderServiceWith(orders, kv, notifier)
	_, err := svc.Reject(context.Background(), "o1")

	assert.NoError(t, err)
}

func TestOrderService_Cancel(t *testing.T) {
	orders := new(mockOrderStore)
	kv := new(mockKVStore)
	notifier := new(mockNotifier)

	orders.On("DeleteOrder", mock.Anything, "o1").Return(nil)

	svc := newOrderServiceWith(orders, kv, notifier)

	assert.NoError(t, svc.Cancel(context.Background(), "o1"))
	notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestOrderService_BulkDelete(t *testing.T) {
	orders := new(mockOrderStore)
	kv := new(mockKVStore)
	notifier := new(mockNotifier)

	orders.On("DeleteOrdersBatch", mock.Anything, []string{"o1", "o2"}).Return(nil)

	svc := newOrderServiceWith(orders, kv, notifier)

	assert.NoError(t, svc.BulkDelete(context.Background(), []string{"o1", "o2"}))
	orders.AssertExpectations(t)
}

func TestOrderService_Earnings_ResetsOptimistic(t *testing.T) {
	orders := new(mockOrderStore)
	kv := new(mockKVStore)
	notifier := new(mockNotifier)

	set := []models.Order{
		{EventPrice: 100, Status: models.OrderAccepted},
		{EventPrice: 50, Status: models.OrderPending},
		{EventPrice: 200, Status: models.OrderAccepted},
	}
	orders.On("ListOrdersByOrganizer", mock.Anything, "s1").Return(set, nil)

	pending := models.Order{ID: "o9", EventPrice: 999, BuyerID: "u1", Status: models.OrderPending}
	orders.On("GetOrder", mock.Anything, "o9").Return(pending, nil)
	orders.On("SetOrderStatus", mock.Anything, "o9", models.OrderAccepted).Return(nil)
	orders.On("AttachTicket", mock.Anything, "o9", mock.Anything).Return(nil)
	notifier.On("Publish", mock.Anything, mock.Anything).Return()

	svc := newOrderServiceWith(orders, kv, notifier)

	// Accept bumps the local figure ahead of the authoritative set.
	_, err := svc.Accept(context.Background(), "o9")
	assert.NoError(t, err)
	assert.False(t, svc.OptimisticEarnings().Equal(decimal.NewFromInt(240)))

	earnings, breakdown, err := svc.Earnings(context.Background(), "s1")

	assert.NoError(t, err)
	assert.True(t, earnings.Equal(decimal.NewFromInt(240)), "got %s", earnings)
	assert.True(t, breakdown.Net.Equal(decimal.NewFromInt(168)))
	assert.True(t, svc.OptimisticEarnings().Equal(decimal.NewFromInt(240)))
}
