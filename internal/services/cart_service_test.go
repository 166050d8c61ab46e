package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"eventhub/internal/status"
	"eventhub/models"
)

const cartTTL = 72 * time.Hour

func TestCartService_AddToCart(t *testing.T) {
	kv := new(mockKVStore)
	ev := models.Event{ID: "e1", Name: "Jazz Night", Price: 25}

	kv.On("GetItems", mock.Anything, "cart:u1").Return([]models.Event{}, nil)
	kv.On("SetItems", mock.Anything, "cart:u1", []models.Event{ev}, cartTTL).Return(nil)

	svc := NewCartService(kv, cartTTL)
	items, err := svc.AddToCart(context.Background(), "u1", ev)

	assert.NoError(t, err)
	assert.Equal(t, []models.Event{ev}, items)
	kv.AssertExpectations(t)
}

func TestCartService_AddToCart_AllowsDuplicates(t *testing.T) {
	kv := new(mockKVStore)
	ev := models.Event{ID: "e1", Name: "Jazz Night", Price: 25}

	kv.On("GetItems", mock.Anything, "cart:u1").Return([]models.Event{ev}, nil)
	kv.On("SetItems", mock.Anything, "cart:u1", []models.Event{ev, ev}, cartTTL).Return(nil)

	svc := NewCartService(kv, cartTTL)
	items, err := svc.AddToCart(context.Background(), "u1", ev)

	assert.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCartService_AddToWishlist_NoExpiry(t *testing.T) {
	kv := new(mockKVStore)
	ev := models.Event{ID: "e1", Name: "Jazz Night"}

	kv.On("GetItems", mock.Anything, "wishlist:u1").Return([]models.Event{}, nil)
	kv.On("SetItems", mock.Anything, "wishlist:u1", []models.Event{ev}, time.Duration(0)).Return(nil)

	svc := NewCartService(kv, cartTTL)
	_, err := svc.AddToWishlist(context.Background(), "u1", ev)

	assert.NoError(t, err)
	kv.AssertExpectations(t)
}

func TestCartService_RemoveFromCart(t *testing.T) {
	kv := new(mockKVStore)
	a := models.Event{ID: "e1", Name: "Jazz Night"}
	b := models.Event{ID: "e2", Name: "Go Conference"}

	kv.On("GetItems", mock.Anything, "cart:u1").Return([]models.Event{a, b}, nil)
	kv.On("SetItems", mock.Anything, "cart:u1", []models.Event{b}, cartTTL).Return(nil)

	svc := NewCartService(kv, cartTTL)
	items, err := svc.RemoveFromCart(context.Background(), "u1", 0)

	assert.NoError(t, err)
	assert.Equal(t, []models.Event{b}, items)
}

func TestCartService_AddThenRemoveRestoresPriorCart(t *testing.T) {
	kv := new(mockKVStore)
	prior := []models.Event{{ID: "e1", Name: "Jazz Night"}}
	added := models.Event{ID: "e2", Name: "Go Conference"}

	kv.On("GetItems", mock.Anything, "cart:u1").Return(prior, nil).Once()
	kv.On("SetItems", mock.Anything, "cart:u1", []models.Event{prior[0], added}, cartTTL).Return(nil).Once()
	kv.On("GetItems", mock.Anything, "cart:u1").Return([]models.Event{prior[0], added}, nil).Once()
	kv.On("SetItems", mock.Anything, "cart:u1", prior, cartTTL).Return(nil).Once()

	svc := NewCartService(kv, cartTTL)

	afterAdd, err := svc.AddToCart(context.Background(), "u1", added)
	assert.NoError(t, err)

	afterRemove, err := svc.RemoveFromCart(context.Background(), "u1", len(afterAdd)-1)
	assert.NoError(t, err)
	assert.Equal(t, prior, afterRemove)
	kv.AssertExpectations(t)
}

func TestCartService_RemoveFromCart_IndexOutOfRange(t *testing.T) {
	kv := new(mockKVStore)
	kv.On("GetItems", mock.Anything, "cart:u1").Return([]models.Event{{ID: "e1"}}, nil)

	svc := NewCartService(kv, cartTTL)

	_, err := svc.RemoveFromCart(context.Background(), "u1", 1)
	assert.ErrorIs(t, err, status.ErrNotFound)

	_, err = svc.RemoveFromCart(context.Background(), "u1", -1)
	assert.ErrorIs(t, err, status.ErrNotFound)

	kv.AssertNotCalled(t, "SetItems", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartService_StoreFailureWraps(t *testing.T) {
	kv := new(mockKVStore)
	kv.On("GetItems", mock.Anything, "cart:u1").Return(nil, errors.New("connection refused"))

	svc := NewCartService(kv, cartTTL)
	_, err := svc.AddToCart(context.Background(), "u1", models.Event{ID: "e1"})

	assert.ErrorIs(t, err, status.ErrBackendUnavailable)
}

func TestCartService_ClearCart(t *testing.T) {
	kv := new(mockKVStore)
	kv.On("DeleteKey", mock.Anything, "cart:u1").Return(nil)

	svc := NewCartService(kv, cartTTL)

	assert.NoError(t, svc.ClearCart(context.Background(), "u1"))
	kv.AssertExpectations(t)
}

func TestCartService_BeginCheckout_WholeCart(t *testing.T) {
	kv := new(mockKVStore)
	items := []models.Event{
		{ID: "e1", Price: 10},
		{ID: "e2", Price: 20},
	}
	kv.On("GetItems", mock.Anything, "cart:u1").Return(items, nil)

	svc := NewCartService(kv, cartTTL)
	co, err := svc.BeginCheckout(context.Background(), models.Identity{ID: "u1", Email: "u1@test.io"}, nil)

	assert.NoError(t, err)
	assert.Equal(t, items, co.Items)
	assert.Equal(t, 30.0, co.Total)
}

func TestCartService_BeginCheckout_SingleEvent(t *testing.T) {
	kv := new(mockKVStore)
	ev := models.Event{ID: "e1", Price: 25}

	svc := NewCartService(kv, cartTTL)
	co, err := svc.BeginCheckout(context.Background(), models.Identity{ID: "u1", Email: "u1@test.io"}, &ev)

	assert.NoError(t, err)
	assert.Equal(t, []models.Event{ev}, co.Items)
	assert.Equal(t, 25.0, co.Total)
	kv.AssertNotCalled(t, "GetItems", mock.Anything, mock.Anything)
}

func TestCartService_BeginCheckout_RequiresIdentity(t *testing.T) {
	kv := new(mockKVStore)

	svc := NewCartService(kv, cartTTL)
	_, err := svc.BeginCheckout(context.Background(), models.Identity{}, nil)

	assert.ErrorIs(t, err, status.ErrAuthRequired)
	kv.AssertNotCalled(t, "GetItems", mock.Anything, mock.Anything)
}
