package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"

	"eventhub/internal/status"
	"eventhub/models"
	"eventhub/utils"
)

// OrderService drives the order lifecycle: purchase-intent creation,
// organizer accept/reject, buyer cancel, bulk deletion and the earnings
// aggregate.
type OrderService struct {
	orders   OrderStore
	cart     *CartService
	notifier Notifier
	validate *validator.Validate

	// Running earnings figure bumped on accept. Purely an optimistic
	// display value; the authoritative number is recomputed from the
	// fetched order set on every Earnings call.
	mu         sync.Mutex
	optimistic decimal.Decimal
}

func NewOrderService(orders OrderStore, cart *CartService, notifier Notifier) *OrderService {
	return &OrderService{
		orders:     orders,
		cart:       cart,
		notifier:   notifier,
		validate:   validator.New(),
		optimistic: decimal.Zero,
	}
}

// Submit creates one Pending order per checkout line item. All creations
// are issued concurrently and joined; on full success the cart is cleared.
// A partial failure is reported once, with no rollback of the records that
// already went through.
func (s *OrderService) Submit(ctx context.Context, identity models.Identity, fields models.BuyerFields, co models.Checkout) ([]models.Order, error) {
	if !identity.Valid() {
		return nil, status.ErrAuthRequired
	}
	if err := s.validate.Struct(fields); err != nil {
		return nil, fmt.Errorf("%w: %v", status.ErrValidation, err)
	}
	if len(co.Items) == 0 {
		return nil, fmt.Errorf("%w: empty checkout set", status.ErrValidation)
	}

	created := make([]models.Order, len(co.Items))
	errs := make([]error, len(co.Items))

	var wg sync.WaitGroup
	for i, item := range co.Items {
		wg.Add(1)
		go func(i int, item models.Event) {
			defer wg.Done()
			order := models.Order{
				EventID:        item.ID,
				EventName:      item.Name,
				EventPrice:     item.Price,
				EventImage:     item.Image,
				EventDate:      item.Date,
				BuyerID:        identity.ID,
				BuyerEmail:     identity.Email,
				OrganizerID:    item.OrganizerID,
				OrganizerEmail: item.OrganizerEmail,
				Status:         models.OrderPending,
				Name:           fields.Name,
				Email:          fields.Email,
				PaymentMethod:  fields.PaymentMethod,
			}
			created[i], errs[i] = s.orders.InsertOrder(ctx, order)
		}(i, item)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%w: %v", status.ErrBackendUnavailable, err)
		}
	}

	if err := s.cart.ClearCart(ctx, identity.ID); err != nil {
		// Orders exist either way; a lingering cart is only a nuisance.
		slog.Error("cart clear after order batch failed", "user", identity.ID, "error", err)
	}

	for _, order := range created {
		if order.OrganizerID == "" {
			continue
		}
		s.notifier.Publish(fmt.Sprintf("user-%s", order.OrganizerID), map[string]any{
			"type":       "order_created",
			"order_id":   order.ID,
			"event_name": order.EventName,
		})
	}

	return created, nil
}

func (s *OrderService) BuyerOrders(ctx context.Context, buyerID string) ([]models.Order, error) {
	orders, err := s.orders.ListOrdersByBuyer(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", status.ErrBackendUnavailable, err)
	}
	return orders, nil
}

func (s *OrderService) OrganizerOrders(ctx context.Context, organizerID string) ([]models.Order, error) {
	orders, err := s.orders.ListOrdersByOrganizer(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", status.ErrBackendUnavailable, err)
	}
	return orders, nil
}

// Accept moves a Pending order to Accepted, bumps the optimistic earnings
// figure, attaches the ticket QR and notifies the buyer. The status
// pre-check is not atomic with the write; two organizers racing here is an
// accepted limitation of the store.
func (s *OrderService) Accept(ctx context.Context, id string) (models.Order, error) {
	order, err := s.transition(ctx, id, models.OrderAccepted)
	if err != nil {
		return models.Order{}, err
	}

	s.mu.Lock()
	s.optimistic = s.optimistic.Add(decimal.NewFromFloat(order.EventPrice).Mul(sellerShare))
	s.mu.Unlock()

	if png, err := s.ticketQR(order); err != nil {
		slog.Error("ticket QR generation failed", "order", order.ID, "error", err)
	} else if err := s.orders.AttachTicket(ctx, order.ID, png); err != nil {
		slog.Error("ticket attach failed", "order", order.ID, "error", err)
	}

	s.notifyBuyer(order)
	return order, nil
}

// Reject moves a Pending order to Rejected and notifies the buyer.
func (s *OrderService) Reject(ctx context.Context, id string) (models.Order, error) {
	order, err := s.transition(ctx, id, models.OrderRejected)
	if err != nil {
		return models.Order{}, err
	}
	s.notifyBuyer(order)
	return order, nil
}

func (s *OrderService) transition(ctx context.Context, id, next string) (models.Order, error) {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: order %s", status.ErrNotFound, id)
	}
	if order.Processed() {
		return models.Order{}, fmt.Errorf("%w: order %s is %s", status.ErrConflict, id, order.Status)
	}
	if err := s.orders.SetOrderStatus(ctx, id, next); err != nil {
		return models.Order{}, fmt.Errorf("%w: %v", status.ErrBackendUnavailable, err)
	}
	order.Status = next
	return order, nil
}

// Cancel is the buyer-initiated deletion of an order. No status check and
// no notice to the organizer; the record simply disappears from their next
// fetch.
func (s *OrderService) Cancel(ctx context.Context, id string) error {
	if err := s.orders.DeleteOrder(ctx, id); err != nil {
		return fmt.Errorf("%w: order %s", status.ErrNotFound, id)
	}
	return nil
}

// BulkDelete removes a set of orders as one all-or-nothing batch.
func (s *OrderService) BulkDelete(ctx context.Context, ids []string) error {
	if err := s.orders.DeleteOrdersBatch(ctx, ids); err != nil {
		return fmt.Errorf("%w: %v", status.ErrBackendUnavailable, err)
	}
	return nil
}

// Earnings recomputes the organizer's earnings from the authoritative
// fetched order set and resets the optimistic figure to it.
func (s *OrderService) Earnings(ctx context.Context, organizerID string) (decimal.Decimal, EarningsBreakdown, error) {
	orders, err := s.OrganizerOrders(ctx, organizerID)
	if err != nil {
		return decimal.Zero, EarningsBreakdown{}, err
	}

	earnings := ComputeEarnings(orders)

	s.mu.Lock()
	s.optimistic = earnings
	s.mu.Unlock()

	return earnings, ComputeBreakdown(earnings), nil
}

// OptimisticEarnings returns the locally tracked figure, which may lead the
// next full recomputation.
func (s *OrderService) OptimisticEarnings() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.optimistic
}

func (s *OrderService) ticketQR(order models.Order) ([]byte, error) {
	ref, err := utils.GenerateCode(4)
	if err != nil {
		return nil, err
	}
	payload := fmt.Sprintf(`{"order_id":"%s","event":"%s","ref":"%s"}`, order.ID, order.EventName, ref)
	return qrcode.Encode(payload, qrcode.Medium, 256)
}

func (s *OrderService) notifyBuyer(order models.Order) {
	if order.BuyerID == "" {
		return
	}
	s.notifier.Publish(fmt.Sprintf("user-%s", order.BuyerID), map[string]any{
		"type":     "order_status",
		"order_id": order.ID,
		"status":   order.Status,
	})
}
