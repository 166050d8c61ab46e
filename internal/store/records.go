package store

import (
	"context"
	"fmt"

	"eventhub/models"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/filesystem"
)

// Records adapts the PocketBase collections to the service-level store
// interfaces. Documents are schemaless; readers substitute defaults for
// missing fields instead of failing.
type Records struct {
	app core.App
}

func NewRecords(app core.App) *Records {
	return &Records{app: app}
}

func (r *Records) ListEvents(ctx context.Context) ([]models.Event, error) {
	records, err := r.app.FindRecordsByFilter("events", "", "-created", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	events := make([]models.Event, 0, len(records))
	for _, rec := range records {
		events = append(events, eventFromRecord(rec))
	}
	return events, nil
}

func (r *Records) ListEventsByOrganizer(ctx context.Context, organizerID string) ([]models.Event, error) {
	records, err := r.app.FindRecordsByFilter(
		"events",
		"organizer = {:organizerId}",
		"-created",
		0,
		0,
		map[string]any{"organizerId": organizerID},
	)
	if err != nil {
		return nil, fmt.Errorf("list organizer events: %w", err)
	}
	events := make([]models.Event, 0, len(records))
	for _, rec := range records {
		events = append(events, eventFromRecord(rec))
	}
	return events, nil
}

func (r *Records) InsertEvent(ctx context.Context, ev models.Event) (models.Event, error) {
	collection, err := r.app.FindCollectionByNameOrId("events")
	if err != nil {
		return models.Event{}, fmt.Errorf("events collection: %w", err)
	}

	rec := core.NewRecord(collection)
	rec.Set("name", ev.Name)
	rec.Set("category", ev.Category)
	rec.Set("price", ev.Price)
	rec.Set("date", ev.Date)
	rec.Set("location", ev.Location)
	rec.Set("description", ev.Description)
	rec.Set("image", ev.Image)
	rec.Set("capacity", ev.Capacity)
	rec.Set("organizer", ev.OrganizerID)
	rec.Set("organizer_email", ev.OrganizerEmail)

	if err := r.app.SaveWithContext(ctx, rec); err != nil {
		return models.Event{}, fmt.Errorf("save event: %w", err)
	}
	ev.ID = rec.Id
	return ev, nil
}

func (r *Records) GetEvent(ctx context.Context, id string) (models.Event, error) {
	rec, err := r.app.FindRecordById("events", id)
	if err != nil {
		return models.Event{}, fmt.Errorf("get event %s: %w", id, err)
	}
	return eventFromRecord(rec), nil
}

func (r *Records) DeleteEvent(ctx context.Context, id string) error {
	rec, err := r.app.FindRecordById("events", id)
	if err != nil {
		return fmt.Errorf("get event %s: %w", id, err)
	}
	if err := r.app.DeleteWithContext(ctx, rec); err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	return nil
}

// DeleteEventsBatch removes the given events inside a single transaction:
// either every record goes or none do.
func (r *Records) DeleteEventsBatch(ctx context.Context, ids []string) error {
	return r.app.RunInTransaction(func(txApp core.App) error {
		for _, id := range ids {
			rec, err := txApp.FindRecordById("events", id)
			if err != nil {
				return fmt.Errorf("get event %s: %w", id, err)
			}
			if err := txApp.Delete(rec); err != nil {
				return fmt.Errorf("delete event %s: %w", id, err)
			}
		}
		return nil
	})
}

func (r *Records) InsertOrder(ctx context.Context, o models.Order) (models.Order, error) {
	collection, err := r.app.FindCollectionByNameOrId("orders")
	if err != nil {
		return models.Order{}, fmt.Errorf("orders collection: %w", err)
	}

	rec := core.NewRecord(collection)
	rec.Set("event", o.EventID)
	rec.Set("event_name", o.EventName)
	rec.Set("event_price", o.EventPrice)
	rec.Set("event_image", o.EventImage)
	rec.Set("event_date", o.EventDate)
	rec.Set("buyer", o.BuyerID)
	rec.Set("buyer_email", o.BuyerEmail)
	rec.Set("organizer", o.OrganizerID)
	rec.Set("organizer_email", o.OrganizerEmail)
	rec.Set("status", o.Status)
	rec.Set("name", o.Name)
	rec.Set("email", o.Email)
	rec.Set("payment_method", o.PaymentMethod)

	if err := r.app.SaveWithContext(ctx, rec); err != nil {
		return models.Order{}, fmt.Errorf("save order: %w", err)
	}
	o.ID = rec.Id
	o.Created = rec.GetDateTime("created").Time()
	return o, nil
}

func (r *Records) GetOrder(ctx context.Context, id string) (models.Order, error) {
	rec, err := r.app.FindRecordById("orders", id)
	if err != nil {
		return models.Order{}, fmt.Errorf("get order %s: %w", id, err)
	}
	return orderFromRecord(rec), nil
}

func (r *Records) SetOrderStatus(ctx context.Context, id, orderStatus string) error {
	rec, err := r.app.FindRecordById("orders", id)
	if err != nil {
		return fmt.Errorf("get order %s: %w", id, err)
	}
	rec.Set("status", orderStatus)
	if err := r.app.SaveWithContext(ctx, rec); err != nil {
		return fmt.Errorf("update order %s: %w", id, err)
	}
	return nil
}

// AttachTicket stores the generated ticket QR image on the order record.
func (r *Records) AttachTicket(ctx context.Context, id string, png []byte) error {
	rec, err := r.app.FindRecordById("orders", id)
	if err != nil {
		return fmt.Errorf("get order %s: %w", id, err)
	}
	file, err := filesystem.NewFileFromBytes(png, "ticket.png")
	if err != nil {
		return fmt.Errorf("ticket file: %w", err)
	}
	rec.Set("qr_code", file)
	if err := r.app.SaveWithContext(ctx, rec); err != nil {
		return fmt.Errorf("attach ticket %s: %w", id, err)
	}
	return nil
}

func (r *Records) ListOrdersByBuyer(ctx context.Context, buyerID string) ([]models.Order, error) {
	return r.listOrders("buyer = {:id}", buyerID)
}

func (r *Records) ListOrdersByOrganizer(ctx context.Context, organizerID string) ([]models.Order, error) {
	return r.listOrders("organizer = {:id}", organizerID)
}

func (r *Records) listOrders(filter, id string) ([]models.Order, error) {
	records, err := r.app.FindRecordsByFilter(
		"orders",
		filter,
		"-created",
		0,
		0,
		map[string]any{"id": id},
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	orders := make([]models.Order, 0, len(records))
	for _, rec := range records {
		orders = append(orders, orderFromRecord(rec))
	}
	return orders, nil
}

func (r *Records) DeleteOrder(ctx context.Context, id string) error {
	rec, err := r.app.FindRecordById("orders", id)
	if err != nil {
		return fmt.Errorf("get order %s: %w", id, err)
	}
	if err := r.app.DeleteWithContext(ctx, rec); err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	return nil
}

// DeleteOrdersBatch removes the given orders as a single all-or-nothing batch.
func (r *Records) DeleteOrdersBatch(ctx context.Context, ids []string) error {
	return r.app.RunInTransaction(func(txApp core.App) error {
		for _, id := range ids {
			rec, err := txApp.FindRecordById("orders", id)
			if err != nil {
				return fmt.Errorf("get order %s: %w", id, err)
			}
			if err := txApp.Delete(rec); err != nil {
				return fmt.Errorf("delete order %s: %w", id, err)
			}
		}
		return nil
	})
}

func eventFromRecord(rec *core.Record) models.Event {
	return models.Event{
		ID:             rec.Id,
		Name:           fallback(rec.GetString("name"), "Unknown"),
		Category:       fallback(rec.GetString("category"), "Unknown"),
		Price:          rec.GetFloat("price"),
		Date:           rec.GetString("date"),
		Location:       rec.GetString("location"),
		Description:    rec.GetString("description"),
		Image:          rec.GetString("image"),
		Capacity:       rec.GetInt("capacity"),
		OrganizerID:    rec.GetString("organizer"),
		OrganizerEmail: rec.GetString("organizer_email"),
	}
}

func orderFromRecord(rec *core.Record) models.Order {
	return models.Order{
		ID:             rec.Id,
		EventID:        rec.GetString("event"),
		EventName:      fallback(rec.GetString("event_name"), "Unknown"),
		EventPrice:     rec.GetFloat("event_price"),
		EventImage:     rec.GetString("event_image"),
		EventDate:      rec.GetString("event_date"),
		BuyerID:        rec.GetString("buyer"),
		BuyerEmail:     fallback(rec.GetString("buyer_email"), "Unknown"),
		OrganizerID:    rec.GetString("organizer"),
		OrganizerEmail: rec.GetString("organizer_email"),
		Status:         fallback(rec.GetString("status"), models.OrderPending),
		Name:           rec.GetString("name"),
		Email:          rec.GetString("email"),
		PaymentMethod:  rec.GetString("payment_method"),
		Created:        rec.GetDateTime("created").Time(),
	}
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
