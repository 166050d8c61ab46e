package monitoring

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

var (
	catalogLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_loads_total",
			Help: "Total catalog load attempts",
		},
		[]string{"status"},
	)

	orderOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_operations_total",
			Help: "Total order lifecycle operations",
		},
		[]string{"operation", "status"},
	)

	activeCarts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_carts_total",
			Help: "Current number of non-empty carts",
		},
	)

	activeWishlists = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_wishlists_total",
			Help: "Current number of non-empty wishlists",
		},
	)

	publishedEvents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "published_events_total",
			Help: "Events currently in the catalog",
		},
	)
)

type Monitor struct {
	redis *redis.Client
}

func NewMonitor(redisClient *redis.Client) *Monitor {
	return &Monitor{redis: redisClient}
}

// Collect scans the key-value store every interval and updates the
// cart/wishlist/catalog gauges until the context is cancelled.
func (m *Monitor) Collect(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.collectStoreMetrics(ctx)
		}
	}
}

func (m *Monitor) collectStoreMetrics(ctx context.Context) {
	cartKeys, _ := m.redis.Keys(ctx, "cart:*").Result()
	activeCarts.Set(float64(len(cartKeys)))

	wishlistKeys, _ := m.redis.Keys(ctx, "wishlist:*").Result()
	activeWishlists.Set(float64(len(wishlistKeys)))

	published, _ := m.redis.SCard(ctx, "catalog:events").Result()
	publishedEvents.Set(float64(published))
}

// Track catalog load outcomes
func (m *Monitor) TrackCatalogLoad(status string) {
	catalogLoads.WithLabelValues(status).Inc()
}

// Track order lifecycle operations
func (m *Monitor) TrackOrderOperation(operation, status string) {
	orderOperations.WithLabelValues(operation, status).Inc()
}
