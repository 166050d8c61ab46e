package cmd

import (
	"context"
	"eventhub/config"
	"eventhub/internal/handlers"
	"eventhub/internal/services"
	"eventhub/internal/store"
	"eventhub/monitoring"
	"eventhub/utils"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pubnub "github.com/pubnub/go"
	"github.com/redis/go-redis/v9"

	_ "eventhub/migrations"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()

	// Initialize PubNub
	pnConfig := pubnub.NewConfig()
	pnConfig.PublishKey = cfg.PubNubPublishKey
	pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
	pnConfig.SecretKey = cfg.PubNubSecretKey

	pn := pubnub.NewPubNub(pnConfig)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize stores and services
	records := store.NewRecords(app)
	kv := store.NewKV(redisClient)
	notifier := services.NewPubNubNotifier(pn)

	catalogService := services.NewCatalogService(records)
	cartService := services.NewCartService(kv, cfg.CartTTL)
	orderService := services.NewOrderService(records, cartService, notifier)
	eventService := services.NewEventService(records)
	exportService := services.NewExportService()

	monitor := monitoring.NewMonitor(redisClient)

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(app, catalogService, monitor)
	cartHandler := handlers.NewCartHandler(app, cartService)
	orderHandler := handlers.NewOrderHandler(app, orderService, exportService, monitor)
	eventHandler := handlers.NewEventHandler(app, eventService)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	// Start background tasks
	go monitor.Collect(ctx, cfg.CleanupInterval)

	if cfg.EnableMetrics {
		go serveMetrics(cfg.MetricsPort)
	}

	// Setup graceful shutdown
	go handleShutdown(cancel)

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		syncCatalogToRedis(app, redisClient)

		// Catalog endpoints
		e.Router.GET("/api/v1/events", catalogHandler.GetEvents)

		// Cart endpoints
		e.Router.GET("/api/v1/cart", cartHandler.GetCart)
		e.Router.POST("/api/v1/cart", cartHandler.AddToCart)
		e.Router.DELETE("/api/v1/cart/{index}", cartHandler.RemoveFromCart)
		e.Router.POST("/api/v1/checkout", cartHandler.BeginCheckout)

		// Wishlist endpoints
		e.Router.GET("/api/v1/wishlist", cartHandler.GetWishlist)
		e.Router.POST("/api/v1/wishlist", cartHandler.AddToWishlist)
		e.Router.DELETE("/api/v1/wishlist/{index}", cartHandler.RemoveFromWishlist)

		// Order endpoints
		e.Router.POST("/api/v1/orders", orderHandler.SubmitOrder)
		e.Router.GET("/api/v1/orders", orderHandler.GetBuyerOrders)
		e.Router.DELETE("/api/v1/orders/{id}", orderHandler.CancelOrder)

		// Organizer endpoints
		e.Router.GET("/api/v1/organizer/orders", orderHandler.GetOrganizerOrders)
		e.Router.POST("/api/v1/organizer/orders/{id}/accept", orderHandler.AcceptOrder)
		e.Router.POST("/api/v1/organizer/orders/{id}/reject", orderHandler.RejectOrder)
		e.Router.POST("/api/v1/organizer/orders/bulk-delete", orderHandler.BulkDeleteOrders)
		e.Router.GET("/api/v1/organizer/earnings", orderHandler.GetEarnings)
		e.Router.GET("/api/v1/organizer/earnings/export", orderHandler.ExportEarnings)
		e.Router.GET("/api/v1/organizer/stats", orderHandler.GetOrderStats)
		e.Router.GET("/api/v1/organizer/events", eventHandler.GetListings)
		e.Router.POST("/api/v1/organizer/events", eventHandler.CreateEvent)
		e.Router.DELETE("/api/v1/organizer/events/{id}", eventHandler.DeleteEvent)
		e.Router.POST("/api/v1/organizer/events/bulk-delete", eventHandler.BulkDeleteEvents)

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		setupEventHooks(app, redisClient)

		return e.Next()
	})

	// Start server
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
	return nil
}

// syncCatalogToRedis rebuilds the catalog:events set so the monitoring
// gauges survive server restarts.
func syncCatalogToRedis(app *pocketbase.PocketBase, redisClient *redis.Client) {
	ctx := context.Background()

	events, err := app.FindAllRecords("events")
	if err != nil {
		log.Printf("Error fetching catalog events: %v", err)
		return
	}

	redisClient.Del(ctx, "catalog:events")

	if len(events) > 0 {
		ids := make([]interface{}, 0, len(events))
		for _, rec := range events {
			ids = append(ids, rec.Id)
		}
		redisClient.SAdd(ctx, "catalog:events", ids...)
		log.Printf("Synced %d catalog events to Redis", len(ids))
	}
}

func setupEventHooks(app *pocketbase.PocketBase, redisClient *redis.Client) {
	// Keep the catalog:events set in step with the events collection.
	// Redis sync failures are logged and never block the request.
	app.OnRecordCreateRequest("events").BindFunc(func(e *core.RecordRequestEvent) error {
		ctx := e.Request.Context()

		if err := redisClient.SAdd(ctx, "catalog:events", e.Record.Id).Err(); err != nil {
			slog.Error("Failed to add event to Redis catalog set",
				"eventID", e.Record.Id,
				"error", err,
			)
			return e.Next()
		}
		slog.Info("Added event to Redis catalog set", "eventID", e.Record.Id)
		return e.Next()
	})

	app.OnRecordDeleteRequest("events").BindFunc(func(e *core.RecordRequestEvent) error {
		ctx := e.Request.Context()

		if err := redisClient.SRem(ctx, "catalog:events", e.Record.Id).Err(); err != nil {
			slog.Error("Failed to remove event from Redis catalog set",
				"eventID", e.Record.Id,
				"error", err,
			)
			return e.Next()
		}
		slog.Info("Removed event from Redis catalog set", "eventID", e.Record.Id)
		return e.Next()
	})
}

func serveMetrics(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	log.Printf("Metrics server listening on :%s", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		slog.Error("Metrics server stopped", "error", err)
	}
}

// handleShutdown handles graceful shutdown
func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	cancel()
}
