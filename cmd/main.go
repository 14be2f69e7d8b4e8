package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-billing/internal/catalog"
	"restaurant-billing/internal/config"
	"restaurant-billing/internal/database"
	"restaurant-billing/internal/logger"
	"restaurant-billing/internal/messaging"
	"restaurant-billing/internal/metrics"
	"restaurant-billing/internal/models"
	"restaurant-billing/internal/services/checkout"
	"restaurant-billing/internal/services/menus"
	"restaurant-billing/internal/services/notification"
	"restaurant-billing/internal/services/order"
	"restaurant-billing/internal/web"
)

func main() {
	var (
		mode              = flag.String("mode", "", "Service mode (menu-bootstrap, menu-service, checkout-worker, notification-subscriber)")
		configPath        = flag.String("config", "config.yaml", "Path to the YAML config file")
		port              = flag.Int("port", 3000, "HTTP port")
		menuName          = flag.String("menu", menus.DefaultMenu, "Catalog name for menu-bootstrap")
		workerName        = flag.String("worker-name", "", "Worker name (required for checkout-worker mode)")
		heartbeatInterval = flag.Int("heartbeat-interval", 30, "Heartbeat interval in seconds")
		prefetch          = flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	)
	flag.Parse()

	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode":           *mode,
		"port":           *port,
		"catalog_driver": cfg.Catalog.Driver,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "menu-bootstrap":
		err = runMenuBootstrap(logger.WithRequestID(ctx, requestID), cfg, log, *menuName)
	case "menu-service":
		err = runMenuService(ctx, cfg, log, *port)
	case "checkout-worker":
		if *workerName == "" {
			log.Error("validation_failed", "worker-name is required for checkout-worker mode", requestID, nil, nil)
			os.Exit(1)
		}
		err = runCheckoutWorker(ctx, cfg, log, *workerName, time.Duration(*heartbeatInterval)*time.Second, *prefetch)
	case "notification-subscriber":
		err = runNotificationSubscriber(ctx, cfg, log, *prefetch)
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	if err != nil {
		log.Error("service_failed", fmt.Sprintf("%s failed", *mode), requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// openCatalogStore builds the configured catalog store. db is nil unless the
// postgres driver is selected.
func openCatalogStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (store catalog.Store, db *database.DB, err error) {
	switch cfg.Catalog.Driver {
	case config.DriverMemory:
		return catalog.NewMemoryStore(), nil, nil
	case config.DriverPostgres:
		db, err = database.New(ctx, cfg, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		log.Info("db_connected", "Connected to PostgreSQL database", "startup", nil)

		if err := db.RunMigrations(ctx, "migrations"); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return database.NewCatalogStore(db), db, nil
	default:
		return catalog.NewFileStore(cfg.Catalog.Dir), nil, nil
	}
}

// runMenuBootstrap creates the sample catalog and exits
func runMenuBootstrap(ctx context.Context, cfg *config.Config, log *logger.Logger, menuName string) error {
	if err := models.ValidateMenuName(menuName); err != nil {
		return fmt.Errorf("invalid --menu: %w", err)
	}

	store, db, err := openCatalogStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	return menus.Bootstrap(ctx, catalog.NewService(store, nil, log), log, menuName)
}

// runMenuService serves the catalog and checkout HTTP API
func runMenuService(ctx context.Context, cfg *config.Config, log *logger.Logger, port int) error {
	requestID := logger.GenerateRequestID()

	store, db, err := openCatalogStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	conn, err := messaging.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	healthy := func(ctx context.Context) bool {
		if conn.IsClosed() {
			return false
		}
		return db == nil || db.Ping(ctx) == nil
	}

	m := metrics.New("menu-service")
	rt := web.NewRouter(log, m)
	menus.NewHandler(catalog.NewService(store, m, log), log).RegisterRoutes(rt)
	order.NewHandler(messaging.NewPublisher(conn, log), healthy, log).RegisterRoutes(rt)
	rt.Handle("GET /metrics", m.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           rt,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("service_started", fmt.Sprintf("Menu service started on port %d", port), requestID, map[string]interface{}{
			"port": port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

// runCheckoutWorker settles checkouts from the checkout queue
func runCheckoutWorker(ctx context.Context, cfg *config.Config, log *logger.Logger, workerName string, heartbeat time.Duration, prefetch int) error {
	consumerConn, err := messaging.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer consumerConn.Close()

	// publishing and consuming use separate channels
	publisherConn, err := messaging.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize publisher messaging: %w", err)
	}
	defer publisherConn.Close()

	consumer := messaging.NewConsumer(consumerConn, log, messaging.CheckoutQueue, workerName, prefetch)
	publisher := messaging.NewPublisher(publisherConn, log)

	return checkout.NewWorker(workerName, heartbeat, consumer, publisher, metrics.New("checkout-worker"), log).Start(ctx)
}

// runNotificationSubscriber prints settlements as they are broadcast
func runNotificationSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	conn, err := messaging.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	consumer := messaging.NewConsumer(conn, log, messaging.SettlementsQueue, "notification-subscriber", prefetch)
	return notification.NewSubscriber(consumer, log).Start(ctx)
}
