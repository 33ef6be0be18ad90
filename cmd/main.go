package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leaf-and-fork/internal/adapter/geo"
	"leaf-and-fork/internal/adapter/logger"
	"leaf-and-fork/internal/adapter/postgres"
	"leaf-and-fork/internal/adapter/rabbitmq"
	"leaf-and-fork/internal/app/catalog"
	"leaf-and-fork/internal/app/checkout"
	"leaf-and-fork/internal/app/lifecycle"
	"leaf-and-fork/internal/app/session"
	"leaf-and-fork/internal/app/store"
	"leaf-and-fork/internal/app/tracking"
	"leaf-and-fork/internal/app/watch"
	"leaf-and-fork/internal/config"
	"leaf-and-fork/internal/metrics"

	httpAdapter "leaf-and-fork/internal/adapter/http"

	"go.uber.org/zap"
)

func main() {
	mode := flag.String("mode", "", "Service mode: customer-service, operator-service")
	port := flag.Int("port", 3000, "HTTP port")
	configPath := flag.String("config", "config.yaml", "Path to config file")
	flag.Parse()

	if *mode == "" {
		log.Fatal("--mode flag is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	lgr := logger.New(*mode, cfg.Env)
	defer lgr.Sync()

	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	lgr.Info("connected to PostgreSQL",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database),
	)

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	lgr.Info("connected to RabbitMQ", zap.String("host", cfg.RabbitMQ.Host))

	reg := metrics.NewRegistry()
	bus := rabbitmq.NewBus(mqConn, lgr)
	orderStore := store.New(postgres.NewOrderRepository(db), bus, lgr)
	pollInterval := time.Duration(cfg.Engine.PollIntervalSeconds) * time.Second

	switch *mode {
	case "customer-service":
		runCustomerService(ctx, cfg, db, bus, orderStore, reg, lgr, *port, pollInterval)
	case "operator-service":
		runOperatorService(ctx, cfg, bus, orderStore, reg, lgr, *port, pollInterval)
	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

func runCustomerService(
	ctx context.Context,
	cfg *config.Config,
	db postgres.DB,
	bus *rabbitmq.Bus,
	orderStore *store.Store,
	reg *metrics.Registry,
	lgr *zap.Logger,
	port int,
	pollInterval time.Duration,
) {
	customerRepo := postgres.NewCustomerRepository(db)
	cat := catalog.Default()
	sessions := session.NewManager(cat)

	checkoutService := checkout.NewService(orderStore, lgr, reg)
	trackingService := tracking.NewService(orderStore, lgr)

	handler := httpAdapter.NewCustomerHandler(checkoutService, trackingService, sessions, cat, customerRepo, lgr)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /sessions", handler.Login)
	mux.HandleFunc("DELETE /sessions/{id}", handler.Logout)
	mux.HandleFunc("POST /sessions/{id}/cart", handler.AddCartItem)
	mux.HandleFunc("GET /menu", handler.GetMenu)
	mux.HandleFunc("POST /orders", handler.PlaceOrder)
	mux.HandleFunc("GET /orders", handler.GetHistory)
	mux.HandleFunc("GET /orders/current", handler.GetCurrentOrder)
	mux.HandleFunc("GET /orders/{id}", handler.GetOrder)
	mux.HandleFunc("PUT /customers/{id}", handler.UpdateProfile)
	mux.Handle("GET /metrics", reg.Handler())

	// The customer context observes operator-side writes through the
	// watcher; the handler below only logs, the UIs read projections.
	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()

	watcher := watch.New(orderStore, bus, pollInterval, func(u watch.Update) {
		lgr.Info("order update observed",
			zap.String("order_id", u.Order.ID),
			zap.String("previous", string(u.Previous)),
			zap.String("current", string(u.Current)),
		)
	}, lgr, reg)
	go watcher.Run(watchCtx)

	serveHTTP(lgr, mux, port, "customer-service")
}

func runOperatorService(
	ctx context.Context,
	cfg *config.Config,
	bus *rabbitmq.Bus,
	orderStore *store.Store,
	reg *metrics.Registry,
	lgr *zap.Logger,
	port int,
	pollInterval time.Duration,
) {
	estimator := geo.NewSimulatedEstimator(
		time.Duration(cfg.Engine.EstimationLatencyMs)*time.Millisecond,
		time.Now().UnixNano(),
	)

	lifecycleService := lifecycle.NewService(
		orderStore,
		estimator,
		lgr,
		reg,
		cfg.Engine.KitchenAddress,
		time.Duration(cfg.Engine.EstimationTimeoutSeconds)*time.Second,
	)
	trackingService := tracking.NewService(orderStore, lgr)

	handler := httpAdapter.NewOperatorHandler(lifecycleService, trackingService, lgr)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /queue", handler.GetQueue)
	mux.HandleFunc("POST /orders/{id}/advance", handler.AdvanceOrder)
	mux.Handle("GET /metrics", reg.Handler())

	// The operator context learns about fresh checkouts the same way
	// the customer context learns about transitions: notifications for
	// latency, polling for correctness.
	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()

	watcher := watch.New(orderStore, bus, pollInterval, func(u watch.Update) {
		if u.Previous == "" {
			lgr.Info("new order in queue",
				zap.String("order_id", u.Order.ID),
				zap.String("customer", u.Order.CustomerName),
			)
		}
	}, lgr, reg)
	go watcher.Run(watchCtx)

	serveHTTP(lgr, mux, port, "operator-service")

	// Let in-flight ETA computations settle before exiting.
	drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := lifecycleService.Shutdown(drainCtx); err != nil {
		lgr.Error("estimations did not drain", zap.Error(err))
	}
}

func serveHTTP(lgr *zap.Logger, mux *http.ServeMux, port int, name string) {
	handler := httpAdapter.LoggingMiddleware(lgr)(mux)
	handler = httpAdapter.RecoveryMiddleware(lgr)(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service started", zap.String("name", name), zap.Int("port", port))

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutting down", zap.String("name", name))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("error during shutdown", zap.Error(err))
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server error", zap.Error(err))
	}
}
