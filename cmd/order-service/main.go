package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/ariefcatur/go-microservices-shop/internal/config"
	"github.com/ariefcatur/go-microservices-shop/internal/httpx"
	"github.com/ariefcatur/go-microservices-shop/internal/inventory"
	kafkax "github.com/ariefcatur/go-microservices-shop/internal/kafka"
	"github.com/ariefcatur/go-microservices-shop/internal/orders"
	"github.com/ariefcatur/go-microservices-shop/internal/postgres"
	"github.com/ariefcatur/go-microservices-shop/internal/telemetry"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load("order-service")
	log := telemetry.NewLogger(cfg.ServiceName)
	if err := run(cfg, log); err != nil {
		log.Error("order-service stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(ctx)
	}()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return err
	}

	// Kafka producer, drained after the HTTP server has stopped
	prod := kafkax.NewProducer(cfg.KafkaBrokers, cfg.NotificationTopic, 1024, log)
	prod.Start(context.Background())
	defer func() {
		prod.Close()
		prod.WaitClosed()
	}()

	svc := orders.NewService(
		&orders.Repo{DB: db},
		inventory.NewClient(cfg.InventoryURL, cfg.InventoryTimeout),
		kafkax.NewOrderEvents(prod),
		orders.WithLogger(log),
	)

	router := httpx.NewRouter(cfg.ServiceName)
	(&httpx.OrdersHandler{Service: svc, Log: log}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 5 * time.Second}
	return serve(ctx, srv, log)
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, log *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	})
	return g.Wait()
}
