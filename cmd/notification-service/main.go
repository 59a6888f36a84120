package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/ariefcatur/go-microservices-shop/internal/config"
	kafkax "github.com/ariefcatur/go-microservices-shop/internal/kafka"
	"github.com/ariefcatur/go-microservices-shop/internal/notification"
	"github.com/ariefcatur/go-microservices-shop/internal/telemetry"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load("notification-service")
	log := telemetry.NewLogger(cfg.ServiceName)
	if err := run(cfg, log); err != nil {
		log.Error("notification-service stopped", "err", err)
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

	h := notification.NewHandler(log)
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.NotificationGroup, cfg.NotificationTopic, cfg.NotificationWorkers, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("notification consumer started",
			"group", cfg.NotificationGroup, "topic", cfg.NotificationTopic, "workers", cfg.NotificationWorkers)
		return cons.Start(gctx, h.HandleOrderPlaced)
	})
	err = g.Wait()
	log.Info("notification consumer stopped")
	return err
}
