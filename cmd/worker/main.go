package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"learnpath-be/internal/config"
	"learnpath-be/internal/pkg/logger"
	"learnpath-be/internal/service"
	pktNats "learnpath-be/pkg/nats"
)

// Activity log consumer for the learning events stream.
func main() {
	cfg := config.Load()
	if cfg.App.NatsURL == "" {
		log.Fatal("NATS_URL is not set")
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The publisher owns stream creation.
	pub, err := pktNats.NewPublisher(ctx, cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("NATS unavailable: %v", err)
	}
	defer pub.Close()

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL, func(subject string, err error) {
		sysLogger.Error("WORKER", "event handling failed", map[string]interface{}{
			"subject": subject,
			"error":   err.Error(),
		})
	})
	if err != nil {
		log.Fatalf("NATS unavailable: %v", err)
	}
	defer sub.Close()

	consumer := service.NewConsumerService(sub, sysLogger)
	if err := consumer.Consume(ctx); err != nil {
		log.Fatalf("Subscribe failed: %v", err)
	}

	sysLogger.Info("WORKER", "consuming learning events", nil)
	<-ctx.Done()
}
