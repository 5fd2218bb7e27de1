package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"learnpath-be/internal/bootstrap"
	"learnpath-be/internal/config"
	"learnpath-be/internal/pkg/logger"
	"learnpath-be/internal/server"
	"learnpath-be/internal/tracer"
	"learnpath-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if cfg.Auth.JwtSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	// 2. Tracing (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(cfg.App.OtelEnabled)
	defer shutdownTracer(context.Background())

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	// 3. Initialize Database
	gormDB, err := database.Open(cfg.Database.Driver, cfg.Database.Connection, database.ParseLogLevel(cfg.Database.LogLevel))
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(gormDB, cfg, sysLogger, nil)
	if err != nil {
		log.Fatalf("Bootstrap failed: %v", err)
	}
	defer container.Close()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		sysLogger.Info("SERVER", "shutting down", nil)
		if err := srv.Shutdown(); err != nil {
			sysLogger.Error("SERVER", "shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
