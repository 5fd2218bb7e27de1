package main

import (
	"context"
	"log"
	"os"

	"learnpath-be/internal/dto"
	"learnpath-be/internal/pkg/apperror"
	"learnpath-be/internal/pkg/logger"
	"learnpath-be/internal/repository/unitofwork"
	"learnpath-be/internal/service"
	"learnpath-be/pkg/cache"
	"learnpath-be/pkg/database"

	"github.com/joho/godotenv"
)

const (
	demoEmail    = "demo@learnpath.local"
	demoPassword = "demo-password"
)

// Seeds a demo account with one learning path. Safe to run twice.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.Open(os.Getenv("DB_DRIVER"), dsn, database.ParseLogLevel(os.Getenv("DB_LOG_LEVEL")))
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(db)
	authService := service.NewAuthService(uowFactory, "seed")
	// Seeded items carry durations, so no provider call is made.
	pathService := service.NewPathService(uowFactory, nil, cache.NewMemoryStore(0), 0, nil, logger.NewNopLogger())

	log.Println("Seeding demo user...")
	user, err := authService.Register(ctx, &dto.RegisterRequest{
		FullName: "Demo Learner",
		Email:    demoEmail,
		Password: demoPassword,
	})
	if apperror.Is(err, apperror.KindValidation) {
		log.Println("Demo user already exists, skipping")
		return
	}
	if err != nil {
		log.Fatalf("Error: register demo user: %v", err)
	}

	path, err := pathService.Create(ctx, user.Id, &dto.CreatePathRequest{
		Domain: "Backend development with Go",
		Items: []dto.PathItemRequest{
			{Topic: "Go syntax and tooling", Duration: 3},
			{Topic: "HTTP services", Duration: 4},
			{Topic: "Databases and GORM", Duration: 4},
			{Topic: "Concurrency patterns", Duration: 5},
		},
	})
	if err != nil {
		log.Fatalf("Error: create demo path: %v", err)
	}

	log.Printf("Seeded %s / %s with path %s", demoEmail, demoPassword, path.Id)
}
