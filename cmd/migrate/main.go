package main

import (
	"os"

	"learnpath-be/internal/model"
	"learnpath-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		color.White("Info: No .env file found, using system env")
	}

	driver := os.Getenv("DB_DRIVER")
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.Open(driver, dsn, database.ParseLogLevel(os.Getenv("DB_LOG_LEVEL")))
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("Starting GORM migration...")

	// 3. Pre-Migration: extensions GORM does not create
	if db.Dialector.Name() == "postgres" {
		color.Yellow("Step 1: Setting up extensions...")
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
			color.Yellow("Warn: Failed to create pgcrypto: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	models := model.All()
	color.Yellow("Step 2: Running AutoMigrate for %d tables...", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		color.Red("Error: AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	color.Green("Success: database migration completed.")
}
