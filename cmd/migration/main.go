package main

import (
	"log"

	"github.com/hugohenrick/commerce-assistant/internal/infrastructure/database"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := database.NewPostgresConfigFromEnv()

	log.Printf("Applying migrations to %s/%s", cfg.Host, cfg.Database)
	if err := database.RunMigrations(cfg); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations applied successfully")
}
