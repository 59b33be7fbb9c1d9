package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/petroapi-dev/petroapi/db"
	"github.com/petroapi-dev/petroapi/internal/auth"
	"github.com/petroapi-dev/petroapi/internal/config"
	"github.com/petroapi-dev/petroapi/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	database, err := db.Connect(cfg.DatabaseDSN)

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := db.SeedAdmin(database, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.TokenTTL)

	if err != nil {
		log.Fatalf("Invalid token configuration: %v", err)
	}

	r := router.New(database, tokens)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
