package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carries everything the process reads from the environment. It is
// built once at startup and injected; nothing else touches os.Getenv.
type Config struct {
	Port          string
	DatabaseDSN   string
	JWTSecret     string
	JWTAlgorithm  string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string
}

func Load() (Config, error) {
	cfg := Config{
		Port:          os.Getenv("PORT"),
		DatabaseDSN:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("SECRET_KEY"),
		JWTAlgorithm:  os.Getenv("ALGORITHM"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.Port == "" {
		cfg.Port = "8000"
	}

	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = fmt.Sprintf(
			"postgresql://%s:%s@%s/%s",
			os.Getenv("DBUSER"),
			os.Getenv("DBPASSWORD"),
			os.Getenv("DBHOST"),
			os.Getenv("DBNAME"),
		)
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("SECRET_KEY environment variable is not set")
	}

	if cfg.JWTAlgorithm == "" {
		cfg.JWTAlgorithm = "HS256"
	}

	minutes := 30
	if raw := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ACCESS_TOKEN_EXPIRE_MINUTES: %w", err)
		}
		minutes = parsed
	}
	cfg.TokenTTL = time.Duration(minutes) * time.Minute

	if cfg.AdminPassword == "" {
		return Config{}, fmt.Errorf("ADMIN_PASSWORD environment variable is not set")
	}

	return cfg, nil
}
