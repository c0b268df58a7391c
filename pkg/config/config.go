package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr    string
	StoreAdapter  string
	MongoURI      string
	DatabaseURL   string
	AccessSecret  string
	RefreshSecret string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, falling back to OS environment")
	}

	cfg := &Config{
		ListenAddr:    ":" + getString("PORT", "5000"),
		StoreAdapter:  getString("STORE_ADAPTER", "mongo"),
		MongoURI:      getString("MONGO_URI", ""),
		DatabaseURL:   getString("DATABASE_URL", ""),
		AccessSecret:  getString("JWT_SECRET", ""),
		RefreshSecret: getString("REFRESH_SECRET", ""),
	}

	if cfg.AccessSecret == "" {
		return nil, fmt.Errorf("missing required environment variable: JWT_SECRET")
	}
	if cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("missing required environment variable: REFRESH_SECRET")
	}

	switch cfg.StoreAdapter {
	case "mongo":
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI must be set when STORE_ADAPTER=mongo")
		}
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL must be set when STORE_ADAPTER=postgres")
		}
	case "memory":
	default:
		return nil, fmt.Errorf("unsupported STORE_ADAPTER: %s (supported: mongo, postgres, memory)", cfg.StoreAdapter)
	}

	return cfg, nil
}

func getString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	return value
}
