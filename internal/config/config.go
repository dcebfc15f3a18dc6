package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config is loaded once at startup from the environment. A local .env file
// is picked up when present, matching how instances are provisioned.
type Config struct {
	ServerAddress string
	DBDriver      string
	DBDSN         string
	JWTSecret     string
	StaticDir     string
	DocsDir       string
	LogMode       string
}

func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg := Config{
		ServerAddress: getEnv("SERVER_ADDRESS", "0.0.0.0:5003"),
		DBDriver:      getEnv("DB_DRIVER", "sqlite3"),
		DBDSN:         getEnv("DB_DSN", "./database/app.db"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		StaticDir:     getEnv("STATIC_DIR", "./static"),
		DocsDir:       getEnv("DOCS_DIR", "./docs"),
		LogMode:       getEnv("LOG_MODE", "prod"),
	}

	if cfg.DBDriver != "sqlite3" && cfg.DBDriver != "postgres" {
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
