package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DBUrl       string
	Environment string
	Port        string

	CORSAllowedOrigins []string

	// RedisURL enables the event-by-slug cache when set.
	RedisURL       string
	CacheTTL       time.Duration
	ServiceTimeout time.Duration

	EmailProvider    string
	EmailFromAddress string
	EmailFromName    string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file if not in production
	// We don't return error here because in production .env might not exist
	// and we rely on system environment variables
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:        env,
		DBUrl:              os.Getenv("DATABASE_URL"),
		Port:               os.Getenv("PORT"),
		RedisURL:           os.Getenv("REDIS_URL"),
		EmailProvider:      os.Getenv("EMAIL_PROVIDER"),
		EmailFromAddress:   os.Getenv("EMAIL_FROM_ADDRESS"),
		EmailFromName:      os.Getenv("EMAIL_FROM_NAME"),
		AWSRegion:          os.Getenv("AWS_REGION"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		CacheTTL:           5 * time.Minute,
		ServiceTimeout:     10 * time.Second,
	}

	if cfg.DBUrl == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORSAllowedOrigins = strings.Split(origins, ",")
	}
	if ttl := os.Getenv("CACHE_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
		}
		cfg.CacheTTL = d
	}

	return cfg, nil
}
