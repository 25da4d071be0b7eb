package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers understood by main.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverBadger   = "badger"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port           string
	StoreDriver    string
	DatabaseURL    string
	MongoURI       string
	MongoDatabase  string
	BadgerDir      string
	JWTSecret      string
	CORSOrigins    []string
	LogFile        string
	LogLevel       string
	VoucherBaseURL string
	RequestTimeout time.Duration
	SlotLockTTL    time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so tests can feed a map.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:           get("PORT", "8080"),
		StoreDriver:    strings.ToLower(get("STORE_DRIVER", DriverBadger)),
		DatabaseURL:    get("DATABASE_URL", ""),
		MongoURI:       get("MONGO_URI", ""),
		MongoDatabase:  get("MONGO_DATABASE", "bookit"),
		BadgerDir:      get("BADGER_DIR", "./data/badger"),
		JWTSecret:      get("JWT_SECRET", ""),
		CORSOrigins:    splitList(get("CORS_ORIGINS", "http://localhost:3000")),
		LogFile:        get("LOG_FILE", ""),
		LogLevel:       get("LOG_LEVEL", "info"),
		VoucherBaseURL: get("VOUCHER_BASE_URL", "http://localhost:8080"),
	}

	var err error
	if cfg.RequestTimeout, err = time.ParseDuration(get("REQUEST_TIMEOUT", "10s")); err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}
	if cfg.SlotLockTTL, err = time.ParseDuration(get("SLOT_LOCK_TTL", "15s")); err != nil {
		return nil, fmt.Errorf("invalid SLOT_LOCK_TTL: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required for the mongo store")
		}
	case DriverBadger:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	// The embedded store is the local development setup; anything else needs a real secret.
	if c.JWTSecret == "" && c.StoreDriver != DriverBadger {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
