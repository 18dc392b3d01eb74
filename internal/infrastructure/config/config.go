package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	DatabasePath string
	CatalogDir   string // empty = embedded catalogs

	// Assessment
	PairRebuilds     int
	AttemptCacheSize int
	PersistWorkers   int
}

// Load reads the environment, after a .env file if one exists, and exits
// the process when a required variable is missing or malformed.
func Load() *Config {
	_ = godotenv.Load()
	cfg, err := FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// FromEnv reads the configuration from the current environment only.
func FromEnv() (*Config, error) {
	serverAddress, err := requireEnv("SERVER_ADDRESS")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := requireDuration("SHUTDOWN_TIMEOUT")
	if err != nil {
		return nil, err
	}
	pairRebuilds, err := getenvInt("PAIR_REBUILDS", 10)
	if err != nil {
		return nil, err
	}
	cacheSize, err := getenvInt("ATTEMPT_CACHE_SIZE", 512)
	if err != nil {
		return nil, err
	}
	workers, err := getenvInt("PERSIST_WORKERS", 2)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerAddress:    serverAddress,
		ShutdownTimeout:  shutdownTimeout,
		DatabasePath:     getenvDefault("DATABASE_PATH", "strengths.db"),
		CatalogDir:       os.Getenv("CATALOG_DIR"),
		PairRebuilds:     pairRebuilds,
		AttemptCacheSize: cacheSize,
		PersistWorkers:   workers,
	}, nil
}

func requireEnv(k string) (string, error) {
	v := os.Getenv(k)
	if v == "" {
		return "", fmt.Errorf("required environment variable %s is not set", k)
	}
	return v, nil
}

func requireDuration(k string) (time.Duration, error) {
	v, err := requireEnv(k)
	if err != nil {
		return 0, err
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not a valid duration: %w", k, v, err)
	}
	return d, nil
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getenvInt(k string, fallback int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s=%q is not a non-negative integer", k, v)
	}
	return n, nil
}
