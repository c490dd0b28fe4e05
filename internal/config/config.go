package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment. A .env
// file in the working directory is loaded first when present.
type Config struct {
	BackendBaseURL string
	ListenAddr     string

	ProgressTick    time.Duration
	ProgressCeiling float64
	ProgressHold    time.Duration
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return value, nil
}

func Load() (*Config, error) {
	// The .env file is a convenience for local runs; a real deployment
	// sets the environment directly.
	_ = godotenv.Load()

	backendBaseURL := os.Getenv("BACKEND_BASE_URL")
	if backendBaseURL == "" {
		return nil, errors.New("BACKEND_BASE_URL environment variable is required but not set")
	}

	tickMS, err := getEnvInt("PROGRESS_TICK_MS", 400)
	if err != nil {
		return nil, err
	}
	ceiling, err := getEnvInt("PROGRESS_CEILING", 90)
	if err != nil {
		return nil, err
	}
	holdMS, err := getEnvInt("PROGRESS_HOLD_MS", 600)
	if err != nil {
		return nil, err
	}
	if ceiling <= 0 || ceiling > 100 {
		return nil, fmt.Errorf("PROGRESS_CEILING must be in (0, 100], got %d", ceiling)
	}

	return &Config{
		BackendBaseURL:  backendBaseURL,
		ListenAddr:      getEnvOrDefault("LISTEN_ADDR", ":8080"),
		ProgressTick:    time.Duration(tickMS) * time.Millisecond,
		ProgressCeiling: float64(ceiling),
		ProgressHold:    time.Duration(holdMS) * time.Millisecond,
	}, nil
}
