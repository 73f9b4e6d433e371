// Package config loads runtime settings from WORKBOARD_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	DataDir     string // sqlite/file backends live here
	Storage     string // sqlite (default) | file | redis | memory
	RedisURL    string
	RedisPrefix string

	ListenAddr      string
	ShutdownTimeout time.Duration
	Production      bool // marks the session cookie Secure

	CookieName    string
	SessionSecret string // empty: generated once and kept in the backend
	SessionTTL    time.Duration
	BcryptCost    int

	SaveDebounce time.Duration

	LogFormat string // "text" (default) or "json"
	LogLevel  string // "debug", "info" (default), "warn", "error"
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	cfg := Config{
		Storage:         "sqlite",
		RedisURL:        "redis://localhost:6379/0",
		RedisPrefix:     "workboard:",
		ListenAddr:      ":8080",
		ShutdownTimeout: 10 * time.Second,
		CookieName:      "clickup_session",
		SessionTTL:      7 * 24 * time.Hour,
		BcryptCost:      12,
		SaveDebounce:    250 * time.Millisecond,
		LogFormat:       "text",
		LogLevel:        "info",
	}
	if dir, err := DataDir(); err == nil {
		cfg.DataDir = dir
	}

	if v := os.Getenv("WORKBOARD_STORAGE"); v != "" {
		cfg.Storage = strings.ToLower(v)
	}
	if v := os.Getenv("WORKBOARD_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("WORKBOARD_REDIS_PREFIX"); v != "" {
		cfg.RedisPrefix = v
	}
	if v := os.Getenv("WORKBOARD_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("WORKBOARD_SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ShutdownTimeout = d
		}
	}
	if v := os.Getenv("WORKBOARD_ENV"); strings.EqualFold(v, "production") {
		cfg.Production = true
	}
	if v := os.Getenv("WORKBOARD_COOKIE_NAME"); v != "" {
		cfg.CookieName = v
	}
	if v := os.Getenv("WORKBOARD_SESSION_SECRET"); v != "" {
		cfg.SessionSecret = v
	}
	if v := os.Getenv("WORKBOARD_SESSION_TTL"); v != "" {
		if d := parseDaysDuration(v); d > 0 {
			cfg.SessionTTL = d
		}
	}
	if v := os.Getenv("WORKBOARD_BCRYPT_COST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 4 && n <= 31 {
			cfg.BcryptCost = n
		}
	}
	if v := os.Getenv("WORKBOARD_SAVE_DEBOUNCE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SaveDebounce = d
		}
	}
	if v := os.Getenv("WORKBOARD_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("WORKBOARD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return cfg
}

// DataDir is ~/.workboard unless WORKBOARD_CONFIG_DIR overrides it.
func DataDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("WORKBOARD_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".workboard"), nil
}

// parseDaysDuration parses "7d" style values, falling back to time.ParseDuration.
func parseDaysDuration(s string) time.Duration {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "d") {
		if n, err := strconv.Atoi(strings.TrimSuffix(s, "d")); err == nil && n > 0 {
			return time.Duration(n) * 24 * time.Hour
		}
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return 0
}
