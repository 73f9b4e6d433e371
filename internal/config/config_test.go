package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("WORKBOARD_CONFIG_DIR", "/tmp/wb-test")
	cfg := Load()
	if cfg.DataDir != "/tmp/wb-test" {
		t.Fatalf("expected data dir override, got %q", cfg.DataDir)
	}
	if cfg.Storage != "sqlite" || cfg.CookieName != "clickup_session" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.SessionTTL != 7*24*time.Hour {
		t.Fatalf("expected 7 day session, got %v", cfg.SessionTTL)
	}
	if cfg.Production {
		t.Fatalf("expected non-production by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("WORKBOARD_STORAGE", "Redis")
	t.Setenv("WORKBOARD_ENV", "production")
	t.Setenv("WORKBOARD_SESSION_TTL", "2d")
	t.Setenv("WORKBOARD_BCRYPT_COST", "99")
	t.Setenv("WORKBOARD_SAVE_DEBOUNCE", "1s")
	cfg := Load()
	if cfg.Storage != "redis" {
		t.Fatalf("expected redis, got %q", cfg.Storage)
	}
	if !cfg.Production {
		t.Fatalf("expected production")
	}
	if cfg.SessionTTL != 48*time.Hour {
		t.Fatalf("expected 48h, got %v", cfg.SessionTTL)
	}
	if cfg.BcryptCost != 12 {
		t.Fatalf("expected out-of-range cost ignored, got %d", cfg.BcryptCost)
	}
	if cfg.SaveDebounce != time.Second {
		t.Fatalf("expected 1s debounce, got %v", cfg.SaveDebounce)
	}
}

func TestParseDaysDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"7d":  7 * 24 * time.Hour,
		"90m": 90 * time.Minute,
		"x":   0,
		"0d":  0,
	}
	for in, want := range cases {
		if got := parseDaysDuration(in); got != want {
			t.Fatalf("parseDaysDuration(%q): expected %v, got %v", in, want, got)
		}
	}
}
