package config

import (
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		DatabaseURL:        "postgres://localhost/timeclock",
		Timezone:           "UTC",
		MaxBodyBytes:       1048576,
		MaxUploadBytes:     5 * 1024 * 1024,
		RateLimitPerMinute: 60,
		LockTTL:            10 * time.Second,
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsUnknownTimezone(t *testing.T) {
	cfg := validConfig()
	cfg.Timezone = "Mars/Olympus_Mons"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected timezone error")
	}
}

func TestValidateRequiresDatabaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseURL = " "
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected database url error")
	}
}

func TestLocationLocal(t *testing.T) {
	cfg := validConfig()
	cfg.Timezone = "Local"
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc != time.Local {
		t.Fatalf("expected time.Local, got %v", loc)
	}
}

func TestLoadReadsEnv(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("AUTO_CHECKOUT_INTERVAL", "30s")
	t.Setenv("RUN_SEED", "false")

	cfg := Load()
	if cfg.Addr != ":9090" {
		t.Fatalf("expected addr :9090, got %s", cfg.Addr)
	}
	if cfg.AutoCheckoutInterval != 30*time.Second {
		t.Fatalf("expected 30s interval, got %s", cfg.AutoCheckoutInterval)
	}
	if cfg.RunSeed {
		t.Fatal("expected RUN_SEED=false to disable seeding")
	}
}
