package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_PATH", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SENTRY_DSN", "")
	t.Setenv("ENV", "")
	t.Setenv("ENTRY_NAME", "")
	t.Setenv("ENTRY_CODE", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("SHUTDOWN_GRACE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.DBPath != defaultDBPath {
		t.Errorf("expected default DB path %q, got %q", defaultDBPath, cfg.DBPath)
	}

	if cfg.ServerPort != defaultServerPort {
		t.Errorf("expected default server port %d, got %d", defaultServerPort, cfg.ServerPort)
	}

	if cfg.LogLevel != defaultLogLevel {
		t.Errorf("expected default log level %q, got %q", defaultLogLevel, cfg.LogLevel)
	}

	if cfg.Environment != defaultEnvironment {
		t.Errorf("expected default environment %q, got %q", defaultEnvironment, cfg.Environment)
	}

	if cfg.ShutdownGrace != defaultShutdownGrace {
		t.Errorf("expected shutdown grace %s, got %s", defaultShutdownGrace, cfg.ShutdownGrace)
	}

	if cfg.CacheTTL != defaultCacheTTL {
		t.Errorf("expected cache TTL %s, got %s", defaultCacheTTL, cfg.CacheTTL)
	}

	if cfg.EntryName != defaultEntryName || cfg.EntryCode != defaultEntryCode {
		t.Errorf("expected default entry credentials, got %q/%q", cfg.EntryName, cfg.EntryCode)
	}

	if cfg.SentryDSN != "" {
		t.Errorf("expected empty Sentry DSN, got %q", cfg.SentryDSN)
	}

	if cfg.RateLimit.Burst != defaultRateBurst {
		t.Errorf("expected default rate limit burst %d, got %d", defaultRateBurst, cfg.RateLimit.Burst)
	}
}

func TestLoadWithExplicitValues(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/mansion-test.db")
	t.Setenv("SERVER_PORT", "9005")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SENTRY_DSN", "https://example.invalid/42")
	t.Setenv("ENV", "production")
	t.Setenv("ENTRY_NAME", "butler")
	t.Setenv("ENTRY_CODE", "pantry-key")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("SHUTDOWN_GRACE", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.DBPath != "/tmp/mansion-test.db" {
		t.Errorf("unexpected DB path %q", cfg.DBPath)
	}
	if cfg.ServerPort != 9005 {
		t.Errorf("unexpected server port %d", cfg.ServerPort)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("unexpected log level %q", cfg.LogLevel)
	}
	if cfg.SentryDSN != "https://example.invalid/42" {
		t.Errorf("unexpected sentry DSN %q", cfg.SentryDSN)
	}
	if cfg.Environment != "production" {
		t.Errorf("unexpected environment %q", cfg.Environment)
	}
	if cfg.EntryName != "butler" || cfg.EntryCode != "pantry-key" {
		t.Errorf("unexpected entry credentials %q/%q", cfg.EntryName, cfg.EntryCode)
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Errorf("unexpected cache TTL %s", cfg.CacheTTL)
	}
	if cfg.ShutdownGrace != 3*time.Second {
		t.Errorf("unexpected shutdown grace %s", cfg.ShutdownGrace)
	}
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Fatalf("expected SERVER_PORT error, got %v", err)
	}
}

func TestLoadRejectsInvalidDurations(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("CACHE_TTL", "ninety seconds")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "CACHE_TTL") {
		t.Fatalf("expected CACHE_TTL error, got %v", err)
	}

	t.Setenv("CACHE_TTL", "")
	t.Setenv("SHUTDOWN_GRACE", "soon")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "SHUTDOWN_GRACE") {
		t.Fatalf("expected SHUTDOWN_GRACE error, got %v", err)
	}
}
