package config

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

func envFrom(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(envFrom(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8000" {
		t.Errorf("expected default addr :8000, got %q", cfg.Addr)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:5173" {
		t.Errorf("unexpected default origins %v", cfg.AllowedOrigins)
	}
	if cfg.DataDir != "" {
		t.Errorf("expected in-memory results by default, got %q", cfg.DataDir)
	}
	if cfg.LogLevel != log.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
	if cfg.IdleTimeout != 30*time.Minute {
		t.Errorf("expected 30m idle timeout, got %v", cfg.IdleTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := load(envFrom(map[string]string{
		"CHESSRELAY_ADDR":            ":9000",
		"CHESSRELAY_ALLOWED_ORIGINS": "http://a.test, http://b.test,",
		"CHESSRELAY_DATA_DIR":        "/tmp/results",
		"CHESSRELAY_LOG_LEVEL":       "DEBUG",
		"CHESSRELAY_IDLE_TIMEOUT":    "90s",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("addr: got %q", cfg.Addr)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("origins: got %v", cfg.AllowedOrigins)
	}
	if cfg.DataDir != "/tmp/results" {
		t.Errorf("data dir: got %q", cfg.DataDir)
	}
	if cfg.LogLevel != log.LevelDebug {
		t.Errorf("log level: got %v", cfg.LogLevel)
	}
	if cfg.IdleTimeout != 90*time.Second {
		t.Errorf("idle timeout: got %v", cfg.IdleTimeout)
	}
}

func TestLoadRejectsUnknownLevel(t *testing.T) {
	if _, err := load(envFrom(map[string]string{"CHESSRELAY_LOG_LEVEL": "loud"})); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestLoadRejectsBadIdleTimeout(t *testing.T) {
	for _, v := range []string{"soon", "-5m", "0s"} {
		if _, err := load(envFrom(map[string]string{"CHESSRELAY_IDLE_TIMEOUT": v})); err == nil {
			t.Errorf("expected error for idle timeout %q", v)
		}
	}
}
