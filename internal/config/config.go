// Package config reads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

const envPrefix = "CHESSRELAY_"

type Config struct {
	Addr           string
	AllowedOrigins []string
	DataDir        string // empty keeps finished-game results in memory
	LogLevel       log.Level
	IdleTimeout    time.Duration // unobserved games are dropped after this
}

func Default() Config {
	return Config{
		Addr:           ":8000",
		AllowedOrigins: []string{"http://localhost:5173"},
		LogLevel:       log.LevelInfo,
		IdleTimeout:    30 * time.Minute,
	}
}

// Load starts from Default and applies any CHESSRELAY_* variables.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(envPrefix + "ADDR"); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup(envPrefix + "ALLOWED_ORIGINS"); ok && v != "" {
		origins := []string{}
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.AllowedOrigins = origins
	}
	if v, ok := lookup(envPrefix + "DATA_DIR"); ok {
		cfg.DataDir = v
	}
	if v, ok := lookup(envPrefix + "LOG_LEVEL"); ok && v != "" {
		level, err := parseLevel(v)
		if err != nil {
			return Config{}, err
		}
		cfg.LogLevel = level
	}
	if v, ok := lookup(envPrefix + "IDLE_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid idle timeout %q", v)
		}
		cfg.IdleTimeout = d
	}
	return cfg, nil
}

func parseLevel(s string) (log.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
