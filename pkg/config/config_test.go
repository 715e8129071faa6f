package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/zapstore/playstats/pkg/stats"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PLAYSTATS_DIR", dir)
	t.Setenv("PLAYSTATS_DRIVER", stats.DriverPureGo)
	t.Setenv("PLAYSTATS_QUERY_TIMEOUT", "2s")
	t.Setenv("PLAYSTATS_TOP_N", "25")
	t.Setenv("PLAYSTATS_LOG_LEVEL", "debug")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if c.Stats.Dir != dir {
		t.Errorf("expected dir %s, got %s", dir, c.Stats.Dir)
	}
	if c.Stats.Driver != stats.DriverPureGo {
		t.Errorf("expected driver %s, got %s", stats.DriverPureGo, c.Stats.Driver)
	}
	if c.Stats.QueryTimeout != 2*time.Second {
		t.Errorf("expected query timeout 2s, got %s", c.Stats.QueryTimeout)
	}
	if c.Stats.BusyTimeout != 5*time.Second {
		t.Errorf("expected default busy timeout 5s, got %s", c.Stats.BusyTimeout)
	}
	if c.Stats.TopN != 25 {
		t.Errorf("expected top n 25, got %d", c.Stats.TopN)
	}
	if c.LogLevel != slog.LevelDebug {
		t.Errorf("expected log level debug, got %s", c.LogLevel)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"PLAYSTATS_DRIVER":        "postgres",
		"PLAYSTATS_TOP_N":         "0",
		"PLAYSTATS_QUERY_TIMEOUT": "not a duration",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv("PLAYSTATS_DIR", t.TempDir())
			t.Setenv(key, value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected an error for %s=%s, got nil", key, value)
			}
		})
	}
}
