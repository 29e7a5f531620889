package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		envPort, envPollInterval, envSeasonsFile, envSports,
		envHistoryDB, envHistoryDays, envHistoryLimit,
		envWebhookURL, envSlackWebhook, envAdminToken,
		envLogLevel, envLogFormat, envMetricsPort, envMetricsOn,
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != defaultPort {
		t.Fatalf("port = %q, want %q", cfg.Port, defaultPort)
	}
	if cfg.PollInterval != time.Hour {
		t.Fatalf("poll interval = %v, want 1h", cfg.PollInterval)
	}
	if cfg.SeasonsFile != defaultSeasonsFile {
		t.Fatalf("seasons file = %q", cfg.SeasonsFile)
	}
	if cfg.Sports != nil {
		t.Fatalf("sports = %v, want nil (track everything)", cfg.Sports)
	}
	if cfg.History.RetentionDays != defaultHistoryDays {
		t.Fatalf("retention = %d", cfg.History.RetentionDays)
	}
	if cfg.History.MemoryLimit != defaultHistoryLimit {
		t.Fatalf("memory limit = %d", cfg.History.MemoryLimit)
	}
	if !cfg.Metrics.Enabled {
		t.Fatalf("metrics should default on")
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Fatalf("log config = %+v", cfg.Log)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envPort, "8080")
	t.Setenv(envPollInterval, "15m")
	t.Setenv(envSports, "wnba,nba")
	t.Setenv(envHistoryDays, "30")
	t.Setenv(envWebhookURL, "https://example.com/hook")
	t.Setenv(envAdminToken, "secret")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.PollInterval != 15*time.Minute {
		t.Fatalf("poll interval = %v", cfg.PollInterval)
	}
	if len(cfg.Sports) != 2 || cfg.Sports[0] != "wnba" || cfg.Sports[1] != "nba" {
		t.Fatalf("sports = %v", cfg.Sports)
	}
	if cfg.History.RetentionDays != 30 {
		t.Fatalf("retention = %d", cfg.History.RetentionDays)
	}
	if cfg.Alerts.WebhookURL != "https://example.com/hook" {
		t.Fatalf("webhook = %q", cfg.Alerts.WebhookURL)
	}
	if cfg.AdminToken != "secret" {
		t.Fatalf("admin token = %q", cfg.AdminToken)
	}
}
