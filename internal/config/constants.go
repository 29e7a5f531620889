package config

import "time"

const (
	envPort         = "PORT"
	envPollInterval = "POLL_INTERVAL"
	envSeasonsFile  = "SEASONS_FILE"
	envSports       = "MONITOR_SPORTS"
	envHistoryDB    = "HISTORY_DB"
	envHistoryDays  = "HISTORY_RETENTION_DAYS"
	envHistoryLimit = "HISTORY_MEMORY_LIMIT"
	envWebhookURL   = "WEBHOOK_URL"
	envSlackWebhook = "SLACK_WEBHOOK_URL"
	envAdminToken   = "ADMIN_TOKEN"
	envLogLevel     = "LOG_LEVEL"
	envLogFormat    = "LOG_FORMAT"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort        = "4000"
	defaultSeasonsFile = "seasons_config.json"
	defaultHistoryDB   = "season_history.db"
	// Phase boundaries move at day granularity, so hourly checks are plenty.
	defaultPollInterval = 1 * Duration(time.Hour)
	defaultHistoryDays  = 90
	defaultHistoryLimit = 1000
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
	defaultMetricsPort  = "9090"
	defaultServiceName  = "season-service"
)
