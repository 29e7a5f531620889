package config

// Config holds runtime configuration for the server.
type Config struct {
	Port         string
	PollInterval Duration
	SeasonsFile  string
	Sports       []string
	AdminToken   string
	History      HistoryConfig
	Alerts       AlertConfig
	Log          LogConfig
	Metrics      MetricsConfig
}

// HistoryConfig controls transition history persistence.
type HistoryConfig struct {
	Path          string
	RetentionDays int
	MemoryLimit   int
}

// AlertConfig holds outbound notification targets. Empty values disable the
// corresponding sink.
type AlertConfig struct {
	WebhookURL      string
	SlackWebhookURL string
}

// LogConfig controls log output.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:         envOrDefault(envPort, defaultPort),
		PollInterval: durationEnvOrDefault(envPollInterval, defaultPollInterval),
		SeasonsFile:  envOrDefault(envSeasonsFile, defaultSeasonsFile),
		Sports:       listEnvOrDefault(envSports, nil),
		AdminToken:   envOrDefault(envAdminToken, ""),
		History: HistoryConfig{
			Path:          envOrDefault(envHistoryDB, defaultHistoryDB),
			RetentionDays: intEnvOrDefault(envHistoryDays, defaultHistoryDays),
			MemoryLimit:   intEnvOrDefault(envHistoryLimit, defaultHistoryLimit),
		},
		Alerts: AlertConfig{
			WebhookURL:      envOrDefault(envWebhookURL, ""),
			SlackWebhookURL: envOrDefault(envSlackWebhook, ""),
		},
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		Metrics: loadMetrics(),
	}
}
