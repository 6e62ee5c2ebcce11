package config

import (
	"os"
	"strings"
	"time"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string
	RedisAddr   string

	WorkerPollInterval time.Duration

	NHNAlimTalkBaseURL string
	NHNAlimTalkAppKey  string
	NHNAlimTalkSecret  string
	NHNSenderKey       string
	NHNEmailBaseURL    string
	NHNEmailAppKey     string
	NHNEmailSecret     string
	NHNEmailSender     string

	EnableLiveBroadcast    bool
	EnableAutomationQueue  bool
	EnableSwaggerEndpoints bool
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "leadrail"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	pollInterval := 5 * time.Second
	if raw := strings.TrimSpace(os.Getenv("WORKER_POLL_INTERVAL")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			pollInterval = parsed
		}
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		RedisAddr:   strings.TrimSpace(os.Getenv("REDIS_ADDR")),

		WorkerPollInterval: pollInterval,

		NHNAlimTalkBaseURL: envDefault("NHN_ALIMTALK_BASE_URL", "https://api-alimtalk.cloud.toast.com"),
		NHNAlimTalkAppKey:  os.Getenv("NHN_ALIMTALK_APP_KEY"),
		NHNAlimTalkSecret:  os.Getenv("NHN_ALIMTALK_SECRET_KEY"),
		NHNSenderKey:       os.Getenv("NHN_ALIMTALK_SENDER_KEY"),
		NHNEmailBaseURL:    envDefault("NHN_EMAIL_BASE_URL", "https://api-mail.cloud.toast.com"),
		NHNEmailAppKey:     os.Getenv("NHN_EMAIL_APP_KEY"),
		NHNEmailSecret:     os.Getenv("NHN_EMAIL_SECRET_KEY"),
		NHNEmailSender:     os.Getenv("NHN_EMAIL_SENDER_ADDRESS"),

		EnableLiveBroadcast:    envBool("ENABLE_LIVE_BROADCAST", true),
		EnableAutomationQueue:  envBool("ENABLE_AUTOMATION_QUEUE", true),
		EnableSwaggerEndpoints: envBool("ENABLE_SWAGGER_ENDPOINTS", true),
	}, nil
}

func envDefault(name string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	return value
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
