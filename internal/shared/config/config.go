package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Host            string
	Port            string
	Env             string
	JSONLog         bool
	LogLevel        string
	ProjectName     string
	SlackWebhookURL string
}

// Load reads configuration from environment variables with sensible
// defaults. ProjectName and SlackWebhookURL are plain presence switches: an
// empty project name leaves the numeric project ID in rendered output, an
// empty webhook URL disables chat delivery entirely.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Host:            getEnv("HOST", "0.0.0.0"),
		Port:            getEnv("PORT", "8080"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		JSONLog:         getBoolEnv("JSON_LOG", false),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ProjectName:     os.Getenv("GCP_PROJECT"),
		SlackWebhookURL: os.Getenv("SLACK_WEBHOOK"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return def
	}
	return parsed
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	default:
		return "dev"
	}
}
