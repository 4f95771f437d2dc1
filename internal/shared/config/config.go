package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port             string
	CORSAllowOrigin  []string
	DatabaseURL      string
	Env              string
	LLMProvider      string
	OpenRouterAPIKey string
	OpenRouterURL    string
	LanguageToolURL  string
	QualityThreshold float64
	ContentPrice     float64
	AdminAPIToken    string
	EmailHost        string
	EmailPort        string
	EmailUsername    string
	EmailPassword    string
	EmailFrom        string
	QueueURL         string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:             getEnv("PORT", "8080"),
		CORSAllowOrigin:  splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:      dbURL,
		Env:              env,
		LLMProvider:      getEnv("LLM_PROVIDER", "openrouter"),
		OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterURL:    getEnv("OPENROUTER_URL", "https://openrouter.ai/api/v1/chat/completions"),
		LanguageToolURL:  getEnv("LANGUAGETOOL_URL", ""),
		QualityThreshold: getEnvFloat("QUALITY_THRESHOLD", 70.0),
		ContentPrice:     getEnvFloat("CONTENT_PRICE", 75.0),
		AdminAPIToken:    getEnv("ADMIN_API_TOKEN", ""),
		EmailHost:        getEnv("EMAIL_HOST", "smtp.gmail.com"),
		EmailPort:        getEnv("EMAIL_PORT", "587"),
		EmailUsername:    getEnv("EMAIL_USERNAME", ""),
		EmailPassword:    getEnv("EMAIL_PASSWORD", ""),
		EmailFrom:        getEnv("EMAIL_FROM", ""),
		QueueURL:         getEnv("CC_SQS_QUEUE_URL", ""),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config: %s invalid float %q, using default %v", key, raw, def)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
