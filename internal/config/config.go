package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds everything the service reads from the environment. It is
// loaded once at startup; a missing or malformed value blocks startup with an
// actionable error instead of failing later on first use.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration

	OpenAIKey   string
	OpenAIModel string

	RedisAddr     string
	RedisPassword string

	LogLevel string
}

const (
	defaultPort   = "8080"
	defaultModel  = "gpt-4o-mini"
	defaultJWTTTL = 24 * time.Hour

	placeholderKey = "your-openai-api-key"
	minKeyLength   = 20
)

// Load reads and validates the environment. OpenAI and Redis settings are
// optional: the summary endpoint and the dedup fast path degrade when absent,
// but a present-and-malformed OpenAI key is rejected up front.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          envOrDefault("PORT", defaultPort),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTTTL:        defaultJWTTTL,
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   envOrDefault("OPENAI_MODEL", defaultModel),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		LogLevel:      envOrDefault("LOG_LEVEL", "info"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is empty: set a postgres:// DSN or a sqlite file path")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is empty: sessions cannot be signed")
	}
	if cfg.OpenAIKey != "" {
		if report := DiagnoseOpenAIKey(cfg.OpenAIKey); !report.Valid {
			return nil, fmt.Errorf("OPENAI_API_KEY is invalid: %s", strings.Join(report.Problems, "; "))
		}
	}

	return cfg, nil
}

// KeyReport is the structured diagnostic produced for a misconfigured LLM
// key. Problems are empty when the key passes every check.
type KeyReport struct {
	Valid    bool     `json:"valid"`
	Present  bool     `json:"present"`
	Problems []string `json:"problems,omitempty"`
}

// DiagnoseOpenAIKey validates the key shape without calling the API.
func DiagnoseOpenAIKey(key string) KeyReport {
	report := KeyReport{Present: key != ""}
	if key == "" {
		report.Problems = append(report.Problems, "key is not set")
		return report
	}
	if key == placeholderKey || strings.Contains(key, "your-") {
		report.Problems = append(report.Problems, "key is a placeholder value")
	}
	if !strings.HasPrefix(key, "sk-") {
		report.Problems = append(report.Problems, "key does not start with sk-")
	}
	if len(key) < minKeyLength {
		report.Problems = append(report.Problems, fmt.Sprintf("key is shorter than %d characters", minKeyLength))
	}
	report.Valid = len(report.Problems) == 0
	return report
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
