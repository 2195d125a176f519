package config

import (
	"fmt"
	"os"
)

// Config holds every externally provided setting. It is loaded once in main
// and handed to the constructors that need it; nothing reads the environment
// after startup.
type Config struct {
	Port        string
	Development bool
	LogLevel    string

	DatabaseURL string

	JWTSecret      string
	InternalAPIKey string

	AppURL        string
	AllowedOrigin string

	OpenAIAPIKey string
	OpenAIModel  string

	StripeSecretKey     string
	StripeWebhookSecret string

	ResendAPIKey string
	EmailFrom    string

	WeeklyEmailCron string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:        getenv("PORT", "8080"),
		Development: os.Getenv("APP_ENV") != "production",
		LogLevel:    getenv("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		InternalAPIKey: os.Getenv("INTERNAL_API_KEY"),

		AppURL:        getenv("APP_URL", "http://localhost:3000"),
		AllowedOrigin: getenv("ALLOWED_ORIGIN", "http://localhost:3000"),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  getenv("OPENAI_MODEL", "gpt-4-turbo-preview"),

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		EmailFrom:    getenv("EMAIL_FROM", "MoneyMap <noreply@moneymap.app>"),

		// Monday 09:00 by default.
		WeeklyEmailCron: getenv("WEEKLY_EMAIL_CRON", "0 9 * * 1"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
