package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the configuration for the application.
//
// No key is mandatory: a process without any generation credential runs in
// demo mode and serves the canned itinerary instead of calling out.
type Config struct {
	GeminiAPIKey string
	GroqAPIKey   string

	DatabasePath string
	GuideBaseURL string
	SessionTTL   time.Duration

	// Defaults applied when a front end leaves a field unset.
	DefaultTripDays    int
	DefaultDailyBudget float64
	DefaultInterests   []string

	// Telegram Config (required for the bot binary only)
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
	AdminTelegramID        int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GroqAPIKey:         os.Getenv("GROQ_API_KEY"),
		DatabasePath:       os.Getenv("DATABASE_PATH"),
		GuideBaseURL:       os.Getenv("GUIDE_BASE_URL"),
		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL: os.Getenv("TELEGRAM_WEBHOOK_URL"),
		SessionTTL:         30 * time.Minute,
		DefaultTripDays:    3,
		DefaultDailyBudget: 4500,
		DefaultInterests:   []string{"Local Cuisine", "Historical Sites"},
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "data/planner.db"
	}

	if v := os.Getenv("SESSION_TTL_MINUTES"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes <= 0 {
			return nil, fmt.Errorf("SESSION_TTL_MINUTES must be a positive integer, got %q", v)
		}
		cfg.SessionTTL = time.Duration(minutes) * time.Minute
	}

	if v := os.Getenv("DEFAULT_TRIP_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days <= 0 {
			return nil, fmt.Errorf("DEFAULT_TRIP_DAYS must be a positive integer, got %q", v)
		}
		cfg.DefaultTripDays = days
	}

	if v := os.Getenv("DEFAULT_DAILY_BUDGET"); v != "" {
		budget, err := strconv.ParseFloat(v, 64)
		if err != nil || budget <= 0 {
			return nil, fmt.Errorf("DEFAULT_DAILY_BUDGET must be a positive number, got %q", v)
		}
		cfg.DefaultDailyBudget = budget
	}

	if v := os.Getenv("DEFAULT_INTERESTS"); v != "" {
		cfg.DefaultInterests = splitTrimmed(v)
	}

	if v := os.Getenv("TELEGRAM_ALLOWED_USER_IDS"); v != "" {
		for _, part := range splitTrimmed(v) {
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("TELEGRAM_ALLOWED_USER_IDS contains a non-numeric entry %q", part)
			}
			cfg.TelegramAllowedUserIDs = append(cfg.TelegramAllowedUserIDs, id)
		}
	}

	if v := os.Getenv("TELEGRAM_ADMIN_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_ADMIN_ID must be numeric, got %q", v)
		}
		cfg.AdminTelegramID = id
	}

	return cfg, nil
}

// DemoMode reports whether no generation credential is configured.
// In demo mode every generation action serves the canned itinerary and
// no outbound service call is attempted.
func (c *Config) DemoMode() bool {
	return c.GeminiAPIKey == "" && c.GroqAPIKey == ""
}

func splitTrimmed(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
