package config

import (
	"os"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GEMINI_API_KEY", "GROQ_API_KEY", "DATABASE_PATH", "GUIDE_BASE_URL",
		"SESSION_TTL_MINUTES", "DEFAULT_TRIP_DAYS", "DEFAULT_DAILY_BUDGET",
		"DEFAULT_INTERESTS", "TELEGRAM_BOT_TOKEN", "TELEGRAM_WEBHOOK_URL",
		"TELEGRAM_ALLOWED_USER_IDS", "TELEGRAM_ADMIN_ID",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Run("DefaultsWithNoEnv", func(t *testing.T) {
		clearEnv(t)

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !cfg.DemoMode() {
			t.Error("Expected DemoMode to be true without credentials")
		}
		if cfg.DatabasePath != "data/planner.db" {
			t.Errorf("Expected default database path, got '%s'", cfg.DatabasePath)
		}
		if cfg.SessionTTL != 30*time.Minute {
			t.Errorf("Expected default session TTL of 30m, got %v", cfg.SessionTTL)
		}
		if cfg.DefaultTripDays != 3 {
			t.Errorf("Expected default trip days 3, got %d", cfg.DefaultTripDays)
		}
		if cfg.DefaultDailyBudget != 4500 {
			t.Errorf("Expected default daily budget 4500, got %v", cfg.DefaultDailyBudget)
		}
	})

	t.Run("GeminiKeyDisablesDemoMode", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GEMINI_API_KEY", "gemini_key")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DemoMode() {
			t.Error("Expected DemoMode to be false with a Gemini key")
		}
	})

	t.Run("GroqKeyAloneDisablesDemoMode", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GROQ_API_KEY", "groq_key")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DemoMode() {
			t.Error("Expected DemoMode to be false with a Groq key")
		}
	})

	t.Run("ParsesOverrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SESSION_TTL_MINUTES", "5")
		t.Setenv("DEFAULT_TRIP_DAYS", "7")
		t.Setenv("DEFAULT_DAILY_BUDGET", "9000")
		t.Setenv("DEFAULT_INTERESTS", "Nature, Museums")
		t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "11, 22")
		t.Setenv("TELEGRAM_ADMIN_ID", "11")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.SessionTTL != 5*time.Minute {
			t.Errorf("Expected session TTL 5m, got %v", cfg.SessionTTL)
		}
		if cfg.DefaultTripDays != 7 {
			t.Errorf("Expected trip days 7, got %d", cfg.DefaultTripDays)
		}
		if cfg.DefaultDailyBudget != 9000 {
			t.Errorf("Expected daily budget 9000, got %v", cfg.DefaultDailyBudget)
		}
		if len(cfg.DefaultInterests) != 2 || cfg.DefaultInterests[0] != "Nature" || cfg.DefaultInterests[1] != "Museums" {
			t.Errorf("Expected interests [Nature Museums], got %v", cfg.DefaultInterests)
		}
		if len(cfg.TelegramAllowedUserIDs) != 2 || cfg.TelegramAllowedUserIDs[1] != 22 {
			t.Errorf("Expected allowed user IDs [11 22], got %v", cfg.TelegramAllowedUserIDs)
		}
		if cfg.AdminTelegramID != 11 {
			t.Errorf("Expected admin ID 11, got %d", cfg.AdminTelegramID)
		}
	})

	t.Run("RejectsMalformedTTL", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SESSION_TTL_MINUTES", "soon")

		if _, err := NewFromEnv(); err == nil {
			t.Fatal("Expected an error for a non-numeric SESSION_TTL_MINUTES, got nil")
		}
	})

	t.Run("RejectsNegativeTripDays", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DEFAULT_TRIP_DAYS", "-2")

		if _, err := NewFromEnv(); err == nil {
			t.Fatal("Expected an error for a negative DEFAULT_TRIP_DAYS, got nil")
		}
	})

	t.Run("RejectsNonNumericAllowedIDs", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "11,abc")

		if _, err := NewFromEnv(); err == nil {
			t.Fatal("Expected an error for a non-numeric allowed user ID, got nil")
		}
	})
}
