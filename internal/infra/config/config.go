package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"subscription_notifier/internal/domain/reminder"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	DatabaseURL string

	// Twilio WhatsApp credentials. All three must be present for outbound
	// messaging; otherwise the provider is disabled and runs are no-ops.
	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioWhatsAppFrom string

	// RedisURL enables the cross-instance send dedup guard when set.
	RedisURL string

	SetupToken string
	Port       string
	DataDir    string

	// Trigger configuration for the daily scheduler.
	Timezone        string // IANA name, governs trigger evaluation
	NotifyHour      int
	NotifyMinute    int
	ReportHour      int
	ReportMinute    int
	ReminderOffsets reminder.Offsets

	LogLevel    string
	Environment string
}

// MessagingConfigured reports whether all Twilio credentials are present.
func (c *AppConfig) MessagingConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioWhatsAppFrom != ""
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.TwilioAccountSID = os.Getenv("TWILIO_ACCOUNT_SID")
	cfg.TwilioAuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
	cfg.TwilioWhatsAppFrom = os.Getenv("TWILIO_WHATSAPP_FROM")

	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.SetupToken = os.Getenv("SETUP_TOKEN")

	cfg.Port = os.Getenv("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.DataDir = os.Getenv("DATA_DIR")
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}

	cfg.Timezone = os.Getenv("TIMEZONE")
	if cfg.Timezone == "" {
		cfg.Timezone = "America/New_York"
	}

	notifyAt := os.Getenv("NOTIFY_AT")
	if notifyAt == "" {
		notifyAt = "09:00" // Default: reminders at 9 AM
	}
	cfg.NotifyHour, cfg.NotifyMinute, err = parseHourMinute(notifyAt)
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFY_AT: %w", err)
	}

	reportAt := os.Getenv("REPORT_AT")
	if reportAt == "" {
		reportAt = "20:00" // Default: daily report at 8 PM
	}
	cfg.ReportHour, cfg.ReportMinute, err = parseHourMinute(reportAt)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_AT: %w", err)
	}

	offsetsStr := os.Getenv("REMINDER_OFFSETS")
	if offsetsStr == "" {
		cfg.ReminderOffsets = reminder.DefaultOffsets()
	} else {
		cfg.ReminderOffsets, err = reminder.ParseOffsets(offsetsStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REMINDER_OFFSETS: %w", err)
		}
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	return cfg, nil
}

// parseHourMinute parses a wall-clock time in "HH:MM" form.
func parseHourMinute(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time %q out of range", s)
	}
	return hour, minute, nil
}
