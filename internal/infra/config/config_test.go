package config

import (
	"testing"

	"subscription_notifier/internal/domain/reminder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/notifier_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "America/New_York", cfg.Timezone)
	assert.Equal(t, 9, cfg.NotifyHour)
	assert.Equal(t, 0, cfg.NotifyMinute)
	assert.Equal(t, 20, cfg.ReportHour)
	assert.Equal(t, 0, cfg.ReportMinute)
	assert.Equal(t, reminder.Offsets{3, 1, 0}, cfg.ReminderOffsets)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.MessagingConfigured())
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/notifier_test")
	t.Setenv("NOTIFY_AT", "07:30")
	t.Setenv("REPORT_AT", "21:15")
	t.Setenv("REMINDER_OFFSETS", "7,3,1,0")
	t.Setenv("TIMEZONE", "America/Port-au-Prince")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "token")
	t.Setenv("TWILIO_WHATSAPP_FROM", "+14155238886")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.NotifyHour)
	assert.Equal(t, 30, cfg.NotifyMinute)
	assert.Equal(t, 21, cfg.ReportHour)
	assert.Equal(t, 15, cfg.ReportMinute)
	assert.Equal(t, reminder.Offsets{7, 3, 1, 0}, cfg.ReminderOffsets)
	assert.Equal(t, "America/Port-au-Prince", cfg.Timezone)
	assert.True(t, cfg.MessagingConfigured())
}

func TestLoadRejectsBadTriggerTimes(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/notifier_test")

	for _, bad := range []string{"25:00", "09:61", "0900", "nine"} {
		t.Setenv("NOTIFY_AT", bad)
		_, err := Load()
		assert.Error(t, err, "NOTIFY_AT=%s", bad)
	}
}

func TestLoadRejectsBadOffsets(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/notifier_test")
	t.Setenv("REMINDER_OFFSETS", "3,-1")

	_, err := Load()
	require.Error(t, err)
}
