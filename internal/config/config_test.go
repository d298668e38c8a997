package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"TELEGRAM_BOT_TOKEN", "DATABASE_PATH", "SIGNUP_WINDOW", "DAILY_TIME"} {
		t.Setenv(key, "") // register restore
		os.Unsetenv(key)
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, "./data/groupmixer.db", cfg.DatabasePath)
	require.Equal(t, 30*time.Minute, cfg.SignupWindow)
	require.Equal(t, "08:00", cfg.DailyTime)
	require.Empty(t, cfg.Token)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("DATABASE_PATH", "/tmp/x.db")
	t.Setenv("SIGNUP_WINDOW", "1m")
	t.Setenv("DAILY_TIME", "09:45")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, "123:abc", cfg.Token)
	require.Equal(t, "/tmp/x.db", cfg.DatabasePath)
	require.Equal(t, time.Minute, cfg.SignupWindow)
	require.Equal(t, "09:45", cfg.DailyTime)
}
