package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Token        string        `envconfig:"TELEGRAM_BOT_TOKEN"`
	DatabasePath string        `envconfig:"DATABASE_PATH" default:"./data/groupmixer.db"`
	SignupWindow time.Duration `envconfig:"SIGNUP_WINDOW" default:"30m"`
	DailyTime    string        `envconfig:"DAILY_TIME" default:"08:00"`
}

// FromEnv reads configuration from the environment. Callers load a .env
// file first when they want one.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
