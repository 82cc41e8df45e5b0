package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"thoth/internal/engine"
	"thoth/internal/storage"
)

type Config struct {
	DBPath      string
	GraceWindow time.Duration
	Owner       string
}

// Load reads ~/.thoth.yaml (if present) and THOTH_* env vars.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".thoth")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.SetEnvPrefix("THOTH")
	v.AutomaticEnv()

	defaultPath, err := storage.DefaultDBPath()
	if err != nil {
		return nil, err
	}
	v.SetDefault("db_path", defaultPath)
	v.SetDefault("grace_window", engine.DefaultGraceWindow.String())
	v.SetDefault("owner", "main")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	grace, err := time.ParseDuration(v.GetString("grace_window"))
	if err != nil {
		return nil, fmt.Errorf("invalid grace_window: %w", err)
	}

	return &Config{
		DBPath:      v.GetString("db_path"),
		GraceWindow: grace,
		Owner:       v.GetString("owner"),
	}, nil
}
