// Package config loads the prepdeck configuration file. Everything in it
// concerns the optional remote backend; a missing file just means the
// app runs local-only.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Remote RemoteConfig `mapstructure:"remote"`
	User   UserConfig   `mapstructure:"user"`
	Sync   SyncConfig   `mapstructure:"sync"`
}

type RemoteConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey  string `mapstructure:"api_key"`
}

type UserConfig struct {
	ID    string `mapstructure:"id"`
	Email string `mapstructure:"email" validate:"omitempty,email"`
}

type SyncConfig struct {
	IntervalSeconds int `mapstructure:"interval_seconds" validate:"omitempty,min=10"`
}

// Enabled reports whether sync is configured at all.
func (c *Config) Enabled() bool {
	return c.Remote.BaseURL != "" && c.Remote.APIKey != ""
}

// Load reads configFile, or the default locations when it is empty.
// A missing file yields the defaults, not an error.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "prepdeck"))
		}
		v.AddConfigPath("$HOME/.config/prepdeck")
	}

	v.SetDefault("sync.interval_seconds", 60)

	// Credentials can come from the environment instead of the file.
	if err := v.BindEnv("remote.base_url", "PREPDECK_REMOTE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind PREPDECK_REMOTE_URL environment variable: %w", err)
	}
	if err := v.BindEnv("remote.api_key", "PREPDECK_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind PREPDECK_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("user.id", "PREPDECK_USER_ID"); err != nil {
		return nil, fmt.Errorf("failed to bind PREPDECK_USER_ID environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
