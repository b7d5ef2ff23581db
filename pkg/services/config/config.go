package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// TATThresholdDays is the default overdue threshold; analytics callers
	// may override it per request.
	TATThresholdDays int    `mapstructure:"tat_threshold_days"`
	DirectoryPath    string `mapstructure:"directory_path" validate:"required"`
	SeedPath         string `mapstructure:"seed_path"`
	// Strict makes the lifecycle engines surface rejected transitions as
	// errors instead of swallowing them.
	Strict bool `mapstructure:"strict"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("addr", ":8080")
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("tat_threshold_days", 5)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
