package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Refunds  RefundsConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// RefundsConfig holds refund matching knobs.
type RefundsConfig struct {
	DaysWindow      int     `mapstructure:"days_window"`
	AmountTolerance float64 `mapstructure:"amount_tolerance"`
	MatchThreshold  float64 `mapstructure:"match_threshold"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DateFormat     string `mapstructure:"date_format"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

// Load reads configuration from file and env. Env var overrides use prefix BANKSIFT_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "banksift", "banksift.db"))
	v.SetDefault("refunds.days_window", 90)
	v.SetDefault("refunds.amount_tolerance", 0.05)
	v.SetDefault("refunds.match_threshold", 0.4)
	v.SetDefault("ui.date_format", "2006-01-02")
	v.SetDefault("ui.currency_symbol", "$")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("BANKSIFT_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "banksift"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("BANKSIFT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("BANKSIFT_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "banksift", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("refunds.days_window", cfg.Refunds.DaysWindow)
	v.Set("refunds.amount_tolerance", cfg.Refunds.AmountTolerance)
	v.Set("refunds.match_threshold", cfg.Refunds.MatchThreshold)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
