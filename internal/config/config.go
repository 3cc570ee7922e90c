package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds the daemon's listen addresses.
type ServerConfig struct {
	Addr        string `mapstructure:"addr"`
	MetricsAddr string `mapstructure:"metrics_addr"`
}

// Config holds all runtime configuration for the daemon. Values are
// populated from the config file, ASTRO_* env vars, and CLI flags.
type Config struct {
	Server          ServerConfig  `mapstructure:"server"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	ScanStepDays    int           `mapstructure:"scan_step_days"`
	LocationCatalog string        `mapstructure:"location_catalog"`
	TablesPath      string        `mapstructure:"tables_path"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFormat       string        `mapstructure:"log_format"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetEnvPrefix("ASTRO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.metrics_addr", ":9090")
	viper.SetDefault("refresh_interval", time.Hour)
	viper.SetDefault("scan_step_days", 7)
	viper.SetDefault("location_catalog", "configs/locations.json")
	viper.SetDefault("tables_path", "")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "text")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
