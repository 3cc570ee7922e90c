package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Server.Addr", cfg.Server.Addr, ":8080"},
		{"Server.MetricsAddr", cfg.Server.MetricsAddr, ":9090"},
		{"RefreshInterval", cfg.RefreshInterval, time.Hour},
		{"ScanStepDays", cfg.ScanStepDays, 7},
		{"LocationCatalog", cfg.LocationCatalog, "configs/locations.json"},
		{"TablesPath", cfg.TablesPath, ""},
		{"LogLevel", cfg.LogLevel, "info"},
		{"LogFormat", cfg.LogFormat, "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "server_addr",
			envKey: "ASTRO_SERVER_ADDR",
			envVal: ":9999",
			field:  func(c Config) any { return c.Server.Addr },
			want:   ":9999",
		},
		{
			name:   "scan_step_days",
			envKey: "ASTRO_SCAN_STEP_DAYS",
			envVal: "14",
			field:  func(c Config) any { return c.ScanStepDays },
			want:   14,
		},
		{
			name:   "location_catalog",
			envKey: "ASTRO_LOCATION_CATALOG",
			envVal: "/opt/astro/cities.json",
			field:  func(c Config) any { return c.LocationCatalog },
			want:   "/opt/astro/cities.json",
		},
		{
			name:   "log_level",
			envKey: "ASTRO_LOG_LEVEL",
			envVal: "debug",
			field:  func(c Config) any { return c.LogLevel },
			want:   "debug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			os.Setenv(tt.envKey, tt.envVal)
			defer os.Unsetenv(tt.envKey)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			got := tt.field(cfg)
			if got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}
