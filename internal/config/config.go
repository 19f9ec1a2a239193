package config

import (
	"fmt"
	"time"

	"ble-locator.klederson.com/internal/locate"
	"github.com/spf13/viper"
)

const (
	AppName    = "BLE-LOCATOR"
	AppVersion = "1.0"

	// AnchorCount is the number of reference positions the solver needs.
	AnchorCount = 3
)

// Beacon holds the ranging model and discovery filter settings.
type Beacon struct {
	Filter        string  `mapstructure:"filter"`         // name substring that marks a device as a beacon
	MeasuredPower float64 `mapstructure:"measured_power"` // RSSI at 1 meter (dBm)
	PathLossExp   float64 `mapstructure:"path_loss_exp"`  // path loss exponent (N)
}

// Report holds the collector settings.
type Report struct {
	URL      string        `mapstructure:"url"`
	Interval time.Duration `mapstructure:"interval"`
}

// Config is the static configuration for a locator session. Never mutated at
// runtime.
type Config struct {
	Beacon  Beacon         `mapstructure:"beacon"`
	Anchors []locate.Point `mapstructure:"anchors"` // one per discovery slot
	Report  Report         `mapstructure:"report"`
	LogFile string         `mapstructure:"log_file"` // debug log path, empty disables logging
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("beacon.filter", "Beacon")
	v.SetDefault("beacon.measured_power", -59.0)
	v.SetDefault("beacon.path_loss_exp", 2.5)
	v.SetDefault("anchors", []map[string]float64{
		{"x": 0, "y": 0},
		{"x": 5, "y": 0},
		{"x": 0, "y": 5},
	})
	v.SetDefault("report.url", "http://localhost:8080/position")
	v.SetDefault("report.interval", 10*time.Second)
}

// Load reads configuration from the given YAML file, or defaults when path
// is empty.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the invariants the pipeline depends on.
func (c Config) Validate() error {
	if len(c.Anchors) != AnchorCount {
		return fmt.Errorf("config: need exactly %d anchors, got %d", AnchorCount, len(c.Anchors))
	}
	if c.Beacon.PathLossExp <= 0 {
		return fmt.Errorf("config: path loss exponent must be positive, got %v", c.Beacon.PathLossExp)
	}
	if c.Report.Interval <= 0 {
		return fmt.Errorf("config: report interval must be positive, got %v", c.Report.Interval)
	}
	if c.Report.URL == "" {
		return fmt.Errorf("config: report url must not be empty")
	}
	return nil
}
