package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/samirrijal/footprint/internal/core/domain"
)

// Config holds all application configuration.
type Config struct {
	Footprint FootprintConfig `mapstructure:"footprint"`
	Log       LogConfig       `mapstructure:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// FootprintConfig tunes the scan model. Defaults match the legacy client.
type FootprintConfig struct {
	WalkLevel              int     `mapstructure:"walk_level"`
	PathSteps              int     `mapstructure:"path_steps"`
	VisibilityRadiusMeters float64 `mapstructure:"visibility_radius_meters"`
	EarthRadiusKm          float64 `mapstructure:"earth_radius_km"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Textfile string `mapstructure:"textfile"`
}

// FootprintParams converts the footprint section to domain params.
func (c *Config) FootprintParams() domain.FootprintParams {
	return domain.FootprintParams{
		WalkLevel:              c.Footprint.WalkLevel,
		PathSteps:              c.Footprint.PathSteps,
		VisibilityRadiusMeters: c.Footprint.VisibilityRadiusMeters,
		EarthRadiusKm:          c.Footprint.EarthRadiusKm,
	}
}

// Load reads configuration from .env, an optional config file and
// environment variables, in increasing order of precedence.
func Load(service string) (*Config, error) {
	_ = godotenv.Load(".env") // OK if missing

	v := viper.New()

	// Defaults
	d := domain.DefaultFootprintParams()
	v.SetDefault("footprint.walk_level", d.WalkLevel)
	v.SetDefault("footprint.path_steps", d.PathSteps)
	v.SetDefault("footprint.visibility_radius_meters", d.VisibilityRadiusMeters)
	v.SetDefault("footprint.earth_radius_km", d.EarthRadiusKm)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.textfile", service+".prom")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// Environment variables: FOOTPRINT_FOOTPRINT_WALK_LEVEL → footprint.walk_level
	v.SetEnvPrefix("FOOTPRINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that configuration fields are sane.
func (c *Config) Validate() error {
	var errs []string

	if err := c.FootprintParams().Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be json or text, got %q", c.Log.Format))
	}
	if c.Metrics.Enabled && c.Metrics.Textfile == "" {
		errs = append(errs, "metrics.textfile is required when metrics are enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
