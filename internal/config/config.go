// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and AURA_ environment variables on top.
// - Validate reports problems wrapped in ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/okian/aura/internal/domain/aura"
)

// Weather sources.
const (
	SourceOpenMeteo = "openmeteo"
	SourceSynthetic = "synthetic"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// WorkerCount sets the number of render workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory render queue.
	QueueSize int `koanf:"queue_size"`

	// MaxBatchSize caps POST /aura/batch items.
	MaxBatchSize int `koanf:"max_batch_size"`

	// DefaultMode is used when a request names no mode.
	DefaultMode string `koanf:"default_mode"`

	// RandomSeed seeds render seeds. Zero seeds from the clock.
	RandomSeed int64 `koanf:"random_seed"`

	// Source selects the weather source: openmeteo or synthetic.
	Source string `koanf:"source"`

	// Open-Meteo endpoints. Empty keeps the public defaults.
	OpenMeteoForecastURL   string `koanf:"openmeteo_forecast_url"`
	OpenMeteoAirQualityURL string `koanf:"openmeteo_air_quality_url"`
	OpenMeteoElevationURL  string `koanf:"openmeteo_elevation_url"`
	OpenMeteoGeocodingURL  string `koanf:"openmeteo_geocoding_url"`

	// HTTPTimeoutMS bounds each outbound weather request.
	HTTPTimeoutMS int `koanf:"http_timeout_ms"`

	// PeakCapacity bounds the number of places on the severity peaks board.
	PeakCapacity int `koanf:"peak_capacity"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		Addr:          ":9080",
		WorkerCount:   runtime.NumCPU() * 2,
		QueueSize:     1024,
		MaxBatchSize:  100,
		DefaultMode:   aura.Radial.String(),
		Source:        SourceOpenMeteo,
		HTTPTimeoutMS: 10_000,
		PeakCapacity:  1000,
	}
}

// HTTPTimeout returns HTTPTimeoutMS as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutMS) * time.Millisecond
}

// Mode returns the parsed default mode.
func (c *Config) Mode() aura.Mode {
	m, _ := aura.ParseMode(c.DefaultMode)
	return m
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("%w: worker_count must be positive, got %d", ErrInvalidConfig, c.WorkerCount)
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("%w: queue_size must be positive, got %d", ErrInvalidConfig, c.QueueSize)
	}
	if c.MaxBatchSize <= 0 {
		return fmt.Errorf("%w: max_batch_size must be positive, got %d", ErrInvalidConfig, c.MaxBatchSize)
	}
	if c.HTTPTimeoutMS <= 0 {
		return fmt.Errorf("%w: http_timeout_ms must be positive, got %d", ErrInvalidConfig, c.HTTPTimeoutMS)
	}
	if c.PeakCapacity <= 0 {
		return fmt.Errorf("%w: peak_capacity must be positive, got %d", ErrInvalidConfig, c.PeakCapacity)
	}
	if _, ok := aura.ParseMode(c.DefaultMode); !ok {
		return fmt.Errorf("%w: unknown default_mode %q", ErrInvalidConfig, c.DefaultMode)
	}
	switch c.Source {
	case SourceOpenMeteo, SourceSynthetic:
	default:
		return fmt.Errorf("%w: unknown source %q", ErrInvalidConfig, c.Source)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
