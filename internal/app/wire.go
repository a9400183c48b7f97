package service

import (
	"github.com/okian/aura/internal/adapters/repository"
	"github.com/okian/aura/internal/adapters/weathersource"
	"github.com/okian/aura/internal/adapters/weathersource/openmeteo"
	"github.com/okian/aura/internal/adapters/weathersource/synthetic"
	"github.com/okian/aura/internal/config"
)

// NewSource builds the weather source named by cfg. The synthetic source
// still resolves place names through Open-Meteo geocoding.
func NewSource(cfg *config.Config) weathersource.Source {
	om := openmeteo.New(
		openmeteo.WithForecastURL(cfg.OpenMeteoForecastURL),
		openmeteo.WithAirQualityURL(cfg.OpenMeteoAirQualityURL),
		openmeteo.WithElevationURL(cfg.OpenMeteoElevationURL),
		openmeteo.WithGeocodingURL(cfg.OpenMeteoGeocodingURL),
		openmeteo.WithTimeout(cfg.HTTPTimeout()),
	)
	if cfg.Source == config.SourceSynthetic {
		opts := []synthetic.Option{synthetic.WithGeocoder(om)}
		if cfg.RandomSeed != 0 {
			opts = append(opts, synthetic.WithSeed(cfg.RandomSeed))
		}
		return synthetic.New(opts...)
	}
	return om
}

// NewFromConfig builds a Service and its weather source from cfg. Extra
// options are applied last.
func NewFromConfig(cfg *config.Config, opts ...Option) *Service {
	base := []Option{
		WithWorkerCount(cfg.WorkerCount),
		WithQueueSize(cfg.QueueSize),
		WithMaxBatchSize(cfg.MaxBatchSize),
		WithDefaultMode(cfg.Mode()),
		WithRandomSeed(cfg.RandomSeed),
		WithSource(NewSource(cfg)),
		WithSourceName(cfg.Source),
		WithPeakStore(repository.NewMemoryStore(repository.WithCapacity(cfg.PeakCapacity))),
	}
	return New(append(base, opts...)...)
}
