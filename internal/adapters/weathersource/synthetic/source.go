// Package synthetic generates plausible weather for a location without any
// network access. Readings depend on latitude, longitude and altitude and
// are reproducible for a given seed.
package synthetic

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/okian/aura/internal/adapters/weathersource"
	"github.com/okian/aura/internal/domain/model"
	"github.com/okian/aura/internal/domain/weather"
)

const defaultSeed = 42

// Geocoder resolves place names the source does not know itself.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (model.Location, error)
}

// Option applies a configuration option to the Source.
type Option func(*Source)

// WithSeed reseeds the generator.
func WithSeed(seed int64) Option {
	return func(s *Source) {
		s.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // synthetic weather, not security
	}
}

// WithRandom replaces the random source.
func WithRandom(r Random) Option {
	return func(s *Source) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithGeocoder delegates unknown place names to g.
func WithGeocoder(g Geocoder) Option {
	return func(s *Source) {
		s.geocoder = g
	}
}

// WithCloudCover pins the cloud cover instead of drawing it.
func WithCloudCover(pct float64) Option {
	return func(s *Source) {
		s.cloudCover = &pct
	}
}

// Source is a weathersource.Source that invents its readings.
type Source struct {
	mu         sync.Mutex
	rng        Random
	geocoder   Geocoder
	cloudCover *float64
}

var _ weathersource.Source = (*Source)(nil)

// New creates a synthetic source with configuration options.
func New(opts ...Option) *Source {
	s := &Source{
		rng: rand.New(rand.NewSource(defaultSeed)), //nolint:gosec // deterministic default seed
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch returns temperature, cloud cover, wind, precipitation and air
// quality for loc. Everything else is left unset so the engine defaults apply.
func (s *Source) Fetch(ctx context.Context, loc model.Location) (weather.Observation, error) {
	if err := ctx.Err(); err != nil {
		return weather.Observation{}, fmt.Errorf("synthetic fetch: %w", err)
	}

	alt := weather.DefaultAltitude
	if loc.Altitude != nil {
		alt = *loc.Altitude
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clouds := round(s.rng.Float64() * weather.MaxPercent)
	if s.cloudCover != nil {
		clouds = *s.cloudCover
	}

	return weather.Observation{
		Temperature:   weather.Float64(Temperature(s.rng, loc.Latitude, alt)),
		AirQuality:    weather.Float64(AirQuality(s.rng, loc.Latitude, loc.Longitude, alt)),
		WindSpeed:     weather.Float64(WindSpeed(s.rng, loc.Latitude, loc.Longitude, alt)),
		CloudCover:    weather.Float64(clouds),
		Precipitation: weather.Float64(Precipitation(s.rng, clouds, loc.Latitude, alt)),
		Altitude:      weather.Float64(alt),
		Latitude:      weather.Float64(loc.Latitude),
		Longitude:     weather.Float64(loc.Longitude),
	}, nil
}

// Geocode knows the special places. Other names go to the configured
// geocoder, if any.
func (s *Source) Geocode(ctx context.Context, query string) (model.Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return model.Location{}, fmt.Errorf("%w: empty query", weathersource.ErrInvalidQuery)
	}
	if loc, ok := weathersource.SpecialPlace(query); ok {
		return loc, nil
	}
	if s.geocoder == nil {
		return model.Location{}, fmt.Errorf("%w: %s", weathersource.ErrNotFound, query)
	}
	return s.geocoder.Geocode(ctx, query)
}
