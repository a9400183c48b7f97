package openmeteo

import (
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/okian/aura/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithForecastURL overrides the forecast endpoint.
func WithForecastURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.forecastURL = u
		}
	}
}

// WithAirQualityURL overrides the air-quality endpoint.
func WithAirQualityURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.airQualityURL = u
		}
	}
}

// WithElevationURL overrides the elevation endpoint.
func WithElevationURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.elevationURL = u
		}
	}
}

// WithGeocodingURL overrides the geocoding endpoint.
func WithGeocodingURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.geocodingURL = u
		}
	}
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithClock sets the clock used for latency metrics.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Client) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}
