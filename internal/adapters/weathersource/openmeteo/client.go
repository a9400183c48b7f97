// Package openmeteo fetches live observations from the Open-Meteo forecast,
// air-quality, elevation and geocoding APIs.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/text/cases"

	"github.com/okian/aura/internal/adapters/weathersource"
	"github.com/okian/aura/internal/domain/model"
	"github.com/okian/aura/internal/domain/weather"
	"github.com/okian/aura/pkg/logger"
	"github.com/okian/aura/pkg/metrics"
)

// Default endpoints.
const (
	DefaultForecastURL   = "https://api.open-meteo.com/v1/forecast"
	DefaultAirQualityURL = "https://air-quality-api.open-meteo.com/v1/air-quality"
	DefaultElevationURL  = "https://api.open-meteo.com/v1/elevation"
	DefaultGeocodingURL  = "https://geocoding-api.open-meteo.com/v1/search"

	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20

	currentFields = "temperature_2m,cloud_cover,wind_speed_10m,precipitation,relative_humidity_2m," +
		"surface_pressure,uv_index,visibility,wind_direction_10m,is_day,weather_code"
)

// Endpoint labels for metrics and errors.
const (
	endpointForecast   = "forecast"
	endpointAirQuality = "air_quality"
	endpointElevation  = "elevation"
	endpointGeocoding  = "geocoding"
)

// Common abbreviations users type after a city name.
var countryAliases = map[string]string{ //nolint:gochecknoglobals // static lookup table
	"usa": "US",
	"uk":  "GB",
	"uae": "AE",
}

type forecastResponse struct {
	Current struct {
		Temperature   *float64 `json:"temperature_2m"`
		CloudCover    *float64 `json:"cloud_cover"`
		WindSpeed     *float64 `json:"wind_speed_10m"`
		Precipitation *float64 `json:"precipitation"`
		Humidity      *float64 `json:"relative_humidity_2m"`
		Pressure      *float64 `json:"surface_pressure"`
		UVIndex       *float64 `json:"uv_index"`
		Visibility    *float64 `json:"visibility"` // metres
		WindDirection *float64 `json:"wind_direction_10m"`
		IsDay         *int     `json:"is_day"`
		WeatherCode   *int     `json:"weather_code"`
	} `json:"current"`
}

type airQualityResponse struct {
	Current struct {
		USAQI *float64 `json:"us_aqi"`
	} `json:"current"`
}

type elevationResponse struct {
	Elevation []float64 `json:"elevation"`
}

type geocodingResult struct {
	Name        string   `json:"name"`
	Admin1      string   `json:"admin1"`
	Country     string   `json:"country"`
	CountryCode string   `json:"country_code"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Elevation   *float64 `json:"elevation"`
}

type geocodingResponse struct {
	Results []geocodingResult `json:"results"`
}

// Client is a weathersource.Source backed by Open-Meteo.
type Client struct {
	forecastURL   string
	airQualityURL string
	elevationURL  string
	geocodingURL  string
	httpClient    *http.Client
	timeout       time.Duration
	clock         clockwork.Clock
	logger        logger.Logger
}

var _ weathersource.Source = (*Client)(nil)

// New creates a client with configuration options.
func New(opts ...Option) *Client {
	c := &Client{
		forecastURL:   DefaultForecastURL,
		airQualityURL: DefaultAirQualityURL,
		elevationURL:  DefaultElevationURL,
		geocodingURL:  DefaultGeocodingURL,
		httpClient:    http.DefaultClient,
		timeout:       defaultTimeout,
		clock:         clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Named("openmeteo")
	}
	return c
}

// Fetch returns the current observation at loc. Only the forecast call is
// required; air quality and elevation are left unset when their endpoints
// fail, so the defaults apply downstream.
func (c *Client) Fetch(ctx context.Context, loc model.Location) (weather.Observation, error) {
	q := coords(loc.Latitude, loc.Longitude)
	q.Set("current", currentFields)
	q.Set("wind_speed_unit", "kmh")
	q.Set("precipitation_unit", "mm")

	var fr forecastResponse
	if err := c.getJSON(ctx, endpointForecast, c.forecastURL, q, &fr); err != nil {
		return weather.Observation{}, err
	}

	cur := fr.Current
	obs := weather.Observation{
		Temperature:   cur.Temperature,
		CloudCover:    cur.CloudCover,
		WindSpeed:     cur.WindSpeed,
		Precipitation: cur.Precipitation,
		Humidity:      cur.Humidity,
		Pressure:      cur.Pressure,
		UVIndex:       cur.UVIndex,
		WindDirection: cur.WindDirection,
		WeatherCode:   cur.WeatherCode,
		Latitude:      weather.Float64(loc.Latitude),
		Longitude:     weather.Float64(loc.Longitude),
	}
	if cur.Visibility != nil {
		obs.Visibility = weather.Float64(*cur.Visibility / 1000)
	}
	if cur.Precipitation != nil && *cur.Precipitation < 0 {
		obs.Precipitation = weather.Float64(0)
	}
	if cur.IsDay != nil {
		obs.IsDay = weather.Bool(*cur.IsDay == 1)
	}

	if aqi, err := c.AirQuality(ctx, loc.Latitude, loc.Longitude); err != nil {
		c.logger.Warn(ctx, "air quality unavailable", logger.Error(err))
	} else {
		obs.AirQuality = weather.Float64(aqi)
	}

	if loc.Altitude != nil {
		obs.Altitude = weather.Float64(*loc.Altitude)
	} else if alt, err := c.Elevation(ctx, loc.Latitude, loc.Longitude); err != nil {
		c.logger.Warn(ctx, "elevation unavailable", logger.Error(err))
	} else {
		obs.Altitude = weather.Float64(alt)
	}

	return obs, nil
}

// AirQuality returns the current US AQI.
func (c *Client) AirQuality(ctx context.Context, lat, lon float64) (float64, error) {
	q := coords(lat, lon)
	q.Set("current", "us_aqi")

	var ar airQualityResponse
	if err := c.getJSON(ctx, endpointAirQuality, c.airQualityURL, q, &ar); err != nil {
		return 0, err
	}
	if ar.Current.USAQI == nil {
		return 0, fmt.Errorf("%w: %s: no us_aqi in response", weathersource.ErrUpstream, endpointAirQuality)
	}
	return *ar.Current.USAQI, nil
}

// Elevation returns the terrain height in metres.
func (c *Client) Elevation(ctx context.Context, lat, lon float64) (float64, error) {
	var er elevationResponse
	if err := c.getJSON(ctx, endpointElevation, c.elevationURL, coords(lat, lon), &er); err != nil {
		return 0, err
	}
	if len(er.Elevation) == 0 {
		return 0, fmt.Errorf("%w: %s: empty response", weathersource.ErrUpstream, endpointElevation)
	}
	return er.Elevation[0], nil
}

// Geocode resolves a place name such as "Paris" or "Portland, USA". Words
// after the first comma narrow the match by region or country; when nothing
// matches them the best hit for the name is used.
func (c *Client) Geocode(ctx context.Context, query string) (model.Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return model.Location{}, fmt.Errorf("%w: empty query", weathersource.ErrInvalidQuery)
	}
	if loc, ok := weathersource.SpecialPlace(query); ok {
		return loc, nil
	}

	parts := strings.Split(query, ",")
	name := strings.TrimSpace(parts[0])
	var qualifiers []string
	for _, p := range parts[1:] {
		if p = strings.TrimSpace(p); p != "" {
			qualifiers = append(qualifiers, p)
		}
	}

	count := 1
	if len(qualifiers) > 0 {
		count = 10
	}
	q := url.Values{}
	q.Set("name", name)
	q.Set("count", strconv.Itoa(count))
	q.Set("language", "en")
	q.Set("format", "json")

	var gr geocodingResponse
	if err := c.getJSON(ctx, endpointGeocoding, c.geocodingURL, q, &gr); err != nil {
		return model.Location{}, err
	}
	if len(gr.Results) == 0 {
		return model.Location{}, fmt.Errorf("%w: %s", weathersource.ErrNotFound, query)
	}

	best := gr.Results[0]
	for _, r := range gr.Results {
		if matchesAll(r, qualifiers) {
			best = r
			break
		}
	}
	return model.Location{
		Name:      best.Name,
		Region:    best.Admin1,
		Country:   best.Country,
		Latitude:  best.Latitude,
		Longitude: best.Longitude,
		Altitude:  best.Elevation,
	}, nil
}

func matchesAll(r geocodingResult, qualifiers []string) bool {
	fold := cases.Fold()
	for _, q := range qualifiers {
		fq := fold.String(q)
		if code, ok := countryAliases[fq]; ok && strings.EqualFold(code, r.CountryCode) {
			continue
		}
		if fq == fold.String(r.Admin1) || fq == fold.String(r.Country) || fq == fold.String(r.CountryCode) {
			continue
		}
		return false
	}
	return true
}

func coords(lat, lon float64) url.Values {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	return q
}

// getJSON performs one GET and decodes the body into v, recording metrics.
func (c *Client) getJSON(ctx context.Context, endpoint, base string, q url.Values, v any) (err error) {
	start := c.clock.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.RecordSourceFetch(endpoint, outcome, float64(c.clock.Since(start).Milliseconds()))
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := base + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", weathersource.ErrUpstream, endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug(ctx, "requesting", logger.String("endpoint", endpoint), logger.String("url", u))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", weathersource.ErrUpstream, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %s: read body: %w", weathersource.ErrUpstream, endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s: status %d: %s", weathersource.ErrUpstream, endpoint, resp.StatusCode, truncate(string(body), 200))
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %s: decode: %w", weathersource.ErrUpstream, endpoint, err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
