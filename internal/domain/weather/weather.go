// Package weather defines the weather observation consumed by the aura engine
// and the defaulting rules that turn a sparse reading into a complete snapshot.
package weather

import (
	"math"
)

// Defaults applied to every missing or non-finite observation field.
const (
	DefaultTemperature   = 20.0
	DefaultCloudCover    = 50.0
	DefaultWindSpeed     = 10.0
	DefaultWindDirection = 0.0
	DefaultPrecipitation = 0.0
	DefaultHumidity      = 50.0
	DefaultPressure      = 1013.0
	DefaultUVIndex       = 5.0
	DefaultVisibility    = 10.0
	DefaultIsDay         = true
	DefaultWeatherCode   = 0
	DefaultAirQuality    = 50.0
	DefaultAltitude      = 100.0

	// St. Louis, MO.
	DefaultLatitude  = 38.6270
	DefaultLongitude = -90.1994
)

// Clamping bounds.
const (
	MaxPercent    = 100.0
	MaxAirQuality    = 500.0
	MaxPrecipitation = 500.0 // mm/h
	MaxLatitude      = 90.0
	MaxLongitude     = 180.0
	fullCircle       = 360.0
)

// Observation is a sparse weather reading as delivered by a weather source or
// an API caller. Nil fields are filled with defaults by Snapshot.
type Observation struct {
	Temperature   *float64 `json:"temperature,omitempty"`
	CloudCover    *float64 `json:"cloud_cover,omitempty"`
	WindSpeed     *float64 `json:"wind_speed,omitempty"`
	WindDirection *float64 `json:"wind_direction,omitempty"`
	Precipitation *float64 `json:"precipitation,omitempty"`
	Humidity      *float64 `json:"humidity,omitempty"`
	Pressure      *float64 `json:"pressure,omitempty"`
	UVIndex       *float64 `json:"uv_index,omitempty"`
	Visibility    *float64 `json:"visibility,omitempty"`
	IsDay         *bool    `json:"is_day,omitempty"`
	WeatherCode   *int     `json:"weather_code,omitempty"`
	AirQuality    *float64 `json:"air_quality,omitempty"`
	Altitude      *float64 `json:"altitude,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
}

// Snapshot is a complete, finite weather reading. Units: °C, %, km/h, degrees,
// mm/h, hPa, km, US AQI and metres.
type Snapshot struct {
	Temperature   float64 `json:"temperature"`
	CloudCover    float64 `json:"cloud_cover"`
	WindSpeed     float64 `json:"wind_speed"`
	WindDirection float64 `json:"wind_direction"`
	Precipitation float64 `json:"precipitation"`
	Humidity      float64 `json:"humidity"`
	Pressure      float64 `json:"pressure"`
	UVIndex       float64 `json:"uv_index"`
	Visibility    float64 `json:"visibility"`
	IsDay         bool    `json:"is_day"`
	WeatherCode   int     `json:"weather_code"`
	AirQuality    float64 `json:"air_quality"`
	Altitude      float64 `json:"altitude"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
}

// Default returns the all-default snapshot.
func Default() Snapshot {
	return Snapshot{
		Temperature:   DefaultTemperature,
		CloudCover:    DefaultCloudCover,
		WindSpeed:     DefaultWindSpeed,
		WindDirection: DefaultWindDirection,
		Precipitation: DefaultPrecipitation,
		Humidity:      DefaultHumidity,
		Pressure:      DefaultPressure,
		UVIndex:       DefaultUVIndex,
		Visibility:    DefaultVisibility,
		IsDay:         DefaultIsDay,
		WeatherCode:   DefaultWeatherCode,
		AirQuality:    DefaultAirQuality,
		Altitude:      DefaultAltitude,
		Latitude:      DefaultLatitude,
		Longitude:     DefaultLongitude,
	}
}

// Snapshot fills missing fields with defaults and normalizes the result.
func (o Observation) Snapshot() Snapshot {
	s := Default()
	s.Temperature = valueOr(o.Temperature, s.Temperature)
	s.CloudCover = valueOr(o.CloudCover, s.CloudCover)
	s.WindSpeed = valueOr(o.WindSpeed, s.WindSpeed)
	s.WindDirection = valueOr(o.WindDirection, s.WindDirection)
	s.Precipitation = valueOr(o.Precipitation, s.Precipitation)
	s.Humidity = valueOr(o.Humidity, s.Humidity)
	s.Pressure = valueOr(o.Pressure, s.Pressure)
	s.UVIndex = valueOr(o.UVIndex, s.UVIndex)
	s.Visibility = valueOr(o.Visibility, s.Visibility)
	s.AirQuality = valueOr(o.AirQuality, s.AirQuality)
	s.Altitude = valueOr(o.Altitude, s.Altitude)
	s.Latitude = valueOr(o.Latitude, s.Latitude)
	s.Longitude = valueOr(o.Longitude, s.Longitude)
	if o.IsDay != nil {
		s.IsDay = *o.IsDay
	}
	if o.WeatherCode != nil {
		s.WeatherCode = *o.WeatherCode
	}
	return s.Normalize()
}

// Observation returns the snapshot as a fully populated observation, so a
// stored reading can be replayed.
func (s Snapshot) Observation() Observation {
	return Observation{
		Temperature:   Float64(s.Temperature),
		CloudCover:    Float64(s.CloudCover),
		WindSpeed:     Float64(s.WindSpeed),
		WindDirection: Float64(s.WindDirection),
		Precipitation: Float64(s.Precipitation),
		Humidity:      Float64(s.Humidity),
		Pressure:      Float64(s.Pressure),
		UVIndex:       Float64(s.UVIndex),
		Visibility:    Float64(s.Visibility),
		IsDay:         Bool(s.IsDay),
		WeatherCode:   Int(s.WeatherCode),
		AirQuality:    Float64(s.AirQuality),
		Altitude:      Float64(s.Altitude),
		Latitude:      Float64(s.Latitude),
		Longitude:     Float64(s.Longitude),
	}
}

// Normalize replaces non-finite values with defaults and clamps out-of-range
// values. It never fails.
func (s Snapshot) Normalize() Snapshot {
	d := Default()
	s.Temperature = finiteOr(s.Temperature, d.Temperature)
	s.CloudCover = clamp(finiteOr(s.CloudCover, d.CloudCover), 0, MaxPercent)
	s.WindSpeed = math.Max(0, finiteOr(s.WindSpeed, d.WindSpeed))
	s.WindDirection = wrapDegrees(finiteOr(s.WindDirection, d.WindDirection))
	s.Precipitation = clamp(finiteOr(s.Precipitation, d.Precipitation), 0, MaxPrecipitation)
	s.Humidity = clamp(finiteOr(s.Humidity, d.Humidity), 0, MaxPercent)
	s.Pressure = finiteOr(s.Pressure, d.Pressure)
	s.UVIndex = math.Max(0, finiteOr(s.UVIndex, d.UVIndex))
	s.Visibility = math.Max(0, finiteOr(s.Visibility, d.Visibility))
	s.AirQuality = clamp(finiteOr(s.AirQuality, d.AirQuality), 0, MaxAirQuality)
	s.Altitude = finiteOr(s.Altitude, d.Altitude)
	s.Latitude = clamp(finiteOr(s.Latitude, d.Latitude), -MaxLatitude, MaxLatitude)
	s.Longitude = clamp(finiteOr(s.Longitude, d.Longitude), -MaxLongitude, MaxLongitude)
	return s
}

// Float64 returns a pointer to v. Handy for building observations.
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func finiteOr(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func wrapDegrees(v float64) float64 {
	v = math.Mod(v, fullCircle)
	if v < 0 {
		v += fullCircle
	}
	return v
}
