// Package palette derives the hue and saturation of an aura from location,
// temperature and air quality, and provides the HSLA colour value used by
// every gradient stop.
package palette

import (
	"math"

	"github.com/okian/aura/internal/domain/weather"
)

// Calibration constants.
const (
	fullCircle = 360.0

	minTemperature   = -40.0
	temperatureSpan  = 90.0 // -40..50 °C
	coldShift        = 120.0
	temperatureRange = 180.0 // +120 cold .. -60 hot

	maxSaturation  = 80.0
	saturationDrop = 50.0

	// AQI at which saturation bottoms out.
	aqiCeiling = 300.0
)

// Params is the colour basis of an aura.
type Params struct {
	BaseHue    float64 `json:"base_hue"`
	TempHue    float64 `json:"temp_hue"`
	Saturation float64 `json:"saturation"`
}

// Derive computes the palette for a snapshot.
func Derive(s weather.Snapshot) Params {
	base := BaseHue(s.Latitude, s.Longitude)
	return Params{
		BaseHue:    base,
		TempHue:    TemperatureHue(base, s.Temperature),
		Saturation: Saturation(s.AirQuality),
	}
}

// BaseHue maps coordinates onto the colour wheel.
func BaseHue(lat, lon float64) float64 {
	latNorm := (lat + 90) / 180 * fullCircle
	lonNorm := (lon + 180) / 360 * fullCircle
	return Wrap(latNorm + lonNorm)
}

// TemperatureHue shifts a hue toward blue when cold and toward red when hot,
// linearly across -40..50 °C.
func TemperatureHue(baseHue, temp float64) float64 {
	normalized := (temp - minTemperature) / temperatureSpan
	return Wrap(baseHue + coldShift - normalized*temperatureRange)
}

// Saturation falls from 80 toward 30 as the AQI rises to 300.
func Saturation(aqi float64) float64 {
	normalized := math.Min(aqi/aqiCeiling, 1)
	return maxSaturation - normalized*saturationDrop
}

// Wrap maps any angle into [0,360).
func Wrap(h float64) float64 {
	h = math.Mod(h, fullCircle)
	if h < 0 {
		h += fullCircle
	}
	if h >= fullCircle {
		h = 0
	}
	return h
}
