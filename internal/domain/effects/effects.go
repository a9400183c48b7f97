// Package effects derives the dynamic parameters of an aura: how wind mixes
// the layers, how altitude brightens it and how precipitation wets it.
package effects

import (
	"math"

	"github.com/okian/aura/internal/domain/weather"
)

// Calibration constants.
const (
	minLayers      = 2
	maxLayers      = 8
	windPerLayer   = 25.0
	maxSpread      = 40.0
	referencePeak  = 8848.0 // metres
	heavyPrecip    = 50.0   // mm/h at full intensity
	glossPerUnit   = 0.6
	freezingPointC = 0.0
)

// Wind describes layer mixing.
type Wind struct {
	Layers     int     `json:"layers"`
	Spread     float64 `json:"spread"`
	Turbulence float64 `json:"turbulence"`
}

// Precipitation describes the wet look of an aura.
type Precipitation struct {
	Intensity       float64 `json:"intensity"`
	Blur            float64 `json:"blur"`
	Desaturation    float64 `json:"desaturation"`
	StreakCount     int     `json:"streak_count"`
	DropletCount    int     `json:"droplet_count"`
	HighlightCount  int     `json:"highlight_count"`
	IsSnow          bool    `json:"is_snow"`
	VerticalShift   float64 `json:"vertical_shift"`
	GlossIntensity  float64 `json:"gloss_intensity"`
	ParticleDensity float64 `json:"particle_density"`
}

// Params bundles every derived effect.
type Params struct {
	Wind              Wind          `json:"wind"`
	WindDirection     float64       `json:"wind_direction"`
	AltitudeIntensity float64       `json:"altitude_intensity"`
	Precipitation     Precipitation `json:"precipitation"`
}

// Derive computes all effects for a snapshot.
func Derive(s weather.Snapshot) Params {
	return Params{
		Wind:              WindEffect(s.WindSpeed),
		WindDirection:     s.WindDirection,
		AltitudeIntensity: AltitudeIntensity(s.Altitude),
		Precipitation:     PrecipitationEffect(s.Precipitation, s.Temperature),
	}
}

// WindEffect maps km/h to layer count, spread and turbulence.
func WindEffect(wind float64) Wind {
	layers := int(math.Floor(2 + wind/windPerLayer))
	return Wind{
		Layers:     max(minLayers, min(maxLayers, layers)),
		Spread:     math.Min(maxSpread, wind/5),
		Turbulence: wind / 100,
	}
}

// AltitudeIntensity maps metres to a brightness multiplier: 0.5 at sea level,
// 1.0 at the reference peak. Values beyond the peak are not clamped.
func AltitudeIntensity(altitude float64) float64 {
	return 0.5 + altitude/referencePeak*0.5
}

// PrecipitationEffect maps mm/h and temperature to wet-surface parameters.
// Readings below freezing are treated as snow. precip is clamped to
// [0, weather.MaxPrecipitation] so the derived counts stay bounded.
func PrecipitationEffect(precip, temperature float64) Precipitation {
	if math.IsNaN(precip) {
		precip = 0
	}
	precip = math.Max(0, math.Min(weather.MaxPrecipitation, precip))
	intensity := math.Min(1, precip/heavyPrecip)
	return Precipitation{
		Intensity:       intensity,
		Blur:            precip / 10,
		Desaturation:    precip / 100,
		StreakCount:     int(math.Floor(precip / 5)),
		DropletCount:    int(math.Floor(precip / 3)),
		HighlightCount:  int(math.Floor(precip / 4)),
		IsSnow:          temperature < freezingPointC,
		VerticalShift:   precip / 20,
		GlossIntensity:  intensity * glossPerUnit,
		ParticleDensity: precip / 2,
	}
}
