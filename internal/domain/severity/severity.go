// Package severity scores how disruptive a weather snapshot is and labels it
// with a coarse weather type.
//
// The score is a weighted average of five sub-factors (weather code, wind,
// precipitation, visibility and cloud cover), each normalized to [0,1].
package severity

import (
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/okian/aura/internal/domain/weather"
)

// WeatherType is the coarse label chosen alongside the score.
type WeatherType string

// Weather types, from calmest to most severe.
const (
	Normal       WeatherType = "normal"
	Fog          WeatherType = "fog"
	LightPrecip  WeatherType = "light_precip"
	Showers      WeatherType = "showers"
	HeavyRain    WeatherType = "heavy_rain"
	HeavySnow    WeatherType = "heavy_snow"
	HighWind     WeatherType = "high_wind"
	Thunderstorm WeatherType = "thunderstorm"
)

var displayNames = map[WeatherType]string{ //nolint:gochecknoglobals // static lookup table
	Normal:      "Normal",
	LightPrecip: "Light Precipitation",
	HeavyRain:   "Heavy Rain",
	HeavySnow:   "Heavy Snow",
	HighWind:    "High Wind",
}

// DisplayName returns a human label, e.g. "Heavy Rain".
func (t WeatherType) DisplayName() string {
	if name, ok := displayNames[t]; ok {
		return name
	}
	return cases.Title(language.English).String(string(t))
}

// Factor names.
const (
	FactorWeatherCode   = "weatherCode"
	FactorWind          = "wind"
	FactorPrecipitation = "precipitation"
	FactorVisibility    = "visibility"
	FactorCloudCover    = "cloudCover"
)

// Factor weights. They sum to 1.
const (
	WeightWeatherCode   = 0.40
	WeightWind          = 0.25
	WeightPrecipitation = 0.20
	WeightVisibility    = 0.10
	WeightCloudCover    = 0.05
)

// Wind sub-score above which a "normal" reading is relabelled high_wind.
const highWindThreshold = 0.6

// Factor is one weighted contribution to the score.
type Factor struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Weight float64 `json:"weight"`
}

// Contribution is Value*Weight.
func (f Factor) Contribution() float64 {
	return f.Value * f.Weight
}

// Result is the outcome of scoring one snapshot.
type Result struct {
	Score       float64     `json:"score"`
	WeatherType WeatherType `json:"weather_type"`
	Factors     []Factor    `json:"factors"`
}

// TotalWeight returns the sum of factor weights.
func (r Result) TotalWeight() float64 {
	var total float64
	for _, f := range r.Factors {
		total += f.Weight
	}
	return total
}

// Score evaluates a snapshot. It is total and deterministic.
func Score(s weather.Snapshot) Result {
	codeScore, weatherType := WeatherCodeFactor(s.WeatherCode)
	windScore := WindFactor(s.WindSpeed)
	if windScore > highWindThreshold && weatherType == Normal {
		weatherType = HighWind
	}

	factors := []Factor{
		{Name: FactorWeatherCode, Value: codeScore, Weight: WeightWeatherCode},
		{Name: FactorWind, Value: windScore, Weight: WeightWind},
		{Name: FactorPrecipitation, Value: PrecipitationFactor(s.Precipitation), Weight: WeightPrecipitation},
		{Name: FactorVisibility, Value: VisibilityFactor(s.Visibility), Weight: WeightVisibility},
		{Name: FactorCloudCover, Value: CloudCoverFactor(s.CloudCover), Weight: WeightCloudCover},
	}

	var sum, total float64
	for _, f := range factors {
		sum += f.Contribution()
		total += f.Weight
	}

	return Result{
		Score:       math.Max(0, math.Min(1, sum/total)),
		WeatherType: weatherType,
		Factors:     factors,
	}
}

// WeatherCodeFactor buckets a WMO code into a sub-score and weather type.
// Within each range the score interpolates linearly over the code position.
func WeatherCodeFactor(code int) (float64, WeatherType) {
	c := float64(code)
	switch {
	case code >= 95 && code <= 99:
		return 0.9 + (c-95)/4*0.1, Thunderstorm
	case code >= 71 && code <= 77:
		return 0.6 + (c-71)/6*0.2, HeavySnow
	case code >= 61 && code <= 67:
		return 0.5 + (c-61)/6*0.2, HeavyRain
	case code >= 80 && code <= 86:
		return 0.3 + (c-80)/6*0.2, Showers
	case code >= 51 && code <= 57:
		return 0.15 + (c-51)/6*0.1, LightPrecip
	case code >= 45 && code <= 49:
		return 0.2, Fog
	default:
		return 0, Normal
	}
}

// WindFactor maps km/h onto [0,1] over five linear bands.
func WindFactor(wind float64) float64 {
	switch {
	case wind > 80:
		return 0.7 + math.Min(0.3, (wind-80)/100)
	case wind > 50:
		return 0.5 + (wind-50)/30*0.2
	case wind > 30:
		return 0.3 + (wind-30)/20*0.2
	case wind > 15:
		return 0.1 + (wind-15)/15*0.2
	case wind > 0:
		return wind / 15 * 0.1
	default:
		return 0
	}
}

// PrecipitationFactor maps mm/h onto [0,1] over five linear bands.
func PrecipitationFactor(precip float64) float64 {
	switch {
	case precip > 10:
		return 0.7 + math.Min(0.3, (precip-10)/20)
	case precip > 5:
		return 0.5 + (precip-5)/5*0.2
	case precip > 2:
		return 0.3 + (precip-2)/3*0.2
	case precip > 0.5:
		return 0.1 + (precip-0.5)/1.5*0.2
	case precip > 0:
		return precip / 0.5 * 0.1
	default:
		return 0
	}
}

// VisibilityFactor is a step function over km.
func VisibilityFactor(visibility float64) float64 {
	switch {
	case visibility < 1:
		return 0.5
	case visibility < 3:
		return 0.3
	case visibility < 5:
		return 0.15
	default:
		return 0
	}
}

// CloudCoverFactor is a step function over percent cover.
func CloudCoverFactor(cloudCover float64) float64 {
	switch {
	case cloudCover > 90:
		return 0.2
	case cloudCover > 75:
		return 0.1
	default:
		return 0
	}
}
