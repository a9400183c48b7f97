package synthetic

import (
	"math"
)

// Random is the randomness the generators draw from. *rand.Rand satisfies it.
type Random interface {
	Float64() float64
}

// Event probabilities.
const (
	extremeTemperatureChance = 0.02
	hurricaneChance          = 0.015
	hurricaneShare           = 0.7
	galeChance               = 0.05
	hazardousAirChance       = 0.01
	floodChance              = 0.01
	monsoonChance            = 0.1
	desertChance             = 0.3
)

// Output ranges.
const (
	minTemperature   = -50.0
	maxTemperature   = 50.0
	maxWindSpeed     = 250.0
	maxAirQuality    = 500.0
	maxPrecipitation = 50.0
)

// Temperature returns °C for a latitude and altitude in metres: warm at the
// equator, cold at the poles, −6.5 °C per km of altitude, with seasonal and
// daily spread and the occasional heatwave or deep freeze.
func Temperature(r Random, lat, alt float64) float64 {
	if r.Float64() < extremeTemperatureChance {
		if r.Float64() < 0.5 {
			return round(45 + r.Float64()*5)
		}
		return round(-50 + r.Float64()*5)
	}

	latFactor := math.Abs(lat) / 90
	base := 28 - latFactor*78
	lapse := -(alt / 1000) * 6.5
	seasonal := (r.Float64() - 0.5) * (20 - latFactor*10)
	daily := (r.Float64() - 0.5) * (12 - latFactor*4)

	desert := 0.0
	if math.Abs(lat) < 30 && alt < 1000 && r.Float64() < desertChance {
		if r.Float64() < 0.5 {
			desert = 15
		} else {
			desert = -10
		}
	}

	return round(clamp(base+lapse+seasonal+daily+desert, minTemperature, maxTemperature))
}

// WindSpeed returns km/h. Coasts, mountains and polar regions are windier;
// gales and hurricanes occur rarely.
func WindSpeed(r Random, lat, lon, alt float64) float64 {
	if r.Float64() < hurricaneChance {
		if r.Float64() < hurricaneShare {
			return round(120 + r.Float64()*80)
		}
		return round(200 + r.Float64()*50)
	}

	wind := 3 + r.Float64()*7
	coastal := isCoastal(lat, lon, alt)
	if coastal {
		wind += 8 + r.Float64()*20
	}
	if alt > 2000 {
		wind += (alt / 1000) * 8
	}
	if math.Abs(lat) > 70 {
		wind += 10 + r.Float64()*15
	}

	spread := 15.0
	if coastal {
		spread = 25
	}
	wind += (r.Float64() - 0.5) * spread

	if r.Float64() < galeChance {
		wind = 60 + r.Float64()*60
	}
	return round(clamp(wind, 0, maxWindSpeed))
}

// AirQuality returns a US AQI. Urban bands are dirtier than rural ones and
// altitude cleans the air.
func AirQuality(r Random, lat, lon, alt float64) float64 {
	if r.Float64() < hazardousAirChance {
		return round(300 + r.Float64()*200)
	}

	var aqi float64
	roll := r.Float64()
	if isUrban(lat, lon) {
		switch {
		case roll < 0.30:
			aqi = 20 + r.Float64()*30
		case roll < 0.70:
			aqi = 50 + r.Float64()*50
		case roll < 0.90:
			aqi = 100 + r.Float64()*50
		case roll < 0.98:
			aqi = 150 + r.Float64()*50
		default:
			aqi = 200 + r.Float64()*100
		}
	} else {
		switch {
		case roll < 0.70:
			aqi = 10 + r.Float64()*40
		case roll < 0.95:
			aqi = 50 + r.Float64()*50
		case roll < 0.99:
			aqi = 100 + r.Float64()*50
		default:
			aqi = 150 + r.Float64()*50
		}
	}

	if alt > 1500 {
		aqi *= 0.6
	}
	if alt > 3000 {
		aqi = math.Min(aqi, 30+r.Float64()*20)
	}
	aqi += (r.Float64() - 0.5) * 30
	return round(clamp(aqi, 0, maxAirQuality))
}

// Precipitation returns mm/h correlated with cloud cover. Tropics, high
// ground and monsoon belts intensify heavy rain.
func Precipitation(r Random, cloudCover, lat, alt float64) float64 {
	if r.Float64() < floodChance && cloudCover > 50 {
		return math.Min(maxPrecipitation, 30+r.Float64()*20)
	}

	switch {
	case cloudCover < 30:
		if r.Float64() < 0.1 {
			return r.Float64() * 2.5
		}
		return 0
	case cloudCover < 70:
		if r.Float64() >= 0.4 {
			return 0
		}
		if r.Float64() < 0.6 {
			return r.Float64() * 2.5
		}
		return 2.5 + r.Float64()*5.1
	}

	var precip float64
	switch intensity := r.Float64(); {
	case intensity < 0.4:
		precip = 2.5 + r.Float64()*5.1
	case intensity < 0.85:
		precip = 7.6 + r.Float64()*17.4
	default:
		precip = 25 + r.Float64()*25
	}

	if math.Abs(lat) < 20 {
		precip *= 1.3 + r.Float64()*0.4
	}
	if alt > 1000 {
		precip *= 1.1 + r.Float64()*0.3
	}
	if math.Abs(lat) < 25 && r.Float64() < monsoonChance {
		precip *= 1.5
	}
	return math.Min(maxPrecipitation, precip)
}

func isCoastal(lat, lon, alt float64) bool {
	return math.Abs(lat) < 60 && (math.Abs(math.Mod(lon, 60)) < 5 || alt < 200)
}

func isUrban(lat, lon float64) bool {
	return math.Abs(lat) < 60 && math.Abs(math.Mod(lon, 30)) < 15
}

// round rounds half up, so -45.5 becomes -45.
func round(v float64) float64 {
	return math.Floor(v + 0.5)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
