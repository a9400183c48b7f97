package weather

// WMO weather interpretation codes as reported by Open-Meteo.
var codeDescriptions = map[int]string{ //nolint:gochecknoglobals // static lookup table
	0:  "clear sky",
	1:  "mainly clear",
	2:  "partly cloudy",
	3:  "overcast",
	45: "foggy",
	48: "depositing rime fog",
	51: "light drizzle",
	53: "moderate drizzle",
	55: "dense drizzle",
	56: "light freezing drizzle",
	57: "dense freezing drizzle",
	61: "slight rain",
	63: "moderate rain",
	65: "heavy rain",
	66: "light freezing rain",
	67: "heavy freezing rain",
	71: "slight snow",
	73: "moderate snow",
	75: "heavy snow",
	77: "snow grains",
	80: "slight rain showers",
	81: "moderate rain showers",
	82: "violent rain showers",
	85: "slight snow showers",
	86: "heavy snow showers",
	95: "thunderstorm",
	96: "thunderstorm with slight hail",
	99: "thunderstorm with heavy hail",
}

// Fog codes span 45..49.
const (
	fogCodeMin = 45
	fogCodeMax = 49
)

// DescribeCode returns the human description of a WMO code, or "unknown".
func DescribeCode(code int) string {
	if desc, ok := codeDescriptions[code]; ok {
		return desc
	}
	return "unknown"
}

// IsClear reports whether the code denotes a clear or mainly clear sky.
func IsClear(code int) bool {
	return code == 0 || code == 1
}

// IsFog reports whether the code falls in the fog range.
func IsFog(code int) bool {
	return code >= fogCodeMin && code <= fogCodeMax
}

// AirQualityLabel maps a US AQI value to its category name.
func AirQualityLabel(aqi float64) string {
	switch {
	case aqi <= 50:
		return "Good"
	case aqi <= 100:
		return "Moderate"
	case aqi <= 150:
		return "Unhealthy for Sensitive"
	case aqi <= 200:
		return "Unhealthy"
	case aqi <= 300:
		return "Very Unhealthy"
	default:
		return "Hazardous"
	}
}
