package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/okian/aura/internal/domain/weather"
)

// floatField binds a flag to one optional observation field.
type floatField struct {
	name  string
	usage string
	field func(*weather.Observation) **float64
}

var floatFields = []floatField{ //nolint:gochecknoglobals // static flag table
	{"temperature", "temperature in °C", func(o *weather.Observation) **float64 { return &o.Temperature }},
	{"cloud-cover", "cloud cover in %", func(o *weather.Observation) **float64 { return &o.CloudCover }},
	{"wind-speed", "wind speed in km/h", func(o *weather.Observation) **float64 { return &o.WindSpeed }},
	{"wind-direction", "wind direction in degrees", func(o *weather.Observation) **float64 { return &o.WindDirection }},
	{"precipitation", "precipitation in mm/h", func(o *weather.Observation) **float64 { return &o.Precipitation }},
	{"humidity", "relative humidity in %", func(o *weather.Observation) **float64 { return &o.Humidity }},
	{"pressure", "surface pressure in hPa", func(o *weather.Observation) **float64 { return &o.Pressure }},
	{"uv-index", "UV index (0-11)", func(o *weather.Observation) **float64 { return &o.UVIndex }},
	{"visibility", "visibility in km", func(o *weather.Observation) **float64 { return &o.Visibility }},
	{"air-quality", "US AQI", func(o *weather.Observation) **float64 { return &o.AirQuality }},
	{"altitude", "altitude in m", func(o *weather.Observation) **float64 { return &o.Altitude }},
	{"latitude", "latitude in degrees", func(o *weather.Observation) **float64 { return &o.Latitude }},
	{"longitude", "longitude in degrees", func(o *weather.Observation) **float64 { return &o.Longitude }},
}

// addObservationFlags registers one flag per observation field plus --input.
func addObservationFlags(fs *pflag.FlagSet) {
	fs.StringP("input", "i", "", "read a JSON observation from a file (- for stdin); flags override its fields")
	for _, f := range floatFields {
		fs.Float64(f.name, 0, f.usage)
	}
	fs.Int("weather-code", 0, "WMO weather code")
	fs.Bool("night", false, "render as night")
}

// observationFromFlags reads --input, then applies every flag that was set.
// Unset fields stay nil so the engine defaults apply.
func observationFromFlags(fs *pflag.FlagSet, stdin io.Reader) (weather.Observation, error) {
	var obs weather.Observation

	path, err := fs.GetString("input")
	if err != nil {
		return obs, err
	}
	if path != "" {
		if err := readObservation(path, stdin, &obs); err != nil {
			return obs, err
		}
	}

	for _, f := range floatFields {
		if !fs.Changed(f.name) {
			continue
		}
		v, err := fs.GetFloat64(f.name)
		if err != nil {
			return obs, err
		}
		*f.field(&obs) = weather.Float64(v)
	}
	if fs.Changed("weather-code") {
		code, err := fs.GetInt("weather-code")
		if err != nil {
			return obs, err
		}
		obs.WeatherCode = weather.Int(code)
	}
	if fs.Changed("night") {
		night, err := fs.GetBool("night")
		if err != nil {
			return obs, err
		}
		obs.IsDay = weather.Bool(!night)
	}
	return obs, nil
}

func readObservation(path string, stdin io.Reader, obs *weather.Observation) error {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open observation: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	if err := json.NewDecoder(r).Decode(obs); err != nil {
		return fmt.Errorf("decode observation %s: %w", path, err)
	}
	return nil
}
