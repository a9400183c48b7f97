package aura

import (
	"math"

	"github.com/okian/aura/internal/domain/effects"
	"github.com/okian/aura/internal/domain/palette"
	"github.com/okian/aura/internal/domain/shape"
)

// Shared tuning.
const (
	center           = 50.0
	wetThreshold     = 0.1
	uvScale          = 11.0
	fullCircleDeg    = 360.0
	rainTilt         = 90.0
	highlightTilt    = 45.0
	standardPressure = 1013.0
)

func stop(c palette.HSLA, pos float64) ColorStop {
	return ColorStop{Color: c, Position: pos}
}

func fade(pos float64) ColorStop {
	return ColorStop{Color: palette.Transparent, Position: pos}
}

func radial(role Role, x, y float64, stops ...ColorStop) Layer {
	return Layer{Kind: RadialGradient, Role: role, Center: shape.Point{X: x, Y: y}, Stops: stops}
}

func linear(role Role, angle float64, stops ...ColorStop) Layer {
	return Layer{Kind: LinearGradient, Role: role, Center: shape.Point{X: center, Y: center}, Angle: angle, Stops: stops}
}

func degrees(d float64) float64 {
	return d * math.Pi / 180
}

// isWet reports whether precipitation is heavy enough for overlays.
func isWet(p effects.Precipitation) bool {
	return p.Intensity > wetThreshold
}

// wetSaturation is the palette saturation washed out by precipitation.
func wetSaturation(in Inputs) float64 {
	return math.Max(0, in.Palette.Saturation-in.Effects.Precipitation.Desaturation*100)
}

func rainAngle(windDirection float64) float64 {
	return palette.Wrap(windDirection + rainTilt)
}

func dayNight(isDay bool, night float64) float64 {
	if isDay {
		return 1
	}
	return night
}

func uvBrightness(uv, gain float64) float64 {
	return 1 + uv/uvScale*gain
}

func saturateFilter(p effects.Precipitation) Filter {
	return Filter{Name: Saturate, Value: 100 - p.Desaturation*50}
}

// wetGloss adds the glossy contrast and brightness of a wet surface.
func wetGloss(p effects.Precipitation) []Filter {
	if !isWet(p) {
		return nil
	}
	return []Filter{
		{Name: Contrast, Value: 1 + p.GlossIntensity*0.2},
		{Name: Brightness, Value: 1 + p.GlossIntensity*0.1},
	}
}

func shadow(offset, blur float64, c palette.HSLA) Shadow {
	return Shadow{DX: offset, DY: offset, Blur: blur, Color: c}
}

// droplets scatters small bead highlights over the surface.
func droplets(in Inputs, rng Random, coreAlpha, rimAlpha float64) []Layer {
	p := in.Effects.Precipitation
	hue := in.Palette.TempHue
	sat := wetSaturation(in)
	core := palette.NewHSLA(hue, sat, 95, p.Intensity*coreAlpha)
	rim := palette.NewHSLA(hue, sat, 80, p.Intensity*rimAlpha)

	layers := make([]Layer, 0, p.DropletCount)
	for range p.DropletCount {
		x := 10 + rng.Float64()*80
		y := 10 + rng.Float64()*80
		size := 1 + rng.Float64()*2
		layers = append(layers, radial(RoleDroplet, x, y,
			stop(core, 0),
			stop(core, size*0.3),
			stop(rim, size*0.6),
			fade(size),
		))
	}
	return layers
}
