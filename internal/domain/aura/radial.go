package aura

import (
	"math"

	"github.com/okian/aura/internal/domain/palette"
)

// radialStrategy spreads radial gradients around the centre, pushed by the
// wind, and overlays rain streaks, droplets and wet highlights.
type radialStrategy struct{}

func (radialStrategy) Mode() Mode { return Radial }

func (radialStrategy) Compose(in Inputs, rng Random) Descriptor {
	s := in.Snapshot
	w := in.Effects.Wind
	p := in.Effects.Precipitation
	hue, sat := in.Palette.TempHue, in.Palette.Saturation
	alt := in.Effects.AltitudeIntensity

	// The wind pushes every centre downwind.
	push := w.Turbulence * 10
	pushX := math.Cos(degrees(s.WindDirection)) * push
	pushY := math.Sin(degrees(s.WindDirection)) * push

	layers := make([]Layer, 0, w.Layers+p.StreakCount+p.DropletCount+p.HighlightCount)
	for i := range w.Layers {
		angle := degrees(float64(i)*fullCircleDeg/float64(w.Layers) + w.Turbulence*float64(i)*30)
		x := center + math.Sin(angle)*w.Spread + pushX
		y := center + math.Cos(angle)*w.Spread + pushY
		lightness := 40 + float64(i%2)*20
		layers = append(layers, radial(RoleBase, x, y,
			stop(palette.HSL(palette.Wrap(hue+float64(i)*20), sat, lightness), 0),
			fade(60+w.Turbulence*20),
		))
	}

	if isWet(p) {
		wetSat := wetSaturation(in)
		streak := palette.NewHSLA(hue, wetSat, 70, p.Intensity*0.5)
		if p.IsSnow {
			streak = palette.NewHSLA(hue, wetSat, 90, p.Intensity*0.4)
		}
		rain := rainAngle(s.WindDirection)
		spacing := 100 / float64(max(1, p.StreakCount))
		for i := range p.StreakCount {
			x := float64(i)*spacing + rng.Float64()*10 - 5
			length := 15 + rng.Float64()*20
			layers = append(layers, linear(RoleStreak, rain,
				fade(math.Max(0, x-length/2)),
				stop(streak, x-1),
				stop(streak, x),
				stop(streak, x+1),
				fade(math.Min(100, x+length/2)),
			))
		}

		layers = append(layers, droplets(in, rng, 0.6, 0.3)...)

		gloss := palette.NewHSLA(hue, wetSat, 90, p.GlossIntensity*0.4)
		tilt := palette.Wrap(s.WindDirection + highlightTilt)
		for range p.HighlightCount {
			y := rng.Float64() * 100
			size := 5 + rng.Float64()*10
			layers = append(layers, linear(RoleHighlight, tilt,
				fade(y-size),
				stop(gloss, y),
				fade(y+size),
			))
		}
	}

	humidityBlur := s.Humidity / 100 * 3
	filters := []Filter{
		{Name: Brightness, Value: alt * uvBrightness(s.UVIndex, 0.3) * dayNight(s.IsDay, 0.7)},
		{Name: Blur, Value: humidityBlur + p.Blur},
		saturateFilter(p),
	}
	filters = append(filters, wetGloss(p)...)

	return Descriptor{
		Layers:  layers,
		Filters: filters,
		Shadow: shadow(
			math.Min(20, w.Turbulence*15),
			30+alt*20,
			palette.NewHSLA(hue, sat, 20, 0.3+alt*0.2),
		),
		Opacity: math.Min(1, s.Visibility/10),
	}
}
