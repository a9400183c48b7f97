package aura

import (
	"math"

	"github.com/okian/aura/internal/domain/palette"
)

// layeredStrategy stacks concentric layers; turbulent wind turns every other
// layer into a linear gradient along the wind.
type layeredStrategy struct{}

func (layeredStrategy) Mode() Mode { return Layered }

func (layeredStrategy) Compose(in Inputs, rng Random) Descriptor {
	s := in.Snapshot
	w := in.Effects.Wind
	p := in.Effects.Precipitation
	hue, sat := in.Palette.TempHue, in.Palette.Saturation
	alt := in.Effects.AltitudeIntensity

	useLinear := w.Turbulence > 0.5
	push := w.Turbulence * 8
	dirX := math.Cos(degrees(s.WindDirection))
	dirY := math.Sin(degrees(s.WindDirection))

	layers := make([]Layer, 0, w.Layers+p.StreakCount+p.DropletCount)
	for i := range w.Layers {
		progress := float64(i) / float64(w.Layers-1)
		c := palette.NewHSLA(palette.Wrap(hue+progress*60), sat, 50+progress*20, 0.8-progress*0.3)

		if useLinear && i%2 == 0 {
			layers = append(layers, linear(RoleBase, palette.Wrap(s.WindDirection+float64(i)*30),
				stop(c, 0),
				fade(50+w.Spread),
			))
			continue
		}

		start := progress * 30
		layers = append(layers, radial(RoleBase,
			center+dirX*push*progress,
			center+dirY*push*progress,
			stop(c, start),
			fade(start+20+w.Spread),
		))
	}

	if isWet(p) {
		wetSat := wetSaturation(in)
		streak := palette.NewHSLA(hue, wetSat, 65, p.Intensity*0.45)
		if p.IsSnow {
			streak = palette.NewHSLA(hue, wetSat, 85, p.Intensity*0.35)
		}
		rain := rainAngle(s.WindDirection)
		spacing := 80 / float64(max(1, p.StreakCount))
		for i := range p.StreakCount {
			x := 10 + float64(i)*spacing
			length := 10 + rng.Float64()*15
			layers = append(layers, linear(RoleStreak, rain,
				fade(x-length),
				stop(streak, x),
				stop(streak, x+1),
				fade(x+length),
			))
		}
		layers = append(layers, droplets(in, rng, 0.5, 0.25)...)
	}

	// Low pressure spreads the shadow further out.
	offset := 15 + (standardPressure-s.Pressure)/50
	filters := []Filter{
		{Name: Brightness, Value: alt * dayNight(s.IsDay, 0.75)},
		{Name: Blur, Value: p.Blur},
		saturateFilter(p),
	}
	filters = append(filters, wetGloss(p)...)

	return Descriptor{
		Layers:  layers,
		Filters: filters,
		Shadow:  shadow(offset, 40, palette.NewHSLA(hue, sat, 15, 0.4*alt)),
		Opacity: 1,
	}
}
