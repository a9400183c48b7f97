package aura

import (
	"github.com/okian/aura/internal/domain/palette"
)

// linearStrategy fans linear gradients out from the wind direction, 45° apart.
type linearStrategy struct{}

func (linearStrategy) Mode() Mode { return Linear }

func (linearStrategy) Compose(in Inputs, rng Random) Descriptor {
	s := in.Snapshot
	w := in.Effects.Wind
	p := in.Effects.Precipitation
	hue, sat := in.Palette.TempHue, in.Palette.Saturation
	alt := in.Effects.AltitudeIntensity

	base := s.WindDirection + w.Turbulence*180
	layers := make([]Layer, 0, w.Layers+p.StreakCount*2+p.DropletCount)
	for i := range w.Layers {
		progress := float64(i) / float64(w.Layers-1)
		h := palette.Wrap(hue + progress*80)
		lightness := 40 + progress*30
		layers = append(layers, linear(RoleBase, palette.Wrap(base+float64(i)*45),
			stop(palette.NewHSLA(h, sat, lightness, 0.9-progress*0.4), 0),
			stop(palette.NewHSLA(palette.Wrap(h+40), sat, lightness-10, 0.7-progress*0.3), 50),
			fade(100),
		))
	}

	if isWet(p) {
		wetSat := wetSaturation(in)
		streak := palette.NewHSLA(hue, wetSat, 60, p.Intensity*0.6)
		if p.IsSnow {
			streak = palette.NewHSLA(hue, wetSat, 90, p.Intensity*0.5)
		}
		rain := rainAngle(s.WindDirection)
		for range p.StreakCount * 2 {
			layers = append(layers, linear(RoleStreak, rain,
				stop(streak, 0),
				stop(streak, 50-p.VerticalShift),
				fade(50+p.VerticalShift),
			))
		}
		layers = append(layers, droplets(in, rng, 0.5, 0.25)...)
	}

	filters := []Filter{
		{Name: Brightness, Value: alt * uvBrightness(s.UVIndex, 0.2) * dayNight(s.IsDay, 0.75)},
		{Name: Blur, Value: p.Blur},
		saturateFilter(p),
	}
	filters = append(filters, wetGloss(p)...)

	return Descriptor{
		Layers:  layers,
		Filters: filters,
		Shadow:  shadow(20, 45, palette.NewHSLA(hue, sat, 20, 0.4*alt)),
		Opacity: 1,
	}
}
