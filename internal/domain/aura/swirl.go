package aura

import (
	"math"

	"github.com/okian/aura/internal/domain/palette"
	"github.com/okian/aura/internal/domain/shape"
)

// swirlStrategy winds shrinking radial gradients two turns outward over a
// conic base and rotates the whole aura with the wind.
type swirlStrategy struct{}

func (swirlStrategy) Mode() Mode { return Swirl }

func (swirlStrategy) Compose(in Inputs, _ Random) Descriptor {
	s := in.Snapshot
	w := in.Effects.Wind
	p := in.Effects.Precipitation
	hue, sat := in.Palette.TempHue, in.Palette.Saturation
	alt := in.Effects.AltitudeIntensity

	rotation := s.WindDirection
	if rotation == 0 {
		rotation = w.Turbulence * 45
	}

	spirals := max(4, w.Layers*2)
	layers := make([]Layer, 0, spirals+1+p.StreakCount*2)
	for i := range spirals {
		progress := float64(i) / float64(spirals)
		angle := degrees(palette.Wrap(rotation + progress*720))
		radius := progress * 40
		h := palette.Wrap(hue + float64(i)*25)
		lightness := 45 + float64(i%3)*20
		size := 30 + (1-progress)*25
		layers = append(layers, radial(RoleSpiral,
			center+math.Cos(angle)*radius,
			center+math.Sin(angle)*radius,
			stop(palette.NewHSLA(h, sat, lightness, 0.7-progress*0.4), 0),
			stop(palette.NewHSLA(h, sat, lightness-10, 0.5-progress*0.3), size*0.4),
			fade(size),
		))
	}

	layers = append(layers, Layer{
		Kind:   ConicGradient,
		Role:   RoleBase,
		Center: shape.Point{X: center, Y: center},
		Angle:  rotation,
		Stops: []ColorStop{
			stop(palette.HSL(hue, sat, 55), 0),
			stop(palette.HSL(palette.Wrap(hue+40), sat, 50), 120),
			stop(palette.HSL(palette.Wrap(hue+80), sat, 45), 240),
			stop(palette.HSL(hue, sat, 55), 360),
		},
	})

	if isWet(p) {
		wetSat := wetSaturation(in)
		streak := palette.NewHSLA(hue, wetSat, 60, p.Intensity*0.3)
		if p.IsSnow {
			streak = palette.NewHSLA(hue, wetSat, 90, p.Intensity*0.2)
		}
		n := p.StreakCount * 2
		for i := range n {
			angle := degrees(float64(i)*fullCircleDeg/float64(n) + rotation)
			radius := 30 + float64(i%3)*10
			l := radial(RoleStreak,
				center+math.Cos(angle)*radius,
				center+math.Sin(angle)*radius,
				stop(streak, 0),
				fade(15),
			)
			l.Ellipse = true
			layers = append(layers, l)
		}
	}

	return Descriptor{
		Layers: layers,
		Filters: []Filter{
			{Name: Brightness, Value: alt * dayNight(s.IsDay, 0.7)},
			{Name: Blur, Value: w.Turbulence*2 + p.Blur},
			saturateFilter(p),
		},
		Shadow:   shadow(math.Min(25, w.Turbulence*20), 50, palette.NewHSLA(hue, sat, 10, 0.5*alt)),
		Opacity:  1,
		Rotation: rotation,
	}
}
