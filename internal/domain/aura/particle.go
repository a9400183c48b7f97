package aura

import (
	"math"

	"github.com/okian/aura/internal/domain/palette"
)

const (
	minParticles = 30
	maxParticles = 200
)

// particleStrategy scatters small radial dots that drift with the wind.
type particleStrategy struct{}

func (particleStrategy) Mode() Mode { return Particle }

// ParticleCount is the number of dots for the given effects, in [30,200].
func ParticleCount(turbulence, density float64) int {
	n := 50 + turbulence*100 + density
	return int(math.Ceil(math.Max(minParticles, math.Min(maxParticles, n))))
}

func (particleStrategy) Compose(in Inputs, rng Random) Descriptor {
	s := in.Snapshot
	w := in.Effects.Wind
	p := in.Effects.Precipitation
	hue, sat := in.Palette.TempHue, in.Palette.Saturation
	alt := in.Effects.AltitudeIntensity

	dirX := math.Cos(degrees(s.WindDirection))
	dirY := math.Sin(degrees(s.WindDirection))
	drift := w.Turbulence * 15
	reach := 20 + w.Spread*2

	count := ParticleCount(w.Turbulence, p.ParticleDensity)
	layers := make([]Layer, 0, count+p.StreakCount)
	for i := range count {
		angle := rng.Float64() * 2 * math.Pi
		distance := rng.Float64() * reach
		bias := (rng.Float64() - 0.5) * drift
		x := center + math.Cos(angle)*distance + dirX*bias
		y := center + math.Sin(angle)*distance + dirY*bias

		h := palette.Wrap(float64(i)*15 + hue + w.Turbulence*60)
		lightness := 30 + float64(i%4)*20
		size := 3 + rng.Float64()*8 + w.Turbulence*5
		alpha := 0.4 + rng.Float64()*0.4
		layers = append(layers, radial(RoleParticle, x, y,
			stop(palette.NewHSLA(h, sat, lightness, alpha), 0),
			stop(palette.NewHSLA(h, sat, lightness, alpha*0.5), size*0.3),
			fade(size),
		))
	}

	if isWet(p) {
		wetSat := wetSaturation(in)
		streak := palette.NewHSLA(hue, wetSat, 50, p.Intensity*0.4)
		length := 10.0
		if p.IsSnow {
			streak = palette.NewHSLA(hue, wetSat, 90, p.Intensity*0.3)
			length = 15
		}
		rain := rainAngle(s.WindDirection)
		for range p.StreakCount {
			y := 10 + rng.Float64()*80
			layers = append(layers, linear(RoleStreak, rain,
				fade(y-length),
				stop(streak, y),
				fade(y+length),
			))
		}
	}

	return Descriptor{
		Layers: layers,
		Filters: []Filter{
			{Name: Brightness, Value: alt * dayNight(s.IsDay, 0.8)},
			{Name: Blur, Value: p.Blur * 0.5},
			saturateFilter(p),
		},
		Shadow:  shadow(8, 25, palette.NewHSLA(hue, sat, 20, 0.2*alt)),
		Opacity: 1,
	}
}
