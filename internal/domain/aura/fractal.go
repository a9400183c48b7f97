package aura

import (
	"math"

	"github.com/okian/aura/internal/domain/palette"
	"github.com/okian/aura/internal/domain/weather"
)

// Pattern is the sub-pattern drawn in a fractal cell.
type Pattern int

// Cell patterns, selected by (i+j) mod 3.
const (
	Cross Pattern = iota
	Rings
	Diamond
)

// CellPattern returns the pattern of cell (i, j).
func CellPattern(i, j int) Pattern {
	return Pattern((i + j) % 3)
}

// GridSize is the fractal grid edge for a wind layer count.
func GridSize(layers int) int {
	return max(6, int(math.Floor(float64(layers)*1.5)))
}

// fractalStrategy tiles the aura with crosses, rings and diamonds.
// Clear skies sharpen the contrast; fog softens it.
type fractalStrategy struct{}

func (fractalStrategy) Mode() Mode { return Fractal }

func (fractalStrategy) Compose(in Inputs, rng Random) Descriptor {
	s := in.Snapshot
	w := in.Effects.Wind
	p := in.Effects.Precipitation
	hue, sat := in.Palette.TempHue, in.Palette.Saturation
	alt := in.Effects.AltitudeIntensity
	dir := s.WindDirection

	grid := GridSize(w.Layers)
	cell := 100 / float64(grid)
	layers := make([]Layer, 0, grid*grid*2+p.StreakCount)
	for i := range grid {
		for j := range grid {
			cx := float64(i)*cell + cell/2
			cy := float64(j)*cell + cell/2
			h := palette.Wrap(hue + float64(i+j)*25 + w.Turbulence*40)
			lightness := 40 + float64((i+j)%3)*25

			switch CellPattern(i, j) {
			case Cross:
				c := palette.NewHSLA(h, sat, lightness, 0.7)
				width := cell * 0.15
				layers = append(layers,
					linear(RoleCell, palette.Wrap(dir), fade(cx-width), stop(c, cx), fade(cx+width)),
					linear(RoleCell, palette.Wrap(dir+90), fade(cy-width), stop(c, cy), fade(cy+width)),
				)
			case Rings:
				for ring := range 2 {
					r := cell * 0.4 / 2 * float64(ring+1)
					layers = append(layers, radial(RoleCell, cx, cy,
						fade(r*0.7),
						stop(palette.NewHSLA(h, sat, lightness, 0.6), r*0.7),
						stop(palette.NewHSLA(h, sat, lightness, 0.3), r),
						fade(r*1.2),
					))
				}
			case Diamond:
				c := palette.NewHSLA(h, sat, lightness, 0.8)
				angle := palette.Wrap(dir + float64(i+j)*30)
				half := cell * 0.6 / 2
				layers = append(layers,
					linear(RoleCell, angle, fade(cx-half), stop(c, cx), fade(cx+half)),
					linear(RoleCell, palette.Wrap(angle+90), fade(cy-half), stop(c, cy), fade(cy+half)),
				)
			}
		}
	}

	if isWet(p) {
		wetSat := wetSaturation(in)
		streak := palette.NewHSLA(hue, wetSat, 50, p.Intensity*0.3)
		if p.IsSnow {
			streak = palette.NewHSLA(hue, wetSat, 90, p.Intensity*0.2)
		}
		rain := rainAngle(dir)
		for range p.StreakCount {
			y := rng.Float64() * 100
			layers = append(layers, linear(RoleStreak, rain, fade(y-5), stop(streak, y), fade(y+5)))
		}
	}

	return Descriptor{
		Layers: layers,
		Filters: []Filter{
			{Name: Brightness, Value: alt * dayNight(s.IsDay, 0.7)},
			{Name: Contrast, Value: (1 + w.Turbulence) * contrastModifier(s.WeatherCode)},
			{Name: Blur, Value: p.Blur * 0.3},
			saturateFilter(p),
		},
		Shadow:  shadow(10, 35, palette.NewHSLA(hue, sat, 25, 0.3*alt)),
		Opacity: 1,
	}
}

func contrastModifier(code int) float64 {
	switch {
	case weather.IsClear(code):
		return 1.2
	case weather.IsFog(code):
		return 0.8
	default:
		return 1
	}
}
