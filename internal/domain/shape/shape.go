// Package shape derives the outline an aura is clipped to: a polygon whose
// side count follows cloud cover, turned into a star as severity rises.
package shape

import (
	"math"

	"github.com/okian/aura/internal/domain/severity"
)

// Outline geometry constants. Coordinates are percentages of the aura box.
const (
	// CircleSides stands in for a circle.
	CircleSides = 999
	// MinSmoothSides is the side count calm outlines are rounded up to.
	MinSmoothSides = 16

	minSides        = 3
	outerRadius     = 50.0
	center          = 50.0
	spikeThreshold  = 0.1
	smoothThreshold = 0.2
	roundCorners    = 50.0
	interpolateTo   = 30.0
)

// Kind is the outline geometry.
type Kind string

// Outline kinds.
const (
	Circle  Kind = "circle"
	Polygon Kind = "polygon"
	Star    Kind = "star"
)

// Point is a vertex in percent coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StarParams controls star synthesis. Intensity 0 means no spikes.
type StarParams struct {
	Points           int     `json:"points"`
	Intensity        float64 `json:"intensity"`
	Sharpness        float64 `json:"sharpness"`
	InnerRadiusRatio float64 `json:"inner_radius_ratio"`
}

// Descriptor is the derived outline.
type Descriptor struct {
	Kind            Kind        `json:"kind"`
	BaseSides       int         `json:"base_sides"`
	Sides           int         `json:"sides,omitempty"`
	Star            *StarParams `json:"star,omitempty"`
	Vertices        []Point     `json:"vertices,omitempty"`
	CornerSmoothing float64     `json:"corner_smoothing"`
}

// Count returns the polygon side count or the star point count.
func (d Descriptor) Count() int {
	if d.Star != nil {
		return d.Star.Points
	}
	return d.Sides
}

// BaseSides maps cloud cover (0-100) to a polygon side count: 0 is a circle,
// 0-30 interpolates down to a triangle, and every further 10% adds a side.
func BaseSides(cloudCover float64) int {
	switch {
	case cloudCover <= 0:
		return CircleSides
	case cloudCover < interpolateTo:
		return int(math.Round(CircleSides - cloudCover/interpolateTo*(CircleSides-minSides)))
	default:
		return minSides + int(math.Floor((cloudCover-interpolateTo)/10))
	}
}

type starRule struct {
	minPoints, maxPoints int
	pointGain            float64
	sharpBase, sharpGain float64
	innerBase, innerGain float64
}

var starRules = map[severity.WeatherType]starRule{ //nolint:gochecknoglobals // static lookup table
	severity.Thunderstorm: {8, 16, 8, 0.4, 0.2, 0.3, 0.2},
	severity.HeavyRain:    {6, 12, 6, 0.3, 0.15, 0.4, 0.2},
	severity.HeavySnow:    {6, 12, 6, 0.25, 0.1, 0.45, 0.15},
	severity.HighWind:     {6, 10, 4, 0.35, 0.15, 0.35, 0.2},
	severity.Showers:      {5, 8, 3, 0.2, 0.1, 0.5, 0.15},
	severity.LightPrecip:  {4, 6, 2, 0.2, 0.05, 0.55, 0.1},
	severity.Fog:          {3, 5, 2, 0.15, 0.05, 0.6, 0.1},
}

var defaultStarRule = starRule{3, 8, 5, 0.25, 0.15, 0.5, 0.2} //nolint:gochecknoglobals // static default

// StarFor returns the star parameters for a severity result on top of a base
// side count. Below the spike threshold the result has zero intensity.
func StarFor(r severity.Result, baseSides int) StarParams {
	p := StarParams{Points: baseSides, Sharpness: 0.3, InnerRadiusRatio: 0.5}
	if r.Score <= spikeThreshold {
		return p
	}
	rule, ok := starRules[r.WeatherType]
	if !ok {
		rule = defaultStarRule
	}
	s := r.Score
	points := baseSides + int(math.Floor(s*rule.pointGain))
	p.Points = max(rule.minPoints, min(rule.maxPoints, points))
	p.Intensity = s
	p.Sharpness = rule.sharpBase + s*rule.sharpGain
	p.InnerRadiusRatio = rule.innerBase + s*rule.innerGain
	return p
}

// CornerSmoothing is the border-radius analogue in percent: fully round for
// calm readings, shrinking linearly as the score rises.
func CornerSmoothing(score float64) float64 {
	if score < spikeThreshold {
		return roundCorners
	}
	return (1 - score) * roundCorners
}

// Synthesize derives the outline from cloud cover and a severity result.
func Synthesize(cloudCover float64, r severity.Result) Descriptor {
	base := BaseSides(cloudCover)
	star := StarFor(r, base)
	d := Descriptor{BaseSides: base, CornerSmoothing: CornerSmoothing(r.Score)}

	if star.Intensity > 0 {
		d.Kind = Star
		d.Star = &star
		d.Vertices = StarVertices(star)
		return d
	}

	sides := star.Points
	if r.Score < smoothThreshold {
		sides = max(sides, MinSmoothSides)
	}
	d.Sides = sides
	if sides >= CircleSides {
		d.Kind = Circle
		return d
	}
	d.Kind = Polygon
	d.Vertices = PolygonVertices(sides)
	return d
}

// PolygonVertices returns a regular polygon inscribed in the box, first
// vertex at the top.
func PolygonVertices(sides int) []Point {
	pts := make([]Point, 0, sides)
	for i := range sides {
		a := vertexAngle(i, sides)
		pts = append(pts, Point{X: center + outerRadius*math.Cos(a), Y: center + outerRadius*math.Sin(a)})
	}
	return pts
}

// StarVertices alternates outer tips and inner valleys, starting at the top.
// Valleys sit at the angular midpoint between successive tips.
func StarVertices(p StarParams) []Point {
	inner := outerRadius * (p.InnerRadiusRatio + (1-p.InnerRadiusRatio)*(1-p.Intensity))
	valley := inner + p.Sharpness*(outerRadius-inner)

	pts := make([]Point, 0, 2*p.Points)
	for i := range p.Points {
		a := vertexAngle(i, p.Points)
		mid := (a + vertexAngle(i+1, p.Points)) / 2
		pts = append(pts,
			Point{X: center + outerRadius*math.Cos(a), Y: center + outerRadius*math.Sin(a)},
			Point{X: center + valley*math.Cos(mid), Y: center + valley*math.Sin(mid)},
		)
	}
	return pts
}

func vertexAngle(i, n int) float64 {
	return float64(i)*2*math.Pi/float64(n) - math.Pi/2
}
