package shape_test

import (
	"math"
	"testing"

	"github.com/okian/aura/internal/domain/severity"
	"github.com/okian/aura/internal/domain/shape"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBaseSides(t *testing.T) {
	Convey("Given cloud cover readings", t, func() {
		Convey("Then a clear sky is a circle", func() {
			So(shape.BaseSides(0), ShouldEqual, shape.CircleSides)
		})

		Convey("Then 35% is a triangle and 100% a decagon", func() {
			So(shape.BaseSides(30), ShouldEqual, 3)
			So(shape.BaseSides(35), ShouldEqual, 3)
			So(shape.BaseSides(40), ShouldEqual, 4)
			So(shape.BaseSides(100), ShouldEqual, 10)
		})

		Convey("Then 0-30% interpolates from circle to triangle", func() {
			So(shape.BaseSides(15), ShouldEqual, 501)
			So(shape.BaseSides(29.99), ShouldBeLessThanOrEqualTo, 4)
		})

		Convey("Then the count never decreases within [30,100]", func() {
			prev := 0
			for c := 30.0; c <= 100; c += 0.5 {
				n := shape.BaseSides(c)
				So(n, ShouldBeGreaterThanOrEqualTo, prev)
				So(n, ShouldBeLessThanOrEqualTo, 10)
				prev = n
			}
		})
	})
}

func TestSynthesize(t *testing.T) {
	calm := severity.Result{Score: 0.02, WeatherType: severity.Normal}

	Convey("Given a calm reading under a clear sky", t, func() {
		d := shape.Synthesize(0, calm)

		Convey("Then the outline is a circle with round corners", func() {
			So(d.Kind, ShouldEqual, shape.Circle)
			So(d.Count(), ShouldBeGreaterThanOrEqualTo, shape.CircleSides)
			So(d.Vertices, ShouldBeEmpty)
			So(d.CornerSmoothing, ShouldEqual, 50)
		})
	})

	Convey("Given a calm reading under full overcast", t, func() {
		d := shape.Synthesize(100, calm)

		Convey("Then the base polygon has 10 sides and is smoothed to 16", func() {
			So(d.BaseSides, ShouldEqual, 10)
			So(d.Kind, ShouldEqual, shape.Polygon)
			So(d.Sides, ShouldEqual, shape.MinSmoothSides)
			So(len(d.Vertices), ShouldEqual, shape.MinSmoothSides)
		})
	})

	Convey("Given a severe thunderstorm", t, func() {
		r := severity.Result{Score: 0.8, WeatherType: severity.Thunderstorm}
		d := shape.Synthesize(35, r)

		Convey("Then the outline is a star within the thunderstorm range", func() {
			So(d.Kind, ShouldEqual, shape.Star)
			So(d.BaseSides, ShouldEqual, 3)
			So(d.Star.Points, ShouldEqual, 9)
			So(len(d.Vertices), ShouldEqual, 18)
			So(d.Star.Sharpness, ShouldAlmostEqual, 0.56, 1e-9)
			So(d.Star.InnerRadiusRatio, ShouldAlmostEqual, 0.46, 1e-9)
			So(d.CornerSmoothing, ShouldAlmostEqual, 10, 1e-9)
		})

		Convey("Then the first tip is at the top and valleys sit inside", func() {
			So(d.Vertices[0].X, ShouldAlmostEqual, 50, 1e-9)
			So(d.Vertices[0].Y, ShouldAlmostEqual, 0, 1e-9)
			for i := 1; i < len(d.Vertices); i += 2 {
				dx, dy := d.Vertices[i].X-50, d.Vertices[i].Y-50
				So(math.Hypot(dx, dy), ShouldBeLessThan, 50)
			}
		})
	})

	Convey("Given star point ranges per weather type", t, func() {
		cases := []struct {
			kind     severity.WeatherType
			min, max int
		}{
			{severity.Thunderstorm, 8, 16},
			{severity.HeavyRain, 6, 12},
			{severity.HeavySnow, 6, 12},
			{severity.HighWind, 6, 10},
			{severity.Showers, 5, 8},
			{severity.LightPrecip, 4, 6},
			{severity.Fog, 3, 5},
			{severity.Normal, 3, 8},
		}

		Convey("Then point counts stay in range for any base", func() {
			for _, c := range cases {
				for _, base := range []int{3, 7, 10, shape.CircleSides} {
					p := shape.StarFor(severity.Result{Score: 0.5, WeatherType: c.kind}, base)
					So(p.Points, ShouldBeBetweenOrEqual, c.min, c.max)
					So(p.Intensity, ShouldEqual, 0.5)
				}
			}
		})
	})

	Convey("Corner smoothing decreases with score", t, func() {
		So(shape.CornerSmoothing(0.05), ShouldEqual, 50)
		So(shape.CornerSmoothing(0.2), ShouldAlmostEqual, 40, 1e-9)
		So(shape.CornerSmoothing(1), ShouldEqual, 0)
	})
}
