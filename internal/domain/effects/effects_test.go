package effects_test

import (
	"testing"

	"github.com/okian/aura/internal/domain/effects"
	"github.com/okian/aura/internal/domain/weather"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWindEffect(t *testing.T) {
	Convey("Given wind speeds", t, func() {
		Convey("Then layers are clamped to [2,8]", func() {
			So(effects.WindEffect(0).Layers, ShouldEqual, 2)
			So(effects.WindEffect(24).Layers, ShouldEqual, 2)
			So(effects.WindEffect(25).Layers, ShouldEqual, 3)
			So(effects.WindEffect(100).Layers, ShouldEqual, 6)
			So(effects.WindEffect(400).Layers, ShouldEqual, 8)
		})

		Convey("Then spread caps at 40 and turbulence is linear", func() {
			w := effects.WindEffect(50)
			So(w.Spread, ShouldEqual, 10)
			So(w.Turbulence, ShouldEqual, 0.5)
			So(effects.WindEffect(300).Spread, ShouldEqual, 40)
		})
	})
}

func TestAltitudeIntensity(t *testing.T) {
	Convey("Altitude brightens linearly up to the reference peak", t, func() {
		So(effects.AltitudeIntensity(0), ShouldEqual, 0.5)
		So(effects.AltitudeIntensity(8848), ShouldEqual, 1.0)
		So(effects.AltitudeIntensity(4424), ShouldAlmostEqual, 0.75, 1e-9)
	})
}

func TestPrecipitationEffect(t *testing.T) {
	Convey("Given 15 mm/h below freezing", t, func() {
		p := effects.PrecipitationEffect(15, -2)

		Convey("Then it is snow with derived counts", func() {
			So(p.IsSnow, ShouldBeTrue)
			So(p.Intensity, ShouldAlmostEqual, 0.3, 1e-9)
			So(p.Blur, ShouldAlmostEqual, 1.5, 1e-9)
			So(p.Desaturation, ShouldAlmostEqual, 0.15, 1e-9)
			So(p.StreakCount, ShouldEqual, 3)
			So(p.DropletCount, ShouldEqual, 5)
			So(p.HighlightCount, ShouldEqual, 3)
			So(p.VerticalShift, ShouldAlmostEqual, 0.75, 1e-9)
			So(p.GlossIntensity, ShouldAlmostEqual, 0.18, 1e-9)
			So(p.ParticleDensity, ShouldAlmostEqual, 7.5, 1e-9)
		})
	})

	Convey("Given a downpour above freezing", t, func() {
		p := effects.PrecipitationEffect(80, 12)

		Convey("Then intensity saturates at 1", func() {
			So(p.IsSnow, ShouldBeFalse)
			So(p.Intensity, ShouldEqual, 1)
			So(p.GlossIntensity, ShouldAlmostEqual, 0.6, 1e-9)
		})
	})

	Convey("Given a rate far beyond any real storm", t, func() {
		p := effects.PrecipitationEffect(1e20, 12)

		Convey("Then the derived counts stay bounded", func() {
			capped := effects.PrecipitationEffect(weather.MaxPrecipitation, 12)
			So(p, ShouldResemble, capped)
			So(p.StreakCount, ShouldEqual, 100)
			So(p.DropletCount, ShouldEqual, 166)
			So(p.HighlightCount, ShouldEqual, 125)
		})
	})

	Convey("Derive uses the snapshot fields", t, func() {
		s := weather.Default()
		s.WindDirection = 135
		p := effects.Derive(s)
		So(p.WindDirection, ShouldEqual, 135)
		So(p.Wind.Layers, ShouldEqual, 2)
		So(p.Precipitation.Intensity, ShouldEqual, 0)
		So(p.AltitudeIntensity, ShouldAlmostEqual, 0.5+100/8848.0*0.5, 1e-9)
	})
}
