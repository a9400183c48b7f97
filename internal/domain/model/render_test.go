package model_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/aura/internal/domain/aura"
	model "github.com/okian/aura/internal/domain/model"
	"github.com/okian/aura/internal/domain/weather"
	"github.com/smartystreets/goconvey/convey"
)

func TestRenderRequest(t *testing.T) {
	convey.Convey("Given a JSON render request", t, func() {
		body := `{"observation":{"temperature":12.5,"precipitation":3},"mode":"swirl","seed":42}`

		convey.Convey("When decoding it", func() {
			var req model.RenderRequest
			err := json.Unmarshal([]byte(body), &req)

			convey.Convey("Then fields and the mode name are read", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(req.Mode, convey.ShouldEqual, aura.Swirl)
				convey.So(*req.Seed, convey.ShouldEqual, 42)
				convey.So(*req.Observation.Temperature, convey.ShouldEqual, 12.5)
				convey.So(req.Observation.CloudCover, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the mode is unknown and the seed absent", func() {
			var req model.RenderRequest
			err := json.Unmarshal([]byte(`{"mode":"nebula"}`), &req)

			convey.Convey("Then radial is used and the seed stays unset", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(req.Mode, convey.ShouldEqual, aura.Radial)
				convey.So(req.Seed, convey.ShouldBeNil)
			})
		})
	})
}

func TestLocationLabel(t *testing.T) {
	convey.Convey("Given locations with partial names", t, func() {
		convey.So(model.Location{Name: "Paris", Region: "Île-de-France", Country: "France"}.Label(),
			convey.ShouldEqual, "Paris, Île-de-France, France")
		convey.So(model.Location{Name: "Point Nemo"}.Label(), convey.ShouldEqual, "Point Nemo")
		convey.So(model.Location{Country: "Japan"}.Label(), convey.ShouldEqual, "Japan")
		convey.So(model.Location{}.Label(), convey.ShouldBeEmpty)
	})
}

func TestRenderingJSON(t *testing.T) {
	convey.Convey("Given a rendering", t, func() {
		r := model.Rendering{
			ID:            "abc",
			Mode:          aura.Fractal,
			RequestedMode: aura.Randomizer,
			Weather:       weather.Default(),
		}

		convey.Convey("Then modes encode by name and empty optionals are omitted", func() {
			raw, err := json.Marshal(r)
			convey.So(err, convey.ShouldBeNil)

			var m map[string]any
			convey.So(json.Unmarshal(raw, &m), convey.ShouldBeNil)
			convey.So(m["mode"], convey.ShouldEqual, "fractal")
			convey.So(m["requested_mode"], convey.ShouldEqual, "randomizer")
			convey.So(m, convey.ShouldNotContainKey, "location")
			convey.So(m, convey.ShouldNotContainKey, "css")
		})
	})
}
