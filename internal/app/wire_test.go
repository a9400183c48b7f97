package service_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/aura/internal/adapters/weathersource/openmeteo"
	"github.com/okian/aura/internal/adapters/weathersource/synthetic"
	service "github.com/okian/aura/internal/app"
	"github.com/okian/aura/internal/config"
	"github.com/okian/aura/internal/domain/aura"
	"github.com/okian/aura/internal/domain/model"
)

func TestNewFromConfig(t *testing.T) {
	Convey("Given a loaded configuration", t, func() {
		cfg := config.New(context.Background())
		cfg.WorkerCount = 3
		cfg.QueueSize = 7
		cfg.MaxBatchSize = 5
		cfg.DefaultMode = "particle"

		Convey("When the source is openmeteo", func() {
			So(service.NewSource(cfg), ShouldHaveSameTypeAs, &openmeteo.Client{})
		})

		Convey("When the source is synthetic", func() {
			cfg.Source = config.SourceSynthetic
			cfg.RandomSeed = 9
			svc := service.NewFromConfig(cfg)

			Convey("Then the service carries the configured limits", func() {
				So(service.NewSource(cfg), ShouldHaveSameTypeAs, &synthetic.Source{})
				So(svc.MaxBatchSize(), ShouldEqual, 5)
				So(svc.DefaultMode(), ShouldEqual, aura.Particle)
				stats := svc.GetStats()
				So(stats["workerCount"], ShouldEqual, 3)
				So(stats["queueSize"], ShouldEqual, 7)
				So(stats["source"], ShouldEqual, "synthetic")
			})

			Convey("Then live renders of special places need no network", func() {
				r, err := svc.RenderLive(context.Background(), model.LiveRequest{Query: "South Pole", Mode: svc.ResolveMode("")})
				So(err, ShouldBeNil)
				So(r.Location.Name, ShouldEqual, "South Pole")
				So(r.Mode, ShouldEqual, aura.Particle)
			})
		})
	})
}
