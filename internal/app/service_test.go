package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/aura/internal/adapters/repository"
	"github.com/okian/aura/internal/adapters/weathersource"
	service "github.com/okian/aura/internal/app"
	"github.com/okian/aura/internal/domain/aura"
	"github.com/okian/aura/internal/domain/model"
	"github.com/okian/aura/internal/domain/severity"
	"github.com/okian/aura/internal/domain/weather"
	"github.com/okian/aura/pkg/logger"
)

type stubSource struct {
	obs      weather.Observation
	fetchErr error
	queries  []string
	fetched  []model.Location
}

func (s *stubSource) Fetch(_ context.Context, loc model.Location) (weather.Observation, error) {
	s.fetched = append(s.fetched, loc)
	return s.obs, s.fetchErr
}

func (s *stubSource) Geocode(_ context.Context, q string) (model.Location, error) {
	s.queries = append(s.queries, q)
	if q == "Atlantis" {
		return model.Location{}, weathersource.ErrNotFound
	}
	return model.Location{Name: q, Latitude: 10, Longitude: 20}, nil
}

func seed(v int64) *int64 { return &v }

func storm() weather.Observation {
	return weather.Observation{
		WeatherCode:   weather.Int(95),
		WindSpeed:     weather.Float64(70),
		Precipitation: weather.Float64(12),
		CloudCover:    weather.Float64(90),
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New(service.WithLogger(logger.Nop()))

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			So(svc.DefaultMode(), ShouldEqual, aura.Radial)
			So(svc.MaxBatchSize(), ShouldEqual, 100)
			So(svc.GetStats()["started"], ShouldEqual, false)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithLogger(logger.Nop()),
			service.WithWorkerCount(8),
			service.WithQueueSize(500),
			service.WithMaxBatchSize(10),
			service.WithDefaultMode(aura.Swirl),
			service.WithSourceName("synthetic"),
		)

		Convey("Then the options are applied", func() {
			stats := svc.GetStats()
			So(stats["workerCount"], ShouldEqual, 8)
			So(stats["queueSize"], ShouldEqual, 500)
			So(stats["source"], ShouldEqual, "synthetic")
			So(svc.MaxBatchSize(), ShouldEqual, 10)
			So(svc.ResolveMode(""), ShouldEqual, aura.Swirl)
			So(svc.ResolveMode("Fractal"), ShouldEqual, aura.Fractal)
			So(svc.ResolveMode("nope"), ShouldEqual, aura.Radial)
		})
	})
}

func TestService_StartStop(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New(service.WithLogger(logger.Nop()), service.WithWorkerCount(2))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		defer svc.Stop()

		Convey("When starting the service", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil)

			Convey("Then it is marked as started", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["queueLength"], ShouldEqual, 0)
			})

			Convey("And when stopping it", func() {
				svc.Stop()
				svc.Stop()

				Convey("Then it is marked as stopped and refuses batches", func() {
					So(svc.GetStats()["started"], ShouldEqual, false)
					_, err := svc.RenderBatch(ctx, []model.RenderRequest{{}})
					So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
				})
			})
		})
	})
}

func TestService_Render(t *testing.T) {
	Convey("Given a service on a fake clock", t, func() {
		clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
		svc := service.New(
			service.WithLogger(logger.Nop()),
			service.WithClock(clock),
			service.WithRandomSeed(99),
		)
		ctx := context.Background()

		Convey("When rendering a storm with a fixed seed", func() {
			req := model.RenderRequest{Observation: storm(), Mode: aura.Particle, Seed: seed(42)}
			r, err := svc.Render(ctx, req)
			So(err, ShouldBeNil)

			Convey("Then the rendering carries everything that produced it", func() {
				So(r.ID, ShouldNotBeEmpty)
				So(r.Mode, ShouldEqual, aura.Particle)
				So(r.RequestedMode, ShouldEqual, aura.Particle)
				So(r.Seed, ShouldEqual, int64(42))
				So(r.GeneratedAt.Equal(clock.Now()), ShouldBeTrue)
				So(r.Weather.WeatherCode, ShouldEqual, 95)
				So(r.Severity.WeatherType, ShouldEqual, severity.Thunderstorm)
				So(r.Severity.Score, ShouldBeGreaterThan, 0.5)
				So(r.CSS["width"], ShouldEqual, "400px")
				So(r.CSS["background"], ShouldContainSubstring, "radial-gradient")
			})

			Convey("And the same seed replays the same descriptor", func() {
				again, err := svc.Render(ctx, req)
				So(err, ShouldBeNil)
				So(again.Descriptor, ShouldResemble, r.Descriptor)
				So(again.ID, ShouldNotEqual, r.ID)
			})
		})

		Convey("When rendering with the randomizer", func() {
			r, err := svc.Render(ctx, model.RenderRequest{Mode: aura.Randomizer, Seed: seed(7)})
			So(err, ShouldBeNil)

			Convey("Then a concrete mode is chosen and the request is kept", func() {
				So(r.Mode.IsConcrete(), ShouldBeTrue)
				So(r.RequestedMode, ShouldEqual, aura.Randomizer)
			})
		})

		Convey("When no seed is given", func() {
			a, err := svc.Render(ctx, model.RenderRequest{})
			So(err, ShouldBeNil)
			b, err := svc.Render(ctx, model.RenderRequest{})
			So(err, ShouldBeNil)

			Convey("Then each rendering gets its own seed", func() {
				So(a.Seed, ShouldNotEqual, b.Seed)
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := svc.Render(cctx, model.RenderRequest{})

			Convey("Then rendering fails", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}

func TestService_RenderBatch(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(
			service.WithLogger(logger.Nop()),
			service.WithWorkerCount(3),
			service.WithMaxBatchSize(5),
		)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When rendering a batch", func() {
			reqs := []model.RenderRequest{
				{Mode: aura.Radial, Seed: seed(1)},
				{Mode: aura.Layered, Seed: seed(2)},
				{Mode: aura.Swirl, Seed: seed(3)},
				{Mode: aura.Linear, Seed: seed(4)},
				{Mode: aura.Fractal, Seed: seed(5)},
			}
			out, err := svc.RenderBatch(ctx, reqs)
			So(err, ShouldBeNil)

			Convey("Then renderings come back in request order", func() {
				So(len(out), ShouldEqual, len(reqs))
				for i, r := range out {
					So(r.Mode, ShouldEqual, reqs[i].Mode)
					So(r.Seed, ShouldEqual, *reqs[i].Seed)
				}
			})

			Convey("And they match synchronous renders", func() {
				single, err := svc.Render(ctx, reqs[2])
				So(err, ShouldBeNil)
				So(out[2].Descriptor, ShouldResemble, single.Descriptor)
			})
		})

		Convey("When the batch is empty", func() {
			_, err := svc.RenderBatch(ctx, nil)
			So(errors.Is(err, service.ErrEmptyBatch), ShouldBeTrue)
		})

		Convey("When the batch is too large", func() {
			_, err := svc.RenderBatch(ctx, make([]model.RenderRequest, 6))
			So(errors.Is(err, service.ErrBatchTooLarge), ShouldBeTrue)
		})
	})
}

func TestService_RenderLive(t *testing.T) {
	Convey("Given a service with a weather source", t, func() {
		src := &stubSource{obs: storm()}
		svc := service.New(service.WithLogger(logger.Nop()), service.WithSource(src))
		ctx := context.Background()

		Convey("When rendering by place name", func() {
			r, err := svc.RenderLive(ctx, model.LiveRequest{Query: "Lagos", Mode: aura.Swirl})
			So(err, ShouldBeNil)

			Convey("Then the place is geocoded and attached", func() {
				So(src.queries, ShouldResemble, []string{"Lagos"})
				So(r.Location, ShouldNotBeNil)
				So(r.Location.Name, ShouldEqual, "Lagos")
				So(r.Mode, ShouldEqual, aura.Swirl)
				So(r.Severity.WeatherType, ShouldEqual, severity.Thunderstorm)
			})
		})

		Convey("When rendering by coordinates", func() {
			alt := 1200.0
			lat, lon := -33.9, 18.4
			r, err := svc.RenderLive(ctx, model.LiveRequest{Latitude: &lat, Longitude: &lon, Altitude: &alt})
			So(err, ShouldBeNil)

			Convey("Then no geocoding happens", func() {
				So(src.queries, ShouldBeEmpty)
				So(src.fetched[0].Latitude, ShouldEqual, -33.9)
				So(*src.fetched[0].Altitude, ShouldEqual, 1200.0)
				So(r.Location.Latitude, ShouldEqual, -33.9)
			})
		})

		Convey("When only a latitude is given", func() {
			lat := 1.0
			_, err := svc.RenderLive(ctx, model.LiveRequest{Latitude: &lat})
			So(errors.Is(err, service.ErrInvalidLocation), ShouldBeTrue)
		})

		Convey("When the place is unknown", func() {
			_, err := svc.RenderLive(ctx, model.LiveRequest{Query: "Atlantis"})
			So(errors.Is(err, weathersource.ErrNotFound), ShouldBeTrue)
		})

		Convey("When the source fails", func() {
			src.fetchErr = weathersource.ErrUpstream
			_, err := svc.RenderLive(ctx, model.LiveRequest{Query: "Lagos"})
			So(errors.Is(err, weathersource.ErrUpstream), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "Lagos")
		})

		Convey("When rendering a random place", func() {
			r, err := svc.RenderRandomPlace(ctx, aura.Randomizer, seed(3))
			So(err, ShouldBeNil)

			Convey("Then a curated place is used", func() {
				So(src.queries, ShouldHaveLength, 1)
				So(weathersource.Places(), ShouldContain, src.queries[0])
				So(r.Location.Name, ShouldEqual, src.queries[0])
				So(r.RequestedMode, ShouldEqual, aura.Randomizer)
			})
		})
	})

	Convey("Given a service without a weather source", t, func() {
		svc := service.New(service.WithLogger(logger.Nop()))

		Convey("Then live renders fail", func() {
			_, err := svc.RenderLive(context.Background(), model.LiveRequest{Query: "Paris"})
			So(errors.Is(err, service.ErrNoSource), ShouldBeTrue)
			_, err = svc.Geocode(context.Background(), "Paris")
			So(errors.Is(err, service.ErrNoSource), ShouldBeTrue)
		})
	})
}

func TestService_Peaks(t *testing.T) {
	Convey("Given a service with a weather source and a small peaks board", t, func() {
		src := &stubSource{obs: storm()}
		svc := service.New(
			service.WithLogger(logger.Nop()),
			service.WithSource(src),
			service.WithPeakStore(repository.NewMemoryStore(repository.WithCapacity(2))),
		)
		ctx := context.Background()

		Convey("When nothing has been rendered live", func() {
			peaks, err := svc.Peaks(ctx, 5)
			So(err, ShouldBeNil)
			So(peaks, ShouldBeEmpty)
		})

		Convey("When places are rendered live", func() {
			_, err := svc.RenderLive(ctx, model.LiveRequest{Query: "Lagos", Seed: seed(1)})
			So(err, ShouldBeNil)
			src.obs = weather.Observation{WeatherCode: weather.Int(0)}
			_, err = svc.RenderLive(ctx, model.LiveRequest{Query: "Lima", Seed: seed(1)})
			So(err, ShouldBeNil)
			_, err = svc.RenderLive(ctx, model.LiveRequest{Query: "Lagos", Seed: seed(2)})
			So(err, ShouldBeNil)

			Convey("Then each place keeps its most severe reading", func() {
				peaks, err := svc.Peaks(ctx, 5)
				So(err, ShouldBeNil)
				So(peaks, ShouldHaveLength, 2)
				So(peaks[0].Place, ShouldEqual, "Lagos")
				So(peaks[0].Rank, ShouldEqual, 1)
				So(peaks[0].WeatherType, ShouldEqual, string(severity.Thunderstorm))
				So(peaks[1].Place, ShouldEqual, "Lima")
				So(peaks[0].Score, ShouldBeGreaterThan, peaks[1].Score)
				So(svc.GetStats()["peaks"], ShouldEqual, 2)
			})
		})

		Convey("When synchronous renders happen", func() {
			_, err := svc.Render(ctx, model.RenderRequest{Observation: storm()})
			So(err, ShouldBeNil)

			Convey("Then the board is untouched", func() {
				peaks, err := svc.Peaks(ctx, 5)
				So(err, ShouldBeNil)
				So(peaks, ShouldBeEmpty)
			})
		})

		Convey("When asking for a non-positive limit", func() {
			_, err := svc.Peaks(ctx, 0)
			So(errors.Is(err, repository.ErrInvalidLimit), ShouldBeTrue)
		})
	})
}
