package config_test

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/okian/aura/internal/config"
	"github.com/okian/aura/internal/domain/aura"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 1024)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*2)
			convey.So(cfg.MaxBatchSize, convey.ShouldEqual, 100)
			convey.So(cfg.Source, convey.ShouldEqual, config.SourceOpenMeteo)
			convey.So(cfg.Mode(), convey.ShouldEqual, aura.Radial)
			convey.So(cfg.HTTPTimeout(), convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.PeakCapacity, convey.ShouldEqual, 1000)
		})

		convey.Convey("Then it should validate", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with one bad value each", t, func() {
		cases := map[string]func(*config.Config){
			"addr must not be empty":           func(c *config.Config) { c.Addr = " " },
			"worker_count must be positive":    func(c *config.Config) { c.WorkerCount = 0 },
			"queue_size must be positive":      func(c *config.Config) { c.QueueSize = -1 },
			"max_batch_size must be positive":  func(c *config.Config) { c.MaxBatchSize = 0 },
			"http_timeout_ms must be positive": func(c *config.Config) { c.HTTPTimeoutMS = 0 },
			"peak_capacity must be positive":   func(c *config.Config) { c.PeakCapacity = 0 },
			"unknown default_mode":             func(c *config.Config) { c.DefaultMode = "spiral" },
			"unknown source":                   func(c *config.Config) { c.Source = "darksky" },
			"unknown log_format":               func(c *config.Config) { c.LogFormat = "xml" },
		}

		for msg, mutate := range cases {
			cfg := config.New(context.Background())
			mutate(cfg)
			err := cfg.Validate()

			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, msg)
		}
	})
}
