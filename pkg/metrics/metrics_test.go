package metrics

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

func families(t *testing.T, g prometheus.Gatherer) map[string]*dto.MetricFamily {
	t.Helper()
	mfs, err := g.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	out := make(map[string]*dto.MetricFamily, len(mfs))
	for _, mf := range mfs {
		out[mf.GetName()] = mf
	}
	return out
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with custom options", func() {
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 2, 3}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.queueCapacity.Set(8)
			manager.aurasComposed.WithLabelValues("swirl").Inc()

			Convey("Then metrics use the namespace and labels", func() {
				got := families(t, registry)
				mf, ok := got["test_unit_queue_capacity"]
				So(ok, ShouldBeTrue)
				So(mf.GetMetric()[0].GetGauge().GetValue(), ShouldEqual, 8)

				var env string
				for _, lp := range mf.GetMetric()[0].GetLabel() {
					if lp.GetName() == "env" {
						env = lp.GetValue()
					}
				}
				So(env, ShouldEqual, "test")
				So(got, ShouldContainKey, "test_unit_auras_composed_total")
			})
		})

		Convey("When empty options are passed", func() {
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithConstLabels(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "aura")
				So(manager.subsystem, ShouldEqual, "engine")
				So(len(manager.histogramBuckets), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording engine and transport metrics", func() {
			So(func() {
				RecordAuraComposed("radial", 0.4)
				RecordSeverity(0.8, "thunderstorm")
				RecordRandomizerPick("fractal")
				RecordBatchSize(12)
				UpdateQueueCapacity(100)
				UpdateQueueSize(3)
				UpdateQueueUtilization(0.03)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueRejected("full")
				UpdateWorkerCount(4)
				RecordJobProcessed(1.5)
				RecordJobFailed()
				RecordSourceFetch("forecast", "ok", 120)
				RecordHTTPRequest("/aura", "POST", "200")
				RecordHTTPRequestDuration("/aura", "POST", "200", 0.002)
				RecordErrorByComponent("worker", "render")
			}, ShouldNotPanic)

			Convey("Then they are exposed on the custom registry", func() {
				got := families(t, GetRegistry())
				So(got, ShouldContainKey, "aura_engine_auras_composed_total")
				So(got, ShouldContainKey, "aura_engine_severity_score")
				So(got, ShouldContainKey, "aura_engine_weather_type_total")
				So(got, ShouldContainKey, "aura_engine_queue_rejected_total")
				So(got, ShouldContainKey, "aura_engine_source_fetches_total")
				So(got, ShouldContainKey, "aura_engine_http_requests_total")
				So(got["aura_engine_worker_count"].GetMetric()[0].GetGauge().GetValue(), ShouldEqual, 4)
			})
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent writers", t, func() {
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					RecordAuraComposed("particle", float64(j))
					UpdateQueueSize(j)
					RecordHTTPRequest("/aura/batch", "POST", "200")
				}
			}()
		}
		wg.Wait()

		Convey("Then no recording panics", func() {
			So(true, ShouldBeTrue)
		})
	})
}
