package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a custom registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then every collector should be registered", func() {
				So(manager, ShouldNotBeNil)
				manager.predictions.WithLabelValues("Brisket").Inc()
				manager.httpRequests.WithLabelValues("predict", "POST", "200").Inc()
				manager.errorRateByEndpoint.WithLabelValues("predict", "POST", "client_error").Inc()
				manager.predictionErrors.WithLabelValues("invalid_weather").Inc()
				manager.httpRequestDuration.WithLabelValues("predict", "POST", "200").Observe(1)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldEqual, 14)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_ns"),
				WithSubsystem("test_sub"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.historySessions.Set(3)

			Convey("Then names and labels should follow the options", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "test_ns_test_sub_history_sessions" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
						So(f.GetMetric()[0].GetGauge().GetValue(), ShouldEqual, 3)
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When registering two managers on one registry", func() {
			registry := prometheus.NewRegistry()
			NewManager(WithPrometheusRegistry(registry))

			Convey("Then the second should panic on duplicate registration", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording a prediction", func() {
			before := testutil.ToFloat64(globalManager.predictions.WithLabelValues("Spare Ribs"))
			RecordPrediction("Spare Ribs", 9.1, 7.2)

			Convey("Then the per-meat counter should increase", func() {
				So(testutil.ToFloat64(globalManager.predictions.WithLabelValues("Spare Ribs")), ShouldEqual, before+1)
			})
		})

		Convey("When recording a prediction error", func() {
			before := testutil.ToFloat64(globalManager.predictionErrors.WithLabelValues("unknown_meat_type"))
			RecordPredictionError("unknown_meat_type")
			So(testutil.ToFloat64(globalManager.predictionErrors.WithLabelValues("unknown_meat_type")), ShouldEqual, before+1)
		})

		Convey("When updating history gauges", func() {
			UpdateHistorySessions(42)
			So(testutil.ToFloat64(globalManager.historySessions), ShouldEqual, 42)
		})

		Convey("When recording history queries", func() {
			before := testutil.ToFloat64(globalManager.historyQueries)
			RecordHistoryQuery(0.25)
			So(testutil.ToFloat64(globalManager.historyQueries), ShouldEqual, before+1)
		})

		Convey("When recording HTTP and system metrics", func() {
			So(func() {
				RecordHTTPRequest("history", "GET", "200")
				RecordHTTPRequestDuration("history", "GET", "200", 3)
				RecordErrorByEndpoint("history", "GET", "not_found")
				RecordHistoryLoadDuration(12)
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(8)
				RecordSystemGCPauseTime(0.4)
			}, ShouldNotPanic)
			So(testutil.ToFloat64(globalManager.systemGoroutineCount), ShouldEqual, 8)
		})

		Convey("Then the registry should be exposed", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
