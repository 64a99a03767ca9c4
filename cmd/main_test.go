package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/smokehouse/internal/config"
	"github.com/okian/smokehouse/pkg/logger"
	"github.com/okian/smokehouse/pkg/metrics"
)

func init() {
	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		panic(err)
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When loading configuration from the environment", func() {
			t.Setenv("SMOKEHOUSE_ADDR", ":8080")
			t.Setenv("SMOKEHOUSE_RANDOM_SEED", "7")
			t.Setenv("SMOKEHOUSE_MAX_WEIGHT_LBS", "20")

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.RandomSeed, convey.ShouldEqual, uint64(7))
				convey.So(cfg.MaxWeightLbs, convey.ShouldEqual, 20.0)
			})
		})

		convey.Convey("When the configuration is invalid", func() {
			t.Setenv("SMOKEHOUSE_ADDR", "")

			convey.Convey("Then run should fail before serving", func() {
				err := run()
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldStartWith, "failed to load config")
			})
		})

		convey.Convey("When the history workbook is missing", func() {
			t.Setenv("SMOKEHOUSE_HISTORY_PATH", "/non/existent.xlsx")

			convey.Convey("Then run should fail to start the service", func() {
				err := run()
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldStartWith, "failed to start service")
			})
		})
	})
}

func TestMainWiring(t *testing.T) {
	convey.Convey("Given a service built from configuration", t, func() {
		cfg := config.New()
		cfg.RandomSeed = 11
		cfg.MaxWeightLbs = 20
		cfg.DefaultZipCode = "78701"

		ctx := context.Background()
		svc := newService(cfg, logger.Get())
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		srv := httptest.NewServer(newMux(ctx, svc))
		defer srv.Close()

		convey.Convey("When posting a prediction", func() {
			resp, err := http.Post(srv.URL+"/predict", "application/json",
				strings.NewReader(`{"meat_type":"Brisket","weight_lbs":18,"smoker_temp_f":225,"weather":"Sunny"}`))
			convey.So(err, convey.ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			convey.Convey("Then configured limits and defaults should apply", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
				var body map[string]any
				convey.So(json.NewDecoder(resp.Body).Decode(&body), convey.ShouldBeNil)
				convey.So(body["estimated_cook_time_hours"], convey.ShouldEqual, 27.0)
				convey.So(body["zip_code"], convey.ShouldEqual, "78701")
				convey.So(body["target_internal_temp_f"], convey.ShouldEqual, 203.0)
			})
		})

		convey.Convey("When fetching the docs and metrics routes", func() {
			for _, path := range []string{"/api-docs", "/openapi.yaml", "/healthz", "/stats", "/meats"} {
				resp, err := http.Get(srv.URL + path)
				convey.So(err, convey.ShouldBeNil)
				_ = resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			}
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When the system metrics updater runs until its context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			convey.So(func() {
				startSystemMetricsUpdater(ctx)
			}, convey.ShouldNotPanic)
		})

		convey.Convey("When updating system metrics", func() {
			updateSystemMetrics()

			convey.Convey("Then the registry should carry the system gauges", func() {
				families, err := metrics.GetRegistry().Gather()
				convey.So(err, convey.ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				convey.So(names, convey.ShouldContain, "smokehouse_estimator_system_goroutine_count")
			})
		})
	})
}
