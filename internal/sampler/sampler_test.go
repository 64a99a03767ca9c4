package sampler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/smokehouse/internal/adapters/http/api"
	service "github.com/okian/smokehouse/internal/app"
	"github.com/okian/smokehouse/pkg/logger"
)

func init() {
	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		panic(err)
	}
}

func newEstimatorServer() *httptest.Server {
	svc := service.New(service.WithSeed(2024))
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func TestCombos(t *testing.T) {
	Convey("Given the accepted weathers and smoker temps", t, func() {
		combos := Combos()

		Convey("Then every pair should appear once in a stable order", func() {
			So(combos, ShouldHaveLength, 18)
			So(combos[0], ShouldResemble, Combo{Weather: "Sunny", SmokerTempF: 225})
			So(combos[17], ShouldResemble, Combo{Weather: "Dry", SmokerTempF: 275})

			seen := make(map[Combo]bool)
			for _, c := range combos {
				So(seen[c], ShouldBeFalse)
				seen[c] = true
			}
		})

		Convey("When expanding them into requests", func() {
			cfg := &Config{MeatType: "Spare Ribs", WeightLbs: 6, Samples: 3}
			reqs := buildRequests(cfg, combos)

			So(reqs, ShouldHaveLength, 54)
			So(reqs[0], ShouldResemble, PredictRequest{MeatType: "Spare Ribs", WeightLbs: 6, SmokerTempF: 225, Weather: "Sunny"})
			So(reqs[3].SmokerTempF, ShouldEqual, 250)
		})
	})
}

func TestSummaries(t *testing.T) {
	Convey("Given collected scores", t, func() {
		rainy := Combo{Weather: "Rainy", SmokerTempF: 225}
		dry := Combo{Weather: "Dry", SmokerTempF: 275}
		results := newCollector()
		for _, v := range []float64{9.0, 9.5, 10.0} {
			results.add(rainy, v)
		}
		results.fail(dry)

		Convey("When summarizing", func() {
			got := summarize([]Combo{rainy, dry}, results)

			Convey("Then each combination should be reduced", func() {
				So(got, ShouldHaveLength, 2)
				So(got[0].Count, ShouldEqual, 3)
				So(got[0].Mean, ShouldAlmostEqual, 9.5, 1e-9)
				So(got[0].Min, ShouldEqual, 9.0)
				So(got[0].Max, ShouldEqual, 10.0)
				So(got[0].StdDev, ShouldAlmostEqual, 0.5, 1e-9)
				So(got[1].Count, ShouldEqual, 0)
				So(got[1].Failed, ShouldEqual, 1)
			})

			Convey("And verification should pass", func() {
				So(verifySummaries(got), ShouldBeNil)
			})
		})

		Convey("When a score escapes the bounds", func() {
			results.add(dry, 10.4)
			err := verifySummaries(summarize([]Combo{rainy, dry}, results))
			So(errors.Is(err, ErrScoreOutOfRange), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "Dry/275")
		})

		Convey("When nothing was sampled", func() {
			err := verifySummaries(summarize([]Combo{dry}, newCollector()))
			So(errors.Is(err, ErrNoSamples), ShouldBeTrue)
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running estimator server", t, func() {
		srv := newEstimatorServer()
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		out := filepath.Join(t.TempDir(), "out", "summary.json")
		cfg := &Config{BaseURL: srv.URL, Samples: 100, Workers: 8, OutputFile: out}

		Convey("When sampling every combination", func() {
			summaries, err := Run(ctx, cfg)

			Convey("Then every score should be in bounds", func() {
				So(err, ShouldBeNil)
				So(summaries, ShouldHaveLength, 18)
				for _, s := range summaries {
					So(s.Count, ShouldEqual, 100)
					So(s.Failed, ShouldEqual, 0)
					So(s.Min, ShouldBeGreaterThanOrEqualTo, MinScore)
					So(s.Max, ShouldBeLessThanOrEqualTo, MaxScore)
				}
			})

			Convey("And the means should follow the weather and temp adjustments", func() {
				byCombo := make(map[Combo]Summary)
				for _, s := range summaries {
					byCombo[s.Combo] = s
				}
				So(byCombo[Combo{Weather: "Rainy", SmokerTempF: 225}].Mean, ShouldBeBetween, 9.0, 9.6)
				So(byCombo[Combo{Weather: "Dry", SmokerTempF: 275}].Mean, ShouldBeBetween, 8.5, 9.1)
			})

			Convey("And the defaults should be filled in", func() {
				So(cfg.MeatType, ShouldEqual, DefaultMeatType)
				So(cfg.WeightLbs, ShouldEqual, DefaultWeightLbs)
				So(cfg.Timeout, ShouldEqual, DefaultTimeout)
			})

			Convey("And the summary file should be written", func() {
				raw, err := os.ReadFile(out)
				So(err, ShouldBeNil)
				var saved []Summary
				So(json.Unmarshal(raw, &saved), ShouldBeNil)
				So(saved, ShouldHaveLength, 18)
			})
		})

		Convey("When sampling an unknown meat type", func() {
			cfg.MeatType = "Duck"
			cfg.Samples = 2
			_, err := Run(ctx, cfg)
			So(errors.Is(err, ErrNoSamples), ShouldBeTrue)
		})
	})

	Convey("Given an unhealthy server", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := Run(context.Background(), &Config{BaseURL: srv.URL, Samples: 1, Workers: 1})
		So(errors.Is(err, ErrUnhealthy), ShouldBeTrue)
	})

	Convey("Given a server returning impossible scores", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {})
		mux.HandleFunc("/predict", func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(Prediction{ID: "x", PredictedScore: 11})
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		summaries, err := Run(context.Background(), &Config{BaseURL: srv.URL, Samples: 2, Workers: 2})
		So(errors.Is(err, ErrScoreOutOfRange), ShouldBeTrue)
		So(summaries, ShouldHaveLength, 18)
	})
}

func TestSetupLogging(t *testing.T) {
	Convey("Given a log file path", t, func() {
		path := filepath.Join(t.TempDir(), "sampler.log")

		closeFn, err := SetupLogging(path, false)
		So(err, ShouldBeNil)
		logger.Get().Info(context.Background(), "hello from the sampler")
		closeFn()

		raw, err := os.ReadFile(path)
		So(err, ShouldBeNil)
		So(string(raw), ShouldContainSubstring, "hello from the sampler")

		So(logger.Init(logger.WithWriter(os.Stderr)), ShouldBeNil)
	})

	Convey("Given an unwritable log file path", t, func() {
		_, err := SetupLogging(filepath.Join(t.TempDir(), "missing", "sampler.log"), false)
		So(err, ShouldNotBeNil)
	})
}
