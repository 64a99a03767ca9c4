package service_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"

	"github.com/okian/smokehouse/internal/adapters/repository"
	service "github.com/okian/smokehouse/internal/app"
	"github.com/okian/smokehouse/internal/domain/model"
)

func writeHistoryWorkbook(t *testing.T) string {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "SmokingMeat"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}

	header := make([]interface{}, 0, len(repository.Columns()))
	for _, c := range repository.Columns() {
		header = append(header, c)
	}
	rows := [][]interface{}{
		header,
		{"2024-05-01", "Brisket", 12.0, 250, 203, 18.0, 17.25, 9.1, 8.9},
		{"2024-05-08", "Pork Shoulder", 8.0, 225, 196, 9.6, 10.0, 8.8, 9.0},
		{"2024-05-15", "Brisket", 14.5, 275, 204, 21.75, 19.0, 8.7, 8.5},
		{"2024-05-22", "Baby Back Ribs", 3.5, 225, 190, 3.5, 4.0, 9.0, 9.3},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "SmokingMeatWithScores.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestServiceIntegration(t *testing.T) {
	path := writeHistoryWorkbook(t)

	Convey("Given a service started from a workbook", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		svc := service.New(service.WithHistoryWorkbook(path, "SmokingMeat"), service.WithSeed(7))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("Then every row should be loaded", func() {
			So(svc.GetStats()["historySessions"], ShouldEqual, 4)
		})

		Convey("When predicting and comparing against history", func() {
			p, err := svc.Predict(ctx, service.PredictRequest{MeatType: "Brisket", WeightLbs: 12, SmokerTempF: 250, Weather: "Cloudy"})
			So(err, ShouldBeNil)

			history, err := svc.History(ctx, p.MeatType)
			So(err, ShouldBeNil)

			Convey("Then the matching sessions should come back in workbook order", func() {
				So(history, ShouldHaveLength, 2)
				So(history[0].Date.Format("2006-01-02"), ShouldEqual, "2024-05-01")
				So(history[1].WeightLbs, ShouldEqual, 14.5)
				So(history[0].EstimatedCookTimeHrs, ShouldEqual, p.EstimatedCookTimeHours)
			})
		})
	})

	Convey("Given a service pointed at a missing sheet", t, func() {
		svc := service.New(service.WithHistoryWorkbook(path, "Other"))
		So(svc.Start(context.Background()), ShouldNotBeNil)
	})
}

func TestServiceConcurrency(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithSeed(99))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When many goroutines predict at once", func() {
			const workers, perWorker = 16, 200
			var wg sync.WaitGroup
			errs := make(chan error, workers*perWorker)
			scores := make(chan float64, workers*perWorker)

			for w := 0; w < workers; w++ {
				wg.Add(1)
				go func(w int) {
					defer wg.Done()
					weather := model.Weathers()[w%len(model.Weathers())]
					for i := 0; i < perWorker; i++ {
						p, err := svc.Predict(ctx, service.PredictRequest{
							MeatType: "Spare Ribs", WeightLbs: 6, SmokerTempF: 250, Weather: string(weather),
						})
						if err != nil {
							errs <- err
							continue
						}
						scores <- p.PredictedScore
					}
				}(w)
			}
			wg.Wait()
			close(errs)
			close(scores)

			Convey("Then every call should succeed with a bounded score", func() {
				So(len(errs), ShouldEqual, 0)
				So(len(scores), ShouldEqual, workers*perWorker)
				for s := range scores {
					So(s, ShouldBeBetweenOrEqual, 1.0, 10.0)
				}
				So(svc.GetStats()["predictionsServed"], ShouldEqual, int64(workers*perWorker))
			})
		})
	})
}
