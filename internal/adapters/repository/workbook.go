package repository

import (
	"context"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/okian/smokehouse/internal/domain/model"
	"github.com/okian/smokehouse/pkg/metrics"
)

// Workbook column headers.
const (
	ColDate              = "Date"
	ColMeatType          = "Meat Type"
	ColWeight            = "Meat Weight (lbs)"
	ColSmokerTemp        = "Smoker Temp (°F)"
	ColFinalInternalTemp = "Final Internal Temp (°F)"
	ColEstimatedCookTime = "Estimated Cook Time (hrs)"
	ColActualCookTime    = "Actual Cook Time (hrs)"
	ColExpertScore       = "Franklin Expert Score"
	ColReviewScore       = "Third-Party Review Score"
)

// Columns lists the headers a workbook must carry, in display order.
func Columns() []string {
	return []string{
		ColDate, ColMeatType, ColWeight, ColSmokerTemp, ColFinalInternalTemp,
		ColEstimatedCookTime, ColActualCookTime, ColExpertScore, ColReviewScore,
	}
}

var dateLayouts = []string{ //nolint:gochecknoglobals // read-only
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"1/2/2006",
	"1/2/06",
	"01-02-06",
	"01-02-2006",
}

// LoadWorkbook reads historical sessions from the xlsx file at path.
// An empty sheet name selects the first sheet.
func LoadWorkbook(ctx context.Context, path, sheet string) ([]model.Session, error) {
	start := time.Now()
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpenWorkbook, path, err)
	}
	defer func() { _ = f.Close() }()

	sessions, err := readSessions(ctx, f, sheet)
	if err != nil {
		return nil, err
	}
	metrics.RecordHistoryLoadDuration(float64(time.Since(start).Milliseconds()))
	return sessions, nil
}

// ReadWorkbook reads historical sessions from an xlsx stream.
func ReadWorkbook(ctx context.Context, r io.Reader, sheet string) ([]model.Session, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenWorkbook, err)
	}
	defer func() { _ = f.Close() }()
	return readSessions(ctx, f, sheet)
}

func readSessions(ctx context.Context, f *excelize.File, sheet string) ([]model.Session, error) {
	sheets := f.GetSheetList()
	if sheet == "" {
		if len(sheets) == 0 {
			return nil, ErrSheetNotFound
		}
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}

	// Raw values keep date cells as serial numbers regardless of their display format.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows of %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptySheet, sheet)
	}

	index, err := columnIndex(rows[0])
	if err != nil {
		return nil, err
	}

	sessions := make([]model.Session, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if blank(row) {
			continue
		}
		rowNum := i + 2 // 1-based, after header
		sess, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("%w %d: %w", ErrInvalidRow, rowNum, err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	for _, col := range Columns() {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}
	return index, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseRow(row []string, index map[string]int) (model.Session, error) {
	cell := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var (
		s   model.Session
		err error
	)
	if s.Date, err = parseDate(cell(ColDate)); err != nil {
		return s, err
	}
	if s.MeatType = cell(ColMeatType); s.MeatType == "" {
		return s, fmt.Errorf("%s: empty", ColMeatType)
	}

	floats := []struct {
		col string
		dst *float64
	}{
		{ColWeight, &s.WeightLbs},
		{ColFinalInternalTemp, &s.FinalInternalTempF},
		{ColEstimatedCookTime, &s.EstimatedCookTimeHrs},
		{ColActualCookTime, &s.ActualCookTimeHrs},
		{ColExpertScore, &s.ExpertScore},
		{ColReviewScore, &s.ReviewScore},
	}
	for _, fl := range floats {
		if *fl.dst, err = parseFloat(fl.col, cell(fl.col)); err != nil {
			return s, err
		}
	}

	temp, err := parseFloat(ColSmokerTemp, cell(ColSmokerTemp))
	if err != nil {
		return s, err
	}
	if temp != math.Trunc(temp) {
		return s, fmt.Errorf("%s: %g is not a whole number", ColSmokerTemp, temp)
	}
	s.SmokerTempF = int(temp)
	return s, nil
}

func parseFloat(col, v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", col, v)
	}
	return f, nil
}

func parseDate(v string) (time.Time, error) {
	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("%s: %w", ColDate, err)
		}
		return t, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: unrecognised date %q", ColDate, v)
}
