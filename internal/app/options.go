package service

import (
	"time"

	"github.com/okian/smokehouse/internal/adapters/repository"
	"github.com/okian/smokehouse/internal/domain/estimate"
	"github.com/okian/smokehouse/pkg/logger"
)

// Limits bounds the form inputs the estimator accepts.
type Limits struct {
	MinWeightLbs    float64
	MaxWeightLbs    float64
	MinOutsideTempF int
	MaxOutsideTempF int
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEstimator replaces the estimator built from the seed.
func WithEstimator(e *estimate.Estimator) Option {
	return func(s *Service) {
		if e != nil {
			s.estimator = e
		}
	}
}

// WithSeed seeds the default estimator. Zero seeds from the clock.
func WithSeed(seed uint64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithStore supplies preloaded history; Start will not read a workbook.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithHistoryWorkbook sets the workbook Start loads history from.
func WithHistoryWorkbook(path, sheet string) Option {
	return func(s *Service) {
		s.historyPath = path
		s.historySheet = sheet
	}
}

// WithLimits sets the accepted input ranges.
func WithLimits(l Limits) Option {
	return func(s *Service) {
		if l.MinWeightLbs > 0 && l.MaxWeightLbs >= l.MinWeightLbs {
			s.limits.MinWeightLbs = l.MinWeightLbs
			s.limits.MaxWeightLbs = l.MaxWeightLbs
		}
		if l.MaxOutsideTempF >= l.MinOutsideTempF && l.MaxOutsideTempF != 0 {
			s.limits.MinOutsideTempF = l.MinOutsideTempF
			s.limits.MaxOutsideTempF = l.MaxOutsideTempF
		}
	}
}

// WithDefaults sets the values used when a request omits them.
func WithDefaults(zipCode, startTime string) Option {
	return func(s *Service) {
		if zipCode != "" {
			s.defaultZip = zipCode
		}
		if startTime != "" {
			s.defaultStart = startTime
		}
	}
}

// WithClock overrides the clock used for the default cook date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
