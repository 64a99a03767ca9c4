// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/smokehouse/internal/adapters/repository"
	"github.com/okian/smokehouse/internal/domain/estimate"
	"github.com/okian/smokehouse/internal/domain/meat"
	"github.com/okian/smokehouse/internal/domain/model"
	"github.com/okian/smokehouse/internal/domain/types"
	"github.com/okian/smokehouse/pkg/logger"
	"github.com/okian/smokehouse/pkg/metrics"
)

// Form defaults.
const (
	defaultWeightLbs    = 8.0
	defaultSmokerTempF  = model.Temp225
	defaultWeather      = model.Sunny
	defaultOutsideTempF = 70
	defaultZipCode      = "90210"
	defaultStartTime    = "06:00"
	dateLayout          = "2006-01-02"
)

// PredictRequest is the form a prediction is made from.
type PredictRequest = types.PredictRequest

// Service implements the API dependencies for the estimator.
type Service struct {
	mu sync.RWMutex

	estimator *estimate.Estimator
	store     repository.Store

	seed         uint64
	historyPath  string
	historySheet string
	limits       Limits
	defaultZip   string
	defaultStart string
	now          func() time.Time

	started     bool
	predictions atomic.Int64
	rejected    atomic.Int64

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		limits: Limits{
			MinWeightLbs:    3.0,
			MaxWeightLbs:    16.0,
			MinOutsideTempF: 40,
			MaxOutsideTempF: 100,
		},
		defaultZip:   defaultZipCode,
		defaultStart: defaultStartTime,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.estimator == nil {
		s.estimator = estimate.New(estimate.WithSeed(s.seed))
	}
	return s
}

// Start loads the historical sessions. It is safe to call more than once.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting estimator service...")

	if s.store == nil {
		store := repository.NewInMemoryStore(ctx)
		if s.historyPath == "" {
			s.logger.Warn(ctx, "no history workbook configured; history will be empty")
		} else {
			start := time.Now()
			sessions, err := repository.LoadWorkbook(ctx, s.historyPath, s.historySheet)
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}
			store.Replace(ctx, sessions)
			s.logger.Info(ctx, "history loaded",
				logger.String("path", s.historyPath),
				logger.Int("sessions", len(sessions)),
				logger.Duration("took", time.Since(start)),
			)
		}
		s.store = store
	}

	s.started = true
	s.logger.Info(ctx, "estimator service started",
		logger.Int("meatTypes", s.estimator.Profiles().Len()),
		logger.Int("historySessions", s.store.Count(ctx)),
	)
	return nil
}

// Stop marks the service stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "estimator service stopped")
}

// Predict validates req, fills defaults and returns the estimate.
func (s *Service) Predict(ctx context.Context, req PredictRequest) (types.Prediction, error) {
	c, err := s.conditions(req)
	if err == nil {
		err = s.checkLimits(c)
	}
	if err != nil {
		return types.Prediction{}, s.reject(ctx, req, err)
	}

	est, err := s.estimator.Estimate(c)
	if err != nil {
		return types.Prediction{}, s.reject(ctx, req, err)
	}

	p := types.Prediction{
		ID:                     uuid.NewString(),
		MeatType:               est.MeatType,
		WeightLbs:              c.WeightLbs,
		SmokerTempF:            int(c.SmokerTempF),
		Weather:                string(c.Weather),
		OutsideTempF:           c.OutsideTempF,
		ZipCode:                c.ZipCode,
		Date:                   c.Date.Format(dateLayout),
		StartTime:              c.StartTime,
		TargetInternalTempF:    est.TargetInternalTempF,
		EstimatedCookTimeHours: est.CookTimeHours,
		PredictedScore:         est.PredictedScore,
	}
	if !est.ReadyAt.IsZero() {
		ready := est.ReadyAt
		p.ReadyAt = &ready
	}

	s.predictions.Add(1)
	metrics.RecordPrediction(p.MeatType, p.PredictedScore, p.EstimatedCookTimeHours)
	s.log().Debug(ctx, "prediction served",
		logger.String("id", p.ID),
		logger.String("meatType", p.MeatType),
		logger.Float64("cookHours", p.EstimatedCookTimeHours),
		logger.Float64("score", p.PredictedScore),
	)
	return p, nil
}

// History returns the historical sessions for meatType in workbook order.
func (s *Service) History(ctx context.Context, meatType string) ([]model.Session, error) {
	if !s.estimator.Profiles().Has(meatType) {
		return nil, fmt.Errorf("%w: %q", estimate.ErrUnknownMeatType, meatType)
	}
	s.mu.RLock()
	store := s.store
	s.mu.RUnlock()
	if store == nil {
		return []model.Session{}, nil
	}
	return store.ByMeatType(ctx, meatType), nil
}

// MeatTypes returns the profile table in listing order.
func (s *Service) MeatTypes() []meat.Profile {
	return s.estimator.Profiles().Profiles()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":            s.started,
		"meatTypes":          s.estimator.Profiles().Len(),
		"predictionsServed":  s.predictions.Load(),
		"predictionsInvalid": s.rejected.Load(),
		"historyPath":        s.historyPath,
	}
	if s.store != nil {
		stats["historySessions"] = s.store.Count(context.Background())
	}
	return stats
}

func (s *Service) conditions(req PredictRequest) (model.Conditions, error) {
	weather := defaultWeather
	if w := strings.TrimSpace(req.Weather); w != "" {
		var err error
		if weather, err = model.ParseWeather(w); err != nil {
			return model.Conditions{}, err
		}
	}

	c := model.Conditions{
		MeatType:     strings.TrimSpace(req.MeatType),
		WeightLbs:    req.WeightLbs,
		SmokerTempF:  model.SmokerTemp(req.SmokerTempF),
		Weather:      weather,
		OutsideTempF: defaultOutsideTempF,
		ZipCode:      strings.TrimSpace(req.ZipCode),
		StartTime:    strings.TrimSpace(req.StartTime),
	}
	// Zero values mean the field was left out; the first listed meat is the
	// form's preselection.
	if c.MeatType == "" {
		if names := s.estimator.Profiles().Names(); len(names) > 0 {
			c.MeatType = names[0]
		}
	}
	if c.WeightLbs == 0 {
		c.WeightLbs = defaultWeightLbs
	}
	if c.SmokerTempF == 0 {
		c.SmokerTempF = defaultSmokerTempF
	}
	if req.OutsideTempF != nil {
		c.OutsideTempF = *req.OutsideTempF
	}
	if c.ZipCode == "" {
		c.ZipCode = s.defaultZip
	}
	if c.StartTime == "" {
		c.StartTime = s.defaultStart
	}

	if d := strings.TrimSpace(req.Date); d != "" {
		var err error
		c.Date, err = time.ParseInLocation(dateLayout, d, time.Local)
		if err != nil {
			return model.Conditions{}, fmt.Errorf("%w: %q", ErrInvalidDate, d)
		}
	} else {
		y, m, day := s.now().Date()
		c.Date = time.Date(y, m, day, 0, 0, 0, 0, time.Local)
	}
	return c, nil
}

func (s *Service) checkLimits(c model.Conditions) error {
	l := s.limits
	if c.WeightLbs < l.MinWeightLbs || c.WeightLbs > l.MaxWeightLbs {
		return fmt.Errorf("%w: %g lbs not in [%g, %g]", ErrWeightOutOfRange, c.WeightLbs, l.MinWeightLbs, l.MaxWeightLbs)
	}
	if c.OutsideTempF < l.MinOutsideTempF || c.OutsideTempF > l.MaxOutsideTempF {
		return fmt.Errorf("%w: %d°F not in [%d, %d]", ErrOutsideTempOutOfRange, c.OutsideTempF, l.MinOutsideTempF, l.MaxOutsideTempF)
	}
	return nil
}

func (s *Service) reject(ctx context.Context, req PredictRequest, err error) error {
	kind := errorKind(err)
	s.rejected.Add(1)
	metrics.RecordPredictionError(kind)
	s.log().Debug(ctx, "prediction rejected",
		logger.String("kind", kind),
		logger.String("meatType", req.MeatType),
		logger.Error(err),
	)
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

// log returns the configured logger, falling back to the global one before Start.
func (s *Service) log() logger.Logger {
	s.mu.RLock()
	l := s.logger
	s.mu.RUnlock()
	if l != nil {
		return l
	}
	return logger.Get()
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, estimate.ErrUnknownMeatType):
		return "unknown_meat_type"
	case errors.Is(err, estimate.ErrInvalidWeather):
		return "invalid_weather"
	case errors.Is(err, estimate.ErrInvalidSmokerTemp):
		return "invalid_smoker_temp"
	case errors.Is(err, ErrWeightOutOfRange):
		return "weight_out_of_range"
	case errors.Is(err, ErrOutsideTempOutOfRange):
		return "outside_temp_out_of_range"
	case errors.Is(err, ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, model.ErrInvalidStartTime):
		return "invalid_start_time"
	default:
		return "other"
	}
}
