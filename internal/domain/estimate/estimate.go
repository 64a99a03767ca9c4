// Package estimate turns a planned cook into a target temperature, a cook
// time and a predicted review score.
package estimate

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/okian/smokehouse/internal/domain/meat"
	"github.com/okian/smokehouse/internal/domain/model"
)

// Scoring constants.
const (
	baseScore          = 9.0
	badWeatherBonus    = 0.3
	hotSmokerPenalty   = 0.2
	defaultNoiseStdDev = 0.3
	minScore           = 1.0
	maxScore           = 10.0

	cookTimePlaces = 2
	scorePlaces    = 1

	pcgStream = 0x9e3779b97f4a7c15
)

// Estimate is the full result for one set of conditions.
type Estimate struct {
	MeatType            string
	TargetInternalTempF int
	CookTimeHours       float64
	PredictedScore      float64
	// ReadyAt is zero when the conditions carry no date.
	ReadyAt time.Time
}

// CookDuration returns CookTimeHours as a time.Duration.
func (e Estimate) CookDuration() time.Duration {
	return time.Duration(math.Round(e.CookTimeHours * float64(time.Hour)))
}

// Estimator computes cook estimates. It is safe for concurrent use; the only
// shared state is the random source, which is drawn under a mutex.
type Estimator struct {
	profiles    meat.Table
	noiseStdDev float64

	mu  sync.Mutex
	src rand.Source
}

// New creates an estimator over the default profile table, seeded from the clock.
func New(opts ...Option) *Estimator {
	now := uint64(time.Now().UnixNano()) //nolint:gosec // seed only
	e := &Estimator{
		profiles:    meat.DefaultTable(),
		noiseStdDev: defaultNoiseStdDev,
		src:         rand.NewPCG(now, now^pcgStream),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Profiles returns the table the estimator looks meat types up in.
func (e *Estimator) Profiles() meat.Table {
	return e.profiles
}

// EstimateCookTime returns weightLbs × hours-per-pound, rounded to 2 places.
// The weight is not range checked.
func (e *Estimator) EstimateCookTime(meatType string, weightLbs float64) (float64, error) {
	p, err := e.profiles.Lookup(meatType)
	if err != nil {
		return 0, err
	}
	return roundTo(weightLbs*p.HoursPerPound, cookTimePlaces), nil
}

// TargetInternalTemp returns the doneness temperature for meatType in °F.
func (e *Estimator) TargetInternalTemp(meatType string) (int, error) {
	p, err := e.profiles.Lookup(meatType)
	if err != nil {
		return 0, err
	}
	return p.TargetInternalTempF, nil
}

// PredictScore returns a noisy review score in [1, 10].
//
// estimatedCookTimeHours is accepted but does not influence the score.
func (e *Estimator) PredictScore(weather model.Weather, smokerTempF model.SmokerTemp, estimatedCookTimeHours float64) (float64, error) {
	_ = estimatedCookTimeHours

	if !weather.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWeather, weather)
	}
	if !smokerTempF.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSmokerTemp, smokerTempF)
	}

	base := baseScore
	if weather == model.Rainy || weather == model.Windy {
		base += badWeatherBonus
	}
	if smokerTempF == model.Temp275 {
		base -= hotSmokerPenalty
	}

	score := roundTo(base+e.noise(), scorePlaces)
	return math.Max(minScore, math.Min(maxScore, score)), nil
}

// Estimate runs all three computations for c and derives the ready time.
func (e *Estimator) Estimate(c model.Conditions) (Estimate, error) {
	target, err := e.TargetInternalTemp(c.MeatType)
	if err != nil {
		return Estimate{}, err
	}
	hours, err := e.EstimateCookTime(c.MeatType, c.WeightLbs)
	if err != nil {
		return Estimate{}, err
	}
	score, err := e.PredictScore(c.Weather, c.SmokerTempF, hours)
	if err != nil {
		return Estimate{}, err
	}

	out := Estimate{
		MeatType:            c.MeatType,
		TargetInternalTempF: target,
		CookTimeHours:       hours,
		PredictedScore:      score,
	}
	start, err := c.StartAt()
	if err != nil {
		return Estimate{}, err
	}
	if !start.IsZero() {
		out.ReadyAt = start.Add(out.CookDuration())
	}
	return out, nil
}

// noise draws one sample from N(0, noiseStdDev).
func (e *Estimator) noise() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return distuv.Normal{Mu: 0, Sigma: e.noiseStdDev, Src: e.src}.Rand()
}

// roundTo rounds x half away from zero to the given number of decimal places.
func roundTo(x float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(x*p) / p
}
