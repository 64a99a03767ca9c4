package estimate

import (
	"math/rand/v2"

	"github.com/okian/smokehouse/internal/domain/meat"
)

// Option applies a configuration option to the Estimator.
type Option func(*Estimator)

// WithProfiles replaces the meat profile table.
func WithProfiles(t meat.Table) Option {
	return func(e *Estimator) {
		if t.Len() > 0 {
			e.profiles = t
		}
	}
}

// WithRandSource sets the source the score noise is drawn from.
// The estimator takes ownership; src must not be shared.
func WithRandSource(src rand.Source) Option {
	return func(e *Estimator) {
		if src != nil {
			e.src = src
		}
	}
}

// WithSeed seeds a private PCG source. A zero seed is ignored.
func WithSeed(seed uint64) Option {
	return func(e *Estimator) {
		if seed != 0 {
			e.src = rand.NewPCG(seed, seed^pcgStream)
		}
	}
}

// WithNoiseStdDev overrides the standard deviation of the score noise.
func WithNoiseStdDev(sigma float64) Option {
	return func(e *Estimator) {
		if sigma >= 0 {
			e.noiseStdDev = sigma
		}
	}
}
