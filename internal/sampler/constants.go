package sampler

import "time"

// Score bounds every prediction must respect.
const (
	MinScore = 1.0
	MaxScore = 10.0
)

// Defaults used when a Config leaves a field empty.
const (
	DefaultBaseURL   = "http://localhost:9080"
	DefaultMeatType  = "Brisket"
	DefaultWeightLbs = 10.0
	DefaultSamples   = 200
	DefaultTimeout   = 10 * time.Second
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)
