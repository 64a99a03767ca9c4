package sampler

import "errors"

// Sentinel kinds for sampler errors.
var (
	ErrUnhealthy        = errors.New("service unhealthy")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrScoreOutOfRange  = errors.New("score out of range")
	ErrNoSamples        = errors.New("no successful samples")
)
