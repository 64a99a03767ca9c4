package model

import "errors"

// Sentinel kinds for input parsing.
var (
	ErrInvalidWeather   = errors.New("invalid weather condition")
	ErrInvalidStartTime = errors.New("invalid start time")
)
