package service

import "errors"

// Sentinel kinds for service errors.
var (
	// ErrInvalidInput wraps every rejected prediction request.
	ErrInvalidInput          = errors.New("invalid input")
	ErrWeightOutOfRange      = errors.New("weight out of range")
	ErrOutsideTempOutOfRange = errors.New("outside temperature out of range")
	ErrInvalidDate           = errors.New("invalid date")
)
