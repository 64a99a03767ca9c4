package meat

import "errors"

// Sentinel kinds for profile lookups.
var (
	ErrUnknown        = errors.New("unknown meat type")
	ErrInvalidProfile = errors.New("invalid meat profile")
)
