package estimate

import (
	"errors"

	"github.com/okian/smokehouse/internal/domain/meat"
	"github.com/okian/smokehouse/internal/domain/model"
)

// Sentinel kinds for estimator errors. These allow errors.Is from callers.
var (
	ErrUnknownMeatType   = meat.ErrUnknown
	ErrInvalidWeather    = model.ErrInvalidWeather
	ErrInvalidSmokerTemp = errors.New("invalid smoker temperature")
)
