// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Weather is the outside condition during a cook.
type Weather string

// Supported weather conditions.
const (
	Sunny  Weather = "Sunny"
	Cloudy Weather = "Cloudy"
	Rainy  Weather = "Rainy"
	Windy  Weather = "Windy"
	Humid  Weather = "Humid"
	Dry    Weather = "Dry"
)

// Weathers lists every supported condition in display order.
func Weathers() []Weather {
	return []Weather{Sunny, Cloudy, Rainy, Windy, Humid, Dry}
}

// Valid reports whether w is one of the supported conditions.
func (w Weather) Valid() bool {
	switch w {
	case Sunny, Cloudy, Rainy, Windy, Humid, Dry:
		return true
	}
	return false
}

// ParseWeather matches s against the supported conditions, ignoring case
// and surrounding whitespace.
func ParseWeather(s string) (Weather, error) {
	s = strings.TrimSpace(s)
	for _, w := range Weathers() {
		if strings.EqualFold(s, string(w)) {
			return w, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidWeather, s)
}

// SmokerTemp is a smoker set point in °F.
type SmokerTemp int

// Supported smoker set points.
const (
	Temp225 SmokerTemp = 225
	Temp250 SmokerTemp = 250
	Temp275 SmokerTemp = 275
)

// SmokerTemps lists every supported set point in ascending order.
func SmokerTemps() []SmokerTemp {
	return []SmokerTemp{Temp225, Temp250, Temp275}
}

// Valid reports whether t is a supported set point.
func (t SmokerTemp) Valid() bool {
	switch t {
	case Temp225, Temp250, Temp275:
		return true
	}
	return false
}

// Conditions are the inputs collected for one planned cook.
type Conditions struct {
	MeatType     string
	WeightLbs    float64
	SmokerTempF  SmokerTemp
	Weather      Weather
	OutsideTempF int
	ZipCode      string
	Date         time.Time // calendar day of the cook, time part ignored
	StartTime    string    // "HH:MM", local to Date
}

// StartAt combines Date and StartTime. A zero Date yields the zero time.
func (c Conditions) StartAt() (time.Time, error) {
	if c.Date.IsZero() {
		return time.Time{}, nil
	}
	clock, err := ParseClock(c.StartTime)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := c.Date.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, c.Date.Location()), nil
}

// ParseClock parses an "HH:MM" (or "HH:MM:SS") time of day.
func ParseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidStartTime, s)
}
