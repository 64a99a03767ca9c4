// Package types contains common types used across the application
package types

import "time"

// Prediction is one served estimate together with the inputs it was made for.
type Prediction struct {
	ID string `json:"id"`

	MeatType     string  `json:"meat_type"`
	WeightLbs    float64 `json:"weight_lbs"`
	SmokerTempF  int     `json:"smoker_temp_f"`
	Weather      string  `json:"weather"`
	OutsideTempF int     `json:"outside_temp_f"`
	ZipCode      string  `json:"zip_code"`
	Date         string  `json:"date,omitempty"` // YYYY-MM-DD
	StartTime    string  `json:"start_time"`

	TargetInternalTempF    int        `json:"target_internal_temp_f"`
	EstimatedCookTimeHours float64    `json:"estimated_cook_time_hours"`
	PredictedScore         float64    `json:"predicted_score"`
	ReadyAt                *time.Time `json:"ready_at,omitempty"`
}

// PredictRequest carries raw form values. Empty optional fields take the
// configured defaults.
type PredictRequest struct {
	MeatType     string  `json:"meat_type"`
	WeightLbs    float64 `json:"weight_lbs"`
	SmokerTempF  int     `json:"smoker_temp_f"`
	Weather      string  `json:"weather"`
	OutsideTempF *int    `json:"outside_temp_f,omitempty"`
	ZipCode      string  `json:"zip_code,omitempty"`
	Date         string  `json:"date,omitempty"`       // YYYY-MM-DD, defaults to today
	StartTime    string  `json:"start_time,omitempty"` // HH:MM
}
