package model

import "time"

// Session is one logged historical cook.
type Session struct {
	Date                 time.Time `json:"date"`
	MeatType             string    `json:"meat_type"`
	WeightLbs            float64   `json:"meat_weight_lbs"`
	SmokerTempF          int       `json:"smoker_temp_f"`
	FinalInternalTempF   float64   `json:"final_internal_temp_f"`
	EstimatedCookTimeHrs float64   `json:"estimated_cook_time_hrs"`
	ActualCookTimeHrs    float64   `json:"actual_cook_time_hrs"`
	ExpertScore          float64   `json:"franklin_expert_score"`
	ReviewScore          float64   `json:"third_party_review_score"`
}
