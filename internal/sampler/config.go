package sampler

import "time"

// Config holds configuration for a sampling run.
type Config struct {
	BaseURL    string        // Base URL of the service
	MeatType   string        // Meat type every sample asks about
	WeightLbs  float64       // Weight every sample asks about
	Samples    int           // Predictions per (weather, smoker temp) combination
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for the summary, empty to skip
	Verbose    bool          // Log every combination summary
}

// Combo is one (weather, smoker temp) pair.
type Combo struct {
	Weather     string `json:"weather"`
	SmokerTempF int    `json:"smoker_temp_f"`
}

// PredictRequest is the body posted to /predict.
type PredictRequest struct {
	MeatType    string  `json:"meat_type"`
	WeightLbs   float64 `json:"weight_lbs"`
	SmokerTempF int     `json:"smoker_temp_f"`
	Weather     string  `json:"weather"`
}

// Prediction is the subset of the /predict response the sampler reads.
type Prediction struct {
	ID                     string  `json:"id"`
	EstimatedCookTimeHours float64 `json:"estimated_cook_time_hours"`
	PredictedScore         float64 `json:"predicted_score"`
}

// Summary describes the scores sampled for one combination.
type Summary struct {
	Combo
	Count      int     `json:"count"`
	Failed     int     `json:"failed"`
	OutOfRange int     `json:"out_of_range"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
}

// Stats holds run statistics.
type Stats struct {
	Submitted  int
	Successful int
	Failed     int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}
