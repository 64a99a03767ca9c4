package sampler

// Weathers lists the conditions the estimator accepts.
func Weathers() []string {
	return []string{"Sunny", "Cloudy", "Rainy", "Windy", "Humid", "Dry"}
}

// SmokerTemps lists the smoker settings the estimator accepts.
func SmokerTemps() []int {
	return []int{225, 250, 275}
}

// Combos returns every (weather, smoker temp) pair in a stable order.
func Combos() []Combo {
	out := make([]Combo, 0, len(Weathers())*len(SmokerTemps()))
	for _, w := range Weathers() {
		for _, t := range SmokerTemps() {
			out = append(out, Combo{Weather: w, SmokerTempF: t})
		}
	}
	return out
}

// buildRequests expands combos into samples requests each.
func buildRequests(config *Config, combos []Combo) []PredictRequest {
	reqs := make([]PredictRequest, 0, len(combos)*config.Samples)
	for _, c := range combos {
		for i := 0; i < config.Samples; i++ {
			reqs = append(reqs, PredictRequest{
				MeatType:    config.MeatType,
				WeightLbs:   config.WeightLbs,
				SmokerTempF: c.SmokerTempF,
				Weather:     c.Weather,
			})
		}
	}
	return reqs
}
