package sampler

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// summarize reduces collected scores to one Summary per combination, in
// combos order.
func summarize(combos []Combo, results *collector) []Summary {
	out := make([]Summary, 0, len(combos))
	for _, c := range combos {
		scores := results.scores[c]
		s := Summary{Combo: c, Count: len(scores), Failed: results.failed[c]}
		if len(scores) > 0 {
			s.Mean = stat.Mean(scores, nil)
			s.Min = floats.Min(scores)
			s.Max = floats.Max(scores)
			if len(scores) > 1 {
				s.StdDev = stat.StdDev(scores, nil)
			}
		}
		for _, v := range scores {
			if v < MinScore || v > MaxScore {
				s.OutOfRange++
			}
		}
		out = append(out, s)
	}
	return out
}

// verifySummaries fails when any score escaped [MinScore, MaxScore] or
// nothing was sampled.
func verifySummaries(summaries []Summary) error {
	total := 0
	for _, s := range summaries {
		total += s.Count
		if s.OutOfRange > 0 {
			return fmt.Errorf("%w: %d of %d scores for %s/%d outside [%g, %g]",
				ErrScoreOutOfRange, s.OutOfRange, s.Count, s.Weather, s.SmokerTempF, MinScore, MaxScore)
		}
	}
	if total == 0 {
		return ErrNoSamples
	}
	return nil
}
