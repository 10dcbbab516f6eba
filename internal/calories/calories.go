// Package calories estimates calories burned by logged exercise sets.
package calories

import "math"

// SecondsPerRep is the fixed duration assumed for a single repetition.
const SecondsPerRep = 3

// Entry is one logged set as seen by the estimator.
type Entry struct {
	CaloriesPerMinute float64
	Reps              int
}

// SetCalories returns round(caloriesPerMinute * reps*3/60), ties away from zero.
func SetCalories(caloriesPerMinute float64, reps int) int {
	if reps <= 0 || caloriesPerMinute <= 0 {
		return 0
	}
	minutes := float64(reps*SecondsPerRep) / 60
	return int(math.Round(caloriesPerMinute * minutes))
}

// SessionCalories sums the already rounded per set estimates.
func SessionCalories(entries []Entry) int {
	total := 0
	for _, e := range entries {
		total += SetCalories(e.CaloriesPerMinute, e.Reps)
	}
	return total
}
