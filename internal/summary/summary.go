package summary

import (
	"math"

	"github.com/2beens/fittrack/internal/meals"
	"github.com/2beens/fittrack/internal/users"
	"github.com/2beens/fittrack/pkg"
)

const (
	DefaultBMR = 1800
	// CaloriesPerPound is the energy in one pound of body weight.
	CaloriesPerPound = 3500
	WeekDays         = 7
)

// Summary is the calorie balance of one day.
type Summary struct {
	Date            string       `json:"date"`
	CaloriesEaten   int          `json:"calories_eaten"`
	CaloriesBurned  int          `json:"calories_burned"`
	WorkoutCalories int          `json:"workout_calories"`
	SessionCalories int          `json:"session_calories"`
	BMR             int          `json:"bmr"`
	NetCalories     int          `json:"net_calories"`
	Macros          meals.Macros `json:"macros"`
	CurrentWeight   *float64     `json:"current_weight"`
	GoalWeight      *float64     `json:"goal_weight"`
	CaloriesToGoal  *int         `json:"calories_to_goal"`
}

type dayTotals struct {
	eaten    int
	workouts int
	sessions int
	macros   meals.Macros
}

func buildSummary(date string, profile *users.User, totals dayTotals) *Summary {
	bmr := DefaultBMR
	if profile.BMR != nil && *profile.BMR != 0 {
		bmr = *profile.BMR
	}

	burned := totals.workouts + totals.sessions
	s := &Summary{
		Date:            date,
		CaloriesEaten:   totals.eaten,
		CaloriesBurned:  burned,
		WorkoutCalories: totals.workouts,
		SessionCalories: totals.sessions,
		BMR:             bmr,
		NetCalories:     totals.eaten - burned - bmr,
		Macros: meals.Macros{
			Protein: pkg.RoundTo(totals.macros.Protein, 1),
			Carbs:   pkg.RoundTo(totals.macros.Carbs, 1),
			Fat:     pkg.RoundTo(totals.macros.Fat, 1),
		},
		CurrentWeight: profile.CurrentWeight,
		GoalWeight:    profile.GoalWeight,
	}

	// a zero weight counts as unset
	if profile.CurrentWeight != nil && profile.GoalWeight != nil &&
		*profile.CurrentWeight != 0 && *profile.GoalWeight != 0 {
		toGoal := int(math.Round((*profile.CurrentWeight - *profile.GoalWeight) * CaloriesPerPound))
		s.CaloriesToGoal = &toGoal
	}

	return s
}
