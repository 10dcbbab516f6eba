package workouts

import (
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fittrack/pkg"
)

var ErrWorkoutNotFound = fmt.Errorf("workout %w", pkg.ErrNotFound)

// Workout is a simple workout entry: a name and the calories it burned.
type Workout struct {
	ID             int       `json:"id"`
	UserID         int       `json:"user_id"`
	Name           string    `json:"name"`
	CaloriesBurned int       `json:"calories_burned"`
	Date           string    `json:"date"`
	CreatedAt      time.Time `json:"created_at"`
}

func (w Workout) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return fmt.Errorf("workout name is required: %w", pkg.ErrValidation)
	}
	if len(w.Name) > 255 {
		return fmt.Errorf("workout name too long: %w", pkg.ErrValidation)
	}
	if w.CaloriesBurned < 0 {
		return fmt.Errorf("calories_burned must not be negative: %w", pkg.ErrValidation)
	}
	if _, err := pkg.ParseDate(w.Date); err != nil {
		return err
	}
	return nil
}
