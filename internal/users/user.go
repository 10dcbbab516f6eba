package users

import (
	"fmt"
	"time"

	"github.com/2beens/fittrack/pkg"
)

var ErrUserNotFound = fmt.Errorf("user %w", pkg.ErrNotFound)

// User is the profile of a registered user. Nil fields are unset.
type User struct {
	ID            int       `json:"id"`
	Username      string    `json:"username"`
	BMR           *int      `json:"bmr"`
	CurrentWeight *float64  `json:"current_weight"`
	GoalWeight    *float64  `json:"goal_weight"`
	InitialWeight *float64  `json:"initial_weight"`
	CreatedAt     time.Time `json:"created_at"`
}

// Settings is a partial profile update; only non nil fields are changed.
type Settings struct {
	BMR           *int     `json:"bmr"`
	CurrentWeight *float64 `json:"current_weight"`
	GoalWeight    *float64 `json:"goal_weight"`
	InitialWeight *float64 `json:"initial_weight"`
}

func (s Settings) Validate() error {
	if s.BMR != nil && (*s.BMR < 1000 || *s.BMR > 5000) {
		return fmt.Errorf("bmr must be between 1000 and 5000: %w", pkg.ErrValidation)
	}
	for name, w := range map[string]*float64{
		"current_weight": s.CurrentWeight,
		"goal_weight":    s.GoalWeight,
		"initial_weight": s.InitialWeight,
	} {
		if w != nil && *w < 0 {
			return fmt.Errorf("%s must be positive: %w", name, pkg.ErrValidation)
		}
	}
	return nil
}
