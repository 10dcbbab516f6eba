package meals

import (
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fittrack/pkg"
)

const (
	minServings = 0.1
	// RecentMealsLimit is how many of the latest meals are offered for quick re-entry.
	RecentMealsLimit = 5
)

var (
	ErrMealNotFound     = fmt.Errorf("meal %w", pkg.ErrNotFound)
	ErrFavoriteNotFound = fmt.Errorf("favorite meal %w", pkg.ErrNotFound)
)

type Meal struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Name        string    `json:"name"`
	Calories    int       `json:"calories"`
	Protein     *float64  `json:"protein"`
	Carbs       *float64  `json:"carbs"`
	Fat         *float64  `json:"fat"`
	ServingSize *string   `json:"serving_size"`
	Servings    float64   `json:"servings"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

func (m Meal) Validate() error {
	if err := validateNutrition(m.Name, m.Calories, m.Protein, m.Carbs, m.Fat); err != nil {
		return err
	}
	if m.Servings < minServings {
		return fmt.Errorf("servings must be at least %.1f: %w", minServings, pkg.ErrValidation)
	}
	if _, err := pkg.ParseDate(m.Date); err != nil {
		return err
	}
	return nil
}

// Favorite is a saved meal template, without a date.
type Favorite struct {
	ID              int       `json:"id"`
	UserID          int       `json:"user_id"`
	Name            string    `json:"name"`
	Calories        int       `json:"calories"`
	Protein         *float64  `json:"protein"`
	Carbs           *float64  `json:"carbs"`
	Fat             *float64  `json:"fat"`
	ServingSize     *string   `json:"serving_size"`
	DefaultServings float64   `json:"default_servings"`
	CreatedAt       time.Time `json:"created_at"`
}

func (f Favorite) Validate() error {
	if err := validateNutrition(f.Name, f.Calories, f.Protein, f.Carbs, f.Fat); err != nil {
		return err
	}
	if f.DefaultServings < minServings {
		return fmt.Errorf("default_servings must be at least %.1f: %w", minServings, pkg.ErrValidation)
	}
	return nil
}

// Macros holds the macronutrient grams eaten on a day.
type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

func validateNutrition(name string, calories int, macros ...*float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("meal name is required: %w", pkg.ErrValidation)
	}
	if len(name) > 255 {
		return fmt.Errorf("meal name too long: %w", pkg.ErrValidation)
	}
	if calories < 0 {
		return fmt.Errorf("calories must not be negative: %w", pkg.ErrValidation)
	}
	for _, m := range macros {
		if m != nil && *m < 0 {
			return fmt.Errorf("macros must not be negative: %w", pkg.ErrValidation)
		}
	}
	return nil
}
