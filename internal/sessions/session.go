package sessions

import (
	"fmt"
	"time"

	"github.com/2beens/fittrack/pkg"
)

var (
	ErrSessionNotFound      = fmt.Errorf("unknown session: %w", pkg.ErrNotFound)
	ErrSessionAlreadyActive = fmt.Errorf("a session is already active: %w", pkg.ErrConflict)
	ErrSessionNotActive     = fmt.Errorf("session is not active: %w", pkg.ErrInvalidState)
)

// Status of a workout session. A session starts active and ends up in
// exactly one of the terminal statuses, never leaving it again.
type Status string

const (
	StatusActive      Status = "active"
	StatusCompleted   Status = "completed"
	StatusAutoStopped Status = "auto_stopped"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusAutoStopped
}

type Session struct {
	ID           int        `json:"id"`
	UserID       int        `json:"user_id"`
	Date         string     `json:"date"`
	Status       Status     `json:"status"`
	StartTime    time.Time  `json:"start_time"`
	LastActivity time.Time  `json:"last_activity"`
	EndTime      *time.Time `json:"end_time"`
	// set only when the session is stopped by the user
	TotalCaloriesBurned *int `json:"total_calories_burned"`
}

// ExerciseLog is one performed set. Its calories are not stored, they are
// derived from the exercise rate when the session is stopped.
type ExerciseLog struct {
	ID                int       `json:"id"`
	SessionID         int       `json:"workout_session_id"`
	ExerciseID        int       `json:"exercise_id"`
	SetNumber         int       `json:"set_number"`
	Reps              int       `json:"reps"`
	Weight            *float64  `json:"weight"`
	CompletedAt       time.Time `json:"completed_at"`
	ExerciseName      string    `json:"exercise_name"`
	MuscleGroupName   string    `json:"muscle_group_name,omitempty"`
	EquipmentName     string    `json:"equipment_name,omitempty"`
	CaloriesPerMinute float64   `json:"calories_per_minute,omitempty"`
}

type LogSetParams struct {
	UserID     int      `json:"-"`
	SessionID  int      `json:"session_id"`
	ExerciseID int      `json:"exercise_id"`
	SetNumber  int      `json:"set_number"`
	Reps       int      `json:"reps"`
	Weight     *float64 `json:"weight"`
}

func (p LogSetParams) Validate() error {
	if p.SessionID < 1 {
		return fmt.Errorf("session_id must be a positive integer: %w", pkg.ErrValidation)
	}
	if p.ExerciseID < 1 {
		return fmt.Errorf("exercise_id must be a positive integer: %w", pkg.ErrValidation)
	}
	if p.SetNumber < 1 {
		return fmt.Errorf("set_number must be a positive integer: %w", pkg.ErrValidation)
	}
	if p.Reps < 1 {
		return fmt.Errorf("reps must be a positive integer: %w", pkg.ErrValidation)
	}
	if p.Weight != nil && *p.Weight < 0 {
		return fmt.Errorf("weight must not be negative: %w", pkg.ErrValidation)
	}
	return nil
}
