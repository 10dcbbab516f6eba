package catalog

import (
	"fmt"

	"github.com/2beens/fittrack/pkg"
)

var (
	ErrExerciseNotFound     = fmt.Errorf("exercise %w", pkg.ErrNotFound)
	ErrUnknownEquipmentType = fmt.Errorf("unknown equipment type: %w", pkg.ErrValidation)
)

type Exercise struct {
	ID                int     `json:"id"`
	Name              string  `json:"name"`
	MuscleGroupID     int     `json:"muscle_group_id"`
	MuscleGroupName   string  `json:"muscle_group_name"`
	EquipmentTypeID   int     `json:"equipment_type_id"`
	EquipmentName     string  `json:"equipment_name"`
	CaloriesPerMinute float64 `json:"calories_per_minute"`
}

type MuscleGroup struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type EquipmentType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ListParams filters exercises. When UserID is set, only exercises doable with
// that user's equipment are listed, optionally narrowed by MuscleGroupID.
// Otherwise MuscleGroupID takes precedence over EquipmentTypeID.
type ListParams struct {
	UserID          *int
	MuscleGroupID   *int
	EquipmentTypeID *int
}
