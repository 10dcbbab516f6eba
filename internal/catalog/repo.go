package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fittrack/internal/db"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
)

const exerciseColumns = `
	e.id, e.name, e.muscle_group_id, mg.name, e.equipment_type_id, et.name, e.calories_per_minute
`

const exerciseJoins = `
	FROM exercises e
	INNER JOIN muscle_groups mg ON e.muscle_group_id = mg.id
	INNER JOIN equipment_types et ON e.equipment_type_id = et.id
`

type Repo struct {
	db db.Querier
}

func NewRepo(db db.Querier) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) GetExerciseByID(ctx context.Context, id int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var ex Exercise
	err = r.db.QueryRow(ctx,
		`SELECT `+exerciseColumns+exerciseJoins+` WHERE e.id = $1`,
		id,
	).Scan(
		&ex.ID, &ex.Name, &ex.MuscleGroupID, &ex.MuscleGroupName,
		&ex.EquipmentTypeID, &ex.EquipmentName, &ex.CaloriesPerMinute,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	return &ex, nil
}

func (r *Repo) ListExercises(ctx context.Context, params ListParams) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var (
		query string
		args  []any
	)
	switch {
	case params.UserID != nil:
		span.SetAttributes(attribute.Int("user.id", *params.UserID))
		query = `SELECT DISTINCT ` + exerciseColumns + exerciseJoins + `
			INNER JOIN user_equipment ue ON e.equipment_type_id = ue.equipment_type_id
			WHERE ue.user_id = $1
			  AND ($2::int IS NULL OR e.muscle_group_id = $2)
			ORDER BY mg.name, e.name`
		args = []any{*params.UserID, params.MuscleGroupID}
	case params.MuscleGroupID != nil:
		query = `SELECT ` + exerciseColumns + exerciseJoins + `
			WHERE e.muscle_group_id = $1
			ORDER BY e.name`
		args = []any{*params.MuscleGroupID}
	case params.EquipmentTypeID != nil:
		query = `SELECT ` + exerciseColumns + exerciseJoins + `
			WHERE e.equipment_type_id = $1
			ORDER BY mg.name, e.name`
		args = []any{*params.EquipmentTypeID}
	default:
		query = `SELECT ` + exerciseColumns + exerciseJoins + ` ORDER BY mg.name, e.name`
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]Exercise, 0)
	for rows.Next() {
		var ex Exercise
		if err := rows.Scan(
			&ex.ID, &ex.Name, &ex.MuscleGroupID, &ex.MuscleGroupName,
			&ex.EquipmentTypeID, &ex.EquipmentName, &ex.CaloriesPerMinute,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		exercises = append(exercises, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("exercises.count", len(exercises)))
	return exercises, nil
}

func (r *Repo) ListMuscleGroups(ctx context.Context) (_ []MuscleGroup, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.musclegroups.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id, name FROM muscle_groups ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (MuscleGroup, error) {
		var mg MuscleGroup
		err := row.Scan(&mg.ID, &mg.Name)
		return mg, err
	})
}

func (r *Repo) ListEquipmentTypes(ctx context.Context) (_ []EquipmentType, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.equipment.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id, name FROM equipment_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return collectEquipment(rows)
}

func (r *Repo) GetUserEquipment(ctx context.Context, userID int) (_ []EquipmentType, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.equipment.user")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	return r.userEquipment(ctx, r.db, userID)
}

// SetUserEquipment replaces the user's equipment selection in one transaction,
// so a failed insert leaves the previous selection in place.
func (r *Repo) SetUserEquipment(ctx context.Context, userID int, equipmentIDs []int) (_ []EquipmentType, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.equipment.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.IntSlice("equipment.ids", equipmentIDs),
	)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM user_equipment WHERE user_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("delete user equipment: %w", err)
	}

	if len(equipmentIDs) > 0 {
		_, err = tx.Exec(ctx, `
			INSERT INTO user_equipment (user_id, equipment_type_id)
			SELECT $1, unnest($2::int[])
			ON CONFLICT DO NOTHING`,
			userID, equipmentIDs,
		)
		if err != nil {
			if pkg.IsForeignKeyViolationError(err) {
				return nil, ErrUnknownEquipmentType
			}
			return nil, fmt.Errorf("insert user equipment: %w", err)
		}
	}

	return r.userEquipment(ctx, tx, userID)
}

// AssignAllEquipment gives a newly registered user every equipment type.
func (r *Repo) AssignAllEquipment(ctx context.Context, userID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.equipment.assignall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(ctx, `
		INSERT INTO user_equipment (user_id, equipment_type_id)
		SELECT $1, id FROM equipment_types
		ON CONFLICT DO NOTHING`,
		userID,
	)
	return err
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *Repo) userEquipment(ctx context.Context, q querier, userID int) ([]EquipmentType, error) {
	rows, err := q.Query(ctx, `
		SELECT et.id, et.name
		FROM equipment_types et
		INNER JOIN user_equipment ue ON et.id = ue.equipment_type_id
		WHERE ue.user_id = $1
		ORDER BY et.name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return collectEquipment(rows)
}

func collectEquipment(rows pgx.Rows) ([]EquipmentType, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (EquipmentType, error) {
		var et EquipmentType
		err := row.Scan(&et.ID, &et.Name)
		return et, err
	})
}
