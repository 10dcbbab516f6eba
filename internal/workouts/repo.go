package workouts

import (
	"context"
	"fmt"

	"github.com/2beens/fittrack/internal/db"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
)

const workoutColumns = `id, user_id, name, calories_burned, to_char(date, 'YYYY-MM-DD'), created_at`

type Repo struct {
	db db.Querier
}

func NewRepo(db db.Querier) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Create(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", workout.UserID))

	date, err := pkg.ParseDate(workout.Date)
	if err != nil {
		return nil, err
	}

	created := &Workout{}
	err = r.db.QueryRow(ctx, `
		INSERT INTO workouts (user_id, name, calories_burned, date)
		VALUES ($1, $2, $3, $4)
		RETURNING `+workoutColumns,
		workout.UserID, workout.Name, workout.CaloriesBurned, date,
	).Scan(
		&created.ID, &created.UserID, &created.Name, &created.CaloriesBurned, &created.Date, &created.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (r *Repo) ListByDate(ctx context.Context, userID int, date string) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	day, err := pkg.ParseDate(date)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+workoutColumns+`
		FROM workouts
		WHERE user_id = $1 AND date = $2
		ORDER BY created_at DESC`,
		userID, day,
	)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Workout, error) {
		var w Workout
		err := row.Scan(&w.ID, &w.UserID, &w.Name, &w.CaloriesBurned, &w.Date, &w.CreatedAt)
		return w, err
	})
}

// Delete removes the workout only if it belongs to the user.
func (r *Repo) Delete(ctx context.Context, id, userID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM workouts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete workout %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

func (r *Repo) TotalCaloriesByDate(ctx context.Context, userID int, date string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.calories")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	day, err := pkg.ParseDate(date)
	if err != nil {
		return 0, err
	}

	var total int
	err = r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(calories_burned), 0)::int
		FROM workouts
		WHERE user_id = $1 AND date = $2`,
		userID, day,
	).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}
