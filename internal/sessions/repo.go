package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittrack/internal/calories"
	"github.com/2beens/fittrack/internal/catalog"
	"github.com/2beens/fittrack/internal/db"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const sessionColumns = `
	id, user_id, to_char(date, 'YYYY-MM-DD'), status, start_time, last_activity, end_time, total_calories_burned
`

type Repo struct {
	db db.Querier
}

func NewRepo(db db.Querier) *Repo {
	return &Repo{
		db: db,
	}
}

// GetActive returns the user's active session, or nil if there is none.
// Should more than one exist, the most recently started one wins.
func (r *Repo) GetActive(ctx context.Context, userID int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.active")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	session, err := scanSession(r.db.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM workout_sessions
		WHERE user_id = $1 AND status = 'active'
		ORDER BY start_time DESC
		LIMIT 1`,
		userID,
	))
	if errors.Is(err, ErrSessionNotFound) {
		return nil, nil
	}
	return session, err
}

func (r *Repo) Get(ctx context.Context, userID, sessionID int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.Int("session.id", sessionID))

	return scanSession(r.db.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM workout_sessions
		WHERE id = $1 AND user_id = $2`,
		sessionID, userID,
	))
}

// Create inserts a new active session. The partial unique index on active sessions
// turns a lost race with a concurrent start into ErrSessionAlreadyActive.
func (r *Repo) Create(ctx context.Context, userID int, date time.Time, now time.Time) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.create")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	session, err := scanSession(r.db.QueryRow(ctx, `
		INSERT INTO workout_sessions (user_id, date, status, start_time, last_activity)
		VALUES ($1, $2, 'active', $3, $3)
		RETURNING `+sessionColumns,
		userID, date, now,
	))
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrSessionAlreadyActive
		}
		return nil, err
	}

	return session, nil
}

// ListTerminalByDate lists completed and auto stopped sessions of the day, latest first.
func (r *Repo) ListTerminalByDate(ctx context.Context, userID int, date time.Time) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.bydate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.String("date", date.Format(pkg.DateLayout)),
	)

	rows, err := r.db.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM workout_sessions
		WHERE user_id = $1 AND date = $2 AND status IN ('completed', 'auto_stopped')
		ORDER BY start_time DESC`,
		userID, date,
	)
	if err != nil {
		return nil, err
	}
	return collectSessions(rows)
}

// TotalCaloriesByDate sums the totals of terminal sessions of the day.
// Auto stopped sessions carry no total and count as zero.
func (r *Repo) TotalCaloriesByDate(ctx context.Context, userID int, date time.Time) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.calories")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var total int
	err = r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_calories_burned), 0)::int
		FROM workout_sessions
		WHERE user_id = $1 AND date = $2 AND status IN ('completed', 'auto_stopped')`,
		userID, date,
	).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// AddLog stores a set and touches the session's last activity. The session row is
// locked and re-checked, so a concurrent stop or sweep cannot interleave.
func (r *Repo) AddLog(ctx context.Context, params LogSetParams, now time.Time) (_ *ExerciseLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.logs.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("session.id", params.SessionID),
		attribute.Int("exercise.id", params.ExerciseID),
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

	if err = lockActiveSession(ctx, tx, params.UserID, params.SessionID); err != nil {
		return nil, err
	}

	exLog := &ExerciseLog{
		SessionID:  params.SessionID,
		ExerciseID: params.ExerciseID,
		SetNumber:  params.SetNumber,
		Reps:       params.Reps,
		Weight:     params.Weight,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO exercise_logs (workout_session_id, exercise_id, set_number, reps, weight, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, completed_at`,
		params.SessionID, params.ExerciseID, params.SetNumber, params.Reps, params.Weight, now,
	).Scan(&exLog.ID, &exLog.CompletedAt)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, catalog.ErrExerciseNotFound
		}
		return nil, fmt.Errorf("insert log: %w", err)
	}

	if _, err = tx.Exec(ctx,
		`UPDATE workout_sessions SET last_activity = $2 WHERE id = $1`,
		params.SessionID, now,
	); err != nil {
		return nil, fmt.Errorf("touch session: %w", err)
	}

	return exLog, nil
}

// ListLogs returns the session's sets in the order they were performed.
func (r *Repo) ListLogs(ctx context.Context, sessionID int) (_ []ExerciseLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.logs.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", sessionID))

	rows, err := r.db.Query(ctx, `
		SELECT el.id, el.workout_session_id, el.exercise_id, el.set_number, el.reps, el.weight, el.completed_at,
			e.name, mg.name, et.name, e.calories_per_minute
		FROM exercise_logs el
		INNER JOIN exercises e ON el.exercise_id = e.id
		INNER JOIN muscle_groups mg ON e.muscle_group_id = mg.id
		INNER JOIN equipment_types et ON e.equipment_type_id = et.id
		WHERE el.workout_session_id = $1
		ORDER BY el.completed_at ASC, el.id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (ExerciseLog, error) {
		var l ExerciseLog
		err := row.Scan(
			&l.ID, &l.SessionID, &l.ExerciseID, &l.SetNumber, &l.Reps, &l.Weight, &l.CompletedAt,
			&l.ExerciseName, &l.MuscleGroupName, &l.EquipmentName, &l.CaloriesPerMinute,
		)
		return l, err
	})
}

// DeleteLog removes a log only if its session belongs to the user.
// Session totals are left as they are.
func (r *Repo) DeleteLog(ctx context.Context, logID, userID int) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.logs.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("log.id", logID), attribute.Int("user.id", userID))

	tag, err := r.db.Exec(ctx, `
		DELETE FROM exercise_logs el
		USING workout_sessions ws
		WHERE el.id = $1 AND el.workout_session_id = ws.id AND ws.user_id = $2`,
		logID, userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Stop completes the session with the calories of all its logs, in one transaction.
func (r *Repo) Stop(ctx context.Context, userID, sessionID int, now time.Time) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.stop")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.Int("session.id", sessionID))

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

	if err = lockActiveSession(ctx, tx, userID, sessionID); err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT e.calories_per_minute, el.reps
		FROM exercise_logs el
		INNER JOIN exercises e ON el.exercise_id = e.id
		WHERE el.workout_session_id = $1`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("get session logs: %w", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (calories.Entry, error) {
		var e calories.Entry
		err := row.Scan(&e.CaloriesPerMinute, &e.Reps)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect session logs: %w", err)
	}

	total := calories.SessionCalories(entries)
	span.SetAttributes(attribute.Int("calories", total), attribute.Int("logs", len(entries)))

	return scanSession(tx.QueryRow(ctx, `
		UPDATE workout_sessions
		SET status = 'completed', end_time = $2, total_calories_burned = $3
		WHERE id = $1
		RETURNING `+sessionColumns,
		sessionID, now, total,
	))
}

// AutoStopIdle closes every active session idle since before cutoff. The end time is
// reconstructed as last activity plus the idle timeout, and no calorie total is computed.
func (r *Repo) AutoStopIdle(ctx context.Context, cutoff time.Time, idleTimeout time.Duration) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.autostop")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		UPDATE workout_sessions
		SET status = 'auto_stopped', end_time = last_activity + ($2::float8 * INTERVAL '1 second')
		WHERE status = 'active' AND last_activity < $1
		RETURNING `+sessionColumns,
		cutoff, idleTimeout.Seconds(),
	)
	if err != nil {
		return nil, err
	}

	stopped, err := collectSessions(rows)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("stopped", len(stopped)))

	return stopped, nil
}

func lockActiveSession(ctx context.Context, tx pgx.Tx, userID, sessionID int) error {
	var status Status
	err := tx.QueryRow(ctx, `
		SELECT status FROM workout_sessions
		WHERE id = $1 AND user_id = $2
		FOR UPDATE`,
		sessionID, userID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("lock session: %w", err)
	}
	if status != StatusActive {
		return ErrSessionNotActive
	}
	return nil
}

func scanSession(row pgx.Row) (*Session, error) {
	s := &Session{}
	err := row.Scan(
		&s.ID, &s.UserID, &s.Date, &s.Status, &s.StartTime, &s.LastActivity, &s.EndTime, &s.TotalCaloriesBurned,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return s, nil
}

func collectSessions(rows pgx.Rows) ([]Session, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Session, error) {
		var s Session
		err := row.Scan(
			&s.ID, &s.UserID, &s.Date, &s.Status, &s.StartTime, &s.LastActivity, &s.EndTime, &s.TotalCaloriesBurned,
		)
		return s, err
	})
}
