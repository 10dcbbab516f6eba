package users

import (
	"context"
	"errors"

	"github.com/2beens/fittrack/internal/db"
	"github.com/2beens/fittrack/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type Repo struct {
	db db.Querier
}

func NewRepo(db db.Querier) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) CreateUser(ctx context.Context, username, passwordHash string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var id int
	err = r.db.QueryRow(ctx, `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id`,
		username, passwordHash,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	span.SetAttributes(attribute.Int("user.id", id))
	return id, nil
}

func (r *Repo) FindCredentials(ctx context.Context, username string) (_ int, _ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.credentials")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var (
		id           int
		passwordHash string
	)
	err = r.db.QueryRow(ctx,
		`SELECT id, password_hash FROM users WHERE username = $1`,
		username,
	).Scan(&id, &passwordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, "", ErrUserNotFound
		}
		return 0, "", err
	}

	return id, passwordHash, nil
}

func (r *Repo) GetProfile(ctx context.Context, userID int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.profile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	return r.scanUser(r.db.QueryRow(ctx, `
		SELECT id, username, bmr, current_weight, goal_weight, initial_weight, created_at
		FROM users
		WHERE id = $1`,
		userID,
	))
}

func (r *Repo) UpdateSettings(ctx context.Context, userID int, settings Settings) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.settings.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	return r.scanUser(r.db.QueryRow(ctx, `
		UPDATE users SET
			bmr = COALESCE($2, bmr),
			current_weight = COALESCE($3, current_weight),
			goal_weight = COALESCE($4, goal_weight),
			initial_weight = COALESCE($5, initial_weight)
		WHERE id = $1
		RETURNING id, username, bmr, current_weight, goal_weight, initial_weight, created_at`,
		userID, settings.BMR, settings.CurrentWeight, settings.GoalWeight, settings.InitialWeight,
	))
}

func (r *Repo) scanUser(row pgx.Row) (*User, error) {
	u := &User{}
	err := row.Scan(&u.ID, &u.Username, &u.BMR, &u.CurrentWeight, &u.GoalWeight, &u.InitialWeight, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
