package activity

import (
	"context"
	"fmt"

	"github.com/2beens/fittrack/internal/db"
	"github.com/2beens/fittrack/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type ListParams struct {
	UserID int
	Type   *EventType
	Page   int
	Size   int
}

type Repo struct {
	db db.Querier
}

func NewRepo(db db.Querier) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, event Event) (_ *Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activity.events.add")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	err = r.db.QueryRow(ctx, `
		INSERT INTO session_events (type, session_id, user_id, data, timestamp)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		event.Type,
		event.SessionID,
		event.UserID,
		event.Data,
		event.Timestamp,
	).Scan(&event.ID)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []*Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activity.events.list")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(
		attribute.Int("user.id", params.UserID),
		attribute.Int("page", params.Page),
		attribute.Int("size", params.Size),
	)
	if params.Type != nil {
		span.SetAttributes(attribute.String("type", params.Type.String()))
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, type, session_id, user_id, data, timestamp
		FROM session_events
		WHERE user_id = $1
		  AND ($2::text IS NULL OR type = $2)
		ORDER BY timestamp DESC, id DESC
		LIMIT $3 OFFSET $4
	`,
		params.UserID,
		params.Type,
		params.Size, params.Size*(params.Page-1),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*Event, 0)
	for rows.Next() {
		event := &Event{}
		if err := rows.Scan(
			&event.ID, &event.Type, &event.SessionID, &event.UserID, &event.Data, &event.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *Repo) Count(ctx context.Context, userID int, eventType *EventType) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activity.events.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM session_events
		WHERE user_id = $1
		  AND ($2::text IS NULL OR type = $2)
	`,
		userID, eventType,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
