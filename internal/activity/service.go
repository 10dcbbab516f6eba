package activity

import (
	"context"
	"fmt"

	"github.com/2beens/fittrack/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=activity_test

type eventsRepo interface {
	Add(ctx context.Context, event Event) (*Event, error)
	List(ctx context.Context, params ListParams) ([]*Event, error)
	Count(ctx context.Context, userID int, eventType *EventType) (int, error)
}

type Service struct {
	repo eventsRepo
}

func NewService(repo eventsRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) RecordSessionStarted(ctx context.Context, ss SessionStarted) (_ int, err error) {
	return s.add(ctx, NewSessionStartedEvent(ss))
}

func (s *Service) RecordSetLogged(ctx context.Context, sl SetLogged) (_ int, err error) {
	return s.add(ctx, NewSetLoggedEvent(sl))
}

func (s *Service) RecordSessionCompleted(ctx context.Context, sf SessionFinished) (_ int, err error) {
	return s.add(ctx, NewSessionCompletedEvent(sf))
}

func (s *Service) RecordSessionAutoStopped(ctx context.Context, sf SessionFinished) (_ int, err error) {
	return s.add(ctx, NewSessionAutoStoppedEvent(sf))
}

func (s *Service) add(ctx context.Context, event Event) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activity.events.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("type", event.Type.String()),
		attribute.Int("session.id", event.SessionID),
	)

	added, err := s.repo.Add(ctx, event)
	if err != nil {
		return 0, fmt.Errorf("add %s event: %w", event.Type, err)
	}
	return added.ID, nil
}

// List returns one page of the user's events and the total count of events matching the filter.
func (s *Service) List(ctx context.Context, params ListParams) (_ []*Event, _ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activity.events.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	events, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}

	total, err := s.repo.Count(ctx, params.UserID, params.Type)
	if err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	return events, total, nil
}
