package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/fittrack/internal/activity"
	"github.com/2beens/fittrack/internal/catalog"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

const DefaultIdleTimeout = 2 * time.Hour

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=sessions_test

type sessionsRepo interface {
	GetActive(ctx context.Context, userID int) (*Session, error)
	Get(ctx context.Context, userID, sessionID int) (*Session, error)
	Create(ctx context.Context, userID int, date time.Time, now time.Time) (*Session, error)
	ListTerminalByDate(ctx context.Context, userID int, date time.Time) ([]Session, error)
	TotalCaloriesByDate(ctx context.Context, userID int, date time.Time) (int, error)
	AddLog(ctx context.Context, params LogSetParams, now time.Time) (*ExerciseLog, error)
	ListLogs(ctx context.Context, sessionID int) ([]ExerciseLog, error)
	DeleteLog(ctx context.Context, logID, userID int) (bool, error)
	Stop(ctx context.Context, userID, sessionID int, now time.Time) (*Session, error)
	AutoStopIdle(ctx context.Context, cutoff time.Time, idleTimeout time.Duration) ([]Session, error)
}

type exerciseCatalog interface {
	GetExerciseByID(ctx context.Context, id int) (*catalog.Exercise, error)
}

type activityRecorder interface {
	RecordSessionStarted(ctx context.Context, ss activity.SessionStarted) (int, error)
	RecordSetLogged(ctx context.Context, sl activity.SetLogged) (int, error)
	RecordSessionCompleted(ctx context.Context, sf activity.SessionFinished) (int, error)
	RecordSessionAutoStopped(ctx context.Context, sf activity.SessionFinished) (int, error)
}

// Service owns the workout session lifecycle. All session state lives in the
// store; nothing about sessions or logs is kept in memory between calls.
type Service struct {
	repo           sessionsRepo
	catalog        exerciseCatalog
	activity       activityRecorder
	metricsManager *metrics.Manager
	idleTimeout    time.Duration

	NowFunc func() time.Time
}

func NewService(
	repo sessionsRepo,
	catalog exerciseCatalog,
	activity activityRecorder,
	metricsManager *metrics.Manager,
	idleTimeout time.Duration,
) *Service {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &Service{
		repo:           repo,
		catalog:        catalog,
		activity:       activity,
		metricsManager: metricsManager,
		idleTimeout:    idleTimeout,
		NowFunc:        time.Now,
	}
}

// StartSession opens a new active session for the date, today (UTC) if empty.
func (s *Service) StartSession(ctx context.Context, userID int, date string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.start")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	now := s.NowFunc()
	if date == "" {
		date = pkg.Today(now, time.UTC)
	}
	day, err := pkg.ParseDate(date)
	if err != nil {
		return nil, err
	}

	active, err := s.repo.GetActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get active session: %w", err)
	}
	if active != nil {
		return nil, ErrSessionAlreadyActive
	}

	session, err := s.repo.Create(ctx, userID, day, now)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s.countTransition(StatusActive)

	if _, err := s.activity.RecordSessionStarted(ctx, activity.SessionStarted{
		SessionID: session.ID,
		UserID:    userID,
		Date:      session.Date,
		Timestamp: now,
	}); err != nil {
		log.Warnf("session %d started, record activity: %s", session.ID, err)
	}

	return session, nil
}

// GetActiveSession returns nil when the user has no active session.
func (s *Service) GetActiveSession(ctx context.Context, userID int) (*Session, error) {
	session, err := s.repo.GetActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get active session: %w", err)
	}
	return session, nil
}

func (s *Service) GetSession(ctx context.Context, userID, sessionID int) (*Session, error) {
	session, err := s.repo.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session %d: %w", sessionID, err)
	}
	return session, nil
}

// GetSessionsByDate lists only finished sessions; the active one belongs to now, not to the day.
func (s *Service) GetSessionsByDate(ctx context.Context, userID int, date string) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.bydate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	day, err := pkg.ParseDate(date)
	if err != nil {
		return nil, err
	}

	sessions, err := s.repo.ListTerminalByDate(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (s *Service) TotalCaloriesByDate(ctx context.Context, userID int, date string) (int, error) {
	day, err := pkg.ParseDate(date)
	if err != nil {
		return 0, err
	}
	total, err := s.repo.TotalCaloriesByDate(ctx, userID, day)
	if err != nil {
		return 0, fmt.Errorf("sessions calories: %w", err)
	}
	return total, nil
}

// LogExerciseSet checks, in order: the session exists and is owned by the user,
// the session is active, the exercise exists. Then the set is stored and the
// session's last activity is moved to now.
func (s *Service) LogExerciseSet(ctx context.Context, params LogSetParams) (_ *ExerciseLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.logset")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := params.Validate(); err != nil {
		return nil, err
	}

	session, err := s.repo.Get(ctx, params.UserID, params.SessionID)
	if err != nil {
		return nil, fmt.Errorf("get session %d: %w", params.SessionID, err)
	}
	if session.Status != StatusActive {
		return nil, ErrSessionNotActive
	}

	exercise, err := s.catalog.GetExerciseByID(ctx, params.ExerciseID)
	if err != nil {
		return nil, err
	}

	now := s.NowFunc()
	exLog, err := s.repo.AddLog(ctx, params, now)
	if err != nil {
		return nil, fmt.Errorf("add log: %w", err)
	}
	exLog.ExerciseName = exercise.Name
	exLog.MuscleGroupName = exercise.MuscleGroupName
	exLog.EquipmentName = exercise.EquipmentName
	exLog.CaloriesPerMinute = exercise.CaloriesPerMinute

	if _, err := s.activity.RecordSetLogged(ctx, activity.SetLogged{
		SessionID:  params.SessionID,
		UserID:     params.UserID,
		LogID:      exLog.ID,
		ExerciseID: params.ExerciseID,
		SetNumber:  params.SetNumber,
		Reps:       params.Reps,
		Timestamp:  now,
	}); err != nil {
		log.Warnf("session %d set logged, record activity: %s", params.SessionID, err)
	}

	return exLog, nil
}

func (s *Service) ListLogs(ctx context.Context, sessionID int) ([]ExerciseLog, error) {
	logs, err := s.repo.ListLogs(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list logs of session %d: %w", sessionID, err)
	}
	return logs, nil
}

// DeleteLog reports whether a log was removed. It never touches session totals.
func (s *Service) DeleteLog(ctx context.Context, logID, userID int) (bool, error) {
	deleted, err := s.repo.DeleteLog(ctx, logID, userID)
	if err != nil {
		return false, fmt.Errorf("delete log %d: %w", logID, err)
	}
	return deleted, nil
}

func (s *Service) StopSession(ctx context.Context, userID, sessionID int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.stop")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := s.NowFunc()
	session, err := s.repo.Stop(ctx, userID, sessionID, now)
	if err != nil {
		return nil, fmt.Errorf("stop session %d: %w", sessionID, err)
	}
	s.countTransition(StatusCompleted)

	endTime := now
	if session.EndTime != nil {
		endTime = *session.EndTime
	}
	if _, err := s.activity.RecordSessionCompleted(ctx, activity.SessionFinished{
		SessionID: session.ID,
		UserID:    userID,
		Calories:  session.TotalCaloriesBurned,
		EndTime:   endTime,
		Timestamp: now,
	}); err != nil {
		log.Warnf("session %d completed, record activity: %s", session.ID, err)
	}

	return session, nil
}

// RunIdleSweep auto stops sessions without activity for longer than the idle timeout
// and returns them. Running it again right away finds nothing to do.
func (s *Service) RunIdleSweep(ctx context.Context) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.sweep")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := s.NowFunc()
	cutoff := now.Add(-s.idleTimeout)
	stopped, err := s.repo.AutoStopIdle(ctx, cutoff, s.idleTimeout)
	if err != nil {
		return nil, fmt.Errorf("auto stop idle sessions: %w", err)
	}

	var recordErr error
	for _, session := range stopped {
		s.countTransition(StatusAutoStopped)
		if session.EndTime == nil {
			continue
		}
		_, err := s.activity.RecordSessionAutoStopped(ctx, activity.SessionFinished{
			SessionID: session.ID,
			UserID:    session.UserID,
			EndTime:   *session.EndTime,
			Timestamp: now,
		})
		recordErr = multierr.Append(recordErr, err)
	}
	if recordErr != nil {
		log.Warnf("idle sweep, record activity: %s", recordErr)
	}
	if s.metricsManager != nil {
		s.metricsManager.CounterAutoStoppedSessions.Add(float64(len(stopped)))
	}

	return stopped, nil
}

func (s *Service) countTransition(status Status) {
	if s.metricsManager == nil {
		return
	}
	s.metricsManager.CounterSessionTransitions.WithLabelValues(status.String()).Inc()
}
