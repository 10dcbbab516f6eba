package summary

import (
	"context"
	"fmt"

	"github.com/2beens/fittrack/internal/meals"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/internal/users"
	"github.com/2beens/fittrack/pkg"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=summary_test

type profileReader interface {
	GetProfile(ctx context.Context, userID int) (*users.User, error)
}

type mealTotals interface {
	TotalCaloriesByDate(ctx context.Context, userID int, date string) (int, error)
	MacrosByDate(ctx context.Context, userID int, date string) (meals.Macros, error)
}

type caloriesBurnedReader interface {
	TotalCaloriesByDate(ctx context.Context, userID int, date string) (int, error)
}

type Service struct {
	profiles profileReader
	meals    mealTotals
	workouts caloriesBurnedReader
	sessions caloriesBurnedReader
}

func NewService(
	profiles profileReader,
	meals mealTotals,
	workouts caloriesBurnedReader,
	sessions caloriesBurnedReader,
) *Service {
	return &Service{
		profiles: profiles,
		meals:    meals,
		workouts: workouts,
		sessions: sessions,
	}
}

// GetDailySummary combines meals, simple workouts and finished sessions of the date
// into the net calorie balance of the user.
func (s *Service) GetDailySummary(ctx context.Context, userID int, date string) (_ *Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.summary.daily")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.String("date", date))

	if _, err := pkg.ParseDate(date); err != nil {
		return nil, err
	}

	var (
		profile *users.User
		totals  dayTotals
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if profile, err = s.profiles.GetProfile(gCtx, userID); err != nil {
			return fmt.Errorf("get profile: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if totals.eaten, err = s.meals.TotalCaloriesByDate(gCtx, userID, date); err != nil {
			return fmt.Errorf("calories eaten: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if totals.macros, err = s.meals.MacrosByDate(gCtx, userID, date); err != nil {
			return fmt.Errorf("macros: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if totals.workouts, err = s.workouts.TotalCaloriesByDate(gCtx, userID, date); err != nil {
			return fmt.Errorf("workout calories: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if totals.sessions, err = s.sessions.TotalCaloriesByDate(gCtx, userID, date); err != nil {
			return fmt.Errorf("session calories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buildSummary(date, profile, totals), nil
}

// GetWeeklySummary returns the daily summaries of the seven days ending with endDate, oldest first.
func (s *Service) GetWeeklySummary(ctx context.Context, userID int, endDate string) (_ []Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.summary.weekly")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	end, err := pkg.ParseDate(endDate)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, WeekDays)
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(2)
	for i := 0; i < WeekDays; i++ {
		date := end.AddDate(0, 0, i-(WeekDays-1)).Format(pkg.DateLayout)
		g.Go(func() error {
			daily, err := s.GetDailySummary(gCtx, userID, date)
			if err != nil {
				return fmt.Errorf("summary for %s: %w", date, err)
			}
			summaries[i] = *daily
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return summaries, nil
}
