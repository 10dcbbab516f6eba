//go:build integration_test || all_tests

package test

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/fittrack/internal/meals"
	"github.com/2beens/fittrack/internal/summary"
	"github.com/2beens/fittrack/internal/users"
	"github.com/2beens/fittrack/internal/workouts"
	"github.com/2beens/fittrack/pkg"
)

func (s *IntegrationTestSuite) TestDailySummary() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := s.registerUser(ctx)
	today := pkg.Today(time.Now(), time.UTC)

	bmr := 2000
	currentWeight, goalWeight := 180.0, 170.0
	status := s.doJSON(ctx, http.MethodPut, "/api/user/settings", user.Token, users.Settings{
		BMR:           &bmr,
		CurrentWeight: &currentWeight,
		GoalWeight:    &goalWeight,
	}, nil)
	require.Equal(t, http.StatusOK, status)

	protein, carbs := 30.25, 12.0
	for _, meal := range []meals.Meal{
		{Name: "Oats", Calories: 400, Protein: &protein, Carbs: &carbs, Servings: 1, Date: today},
		{Name: "Chicken", Calories: 600, Protein: &protein, Servings: 2, Date: today},
	} {
		status = s.doJSON(ctx, http.MethodPost, "/api/meals", user.Token, meal, nil)
		require.Equal(t, http.StatusCreated, status)
	}

	var workout workouts.Workout
	status = s.doJSON(ctx, http.MethodPost, "/api/workouts", user.Token, workouts.Workout{
		Name:           "Running",
		CaloriesBurned: 300,
		Date:           today,
	}, &workout)
	require.Equal(t, http.StatusCreated, status)

	session := s.startSession(ctx, user.Token, today)
	require.Equal(t, http.StatusCreated, s.logSet(ctx, user.Token, session.ID, 1, 20))
	require.Equal(t, http.StatusOK, s.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/sessions/%d/stop", session.ID), user.Token, nil, nil))

	var daily summary.Summary
	status = s.doJSON(ctx, http.MethodGet, "/api/user/summary?date="+today, user.Token, nil, &daily)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, today, daily.Date)
	assert.Equal(t, 1000, daily.CaloriesEaten)
	assert.Equal(t, 300, daily.WorkoutCalories)
	// 6 kcal/min, 20 reps * 3s = 1 min
	assert.Equal(t, 6, daily.SessionCalories)
	assert.Equal(t, 306, daily.CaloriesBurned)
	assert.Equal(t, 2000, daily.BMR)
	assert.Equal(t, 1000-306-2000, daily.NetCalories)
	assert.Equal(t, 60.5, daily.Macros.Protein)
	assert.Equal(t, 12.0, daily.Macros.Carbs)
	assert.Equal(t, 0.0, daily.Macros.Fat)
	require.NotNil(t, daily.CaloriesToGoal)
	assert.Equal(t, 35000, *daily.CaloriesToGoal)

	var week []summary.Summary
	status = s.doJSON(ctx, http.MethodGet, "/api/user/summary/week?date="+today, user.Token, nil, &week)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, week, summary.WeekDays)
	assert.Equal(t, today, week[len(week)-1].Date)
	assert.Equal(t, 1000, week[len(week)-1].CaloriesEaten)
	assert.Equal(t, 0, week[0].CaloriesEaten)

	status = s.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/workouts/%d", workout.ID), user.Token, nil, nil)
	require.Equal(t, http.StatusOK, status)

	status = s.doJSON(ctx, http.MethodGet, "/api/user/summary?date="+today, user.Token, nil, &daily)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, daily.WorkoutCalories)

	status = s.doJSON(ctx, http.MethodGet, "/api/user/summary?date=03-01-2025", user.Token, nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}
