//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/fittrack/internal/activity"
	"github.com/2beens/fittrack/internal/catalog"
	"github.com/2beens/fittrack/internal/sessions"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/pkg"
)

type startRequest struct {
	Date string `json:"date"`
}

func (s *IntegrationTestSuite) startSession(ctx context.Context, token, date string) sessions.Session {
	var session sessions.Session
	status := s.doJSON(ctx, http.MethodPost, "/api/sessions/start", token, startRequest{Date: date}, &session)
	require.Equal(s.T(), http.StatusCreated, status)
	return session
}

func (s *IntegrationTestSuite) logSet(ctx context.Context, token string, sessionID, setNumber, reps int) int {
	weight := 60.0
	return s.doJSON(ctx, http.MethodPost, "/api/sessions/log", token, sessions.LogSetParams{
		SessionID:  sessionID,
		ExerciseID: s.exerciseID,
		SetNumber:  setNumber,
		Reps:       reps,
		Weight:     &weight,
	}, nil)
}

func (s *IntegrationTestSuite) TestSessionLifecycle() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := s.registerUser(ctx)
	today := pkg.Today(time.Now(), time.UTC)

	var active *sessions.Session
	require.Equal(t, http.StatusOK, s.doJSON(ctx, http.MethodGet, "/api/sessions/active", user.Token, nil, &active))
	assert.Nil(t, active)

	session := s.startSession(ctx, user.Token, today)
	assert.Equal(t, sessions.StatusActive, session.Status)
	assert.Equal(t, today, session.Date)
	assert.Nil(t, session.TotalCaloriesBurned)

	// one active session per user
	status := s.doJSON(ctx, http.MethodPost, "/api/sessions/start", user.Token, startRequest{Date: today}, nil)
	assert.Equal(t, http.StatusConflict, status)

	require.Equal(t, http.StatusCreated, s.logSet(ctx, user.Token, session.ID, 1, 10))
	require.Equal(t, http.StatusCreated, s.logSet(ctx, user.Token, session.ID, 2, 10))

	var logs []sessions.ExerciseLog
	status = s.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/sessions/%d/logs", session.ID), user.Token, nil, &logs)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, logs, 2)
	assert.Equal(t, "Bench Press", logs[0].ExerciseName)

	// another user cannot see nor stop it
	other := s.registerUser(ctx)
	status = s.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/sessions/%d/logs", session.ID), other.Token, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status = s.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/sessions/%d/stop", session.ID), other.Token, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	var stopped sessions.Session
	status = s.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/sessions/%d/stop", session.ID), user.Token, nil, &stopped)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, sessions.StatusCompleted, stopped.Status)
	require.NotNil(t, stopped.EndTime)
	require.NotNil(t, stopped.TotalCaloriesBurned)
	// 6 kcal/min, 10 reps * 3s = 30s => 3 kcal per set
	assert.Equal(t, 6, *stopped.TotalCaloriesBurned)

	status = s.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/sessions/%d/stop", session.ID), user.Token, nil, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	// logging into a stopped session
	assert.Equal(t, http.StatusUnprocessableEntity, s.logSet(ctx, user.Token, session.ID, 3, 10))

	// another user cannot delete a log
	status = s.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/sessions/log/%d", logs[0].ID), other.Token, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// deleting a log of a stopped session keeps its total
	status = s.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/sessions/log/%d", logs[0].ID), user.Token, nil, nil)
	require.Equal(t, http.StatusOK, status)
	status = s.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/sessions/log/%d", logs[0].ID), user.Token, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status = s.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/sessions/%d/logs", session.ID), user.Token, nil, &logs)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, logs, 1)

	var byDate []sessions.Session
	status = s.doJSON(ctx, http.MethodGet, "/api/sessions?date="+today, user.Token, nil, &byDate)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, byDate, 1)
	assert.Equal(t, session.ID, byDate[0].ID)
	require.NotNil(t, byDate[0].TotalCaloriesBurned)
	assert.Equal(t, 6, *byDate[0].TotalCaloriesBurned)

	// a new session can start once the previous one is closed
	next := s.startSession(ctx, user.Token, today)
	assert.NotEqual(t, session.ID, next.ID)
}

func (s *IntegrationTestSuite) TestStartSession_Concurrent() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := s.registerUser(ctx)
	today := pkg.Today(time.Now(), time.UTC)
	body, err := json.Marshal(startRequest{Date: today})
	require.NoError(t, err)

	const attempts = 10
	statuses := make([]int, attempts)
	errs := make([]error, attempts)

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start

			req, err := http.NewRequestWithContext(ctx, http.MethodPost, serverEndpoint+"/api/sessions/start", bytes.NewReader(body))
			if err != nil {
				errs[i] = err
				return
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+user.Token)

			resp, err := s.httpClient.Do(req)
			if err != nil {
				errs[i] = err
				return
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			statuses[i] = resp.StatusCode
		}(i)
	}
	close(start)
	wg.Wait()

	created, conflicts := 0, 0
	for i := 0; i < attempts; i++ {
		require.NoError(t, errs[i])
		switch statuses[i] {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		default:
			t.Errorf("attempt %d: unexpected status %d", i, statuses[i])
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, conflicts)

	var activeCount int
	require.NoError(t, s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM workout_sessions WHERE user_id = $1 AND status = 'active'`,
		user.UserID,
	).Scan(&activeCount))
	assert.Equal(t, 1, activeCount)
}

func (s *IntegrationTestSuite) TestIdleSweep() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := s.registerUser(ctx)
	today := pkg.Today(time.Now(), time.UTC)

	session := s.startSession(ctx, user.Token, today)
	require.Equal(t, http.StatusCreated, s.logSet(ctx, user.Token, session.ID, 1, 12))

	_, err := s.DB.ExecContext(ctx,
		`UPDATE workout_sessions SET last_activity = $1 WHERE id = $2`,
		time.Now().Add(-3*time.Hour), session.ID,
	)
	require.NoError(t, err)

	service := sessions.NewService(
		sessions.NewRepo(s.dbPool),
		catalog.NewService(catalog.NewRepo(s.dbPool), time.Minute),
		activity.NewService(activity.NewRepo(s.dbPool)),
		metrics.NewTestManager(),
		2*time.Hour,
	)

	swept, err := service.RunIdleSweep(ctx)
	require.NoError(t, err)

	var sweptSession *sessions.Session
	for i := range swept {
		if swept[i].ID == session.ID {
			sweptSession = &swept[i]
		}
	}
	require.NotNil(t, sweptSession)
	assert.Equal(t, sessions.StatusAutoStopped, sweptSession.Status)
	require.NotNil(t, sweptSession.EndTime)
	// end time is last activity + idle timeout
	assert.WithinDuration(t, sweptSession.LastActivity.Add(2*time.Hour), *sweptSession.EndTime, time.Second)
	assert.Nil(t, sweptSession.TotalCaloriesBurned)

	// nothing left to sweep for this session
	swept, err = service.RunIdleSweep(ctx)
	require.NoError(t, err)
	for _, ss := range swept {
		assert.NotEqual(t, session.ID, ss.ID)
	}

	var active *sessions.Session
	require.Equal(t, http.StatusOK, s.doJSON(ctx, http.MethodGet, "/api/sessions/active", user.Token, nil, &active))
	assert.Nil(t, active)

	status := s.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/sessions/%d/stop", session.ID), user.Token, nil, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	// auto stopped sessions count as 0 kcal in the day
	var summary struct {
		SessionCalories int `json:"session_calories"`
	}
	status = s.doJSON(ctx, http.MethodGet, "/api/user/summary?date="+today, user.Token, nil, &summary)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, summary.SessionCalories)
}
