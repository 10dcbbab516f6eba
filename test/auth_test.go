//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/catalog"
	"github.com/2beens/fittrack/internal/users"
)

// registerUser creates a fresh user and returns its session.
func (s *IntegrationTestSuite) registerUser(ctx context.Context) auth.SessionResponse {
	var session auth.SessionResponse
	status := s.doJSON(ctx, http.MethodPost, "/api/auth/register", "", auth.Credentials{
		Username: gofakeit.Username() + gofakeit.DigitN(6),
		Password: testPassword,
	}, &session)
	require.Equal(s.T(), http.StatusCreated, status)
	require.NotEmpty(s.T(), session.Token)
	return session
}

func (s *IntegrationTestSuite) TestRegisterLoginLogout() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registered := s.registerUser(ctx)

	// same username again
	status := s.doJSON(ctx, http.MethodPost, "/api/auth/register", "", auth.Credentials{
		Username: registered.Username,
		Password: testPassword,
	}, nil)
	assert.Equal(t, http.StatusConflict, status)

	// register assigns every equipment type
	var equipment []catalog.EquipmentType
	status = s.doJSON(ctx, http.MethodGet, "/api/exercises/my-equipment", registered.Token, nil, &equipment)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, equipment)

	status = s.doJSON(ctx, http.MethodPost, "/api/auth/login", "", auth.Credentials{
		Username: registered.Username,
		Password: "bad-password",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	var loggedIn auth.SessionResponse
	status = s.doJSON(ctx, http.MethodPost, "/api/auth/login", "", auth.Credentials{
		Username: registered.Username,
		Password: testPassword,
	}, &loggedIn)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, registered.UserID, loggedIn.UserID)

	var profile users.User
	status = s.doJSON(ctx, http.MethodGet, "/api/user/profile", loggedIn.Token, nil, &profile)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, registered.Username, profile.Username)

	status = s.doJSON(ctx, http.MethodPost, "/api/auth/logout", loggedIn.Token, nil, nil)
	assert.Equal(t, http.StatusOK, status)

	status = s.doJSON(ctx, http.MethodGet, "/api/user/profile", loggedIn.Token, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
