package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/fittrack-api/internal/auth"
	"github.com/gdg-garage/fittrack-api/internal/config"
	"github.com/gdg-garage/fittrack-api/internal/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db   *gorm.DB
	cfg  *config.Config
	auth *auth.AuthHandler
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err, "failed to connect database")
	cfg := &config.Config{JWTSecret: "test-secret", FrontendURL: "http://localhost:5173"}
	return &testEnv{db: db, cfg: cfg, auth: auth.NewAuthHandler(cfg, db)}
}

// signup registers a user and returns its id and an Authorization header.
func (e *testEnv) signup(t *testing.T, email string) (string, string) {
	t.Helper()
	req := &auth.RegisterRequest{}
	req.Body.Email = email
	req.Body.Password = "secret123"
	req.Body.Age = 30
	req.Body.Weight = 70
	req.Body.Height = 175
	req.Body.Gender = "female"
	req.Body.Activity = "light"
	req.Body.Goal = "maintain"

	resp, err := e.auth.HandleRegister(context.Background(), req)
	require.NoError(t, err)
	return resp.Body.User.ID, "Bearer " + resp.Body.AccessToken
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.True(t, errors.As(err, &se), "expected huma status error, got %v", err)
	return se.GetStatus()
}
