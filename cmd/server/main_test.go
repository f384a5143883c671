package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"expense-tracker/internal/handlers"
	"expense-tracker/internal/logging"
	"expense-tracker/internal/session"
	"expense-tracker/internal/storage"
	"expense-tracker/web"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRouter(t *testing.T) {
	// Setup dependencies
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err, "failed to create database")
	defer db.Close()

	h := handlers.NewHandlers(db, session.NewManager(db, time.Hour, false), web.TemplatesFS, logging.Discard())

	// Create router - this panics if two patterns conflict
	mux := setupRouter(h, logging.Discard(), web.StaticFS)

	tests := []struct {
		name         string
		method       string
		path         string
		wantStatus   int
		wantLocation string
	}{
		{
			name:         "Root redirects to login",
			method:       "GET",
			path:         "/",
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
		},
		{
			name:       "Static file access",
			method:     "GET",
			path:       "/static/style.css",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Login page is public",
			method:     "GET",
			path:       "/login",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Register page is public",
			method:     "GET",
			path:       "/register",
			wantStatus: http.StatusOK,
		},
		{
			name:         "Export requires auth",
			method:       "GET",
			path:         "/export.csv",
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
		},
		{
			name:         "Add requires auth",
			method:       "POST",
			path:         "/add",
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
		},
		{
			name:         "Delete by GET is gated",
			method:       "GET",
			path:         "/delete/1",
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
		},
		{
			name:         "Unknown path is gated",
			method:       "GET",
			path:         "/expenses",
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
		},
		{
			name:         "Root by POST is gated",
			method:       "POST",
			path:         "/",
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
		},
		{
			name:       "Unknown static file",
			method:     "GET",
			path:       "/static/missing.css",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code, "%s %s returned unexpected status", tt.method, tt.path)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
			}
			assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		})
	}
}

func TestBootstrapAdmin(t *testing.T) {
	ctx := context.Background()
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, bootstrapAdmin(ctx, db, "", "", logging.Discard()))
	count, err := db.UserCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "no account without credentials")

	require.NoError(t, bootstrapAdmin(ctx, db, "admin@example.com", "secret", logging.Discard()))
	user, err := db.GetUserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", user.PasswordHash)

	// A populated user table is left alone.
	require.NoError(t, bootstrapAdmin(ctx, db, "other@example.com", "secret", logging.Discard()))
	count, err = db.UserCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestScheduleSessionCleanup(t *testing.T) {
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	c, err := scheduleSessionCleanup(db, "@hourly", logging.Discard())
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)

	_, err = scheduleSessionCleanup(db, "whenever", logging.Discard())
	assert.Error(t, err)
}
