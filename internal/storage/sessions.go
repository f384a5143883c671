package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"expense-tracker/internal/models"
)

// SaveSession inserts or replaces a session row.
func (db *DB) SaveSession(ctx context.Context, s models.Session) error {
	var userID sql.NullInt64
	if s.UserID != 0 {
		userID = sql.NullInt64{Int64: s.UserID, Valid: true}
	}
	lastActivity := s.LastActivity
	if lastActivity.IsZero() {
		lastActivity = time.Now()
	}
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO sessions (token, user_id, data, expires_at, last_activity)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (token) DO UPDATE SET
			user_id = excluded.user_id,
			data = excluded.data,
			expires_at = excluded.expires_at,
			last_activity = excluded.last_activity
	`, s.Token, userID, s.Data, s.ExpiresAt.Unix(), lastActivity.Unix())
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// GetSession returns an unexpired session by token, or ErrNotFound.
func (db *DB) GetSession(ctx context.Context, token string) (*models.Session, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT token, user_id, data, expires_at, last_activity
		FROM sessions
		WHERE token = ? AND expires_at > ?
	`, token, time.Now().Unix())

	var s models.Session
	var userID sql.NullInt64
	var expiresAt, lastActivity int64
	err := row.Scan(&s.Token, &userID, &s.Data, &expiresAt, &lastActivity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	s.UserID = userID.Int64
	s.ExpiresAt = time.Unix(expiresAt, 0)
	s.LastActivity = time.Unix(lastActivity, 0)
	return &s, nil
}

// DeleteSession removes a session by token.
func (db *DB) DeleteSession(ctx context.Context, token string) error {
	_, err := db.conn.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// CleanExpiredSessions removes all expired sessions and reports how many
// were deleted.
func (db *DB) CleanExpiredSessions(ctx context.Context) (int64, error) {
	result, err := db.conn.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at <= ?", time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("clean expired sessions: %w", err)
	}
	return result.RowsAffected()
}
