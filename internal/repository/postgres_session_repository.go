package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sebastianmoiras/movie-FE/internal/navigator"
)

// PostgresSessionRepository stores sessions in the web_sessions table.
type PostgresSessionRepository struct {
	db *sql.DB
}

// NewPostgresSessionRepository creates a repository. The schema is created by
// database.NewPostgres.
func NewPostgresSessionRepository(db *sql.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

func (r *PostgresSessionRepository) Get(ctx context.Context, id string) (navigator.Session, bool, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT data FROM web_sessions
		WHERE id = $1 AND expires_at > NOW()
	`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return navigator.Session{}, false, nil
	}
	if err != nil {
		return navigator.Session{}, false, fmt.Errorf("postgres: failed to get session: %w", err)
	}

	var s navigator.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return navigator.Session{}, false, fmt.Errorf("postgres: failed to decode session: %w", err)
	}
	return s, true, nil
}

func (r *PostgresSessionRepository) Save(ctx context.Context, id string, s navigator.Session, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("postgres: failed to encode session: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO web_sessions (id, data, expires_at, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE SET
			data = EXCLUDED.data,
			expires_at = EXCLUDED.expires_at,
			updated_at = EXCLUDED.updated_at
	`, id, string(data), time.Now().Add(ttl))
	if err != nil {
		return fmt.Errorf("postgres: failed to save session: %w", err)
	}
	return nil
}

func (r *PostgresSessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM web_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("postgres: failed to delete session: %w", err)
	}
	return nil
}

// PurgeExpired removes expired rows and returns how many were deleted.
func (r *PostgresSessionRepository) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM web_sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to purge sessions: %w", err)
	}
	return res.RowsAffected()
}
