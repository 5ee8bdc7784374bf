package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/pkg"
)

// sqliteSessionRepo, SessionRepository interface'inin SQLite implementasyonu.
type sqliteSessionRepo struct {
	db *sql.DB
}

// NewSQLiteSessionRepo, constructor.
func NewSQLiteSessionRepo(db *sql.DB) SessionRepository {
	return &sqliteSessionRepo{db: db}
}

func (r *sqliteSessionRepo) Create(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, admin_id, refresh_token, expires_at)
		VALUES (?, ?, ?, ?)`,
		session.ID, session.AdminID, session.RefreshToken, session.ExpiresAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

func (r *sqliteSessionRepo) GetByRefreshToken(ctx context.Context, token string) (*models.Session, error) {
	query := `
		SELECT id, admin_id, refresh_token, expires_at, created_at
		FROM sessions WHERE refresh_token = ?`

	session := &models.Session{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&session.ID, &session.AdminID, &session.RefreshToken,
		&session.ExpiresAt, &session.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session by refresh token: %w", err)
	}

	return session, nil
}

func (r *sqliteSessionRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *sqliteSessionRepo) DeleteByAdminID(ctx context.Context, adminID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE admin_id = ?`, adminID)
	if err != nil {
		return fmt.Errorf("failed to delete admin sessions: %w", err)
	}
	return nil
}

// DeleteExpired, süresi dolmuş oturumları siler.
// expires_at Go tarafında time.Time olarak yazıldığı için karşılaştırma da parametreyle yapılır.
func (r *sqliteSessionRepo) DeleteExpired(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, timeNowUTC())
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}

var timeNowUTC = func() time.Time { return time.Now().UTC() }
