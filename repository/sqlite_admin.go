package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/pkg"
)

// sqliteAdminRepo, AdminRepository interface'inin SQLite implementasyonu.
type sqliteAdminRepo struct {
	db *sql.DB
}

// NewSQLiteAdminRepo, constructor — interface döner.
func NewSQLiteAdminRepo(db *sql.DB) AdminRepository {
	return &sqliteAdminRepo{db: db}
}

func (r *sqliteAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO admins (id, username, password_hash) VALUES (?, ?, ?)`,
		admin.ID, admin.Username, admin.PasswordHash,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: admin %s", pkg.ErrAlreadyExists, admin.Username)
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	created, err := r.GetByID(ctx, admin.ID)
	if err != nil {
		return err
	}
	admin.CreatedAt = created.CreatedAt
	return nil
}

func (r *sqliteAdminRepo) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	return r.getOne(ctx, `WHERE id = ?`, id)
}

func (r *sqliteAdminRepo) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	return r.getOne(ctx, `WHERE username = ? COLLATE NOCASE`, username)
}

func (r *sqliteAdminRepo) getOne(ctx context.Context, where string, arg any) (*models.Admin, error) {
	a := &models.Admin{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM admins `+where, arg,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return a, nil
}

func (r *sqliteAdminRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE admins SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update admin password: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}
