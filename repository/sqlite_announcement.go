package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/sitekit/models"
)

// sqliteAnnouncementRepo, AnnouncementRepository interface'inin SQLite implementasyonu.
// Satır migration'da oluşturulur; eksikse (boş tablolu bir yedekten geri yükleme) Save onu yeniden ekler.
type sqliteAnnouncementRepo struct {
	db *sql.DB
}

// NewSQLiteAnnouncementRepo, constructor, interface döner.
func NewSQLiteAnnouncementRepo(db *sql.DB) AnnouncementRepository {
	return &sqliteAnnouncementRepo{db: db}
}

func (r *sqliteAnnouncementRepo) Get(ctx context.Context) (*models.Announcement, error) {
	a := &models.Announcement{}
	err := r.db.QueryRowContext(ctx,
		`SELECT text, type, active, updated_at FROM announcement WHERE id = 1`,
	).Scan(&a.Text, &a.Type, &a.Active, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Satır yoksa duyuru yok demektir
		return &models.Announcement{Type: models.AnnouncementInfo}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get announcement: %w", err)
	}
	return a, nil
}

func (r *sqliteAnnouncementRepo) Save(ctx context.Context, a *models.Announcement) error {
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO announcement (id, text, type, active, updated_at)
		VALUES (1, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text, type = excluded.type, active = excluded.active,
			updated_at = CURRENT_TIMESTAMP`,
		a.Text, a.Type, a.Active,
	); err != nil {
		return fmt.Errorf("failed to save announcement: %w", err)
	}

	saved, err := r.Get(ctx)
	if err != nil {
		return err
	}
	*a = *saved
	return nil
}
