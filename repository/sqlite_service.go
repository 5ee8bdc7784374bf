package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/sitekit/database"
	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/pkg"
)

// sqliteServiceRepo, ServiceRepository interface'inin SQLite implementasyonu.
type sqliteServiceRepo struct {
	db *sql.DB
}

// NewSQLiteServiceRepo, constructor — interface döner.
func NewSQLiteServiceRepo(db *sql.DB) ServiceRepository {
	return &sqliteServiceRepo{db: db}
}

const serviceColumns = `id, title, description, icon, display_order, created_at, updated_at`

func scanService(row interface{ Scan(...any) error }) (*models.Service, error) {
	s := &models.Service{}
	err := row.Scan(&s.ID, &s.Title, &s.Description, &s.Icon, &s.DisplayOrder, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *sqliteServiceRepo) ListActive(ctx context.Context) (*models.CollectionView[models.Service], error) {
	view := &models.CollectionView[models.Service]{
		Collection: models.CollectionServices,
		Items:      []models.Service{},
	}

	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		rev, err := currentRevision(ctx, tx, models.CollectionServices)
		if err != nil {
			return err
		}
		view.Revision = rev

		rows, err := tx.QueryContext(ctx,
			`SELECT `+serviceColumns+` FROM services WHERE is_active = 1 ORDER BY display_order, created_at`)
		if err != nil {
			return fmt.Errorf("failed to list services: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			s, err := scanService(rows)
			if err != nil {
				return fmt.Errorf("failed to scan service row: %w", err)
			}
			view.Items = append(view.Items, *s)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

func (r *sqliteServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	s, err := scanService(r.db.QueryRowContext(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE id = ? AND is_active = 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: service %s", pkg.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service by id: %w", err)
	}
	return s, nil
}

func (r *sqliteServiceRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM services WHERE is_active = 1`,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count services: %w", err)
	}
	return n, nil
}

// Create, hizmeti ekler. service.DisplayOrder istenen pozisyondur (0 → sona ekle);
// dönüşte atanan pozisyon ve zaman damgaları service'e yazılır.
func (r *sqliteServiceRepo) Create(ctx context.Context, service *models.Service) (int64, error) {
	var revision int64
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		rev, err := bumpRevision(ctx, tx, models.CollectionServices, nil)
		if err != nil {
			return err
		}

		pos, err := reservePosition(ctx, tx, "services", service.DisplayOrder)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO services (id, title, description, icon, display_order) VALUES (?, ?, ?, ?, ?)`,
			service.ID, service.Title, service.Description, service.Icon, pos,
		); err != nil {
			return fmt.Errorf("failed to create service: %w", err)
		}

		created, err := scanService(tx.QueryRowContext(ctx,
			`SELECT `+serviceColumns+` FROM services WHERE id = ?`, service.ID))
		if err != nil {
			return fmt.Errorf("failed to read created service: %w", err)
		}
		*service = *created

		revision = rev
		return nil
	})
	if err != nil {
		return 0, err
	}
	return revision, nil
}

// Update, içerik alanlarını günceller. display_order'a dokunmaz.
func (r *sqliteServiceRepo) Update(ctx context.Context, service *models.Service) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE services SET title = ?, description = ?, icon = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND is_active = 1`,
		service.Title, service.Description, service.Icon, service.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: service %s", pkg.ErrNotFound, service.ID)
	}

	updated, err := r.GetByID(ctx, service.ID)
	if err != nil {
		return err
	}
	*service = *updated
	return nil
}

func (r *sqliteServiceRepo) Delete(ctx context.Context, id string) (int64, error) {
	var revision int64
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		rev, err := bumpRevision(ctx, tx, models.CollectionServices, nil)
		if err != nil {
			return err
		}
		if err := softDelete(ctx, tx, "services", id); err != nil {
			return err
		}
		revision = rev
		return nil
	})
	if err != nil {
		return 0, err
	}
	return revision, nil
}
