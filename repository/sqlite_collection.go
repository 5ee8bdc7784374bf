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

// collectionTables, koleksiyon türünden tablo adına whitelist.
// Tablo adı SQL'e parametre olarak verilemez; sorgulara sadece bu map'ten gelen değer girer.
var collectionTables = map[models.CollectionKind]string{
	models.CollectionServices: "services",
	models.CollectionFAQs:     "faqs",
}

func tableFor(kind models.CollectionKind) (string, error) {
	table, ok := collectionTables[kind]
	if !ok {
		return "", fmt.Errorf("%w: collection %q", pkg.ErrNotFound, kind)
	}
	return table, nil
}

// sqliteCollectionRepo, CollectionRepository interface'inin SQLite implementasyonu.
type sqliteCollectionRepo struct {
	db *sql.DB
}

// NewSQLiteCollectionRepo, constructor — interface döner.
func NewSQLiteCollectionRepo(db *sql.DB) CollectionRepository {
	return &sqliteCollectionRepo{db: db}
}

func (r *sqliteCollectionRepo) Revision(ctx context.Context, kind models.CollectionKind) (int64, error) {
	if _, err := tableFor(kind); err != nil {
		return 0, err
	}
	return currentRevision(ctx, r.db, kind)
}

func (r *sqliteCollectionRepo) ListOrder(ctx context.Context, kind models.CollectionKind) (*models.CollectionOrder, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	view := &models.CollectionOrder{Collection: kind, Items: []models.OrderUpdate{}}

	// Revizyon ve sıra aynı snapshot'tan okunur
	err = database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		rev, err := currentRevision(ctx, tx, kind)
		if err != nil {
			return err
		}
		view.Revision = rev

		rows, err := tx.QueryContext(ctx,
			`SELECT id, display_order FROM `+table+` WHERE is_active = 1 ORDER BY display_order, created_at`)
		if err != nil {
			return fmt.Errorf("failed to list %s order: %w", table, err)
		}
		defer rows.Close()

		for rows.Next() {
			var u models.OrderUpdate
			if err := rows.Scan(&u.ID, &u.DisplayOrder); err != nil {
				return fmt.Errorf("failed to scan %s order row: %w", table, err)
			}
			view.Items = append(view.Items, u)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

// Reorder, sıralamayı atomik olarak uygular.
//
// Transaction içindeki ilk yazma revizyon compare-and-set'idir: SQLite write lock'u
// bu noktada alınır, sonraki okumalar (aktif ID listesi) kilit altında yapılır.
// Doğrulama başarısız olursa fn error döner ve revizyon artışı dahil her şey geri alınır.
func (r *sqliteCollectionRepo) Reorder(ctx context.Context, kind models.CollectionKind, baseRevision *int64, items []models.OrderUpdate) (int64, error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, err
	}

	var revision int64
	err = database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		rev, err := bumpRevision(ctx, tx, kind, baseRevision)
		if err != nil {
			return err
		}

		active, err := activeIDs(ctx, tx, table)
		if err != nil {
			return err
		}
		if err := validateFullOrder(active, items); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx,
			`UPDATE `+table+` SET display_order = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND is_active = 1`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, item := range items {
			if _, err := stmt.ExecContext(ctx, item.DisplayOrder, item.ID); err != nil {
				return fmt.Errorf("failed to update display_order for %s %s: %w", table, item.ID, err)
			}
		}

		revision = rev
		return nil
	})
	if err != nil {
		return 0, err
	}

	return revision, nil
}

// validateFullOrder, payload'ın aktif item kümesini tam olarak bir kez adlandırdığını
// ve pozisyonların 1..N yoğun permütasyon oluşturduğunu kontrol eder.
func validateFullOrder(active map[string]bool, items []models.OrderUpdate) error {
	if len(items) != len(active) {
		return fmt.Errorf("%w: expected %d items, got %d", pkg.ErrBadRequest, len(active), len(items))
	}

	n := len(items)
	seenIDs := make(map[string]bool, n)
	seenPos := make([]bool, n+1)
	for _, item := range items {
		if !active[item.ID] {
			return fmt.Errorf("%w: item %s is not part of the collection", pkg.ErrBadRequest, item.ID)
		}
		if seenIDs[item.ID] {
			return fmt.Errorf("%w: duplicate item id %s", pkg.ErrBadRequest, item.ID)
		}
		seenIDs[item.ID] = true

		if item.DisplayOrder < 1 || item.DisplayOrder > n || seenPos[item.DisplayOrder] {
			return fmt.Errorf("%w: display_order values must form a permutation of 1..%d", pkg.ErrBadRequest, n)
		}
		seenPos[item.DisplayOrder] = true
	}
	return nil
}

// currentRevision, collection_revisions'tan okur.
func currentRevision(ctx context.Context, q database.TxQuerier, kind models.CollectionKind) (int64, error) {
	var rev int64
	err := q.QueryRowContext(ctx,
		`SELECT revision FROM collection_revisions WHERE kind = ?`, string(kind),
	).Scan(&rev)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: collection %q has no revision row", pkg.ErrNotFound, kind)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get collection revision: %w", err)
	}
	return rev, nil
}

// bumpRevision, revizyonu bir artırır ve yeni değeri döner.
// expected nil değilse artış sadece güncel revizyon expected'a eşitse yapılır;
// aksi halde pkg.ErrConflict döner. Koleksiyonu değiştiren her transaction'ın
// ilk yazması olmalıdır.
func bumpRevision(ctx context.Context, q database.TxQuerier, kind models.CollectionKind, expected *int64) (int64, error) {
	var (
		rev int64
		err error
	)

	if expected == nil {
		err = q.QueryRowContext(ctx,
			`UPDATE collection_revisions SET revision = revision + 1 WHERE kind = ? RETURNING revision`,
			string(kind),
		).Scan(&rev)
	} else {
		err = q.QueryRowContext(ctx,
			`UPDATE collection_revisions SET revision = revision + 1 WHERE kind = ? AND revision = ? RETURNING revision`,
			string(kind), *expected,
		).Scan(&rev)
	}

	if errors.Is(err, sql.ErrNoRows) {
		if expected == nil {
			return 0, fmt.Errorf("%w: collection %q has no revision row", pkg.ErrNotFound, kind)
		}
		current, curErr := currentRevision(ctx, q, kind)
		if curErr != nil {
			return 0, curErr
		}
		return 0, fmt.Errorf("%w: collection %s is at revision %d, request was based on %d",
			pkg.ErrConflict, kind, current, *expected)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to bump collection revision: %w", err)
	}
	return rev, nil
}

// activeIDs, tablodaki aktif item ID'lerini set olarak döner.
func activeIDs(ctx context.Context, q database.TxQuerier, table string) (map[string]bool, error) {
	rows, err := q.QueryContext(ctx, `SELECT id FROM `+table+` WHERE is_active = 1`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active %s: %w", table, err)
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan %s id: %w", table, err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// reservePosition, yeni item için display_order belirler.
// requested 0 veya aralık dışıysa item sona eklenir; aksi halde requested ve
// sonrasındaki aktif item'lar bir kaydırılır.
func reservePosition(ctx context.Context, q database.TxQuerier, table string, requested int) (int, error) {
	var count int
	if err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+table+` WHERE is_active = 1`,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}

	if requested < 1 || requested > count {
		return count + 1, nil
	}

	if _, err := q.ExecContext(ctx,
		`UPDATE `+table+` SET display_order = display_order + 1 WHERE is_active = 1 AND display_order >= ?`,
		requested,
	); err != nil {
		return 0, fmt.Errorf("failed to shift %s positions: %w", table, err)
	}
	return requested, nil
}

// softDelete, item'ı pasif yapar ve arkasındaki boşluğu kapatır.
func softDelete(ctx context.Context, q database.TxQuerier, table, id string) error {
	var position int
	err := q.QueryRowContext(ctx,
		`UPDATE `+table+` SET is_active = 0, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND is_active = 1 RETURNING display_order`, id,
	).Scan(&position)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s %s", pkg.ErrNotFound, table, id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", table, id, err)
	}

	if _, err := q.ExecContext(ctx,
		`UPDATE `+table+` SET display_order = display_order - 1 WHERE is_active = 1 AND display_order > ?`,
		position,
	); err != nil {
		return fmt.Errorf("failed to close %s position gap: %w", table, err)
	}
	return nil
}
