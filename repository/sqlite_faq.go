package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/akinalp/sitekit/database"
	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/pkg"
)

// sqliteFAQRepo, FAQRepository interface'inin SQLite implementasyonu.
type sqliteFAQRepo struct {
	db *sql.DB
}

// NewSQLiteFAQRepo, constructor — interface döner.
func NewSQLiteFAQRepo(db *sql.DB) FAQRepository {
	return &sqliteFAQRepo{db: db}
}

const faqColumns = `id, question, answer, display_order, created_at, updated_at`

func scanFAQ(row interface{ Scan(...any) error }) (*models.FAQ, error) {
	f := &models.FAQ{}
	err := row.Scan(&f.ID, &f.Question, &f.Answer, &f.DisplayOrder, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

// escapeLike, LIKE pattern'indeki özel karakterleri escape eder (ESCAPE '\').
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (r *sqliteFAQRepo) List(ctx context.Context, q models.FAQQuery) (*models.CollectionView[models.FAQ], error) {
	query := `SELECT ` + faqColumns + ` FROM faqs WHERE is_active = 1`
	var args []any

	if s := strings.TrimSpace(q.Search); s != "" {
		pattern := "%" + escapeLike(strings.ToLower(s)) + "%"
		query += ` AND (lower(question) LIKE ? ESCAPE '\' OR lower(answer) LIKE ? ESCAPE '\')`
		args = append(args, pattern, pattern)
	}

	query += ` ORDER BY display_order, created_at`

	// SQLite'ta OFFSET, LIMIT olmadan kullanılamaz; LIMIT -1 sınırsız demektir.
	if q.Limit > 0 || q.Offset > 0 {
		limit := q.Limit
		if limit <= 0 {
			limit = -1
		}
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, max(q.Offset, 0))
	}

	view := &models.CollectionView[models.FAQ]{
		Collection: models.CollectionFAQs,
		Items:      []models.FAQ{},
	}

	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		rev, err := currentRevision(ctx, tx, models.CollectionFAQs)
		if err != nil {
			return err
		}
		view.Revision = rev

		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to list faqs: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			f, err := scanFAQ(rows)
			if err != nil {
				return fmt.Errorf("failed to scan faq row: %w", err)
			}
			view.Items = append(view.Items, *f)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

func (r *sqliteFAQRepo) GetByID(ctx context.Context, id string) (*models.FAQ, error) {
	f, err := scanFAQ(r.db.QueryRowContext(ctx,
		`SELECT `+faqColumns+` FROM faqs WHERE id = ? AND is_active = 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: faq %s", pkg.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get faq by id: %w", err)
	}
	return f, nil
}

func (r *sqliteFAQRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM faqs WHERE is_active = 1`,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count faqs: %w", err)
	}
	return n, nil
}

func (r *sqliteFAQRepo) Create(ctx context.Context, faq *models.FAQ) (int64, error) {
	var revision int64
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		rev, err := bumpRevision(ctx, tx, models.CollectionFAQs, nil)
		if err != nil {
			return err
		}

		pos, err := reservePosition(ctx, tx, "faqs", faq.DisplayOrder)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO faqs (id, question, answer, display_order) VALUES (?, ?, ?, ?)`,
			faq.ID, faq.Question, faq.Answer, pos,
		); err != nil {
			return fmt.Errorf("failed to create faq: %w", err)
		}

		created, err := scanFAQ(tx.QueryRowContext(ctx,
			`SELECT `+faqColumns+` FROM faqs WHERE id = ?`, faq.ID))
		if err != nil {
			return fmt.Errorf("failed to read created faq: %w", err)
		}
		*faq = *created

		revision = rev
		return nil
	})
	if err != nil {
		return 0, err
	}
	return revision, nil
}

func (r *sqliteFAQRepo) Update(ctx context.Context, faq *models.FAQ) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE faqs SET question = ?, answer = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND is_active = 1`,
		faq.Question, faq.Answer, faq.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update faq: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: faq %s", pkg.ErrNotFound, faq.ID)
	}

	updated, err := r.GetByID(ctx, faq.ID)
	if err != nil {
		return err
	}
	*faq = *updated
	return nil
}

func (r *sqliteFAQRepo) Delete(ctx context.Context, id string) (int64, error) {
	var revision int64
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		rev, err := bumpRevision(ctx, tx, models.CollectionFAQs, nil)
		if err != nil {
			return err
		}
		if err := softDelete(ctx, tx, "faqs", id); err != nil {
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
