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

// sqliteBlogRepo, BlogRepository interface'inin SQLite implementasyonu.
type sqliteBlogRepo struct {
	db *sql.DB
}

// NewSQLiteBlogRepo, constructor, interface döner.
func NewSQLiteBlogRepo(db *sql.DB) BlogRepository {
	return &sqliteBlogRepo{db: db}
}

const blogColumns = `id, title, author, content, image, image_size, published, created_at, updated_at`

func scanBlogPost(row interface{ Scan(...any) error }) (*models.BlogPost, error) {
	p := &models.BlogPost{}
	err := row.Scan(&p.ID, &p.Title, &p.Author, &p.Content, &p.Image, &p.ImageSize,
		&p.Published, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *sqliteBlogRepo) List(ctx context.Context, q models.BlogQuery) (*models.BlogPage, error) {
	where := ` WHERE published = 1`
	if q.IncludeDrafts {
		where = ``
	}

	query := `SELECT ` + blogColumns + ` FROM blog_posts` + where +
		` ORDER BY created_at DESC, rowid DESC`
	var args []any
	if q.Limit > 0 || q.Offset > 0 {
		limit := q.Limit
		if limit <= 0 {
			limit = -1
		}
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, max(q.Offset, 0))
	}

	page := &models.BlogPage{Posts: []models.BlogPost{}}

	// Toplam ve sayfa aynı snapshot'tan okunur
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM blog_posts`+where).Scan(&page.Total); err != nil {
			return fmt.Errorf("failed to count blog posts: %w", err)
		}

		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to list blog posts: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			p, err := scanBlogPost(rows)
			if err != nil {
				return fmt.Errorf("failed to scan blog post row: %w", err)
			}
			page.Posts = append(page.Posts, *p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (r *sqliteBlogRepo) GetByID(ctx context.Context, id string, includeDrafts bool) (*models.BlogPost, error) {
	query := `SELECT ` + blogColumns + ` FROM blog_posts WHERE id = ?`
	if !includeDrafts {
		query += ` AND published = 1`
	}

	p, err := scanBlogPost(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: blog post %s", pkg.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blog post by id: %w", err)
	}
	return p, nil
}

func (r *sqliteBlogRepo) Create(ctx context.Context, post *models.BlogPost) error {
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO blog_posts (id, title, author, content, image, image_size, published)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		post.ID, post.Title, post.Author, post.Content, post.Image, post.ImageSize, post.Published,
	); err != nil {
		return fmt.Errorf("failed to create blog post: %w", err)
	}

	created, err := r.GetByID(ctx, post.ID, true)
	if err != nil {
		return err
	}
	*post = *created
	return nil
}

func (r *sqliteBlogRepo) Update(ctx context.Context, post *models.BlogPost) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE blog_posts
		SET title = ?, author = ?, content = ?, image = ?, image_size = ?, published = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		post.Title, post.Author, post.Content, post.Image, post.ImageSize, post.Published, post.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update blog post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: blog post %s", pkg.ErrNotFound, post.ID)
	}

	updated, err := r.GetByID(ctx, post.ID, true)
	if err != nil {
		return err
	}
	*post = *updated
	return nil
}

func (r *sqliteBlogRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blog post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: blog post %s", pkg.ErrNotFound, id)
	}
	return nil
}
