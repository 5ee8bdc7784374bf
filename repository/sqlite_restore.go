package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/akinalp/sitekit/database"
	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/pkg"
)

// RestoreRepository, bir yedek dosyasındaki site içeriğini canlı veritabanına geri yükler.
type RestoreRepository interface {
	// RestoreFrom, path'teki SQLite yedeğinin içerik tablolarını tek transaction içinde
	// canlı tablolara kopyalar ve her koleksiyonun revizyonunu artırır.
	// Yedek okunamıyorsa veya çekirdek tablolar eksikse pkg.ErrBadRequest döner.
	RestoreFrom(ctx context.Context, path string) (*models.RestoreResult, error)
}

// restoreTables, geri yüklenen tablolar, sırasıyla. admins ve sessions bilerek
// listede yok: geri yükleme mevcut giriş bilgilerini değiştirmez.
// collection_revisions kopyalanmaz, artırılır; revizyon asla geriye gitmez.
var restoreTables = []string{"services", "faqs", "blog_posts", "announcement"}

// requiredRestoreTables, yedekte mutlaka bulunması gereken tablolar.
// Diğerleri eski bir şemadan gelen yedekte yoksa mevcut içerik korunur.
var requiredRestoreTables = map[string]bool{"services": true, "faqs": true}

type sqliteRestoreRepo struct {
	db *sql.DB
}

// NewSQLiteRestoreRepo, constructor, interface döner.
func NewSQLiteRestoreRepo(db *sql.DB) RestoreRepository {
	return &sqliteRestoreRepo{db: db}
}

func (r *sqliteRestoreRepo) RestoreFrom(ctx context.Context, path string) (*models.RestoreResult, error) {
	// ATTACH bağlantıya özeldir; pool'dan tek bir bağlantı ayrılır
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `ATTACH DATABASE ? AS backup`, path); err != nil {
		return nil, fmt.Errorf("%w: cannot open backup: %v", pkg.ErrBadRequest, err)
	}
	defer func() {
		_, _ = conn.ExecContext(context.WithoutCancel(ctx), `DETACH DATABASE backup`)
	}()

	result := &models.RestoreResult{
		Tables:    []string{},
		Revisions: make(map[models.CollectionKind]int64, len(models.CollectionKinds)),
	}

	err = database.WithTx(ctx, conn, func(tx *sql.Tx) error {
		for _, table := range restoreTables {
			cols, err := restorableColumns(ctx, tx, table)
			if err != nil {
				return err
			}
			if len(cols) == 0 {
				if requiredRestoreTables[table] {
					return fmt.Errorf("%w: backup has no %s table", pkg.ErrBadRequest, table)
				}
				continue
			}

			list := strings.Join(cols, ", ")
			if _, err := tx.ExecContext(ctx, `DELETE FROM main.`+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO main.`+table+` (`+list+`) SELECT `+list+` FROM backup.`+table,
			); err != nil {
				return fmt.Errorf("%w: failed to copy %s from backup: %v", pkg.ErrBadRequest, table, err)
			}
			result.Tables = append(result.Tables, table)
		}

		for _, kind := range models.CollectionKinds {
			rev, err := bumpRevision(ctx, tx, kind, nil)
			if err != nil {
				return err
			}
			result.Revisions[kind] = rev
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// restorableColumns, tablonun hem canlı şemada hem yedekte bulunan kolonlarını
// canlı şemadaki sırayla döner. Yedekte tablo yoksa boş döner.
func restorableColumns(ctx context.Context, tx *sql.Tx, table string) ([]string, error) {
	live, err := tableColumns(ctx, tx, "main", table)
	if err != nil {
		return nil, err
	}
	inBackup, err := tableColumns(ctx, tx, "backup", table)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read backup schema: %v", pkg.ErrBadRequest, err)
	}

	have := make(map[string]bool, len(inBackup))
	for _, c := range inBackup {
		have[c] = true
	}

	var cols []string
	for _, c := range live {
		if have[c] {
			cols = append(cols, `"`+c+`"`)
		}
	}
	return cols, nil
}

func tableColumns(ctx context.Context, tx *sql.Tx, schema, table string) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `SELECT name FROM pragma_table_info(?, ?)`, table, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s.%s columns: %w", schema, table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column name: %w", err)
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}
