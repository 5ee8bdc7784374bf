package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// BackupTo, veritabanının tutarlı bir kopyasını dest dosyasına yazar.
//
// VACUUM INTO canlı veritabanından okuyarak yeni bir dosya oluşturur; WAL modunda
// yazarları bloklamaz ve yarım yazılmış sayfa içermez. dest zaten varsa SQLite hata döner.
func (db *DB) BackupTo(ctx context.Context, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	if _, err := db.Conn.ExecContext(ctx, `VACUUM INTO ?`, dest); err != nil {
		return fmt.Errorf("failed to write backup %s: %w", filepath.Base(dest), err)
	}
	return nil
}
