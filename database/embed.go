// Package database embed dosyası — migration SQL dosyalarını binary'ye gömer.
//
// Deploy edilen binary yanında migration dosyalarına ihtiyaç duymaz;
// testler de aynı gömülü dosyalarla geçici bir veritabanı kurar.
package database

import (
	"embed"
	"io/fs"
)

// EmbeddedMigrations, migrations/ dizinindeki SQL dosyalarını içerir.
//
//go:embed migrations/*.sql
var EmbeddedMigrations embed.FS

// Migrations, migrations/ alt dizinini kök olarak döner (New'e verilecek fs.FS).
func Migrations() (fs.FS, error) {
	return fs.Sub(EmbeddedMigrations, "migrations")
}
