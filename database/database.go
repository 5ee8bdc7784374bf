// Package database, SQLite bağlantısını ve migration sistemini yönetir.
//
// SQLite driver (modernc.org/sqlite) import edildiğinde database/sql'e
// otomatik olarak kayıt olur — "blank import" bu yüzden kullanılır.
package database

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver — CGO gerekmez, her platformda çalışır

	"github.com/akinalp/sitekit/pkg/logger"
)

// dsnPragmas, her bağlantıda uygulanan pragma'lar.
//   - foreign_keys(1): FK constraint'leri aktif (SQLite'ta varsayılan kapalı!)
//   - journal_mode(WAL): eşzamanlı okuma/yazma
//   - busy_timeout(5000): write lock meşgulse hemen SQLITE_BUSY dönmek yerine 5sn bekle
const dsnPragmas = "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

// recoverableError, migration sırasında tolere edilebilen hata pattern'larıdır.
// Örneğin yarım kalan bir migration tekrar çalıştırıldığında "duplicate column name"
// hatası verir — bu güvenle atlanabilir çünkü kolon zaten eklenmiş demektir.
var recoverableErrors = []string{
	"duplicate column name", // ALTER TABLE ADD COLUMN tekrar çalıştırılmış
}

// DB, veritabanı bağlantısını saran struct.
// *sql.DB Go'nun built-in connection pool'udur — thread-safe'dir,
// birden fazla goroutine aynı anda güvenle kullanabilir.
type DB struct {
	Conn   *sql.DB
	Path   string
	logger *zap.Logger
}

// New, yeni bir SQLite bağlantısı oluşturur ve migration'ları çalıştırır.
//
// dbPath: SQLite dosya yolu (ör: "./data/sitekit.db")
// migrationsFS: Migration SQL dosyalarını içeren fs.FS (embed.FS veya os.DirFS olabilir)
func New(dbPath string, migrationsFS fs.FS, log *zap.Logger) (*DB, error) {
	// Veritabanı dosyasının bulunduğu dizini oluştur (yoksa)
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// modernc.org/sqlite driver adı "sqlite"
	conn, err := sql.Open("sqlite", dbPath+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Bağlantıyı test et
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{
		Conn:   conn,
		Path:   dbPath,
		logger: logger.OrNop(log).Named("database"),
	}

	// Migration'ları çalıştır
	if err := db.runMigrations(migrationsFS); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db.logger.Info("connected and migrations applied", zap.String("path", dbPath))
	return db, nil
}

// Close, veritabanı bağlantısını kapatır.
func (db *DB) Close() error {
	return db.Conn.Close()
}

// runMigrations, migrations/ dizinindeki SQL dosyalarını sırayla çalıştırır.
// Dosya isimleri sıralıdır: 001_init.sql, 002_seed_defaults.sql, ...
//
// Migration tracking: schema_migrations tablosu hangi migration'ların zaten
// uygulandığını takip eder. Bu sayede ALTER TABLE gibi idempotent olmayan
// komutlar içeren migration'lar tekrar çalıştırılmaz.
//
// İlk çalıştırmada schema_migrations tablosu oluşturulur ve mevcut tüm
// migration'lar çalıştırılıp kaydedilir. Sonraki başlatmalarda sadece
// henüz uygulanmamış yeni migration'lar çalışır.
func (db *DB) runMigrations(migrationsFS fs.FS) error {
	// schema_migrations tablosunu oluştur — hangi migration'ların çalıştığını takip eder.
	// Bu tablo ilk kez oluşturuluyorsa ve DB'de zaten tablolar varsa (mevcut kurulum),
	// tüm migration dosyaları "applied" olarak işaretlenir (bootstrap).
	if _, err := db.Conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	// Migration dosyalarını oku (bootstrap için önce dosyalara ihtiyacımız var)
	// fs.ReadDir: io/fs paketinden — hem embed.FS hem os.DirFS ile çalışır.
	entries, err := fs.ReadDir(migrationsFS, ".")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	// Sadece .sql dosyalarını al
	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}

	// Alfabetik sırala (001_, 002_, ...)
	sort.Strings(sqlFiles)

	// Halihazırda uygulanmış migration'ları oku
	applied := make(map[string]bool)
	rows, err := db.Conn.Query("SELECT filename FROM schema_migrations")
	if err != nil {
		return fmt.Errorf("failed to query schema_migrations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate migration rows: %w", err)
	}

	// Bootstrap: schema_migrations boşsa ama DB'de zaten tablolar varsa (mevcut kurulum),
	// tüm migration dosyalarını "applied" olarak kaydet. Bu sayede ALTER TABLE gibi
	// idempotent olmayan migration'lar tekrar çalıştırılmaz.
	if len(applied) == 0 {
		var tableCount int
		if err := db.Conn.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='services'",
		).Scan(&tableCount); err != nil {
			return fmt.Errorf("failed to check existing tables: %w", err)
		}

		if tableCount > 0 {
			// Mevcut kurulum — tüm migration'ları kaydedilmiş olarak işaretle
			for _, file := range sqlFiles {
				if _, err := db.Conn.Exec(
					"INSERT INTO schema_migrations (filename) VALUES (?)", file,
				); err != nil {
					return fmt.Errorf("failed to bootstrap migration %s: %w", file, err)
				}
				applied[file] = true
			}
			db.logger.Info("bootstrapped existing migrations", zap.Int("count", len(sqlFiles)))
			return nil
		}
	}

	for _, file := range sqlFiles {
		// Zaten uygulanmış migration'ı atla
		if applied[file] {
			continue
		}

		// fs.ReadFile: embed.FS'ten veya disk FS'ten okur — path separator gerekmez.
		content, err := fs.ReadFile(migrationsFS, file)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file, err)
		}

		// Migration'ı statement-by-statement çalıştır.
		// SQLite Exec() birden fazla statement'ı kabul eder ama her biri ayrı
		// autocommit'tir — yarım kalan migration'ı kurtarmak için her statement'ı
		// ayrı çalıştırıp recoverable hatalar (ör. "duplicate column name") atlanır.
		if err := db.execStatements(file, string(content)); err != nil {
			return err
		}

		// Migration'ı uygulanmış olarak kaydet
		if _, err := db.Conn.Exec(
			"INSERT INTO schema_migrations (filename) VALUES (?)", file,
		); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", file, err)
		}

		db.logger.Info("migration applied", zap.String("file", file))
	}

	return nil
}

// execStatements, bir migration dosyasındaki SQL'i statement-by-statement çalıştırır.
// Her statement noktalı virgül (;) ile ayrılır. Bazı hatalar tolere edilir:
// örneğin "duplicate column name" — yarım kalan migration tekrar çalıştırıldığında
// ALTER TABLE ADD COLUMN zaten eklenmiş kolonu tekrar eklemeye çalışır.
// Bu güvenle atlanır çünkü kolon zaten mevcut demektir.
func (db *DB) execStatements(filename, content string) error {
	// SQL'i statement'lara böl (noktalı virgül ile)
	statements := splitStatements(content)

	for i, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		if _, err := db.Conn.Exec(stmt); err != nil {
			// Hata recoverable mi kontrol et
			errMsg := err.Error()
			recoverable := false
			for _, pattern := range recoverableErrors {
				if strings.Contains(errMsg, pattern) {
					recoverable = true
					break
				}
			}

			if recoverable {
				db.logger.Warn("migration statement skipped",
					zap.String("file", filename),
					zap.Int("statement", i+1),
					zap.String("reason", errMsg),
				)
				continue
			}

			return fmt.Errorf("failed to execute migration %s (statement %d): %w", filename, i+1, err)
		}
	}

	return nil
}

// splitStatements, SQL metnini statement'lara böler.
// Noktalı virgül (;) ile ayırır ama string literal'lerin içindeki
// noktalı virgülleri (tek tırnak ile çevrili) yoksayar.
// "--" satır yorumları satır sonuna kadar atlanır; içlerindeki ; ve ' sayılmaz.
func splitStatements(sql string) []string {
	var statements []string
	var current strings.Builder
	inString := false

	for i := 0; i < len(sql); i++ {
		ch := sql[i]

		if !inString && ch == '-' && i+1 < len(sql) && sql[i+1] == '-' {
			for i < len(sql) && sql[i] != '\n' {
				i++
			}
			current.WriteByte('\n')
			continue
		}

		if ch == '\'' {
			// String literal toggle — '' (escape) handle et
			if inString && i+1 < len(sql) && sql[i+1] == '\'' {
				current.WriteByte(ch)
				current.WriteByte(sql[i+1])
				i++ // '' → iki tırnak yaz, skip
				continue
			}
			inString = !inString
		}

		if ch == ';' && !inString {
			s := strings.TrimSpace(current.String())
			if s != "" {
				statements = append(statements, s)
			}
			current.Reset()
			continue
		}

		current.WriteByte(ch)
	}

	// Son statement (noktalı virgülsüz bitmiş olabilir)
	s := strings.TrimSpace(current.String())
	if s != "" {
		statements = append(statements, s)
	}

	return statements
}
