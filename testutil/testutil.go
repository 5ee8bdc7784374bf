// Package testutil, testlerde paylaşılan yardımcıları içerir: geçici bir
// SQLite veritabanını gömülü migration'larla kurar ve koleksiyonlara ham SQL ile
// satır ekler (repository paketine bağımlı olmadan, import cycle olmaması için).
package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/akinalp/sitekit/database"
)

// TestJWTSecret, testlerde kullanılan imzalama anahtarı.
const TestJWTSecret = "test-jwt-secret-for-sitekit"

// SetupTestDB, t.TempDir() altında migration'ları uygulanmış yeni bir veritabanı açar.
// Dosya tabanlıdır (":memory:" değil): connection pool'daki her bağlantı aynı veriyi görür.
func SetupTestDB(t *testing.T) *database.DB {
	t.Helper()

	migrations, err := database.Migrations()
	if err != nil {
		t.Fatalf("failed to load migrations: %v", err)
	}

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrations, nil)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// InsertService, services tablosuna verilen pozisyonda aktif bir satır ekler ve ID'sini döner.
// Revizyona dokunmaz.
func InsertService(t *testing.T, db *database.DB, title string, position int) string {
	t.Helper()

	id := uuid.New().String()
	_, err := db.Conn.Exec(
		`INSERT INTO services (id, title, description, icon, display_order) VALUES (?, ?, '', 'fas fa-wrench', ?)`,
		id, title, position,
	)
	if err != nil {
		t.Fatalf("failed to insert service %q: %v", title, err)
	}
	return id
}

// InsertFAQ, faqs tablosuna verilen pozisyonda aktif bir satır ekler ve ID'sini döner.
func InsertFAQ(t *testing.T, db *database.DB, question, answer string, position int) string {
	t.Helper()

	id := uuid.New().String()
	_, err := db.Conn.Exec(
		`INSERT INTO faqs (id, question, answer, display_order) VALUES (?, ?, ?, ?)`,
		id, question, answer, position,
	)
	if err != nil {
		t.Fatalf("failed to insert faq %q: %v", question, err)
	}
	return id
}

// SeedServices, n adet hizmeti 1..n sırasıyla ekler ve ID'leri sırayla döner.
func SeedServices(t *testing.T, db *database.DB, n int) []string {
	t.Helper()

	ids := make([]string, n)
	for i := range n {
		ids[i] = InsertService(t, db, fmt.Sprintf("Service %d", i+1), i+1)
	}
	return ids
}

// SeedFAQs, n adet FAQ'ı 1..n sırasıyla ekler ve ID'leri sırayla döner.
func SeedFAQs(t *testing.T, db *database.DB, n int) []string {
	t.Helper()

	ids := make([]string, n)
	for i := range n {
		ids[i] = InsertFAQ(t, db, fmt.Sprintf("Question %d?", i+1), fmt.Sprintf("Answer %d.", i+1), i+1)
	}
	return ids
}

// OrderOf, tablodaki aktif satırların ID'lerini display_order sırasıyla döner.
func OrderOf(t *testing.T, db *database.DB, table string) []string {
	t.Helper()

	rows, err := db.Conn.Query(`SELECT id FROM ` + table + ` WHERE is_active = 1 ORDER BY display_order`)
	if err != nil {
		t.Fatalf("failed to read %s order: %v", table, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			t.Fatalf("failed to scan %s id: %v", table, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("failed to iterate %s rows: %v", table, err)
	}
	return ids
}

// PositionsOf, aktif satırların display_order değerlerini sıralı döner.
func PositionsOf(t *testing.T, db *database.DB, table string) []int {
	t.Helper()

	rows, err := db.Conn.Query(`SELECT display_order FROM ` + table + ` WHERE is_active = 1 ORDER BY display_order`)
	if err != nil {
		t.Fatalf("failed to read %s positions: %v", table, err)
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var p int
		if err := rows.Scan(&p); err != nil {
			t.Fatalf("failed to scan %s position: %v", table, err)
		}
		out = append(out, p)
	}
	return out
}
