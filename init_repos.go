// Package main — Repository katmanı başlatma.
//
// initRepositories, tüm repository implementasyonlarını oluşturur.
// Her repository bir SQL.DB bağlantısı alır ve interface döner.
package main

import (
	"database/sql"

	"github.com/akinalp/sitekit/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
type Repositories struct {
	Admin        repository.AdminRepository
	Session      repository.SessionRepository
	Collection   repository.CollectionRepository
	Service      repository.ServiceRepository
	FAQ          repository.FAQRepository
	Blog         repository.BlogRepository
	Announcement repository.AnnouncementRepository
	Restore      repository.RestoreRepository
}

// initRepositories, veritabanı bağlantısından tüm repository'leri oluşturur.
//
// Her NewSQLite* fonksiyonu aynı *sql.DB'yi alır — Go'nun sql.DB'si
// thread-safe connection pool'dur, paylaşılması güvenlidir.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		Admin:        repository.NewSQLiteAdminRepo(conn),
		Session:      repository.NewSQLiteSessionRepo(conn),
		Collection:   repository.NewSQLiteCollectionRepo(conn),
		Service:      repository.NewSQLiteServiceRepo(conn),
		FAQ:          repository.NewSQLiteFAQRepo(conn),
		Blog:         repository.NewSQLiteBlogRepo(conn),
		Announcement: repository.NewSQLiteAnnouncementRepo(conn),
		Restore:      repository.NewSQLiteRestoreRepo(conn),
	}
}
