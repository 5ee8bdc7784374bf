package models

import (
	"fmt"
	"path/filepath"
	"regexp"
	"time"
)

// Backup, BACKUP_DIR altındaki tek bir veritabanı yedeği.
type Backup struct {
	Name      string    `json:"name"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// backupNamePattern, sunucunun ürettiği yedek dosya adları: sitekit-20060102-150405.db
var backupNamePattern = regexp.MustCompile(`^sitekit-\d{8}-\d{6}(-\d+)?\.db$`)

// ValidateBackupName, URL'den gelen yedek adını doğrular.
// Path traversal'a (../) karşı sadece sunucunun ürettiği formata izin verilir.
func ValidateBackupName(name string) error {
	if name != filepath.Base(name) || !backupNamePattern.MatchString(name) {
		return fmt.Errorf("invalid backup name %q", name)
	}
	return nil
}

// RestoreResult, bir yedeğin geri yüklenmesinin özeti.
// SafetyBackup, geri yüklemeden hemen önce alınan yedeğin adıdır.
// Revisions, geri yüklemeyle artırılan koleksiyon revizyonlarıdır.
type RestoreResult struct {
	Backup       string                   `json:"backup"`
	SafetyBackup string                   `json:"safety_backup"`
	Tables       []string                 `json:"tables"`
	Revisions    map[CollectionKind]int64 `json:"revisions"`
}
