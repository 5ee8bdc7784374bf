package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/pkg"
	"github.com/akinalp/sitekit/repository"
)

// backupStampLayout, yedek dosya adındaki UTC zaman damgasının formatı.
const backupStampLayout = "20060102-150405"

// MaxBackupUploadBytes, yüklenebilecek yedek dosyasının azami boyutu (100 MB).
const MaxBackupUploadBytes = 100 << 20

// sqliteHeader, her SQLite veritabanı dosyasının ilk 16 byte'ı.
var sqliteHeader = []byte("SQLite format 3\x00")

// DatabaseBackuper, veritabanının tutarlı bir kopyasını dosyaya yazabilen bileşen.
// *database.DB bu interface'i karşılar.
type DatabaseBackuper interface {
	BackupTo(ctx context.Context, dest string) error
}

// BackupService, BACKUP_DIR altındaki veritabanı yedeklerini yönetir.
type BackupService interface {
	Create(ctx context.Context) (*models.Backup, error)
	List(ctx context.Context) ([]models.Backup, error)
	Delete(ctx context.Context, name string) error

	// Open, yedeği indirmek için açar. Dosyayı kapatmak çağıranın sorumluluğundadır.
	Open(ctx context.Context, name string) (*os.File, *models.Backup, error)
	// Upload, dışarıdan gelen bir SQLite dosyasını yeni bir yedek adıyla kaydeder.
	Upload(ctx context.Context, src io.Reader) (*models.Backup, error)
	// Restore, önce güvenlik yedeği alır, sonra yedekteki site içeriğini geri yükler.
	Restore(ctx context.Context, name string) (*models.RestoreResult, error)
}

type backupService struct {
	db       DatabaseBackuper
	restorer repository.RestoreRepository
	guard    *CollectionGuard
	dir      string
	logger   *zap.Logger
	now      func() time.Time

	// mu, ad seçimi ile dosyanın oluşması arasını korur (aynı saniyede iki yedek)
	mu sync.Mutex
}

// NewBackupService, constructor.
func NewBackupService(db DatabaseBackuper, restorer repository.RestoreRepository, guard *CollectionGuard, dir string, logger *zap.Logger) BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &backupService{
		db:       db,
		restorer: restorer,
		guard:    guard,
		dir:      dir,
		logger:   logger.Named("backup"),
		now:      time.Now,
	}
}

// Create, yeni bir yedek alır. Aynı saniyede ikinci yedek "-1", "-2" ekiyle adlandırılır.
func (s *backupService) Create(ctx context.Context) (*models.Backup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, err := s.nextName()
	if err != nil {
		return nil, err
	}

	dest := filepath.Join(s.dir, name)
	if err := s.db.BackupTo(ctx, dest); err != nil {
		return nil, err
	}

	backup, err := statBackup(dest)
	if err != nil {
		return nil, err
	}

	s.logger.Info("backup created", zap.String("name", name), zap.Int64("size_bytes", backup.SizeBytes))
	return backup, nil
}

// nextName, dizinde henüz olmayan bir yedek adı seçer. mu tutulurken çağrılmalıdır.
func (s *backupService) nextName() (string, error) {
	base := "sitekit-" + s.now().UTC().Format(backupStampLayout)

	name := base + ".db"
	for i := 1; ; i++ {
		if _, err := os.Stat(filepath.Join(s.dir, name)); errors.Is(err, fs.ErrNotExist) {
			return name, nil
		}
		if i > 100 {
			return "", fmt.Errorf("%w: too many backups in the same second", pkg.ErrConflict)
		}
		name = fmt.Sprintf("%s-%d.db", base, i)
	}
}

func statBackup(path string) (*models.Backup, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat backup: %w", err)
	}
	return &models.Backup{Name: filepath.Base(path), SizeBytes: info.Size(), CreatedAt: info.ModTime().UTC()}, nil
}

// List, yedekleri yeniden eskiye sıralı döner (zaman damgası, sonra sıra eki). Dizin yoksa boş liste döner.
func (s *backupService) List(ctx context.Context) ([]models.Backup, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.Backup{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := make([]models.Backup, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || models.ValidateBackupName(entry.Name()) != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue // Okurken silinmiş olabilir
		}
		backups = append(backups, models.Backup{
			Name:      entry.Name(),
			SizeBytes: info.Size(),
			CreatedAt: info.ModTime().UTC(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		si, ni := backupSortKey(backups[i].Name)
		sj, nj := backupSortKey(backups[j].Name)
		if si != sj {
			return si > sj
		}
		return ni > nj
	})
	return backups, nil
}

// backupSortKey, yedek adını zaman damgası ve aynı saniyedeki sıra numarasına ayırır.
// "sitekit-20260314-092653.db" → ("20260314-092653", 0),
// "sitekit-20260314-092653-2.db" → ("20260314-092653", 2).
// Ad ValidateBackupName'den geçmiş olmalıdır.
func backupSortKey(name string) (string, int) {
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, "sitekit-"), ".db")
	if len(stamp) > len(backupStampLayout) {
		seq, _ := strconv.Atoi(stamp[len(backupStampLayout)+1:])
		return stamp[:len(backupStampLayout)], seq
	}
	return stamp, 0
}

func (s *backupService) Delete(ctx context.Context, name string) error {
	if err := models.ValidateBackupName(name); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: backup %s", pkg.ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to delete backup: %w", err)
	}

	s.logger.Info("backup deleted", zap.String("name", name))
	return nil
}

// path, doğrulanmış yedek adının tam yolunu döner; dosya yoksa ErrNotFound.
func (s *backupService) path(name string) (string, error) {
	if err := models.ValidateBackupName(name); err != nil {
		return "", fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	p := filepath.Join(s.dir, name)
	if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: backup %s", pkg.ErrNotFound, name)
	} else if err != nil {
		return "", fmt.Errorf("failed to stat backup: %w", err)
	}
	return p, nil
}

func (s *backupService) Open(ctx context.Context, name string) (*os.File, *models.Backup, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(p)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open backup: %w", err)
	}
	backup, err := statBackup(p)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return f, backup, nil
}

// Upload, src'yi BACKUP_DIR altına geçici bir dosyaya yazar, SQLite başlığını ve
// boyut sınırını kontrol eder, sonra yeni bir yedek adıyla yerine taşır.
// Yüklenen dosya ancak Restore ile canlı veritabanına etki eder.
func (s *backupService) Upload(ctx context.Context, src io.Reader) (*models.Backup, error) {
	header := make([]byte, len(sqliteHeader))
	if _, err := io.ReadFull(src, header); err != nil || !bytes.Equal(header, sqliteHeader) {
		return nil, fmt.Errorf("%w: file is not a SQLite database", pkg.ErrBadRequest)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}
	defer os.Remove(tmp.Name()) // Başarıda rename sonrası zaten yok

	written, err := tmp.Write(header)
	if err == nil {
		var n int64
		n, err = io.Copy(tmp, io.LimitReader(src, MaxBackupUploadBytes-int64(written)+1))
		written += int(n)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}
	if written > MaxBackupUploadBytes {
		return nil, fmt.Errorf("%w: backup must be at most %d bytes", pkg.ErrBadRequest, MaxBackupUploadBytes)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name, err := s.nextName()
	if err != nil {
		return nil, err
	}
	dest := filepath.Join(s.dir, name)
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	backup, err := statBackup(dest)
	if err != nil {
		return nil, err
	}

	s.logger.Info("backup uploaded", zap.String("name", name), zap.Int64("size_bytes", backup.SizeBytes))
	return backup, nil
}

// Restore, yedekteki site içeriğini (hizmetler, SSS, blog, duyuru) geri yükler.
//
// Akış:
//  1. Ad doğrulanır, dosya yoksa ErrNotFound
//  2. Mevcut durumun güvenlik yedeği alınır
//  3. Tüm koleksiyon kilitleri altında tablolar tek transaction'da kopyalanır
//  4. Revizyonlar artar, cache temizlenir, her koleksiyon için reset event'i yayınlanır
//
// Admin hesapları ve oturumlar geri yüklenmez.
func (s *backupService) Restore(ctx context.Context, name string) (*models.RestoreResult, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}

	safety, err := s.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create safety backup: %w", err)
	}

	var result *models.RestoreResult
	_, err = s.guard.MutateAll(ctx, func(ctx context.Context) (map[models.CollectionKind]int64, error) {
		res, err := s.restorer.RestoreFrom(ctx, p)
		if err != nil {
			return nil, err
		}
		result = res
		return res.Revisions, nil
	})
	if err != nil {
		s.logger.Warn("restore failed", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	result.Backup = name
	result.SafetyBackup = safety.Name

	s.logger.Info("backup restored",
		zap.String("name", name),
		zap.String("safety_backup", safety.Name),
		zap.Strings("tables", result.Tables),
	)
	return result, nil
}
