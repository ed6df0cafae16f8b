package services

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/isdelr/quizmaster-be/internal/models"
	"github.com/isdelr/quizmaster-be/internal/store"
	"github.com/rs/zerolog/log"
)

const (
	backupPrefix     = "quizdata_"
	backupTimeLayout = "20060102T150405.000000000"
)

// BackupServiceProvider defines the interface for backup services.
type BackupServiceProvider interface {
	CreateBackup(ctx context.Context) (models.Backup, error)
	ListBackups() ([]models.Backup, error)
}

// BackupService archives store snapshots as zip files.
type BackupService struct {
	store      store.Store
	backupPath string
	retention  int
	now        func() time.Time
}

// NewBackupService creates a new BackupService. Only the newest retention
// archives are kept; retention <= 0 keeps all of them.
func NewBackupService(s store.Store, backupPath string, retention int) *BackupService {
	return &BackupService{store: s, backupPath: backupPath, retention: retention, now: time.Now}
}

// CreateBackup writes users.json and quiz_history.json into a new archive,
// then prunes old archives.
func (s *BackupService) CreateBackup(ctx context.Context) (models.Backup, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return models.Backup{}, fmt.Errorf("could not snapshot store: %w", err)
	}
	users, history, err := snap.Documents()
	if err != nil {
		return models.Backup{}, err
	}

	if err := os.MkdirAll(s.backupPath, 0o755); err != nil {
		return models.Backup{}, fmt.Errorf("could not create backup directory: %w", err)
	}

	created := s.now().UTC()
	backup := models.Backup{
		Name:      backupPrefix + created.Format(backupTimeLayout) + ".zip",
		CreatedAt: created,
	}
	backup.Path = filepath.Join(s.backupPath, backup.Name)

	if err := writeArchive(backup.Path, map[string][]byte{
		"users.json":        users,
		"quiz_history.json": history,
	}); err != nil {
		os.Remove(backup.Path) // Clean up partial file
		return models.Backup{}, err
	}

	fi, err := os.Stat(backup.Path)
	if err != nil {
		return models.Backup{}, fmt.Errorf("could not get backup file info: %w", err)
	}
	backup.Size = fi.Size()

	log.Info().Str("backup", backup.Name).Int64("size", backup.Size).Msg("Backup created")

	if err := s.prune(); err != nil {
		log.Warn().Err(err).Msg("Failed to prune old backups")
	}
	return backup, nil
}

// ListBackups returns the archives in the backup directory, newest first.
func (s *BackupService) ListBackups() ([]models.Backup, error) {
	entries, err := os.ReadDir(s.backupPath)
	if os.IsNotExist(err) {
		return []models.Backup{}, nil
	}
	if err != nil {
		return nil, err
	}

	backups := []models.Backup{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, ".zip") {
			continue
		}
		created, err := time.Parse(backupTimeLayout, strings.TrimSuffix(strings.TrimPrefix(name, backupPrefix), ".zip"))
		if err != nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, err
		}
		backups = append(backups, models.Backup{
			Name:      name,
			Path:      filepath.Join(s.backupPath, name),
			Size:      info.Size(),
			CreatedAt: created,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

func (s *BackupService) prune() error {
	if s.retention <= 0 {
		return nil
	}
	backups, err := s.ListBackups()
	if err != nil {
		return err
	}
	for _, b := range backups[min(s.retention, len(backups)):] {
		if err := os.Remove(b.Path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("could not delete backup file %s: %w", b.Path, err)
		}
		log.Debug().Str("backup", b.Name).Msg("Old backup deleted")
	}
	return nil
}

func writeArchive(path string, files map[string][]byte) error {
	backupFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create backup file: %w", err)
	}
	defer backupFile.Close()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	zipWriter := zip.NewWriter(backupFile)
	for _, name := range names {
		w, err := zipWriter.Create(name)
		if err != nil {
			return fmt.Errorf("failed to add %s to archive: %w", name, err)
		}
		if _, err := w.Write(files[name]); err != nil {
			return fmt.Errorf("failed to add %s to archive: %w", name, err)
		}
	}
	if err := zipWriter.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return backupFile.Close()
}
