// Package backup keeps rotated copies of the SQLite store and JSON safety dumps of the
// key space taken before destructive actions.
package backup

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/streakguard/internal/constants"
	"github.com/julianstephens/streakguard/internal/logger"
)

// ErrNoDatabase is returned when there is no SQLite file to copy.
var ErrNoDatabase = errors.New("database does not exist")

var stampLayouts = []string{"20060102-1504", "20060102-150405"}

// Info describes one file in the backup directory.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager handles backup operations.
type Manager struct {
	dbPath    string
	backupDir string
	now       func() time.Time
}

// NewManager returns a manager for the database at dbPath. An empty backupDir means
// a "backups" directory next to the database.
func NewManager(dbPath, backupDir string) *Manager {
	if backupDir == "" {
		backupDir = filepath.Join(filepath.Dir(dbPath), constants.BackupDirName)
	}
	return &Manager{dbPath: dbPath, backupDir: backupDir, now: time.Now}
}

func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup copies the database into the backup directory and rotates old copies.
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// skipRotation keeps the pre-restore copy from evicting the file being restored.
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", ErrNoDatabase, m.dbPath)
	}

	backupPath, err := m.uniquePath(constants.BackupFilePrefix, constants.BackupFileSuffix)
	if err != nil {
		return "", err
	}

	if err := m.backupDatabase(backupPath); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}
	logger.Info("Database backup created", "path", backupPath)

	if !skipRotation {
		if err := m.rotate(constants.BackupFilePrefix, constants.BackupFileSuffix); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return backupPath, nil
}

// SaveSnapshot writes the raw key space as indented JSON. Used before a full reset so
// the data can be recovered by hand.
func (m *Manager) SaveSnapshot(data map[string]json.RawMessage) (string, error) {
	path, err := m.uniquePath(constants.SnapshotFilePrefix, constants.SnapshotFileSuffix)
	if err != nil {
		return "", err
	}

	body, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, body, 0600); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	logger.Info("Safety snapshot written", "path", path, "keys", len(data))

	if err := m.rotate(constants.SnapshotFilePrefix, constants.SnapshotFileSuffix); err != nil {
		logger.Warn("Failed to rotate old snapshots", "error", err)
	}
	return path, nil
}

// uniquePath picks a timestamped file name, adding seconds and then a counter on collision.
func (m *Manager) uniquePath(prefix, suffix string) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	now := m.now()
	for _, layout := range stampLayouts {
		p := filepath.Join(m.backupDir, prefix+now.Format(layout)+suffix)
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return p, nil
		}
	}

	stamp := now.Format(stampLayouts[len(stampLayouts)-1])
	for counter := 1; counter <= 100; counter++ {
		p := filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", prefix, stamp, counter, suffix))
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return p, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique backup filename")
}

func (m *Manager) backupDatabase(destPath string) error {
	srcDB, err := sql.Open("sqlite", m.dbPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer srcDB.Close()

	var count int
	if err := srcDB.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := srcDB.Exec("VACUUM INTO ?", destPath); err != nil {
		logger.Debug("VACUUM INTO failed, copying file", "error", err)
		srcDB.Close()
		return copyFile(m.dbPath, destPath)
	}
	return nil
}

// ListBackups returns database backups, newest first.
func (m *Manager) ListBackups() ([]Info, error) {
	return m.list(constants.BackupFilePrefix, constants.BackupFileSuffix)
}

// ListSnapshots returns safety snapshots, newest first.
func (m *Manager) ListSnapshots() ([]Info, error) {
	return m.list(constants.SnapshotFilePrefix, constants.SnapshotFileSuffix)
}

func (m *Manager) list(prefix, suffix string) ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	out := []Info{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, suffix) {
			continue
		}

		ts, ok := parseStamp(strings.TrimSuffix(strings.TrimPrefix(name, prefix), suffix))
		if !ok {
			continue
		}

		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		out = append(out, Info{Path: path, Timestamp: ts, Size: info.Size()})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

// parseStamp reads YYYYMMDD-HHMM or YYYYMMDD-HHMMSS with an optional -N counter.
func parseStamp(s string) (time.Time, bool) {
	parts := strings.Split(s, "-")
	if len(parts) == 3 {
		if _, err := strconv.Atoi(parts[2]); err != nil {
			return time.Time{}, false
		}
		s = parts[0] + "-" + parts[1]
	}
	for _, layout := range stampLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func (m *Manager) rotate(prefix, suffix string) error {
	files, err := m.list(prefix, suffix)
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(files); i++ {
		if err := os.Remove(files[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", files[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the database with backupPath. The current database is copied
// first; its backup path is returned (empty when there was nothing to copy).
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := verifyDatabase(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var previous string
	if _, err := os.Stat(m.dbPath); err == nil {
		previous, err = m.createBackup(true)
		if err != nil {
			return "", fmt.Errorf("failed to backup current database before restore: %w", err)
		}
	}

	tempPath := m.dbPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return previous, fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.dbPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tempPath, "error", removeErr)
		}
		return previous, fmt.Errorf("failed to restore database: %w", err)
	}

	logger.Info("Database restored", "from", backupPath)
	return previous, nil
}

// ResolvePath finds name as given, then inside the backup directory.
func (m *Manager) ResolvePath(name string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("backup file not found: %s", name)
		}
		return name, nil
	}
	if _, err := os.Stat(name); err == nil {
		return filepath.Abs(name)
	}
	candidate := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: %s", name)
}

func verifyDatabase(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
