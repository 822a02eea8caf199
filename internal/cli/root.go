package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/streakguard/internal/backup"
	"github.com/julianstephens/streakguard/internal/config"
	"github.com/julianstephens/streakguard/internal/constants"
	"github.com/julianstephens/streakguard/internal/keyring"
	"github.com/julianstephens/streakguard/internal/ledger"
	"github.com/julianstephens/streakguard/internal/logger"
	"github.com/julianstephens/streakguard/internal/storage"
	"github.com/julianstephens/streakguard/internal/storage/postgres"
	"github.com/julianstephens/streakguard/internal/storage/sqlite"
	"github.com/julianstephens/streakguard/internal/tracker"
	"github.com/julianstephens/streakguard/internal/utils"
)

// KeyringStorage is the storage value that reads the PostgreSQL connection string
// from the OS keyring.
const KeyringStorage = "keyring"

type Context struct {
	Store     storage.Provider
	Tracker   *tracker.Tracker
	Backups   *backup.Manager
	Config    *config.Config
	ConfigDir string
}

// NewContext wires the ledger, tracker and backup manager around store.
func NewContext(store storage.Provider, cfg *config.Config, configDir string, clock utils.Clock) *Context {
	mgr := NewBackupManager(store, configDir)
	window := constants.DefaultCalendarWindowDays
	if cfg != nil {
		window = cfg.CalendarWindowDays
	}

	l := ledger.New(store, clock)
	return &Context{
		Store:     store,
		Tracker:   tracker.New(l, tracker.WithCalendarWindow(window), tracker.WithSafetyBackup(mgr)),
		Backups:   mgr,
		Config:    cfg,
		ConfigDir: configDir,
	}
}

// NewBackupManager keeps database copies next to a SQLite file. Other backends only get
// safety dumps, written under configDir.
func NewBackupManager(store storage.Provider, configDir string) *backup.Manager {
	if s, ok := store.(*sqlite.Store); ok {
		return backup.NewManager(s.GetConfigPath(), "")
	}
	return backup.NewManager("", filepath.Join(configDir, constants.BackupDirName))
}

// OpenProvider picks a backend for the configured storage value: a PostgreSQL URL or DSN,
// "keyring" for a connection string held in the OS keyring, or a SQLite file path.
func OpenProvider(storageValue string) (storage.Provider, error) {
	value := strings.TrimSpace(storageValue)

	if value == KeyringStorage {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, fmt.Errorf("no connection string in keyring, run 'streakguard keyring set' first")
			}
			return nil, err
		}
		// The keyring is encrypted, so a password inside the string is accepted here.
		if _, err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, err
		}
		logger.Debug("Using PostgreSQL connection string from keyring", "conn", keyring.MaskPassword(connStr))
		return postgres.New(connStr), nil
	}

	if utils.IsPostgresConnString(value) || strings.Contains(value, "host=") {
		if _, err := postgres.ValidateConnString(value); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL connection strings with embedded passwords are not allowed; store it with 'streakguard keyring set' or use .pgpass")
			}
			return nil, err
		}
		return postgres.New(value), nil
	}

	path, err := utils.ExpandPath(value)
	if err != nil {
		return nil, fmt.Errorf("failed to expand storage path: %w", err)
	}
	return sqlite.NewStore(path), nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	if _, err := c.Backups.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// RequireOnboarded fails with a hint when there is no profile yet.
func (c *Context) RequireOnboarded() error {
	if !c.Tracker.IsOnboarded() {
		return tracker.ErrNotOnboarded
	}
	return nil
}
