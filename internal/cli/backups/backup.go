package backups

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/streakguard/internal/backup"
	"github.com/julianstephens/streakguard/internal/cli"
	"github.com/julianstephens/streakguard/internal/constants"
	"github.com/julianstephens/streakguard/internal/storage/sqlite"
)

var errNotSQLite = errors.New("database backups are only supported for SQLite storage")

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return errNotSQLite
	}

	backupPath, err := ctx.Backups.CreateBackup()
	if errors.Is(err, backup.ErrNoDatabase) {
		return fmt.Errorf("nothing to back up, run 'streakguard init' first: %w", err)
	}
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct {
	Snapshots bool `help:"List the safety dumps written before full resets instead."`
}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	list := ctx.Backups.ListBackups
	kind := "backups"
	if c.Snapshots {
		list = ctx.Backups.ListSnapshots
		kind = "safety dumps"
	}

	items, err := list()
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", kind, err)
	}

	if len(items) == 0 {
		fmt.Printf("No %s found.\n", kind)
		fmt.Printf("Backups are stored in: %s\n", ctx.Backups.GetBackupDir())
		return nil
	}

	fmt.Printf("Available %s (%d total, keeping most recent %d):\n\n", kind, len(items), constants.MaxBackups)
	for _, b := range items {
		sizeKB := float64(b.Size) / 1024.0
		fmt.Printf("  %s  %s  (%.1f KB)\n", b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), sizeKB)
	}
	fmt.Printf("\nBackup directory: %s\n", ctx.Backups.GetBackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return errNotSQLite
	}

	backupPath, err := ctx.Backups.ResolvePath(c.BackupFile)
	if err != nil {
		return err
	}

	if !c.Yes {
		fmt.Println(cli.WarningStyle.Render("⚠️  This will replace your current database with the backup."))
		fmt.Println(cli.WarningStyle.Render("⚠️  All streakguard processes (including the TUI) must be stopped first."))
		fmt.Printf("\nRestore from: %s\n", backupPath)
		ok, err := cli.Confirm("Restore this backup?", "A backup of your current database is taken first.")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	// Close the current store connection before restoring
	if err := ctx.Store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database connection: %v\n", err)
	}

	previous, err := ctx.Backups.RestoreBackup(backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	if previous != "" {
		fmt.Printf("Previous database saved as: %s\n", filepath.Base(previous))
	}
	fmt.Println("✓ Database restored successfully!")
	return nil
}
