package system

import (
	"fmt"
	"io/fs"

	"github.com/julianstephens/streakguard/internal/cli"
	"github.com/julianstephens/streakguard/internal/migration"
	"github.com/julianstephens/streakguard/internal/storage/sqlite"
	"github.com/julianstephens/streakguard/migrations"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		// PostgreSQL applies pending migrations as part of Init
		if err := ctx.Store.Init(); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		current, _, err := ctx.Store.SchemaVersion()
		if err != nil {
			return err
		}
		fmt.Printf("Database is at schema version %d.\n", current)
		return nil
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	runner := migration.NewRunner(db, subFS, migration.DriverSQLite)

	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
