package system

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/streakguard/internal/cli"
	"github.com/julianstephens/streakguard/internal/constants"
	"github.com/julianstephens/streakguard/internal/models"
	"github.com/julianstephens/streakguard/internal/storage"
	"github.com/julianstephens/streakguard/internal/storage/sqlite"
	"github.com/julianstephens/streakguard/internal/utils"
)

var testNow = time.Date(2024, 5, 1, 21, 30, 0, 0, time.UTC)

func setupTestContext(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	ctx := cli.NewContext(store, nil, tempDir, utils.FixedClock(testNow))

	cleanup := func() {
		store.Close()
	}

	return ctx, cleanup
}

func onboardTestProfile(t *testing.T, ctx *cli.Context) {
	t.Helper()
	err := ctx.Tracker.Onboard(models.Profile{
		CompanionKind: models.CompanionCat,
		CompanionName: "Miso",
		AddictionKind: models.AddictionGaming,
	})
	if err != nil {
		t.Fatalf("failed to onboard: %v", err)
	}
}

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	onboardTestProfile(t, ctx)
	if _, err := ctx.Tracker.CheckIn(); err != nil {
		t.Fatalf("failed to check in: %v", err)
	}

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("doctor command failed on healthy database: %v", err)
	}
}

func TestDoctorCmd_MissingBackups(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	cmd := &DoctorCmd{}
	err := cmd.Run(ctx)

	// Missing backups is a warning, not a failure
	if err != nil {
		t.Errorf("doctor command should not fail on missing backups: %v", err)
	}
}

func TestDoctorCmd_BrokenSchema(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	db := ctx.Store.(*sqlite.Store).GetDB()
	if db == nil {
		t.Fatal("database connection is nil")
	}

	// Set an impossible future schema version
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		t.Fatalf("failed to delete schema version: %v", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (999)"); err != nil {
		t.Fatalf("failed to insert corrupted schema version: %v", err)
	}

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err == nil {
		t.Error("doctor command should fail with corrupted schema")
	}
}

func TestDoctorCmd_WithBackups(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	if _, err := ctx.Backups.CreateBackup(); err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}

	if err := checkBackupsPresent(ctx); err != nil {
		t.Errorf("backups should be found: %v", err)
	}

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("doctor command failed with backups present: %v", err)
	}
}

func TestCheckMigrationsComplete_Incomplete(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	db := ctx.Store.(*sqlite.Store).GetDB()

	current, _, err := ctx.Store.SchemaVersion()
	if err != nil {
		t.Fatalf("failed to get current version: %v", err)
	}

	if current > 1 {
		if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
			t.Fatalf("failed to delete schema version: %v", err)
		}
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", current-1); err != nil {
			t.Fatalf("failed to insert downgraded schema version: %v", err)
		}

		if err := checkMigrationsComplete(ctx); err == nil {
			t.Error("checkMigrationsComplete should fail with incomplete migrations")
		}
	}
}

func TestCheckStoredValues_Malformed(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	if err := checkStoredValues(ctx); err != nil {
		t.Fatalf("empty store should pass: %v", err)
	}

	if err := ctx.Store.Apply(storage.SetOp(constants.KeyStreakDays, []byte("not json"))); err != nil {
		t.Fatalf("failed to write raw value: %v", err)
	}

	if err := checkStoredValues(ctx); err == nil {
		t.Error("checkStoredValues should report the malformed key")
	}
}

func TestCheckStreakIntegrity_StreakWithoutCheckIns(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	onboardTestProfile(t, ctx)
	err := storage.NewBatch().
		Set(constants.KeyStreakDays, 5).
		Commit(ctx.Store, "corrupt")
	if err != nil {
		t.Fatalf("failed to write state: %v", err)
	}

	if err := checkStreakIntegrity(ctx); err == nil {
		t.Error("checkStreakIntegrity should fail when the streak exceeds the recorded check-ins")
	}

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err == nil {
		t.Error("doctor command should fail on an inconsistent ledger")
	}
}

func TestCheckClockTimezone(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	if err := checkClockTimezone(ctx); err != nil {
		t.Errorf("clock/timezone check failed: %v", err)
	}
}
