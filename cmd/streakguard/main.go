package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/streakguard/internal/cli"
	"github.com/julianstephens/streakguard/internal/cli/backups"
	"github.com/julianstephens/streakguard/internal/cli/profile"
	"github.com/julianstephens/streakguard/internal/cli/settings"
	"github.com/julianstephens/streakguard/internal/cli/snapshots"
	"github.com/julianstephens/streakguard/internal/cli/streak"
	"github.com/julianstephens/streakguard/internal/cli/system"
	"github.com/julianstephens/streakguard/internal/config"
	"github.com/julianstephens/streakguard/internal/constants"
	apperrors "github.com/julianstephens/streakguard/internal/errors"
	"github.com/julianstephens/streakguard/internal/logger"
	"github.com/julianstephens/streakguard/internal/utils"
)

var CLI struct {
	Version   kong.VersionFlag
	Config    string `help:"SQLite path, PostgreSQL connection string, or 'keyring'. Overrides the storage setting in config.yaml. PostgreSQL passwords must NOT be embedded; use the OS keyring or .pgpass." type:"string"`
	ConfigDir string `help:"Directory holding config.yaml, logs and backups." type:"path"`
	Debug     bool   `help:"Log debug output to stderr."`
	Timezone  string `help:"IANA timezone used to decide what 'today' is (default: system local)."`

	Init      system.InitCmd     `cmd:"" help:"Initialize streakguard storage."`
	Onboard   streak.OnboardCmd  `cmd:"" help:"Choose a companion and start your streak."`
	Checkin   streak.CheckInCmd  `cmd:"" help:"Check in for today."`
	Relapse   streak.RelapseCmd  `cmd:"" help:"Record a relapse and start a new streak."`
	Status    streak.StatusCmd   `cmd:"" help:"Show your streak and companion."`
	Calendar  streak.CalendarCmd `cmd:"" help:"Show the check-in calendar."`
	Stats     streak.StatsCmd    `cmd:"" help:"Show statistics, savings and achievements."`
	Sos       streak.SOSCmd      `cmd:"" name:"sos" help:"Get support through a craving."`
	Note      streak.NoteCmd     `cmd:"" help:"Save or list craving notes."`
	Companion struct {
		Rename profile.CompanionRenameCmd `cmd:"" help:"Rename your companion."`
		Change profile.CompanionChangeCmd `cmd:"" help:"Switch to another companion kind."`
	} `cmd:"" help:"Manage your companion."`
	Addiction struct {
		Set profile.AddictionSetCmd `cmd:"" help:"Change what you are tracking."`
	} `cmd:"" help:"Manage the tracked addiction."`
	Cost struct {
		Set profile.CostSetCmd `cmd:"" help:"Set the daily cost used for savings."`
	} `cmd:"" help:"Manage the daily cost."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage theme, sounds and reminders."`
	Export   snapshots.ExportCmd  `cmd:"" help:"Export your data as JSON or YAML."`
	Import   snapshots.ImportCmd  `cmd:"" help:"Import data from an export file."`
	ResetAll streak.ResetAllCmd   `cmd:"" name:"reset-all" help:"Delete all data."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check whether the OS keyring is available."`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
	Migrate  system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Remind   system.RemindCmd  `cmd:"" help:"Send the daily check-in reminder if it is due (for cron)."`
	DebugCmd system.DebugCmd   `cmd:"" name:"debug" hidden:"" help:"Debug commands for troubleshooting."`
	Tui      system.TuiCmd     `cmd:"" help:"Launch the interactive dashboard." default:"1"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit-streak tracker with an evolving companion"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configDir := CLI.ConfigDir
	if configDir == "" {
		dir, err := config.DefaultDir()
		if err != nil {
			apperrors.Fatal(err)
		}
		configDir = dir
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.Config != "" {
		cfg.Storage = CLI.Config
	}
	if CLI.Timezone != "" {
		cfg.Timezone = CLI.Timezone
	}
	cfg.Debug = cfg.Debug || CLI.Debug

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	clock, err := utils.NewClock(cfg.Timezone)
	if err != nil {
		apperrors.Fatal(err)
	}

	store, err := cli.OpenProvider(cfg.Storage)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	appCtx := cli.NewContext(store, cfg, configDir, clock)

	// Load the store before running the command (Init command will handle its own loading)
	if ctx.Command() != "init" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	logger.Debug("Running command", "command", ctx.Command(), "storage", store.GetConfigPath())
	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}
