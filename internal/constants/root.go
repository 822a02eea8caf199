package constants

import "time"

const (
	AppName            = "streakguard"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/streakguard/streakguard.db"
	Version            = "v0.3.0"

	// Backup constants
	MaxBackups         = 14
	BackupDirName      = "backups"
	BackupFilePrefix   = "streakguard-"
	BackupFileSuffix   = ".db"
	SnapshotFilePrefix = "streakguard-reset-"
	SnapshotFileSuffix = ".json"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "streakguard-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.streakguard"
	TrayAppExecutable      = "streakguard-tray"

	// ConfirmationTTL bounds how long a destructive-action token stays valid.
	ConfirmationTTL = 5 * time.Minute

	// DefaultCalendarWindowDays is the trailing window rendered by the calendar.
	DefaultCalendarWindowDays = 30
)
