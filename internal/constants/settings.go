package constants

const (
	// Config file keys (viper)
	ConfigStorage            = "storage"
	ConfigTimezone           = "timezone"
	ConfigDebug              = "debug"
	ConfigCalendarWindowDays = "calendar_window_days"
	ConfigEnvPrefix          = "STREAKGUARD"
	ConfigFileName           = "config"
	ConfigFileType           = "yaml"

	// Default preference values
	DefaultTheme                = "auto"
	DefaultSoundsEnabled        = false
	DefaultNotificationsEnabled = false
	DefaultCheckInTime          = "21:00"
	DefaultTimezone             = "Local" // Use system local timezone by default

	// Auto theme switches to dark between these hours (local clock).
	AutoDarkFromHour  = 20
	AutoDarkUntilHour = 7
)
