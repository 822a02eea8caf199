package models

import (
	"time"

	"github.com/julianstephens/streakguard/internal/constants"
)

// Theme is the display theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeAuto
}

// Next cycles auto -> light -> dark -> auto.
func (t Theme) Next() Theme {
	switch t {
	case ThemeAuto:
		return ThemeLight
	case ThemeLight:
		return ThemeDark
	default:
		return ThemeAuto
	}
}

// IsDark resolves the theme at the given instant. Auto is dark in the evening and at night.
func (t Theme) IsDark(now time.Time) bool {
	switch t {
	case ThemeDark:
		return true
	case ThemeLight:
		return false
	default:
		h := now.Hour()
		return h >= constants.AutoDarkFromHour || h < constants.AutoDarkUntilHour
	}
}

// Preferences holds user-facing settings persisted alongside the ledger.
type Preferences struct {
	Theme                Theme  `json:"theme"`                // light, dark or auto
	SoundsEnabled        bool   `json:"soundsEnabled"`        // ring the bell on check-in
	NotificationsEnabled bool   `json:"notificationsEnabled"` // daily check-in reminder
	CheckInTime          string `json:"checkInTime"`          // HH:MM after which the reminder fires
}

// DefaultPreferences returns the preference set of a fresh install.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:                Theme(constants.DefaultTheme),
		SoundsEnabled:        constants.DefaultSoundsEnabled,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		CheckInTime:          constants.DefaultCheckInTime,
	}
}
