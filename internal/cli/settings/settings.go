package settings

import (
	"fmt"

	"github.com/julianstephens/streakguard/internal/cli"
	"github.com/julianstephens/streakguard/internal/models"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Theme                *string `help:"Display theme: auto, light or dark."`
	CycleTheme           bool    `help:"Switch to the next theme (auto, light, dark)."`
	SoundsEnabled        *bool   `help:"Ring the terminal bell on check-in."`
	NotificationsEnabled *bool   `help:"Enable or disable the daily check-in reminder."`
	CheckInTime          *string `help:"Time of day (HH:MM) after which the reminder fires."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	prefs := ctx.Tracker.Ledger().Preferences()

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Theme:                 %s\n", prefs.Theme)
		fmt.Printf("  Sounds Enabled:        %v\n", prefs.SoundsEnabled)
		fmt.Println("\nReminder Settings:")
		fmt.Printf("  Notifications Enabled: %v\n", prefs.NotificationsEnabled)
		fmt.Printf("  Check-in Time:         %s\n", prefs.CheckInTime)
		return nil
	}

	updated := false
	if c.Theme != nil {
		prefs.Theme = models.Theme(*c.Theme)
		updated = true
	}
	if c.CycleTheme {
		prefs.Theme = prefs.Theme.Next()
		updated = true
	}
	if c.SoundsEnabled != nil {
		prefs.SoundsEnabled = *c.SoundsEnabled
		updated = true
	}
	if c.NotificationsEnabled != nil {
		prefs.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.CheckInTime != nil {
		prefs.CheckInTime = *c.CheckInTime
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := ctx.Tracker.SavePreferences(prefs); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}
