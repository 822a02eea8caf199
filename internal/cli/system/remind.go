package system

import (
	"context"
	"fmt"

	"github.com/julianstephens/streakguard/internal/cli"
	"github.com/julianstephens/streakguard/internal/logger"
	"github.com/julianstephens/streakguard/internal/notifier"
)

// sendReminder delivers a reminder through the desktop tray.
var sendReminder = func(ctx context.Context, msg string) error {
	return notifier.New().Notify(ctx, msg)
}

// RemindCmd is meant to run from cron or a systemd timer. At most one reminder is sent per day.
type RemindCmd struct {
	DryRun bool `help:"Print the reminder to stdout instead of sending it."`
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	if !ctx.Tracker.IsOnboarded() {
		if c.DryRun {
			fmt.Println("Not onboarded yet, nothing to remind.")
		}
		return nil
	}

	l := ctx.Tracker.Ledger()
	view := ctx.Tracker.CurrentState()
	now := l.Now()
	if !notifier.ReminderDue(view.Preferences, view.CheckedInToday, now) {
		if c.DryRun {
			fmt.Println(reminderSkipReason(view.Preferences.NotificationsEnabled, view.CheckedInToday))
		}
		return nil
	}
	if l.LastReminderDate() == l.Today() {
		if c.DryRun {
			fmt.Println("Reminder already sent today.")
		}
		return nil
	}

	msg := notifier.ReminderText(view.CompanionName, view.Streak)
	if c.DryRun {
		fmt.Println("[DryRun] " + msg)
		return nil
	}

	if err := sendReminder(context.Background(), msg); err != nil {
		logger.Warn("Failed to send reminder", "error", err)
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	if err := l.MarkReminderSent(); err != nil {
		logger.Warn("Failed to record reminder", "error", err)
		return err
	}
	return nil
}

func reminderSkipReason(enabled, checkedIn bool) string {
	switch {
	case !enabled:
		return "Reminders are disabled in settings."
	case checkedIn:
		return "Already checked in today."
	default:
		return "Check-in time has not passed yet."
	}
}
