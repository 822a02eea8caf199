// Package notifier delivers the daily check-in reminder through the desktop tray
// helper's local webhook.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/streakguard/internal/constants"
	"github.com/julianstephens/streakguard/internal/logger"
	"github.com/julianstephens/streakguard/internal/models"
	"github.com/julianstephens/streakguard/internal/utils"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess

	ErrTrayNotRunning = errors.New(constants.TrayAppExecutable + " is not running")
)

const secretHeader = "X-Streakguard-Secret"

type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

// trayLock is the lockfile the tray helper writes: port|pid|secret.
type trayLock struct {
	Port   int
	PID    int
	Secret string
}

type Notifier struct {
	client *http.Client
}

func New() *Notifier {
	return &Notifier{client: &http.Client{Timeout: 5 * time.Second}}
}

// Notify shows text through the tray helper, retrying transient delivery failures.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}

	lock, err := readTrayLock(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	payload := WebhookPayload{Text: text, DurationMs: constants.NotificationDurationMs}

	var lastErr error
	for attempt := 1; attempt <= constants.NotifyMaxRetries; attempt++ {
		if lastErr = n.send(ctx, lock, payload); lastErr == nil {
			return nil
		}
		logger.Debug("Notification attempt failed", "attempt", attempt, "error", lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(constants.NotifyRetryDelay):
		}
	}
	return fmt.Errorf("notification failed after %d attempts: %w", constants.NotifyMaxRetries, lastErr)
}

// GetTrayAppConfigDir returns the tray helper's config dir, honoring a custom lockfile dir
// from its settings.json.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err != nil {
		return trayConfigDir, nil
	}
	var settings struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		logger.Warn("Ignoring malformed tray settings", "error", err)
		return trayConfigDir, nil
	}
	if d := settings.Settings.LockfileDir; d != nil && *d != "" {
		return *d, nil
	}
	return trayConfigDir, nil
}

func readTrayLock(path string) (trayLock, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return trayLock{}, ErrTrayNotRunning
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return trayLock{}, errors.New("lockfile is malformed")
	}

	port, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return trayLock{}, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return trayLock{}, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return trayLock{}, errors.New("invalid process ID in lockfile")
	}

	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return trayLock{}, errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return trayLock{}, ErrTrayNotRunning
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayAppExecutable) {
		return trayLock{}, fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.TrayAppExecutable, process.Executable())
	}

	return trayLock{Port: port, PID: pid, Secret: secret}, nil
}

func (n *Notifier) send(ctx context.Context, lock trayLock, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://127.0.0.1:%d", lock.Port)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(secretHeader, lock.Secret)

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	msg, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(msg))
}

// ReminderDue reports whether the daily reminder should fire at now: reminders are on,
// today has no check-in yet and the configured check-in time has passed.
func ReminderDue(prefs models.Preferences, checkedInToday bool, now time.Time) bool {
	if !prefs.NotificationsEnabled || checkedInToday {
		return false
	}
	at, err := utils.ParseTimeToMinutes(prefs.CheckInTime)
	if err != nil {
		logger.Warn("Invalid check-in time, using default", "value", prefs.CheckInTime)
		at, _ = utils.ParseTimeToMinutes(constants.DefaultCheckInTime)
	}
	return now.Hour()*60+now.Minute() >= at
}

// ReminderText is the notification body for the daily reminder.
func ReminderText(companionName string, streak int) string {
	if streak == 0 {
		return fmt.Sprintf("%s is waiting for today's check-in.", companionName)
	}
	return fmt.Sprintf("Don't forget to check in! %s is counting on your %d-day streak.", companionName, streak)
}
