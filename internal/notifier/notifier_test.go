package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/streakguard/internal/constants"
	"github.com/julianstephens/streakguard/internal/models"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func withTrayProcess(t *testing.T, executable string) {
	old := findProcessFunc
	t.Cleanup(func() { findProcessFunc = old })
	findProcessFunc = func(pid int) (ps.Process, error) {
		if executable == "" {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: executable}, nil
	}
}

func withConfigDir(t *testing.T) string {
	dir := t.TempDir()
	old := userConfigDirFunc
	t.Cleanup(func() { userConfigDirFunc = old })
	userConfigDirFunc = func() (string, error) { return dir, nil }
	return dir
}

func TestGetTrayAppConfigDir(t *testing.T) {
	tempDir := withConfigDir(t)

	expectedDefault := filepath.Join(tempDir, constants.TrayAppIdentifier)
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != expectedDefault {
		t.Errorf("expected %s, got %s", expectedDefault, dir)
	}

	if err := os.MkdirAll(expectedDefault, 0755); err != nil {
		t.Fatal(err)
	}
	customDir := "/custom/streakguard/dir"
	settings := fmt.Sprintf(`{"settings": {"lockfile_dir": "%s"}}`, customDir)
	if err := os.WriteFile(filepath.Join(expectedDefault, "settings.json"), []byte(settings), 0644); err != nil {
		t.Fatal(err)
	}

	dir, err = GetTrayAppConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != customDir {
		t.Errorf("expected %s, got %s", customDir, dir)
	}
}

func TestReadTrayLock(t *testing.T) {
	lockfilePath := filepath.Join(t.TempDir(), constants.NotifierLockfileName)

	if _, err := readTrayLock(lockfilePath); !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("missing lockfile error = %v, want ErrTrayNotRunning", err)
	}

	tests := []struct {
		name       string
		content    string
		executable string
		wantErr    string
	}{
		{"old two-part format", "8080|12345", constants.TrayAppExecutable, "malformed"},
		{"garbage", "invalid", constants.TrayAppExecutable, "malformed"},
		{"empty secret", "8080|12345|", constants.TrayAppExecutable, "secret"},
		{"empty port", "|12345|s3cret", constants.TrayAppExecutable, "port"},
		{"port out of range", "99999|12345|s3cret", constants.TrayAppExecutable, "range"},
		{"bad pid", "8080|abc|s3cret", constants.TrayAppExecutable, "process ID"},
		{"process gone", "8080|12345|s3cret", "", "not running"},
		{"wrong executable", "8080|12345|s3cret", "other-app", "is not"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withTrayProcess(t, tt.executable)
			if err := os.WriteFile(lockfilePath, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := readTrayLock(lockfilePath)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("readTrayLock() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}

	withTrayProcess(t, constants.TrayAppExecutable)
	if err := os.WriteFile(lockfilePath, []byte("8080|12345|s3cret\n"), 0644); err != nil {
		t.Fatal(err)
	}
	lock, err := readTrayLock(lockfilePath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lock.Port != 8080 || lock.PID != 12345 || lock.Secret != "s3cret" {
		t.Errorf("unexpected lock: %+v", lock)
	}
}

func newTrayServer(t *testing.T, failFirst int32) (*httptest.Server, *atomic.Int32) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if r.Method != http.MethodPost || r.Header.Get(secretHeader) != "test-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorized"))
			return
		}
		var payload WebhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if n <= failFirst || payload.Text == "fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func serverPort(t *testing.T, server *httptest.Server) int {
	parts := strings.Split(server.URL, ":")
	var port int
	if _, err := fmt.Sscanf(parts[len(parts)-1], "%d", &port); err != nil {
		t.Fatal(err)
	}
	return port
}

func TestSend(t *testing.T) {
	server, _ := newTrayServer(t, 0)
	port := serverPort(t, server)
	n := New()
	ctx := context.Background()

	if err := n.send(ctx, trayLock{Port: port, Secret: "test-secret"}, WebhookPayload{Text: "hello"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := n.send(ctx, trayLock{Port: port, Secret: "wrong"}, WebhookPayload{Text: "hello"}); err == nil {
		t.Error("expected error for wrong secret")
	}
	if err := n.send(ctx, trayLock{Port: port, Secret: "test-secret"}, WebhookPayload{Text: "fail"}); err == nil {
		t.Error("expected error for server failure")
	}
}

func TestNotifyRetries(t *testing.T) {
	server, calls := newTrayServer(t, 1)
	configDir := withConfigDir(t)
	withTrayProcess(t, constants.TrayAppExecutable)

	trayDir := filepath.Join(configDir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(trayDir, 0755); err != nil {
		t.Fatal(err)
	}
	lock := fmt.Sprintf("%d|4242|test-secret", serverPort(t, server))
	if err := os.WriteFile(filepath.Join(trayDir, constants.NotifierLockfileName), []byte(lock), 0644); err != nil {
		t.Fatal(err)
	}

	if err := New().Notify(context.Background(), "check in"); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("server saw %d calls, want 2 (one retry)", got)
	}

	if err := New().Notify(context.Background(), "fail"); err == nil {
		t.Error("expected error once retries are exhausted")
	}
}

func TestNotifyWithoutTray(t *testing.T) {
	withConfigDir(t)
	if err := New().Notify(context.Background(), "hi"); !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("Notify() error = %v, want ErrTrayNotRunning", err)
	}
}

func TestReminderDue(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2024, 5, 1, h, m, 0, 0, time.UTC) }
	on := models.Preferences{NotificationsEnabled: true, CheckInTime: "21:00"}

	tests := []struct {
		name    string
		prefs   models.Preferences
		checked bool
		now     time.Time
		want    bool
	}{
		{"before time", on, false, at(20, 59), false},
		{"at time", on, false, at(21, 0), true},
		{"already checked in", on, true, at(22, 0), false},
		{"disabled", models.Preferences{CheckInTime: "08:00"}, false, at(22, 0), false},
		{"bad time falls back to default", models.Preferences{NotificationsEnabled: true, CheckInTime: "soon"}, false, at(21, 30), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReminderDue(tt.prefs, tt.checked, tt.now); got != tt.want {
				t.Errorf("ReminderDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReminderText(t *testing.T) {
	if got := ReminderText("Fern", 0); !strings.Contains(got, "Fern") {
		t.Errorf("ReminderText() = %q", got)
	}
	if got := ReminderText("Fern", 4); !strings.Contains(got, "4-day") {
		t.Errorf("ReminderText() = %q", got)
	}
}
