package ledger

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/streakguard/internal/constants"
	apperrors "github.com/julianstephens/streakguard/internal/errors"
	"github.com/julianstephens/streakguard/internal/models"
	"github.com/julianstephens/streakguard/internal/storage"
	"github.com/julianstephens/streakguard/internal/storage/memory"
	"github.com/julianstephens/streakguard/internal/storage/sqlite"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) advanceDays(n int) { c.now = c.now.AddDate(0, 0, n) }

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)}
}

var testProfile = models.Profile{
	CompanionKind: models.CompanionPlant,
	CompanionName: "Fern",
	AddictionKind: models.AddictionSmoking,
}

func setupTestLedger(t *testing.T) (*Ledger, *testClock, func()) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	clk := newTestClock()
	l := New(store, clk.Now)
	if err := l.Onboard(testProfile); err != nil {
		t.Fatalf("failed to onboard: %v", err)
	}

	return l, clk, func() { store.Close() }
}

func TestOnboard(t *testing.T) {
	store := memory.New()
	_ = store.Init()
	clk := newTestClock()
	l := New(store, clk.Now)

	if l.IsOnboarded() {
		t.Fatal("fresh store should not be onboarded")
	}
	if err := l.Onboard(testProfile); err != nil {
		t.Fatalf("Onboard failed: %v", err)
	}
	if !l.IsOnboarded() {
		t.Error("expected onboarded after Onboard")
	}

	if got := l.Profile(); got != testProfile {
		t.Errorf("Profile() = %+v, want %+v", got, testProfile)
	}

	state := l.State()
	if state.StreakDays != 0 || state.LongestStreak != 0 || state.LastCheckInDate != "" {
		t.Errorf("unexpected initial state: %+v", state)
	}
	if !state.StartDate.Equal(clk.now) {
		t.Errorf("StartDate = %v, want %v", state.StartDate, clk.now)
	}
	if state.CheckInDates == nil || len(state.CheckInDates) != 0 {
		t.Errorf("CheckInDates should be empty, got %v", state.CheckInDates)
	}

	if err := l.Onboard(testProfile); !errors.Is(err, ErrAlreadyOnboarded) {
		t.Errorf("second Onboard error = %v, want ErrAlreadyOnboarded", err)
	}
}

func TestCheckInDistinctDays(t *testing.T) {
	l, clk, cleanup := setupTestLedger(t)
	defer cleanup()

	for i := 1; i <= 5; i++ {
		got, err := l.CheckIn()
		if err != nil {
			t.Fatalf("CheckIn day %d failed: %v", i, err)
		}
		if got != i {
			t.Errorf("CheckIn day %d returned %d", i, got)
		}
		if !l.HasCheckedInToday() {
			t.Errorf("HasCheckedInToday false after check-in on day %d", i)
		}
		clk.advanceDays(1)
	}

	if l.CurrentStreak() != 5 {
		t.Errorf("CurrentStreak() = %d, want 5", l.CurrentStreak())
	}
	if l.LongestStreak() != 5 {
		t.Errorf("LongestStreak() = %d, want 5", l.LongestStreak())
	}
	if got := l.CheckInHistory(); len(got) != 5 || got[0] != "2024-05-01" || got[4] != "2024-05-05" {
		t.Errorf("CheckInHistory() = %v", got)
	}
	if l.HasCheckedInToday() {
		t.Error("HasCheckedInToday should be false on a new day")
	}
}

func TestCheckInSameDayIsNoOp(t *testing.T) {
	l, _, cleanup := setupTestLedger(t)
	defer cleanup()

	first, err := l.CheckIn()
	if err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}
	before := l.State()

	second, err := l.CheckIn()
	if err != nil {
		t.Fatalf("second CheckIn failed: %v", err)
	}
	if first != 1 || second != 1 {
		t.Errorf("CheckIn returned %d then %d, want 1 then 1", first, second)
	}

	after := l.State()
	if after.StreakDays != before.StreakDays || len(after.CheckInDates) != len(before.CheckInDates) {
		t.Errorf("same-day check-in mutated state: before %+v after %+v", before, after)
	}
}

func TestCheckInAfterGapDoesNotBreakStreak(t *testing.T) {
	l, clk, cleanup := setupTestLedger(t)
	defer cleanup()

	if _, err := l.CheckIn(); err != nil {
		t.Fatal(err)
	}
	clk.advanceDays(4)

	got, err := l.CheckIn()
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("streak after a gap = %d, want 2 (missed days never reset)", got)
	}
}

func TestResetStreak(t *testing.T) {
	tests := []struct {
		name        string
		checkIns    int
		wantHistory int
	}{
		{name: "reset of non-zero streak archives it", checkIns: 3, wantHistory: 1},
		{name: "reset at zero archives nothing", checkIns: 0, wantHistory: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, clk, cleanup := setupTestLedger(t)
			defer cleanup()

			start := l.StartDate()
			for i := 0; i < tt.checkIns; i++ {
				if _, err := l.CheckIn(); err != nil {
					t.Fatal(err)
				}
				clk.advanceDays(1)
			}

			if err := l.ResetStreak(); err != nil {
				t.Fatalf("ResetStreak failed: %v", err)
			}

			if l.CurrentStreak() != 0 {
				t.Errorf("streak after reset = %d", l.CurrentStreak())
			}
			if l.LongestStreak() != tt.checkIns {
				t.Errorf("longest after reset = %d, want %d", l.LongestStreak(), tt.checkIns)
			}
			if !l.StartDate().Equal(clk.now) {
				t.Errorf("StartDate after reset = %v, want %v", l.StartDate(), clk.now)
			}

			history := l.StreakHistory()
			if len(history) != tt.wantHistory {
				t.Fatalf("history length = %d, want %d", len(history), tt.wantHistory)
			}
			if tt.wantHistory == 1 {
				h := history[0]
				if h.Days != tt.checkIns || !h.StartDate.Equal(start) || !h.EndDate.Equal(clk.now) {
					t.Errorf("unexpected history entry: %+v", h)
				}
			}

			failed := l.FailedDates()
			if len(failed) != 1 || failed[0] != clk.now.Format("2006-01-02") {
				t.Errorf("FailedDates() = %v", failed)
			}
		})
	}
}

func TestResetTwiceSameDayRecordsDateOnce(t *testing.T) {
	l, _, cleanup := setupTestLedger(t)
	defer cleanup()

	for i := 0; i < 2; i++ {
		if err := l.ResetStreak(); err != nil {
			t.Fatal(err)
		}
	}
	if got := l.FailedDates(); len(got) != 1 {
		t.Errorf("FailedDates() = %v, want one entry", got)
	}
}

func TestWriteFailureLeavesStateUntouched(t *testing.T) {
	store := memory.New()
	_ = store.Init()
	clk := newTestClock()
	l := New(store, clk.Now)
	if err := l.Onboard(testProfile); err != nil {
		t.Fatal(err)
	}
	if _, err := l.CheckIn(); err != nil {
		t.Fatal(err)
	}
	clk.advanceDays(1)

	store.FailWrites = true
	got, err := l.CheckIn()
	if !errors.Is(err, apperrors.ErrSave) {
		t.Fatalf("CheckIn error = %v, want ErrSave", err)
	}
	if got != 1 {
		t.Errorf("CheckIn returned %d on failure, want the unchanged streak 1", got)
	}
	if err := l.ResetStreak(); !errors.Is(err, apperrors.ErrSave) {
		t.Errorf("ResetStreak error = %v, want ErrSave", err)
	}

	store.FailWrites = false
	if l.CurrentStreak() != 1 || len(l.CheckInHistory()) != 1 || len(l.FailedDates()) != 0 {
		t.Errorf("failed writes leaked into state: %+v", l.State())
	}
}

func TestUnavailableStoreReadsDefaults(t *testing.T) {
	store := memory.New()
	_ = store.Init()
	l := New(store, newTestClock().Now)
	if err := l.Onboard(testProfile); err != nil {
		t.Fatal(err)
	}
	if _, err := l.CheckIn(); err != nil {
		t.Fatal(err)
	}

	store.FailReads = true
	if l.CurrentStreak() != 0 || l.IsOnboarded() {
		t.Error("unreadable storage should degrade to defaults")
	}
	if got := l.Profile().CompanionKind; got != models.CompanionPlant {
		t.Errorf("default companion = %s, want plant", got)
	}
}

func TestUnreadableStoreBlocksMutations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(l *Ledger) error
	}{
		{"onboard", func(l *Ledger) error {
			return l.Onboard(models.Profile{CompanionKind: models.CompanionDog, CompanionName: "Rex"})
		}},
		{"check in", func(l *Ledger) error {
			_, err := l.CheckIn()
			return err
		}},
		{"reset streak", func(l *Ledger) error { return l.ResetStreak() }},
		{"record sos", func(l *Ledger) error {
			_, err := l.RecordSOS()
			return err
		}},
		{"save note", func(l *Ledger) error { return l.SaveCravingNote("breathe") }},
		{"mark evolution seen", func(l *Ledger) error { return l.MarkEvolutionSeen(30) }},
		{"import", func(l *Ledger) error {
			return l.Import(models.Snapshot{CompanionName: "Ash", CompanionType: models.CompanionFlame}, nil)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.New()
			_ = store.Init()
			clk := newTestClock()
			l := New(store, clk.Now)
			if err := l.Onboard(testProfile); err != nil {
				t.Fatal(err)
			}
			for i := 0; i < 3; i++ {
				if _, err := l.CheckIn(); err != nil {
					t.Fatal(err)
				}
				clk.advanceDays(1)
			}
			if _, err := l.RecordSOS(); err != nil {
				t.Fatal(err)
			}
			if err := l.SaveCravingNote("walk it off"); err != nil {
				t.Fatal(err)
			}
			if err := l.MarkEvolutionSeen(7); err != nil {
				t.Fatal(err)
			}
			before, err := l.Dump()
			if err != nil {
				t.Fatal(err)
			}

			store.FailReads = true
			if err := tt.mutate(l); !errors.Is(err, apperrors.ErrSave) {
				t.Errorf("error = %v, want ErrSave", err)
			}

			store.FailReads = false
			after, err := l.Dump()
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(before, after) {
				t.Errorf("mutation committed despite unreadable store:\nbefore %v\nafter  %v", before, after)
			}
		})
	}
}

func TestReadFailureKeepsLongestStreak(t *testing.T) {
	store := memory.New()
	_ = store.Init()
	clk := newTestClock()
	l := New(store, clk.Now)
	if err := l.Onboard(testProfile); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		if _, err := l.CheckIn(); err != nil {
			t.Fatal(err)
		}
		clk.advanceDays(1)
	}
	if err := l.ResetStreak(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		clk.advanceDays(1)
		if _, err := l.CheckIn(); err != nil {
			t.Fatal(err)
		}
	}

	clk.advanceDays(1)
	store.FailReads = true
	if _, err := l.CheckIn(); err == nil {
		t.Error("CheckIn should fail while the store is unreadable")
	}
	if err := l.ResetStreak(); err == nil {
		t.Error("ResetStreak should fail while the store is unreadable")
	}
	if err := l.Onboard(models.Profile{CompanionKind: models.CompanionDog, CompanionName: "Rex"}); err == nil {
		t.Error("Onboard should fail while the store is unreadable")
	}

	store.FailReads = false
	if l.LongestStreak() != 10 || l.CurrentStreak() != 3 {
		t.Errorf("longest = %d, current = %d, want 10 and 3", l.LongestStreak(), l.CurrentStreak())
	}
	if len(l.StreakHistory()) != 1 || len(l.FailedDates()) != 1 {
		t.Errorf("history or failed dates changed: %v %v", l.StreakHistory(), l.FailedDates())
	}
	if p := l.Profile(); p.CompanionName != "Fern" {
		t.Errorf("profile overwritten: %+v", p)
	}
}

func TestLongestStreakNeverBelowCurrent(t *testing.T) {
	store := memory.New()
	_ = store.Init()
	l := New(store, newTestClock().Now)

	err := storage.NewBatch().
		Set(constants.KeyStreakDays, 9).
		Set(constants.KeyLongestStreak, 4).
		Commit(store, "seed")
	if err != nil {
		t.Fatal(err)
	}
	if l.LongestStreak() != 9 {
		t.Errorf("LongestStreak() = %d, want 9", l.LongestStreak())
	}
}

func TestSOSAndNotes(t *testing.T) {
	l, clk, cleanup := setupTestLedger(t)
	defer cleanup()

	for want := 1; want <= 3; want++ {
		got, err := l.RecordSOS()
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("RecordSOS() = %d, want %d", got, want)
		}
	}
	history := l.SOSHistory()
	if len(history) != 3 || l.SOSCount() != 3 {
		t.Fatalf("SOS history/count mismatch: %d/%d", len(history), l.SOSCount())
	}
	if history[0].Trigger != nil || history[0].ID == "" || history[0].ID == history[1].ID {
		t.Errorf("unexpected SOS event: %+v", history[0])
	}

	if err := l.SaveCravingNote("after dinner"); err != nil {
		t.Fatal(err)
	}
	notes := l.CravingNotes()
	if len(notes) != 1 || notes[0].Note != "after dinner" || !notes[0].Date.Equal(clk.now) {
		t.Errorf("CravingNotes() = %+v", notes)
	}
}

func TestDailyCost(t *testing.T) {
	l, _, cleanup := setupTestLedger(t)
	defer cleanup()

	tests := []struct {
		in   float64
		want float64
	}{
		{in: 12.5, want: 12.5},
		{in: -3, want: 0},
		{in: 0, want: 0},
	}
	for _, tt := range tests {
		if err := l.SetDailyCost(tt.in); err != nil {
			t.Fatal(err)
		}
		if got := l.DailyCost(); got != tt.want {
			t.Errorf("SetDailyCost(%v) stored %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEvolutionAcknowledgement(t *testing.T) {
	l, _, cleanup := setupTestLedger(t)
	defer cleanup()

	if l.HasSeenEvolution(3) {
		t.Fatal("nothing should be seen after onboarding")
	}
	for i := 0; i < 2; i++ {
		if err := l.MarkEvolutionSeen(3); err != nil {
			t.Fatal(err)
		}
	}
	if err := l.MarkEvolutionSeen(7); err != nil {
		t.Fatal(err)
	}
	if got := l.EvolutionsSeen(); len(got) != 2 || got[0] != 3 || got[1] != 7 {
		t.Errorf("EvolutionsSeen() = %v, want [3 7]", got)
	}
	if !l.HasSeenEvolution(7) {
		t.Error("HasSeenEvolution(7) = false")
	}
}

func TestProfileChangesKeepStreak(t *testing.T) {
	l, _, cleanup := setupTestLedger(t)
	defer cleanup()

	if _, err := l.CheckIn(); err != nil {
		t.Fatal(err)
	}
	if err := l.SetCompanionKind(models.CompanionDragon); err != nil {
		t.Fatal(err)
	}
	if err := l.SetCompanionName("Ember"); err != nil {
		t.Fatal(err)
	}
	if err := l.SetAddiction(models.AddictionCustom, "doomscrolling"); err != nil {
		t.Fatal(err)
	}

	p := l.Profile()
	if p.CompanionKind != models.CompanionDragon || p.CompanionName != "Ember" || p.AddictionName() != "doomscrolling" {
		t.Errorf("unexpected profile: %+v", p)
	}

	if err := l.SetAddiction(models.AddictionGaming, ""); err != nil {
		t.Fatal(err)
	}
	if p := l.Profile(); p.AddictionCustom != "" || p.AddictionName() != "Gaming" {
		t.Errorf("custom text should be dropped: %+v", p)
	}
	if l.CurrentStreak() != 1 {
		t.Errorf("streak changed by profile edits: %d", l.CurrentStreak())
	}
}

func TestPreferences(t *testing.T) {
	l, _, cleanup := setupTestLedger(t)
	defer cleanup()

	if got := l.Preferences(); got != models.DefaultPreferences() {
		t.Errorf("Preferences() = %+v, want defaults", got)
	}

	want := models.Preferences{Theme: models.ThemeDark, SoundsEnabled: true, NotificationsEnabled: true, CheckInTime: "20:15"}
	if err := l.SavePreferences(want); err != nil {
		t.Fatal(err)
	}
	if got := l.Preferences(); got != want {
		t.Errorf("Preferences() = %+v, want %+v", got, want)
	}
}

func TestClearAndDump(t *testing.T) {
	l, _, cleanup := setupTestLedger(t)
	defer cleanup()

	if _, err := l.CheckIn(); err != nil {
		t.Fatal(err)
	}
	dump, err := l.Dump()
	if err != nil {
		t.Fatal(err)
	}
	if string(dump["streakDays"]) != "1" {
		t.Errorf("dump streakDays = %s", dump["streakDays"])
	}

	if err := l.Clear(); err != nil {
		t.Fatal(err)
	}
	if l.IsOnboarded() || l.CurrentStreak() != 0 || len(l.EvolutionsSeen()) != 0 {
		t.Error("Clear left data behind")
	}
}

func TestImportPreservesPreferences(t *testing.T) {
	l, _, cleanup := setupTestLedger(t)
	defer cleanup()

	prefs := models.Preferences{Theme: models.ThemeLight, CheckInTime: "08:00"}
	if err := l.SavePreferences(prefs); err != nil {
		t.Fatal(err)
	}

	snap := models.Snapshot{
		CompanionName: "Ash",
		CompanionType: models.CompanionFlame,
		AddictionType: models.AddictionCustom,
		AddictionName: "late-night snacking",
		StartDate:     time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC),
		StreakDays:    2,
		LongestStreak: 10,
		DailyCheckIns: []string{"2024-04-02", "2024-04-03"},
	}
	if err := l.Import(snap, []int{}); err != nil {
		t.Fatal(err)
	}

	if l.Preferences() != prefs {
		t.Errorf("preferences not preserved: %+v", l.Preferences())
	}
	if l.LastCheckInDate() != "2024-04-03" {
		t.Errorf("LastCheckInDate() = %q", l.LastCheckInDate())
	}
	if p := l.Profile(); p.AddictionName() != "late-night snacking" || p.CompanionName != "Ash" {
		t.Errorf("profile not imported: %+v", p)
	}
	if !l.IsOnboarded() {
		t.Error("import should mark the profile onboarded")
	}
}

func TestImportKeepsSOSLog(t *testing.T) {
	l, _, cleanup := setupTestLedger(t)
	defer cleanup()

	for i := 0; i < 2; i++ {
		if _, err := l.RecordSOS(); err != nil {
			t.Fatal(err)
		}
	}
	logged := l.SOSHistory()

	snap := models.Snapshot{
		CompanionName: "Ash",
		CompanionType: models.CompanionFlame,
		AddictionType: models.AddictionSmoking,
		SOSCount:      5,
	}
	if err := l.Import(snap, nil); err != nil {
		t.Fatal(err)
	}

	if l.SOSCount() != 5 {
		t.Errorf("SOSCount() = %d, want 5", l.SOSCount())
	}
	if !reflect.DeepEqual(l.SOSHistory(), logged) {
		t.Errorf("SOS log not preserved: got %v, want %v", l.SOSHistory(), logged)
	}
}

func TestReminderDate(t *testing.T) {
	l, clk, cleanup := setupTestLedger(t)
	defer cleanup()

	if l.LastReminderDate() != "" {
		t.Errorf("LastReminderDate() = %q, want empty", l.LastReminderDate())
	}
	if err := l.MarkReminderSent(); err != nil {
		t.Fatal(err)
	}
	if l.LastReminderDate() != l.Today() {
		t.Errorf("LastReminderDate() = %q, want %q", l.LastReminderDate(), l.Today())
	}
	clk.advanceDays(1)
	if l.LastReminderDate() == l.Today() {
		t.Error("reminder date should not roll forward with the clock")
	}
}
