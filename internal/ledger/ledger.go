// Package ledger owns the persisted streak state: check-ins, resets, history and the
// user data that travels with it.
package ledger

import (
	"encoding/json"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/streakguard/internal/constants"
	apperrors "github.com/julianstephens/streakguard/internal/errors"
	"github.com/julianstephens/streakguard/internal/logger"
	"github.com/julianstephens/streakguard/internal/models"
	"github.com/julianstephens/streakguard/internal/storage"
	"github.com/julianstephens/streakguard/internal/utils"
)

// ErrAlreadyOnboarded is returned by Onboard when a profile exists; a full reset comes first.
var ErrAlreadyOnboarded = errors.New("already onboarded")

// Ledger reads and mutates the key space. Every mutation is a single atomic batch, and a
// mutation whose reads hit an unreachable store fails before anything is written.
type Ledger struct {
	mu    sync.Mutex
	store storage.Provider
	clock utils.Clock
}

// New returns a Ledger over store. A nil clock means the local wall clock.
func New(store storage.Provider, clock utils.Clock) *Ledger {
	if clock == nil {
		clock = time.Now
	}
	return &Ledger{store: store, clock: clock}
}

// Now returns the ledger clock's current instant.
func (l *Ledger) Now() time.Time {
	return l.clock()
}

// Today returns the ledger clock's current date (YYYY-MM-DD).
func (l *Ledger) Today() string {
	return l.clock.Today()
}

// Onboarding

func (l *Ledger) IsOnboarded() bool {
	return storage.Read(l.store, constants.KeyOnboardingCompleted, false)
}

// Onboard writes the profile and a fresh streak in one batch.
func (l *Ledger) Onboard(p models.Profile) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var rerr error
	if strictRead(l.store, &rerr, constants.KeyOnboardingCompleted, false) {
		return ErrAlreadyOnboarded
	}
	if rerr != nil {
		return apperrors.SaveFailed("onboard", rerr)
	}

	b := storage.NewBatch().
		Set(constants.KeyOnboardingCompleted, true).
		Set(constants.KeyCompanionType, p.CompanionKind).
		Set(constants.KeyCompanionName, p.CompanionName).
		Set(constants.KeyAddictionType, p.AddictionKind)
	if p.AddictionKind == models.AddictionCustom && p.AddictionCustom != "" {
		b.Set(constants.KeyAddictionCustom, p.AddictionCustom)
	} else {
		b.Delete(constants.KeyAddictionCustom)
	}
	b.Set(constants.KeyStartDate, l.clock()).
		Set(constants.KeyStreakDays, 0).
		Set(constants.KeyLongestStreak, 0).
		Set(constants.KeyLastCheckIn, "").
		Set(constants.KeyDailyCheckIns, []string{}).
		Set(constants.KeyFailedDates, []string{}).
		Set(constants.KeySOSCount, 0).
		Set(constants.KeyEvolutionsSeen, []int{})

	if err := b.Commit(l.store, "onboard"); err != nil {
		return err
	}
	logger.Info("Onboarding completed", "companion", p.CompanionKind, "addiction", p.AddictionKind)
	return nil
}

// Profile

func (l *Ledger) Profile() models.Profile {
	return models.Profile{
		CompanionKind:   storage.Read(l.store, constants.KeyCompanionType, models.CompanionPlant),
		CompanionName:   storage.Read(l.store, constants.KeyCompanionName, ""),
		AddictionKind:   storage.Read(l.store, constants.KeyAddictionType, models.AddictionKind("")),
		AddictionCustom: storage.Read(l.store, constants.KeyAddictionCustom, ""),
	}
}

func (l *Ledger) SetCompanionName(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return storage.NewBatch().Set(constants.KeyCompanionName, name).Commit(l.store, "rename companion")
}

// SetCompanionKind swaps the avatar. The streak is kept.
func (l *Ledger) SetCompanionKind(kind models.CompanionKind) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return storage.NewBatch().Set(constants.KeyCompanionType, kind).Commit(l.store, "change companion")
}

// SetAddiction changes the tracked behavior. The streak is kept.
func (l *Ledger) SetAddiction(kind models.AddictionKind, custom string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := storage.NewBatch().Set(constants.KeyAddictionType, kind)
	if kind == models.AddictionCustom {
		b.Set(constants.KeyAddictionCustom, custom)
	} else {
		b.Delete(constants.KeyAddictionCustom)
	}
	return b.Commit(l.store, "change addiction")
}

// Streak

func (l *Ledger) CurrentStreak() int {
	return storage.Read(l.store, constants.KeyStreakDays, 0)
}

// LongestStreak is never below the current streak, whatever was stored.
func (l *Ledger) LongestStreak() int {
	return max(l.CurrentStreak(), storage.Read(l.store, constants.KeyLongestStreak, 0))
}

func (l *Ledger) LastCheckInDate() string {
	return storage.Read(l.store, constants.KeyLastCheckIn, "")
}

func (l *Ledger) HasCheckedInToday() bool {
	return l.LastCheckInDate() == l.Today()
}

func (l *Ledger) CheckInHistory() []string {
	return l.dates(constants.KeyDailyCheckIns)
}

func (l *Ledger) FailedDates() []string {
	return l.dates(constants.KeyFailedDates)
}

// StartDate returns the start of the current streak, or now when none was stored.
func (l *Ledger) StartDate() time.Time {
	if t, ok := storage.Lookup[time.Time](l.store, constants.KeyStartDate); ok && !t.IsZero() {
		return t
	}
	return l.clock()
}

func (l *Ledger) StreakHistory() []models.StreakHistoryEntry {
	h := storage.Read(l.store, constants.KeyStreakHistory, []models.StreakHistoryEntry{})
	if h == nil {
		return []models.StreakHistoryEntry{}
	}
	return h
}

// State returns the full streak ledger.
func (l *Ledger) State() models.StreakState {
	return models.StreakState{
		StartDate:       l.StartDate(),
		StreakDays:      l.CurrentStreak(),
		LastCheckInDate: l.LastCheckInDate(),
		LongestStreak:   l.LongestStreak(),
		CheckInDates:    l.CheckInHistory(),
		FailedDates:     l.FailedDates(),
	}
}

// CheckIn records today's check-in and returns the new streak. A second check-in on the
// same date changes nothing and returns the current streak.
func (l *Ledger) CheckIn() (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var rerr error
	today := l.Today()
	current := strictRead(l.store, &rerr, constants.KeyStreakDays, 0)
	last := strictRead(l.store, &rerr, constants.KeyLastCheckIn, "")
	longest := strictRead(l.store, &rerr, constants.KeyLongestStreak, 0)
	dates := nonNilSlice(strictRead(l.store, &rerr, constants.KeyDailyCheckIns, []string{}))
	if rerr != nil {
		return 0, apperrors.SaveFailed("check in", rerr)
	}
	if last == today {
		return current, nil
	}

	next := current + 1
	b := storage.NewBatch().
		Set(constants.KeyLastCheckIn, today).
		Set(constants.KeyStreakDays, next).
		Set(constants.KeyLongestStreak, max(next, current, longest))
	if !containsDate(dates, today) {
		b.Set(constants.KeyDailyCheckIns, append(dates, today))
	}

	if err := b.Commit(l.store, "check in"); err != nil {
		return current, err
	}
	logger.Debug("Checked in", "date", today, "streak", next)
	return next, nil
}

// ResetStreak ends the current streak. A non-zero streak is archived; today is recorded as
// failed at most once. The longest streak is kept.
func (l *Ledger) ResetStreak() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var rerr error
	now := l.clock()
	today := utils.DateString(now)
	current := strictRead(l.store, &rerr, constants.KeyStreakDays, 0)
	longest := strictRead(l.store, &rerr, constants.KeyLongestStreak, 0)
	start := strictRead(l.store, &rerr, constants.KeyStartDate, time.Time{})
	history := nonNilSlice(strictRead(l.store, &rerr, constants.KeyStreakHistory, []models.StreakHistoryEntry{}))
	failed := nonNilSlice(strictRead(l.store, &rerr, constants.KeyFailedDates, []string{}))
	if rerr != nil {
		return apperrors.SaveFailed("reset streak", rerr)
	}
	if start.IsZero() {
		start = now
	}

	b := storage.NewBatch()
	if current > 0 {
		history = append(history, models.StreakHistoryEntry{
			StartDate: start,
			EndDate:   now,
			Days:      current,
		})
		b.Set(constants.KeyStreakHistory, history)
		b.Set(constants.KeyLongestStreak, max(current, longest))
	}
	b.Set(constants.KeyStreakDays, 0).
		Set(constants.KeyStartDate, now)
	if !containsDate(failed, today) {
		b.Set(constants.KeyFailedDates, append(failed, today))
	}

	if err := b.Commit(l.store, "reset streak"); err != nil {
		return err
	}
	logger.Info("Streak reset", "date", today, "previous", current)
	return nil
}

// SOS and notes

// RecordSOS bumps the SOS counter and appends an event, returning the new count.
func (l *Ledger) RecordSOS() (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var rerr error
	count := strictRead(l.store, &rerr, constants.KeySOSCount, 0) + 1
	history := nonNilSlice(strictRead(l.store, &rerr, constants.KeySOSHistory, []models.SOSEvent{}))
	if rerr != nil {
		return 0, apperrors.SaveFailed("record sos", rerr)
	}
	history = append(history, models.SOSEvent{
		ID:   uuid.NewString(),
		Date: l.clock(),
	})

	err := storage.NewBatch().
		Set(constants.KeySOSCount, count).
		Set(constants.KeySOSHistory, history).
		Commit(l.store, "record sos")
	if err != nil {
		return count - 1, err
	}
	return count, nil
}

func (l *Ledger) SOSCount() int {
	return storage.Read(l.store, constants.KeySOSCount, 0)
}

func (l *Ledger) SOSHistory() []models.SOSEvent {
	h := storage.Read(l.store, constants.KeySOSHistory, []models.SOSEvent{})
	if h == nil {
		return []models.SOSEvent{}
	}
	return h
}

func (l *Ledger) SaveCravingNote(note string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var rerr error
	notes := nonNilSlice(strictRead(l.store, &rerr, constants.KeyCravingNotes, []models.CravingNote{}))
	if rerr != nil {
		return apperrors.SaveFailed("save note", rerr)
	}
	notes = append(notes, models.CravingNote{Date: l.clock(), Note: note})
	return storage.NewBatch().Set(constants.KeyCravingNotes, notes).Commit(l.store, "save note")
}

func (l *Ledger) CravingNotes() []models.CravingNote {
	n := storage.Read(l.store, constants.KeyCravingNotes, []models.CravingNote{})
	if n == nil {
		return []models.CravingNote{}
	}
	return n
}

// Savings

func (l *Ledger) DailyCost() float64 {
	return storage.Read(l.store, constants.KeyDailyCost, 0.0)
}

// SetDailyCost stores cost, flooring negative or non-finite amounts at 0.
func (l *Ledger) SetDailyCost(cost float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cost < 0 || math.IsNaN(cost) || math.IsInf(cost, 0) {
		cost = 0
	}
	return storage.NewBatch().Set(constants.KeyDailyCost, cost).Commit(l.store, "set daily cost")
}

// Evolution acknowledgements

func (l *Ledger) EvolutionsSeen() []int {
	seen := storage.Read(l.store, constants.KeyEvolutionsSeen, []int{})
	if seen == nil {
		return []int{}
	}
	return seen
}

func (l *Ledger) HasSeenEvolution(threshold int) bool {
	for _, s := range l.EvolutionsSeen() {
		if s == threshold {
			return true
		}
	}
	return false
}

// MarkEvolutionSeen records threshold as celebrated. Repeats are no-ops.
func (l *Ledger) MarkEvolutionSeen(threshold int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var rerr error
	seen := nonNilSlice(strictRead(l.store, &rerr, constants.KeyEvolutionsSeen, []int{}))
	if rerr != nil {
		return apperrors.SaveFailed("mark evolution seen", rerr)
	}
	for _, s := range seen {
		if s == threshold {
			return nil
		}
	}
	seen = append(seen, threshold)
	return storage.NewBatch().Set(constants.KeyEvolutionsSeen, seen).Commit(l.store, "mark evolution seen")
}

// Preferences

func (l *Ledger) Preferences() models.Preferences {
	def := models.DefaultPreferences()
	return models.Preferences{
		Theme:                storage.Read(l.store, constants.KeyTheme, def.Theme),
		SoundsEnabled:        storage.Read(l.store, constants.KeySoundsEnabled, def.SoundsEnabled),
		NotificationsEnabled: storage.Read(l.store, constants.KeyNotificationsEnabled, def.NotificationsEnabled),
		CheckInTime:          storage.Read(l.store, constants.KeyCheckInTime, def.CheckInTime),
	}
}

// storedPreferences is Preferences for read-modify-write callers.
func (l *Ledger) storedPreferences(errp *error) models.Preferences {
	def := models.DefaultPreferences()
	return models.Preferences{
		Theme:                strictRead(l.store, errp, constants.KeyTheme, def.Theme),
		SoundsEnabled:        strictRead(l.store, errp, constants.KeySoundsEnabled, def.SoundsEnabled),
		NotificationsEnabled: strictRead(l.store, errp, constants.KeyNotificationsEnabled, def.NotificationsEnabled),
		CheckInTime:          strictRead(l.store, errp, constants.KeyCheckInTime, def.CheckInTime),
	}
}

func (l *Ledger) SavePreferences(p models.Preferences) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.preferencesBatch(storage.NewBatch(), p).Commit(l.store, "save preferences")
}

func (l *Ledger) preferencesBatch(b *storage.Batch, p models.Preferences) *storage.Batch {
	return b.Set(constants.KeyTheme, p.Theme).
		Set(constants.KeySoundsEnabled, p.SoundsEnabled).
		Set(constants.KeyNotificationsEnabled, p.NotificationsEnabled).
		Set(constants.KeyCheckInTime, p.CheckInTime)
}

// Reminders

// LastReminderDate returns the date (YYYY-MM-DD) a reminder was last delivered, or "".
func (l *Ledger) LastReminderDate() string {
	return storage.Read(l.store, constants.KeyLastReminder, "")
}

// MarkReminderSent records today as the date a reminder was delivered.
func (l *Ledger) MarkReminderSent() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return storage.NewBatch().Set(constants.KeyLastReminder, l.Today()).Commit(l.store, "mark reminder sent")
}

// Whole key space

// Clear destroys every entity. Re-onboarding is required afterwards.
func (l *Ledger) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := storage.Clear(l.store); err != nil {
		return err
	}
	logger.Warn("All data cleared")
	return nil
}

// Dump returns the raw key space, used for safety backups before destructive actions.
func (l *Ledger) Dump() (map[string]json.RawMessage, error) {
	return storage.ExportAll(l.store)
}

// Import atomically replaces the tracked data with s. Preferences and the SOS log survive,
// since snapshots carry only the SOS count. seen lists the evolution thresholds to mark as
// already celebrated.
func (l *Ledger) Import(s models.Snapshot, seen []int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var rerr error
	prefs := l.storedPreferences(&rerr)
	sosLog := nonNilSlice(strictRead(l.store, &rerr, constants.KeySOSHistory, []models.SOSEvent{}))
	if rerr != nil {
		return apperrors.SaveFailed("import snapshot", rerr)
	}
	last := ""
	for _, d := range s.DailyCheckIns {
		if d > last {
			last = d
		}
	}

	b := storage.NewBatch().Clear().
		Set(constants.KeyOnboardingCompleted, true).
		Set(constants.KeyCompanionType, s.CompanionType).
		Set(constants.KeyCompanionName, s.CompanionName).
		Set(constants.KeyAddictionType, s.AddictionType)
	if s.AddictionType == models.AddictionCustom {
		b.Set(constants.KeyAddictionCustom, s.AddictionName)
	}
	b.Set(constants.KeyStartDate, s.StartDate).
		Set(constants.KeyStreakDays, s.StreakDays).
		Set(constants.KeyLongestStreak, max(s.LongestStreak, s.StreakDays)).
		Set(constants.KeyLastCheckIn, last).
		Set(constants.KeyDailyCheckIns, nonNilSlice(s.DailyCheckIns)).
		Set(constants.KeyFailedDates, nonNilSlice(s.FailedDates)).
		Set(constants.KeySOSCount, s.SOSCount).
		Set(constants.KeySOSHistory, sosLog).
		Set(constants.KeyDailyCost, s.DailyCost).
		Set(constants.KeyStreakHistory, nonNilSlice(s.StreakHistory)).
		Set(constants.KeyCravingNotes, nonNilSlice(s.CravingNotes)).
		Set(constants.KeyEvolutionsSeen, nonNilSlice(seen))
	l.preferencesBatch(b, prefs)

	if err := b.Commit(l.store, "import snapshot"); err != nil {
		return err
	}
	logger.Info("Snapshot imported", "streak", s.StreakDays, "checkIns", len(s.DailyCheckIns))
	return nil
}

// strictRead is the read half of a read-modify-write. Absent and malformed values yield
// def. The first backend failure is kept in *errp and later reads are skipped.
func strictRead[T any](p storage.Provider, errp *error, key string, def T) T {
	if *errp != nil {
		return def
	}
	v, ok, err := storage.Get[T](p, key)
	if err != nil {
		*errp = err
		return def
	}
	if !ok {
		return def
	}
	return v
}

func (l *Ledger) dates(key string) []string {
	d := storage.Read(l.store, key, []string{})
	if d == nil {
		return []string{}
	}
	return d
}

func containsDate(dates []string, d string) bool {
	for _, x := range dates {
		if x == d {
			return true
		}
	}
	return false
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
