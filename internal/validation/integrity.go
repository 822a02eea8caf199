package validation

import (
	"fmt"
	"sort"

	"github.com/julianstephens/streakguard/internal/models"
	"github.com/julianstephens/streakguard/internal/utils"
)

// ConflictType represents the type of ledger integrity problem
type ConflictType string

const (
	ConflictNegativeStreak     ConflictType = "negative_streak"
	ConflictLongestBelowStreak ConflictType = "longest_below_streak"
	ConflictDuplicateDate      ConflictType = "duplicate_date"
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictLastCheckInAbsent  ConflictType = "last_check_in_absent"
	ConflictStreakExceedsDays  ConflictType = "streak_exceeds_check_ins"
	ConflictHistoryDays        ConflictType = "history_days"
)

// Conflict is one detected problem in the stored ledger
type Conflict struct {
	Type        ConflictType
	Description string
	Dates       []string // dates involved, if any
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

func (vr *ValidationResult) add(t ConflictType, dates []string, format string, args ...any) {
	vr.Conflicts = append(vr.Conflicts, Conflict{
		Type:        t,
		Description: fmt.Sprintf(format, args...),
		Dates:       dates,
	})
}

// StreakState checks the stored ledger for states no sequence of check-ins and resets
// could have produced.
func StreakState(state models.StreakState, history []models.StreakHistoryEntry) ValidationResult {
	var vr ValidationResult

	if state.StreakDays < 0 {
		vr.add(ConflictNegativeStreak, nil, "streak is negative (%d)", state.StreakDays)
	}
	if state.LongestStreak < state.StreakDays {
		vr.add(ConflictLongestBelowStreak, nil, "longest streak %d is below current streak %d", state.LongestStreak, state.StreakDays)
	}

	checkDates(&vr, "check-in", state.CheckInDates)
	checkDates(&vr, "failed", state.FailedDates)

	if state.LastCheckInDate != "" {
		if !utils.ValidateDateFormat(state.LastCheckInDate) {
			vr.add(ConflictInvalidDate, []string{state.LastCheckInDate}, "last check-in date %q is not YYYY-MM-DD", state.LastCheckInDate)
		} else if !contains(state.CheckInDates, state.LastCheckInDate) {
			vr.add(ConflictLastCheckInAbsent, []string{state.LastCheckInDate}, "last check-in %s is missing from the check-in history", state.LastCheckInDate)
		}
	}

	if state.StreakDays > len(state.CheckInDates) {
		vr.add(ConflictStreakExceedsDays, nil, "streak %d exceeds the %d recorded check-ins", state.StreakDays, len(state.CheckInDates))
	}

	for i, h := range history {
		if h.Days <= 0 {
			vr.add(ConflictHistoryDays, nil, "history entry %d has non-positive length %d", i, h.Days)
		}
		if h.EndDate.Before(h.StartDate) {
			vr.add(ConflictHistoryDays, nil, "history entry %d ends before it starts", i)
		}
	}

	return vr
}

func checkDates(vr *ValidationResult, label string, dates []string) {
	seen := make(map[string]bool, len(dates))
	var dupes, invalid []string
	for _, d := range dates {
		if !utils.ValidateDateFormat(d) {
			invalid = append(invalid, d)
			continue
		}
		if seen[d] && !contains(dupes, d) {
			dupes = append(dupes, d)
		}
		seen[d] = true
	}
	if len(invalid) > 0 {
		vr.add(ConflictInvalidDate, invalid, "%d %s date(s) are not YYYY-MM-DD", len(invalid), label)
	}
	if len(dupes) > 0 {
		sort.Strings(dupes)
		vr.add(ConflictDuplicateDate, dupes, "%s dates recorded more than once: %v", label, dupes)
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
