// Package stats derives read-only statistics from the streak ledger: the check-in
// calendar, savings, milestone progress and achievement badges.
package stats

import (
	"time"

	"github.com/julianstephens/streakguard/internal/constants"
	"github.com/julianstephens/streakguard/internal/models"
	"github.com/julianstephens/streakguard/internal/utils"
)

// DayStatus classifies one calendar cell.
type DayStatus string

const (
	DayCheckedIn     DayStatus = "checked-in"
	DayFailed        DayStatus = "failed"
	DayNotYetStarted DayStatus = "not-yet-started"
	DayFuture        DayStatus = "future"
	DayNoData        DayStatus = "no-data"
)

// Symbol returns the single-glyph rendering used by the CLI calendar.
func (s DayStatus) Symbol() string {
	switch s {
	case DayCheckedIn:
		return "✅"
	case DayFailed:
		return "❌"
	case DayNotYetStarted:
		return "⬜"
	case DayFuture:
		return "··"
	default:
		return "▫️"
	}
}

// CalendarDay is one cell of the calendar grid.
type CalendarDay struct {
	Date     string    `json:"date"`
	Weekday  string    `json:"weekday"`
	Status   DayStatus `json:"status"`
	IsToday  bool      `json:"isToday,omitempty"`
	InWindow bool      `json:"inWindow"`
}

// ReconstructCalendar lays out whole Monday-to-Sunday weeks covering the trailing
// windowDays ending at today. A non-positive window uses the default.
func ReconstructCalendar(state models.StreakState, today time.Time, windowDays int) []CalendarDay {
	if windowDays <= 0 {
		windowDays = constants.DefaultCalendarWindowDays
	}

	day := utils.StartOfDay(today)
	windowStart := day.AddDate(0, 0, -(windowDays - 1))
	gridStart := windowStart.AddDate(0, 0, -mondayOffset(windowStart))
	gridEnd := day.AddDate(0, 0, 6-mondayOffset(day))

	var started time.Time
	if !state.StartDate.IsZero() {
		started = utils.StartOfDay(state.StartDate.In(today.Location()))
	}

	checked := toSet(state.CheckInDates)
	failed := toSet(state.FailedDates)

	var out []CalendarDay
	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		date := utils.DateString(d)
		cell := CalendarDay{
			Date:     date,
			Weekday:  d.Weekday().String()[:3],
			IsToday:  d.Equal(day),
			InWindow: !d.Before(windowStart) && !d.After(day),
		}

		switch {
		case d.After(day):
			cell.Status = DayFuture
		case d.Before(windowStart):
			cell.Status = DayNoData
		case failed[date]:
			cell.Status = DayFailed
		case checked[date]:
			cell.Status = DayCheckedIn
		case !started.IsZero() && d.Before(started):
			cell.Status = DayNotYetStarted
		default:
			cell.Status = DayNoData
		}
		out = append(out, cell)
	}
	return out
}

// Weeks splits a calendar into rows of seven days.
func Weeks(days []CalendarDay) [][]CalendarDay {
	var rows [][]CalendarDay
	for i := 0; i < len(days); i += 7 {
		rows = append(rows, days[i:min(i+7, len(days))])
	}
	return rows
}

// mondayOffset is the number of days since the most recent Monday.
func mondayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func toSet(dates []string) map[string]bool {
	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}
	return set
}
