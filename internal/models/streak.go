package models

import "time"

// StreakState is the canonical streak ledger.
type StreakState struct {
	StartDate       time.Time `json:"startDate"`       // reset whenever the streak resets
	StreakDays      int       `json:"streakDays"`      // consecutive check-ins since StartDate
	LastCheckInDate string    `json:"lastCheckInDate"` // YYYY-MM-DD, empty before the first check-in
	LongestStreak   int       `json:"longestStreak"`   // high-water mark
	CheckInDates    []string  `json:"dailyCheckIns"`   // distinct YYYY-MM-DD dates
	FailedDates     []string  `json:"failedDates"`     // distinct YYYY-MM-DD dates of resets
}

// StreakHistoryEntry archives a streak that ended in a reset.
type StreakHistoryEntry struct {
	StartDate time.Time `json:"startDate" yaml:"startDate"`
	EndDate   time.Time `json:"endDate" yaml:"endDate"`
	Days      int       `json:"days" yaml:"days"`
}

// SOSEvent records one use of the SOS flow.
type SOSEvent struct {
	ID      string    `json:"id,omitempty"`
	Date    time.Time `json:"date"`
	Trigger *string   `json:"trigger"` // reserved, always nil for now
}

// CravingNote is a free-form note written during a craving.
type CravingNote struct {
	Date time.Time `json:"date" yaml:"date"`
	Note string    `json:"note" yaml:"note"`
}
