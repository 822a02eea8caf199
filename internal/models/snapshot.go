package models

import "time"

// Snapshot is the user-facing backup document. Field order is the wire order.
type Snapshot struct {
	CompanionName string               `json:"companionName" yaml:"companionName"`
	CompanionType CompanionKind        `json:"companionType" yaml:"companionType"`
	AddictionType AddictionKind        `json:"addictionType" yaml:"addictionType"`
	AddictionName string               `json:"addictionName" yaml:"addictionName"`
	StartDate     time.Time            `json:"startDate" yaml:"startDate"`
	StreakDays    int                  `json:"streakDays" yaml:"streakDays"`
	LongestStreak int                  `json:"longestStreak" yaml:"longestStreak"`
	DailyCheckIns []string             `json:"dailyCheckIns" yaml:"dailyCheckIns"`
	FailedDates   []string             `json:"failedDates" yaml:"failedDates"`
	SOSCount      int                  `json:"sosCount" yaml:"sosCount"`
	DailyCost     float64              `json:"dailyCost" yaml:"dailyCost"`
	TotalSaved    string               `json:"totalSaved" yaml:"totalSaved"`
	StreakHistory []StreakHistoryEntry `json:"streakHistory" yaml:"streakHistory"`
	CravingNotes  []CravingNote        `json:"cravingNotes" yaml:"cravingNotes"`
	ExportDate    time.Time            `json:"exportDate" yaml:"exportDate"`
}
