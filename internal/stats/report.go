package stats

import (
	"time"

	"github.com/julianstephens/streakguard/internal/models"
)

// Input is everything the aggregator reads from the ledger.
type Input struct {
	Profile    models.Profile
	State      models.StreakState
	History    []models.StreakHistoryEntry
	SOSCount   int
	DailyCost  float64
	Today      time.Time
	WindowDays int
}

// Report is the full statistics page.
type Report struct {
	CurrentStreak   int           `json:"currentStreak"`
	LongestStreak   int           `json:"longestStreak"`
	StartDate       time.Time     `json:"startDate"`
	SOSCount        int           `json:"sosCount"`
	TotalDaysClean  int           `json:"totalDaysClean"`
	Savings         Savings       `json:"savings"`
	SavingsExamples []string      `json:"savingsExamples,omitempty"`
	Progress        Progress      `json:"progress"`
	Achievements    []Badge       `json:"achievements"`
	Calendar        []CalendarDay `json:"calendar"`
}

// Build computes every statistic in one pass.
func Build(in Input) Report {
	r := Report{
		CurrentStreak:  in.State.StreakDays,
		LongestStreak:  max(in.State.LongestStreak, in.State.StreakDays),
		StartDate:      in.State.StartDate,
		SOSCount:       in.SOSCount,
		TotalDaysClean: TotalDaysClean(in.State.StreakDays, in.History),
		Savings:        ComputeSavings(in.DailyCost, in.State.StreakDays),
		Progress:       ComputeMilestoneProgress(in.Profile.CompanionKind, in.State.StreakDays),
		Achievements:   ComputeAchievements(in.State.StreakDays, in.SOSCount),
		Calendar:       ReconstructCalendar(in.State, in.Today, in.WindowDays),
	}
	if r.Savings.Visible {
		r.SavingsExamples = SavingsExamples(r.Savings.Amount)
	}
	return r
}
