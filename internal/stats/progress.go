package stats

import (
	"fmt"

	"github.com/julianstephens/streakguard/internal/companion"
	"github.com/julianstephens/streakguard/internal/models"
)

// Progress is how far the companion is toward its next stage.
type Progress struct {
	Percent   float64              `json:"percent"`
	Label     string               `json:"label"`
	DaysUntil int                  `json:"daysUntil"`
	Next      *companion.Milestone `json:"next,omitempty"` // nil at max evolution
}

// ComputeMilestoneProgress measures streak between the reached stage and the next one.
func ComputeMilestoneProgress(kind models.CompanionKind, streak int) Progress {
	next, ok := companion.NextMilestone(kind, streak)
	if !ok {
		return Progress{Percent: 100, Label: fmt.Sprintf("%d/%d", streak, streak)}
	}

	prev := companion.CurrentState(kind, streak).Days
	pct := float64(streak-prev) / float64(next.Days-prev) * 100
	pct = max(0, min(100, pct))

	return Progress{
		Percent:   pct,
		Label:     fmt.Sprintf("%d/%d", streak, next.Days),
		DaysUntil: next.Days - streak,
		Next:      &next,
	}
}

// ProgressText is the sentence shown above the progress bar.
func ProgressText(p Progress, name string) string {
	switch {
	case p.Next == nil:
		return "You reached max evolution! Keep it up! 🌟"
	case p.DaysUntil == 1:
		return fmt.Sprintf("In 1 day %s will evolve! 🎉", name)
	default:
		return fmt.Sprintf("In %d days %s will evolve! 🎉", p.DaysUntil, name)
	}
}
