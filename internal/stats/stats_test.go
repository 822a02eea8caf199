package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/streakguard/internal/models"
	"github.com/julianstephens/streakguard/internal/utils"
)

// Wednesday
var fixtureToday = time.Date(2024, 5, 15, 18, 0, 0, 0, time.UTC)

func daysAgo(n int) string {
	return utils.DateString(fixtureToday.AddDate(0, 0, -n))
}

func findDay(t *testing.T, days []CalendarDay, date string) CalendarDay {
	t.Helper()
	for _, d := range days {
		if d.Date == date {
			return d
		}
	}
	t.Fatalf("date %s not in calendar", date)
	return CalendarDay{}
}

func TestReconstructCalendarFixture(t *testing.T) {
	state := models.StreakState{
		StartDate:    fixtureToday.AddDate(0, 0, -5),
		CheckInDates: []string{daysAgo(2)},
		FailedDates:  []string{daysAgo(1)},
	}

	days := ReconstructCalendar(state, fixtureToday, 30)

	tests := []struct {
		date string
		want DayStatus
	}{
		{daysAgo(6), DayNotYetStarted},
		{daysAgo(5), DayNoData},
		{daysAgo(3), DayNoData},
		{daysAgo(2), DayCheckedIn},
		{daysAgo(1), DayFailed},
		{daysAgo(0), DayNoData},
		{daysAgo(-1), DayFuture},
		{daysAgo(29), DayNotYetStarted},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, findDay(t, days, tt.date).Status)
		})
	}

	assert.True(t, findDay(t, days, daysAgo(0)).IsToday)
}

func TestReconstructCalendarShape(t *testing.T) {
	for _, window := range []int{1, 7, 30, 45} {
		days := ReconstructCalendar(models.StreakState{}, fixtureToday, window)
		require.NotEmpty(t, days)
		assert.Zero(t, len(days)%7, "window %d: whole weeks", window)
		assert.GreaterOrEqual(t, len(days), window)
		assert.Equal(t, "Mon", days[0].Weekday)
		assert.Equal(t, "Sun", days[len(days)-1].Weekday)

		inWindow := 0
		for _, d := range days {
			if d.InWindow {
				inWindow++
			}
		}
		assert.Equal(t, window, inWindow)
	}
}

func TestReconstructCalendarOutsideWindowIsNoData(t *testing.T) {
	state := models.StreakState{
		StartDate:    fixtureToday.AddDate(0, 0, -60),
		CheckInDates: []string{daysAgo(30)},
		FailedDates:  []string{daysAgo(30), daysAgo(31)},
	}
	days := ReconstructCalendar(state, fixtureToday, 30)
	for _, d := range days {
		if !d.InWindow && d.Date < daysAgo(0) {
			assert.Equal(t, DayNoData, d.Status, d.Date)
		}
	}
}

func TestReconstructCalendarDefaultWindow(t *testing.T) {
	assert.Equal(t, ReconstructCalendar(models.StreakState{}, fixtureToday, 30),
		ReconstructCalendar(models.StreakState{}, fixtureToday, 0))
}

func TestWeeks(t *testing.T) {
	days := ReconstructCalendar(models.StreakState{}, fixtureToday, 30)
	rows := Weeks(days)
	for _, row := range rows {
		assert.Len(t, row, 7)
	}
	assert.Equal(t, len(days)/7, len(rows))
}

func TestComputeSavings(t *testing.T) {
	tests := []struct {
		name    string
		cost    float64
		streak  int
		total   string
		visible bool
	}{
		{"typical", 12.5, 10, "125.00", true},
		{"rounding", 3.333, 3, "10.00", true},
		{"zero streak", 5, 0, "0.00", true},
		{"no cost", 0, 10, "0.00", false},
		{"negative cost", -4, 10, "0.00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSavings(tt.cost, tt.streak)
			assert.Equal(t, tt.total, got.Total)
			assert.Equal(t, tt.visible, got.Visible)
		})
	}
	assert.InDelta(t, 125.0, ComputeSavings(12.5, 10).Amount, 1e-9)
}

func TestSavingsExamples(t *testing.T) {
	assert.Equal(t, []string{SavingsFallback}, SavingsExamples(9.99))
	assert.Equal(t, []string{"📚 2 books"}, SavingsExamples(10))
	got := SavingsExamples(600)
	require.Len(t, got, 3)
	assert.Equal(t, "✈️ A weekend away", got[2])
}

func TestComputeMilestoneProgress(t *testing.T) {
	tests := []struct {
		name    string
		kind    models.CompanionKind
		streak  int
		percent float64
		label   string
	}{
		{"start", models.CompanionPlant, 0, 0, "0/3"},
		{"one of three", models.CompanionPlant, 1, 100.0 / 3, "1/3"},
		{"just reached", models.CompanionPlant, 3, 0, "3/7"},
		{"mid month", models.CompanionPlant, 15, 8.0 / 23 * 100, "15/30"},
		{"max", models.CompanionPlant, 42, 100, "42/42"},
		{"dragon", models.CompanionDragon, 65, 50, "65/100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeMilestoneProgress(tt.kind, tt.streak)
			assert.InDelta(t, tt.percent, got.Percent, 1e-9)
			assert.Equal(t, tt.label, got.Label)
			assert.GreaterOrEqual(t, got.Percent, 0.0)
			assert.LessOrEqual(t, got.Percent, 100.0)
		})
	}

	p := ComputeMilestoneProgress(models.CompanionPlant, 2)
	assert.Equal(t, "In 1 day Fern will evolve! 🎉", ProgressText(p, "Fern"))
	assert.Contains(t, ProgressText(ComputeMilestoneProgress(models.CompanionPlant, 30), "Fern"), "max evolution")
}

func TestComputeAchievements(t *testing.T) {
	ids := func(bs []Badge) []string {
		out := []string{}
		for _, b := range bs {
			out = append(out, b.ID)
		}
		return out
	}

	assert.Empty(t, ComputeAchievements(2, 9))
	assert.Equal(t, []string{"first-steps", "one-week"}, ids(ComputeAchievements(7, 0)))
	assert.Equal(t, []string{"resilient"}, ids(ComputeAchievements(0, 10)))
	assert.Len(t, ComputeAchievements(365, 50), 7)

	prev := 0
	for s := 0; s <= 400; s++ {
		n := len(ComputeAchievements(s, 0))
		assert.GreaterOrEqual(t, n, prev)
		prev = n
	}
}

func TestTotalDaysClean(t *testing.T) {
	history := []models.StreakHistoryEntry{{Days: 4}, {Days: 10}}
	assert.Equal(t, 17, TotalDaysClean(3, history))
	assert.Equal(t, 0, TotalDaysClean(0, nil))
}

func TestBuild(t *testing.T) {
	r := Build(Input{
		Profile:   models.Profile{CompanionKind: models.CompanionFlame},
		State:     models.StreakState{StreakDays: 8, LongestStreak: 5, StartDate: fixtureToday.AddDate(0, 0, -8)},
		History:   []models.StreakHistoryEntry{{Days: 2}},
		SOSCount:  1,
		DailyCost: 2,
		Today:     fixtureToday,
	})
	assert.Equal(t, 8, r.LongestStreak)
	assert.Equal(t, 10, r.TotalDaysClean)
	assert.Equal(t, "16.00", r.Savings.Total)
	assert.Equal(t, []string{"📚 2 books"}, r.SavingsExamples)
	assert.Equal(t, "8/30", r.Progress.Label)
	assert.NotEmpty(t, r.Calendar)
}
