package stats

import "github.com/julianstephens/streakguard/internal/models"

// Badge is an earned achievement.
type Badge struct {
	ID          string `json:"id"`
	Visual      string `json:"visual"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type badgeRule struct {
	Badge
	streak int
	sos    int
}

var badgeRules = []badgeRule{
	{Badge: Badge{ID: "first-steps", Visual: "🌱", Name: "First Steps", Description: "3 days"}, streak: 3},
	{Badge: Badge{ID: "one-week", Visual: "🔥", Name: "One Week", Description: "7 days"}, streak: 7},
	{Badge: Badge{ID: "one-month", Visual: "🌟", Name: "One Month", Description: "30 days"}, streak: 30},
	{Badge: Badge{ID: "centurion", Visual: "💯", Name: "Centurion", Description: "100 days"}, streak: 100},
	{Badge: Badge{ID: "one-year", Visual: "🏆", Name: "One Year", Description: "365 days"}, streak: 365},
	{Badge: Badge{ID: "resilient", Visual: "💪", Name: "Resilient", Description: "10 SOS overcome"}, sos: 10},
	{Badge: Badge{ID: "warrior", Visual: "🛡️", Name: "Warrior", Description: "50 SOS overcome"}, sos: 50},
}

// ComputeAchievements returns every badge earned at the given streak and SOS count.
// Rules are independent; each applies to exactly one of the two counters.
func ComputeAchievements(streak, sosCount int) []Badge {
	out := []Badge{}
	for _, r := range badgeRules {
		if (r.streak > 0 && streak >= r.streak) || (r.sos > 0 && sosCount >= r.sos) {
			out = append(out, r.Badge)
		}
	}
	return out
}

// TotalDaysClean sums the current streak and every archived one.
func TotalDaysClean(current int, history []models.StreakHistoryEntry) int {
	total := current
	for _, h := range history {
		total += h.Days
	}
	return total
}
