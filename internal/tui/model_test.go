package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/streakguard/internal/ledger"
	"github.com/julianstephens/streakguard/internal/models"
	"github.com/julianstephens/streakguard/internal/storage/memory"
	"github.com/julianstephens/streakguard/internal/tracker"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func setupTestModel(t *testing.T, kind models.CompanionKind) (*tracker.Tracker, *testClock) {
	t.Helper()
	store := memory.New()
	require.NoError(t, store.Init())

	clk := &testClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	tr := tracker.New(ledger.New(store, clk.Now))
	if kind != "" {
		require.NoError(t, tr.Onboard(models.Profile{
			CompanionKind: kind,
			CompanionName: "Pip",
			AddictionKind: models.AddictionSmoking,
		}))
	}
	return tr, clk
}

func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok, "Update should return a tui.Model")
	return updated, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNotOnboarded(t *testing.T) {
	tr, _ := setupTestModel(t, "")
	m := NewModel(tr)

	assert.Contains(t, m.View(), "streakguard onboard")

	m, _ = press(t, m, runes("c"))
	assert.NoError(t, m.err)
	assert.Equal(t, 0, tr.Ledger().CurrentStreak())
}

func TestCheckInKey(t *testing.T) {
	tr, _ := setupTestModel(t, models.CompanionPlant)
	m := NewModel(tr)
	assert.Contains(t, m.View(), "Not checked in today")

	m, _ = press(t, m, runes("c"))
	require.NoError(t, m.err)
	assert.Equal(t, 1, tr.Ledger().CurrentStreak())
	assert.Contains(t, m.status, "Checked in")
	assert.True(t, m.view.CheckedInToday)
	assert.Contains(t, m.View(), "Checked in today")

	m, _ = press(t, m, runes("c"))
	assert.Equal(t, 1, tr.Ledger().CurrentStreak())
	assert.Contains(t, m.status, "Already checked in")
}

func TestCheckInBell(t *testing.T) {
	tr, _ := setupTestModel(t, models.CompanionCat)
	prefs := tr.Ledger().Preferences()
	prefs.SoundsEnabled = false
	require.NoError(t, tr.SavePreferences(prefs))

	m := NewModel(tr)
	_, cmd := press(t, m, runes("c"))
	assert.Nil(t, cmd, "no bell when sounds are off")

	tr2, _ := setupTestModel(t, models.CompanionCat)
	prefs = tr2.Ledger().Preferences()
	prefs.SoundsEnabled = true
	require.NoError(t, tr2.SavePreferences(prefs))

	m = NewModel(tr2)
	_, cmd = press(t, m, runes("c"))
	assert.NotNil(t, cmd, "bell when sounds are on")
}

func TestSOSKey(t *testing.T) {
	tr, _ := setupTestModel(t, models.CompanionDog)
	m := NewModel(tr)

	m, _ = press(t, m, runes("s"))
	assert.Equal(t, stateSOS, m.state)
	assert.Equal(t, 1, tr.Ledger().SOSCount())
	assert.Contains(t, m.View(), "You are not alone")

	// Actions are ignored until the SOS screen is dismissed
	m, _ = press(t, m, runes("c"))
	assert.Equal(t, 0, tr.Ledger().CurrentStreak())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stateHome, m.state)
}

func TestThemeKey(t *testing.T) {
	tr, _ := setupTestModel(t, models.CompanionBird)
	m := NewModel(tr)
	start := tr.Ledger().Preferences().Theme

	m, _ = press(t, m, runes("t"))
	require.NoError(t, m.err)
	assert.Equal(t, start.Next(), tr.Ledger().Preferences().Theme)
	assert.Equal(t, start.Next(), m.view.Preferences.Theme)
}

func TestRelapseFlow(t *testing.T) {
	tr, clk := setupTestModel(t, models.CompanionFlame)
	for i := 0; i < 2; i++ {
		_, err := tr.CheckIn()
		require.NoError(t, err)
		clk.now = clk.now.AddDate(0, 0, 1)
	}
	m := NewModel(tr)

	m, cmd := press(t, m, runes("r"))
	assert.Equal(t, stateConfirmRelapse, m.state)
	assert.NotNil(t, m.form)
	assert.NotNil(t, cmd)

	// Escape leaves the streak alone
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateHome, m.state)
	assert.Equal(t, 2, tr.Ledger().CurrentStreak())

	m, _ = press(t, m, relapseConfirmedMsg{})
	require.NoError(t, m.err)
	assert.Equal(t, 0, tr.Ledger().CurrentStreak())
	require.Len(t, tr.Ledger().StreakHistory(), 1)
	assert.Equal(t, 2, tr.Ledger().StreakHistory()[0].Days)
	assert.Contains(t, m.status, "Streak of 2 day(s)")
}

func TestCelebrationOverlay(t *testing.T) {
	tr, clk := setupTestModel(t, models.CompanionDragon)
	for day := 1; day <= 7; day++ {
		_, err := tr.CheckIn()
		require.NoError(t, err)
		if day < 7 {
			clk.now = clk.now.AddDate(0, 0, 1)
		}
	}

	m := NewModel(tr)
	require.Equal(t, stateCelebration, m.state)
	require.NotNil(t, m.view.Celebration)
	assert.Equal(t, 7, m.view.Celebration.Threshold)
	assert.True(t, strings.Contains(m.View(), "Hatchling"))

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stateHome, m.state)
	assert.True(t, tr.Ledger().HasSeenEvolution(7))

	again := NewModel(tr)
	assert.Equal(t, stateHome, again.state)
}

func TestQuitKey(t *testing.T) {
	tr, _ := setupTestModel(t, models.CompanionPlant)
	m := NewModel(tr)

	m, cmd := press(t, m, runes("q"))
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestTickRefreshes(t *testing.T) {
	tr, clk := setupTestModel(t, models.CompanionPlant)
	m := NewModel(tr)
	m, _ = press(t, m, runes("c"))
	assert.True(t, m.view.CheckedInToday)

	clk.now = clk.now.AddDate(0, 0, 1)
	m, cmd := press(t, m, tickMsg(clk.now))
	assert.NotNil(t, cmd)
	assert.False(t, m.view.CheckedInToday)
}
