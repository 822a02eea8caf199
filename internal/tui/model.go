// Package tui is the interactive dashboard: the companion, the streak and the daily
// actions on one screen.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/streakguard/internal/tracker"
)

type sessionState int

const (
	stateHome sessionState = iota
	stateCelebration
	stateSOS
	stateConfirmRelapse
)

const refreshInterval = time.Minute

type Model struct {
	tracker  *tracker.Tracker
	state    sessionState
	keys     KeyMap
	help     help.Model
	progress progress.Model
	view     tracker.View
	form     *huh.Form

	relapseConfirmed bool
	status           string // result line of the last action
	sosMessage       string
	err              error
	quitting         bool
	width            int
	height           int
}

func NewModel(t *tracker.Tracker) Model {
	m := Model{
		tracker:  t,
		state:    stateHome,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
	m.refresh()
	return m
}

type tickMsg time.Time

// relapseConfirmedMsg is sent once the relapse form was answered with yes.
type relapseConfirmedMsg struct{}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// refresh reloads the home view and raises a pending celebration over it.
func (m *Model) refresh() {
	m.view = m.tracker.CurrentState()
	if m.state == stateHome && m.view.Celebration != nil {
		m.state = stateCelebration
	}
}

func (m Model) isDark() bool {
	return m.view.Preferences.Theme.IsDark(m.tracker.Ledger().Now())
}
