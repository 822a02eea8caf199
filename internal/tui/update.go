package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/streakguard/internal/logger"
	"github.com/julianstephens/streakguard/internal/tracker"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		// Auto theme and the date can change while the dashboard is open
		m.refresh()
		return m, tick()

	case relapseConfirmedMsg:
		m.relapse()
		return m, nil
	}

	if m.state == stateConfirmRelapse {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.Matches(keyMsg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case stateCelebration:
		if key.Matches(keyMsg, m.keys.Dismiss) {
			m.acknowledge()
		}
		return m, nil
	case stateSOS:
		if key.Matches(keyMsg, m.keys.Dismiss) {
			m.state = stateHome
			m.refresh()
		}
		return m, nil
	}

	if !m.tracker.IsOnboarded() {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(keyMsg, m.keys.CheckIn):
		return m, m.checkIn()
	case key.Matches(keyMsg, m.keys.SOS):
		m.sos()
	case key.Matches(keyMsg, m.keys.Theme):
		m.cycleTheme()
	case key.Matches(keyMsg, m.keys.Relapse):
		m.relapseConfirmed = false
		m.form = newRelapseForm(&m.relapseConfirmed, m.view.Streak)
		m.state = stateConfirmRelapse
		return m, m.form.Init()
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = stateHome
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.state = stateHome
		m.form = nil
		if m.relapseConfirmed {
			return m, func() tea.Msg { return relapseConfirmedMsg{} }
		}
		m.status = "Relapse cancelled."
		return m, nil
	case huh.StateAborted:
		m.state = stateHome
		m.form = nil
		return m, nil
	}
	return m, cmd
}

func newRelapseForm(confirmed *bool, streak int) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Record a relapse?").
				Description(fmt.Sprintf("Your %d day streak will end and be kept in your history.", streak)).
				Affirmative("Yes, start over").
				Negative("No").
				Value(confirmed),
		),
	)
}

func (m *Model) checkIn() tea.Cmd {
	res, err := m.tracker.CheckIn()
	if err != nil {
		m.err = err
		return nil
	}
	m.err = nil

	if res.AlreadyCheckedIn {
		m.status = fmt.Sprintf("Already checked in today. Streak: %d day(s).", res.Streak)
		m.refresh()
		return nil
	}

	m.status = fmt.Sprintf("✓ Checked in! Streak: %d day(s). %s", res.Streak, res.Message)
	m.refresh()
	if m.view.Preferences.SoundsEnabled {
		return bell
	}
	return nil
}

func (m *Model) sos() {
	res, err := m.tracker.TriggerSOS()
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.sosMessage = res.Message
	m.status = fmt.Sprintf("SOS moments overcome: %d", res.Count)
	m.state = stateSOS
}

// relapse goes through the same token handshake as the CLI.
func (m *Model) relapse() {
	tok, err := m.tracker.RequestReset(tracker.ResetRelapse)
	if err != nil {
		m.err = err
		return
	}
	res, err := m.tracker.ConfirmReset(tok.ID)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = fmt.Sprintf("Streak of %d day(s) saved to history. %s", res.PreviousDays, res.Message)
	m.refresh()
}

func (m *Model) cycleTheme() {
	prefs := m.view.Preferences
	prefs.Theme = prefs.Theme.Next()
	if err := m.tracker.SavePreferences(prefs); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = fmt.Sprintf("Theme: %s", prefs.Theme)
	m.refresh()
}

func (m *Model) acknowledge() {
	if c := m.view.Celebration; c != nil {
		if err := m.tracker.AcknowledgeEvolution(c.Threshold); err != nil {
			logger.Warn("Failed to acknowledge evolution", "threshold", c.Threshold, "error", err)
			m.err = err
		}
	}
	m.state = stateHome
	m.refresh()
}

func bell() tea.Msg {
	fmt.Fprint(os.Stdout, "\a")
	return nil
}
