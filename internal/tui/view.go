package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/streakguard/internal/companion"
	"github.com/julianstephens/streakguard/internal/stats"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := newStyles(m.isDark())

	var content string
	switch {
	case !m.tracker.IsOnboarded():
		content = m.viewNotOnboarded(s)
	case m.state == stateCelebration:
		content = m.viewCelebration(s)
	case m.state == stateSOS:
		content = m.viewSOS(s)
	case m.state == stateConfirmRelapse && m.form != nil:
		content = m.form.View()
	default:
		content = m.viewHome(s)
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		m.viewStatus(s),
		m.help.View(m.keys),
	)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, docStyle.Render(ui))
	}
	return docStyle.Render(ui)
}

func (m Model) viewNotOnboarded(s styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		s.title.Render("Welcome to streakguard"),
		"",
		s.text.Render("No companion yet. Run 'streakguard onboard' to choose one."),
	)
}

func (m Model) viewHome(s styles) string {
	v := m.view

	header := s.title.Render(fmt.Sprintf("%s  %s is with you.", companion.Greeting(m.tracker.Ledger().Now().Hour()), v.CompanionName))

	card := s.companion.Render(lipgloss.JoinVertical(lipgloss.Center,
		v.Stage.Visual,
		v.Stage.Name,
		"",
		fmt.Sprintf("🔥 %d day streak", v.Streak),
	))

	checked := warningStyle.Render("Not checked in today")
	if v.CheckedInToday {
		checked = successStyle.Render("✓ Checked in today")
	}

	lines := []string{
		header,
		card,
		checked,
		s.text.Render(v.EvolutionText),
		"",
		s.muted.Render(stats.ProgressText(v.Progress, v.CompanionName)),
		fmt.Sprintf("%s %s", m.progress.ViewAs(v.Progress.Percent/100), v.Progress.Label),
		"",
		s.text.Render(v.Message),
		s.muted.Render(fmt.Sprintf("Tracking: %s · Longest streak: %d", v.Profile.AddictionName(), v.LongestStreak)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewCelebration(s styles) string {
	c := m.view.Celebration
	if c == nil {
		return m.viewHome(s)
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		s.title.Render("🎉 "+c.Headline),
		"",
		fmt.Sprintf("%s %s  →  %s %s", c.From.Visual, c.From.Name, c.To.Visual, c.To.Name),
		"",
		s.text.Render(c.Subline),
		"",
		s.muted.Render("press enter to continue"),
	)
	return s.overlay.Render(body)
}

func (m Model) viewSOS(s styles) string {
	steps := []string{
		"Breathe in for 4 seconds.",
		"Hold for 4 seconds.",
		"Breathe out for 4 seconds.",
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		s.title.Render("🆘 You are not alone."),
		"",
		s.text.Render(m.sosMessage),
		"",
		s.muted.Render(strings.Join(steps, "\n")),
		"",
		s.muted.Render("The craving will pass. Press enter when you are ready."),
	)
}

func (m Model) viewStatus(s styles) string {
	if m.err != nil {
		return "\n" + dangerStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.status == "" {
		return ""
	}
	return "\n" + s.muted.Render(m.status)
}
