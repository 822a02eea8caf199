package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/streakguard/internal/cli"
	"github.com/julianstephens/streakguard/internal/cli/streak"
	"github.com/julianstephens/streakguard/internal/tui"
)

type TuiCmd struct {
	SkipOnboarding bool `help:"Open the dashboard even when no companion has been chosen yet."`
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if !ctx.Tracker.IsOnboarded() && !c.SkipOnboarding {
		// First launch: pick a companion before the dashboard opens
		if err := (&streak.OnboardCmd{}).Run(ctx); err != nil {
			return err
		}
	}

	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.Tracker), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard exited with an error: %w", err)
	}
	return nil
}
