package streak

import (
	"fmt"

	"github.com/julianstephens/streakguard/internal/cli"
	"github.com/julianstephens/streakguard/internal/companion"
	"github.com/julianstephens/streakguard/internal/stats"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireOnboarded(); err != nil {
		return err
	}

	v := ctx.Tracker.CurrentState()
	hour := ctx.Tracker.Ledger().Now().Hour()

	fmt.Println(cli.MutedStyle.Render(companion.Greeting(hour)))
	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%s %s · %s", v.Stage.Visual, v.CompanionName, v.Stage.Name)))
	fmt.Printf("Streak:   %d day(s) free from %s\n", v.Streak, v.Profile.AddictionName())
	fmt.Printf("Longest:  %d day(s)\n", v.LongestStreak)
	if v.CheckedInToday {
		fmt.Println(cli.SuccessStyle.Render("Today:    checked in ✓"))
	} else {
		fmt.Println(cli.WarningStyle.Render("Today:    not checked in yet"))
	}
	fmt.Println()
	fmt.Println(v.EvolutionText)
	fmt.Println(renderProgress(v))
	fmt.Println(stats.ProgressText(v.Progress, v.CompanionName))
	fmt.Println()
	fmt.Println(v.Message)

	return showCelebration(ctx.Tracker, v.Celebration)
}
