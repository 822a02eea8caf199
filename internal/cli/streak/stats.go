package streak

import (
	"fmt"

	"github.com/julianstephens/streakguard/internal/cli"
	"github.com/julianstephens/streakguard/internal/utils"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireOnboarded(); err != nil {
		return err
	}

	r := ctx.Tracker.Stats()

	fmt.Println(cli.TitleStyle.Render("📊 Statistics"))
	fmt.Printf("Current streak:   %d\n", r.CurrentStreak)
	fmt.Printf("Longest streak:   %d\n", r.LongestStreak)
	fmt.Printf("Total days clean: %d\n", r.TotalDaysClean)
	fmt.Printf("SOS moments:      %d\n", r.SOSCount)
	if !r.StartDate.IsZero() {
		fmt.Printf("Started:          %s\n", utils.DateString(r.StartDate))
	}

	if r.Savings.Visible {
		fmt.Println()
		fmt.Printf("💰 Saved: %s over %d day(s)\n", r.Savings.Total, r.Savings.Days)
		for _, ex := range r.SavingsExamples {
			fmt.Printf("   %s\n", ex)
		}
	}

	fmt.Println()
	fmt.Println(cli.TitleStyle.Render("🏅 Achievements"))
	if len(r.Achievements) == 0 {
		fmt.Println(cli.MutedStyle.Render("None yet. Your first badge comes at 3 days."))
	}
	for _, a := range r.Achievements {
		fmt.Printf("%s %s (%s)\n", a.Visual, a.Name, a.Description)
	}

	fmt.Println()
	fmt.Print(RenderCalendar(r.Calendar))
	return nil
}
