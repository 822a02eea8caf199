package streak

import (
	"fmt"

	"github.com/julianstephens/streakguard/internal/cli"
)

type CheckInCmd struct{}

func (c *CheckInCmd) Run(ctx *cli.Context) error {
	res, err := ctx.Tracker.CheckIn()
	if err != nil {
		return err
	}

	if res.AlreadyCheckedIn {
		fmt.Println(cli.MutedStyle.Render(fmt.Sprintf("Already checked in today. Streak: %d day(s).", res.Streak)))
		return nil
	}

	if ctx.Tracker.CurrentState().Preferences.SoundsEnabled {
		fmt.Print("\a")
	}
	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Checked in! Streak: %d day(s)", res.Streak)))
	fmt.Println(res.Message)
	return showCelebration(ctx.Tracker, res.Celebration)
}
