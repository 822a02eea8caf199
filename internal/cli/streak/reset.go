package streak

import (
	"fmt"

	"github.com/julianstephens/streakguard/internal/cli"
	"github.com/julianstephens/streakguard/internal/tracker"
)

// RelapseCmd ends the current streak after a confirmation.
type RelapseCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *RelapseCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireOnboarded(); err != nil {
		return err
	}

	streak := ctx.Tracker.CurrentState().Streak
	res, done, err := confirmAndReset(ctx, tracker.ResetRelapse, c.Yes,
		"Record a relapse?",
		fmt.Sprintf("Your %d-day streak will be saved to history and start over.", streak))
	if err != nil || !done {
		return err
	}

	if res.PreviousDays > 0 {
		fmt.Printf("Streak of %d day(s) saved to history.\n", res.PreviousDays)
	}
	fmt.Println(res.Message)
	return nil
}

// ResetAllCmd deletes every piece of tracked data after a confirmation.
type ResetAllCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetAllCmd) Run(ctx *cli.Context) error {
	res, done, err := confirmAndReset(ctx, tracker.ResetAll, c.Yes,
		"Delete ALL data?",
		"Profile, streaks, history, notes and settings are erased. A safety dump is written first.")
	if err != nil || !done {
		return err
	}

	if res.SnapshotPath != "" {
		fmt.Printf("Safety dump written to: %s\n", res.SnapshotPath)
	}
	fmt.Println(cli.DangerStyle.Render("All data has been reset."))
	return nil
}

// confirm is the terminal prompt used before destructive actions.
var confirm = cli.Confirm

// confirmAndReset asks twice unless skip is set, then requests and redeems the token in one
// step so time spent answering never counts against its expiry.
func confirmAndReset(ctx *cli.Context, action tracker.ResetAction, skip bool, title, description string) (tracker.ResetResult, bool, error) {
	if !skip {
		for _, q := range []string{title, "Are you sure? This cannot be undone."} {
			ok, err := confirm(q, description)
			if err != nil {
				return tracker.ResetResult{}, false, err
			}
			if !ok {
				fmt.Println("Cancelled.")
				return tracker.ResetResult{}, false, nil
			}
		}
	}

	tok, err := ctx.Tracker.RequestReset(action)
	if err != nil {
		return tracker.ResetResult{}, false, err
	}
	res, err := ctx.Tracker.ConfirmReset(tok.ID)
	if err != nil {
		return tracker.ResetResult{}, false, err
	}
	return res, true, nil
}
