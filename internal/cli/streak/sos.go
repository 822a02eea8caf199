package streak

import (
	"fmt"
	"strings"

	"github.com/julianstephens/streakguard/internal/cli"
	"github.com/julianstephens/streakguard/internal/constants"
)

type SOSCmd struct{}

func (c *SOSCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireOnboarded(); err != nil {
		return err
	}

	res, err := ctx.Tracker.TriggerSOS()
	if err != nil {
		return err
	}

	fmt.Println(cli.TitleStyle.Render("🆘 You are not alone."))
	fmt.Println(res.Message)
	fmt.Println()
	fmt.Println("Breathe in for 4 seconds, hold for 4, breathe out for 4.")
	fmt.Println("The craving will pass. Write it down with 'streakguard note'.")
	fmt.Println(cli.MutedStyle.Render(fmt.Sprintf("SOS moments overcome: %d", res.Count)))
	return nil
}

type NoteCmd struct {
	Text []string `arg:"" optional:"" help:"What triggered the craving. Omit to list saved notes."`
}

func (c *NoteCmd) Run(ctx *cli.Context) error {
	if len(c.Text) == 0 {
		notes := ctx.Tracker.Ledger().CravingNotes()
		if len(notes) == 0 {
			fmt.Println("No craving notes yet.")
			return nil
		}
		for _, n := range notes {
			fmt.Printf("%s  %s\n", cli.MutedStyle.Render(n.Date.Format(constants.DisplayFormat)), n.Note)
		}
		return nil
	}

	if err := ctx.Tracker.SaveCravingNote(strings.Join(c.Text, " ")); err != nil {
		return err
	}
	fmt.Println(cli.SuccessStyle.Render("✓ Note saved."))
	return nil
}
