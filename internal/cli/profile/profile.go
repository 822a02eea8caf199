package profile

import (
	"fmt"

	"github.com/julianstephens/streakguard/internal/cli"
)

type CompanionRenameCmd struct {
	Name string `arg:"" help:"New companion name."`
}

func (c *CompanionRenameCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireOnboarded(); err != nil {
		return err
	}
	if err := ctx.Tracker.RenameCompanion(c.Name); err != nil {
		return err
	}
	fmt.Printf("✓ Your companion is now called %s.\n", ctx.Tracker.CurrentState().CompanionName)
	return nil
}

// CompanionChangeCmd swaps the companion kind; the streak carries over.
type CompanionChangeCmd struct {
	Kind string `arg:"" help:"plant, cat, dog, bird, dragon or flame."`
}

func (c *CompanionChangeCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireOnboarded(); err != nil {
		return err
	}
	if err := ctx.Tracker.ChangeCompanion(c.Kind); err != nil {
		return err
	}
	v := ctx.Tracker.CurrentState()
	fmt.Printf("✓ %s %s is now at stage %s.\n", v.Stage.Visual, v.CompanionName, v.Stage.Name)
	return nil
}

type AddictionSetCmd struct {
	Kind   string `arg:"" help:"Addiction kind, or custom."`
	Custom string `help:"Description when the kind is custom."`
}

func (c *AddictionSetCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireOnboarded(); err != nil {
		return err
	}
	if err := ctx.Tracker.ChangeAddiction(c.Kind, c.Custom); err != nil {
		return err
	}
	fmt.Printf("✓ Now tracking: %s.\n", ctx.Tracker.CurrentState().Profile.AddictionName())
	return nil
}

// CostSetCmd stores what the habit cost per day, for the savings estimate.
type CostSetCmd struct {
	Amount string `arg:"" help:"Daily cost, for example 12.50. Use 0 to hide savings."`
}

func (c *CostSetCmd) Run(ctx *cli.Context) error {
	cost, err := ctx.Tracker.SetDailyCost(c.Amount)
	if err != nil {
		return err
	}
	if cost == 0 {
		fmt.Println("✓ Daily cost cleared; savings are hidden.")
		return nil
	}
	fmt.Printf("✓ Daily cost set to %.2f.\n", cost)
	return nil
}
