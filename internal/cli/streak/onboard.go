package streak

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/streakguard/internal/cli"
	"github.com/julianstephens/streakguard/internal/companion"
	"github.com/julianstephens/streakguard/internal/models"
	"github.com/julianstephens/streakguard/internal/validation"
)

type OnboardCmd struct {
	Companion string `help:"Companion kind (plant, cat, dog, bird, dragon, flame)."`
	Name      string `help:"Name for your companion."`
	Addiction string `help:"What you are quitting (for example smoking, gaming or custom)."`
	Custom    string `help:"Description when --addiction=custom."`
}

func (c *OnboardCmd) Run(ctx *cli.Context) error {
	if ctx.Tracker.IsOnboarded() {
		return errors.New("already onboarded; use 'streakguard companion' or 'streakguard addiction' to change your setup")
	}

	p := models.Profile{
		CompanionKind:   models.CompanionKind(c.Companion),
		CompanionName:   c.Name,
		AddictionKind:   models.AddictionKind(c.Addiction),
		AddictionCustom: c.Custom,
	}
	if c.Companion == "" || c.Name == "" || c.Addiction == "" {
		if err := runOnboardForm(&p); err != nil {
			return err
		}
	}

	if err := ctx.Tracker.Onboard(p); err != nil {
		return err
	}

	view := ctx.Tracker.CurrentState()
	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%s %s joins you!", view.Stage.Visual, view.CompanionName)))
	fmt.Printf("Tracking: %s. Your streak starts today.\n", view.Profile.AddictionName())
	fmt.Println(cli.MutedStyle.Render("Check in once a day with 'streakguard checkin'."))
	return nil
}

func runOnboardForm(p *models.Profile) error {
	companionOpts := make([]huh.Option[models.CompanionKind], 0, len(models.CompanionKinds))
	for _, k := range models.CompanionKinds {
		label := fmt.Sprintf("%s %s", companion.Milestones(k)[0].Visual, k)
		companionOpts = append(companionOpts, huh.NewOption(label, k))
	}

	addictionOpts := make([]huh.Option[models.AddictionKind], 0, len(models.AddictionKinds)+1)
	for _, k := range models.AddictionKinds {
		addictionOpts = append(addictionOpts, huh.NewOption(models.Profile{AddictionKind: k}.AddictionName(), k))
	}
	addictionOpts = append(addictionOpts, huh.NewOption("Something else", models.AddictionCustom))

	if p.CompanionKind == "" {
		p.CompanionKind = models.CompanionPlant
	}
	if p.AddictionKind == "" {
		p.AddictionKind = models.AddictionSmoking
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.CompanionKind]().
				Title("Choose your companion").
				Options(companionOpts...).
				Value(&p.CompanionKind),
			huh.NewInput().
				Title("Give it a name").
				Validate(func(s string) error {
					_, err := validation.CompanionName(s)
					return err
				}).
				Value(&p.CompanionName),
		),
		huh.NewGroup(
			huh.NewSelect[models.AddictionKind]().
				Title("What are you quitting?").
				Options(addictionOpts...).
				Value(&p.AddictionKind),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Describe it").
				Validate(func(s string) error {
					_, _, err := validation.Addiction(string(models.AddictionCustom), s)
					return err
				}).
				Value(&p.AddictionCustom),
		).WithHideFunc(func() bool { return p.AddictionKind != models.AddictionCustom }),
	)
	return form.Run()
}
