package snapshots

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/streakguard/internal/cli"
	"github.com/julianstephens/streakguard/internal/tracker"
)

type ExportCmd struct {
	Format string `help:"Output format." enum:"json,yaml" default:"json"`
	Output string `short:"o" help:"Write to this file instead of stdout."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireOnboarded(); err != nil {
		return err
	}

	doc, err := ctx.Tracker.ExportSnapshot(tracker.Format(c.Format))
	if err != nil {
		return err
	}

	if c.Output == "" {
		_, err := os.Stdout.Write(doc)
		return err
	}
	if err := os.WriteFile(c.Output, doc, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Fprintf(os.Stderr, "✓ Exported to %s\n", c.Output)
	return nil
}

// ImportCmd replaces the tracked data with an exported document. Preferences are kept.
type ImportCmd struct {
	File string `arg:"" help:"Exported JSON or YAML file, or - for stdin."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	doc, err := c.read()
	if err != nil {
		return err
	}

	if ctx.Tracker.IsOnboarded() && !c.Yes {
		ok, err := cli.Confirm("Replace your current data?", "Your streak, history and notes are overwritten by the file.")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Import cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Tracker.ImportSnapshot(doc); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	v := ctx.Tracker.CurrentState()
	fmt.Printf("✓ Imported: %s %s, %d-day streak.\n", v.Stage.Visual, v.CompanionName, v.Streak)
	return nil
}

func (c *ImportCmd) read() ([]byte, error) {
	if c.File == "-" {
		return io.ReadAll(os.Stdin)
	}
	doc, err := os.ReadFile(c.File)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}
	return doc, nil
}
