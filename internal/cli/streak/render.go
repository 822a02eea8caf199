package streak

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/julianstephens/streakguard/internal/cli"
	"github.com/julianstephens/streakguard/internal/companion"
	"github.com/julianstephens/streakguard/internal/tracker"
)

const progressWidth = 30

func renderCelebration(c *companion.Celebration) string {
	body := fmt.Sprintf("🎉 %s\n%s %s → %s %s\n%s",
		c.Headline,
		c.From.Visual, c.From.Name,
		c.To.Visual, c.To.Name,
		c.Subline,
	)
	return cli.CelebrationStyle.Render(body)
}

// showCelebration prints a pending celebration once and marks it seen.
func showCelebration(t *tracker.Tracker, c *companion.Celebration) error {
	if c == nil {
		return nil
	}
	fmt.Println(renderCelebration(c))
	return t.AcknowledgeEvolution(c.Threshold)
}

func renderProgress(v tracker.View) string {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(progressWidth))
	return fmt.Sprintf("%s %s", bar.ViewAs(v.Progress.Percent/100), v.Progress.Label)
}
