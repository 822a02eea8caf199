package streak

import (
	"fmt"
	"strings"

	"github.com/julianstephens/streakguard/internal/cli"
	"github.com/julianstephens/streakguard/internal/stats"
)

type CalendarCmd struct{}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireOnboarded(); err != nil {
		return err
	}
	fmt.Print(RenderCalendar(ctx.Tracker.Calendar()))
	return nil
}

var calendarStatuses = []stats.DayStatus{
	stats.DayCheckedIn,
	stats.DayFailed,
	stats.DayNotYetStarted,
	stats.DayNoData,
}

// RenderCalendar draws the Monday-first grid with a legend.
func RenderCalendar(days []stats.CalendarDay) string {
	var b strings.Builder
	b.WriteString(cli.MutedStyle.Render("Mo Tu We Th Fr Sa Su"))
	b.WriteString("\n")

	for _, week := range stats.Weeks(days) {
		cells := make([]string, len(week))
		for i, d := range week {
			cell := d.Status.Symbol()
			if d.IsToday {
				cell = cli.TitleStyle.Render(cell)
			}
			cells[i] = cell
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteString("\n")
	}

	legend := make([]string, len(calendarStatuses))
	for i, s := range calendarStatuses {
		legend[i] = fmt.Sprintf("%s %s", s.Symbol(), s)
	}
	b.WriteString(cli.MutedStyle.Render(strings.Join(legend, "  ")))
	b.WriteString("\n")
	return b.String()
}
