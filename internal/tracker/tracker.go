// Package tracker is the narrow surface the CLI and TUI drive. It validates input,
// sequences ledger mutations and assembles the views built from companion and stats.
package tracker

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/julianstephens/streakguard/internal/companion"
	"github.com/julianstephens/streakguard/internal/constants"
	"github.com/julianstephens/streakguard/internal/ledger"
	"github.com/julianstephens/streakguard/internal/logger"
	"github.com/julianstephens/streakguard/internal/models"
	"github.com/julianstephens/streakguard/internal/stats"
	"github.com/julianstephens/streakguard/internal/validation"
)

// ErrNotOnboarded is returned by operations that need a profile.
var ErrNotOnboarded = errors.New("not onboarded yet, run 'streakguard onboard' first")

// SnapshotSaver persists a raw dump of the key space before it is destroyed.
type SnapshotSaver interface {
	SaveSnapshot(data map[string]json.RawMessage) (string, error)
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithCalendarWindow sets the trailing window of the stats calendar.
func WithCalendarWindow(days int) Option {
	return func(t *Tracker) {
		if days > 0 {
			t.window = days
		}
	}
}

// WithSafetyBackup dumps the key space through s before a full reset.
func WithSafetyBackup(s SnapshotSaver) Option {
	return func(t *Tracker) { t.safety = s }
}

type Tracker struct {
	ledger *ledger.Ledger
	window int
	safety SnapshotSaver

	mu      sync.Mutex
	pending map[string]Token
}

func New(l *ledger.Ledger, opts ...Option) *Tracker {
	t := &Tracker{
		ledger:  l,
		window:  constants.DefaultCalendarWindowDays,
		pending: make(map[string]Token),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Ledger exposes the underlying ledger for read-only views.
func (t *Tracker) Ledger() *ledger.Ledger {
	return t.ledger
}

func (t *Tracker) IsOnboarded() bool {
	return t.ledger.IsOnboarded()
}

// Onboard validates p and starts a fresh streak.
func (t *Tracker) Onboard(p models.Profile) error {
	valid, err := validation.Profile(p)
	if err != nil {
		return err
	}
	return t.ledger.Onboard(valid)
}

// CheckInResult is what the caller shows after a check-in.
type CheckInResult struct {
	Streak           int
	AlreadyCheckedIn bool
	Message          string
	Celebration      *companion.Celebration // set when a stage was just reached
}

// CheckIn records today. Checking in twice on one date is not an error.
func (t *Tracker) CheckIn() (CheckInResult, error) {
	if !t.ledger.IsOnboarded() {
		return CheckInResult{}, ErrNotOnboarded
	}

	already := t.ledger.HasCheckedInToday()
	streak, err := t.ledger.CheckIn()
	if err != nil {
		return CheckInResult{Streak: streak}, err
	}

	p := t.ledger.Profile()
	res := CheckInResult{
		Streak:           streak,
		AlreadyCheckedIn: already,
		Message:          companion.PersonalizedMessage(p.CompanionKind, companion.ContextCheckIn, p.DisplayCompanionName()),
	}
	res.Celebration = t.pendingCelebration(p, streak)
	return res, nil
}

// View is the aggregate home-screen snapshot.
type View struct {
	Profile        models.Profile
	CompanionName  string
	Streak         int
	LongestStreak  int
	CheckedInToday bool
	Stage          companion.Milestone
	NextStage      *companion.Milestone
	EvolutionText  string
	Progress       stats.Progress
	Message        string
	Celebration    *companion.Celebration
	Preferences    models.Preferences
}

// CurrentState assembles the home view. It never fails; missing data reads as defaults.
func (t *Tracker) CurrentState() View {
	p := t.ledger.Profile()
	streak := t.ledger.CurrentStreak()
	name := p.DisplayCompanionName()

	v := View{
		Profile:        p,
		CompanionName:  name,
		Streak:         streak,
		LongestStreak:  t.ledger.LongestStreak(),
		CheckedInToday: t.ledger.HasCheckedInToday(),
		Stage:          companion.CurrentState(p.CompanionKind, streak),
		EvolutionText:  companion.EvolutionMessage(p.CompanionKind, streak),
		Progress:       stats.ComputeMilestoneProgress(p.CompanionKind, streak),
		Message:        companion.PersonalizedMessage(p.CompanionKind, companion.ContextGeneral, name),
		Celebration:    t.pendingCelebration(p, streak),
		Preferences:    t.ledger.Preferences(),
	}
	if next, ok := companion.NextMilestone(p.CompanionKind, streak); ok {
		v.NextStage = &next
	}
	return v
}

func (t *Tracker) pendingCelebration(p models.Profile, streak int) *companion.Celebration {
	threshold, ok := companion.ShouldShowEvolution(p.CompanionKind, streak, t.ledger.EvolutionsSeen())
	if !ok {
		return nil
	}
	c := companion.CelebrationMessage(p.CompanionKind, threshold, p.DisplayCompanionName())
	return &c
}

// AcknowledgeEvolution marks threshold as celebrated so it is not shown again.
func (t *Tracker) AcknowledgeEvolution(threshold int) error {
	return t.ledger.MarkEvolutionSeen(threshold)
}

// SOSResult is the support message shown by the SOS flow.
type SOSResult struct {
	Count   int
	Message string
}

// TriggerSOS logs a craving moment and returns the companion's support line.
func (t *Tracker) TriggerSOS() (SOSResult, error) {
	count, err := t.ledger.RecordSOS()
	if err != nil {
		return SOSResult{Count: count}, err
	}
	p := t.ledger.Profile()
	logger.Debug("SOS triggered", "count", count)
	return SOSResult{
		Count:   count,
		Message: companion.PersonalizedMessage(p.CompanionKind, companion.ContextSOS, p.DisplayCompanionName()),
	}, nil
}

func (t *Tracker) SaveCravingNote(raw string) error {
	note, err := validation.Note(raw)
	if err != nil {
		return err
	}
	return t.ledger.SaveCravingNote(note)
}

// SetDailyCost parses raw and stores it; negative amounts become 0.
func (t *Tracker) SetDailyCost(raw string) (float64, error) {
	cost, err := validation.DailyCost(raw)
	if err != nil {
		return 0, err
	}
	if err := t.ledger.SetDailyCost(cost); err != nil {
		return 0, err
	}
	return t.ledger.DailyCost(), nil
}

func (t *Tracker) RenameCompanion(raw string) error {
	name, err := validation.CompanionName(raw)
	if err != nil {
		return err
	}
	return t.ledger.SetCompanionName(name)
}

// ChangeCompanion swaps the companion kind, keeping the streak.
func (t *Tracker) ChangeCompanion(raw string) error {
	kind, err := validation.CompanionKind(raw)
	if err != nil {
		return err
	}
	return t.ledger.SetCompanionKind(kind)
}

// ChangeAddiction swaps the tracked behavior, keeping the streak.
func (t *Tracker) ChangeAddiction(raw, custom string) error {
	kind, text, err := validation.Addiction(raw, custom)
	if err != nil {
		return err
	}
	return t.ledger.SetAddiction(kind, text)
}

func (t *Tracker) SavePreferences(p models.Preferences) error {
	theme, err := validation.Theme(string(p.Theme))
	if err != nil {
		return err
	}
	at, err := validation.CheckInTime(p.CheckInTime)
	if err != nil {
		return err
	}
	p.Theme = theme
	p.CheckInTime = at
	return t.ledger.SavePreferences(p)
}

// Stats computes the statistics page.
func (t *Tracker) Stats() stats.Report {
	return stats.Build(stats.Input{
		Profile:    t.ledger.Profile(),
		State:      t.ledger.State(),
		History:    t.ledger.StreakHistory(),
		SOSCount:   t.ledger.SOSCount(),
		DailyCost:  t.ledger.DailyCost(),
		Today:      t.ledger.Now(),
		WindowDays: t.window,
	})
}

// Calendar returns just the calendar grid.
func (t *Tracker) Calendar() []stats.CalendarDay {
	return stats.ReconstructCalendar(t.ledger.State(), t.ledger.Now(), t.window)
}
