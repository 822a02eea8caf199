package tracker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/streakguard/internal/companion"
	apperrors "github.com/julianstephens/streakguard/internal/errors"
	"github.com/julianstephens/streakguard/internal/models"
	"github.com/julianstephens/streakguard/internal/stats"
	"github.com/julianstephens/streakguard/internal/validation"
)

// Format is an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Snapshot builds the backup document from the current ledger.
func (t *Tracker) Snapshot() models.Snapshot {
	p := t.ledger.Profile()
	state := t.ledger.State()
	cost := t.ledger.DailyCost()

	return models.Snapshot{
		CompanionName: p.DisplayCompanionName(),
		CompanionType: p.CompanionKind,
		AddictionType: p.AddictionKind,
		AddictionName: p.AddictionName(),
		StartDate:     state.StartDate,
		StreakDays:    state.StreakDays,
		LongestStreak: state.LongestStreak,
		DailyCheckIns: state.CheckInDates,
		FailedDates:   state.FailedDates,
		SOSCount:      t.ledger.SOSCount(),
		DailyCost:     cost,
		TotalSaved:    stats.ComputeSavings(cost, state.StreakDays).Total,
		StreakHistory: t.ledger.StreakHistory(),
		CravingNotes:  t.ledger.CravingNotes(),
		ExportDate:    t.ledger.Now(),
	}
}

// ExportSnapshot encodes the backup document. JSON is indented with two spaces.
func (t *Tracker) ExportSnapshot(format Format) ([]byte, error) {
	if !t.ledger.IsOnboarded() {
		return nil, ErrNotOnboarded
	}
	s := t.Snapshot()

	switch format {
	case FormatJSON, "":
		out, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode snapshot: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return nil, fmt.Errorf("failed to encode snapshot: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode snapshot: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, apperrors.Invalid("format", "expected json or yaml")
	}
}

// ImportSnapshot replaces the tracked data with doc, a JSON or YAML backup document.
// Evolutions at or below the imported streak count as already celebrated.
func (t *Tracker) ImportSnapshot(doc []byte) error {
	s, err := decodeSnapshot(doc)
	if err != nil {
		return err
	}
	s, err = validation.Snapshot(s)
	if err != nil {
		return err
	}

	seen := []int{}
	for _, th := range companion.Thresholds(s.CompanionType) {
		if th <= s.StreakDays {
			seen = append(seen, th)
		}
	}
	return t.ledger.Import(s, seen)
}

func decodeSnapshot(doc []byte) (models.Snapshot, error) {
	var s models.Snapshot
	trimmed := strings.TrimSpace(string(doc))
	if trimmed == "" {
		return s, apperrors.Required("snapshot")
	}

	if strings.HasPrefix(trimmed, "{") {
		if err := json.Unmarshal(doc, &s); err != nil {
			return s, apperrors.Invalid("snapshot", err.Error())
		}
		return s, nil
	}
	if err := yaml.Unmarshal(doc, &s); err != nil {
		return s, apperrors.Invalid("snapshot", err.Error())
	}
	return s, nil
}
