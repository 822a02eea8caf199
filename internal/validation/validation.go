package validation

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	apperrors "github.com/julianstephens/streakguard/internal/errors"
	"github.com/julianstephens/streakguard/internal/models"
	"github.com/julianstephens/streakguard/internal/utils"
)

const (
	MaxCompanionNameLen = 40
	MaxAddictionNameLen = 60
	MaxNoteLen          = 2000
)

// CompanionName trims and checks a companion name.
func CompanionName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.Required("companionName")
	}
	if utf8.RuneCountInString(name) > MaxCompanionNameLen {
		return "", apperrors.Invalid("companionName", "too long")
	}
	return name, nil
}

// CompanionKind parses a companion kind.
func CompanionKind(raw string) (models.CompanionKind, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return "", apperrors.Required("companionType")
	}
	k := models.CompanionKind(raw)
	if !k.Valid() {
		return "", apperrors.Invalid("companionType", "unknown companion "+raw)
	}
	return k, nil
}

// Addiction parses an addiction kind plus its custom text. Custom kinds need text;
// predefined kinds drop it.
func Addiction(raw, custom string) (models.AddictionKind, string, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	custom = strings.TrimSpace(custom)
	if raw == "" {
		return "", "", apperrors.Required("addictionType")
	}
	k := models.AddictionKind(raw)
	if !k.Valid() {
		return "", "", apperrors.Invalid("addictionType", "unknown addiction "+raw)
	}
	if k != models.AddictionCustom {
		return k, "", nil
	}
	if custom == "" {
		return "", "", apperrors.Required("addictionCustom")
	}
	if utf8.RuneCountInString(custom) > MaxAddictionNameLen {
		return "", "", apperrors.Invalid("addictionCustom", "too long")
	}
	return k, custom, nil
}

// Profile validates a complete onboarding profile.
func Profile(p models.Profile) (models.Profile, error) {
	kind, err := CompanionKind(string(p.CompanionKind))
	if err != nil {
		return models.Profile{}, err
	}
	name, err := CompanionName(p.CompanionName)
	if err != nil {
		return models.Profile{}, err
	}
	addiction, custom, err := Addiction(string(p.AddictionKind), p.AddictionCustom)
	if err != nil {
		return models.Profile{}, err
	}
	return models.Profile{
		CompanionKind:   kind,
		CompanionName:   name,
		AddictionKind:   addiction,
		AddictionCustom: custom,
	}, nil
}

// DailyCost parses a per-day cost. Negative amounts are accepted; the ledger floors them at 0.
func DailyCost(raw string) (float64, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return 0, apperrors.Required("dailyCost")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperrors.Invalid("dailyCost", "not a number")
	}
	return v, nil
}

// Theme parses a theme preference.
func Theme(raw string) (models.Theme, error) {
	t := models.Theme(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", apperrors.Invalid("theme", "expected light, dark or auto")
	}
	return t, nil
}

// CheckInTime validates an HH:MM reminder time.
func CheckInTime(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !utils.ValidateTimeFormat(raw) {
		return "", apperrors.Invalid("checkInTime", "expected HH:MM")
	}
	return raw, nil
}

// Note trims a craving note and rejects empty or oversized ones.
func Note(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", apperrors.Required("note")
	}
	if utf8.RuneCountInString(raw) > MaxNoteLen {
		return "", apperrors.Invalid("note", "too long")
	}
	return raw, nil
}

// Snapshot checks an imported backup document and normalizes it: names trimmed, date
// lists deduplicated in order, negative cost floored at 0.
func Snapshot(s models.Snapshot) (models.Snapshot, error) {
	kind, err := CompanionKind(string(s.CompanionType))
	if err != nil {
		return models.Snapshot{}, err
	}
	name, err := CompanionName(s.CompanionName)
	if err != nil {
		return models.Snapshot{}, err
	}
	addiction, custom, err := Addiction(string(s.AddictionType), s.AddictionName)
	if err != nil {
		return models.Snapshot{}, err
	}
	if s.StartDate.IsZero() {
		return models.Snapshot{}, apperrors.Required("startDate")
	}
	for field, n := range map[string]int{
		"streakDays":    s.StreakDays,
		"longestStreak": s.LongestStreak,
		"sosCount":      s.SOSCount,
	} {
		if n < 0 {
			return models.Snapshot{}, apperrors.Invalid(field, "must not be negative")
		}
	}

	checkIns, err := dateList("dailyCheckIns", s.DailyCheckIns)
	if err != nil {
		return models.Snapshot{}, err
	}
	failed, err := dateList("failedDates", s.FailedDates)
	if err != nil {
		return models.Snapshot{}, err
	}
	for _, h := range s.StreakHistory {
		if h.Days < 0 || h.EndDate.Before(h.StartDate) {
			return models.Snapshot{}, apperrors.Invalid("streakHistory", "malformed entry")
		}
	}

	out := s
	out.CompanionType = kind
	out.CompanionName = name
	out.AddictionType = addiction
	if addiction == models.AddictionCustom {
		out.AddictionName = custom
	}
	out.DailyCheckIns = checkIns
	out.FailedDates = failed
	if math.IsNaN(out.DailyCost) || out.DailyCost < 0 {
		out.DailyCost = 0
	}
	return out, nil
}

func dateList(field string, dates []string) ([]string, error) {
	out := make([]string, 0, len(dates))
	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		if !utils.ValidateDateFormat(d) {
			return nil, apperrors.Invalid(field, "bad date "+d)
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out, nil
}
