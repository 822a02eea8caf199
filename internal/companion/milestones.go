// Package companion maps a streak length onto the companion's evolution stage and the
// narrative text shown around it. Everything here is a pure function of its arguments.
package companion

import (
	"github.com/julianstephens/streakguard/internal/models"
)

// Milestone is one evolution stage. Days is the streak length at which it is reached.
type Milestone struct {
	Days   int    `json:"days"`
	Visual string `json:"visual"`
	Name   string `json:"name"`
}

var milestoneTable = map[models.CompanionKind][]Milestone{
	models.CompanionPlant: {
		{Days: 0, Visual: "🌱", Name: "Seedling"},
		{Days: 3, Visual: "🌿", Name: "Sprout"},
		{Days: 7, Visual: "🪴", Name: "Potted Plant"},
		{Days: 30, Visual: "🌳", Name: "Majestic Tree"},
	},
	models.CompanionCat: {
		{Days: 0, Visual: "🐱", Name: "Kitten"},
		{Days: 3, Visual: "🐈", Name: "Curious Cat"},
		{Days: 7, Visual: "🐆", Name: "Hunter"},
		{Days: 30, Visual: "🦁", Name: "Guardian Lion"},
	},
	models.CompanionDog: {
		{Days: 0, Visual: "🐶", Name: "Puppy"},
		{Days: 3, Visual: "🐕", Name: "Playful Pup"},
		{Days: 7, Visual: "🦮", Name: "Loyal Dog"},
		{Days: 30, Visual: "🐺", Name: "Protector Wolf"},
	},
	models.CompanionBird: {
		{Days: 0, Visual: "🥚", Name: "Egg"},
		{Days: 3, Visual: "🐣", Name: "Chick"},
		{Days: 7, Visual: "🐤", Name: "Fledgling"},
		{Days: 30, Visual: "🦅", Name: "Soaring Eagle"},
	},
	models.CompanionDragon: {
		{Days: 0, Visual: "🥚", Name: "Dragon Egg"},
		{Days: 7, Visual: "🦎", Name: "Hatchling"},
		{Days: 30, Visual: "🐲", Name: "Drake"},
		{Days: 100, Visual: "🐉", Name: "Elder Dragon"},
	},
	models.CompanionFlame: {
		{Days: 0, Visual: "✨", Name: "Spark"},
		{Days: 3, Visual: "🔥", Name: "Flame"},
		{Days: 7, Visual: "🔥🔥", Name: "Bonfire"},
		{Days: 30, Visual: "🐦‍🔥", Name: "Phoenix"},
	},
}

// Milestones returns the ascending stage list for kind. Unknown kinds use the plant table.
func Milestones(kind models.CompanionKind) []Milestone {
	if m, ok := milestoneTable[kind]; ok {
		return m
	}
	return milestoneTable[models.CompanionPlant]
}

// Thresholds returns the celebrated streak lengths for kind: every stage but the first.
func Thresholds(kind models.CompanionKind) []int {
	ms := Milestones(kind)
	out := make([]int, 0, len(ms)-1)
	for _, m := range ms[1:] {
		out = append(out, m.Days)
	}
	return out
}

// CurrentState returns the highest stage reached at streak.
func CurrentState(kind models.CompanionKind, streak int) Milestone {
	ms := Milestones(kind)
	current := ms[0]
	for _, m := range ms {
		if streak < m.Days {
			break
		}
		current = m
	}
	return current
}

// NextMilestone returns the first stage not yet reached. ok is false at max evolution.
func NextMilestone(kind models.CompanionKind, streak int) (Milestone, bool) {
	for _, m := range Milestones(kind) {
		if streak < m.Days {
			return m, true
		}
	}
	return Milestone{}, false
}

// IsMaxEvolution reports whether no further stage remains.
func IsMaxEvolution(kind models.CompanionKind, streak int) bool {
	_, ok := NextMilestone(kind, streak)
	return !ok
}

// ShouldShowEvolution reports the threshold to celebrate, if any. It fires only when
// streak equals a threshold exactly and that threshold is not in seen; a streak that
// skips past a threshold never celebrates it.
func ShouldShowEvolution(kind models.CompanionKind, streak int, seen []int) (int, bool) {
	for _, t := range Thresholds(kind) {
		if streak != t {
			continue
		}
		for _, s := range seen {
			if s == t {
				return 0, false
			}
		}
		return t, true
	}
	return 0, false
}

// DefaultName returns the name used for a companion the user did not name.
func DefaultName(kind models.CompanionKind) string {
	return kind.DefaultName()
}
