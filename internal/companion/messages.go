package companion

import (
	"fmt"

	"github.com/julianstephens/streakguard/internal/models"
)

// MessageContext selects which narrative line a companion speaks.
type MessageContext string

const (
	ContextGeneral   MessageContext = "general"
	ContextSOS       MessageContext = "sos"
	ContextEvolution MessageContext = "evolution"
	ContextReset     MessageContext = "reset"
	ContextMilestone MessageContext = "milestone"
	ContextCheckIn   MessageContext = "checkin"
)

// Contexts lists every context with a message table entry.
var Contexts = []MessageContext{
	ContextGeneral,
	ContextSOS,
	ContextEvolution,
	ContextReset,
	ContextMilestone,
	ContextCheckIn,
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// stage text keyed by the upcoming milestone's days; %s is the "N days" phrase
var evolutionTemplates = map[models.CompanionKind]map[int]string{
	models.CompanionPlant: {
		3:  "In %s your seedling will sprout",
		7:  "In %s it will grow into a potted plant",
		30: "In %s it will become a majestic tree",
	},
	models.CompanionCat: {
		3:  "In %s your kitten will grow curious",
		7:  "In %s it will become a hunter",
		30: "In %s it will become a guardian lion",
	},
	models.CompanionDog: {
		3:  "In %s your puppy will start to play",
		7:  "In %s it will become a loyal dog",
		30: "In %s it will become a protector wolf",
	},
	models.CompanionBird: {
		3:  "In %s the egg will hatch",
		7:  "In %s your chick will fledge",
		30: "In %s it will soar as an eagle",
	},
	models.CompanionDragon: {
		7:   "In %s the dragon egg will hatch",
		30:  "In %s your hatchling will become a drake",
		100: "In %s it will rise as an elder dragon",
	},
	models.CompanionFlame: {
		3:  "In %s you will become a flame",
		7:  "In %s you will become a bonfire",
		30: "In %s you will be reborn as a phoenix",
	},
}

var maxEvolutionMessages = map[models.CompanionKind]string{
	models.CompanionPlant:  "Your tree stands majestic! Keep it up! 🌳",
	models.CompanionCat:    "Your lion keeps guard! Nothing gets past you two! 🦁",
	models.CompanionDog:    "Your wolf protects the pack! You are a team! 🐺",
	models.CompanionBird:   "Your eagle soars above it all! 🦅",
	models.CompanionDragon: "Your elder dragon rules the skies! Unstoppable! 🐉",
	models.CompanionFlame:  "You were reborn as a phoenix! Unstoppable! 🔥",
}

// EvolutionMessage describes how far the next stage is, or celebrates max evolution.
func EvolutionMessage(kind models.CompanionKind, streak int) string {
	next, ok := NextMilestone(kind, streak)
	if !ok {
		if msg, found := maxEvolutionMessages[kind]; found {
			return msg
		}
		return "Keep it up! 💪"
	}

	tmpl, found := evolutionTemplates[kind][next.Days]
	if !found {
		// unknown kinds evolve on the plant table, so speak with its lines
		tmpl, found = evolutionTemplates[models.CompanionPlant][next.Days]
	}
	if !found {
		return "Keep going on your journey!"
	}
	return fmt.Sprintf(tmpl, days(next.Days-streak))
}

var personalized = map[models.CompanionKind]map[MessageContext]string{
	models.CompanionPlant: {
		ContextGeneral:   "%s's roots grow deeper every day. You are building solid ground.",
		ContextSOS:       "%s is here with you. Like a tree in a storm, you can hold on. Real growth happens in hard moments too.",
		ContextEvolution: "%s grew thanks to your dedication! Keep feeding your roots. 🌱",
		ContextReset:     "%s still believes in you. Every seed needs time to sprout again. Let's start over together. 🌱",
		ContextMilestone: "%s is blooming because of your determination! You are stronger than you think! 🌸",
		ContextCheckIn:   "%s grows another day! The roots go deeper. 🌿",
	},
	models.CompanionCat: {
		ContextGeneral:   "%s is curled up beside you. Quiet strength is still strength.",
		ContextSOS:       "%s senses you need support. Breathe slowly with them. This moment will pass.",
		ContextEvolution: "%s grew up at your side! You are getting stronger together! 🐾",
		ContextReset:     "%s lands on their feet and so will you. Get up, someone believes in you. 💙",
		ContextMilestone: "%s is incredibly proud of you! Look how far you have come together! 🦁",
		ContextCheckIn:   "%s purrs! Another day together, another step forward! 🐈",
	},
	models.CompanionDog: {
		ContextGeneral:   "%s counts on you, and you are never alone on this journey. You are a team.",
		ContextSOS:       "%s feels you need support. You are not alone. You will get through this together.",
		ContextEvolution: "%s grew up at your side! You are getting stronger together! 🐾",
		ContextReset:     "%s never leaves you. True companions stay when you fall. Get up, someone believes in you. 💙",
		ContextMilestone: "%s is incredibly proud of you! Look how far you have come together! 🐺",
		ContextCheckIn:   "%s wags happily! Another day together, another step forward! 🐕",
	},
	models.CompanionBird: {
		ContextGeneral:   "%s grows stronger wings every day you hold on.",
		ContextSOS:       "%s is singing for you. Storms pass and the sky clears again.",
		ContextEvolution: "%s has grown! Your patience gave them their wings! 🐣",
		ContextReset:     "%s knows every flight starts with a fall. Spread your wings and try again. 🪶",
		ContextMilestone: "%s soars higher because of you! Look at the view from up here! 🦅",
		ContextCheckIn:   "%s chirps! One more day closer to the sky! 🐤",
	},
	models.CompanionDragon: {
		ContextGeneral:   "%s gathers strength in silence. Dragons are patient and so are you.",
		ContextSOS:       "%s spreads their wings over you. No craving can break through a dragon's guard.",
		ContextEvolution: "%s has evolved! Your will is forging a legend! 🐉",
		ContextReset:     "%s has slept for centuries and woken stronger. This is only a rest. 🐲",
		ContextMilestone: "%s roars with pride! Few reach this far! 🐉",
		ContextCheckIn:   "%s stirs! Another day of strength hoarded like treasure! 🪙",
	},
	models.CompanionFlame: {
		ContextGeneral:   "Every day %s burns brighter. Your inner fire is strong and nothing can put it out.",
		ContextSOS:       "%s reminds you: even in the dark, your light can return. You are stronger than the craving.",
		ContextEvolution: "%s burns with renewed intensity! You are a fire that cannot be put out! 🔥",
		ContextReset:     "Like %s, you can rise from the ashes. The phoenix falls to rise stronger. This is not the end. 🔥",
		ContextMilestone: "%s burns brighter than ever! You are an unstoppable force of nature! ✨",
		ContextCheckIn:   "%s blazes! Your flame burns stronger and stronger! 🔥",
	},
}

// PersonalizedMessage returns the line kind speaks in ctx, addressed with name. Pairs
// without an entry fall back to a generic presence message.
func PersonalizedMessage(kind models.CompanionKind, ctx MessageContext, name string) string {
	if name == "" {
		name = DefaultName(kind)
	}
	if tmpl, ok := personalized[kind][ctx]; ok {
		return fmt.Sprintf(tmpl, name)
	}
	return fmt.Sprintf("%s is with you! 💚", name)
}

// Celebration is the text of the evolution overlay.
type Celebration struct {
	Threshold int
	From      Milestone
	To        Milestone
	Headline  string
	Subline   string
}

// CelebrationMessage builds the overlay text for reaching threshold.
func CelebrationMessage(kind models.CompanionKind, threshold int, name string) Celebration {
	if name == "" {
		name = DefaultName(kind)
	}
	c := Celebration{
		Threshold: threshold,
		From:      CurrentState(kind, threshold-1),
		To:        CurrentState(kind, threshold),
	}

	if IsMaxEvolution(kind, threshold) {
		c.Headline = fmt.Sprintf("%s reached their final form!", name)
	} else if thresholds := Thresholds(kind); len(thresholds) > 0 && threshold == thresholds[0] {
		c.Headline = fmt.Sprintf("%s has grown!", name)
	} else {
		c.Headline = fmt.Sprintf("%s keeps evolving!", name)
	}

	switch {
	case threshold >= 30:
		c.Subline = fmt.Sprintf("You are on day %d. You are a legend! 🌟", threshold)
	case threshold >= 7:
		c.Subline = fmt.Sprintf("You are on day %d. You are doing great! 💪", threshold)
	default:
		c.Subline = fmt.Sprintf("You are on day %d. Great start! 🎉", threshold)
	}
	return c
}

// Greeting returns a time-of-day greeting for the check-in screen.
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "☀️ Good morning!"
	case hour < 18:
		return "👋 Good afternoon!"
	default:
		return "🌙 Good evening!"
	}
}
