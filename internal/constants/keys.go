package constants

// Persisted key space. Values are stored JSON-encoded.
const (
	// Onboarding
	KeyOnboardingCompleted = "onboardingCompleted"

	// Profile
	KeyCompanionType   = "companionType"
	KeyCompanionName   = "companionName"
	KeyAddictionType   = "addictionType"
	KeyAddictionCustom = "addictionCustom"

	// Streak tracking
	KeyStartDate     = "startDate"       // RFC3339 timestamp
	KeyStreakDays    = "streakDays"      // int
	KeyLastCheckIn   = "lastCheckInDate" // YYYY-MM-DD
	KeyLongestStreak = "longestStreak"   // int
	KeyDailyCheckIns = "dailyCheckIns"   // []YYYY-MM-DD
	KeyFailedDates   = "failedDates"     // []YYYY-MM-DD
	KeyStreakHistory = "streakHistory"   // []{startDate, endDate, days}

	// SOS tracking
	KeySOSCount     = "sosEventsCount"
	KeySOSHistory   = "sosHistory"
	KeyCravingNotes = "cravingNotes"

	// Savings
	KeyDailyCost = "dailyCost"

	// Evolution tracking
	KeyEvolutionsSeen = "evolutionsSeen"

	// Preferences
	KeyTheme                = "theme"
	KeySoundsEnabled        = "soundsEnabled"
	KeyNotificationsEnabled = "notificationsEnabled"
	KeyCheckInTime          = "checkInTime" // HH:MM

	// Reminders
	KeyLastReminder = "lastReminderDate" // YYYY-MM-DD
)
