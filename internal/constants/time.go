package constants

import "time"

// Layouts for persisted and displayed times.
const (
	DateFormat      = "2006-01-02" // dailyCheckIns, failedDates, lastCheckInDate
	TimeFormat      = "15:04"      // checkInTime
	TimestampFormat = time.RFC3339 // startDate, history and note timestamps
	DisplayFormat   = "2006-01-02 15:04"
)
