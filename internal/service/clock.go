package service

import (
	"time"

	"github.com/smartscreen/backend/internal/domain"
)

const (
	timeLayout      = "15:04"
	dateLayout      = "Monday, January 2"
	timestampLayout = "2006-01-02 15:04:05"
)

// ClassifyDay returns WEEKEND on Saturday and Sunday, WORKDAY otherwise.
// HOLIDAY and WFH are never produced.
func ClassifyDay(now time.Time) domain.DayCategory {
	switch now.Weekday() {
	case time.Saturday, time.Sunday:
		return domain.DayCategoryWeekend
	default:
		return domain.DayCategoryWorkday
	}
}

// Greeting picks a salutation by hour of day
func Greeting(now time.Time) string {
	hour := now.Hour()
	switch {
	case hour < 6:
		return "Good Night"
	case hour < 12:
		return "Good Morning"
	case hour < 17:
		return "Good Afternoon"
	case hour < 21:
		return "Good Evening"
	default:
		return "Good Night"
	}
}

// FormatTime renders HH:MM
func FormatTime(now time.Time) string { return now.Format(timeLayout) }

// FormatDate renders e.g. "Monday, January 2"
func FormatDate(now time.Time) string { return now.Format(dateLayout) }

// FormatTimestamp renders e.g. "2006-01-02 15:04:05"
func FormatTimestamp(now time.Time) string { return now.Format(timestampLayout) }
