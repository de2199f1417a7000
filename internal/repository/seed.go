package repository

import (
	"strconv"
	"time"

	"github.com/smartscreen/backend/internal/domain"
)

// DefaultPreference is created on first start
func DefaultPreference() domain.Preference {
	return domain.Preference{
		DisplayName:     "User",
		Timezone:        "Asia/Kolkata",
		RefreshInterval: 30,
	}
}

// SettingDefault is one row of the system settings table
type SettingDefault struct {
	Key         string
	Value       string
	Description string
	Category    string
}

// DefaultSettings lists every known setting with its initial value
func DefaultSettings() []SettingDefault {
	return []SettingDefault{
		{domain.DomainWeather.URLKey(), domain.DefaultWeatherURL, "Weather API endpoint URL", "api"},
		{domain.DomainWeather.EnabledKey(), "true", "Enable weather API calls", "api"},
		{domain.DomainQuote.URLKey(), domain.DefaultQuoteURL, "Quote API endpoint URL", "api"},
		{domain.DomainQuote.EnabledKey(), "true", "Enable quote API calls", "api"},
		{domain.DomainLocation.URLKey(), domain.DefaultLocationURL, "Location API endpoint URL", "api"},
		{domain.DomainLocation.EnabledKey(), "true", "Enable location API calls", "api"},
		{domain.DomainTraffic.URLKey(), "", "Traffic API endpoint URL (optional)", "api"},
		{domain.DomainTraffic.EnabledKey(), "true", "Enable traffic estimates", "api"},
		{domain.SettingFallbackMode, "true", "Enable fallback mode when APIs are unavailable", "system"},
		{domain.SettingAPITimeout, strconv.Itoa(10), "API timeout in seconds", "system"},
		{domain.SettingMaxRetries, strconv.Itoa(3), "Maximum API retry attempts (reserved)", "system"},
	}
}

var weekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

func window(startHour, endHour int) (*domain.TimeOfDay, *domain.TimeOfDay) {
	return &domain.TimeOfDay{Hour: startHour}, &domain.TimeOfDay{Hour: endHour}
}

// DefaultRoutines are the sample routines created when none exist
func DefaultRoutines() []domain.Routine {
	morningStart, morningEnd := window(6, 9)
	noonStart, noonEnd := window(12, 14)
	eveningStart, eveningEnd := window(17, 20)
	weekendStart, weekendEnd := window(8, 22)

	return []domain.Routine{
		{
			Name:        "Morning Routine",
			Description: "Good morning routine for weekdays",
			StartTime:   morningStart,
			EndTime:     morningEnd,
			ActiveDays:  weekdays,
			DayCategory: domain.DayCategoryWorkday,
			Actions: []domain.ActionType{
				domain.ActionShowGreeting, domain.ActionShowTime, domain.ActionShowDate,
				domain.ActionShowQuote, domain.ActionShowWeather, domain.ActionShowTraffic,
			},
			ShowWeather: true,
			ShowTraffic: true,
			ShowTime:    true,
			ShowDate:    true,
			Enabled:     true,
			Priority:    1,
		},
		{
			Name:        "Afternoon Routine",
			Description: "Lunch break routine",
			StartTime:   noonStart,
			EndTime:     noonEnd,
			ActiveDays:  weekdays,
			DayCategory: domain.DayCategoryWorkday,
			Actions: []domain.ActionType{
				domain.ActionShowGreeting, domain.ActionShowTime, domain.ActionShowQuote,
			},
			ShowTime: true,
			Enabled:  true,
			Priority: 2,
		},
		{
			Name:        "Evening Routine",
			Description: "Evening routine with traffic info",
			StartTime:   eveningStart,
			EndTime:     eveningEnd,
			ActiveDays:  weekdays,
			DayCategory: domain.DayCategoryWorkday,
			Actions: []domain.ActionType{
				domain.ActionShowGreeting, domain.ActionShowTime,
				domain.ActionShowTraffic, domain.ActionShowWeather,
			},
			ShowTraffic: true,
			ShowWeather: true,
			ShowTime:    true,
			Enabled:     true,
			Priority:    1,
		},
		{
			Name:        "Weekend Routine",
			Description: "Relaxed weekend routine",
			StartTime:   weekendStart,
			EndTime:     weekendEnd,
			ActiveDays:  []time.Weekday{time.Saturday, time.Sunday},
			DayCategory: domain.DayCategoryWeekend,
			Actions: []domain.ActionType{
				domain.ActionShowGreeting, domain.ActionShowTime, domain.ActionShowDate,
				domain.ActionShowQuote, domain.ActionShowWeather,
			},
			ShowWeather: true,
			ShowTime:    true,
			ShowDate:    true,
			Enabled:     true,
			Priority:    3,
		},
	}
}
