package domain

import (
	"fmt"
	"strings"
	"time"
)

// DayCategory is the coarse classification a routine can be restricted to
type DayCategory string

const (
	DayCategoryWorkday DayCategory = "WORKDAY"
	DayCategoryWeekend DayCategory = "WEEKEND"
	DayCategoryHoliday DayCategory = "HOLIDAY"
	DayCategoryWFH     DayCategory = "WFH"
	DayCategoryAny     DayCategory = "ANY"
)

// ParseDayCategory accepts the upper-case enum names, case-insensitively
func ParseDayCategory(s string) (DayCategory, error) {
	switch c := DayCategory(strings.ToUpper(strings.TrimSpace(s))); c {
	case DayCategoryWorkday, DayCategoryWeekend, DayCategoryHoliday, DayCategoryWFH, DayCategoryAny:
		return c, nil
	case "":
		return DayCategoryAny, nil
	default:
		return "", fmt.Errorf("domain: unknown day category %q", s)
	}
}

// ActionType instructs the evaluator to populate one content key
type ActionType string

const (
	ActionShowGreeting      ActionType = "SHOW_GREETING"
	ActionShowQuote         ActionType = "SHOW_QUOTE"
	ActionShowTraffic       ActionType = "SHOW_TRAFFIC"
	ActionShowWeather       ActionType = "SHOW_WEATHER"
	ActionShowLocation      ActionType = "SHOW_LOCATION"
	ActionShowTime          ActionType = "SHOW_TIME"
	ActionShowDate          ActionType = "SHOW_DATE"
	ActionShowCustomMessage ActionType = "SHOW_CUSTOM_MESSAGE"
)

// AllActions lists every known action in declaration order
var AllActions = []ActionType{
	ActionShowGreeting,
	ActionShowQuote,
	ActionShowTraffic,
	ActionShowWeather,
	ActionShowLocation,
	ActionShowTime,
	ActionShowDate,
	ActionShowCustomMessage,
}

// ParseActionType validates an action name
func ParseActionType(s string) (ActionType, error) {
	a := ActionType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllActions {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("domain: unknown action type %q", s)
}

// ParseWeekday maps "MONDAY".."SUNDAY" (any case) to time.Weekday
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("domain: unknown weekday %q", s)
}

// TimeOfDay is a wall-clock time without a date, stored as minutes and seconds since midnight
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS"
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("domain: invalid time of day %q", s)
}

// TimeOfDayOf extracts the wall-clock part of t in its own location
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

func (t TimeOfDay) seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// Before reports whether t is strictly earlier than o
func (t TimeOfDay) Before(o TimeOfDay) bool { return t.seconds() < o.seconds() }

// After reports whether t is strictly later than o
func (t TimeOfDay) After(o TimeOfDay) bool { return t.seconds() > o.seconds() }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Routine pairs a time/day applicability condition with content actions.
// ActiveDays is persisted but not consulted when matching.
type Routine struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	StartTime     *TimeOfDay     `json:"startTime,omitempty"`
	EndTime       *TimeOfDay     `json:"endTime,omitempty"`
	ActiveDays    []time.Weekday `json:"activeDays"`
	DayCategory   DayCategory    `json:"dayCategory"`
	Actions       []ActionType   `json:"actions"`
	CustomMessage string         `json:"customMessage,omitempty"`
	ShowWeather   bool           `json:"showWeather"`
	ShowTraffic   bool           `json:"showTraffic"`
	ShowLocation  bool           `json:"showLocation"`
	ShowTime      bool           `json:"showTime"`
	ShowDate      bool           `json:"showDate"`
	Enabled       bool           `json:"enabled"`
	Priority      int            `json:"priority"`
}

// HasWindow reports whether both ends of the time window are set
func (r Routine) HasWindow() bool {
	return r.StartTime != nil && r.EndTime != nil
}

// Preference is the single implicit user's display preferences
type Preference struct {
	DisplayName     string `json:"displayName"`
	Timezone        string `json:"timezone"`
	RefreshInterval int    `json:"refreshInterval"`
}
