package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/smartscreen/backend/internal/domain"
)

// ContentSources supplies values that need external data
type ContentSources interface {
	Weather(ctx context.Context) domain.Weather
	Quote(ctx context.Context) domain.Quote
	Traffic(ctx context.Context, now time.Time) domain.Traffic
	Location(ctx context.Context) domain.Location
}

// MergePolicy decides what happens when two applicable routines write the same key
type MergePolicy int

const (
	// MergeLastWins lets later (lower priority) routines overwrite earlier ones
	MergeLastWins MergePolicy = iota
	// MergeFirstWins keeps the value from the highest-priority routine
	MergeFirstWins
)

// ParseMergePolicy accepts "last-wins" or "first-wins"
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last-wins":
		return MergeLastWins, nil
	case "first-wins":
		return MergeFirstWins, nil
	default:
		return MergeLastWins, fmt.Errorf("service: unknown merge policy %q", s)
	}
}

// actionHandler produces one content entry for a routine; ok=false writes nothing
type actionHandler struct {
	key    string
	domain domain.DataDomain
	gate   func(domain.Routine) bool
	value  func(ctx context.Context, r domain.Routine, now time.Time, src ContentSources) any
}

func always(domain.Routine) bool { return true }

var actionHandlers = map[domain.ActionType]actionHandler{
	domain.ActionShowGreeting: {
		key:  domain.KeyGreeting,
		gate: always,
		value: func(_ context.Context, _ domain.Routine, now time.Time, _ ContentSources) any {
			return Greeting(now)
		},
	},
	domain.ActionShowQuote: {
		key:    domain.KeyQuote,
		domain: domain.DomainQuote,
		gate:   always,
		value: func(ctx context.Context, _ domain.Routine, _ time.Time, src ContentSources) any {
			return src.Quote(ctx).String()
		},
	},
	domain.ActionShowTraffic: {
		key:    domain.KeyTraffic,
		domain: domain.DomainTraffic,
		gate:   func(r domain.Routine) bool { return r.ShowTraffic },
		value: func(ctx context.Context, _ domain.Routine, now time.Time, src ContentSources) any {
			return src.Traffic(ctx, now)
		},
	},
	domain.ActionShowWeather: {
		key:    domain.KeyWeather,
		domain: domain.DomainWeather,
		gate:   func(r domain.Routine) bool { return r.ShowWeather },
		value: func(ctx context.Context, _ domain.Routine, _ time.Time, src ContentSources) any {
			return src.Weather(ctx)
		},
	},
	domain.ActionShowLocation: {
		key:    domain.KeyLocation,
		domain: domain.DomainLocation,
		gate:   func(r domain.Routine) bool { return r.ShowLocation },
		value: func(ctx context.Context, _ domain.Routine, _ time.Time, src ContentSources) any {
			return src.Location(ctx)
		},
	},
	domain.ActionShowTime: {
		key:  domain.KeyTime,
		gate: func(r domain.Routine) bool { return r.ShowTime },
		value: func(_ context.Context, _ domain.Routine, now time.Time, _ ContentSources) any {
			return FormatTime(now)
		},
	},
	domain.ActionShowDate: {
		key:  domain.KeyDate,
		gate: func(r domain.Routine) bool { return r.ShowDate },
		value: func(_ context.Context, _ domain.Routine, now time.Time, _ ContentSources) any {
			return FormatDate(now)
		},
	},
	domain.ActionShowCustomMessage: {
		key:  domain.KeyCustomMessage,
		gate: func(r domain.Routine) bool { return r.CustomMessage != "" },
		value: func(_ context.Context, r domain.Routine, _ time.Time, _ ContentSources) any {
			return r.CustomMessage
		},
	},
}

// RoutineEvaluator decides which routines apply now and merges their output
type RoutineEvaluator struct {
	policy MergePolicy
}

// NewRoutineEvaluator creates an evaluator with the given merge policy
func NewRoutineEvaluator(policy MergePolicy) *RoutineEvaluator {
	return &RoutineEvaluator{policy: policy}
}

// IsApplicable checks the inclusive time-of-day window and the day category.
// ActiveDays is not consulted.
func (e *RoutineEvaluator) IsApplicable(r domain.Routine, now time.Time) bool {
	if r.HasWindow() {
		t := domain.TimeOfDayOf(now)
		if t.Before(*r.StartTime) || t.After(*r.EndTime) {
			return false
		}
	}
	if r.DayCategory != "" && r.DayCategory != domain.DayCategoryAny {
		if r.DayCategory != ClassifyDay(now) {
			return false
		}
	}
	return true
}

// Applicable returns enabled, applicable routines ordered by priority
// descending; equal priorities keep their input order.
func (e *RoutineEvaluator) Applicable(routines []domain.Routine, now time.Time) []domain.Routine {
	out := make([]domain.Routine, 0, len(routines))
	for _, r := range routines {
		if r.Enabled && e.IsApplicable(r, now) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out
}

// RequiredDomains lists the external domains the applicable routines will ask for
func (e *RoutineEvaluator) RequiredDomains(routines []domain.Routine, now time.Time) []domain.DataDomain {
	seen := make(map[domain.DataDomain]bool)
	var out []domain.DataDomain
	for _, r := range e.Applicable(routines, now) {
		for _, a := range r.Actions {
			h, ok := actionHandlers[a]
			if !ok || h.domain == "" || !h.gate(r) || seen[h.domain] {
				continue
			}
			seen[h.domain] = true
			out = append(out, h.domain)
		}
	}
	return out
}

// Evaluate applies every applicable routine's actions in priority order.
// If nothing was written, greeting, time and date are injected.
func (e *RoutineEvaluator) Evaluate(ctx context.Context, routines []domain.Routine, now time.Time, src ContentSources) domain.ContentMap {
	content := make(domain.ContentMap)

	for _, r := range e.Applicable(routines, now) {
		for _, a := range r.Actions {
			h, ok := actionHandlers[a]
			if !ok || !h.gate(r) {
				continue
			}
			if _, exists := content[h.key]; exists && e.policy == MergeFirstWins {
				continue
			}
			content[h.key] = h.value(ctx, r, now, src)
		}
	}

	if content.HasOnlyBaseline() {
		addDefaultContent(content, now)
	}
	return content
}

func addDefaultContent(content domain.ContentMap, now time.Time) {
	if _, ok := content[domain.KeyGreeting]; !ok {
		content[domain.KeyGreeting] = Greeting(now)
	}
	if _, ok := content[domain.KeyTime]; !ok {
		content[domain.KeyTime] = FormatTime(now)
	}
	if _, ok := content[domain.KeyDate]; !ok {
		content[domain.KeyDate] = FormatDate(now)
	}
}
