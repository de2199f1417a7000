package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/smartscreen/backend/internal/domain"
	"github.com/smartscreen/backend/internal/metrics"
)

const defaultDisplayName = "User"

// ContentComposer builds one content map per request from routines,
// preferences and external data. It never fails.
type ContentComposer struct {
	routines  domain.RoutineStore
	prefs     domain.PreferenceStore
	gateway   *ExternalDataGateway
	evaluator *RoutineEvaluator
	zone      *time.Location
	logger    *logrus.Entry
}

// NewContentComposer creates a new content composer
func NewContentComposer(
	routines domain.RoutineStore,
	prefs domain.PreferenceStore,
	gateway *ExternalDataGateway,
	evaluator *RoutineEvaluator,
) *ContentComposer {
	return &ContentComposer{
		routines:  routines,
		prefs:     prefs,
		gateway:   gateway,
		evaluator: evaluator,
		logger:    logrus.WithField("component", "composer"),
	}
}

// SetTimezone pins Now to loc regardless of the stored preference
func (c *ContentComposer) SetTimezone(loc *time.Location) {
	c.zone = loc
}

// Now returns the current time in the user's preferred timezone
func (c *ContentComposer) Now(ctx context.Context) time.Time {
	now := time.Now()
	if c.zone != nil {
		return now.In(c.zone)
	}
	pref, err := c.prefs.GetPreference(ctx)
	if err != nil || pref.Timezone == "" {
		return now
	}
	loc, err := time.LoadLocation(pref.Timezone)
	if err != nil {
		c.logger.WithField("timezone", pref.Timezone).Warn("Unknown timezone preference, using local time")
		return now
	}
	return now.In(loc)
}

// Compose evaluates routines for now and stitches in the baseline keys
func (c *ContentComposer) Compose(ctx context.Context, now time.Time) domain.ContentMap {
	log := c.logger.WithField("request_id", uuid.NewString())

	routines, err := c.routines.FindEnabledOrderedByPriorityDesc(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to load routines, using defaults")
		routines = nil
	}

	src := c.prefetch(ctx, c.evaluator.RequiredDomains(routines, now), now)
	content := c.evaluator.Evaluate(ctx, routines, now, src)

	content[domain.KeyTimestamp] = FormatTimestamp(now)
	content[domain.KeyDayCategory] = string(ClassifyDay(now))
	content[domain.KeyDisplayName] = c.displayName(ctx, log)

	metrics.ObserveComposition()
	log.WithField("keys", len(content)).Debug("Composed content")
	return content
}

// Realtime is Compose without time and date, which the client renders itself,
// plus the user's name
func (c *ContentComposer) Realtime(ctx context.Context, now time.Time) domain.ContentMap {
	content := c.Compose(ctx, now)
	delete(content, domain.KeyTime)
	delete(content, domain.KeyDate)
	content[domain.KeyUserName] = content[domain.KeyDisplayName]
	return content
}

func (c *ContentComposer) displayName(ctx context.Context, log *logrus.Entry) string {
	pref, err := c.prefs.GetPreference(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to load preferences")
		return defaultDisplayName
	}
	if pref.DisplayName == "" {
		return defaultDisplayName
	}
	return pref.DisplayName
}

// prefetch fetches the required domains concurrently
func (c *ContentComposer) prefetch(ctx context.Context, domains []domain.DataDomain, now time.Time) *snapshot {
	s := &snapshot{gateway: c.gateway}
	var wg sync.WaitGroup

	for _, d := range domains {
		wg.Add(1)
		go func(d domain.DataDomain) {
			defer wg.Done()
			switch d {
			case domain.DomainWeather:
				w := c.gateway.Weather(ctx)
				s.mu.Lock()
				s.weather = &w
				s.mu.Unlock()
			case domain.DomainQuote:
				q := c.gateway.Quote(ctx)
				s.mu.Lock()
				s.quote = &q
				s.mu.Unlock()
			case domain.DomainTraffic:
				t := c.gateway.Traffic(ctx, now)
				s.mu.Lock()
				s.traffic = &t
				s.mu.Unlock()
			case domain.DomainLocation:
				l := c.gateway.Location(ctx)
				s.mu.Lock()
				s.location = &l
				s.mu.Unlock()
			}
		}(d)
	}

	wg.Wait()
	return s
}

// snapshot serves prefetched values and falls through to the gateway for anything missing
type snapshot struct {
	gateway *ExternalDataGateway

	mu       sync.Mutex
	weather  *domain.Weather
	quote    *domain.Quote
	traffic  *domain.Traffic
	location *domain.Location
}

func (s *snapshot) Weather(ctx context.Context) domain.Weather {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.weather == nil {
		w := s.gateway.Weather(ctx)
		s.weather = &w
	}
	return *s.weather
}

func (s *snapshot) Quote(ctx context.Context) domain.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quote == nil {
		q := s.gateway.Quote(ctx)
		s.quote = &q
	}
	return *s.quote
}

func (s *snapshot) Traffic(ctx context.Context, now time.Time) domain.Traffic {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.traffic == nil {
		t := s.gateway.Traffic(ctx, now)
		s.traffic = &t
	}
	return *s.traffic
}

func (s *snapshot) Location(ctx context.Context) domain.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.location == nil {
		l := s.gateway.Location(ctx)
		s.location = &l
	}
	return *s.location
}
