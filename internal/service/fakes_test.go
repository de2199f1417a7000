package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/smartscreen/backend/internal/domain"
)

type fakeSettings struct {
	mu   sync.Mutex
	cfgs map[domain.DataDomain]domain.DomainSettings
	err  error
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{cfgs: make(map[domain.DataDomain]domain.DomainSettings)}
}

func (f *fakeSettings) GetDomainConfig(_ context.Context, d domain.DataDomain) (domain.DomainSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.DomainSettings{}, f.err
	}
	if cfg, ok := f.cfgs[d]; ok {
		return cfg, nil
	}
	return domain.DefaultDomainSettings(d), nil
}

func (f *fakeSettings) update(d domain.DataDomain, fn func(*domain.DomainSettings)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cfg, ok := f.cfgs[d]
	if !ok {
		cfg = domain.DefaultDomainSettings(d)
	}
	fn(&cfg)
	f.cfgs[d] = cfg
}

type fakeLocator struct {
	mu    sync.Mutex
	loc   domain.Location
	err   error
	delay time.Duration
	calls atomic.Int32
}

func (f *fakeLocator) Locate(ctx context.Context, _ string, _ time.Duration) (domain.Location, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return domain.Location{}, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loc, f.err
}

func (f *fakeLocator) set(loc domain.Location, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loc, f.err = loc, err
}

type fakeGeocoder struct {
	name  string
	place domain.Place
	err   error
	calls atomic.Int32
}

func (f *fakeGeocoder) Name() string { return f.name }

func (f *fakeGeocoder) Reverse(_ context.Context, _, _ float64, _ time.Duration) (domain.Place, error) {
	f.calls.Add(1)
	return f.place, f.err
}

type fakeWeatherProvider struct {
	cond  domain.CurrentConditions
	err   error
	calls atomic.Int32
}

func (f *fakeWeatherProvider) Current(_ context.Context, _ string, _, _ float64, _ time.Duration) (domain.CurrentConditions, error) {
	f.calls.Add(1)
	return f.cond, f.err
}

type fakeQuoteProvider struct {
	name  string
	quote domain.Quote
	err   error
	calls atomic.Int32
}

func (f *fakeQuoteProvider) Name() string { return f.name }

func (f *fakeQuoteProvider) Fetch(_ context.Context, _ time.Duration) (domain.Quote, error) {
	f.calls.Add(1)
	return f.quote, f.err
}

type staticLocations struct {
	loc domain.Location
}

func (s staticLocations) Get(context.Context) domain.Location { return s.loc }

type fakeRoutines struct {
	routines []domain.Routine
	err      error
}

func (f fakeRoutines) FindEnabledOrderedByPriorityDesc(context.Context) ([]domain.Routine, error) {
	return f.routines, f.err
}

type fakePrefs struct {
	pref domain.Preference
	err  error
}

func (f fakePrefs) GetPreference(context.Context) (domain.Preference, error) {
	return f.pref, f.err
}

// stubSources records which external values the evaluator asked for
type stubSources struct {
	weather, quote, traffic, location atomic.Int32
}

func (s *stubSources) Weather(context.Context) domain.Weather {
	s.weather.Add(1)
	return domain.Weather{Temperature: "20.0°C", Condition: "Clear Sky", Humidity: "40%", Location: "Pune", Source: "ip"}
}

func (s *stubSources) Quote(context.Context) domain.Quote {
	s.quote.Add(1)
	return domain.Quote{Text: "Stay curious.", Author: "Anon", Category: "Inspiration"}
}

func (s *stubSources) Traffic(_ context.Context, now time.Time) domain.Traffic {
	s.traffic.Add(1)
	return NewTrafficService().GetCurrentTraffic(now, bengaluru)
}

func (s *stubSources) Location(context.Context) domain.Location {
	s.location.Add(1)
	return bengaluru
}

var bengaluru = domain.Location{
	Latitude: 12.9716, Longitude: 77.5946,
	City: "Bengaluru", Region: "Karnataka", Country: "India",
	Timezone: "Asia/Kolkata", Source: domain.SourceIP,
}

// at returns a UTC instant on Monday 4 March 2024 unless a day is given
func at(hour, minute, sec int) time.Time {
	return time.Date(2024, time.March, 4, hour, minute, sec, 0, time.UTC)
}

func tod(hour, minute int) *domain.TimeOfDay {
	return &domain.TimeOfDay{Hour: hour, Minute: minute}
}
