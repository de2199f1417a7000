package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/smartscreen/backend/internal/domain"
	"github.com/smartscreen/backend/internal/metrics"
)

// LocationProvider hands out the current location, resolving it if needed
type LocationProvider interface {
	Get(ctx context.Context) domain.Location
}

// ExternalDataGateway applies per-domain feature flags and fallback policy
// in front of the weather, quote and traffic services. None of its methods
// fail: every failure is logged, counted and replaced by a fallback payload.
type ExternalDataGateway struct {
	settings  domain.SettingsStore
	locations LocationProvider
	weather   *WeatherService
	quotes    *QuoteService
	traffic   *TrafficService
	clock     func() time.Time
	logger    *logrus.Entry
}

// NewExternalDataGateway creates a new gateway
func NewExternalDataGateway(
	settings domain.SettingsStore,
	locations LocationProvider,
	weather *WeatherService,
	quotes *QuoteService,
	traffic *TrafficService,
) *ExternalDataGateway {
	return &ExternalDataGateway{
		settings:  settings,
		locations: locations,
		weather:   weather,
		quotes:    quotes,
		traffic:   traffic,
		clock:     time.Now,
		logger:    logrus.WithField("component", "gateway"),
	}
}

// Fetch returns the payload for d: domain.Weather, domain.Quote, domain.Traffic
// or domain.Location. Unknown domains yield nil.
func (g *ExternalDataGateway) Fetch(ctx context.Context, d domain.DataDomain) any {
	switch d {
	case domain.DomainWeather:
		return g.Weather(ctx)
	case domain.DomainQuote:
		return g.Quote(ctx)
	case domain.DomainTraffic:
		return g.Traffic(ctx, g.clock())
	case domain.DomainLocation:
		return g.Location(ctx)
	default:
		return nil
	}
}

// Weather returns live weather, the fallback payload, or the empty payload.
// A disabled domain makes no network call and returns the empty payload.
func (g *ExternalDataGateway) Weather(ctx context.Context) domain.Weather {
	started := time.Now()
	cfg := g.config(ctx, domain.DomainWeather)
	if !cfg.Enabled || cfg.URL == "" {
		g.skipped(domain.DomainWeather, started)
		return domain.EmptyWeather()
	}

	loc := g.locations.Get(ctx)
	w, err := g.weather.GetCurrentWeather(ctx, cfg, loc)
	if err == nil {
		metrics.ObserveFetch(string(domain.DomainWeather), domain.Outcome(nil), started)
		return w
	}

	g.failed(domain.DomainWeather, err, started)
	if errors.Is(err, domain.ErrDataUnavailable) {
		return domain.EmptyWeather()
	}
	if cfg.FallbackModeEnabled {
		return g.weather.getFallbackWeather(loc)
	}
	return domain.EmptyWeather()
}

// Quote returns the first live quote or a random static one.
// A disabled domain goes straight to the static picker.
func (g *ExternalDataGateway) Quote(ctx context.Context) domain.Quote {
	started := time.Now()
	cfg := g.config(ctx, domain.DomainQuote)
	if !cfg.Enabled {
		g.skipped(domain.DomainQuote, started)
		return FallbackQuote()
	}

	q, err := g.quotes.GetQuote(ctx, cfg)
	if err != nil {
		g.failed(domain.DomainQuote, err, started)
		return FallbackQuote()
	}
	metrics.ObserveFetch(string(domain.DomainQuote), domain.Outcome(nil), started)
	return q
}

// Traffic applies the time-of-day rule for the resolved city
func (g *ExternalDataGateway) Traffic(ctx context.Context, now time.Time) domain.Traffic {
	started := time.Now()
	cfg := g.config(ctx, domain.DomainTraffic)
	loc := g.locations.Get(ctx)
	if !cfg.Enabled {
		g.skipped(domain.DomainTraffic, started)
		return g.traffic.getFallbackTraffic(loc)
	}
	metrics.ObserveFetch(string(domain.DomainTraffic), domain.Outcome(nil), started)
	return g.traffic.GetCurrentTraffic(now, loc)
}

// Location returns the current location record
func (g *ExternalDataGateway) Location(ctx context.Context) domain.Location {
	return g.locations.Get(ctx)
}

func (g *ExternalDataGateway) config(ctx context.Context, d domain.DataDomain) domain.DomainSettings {
	cfg, err := g.settings.GetDomainConfig(ctx, d)
	if err != nil {
		g.logger.WithFields(logrus.Fields{"domain": d, "error": err}).Warn("Failed to read settings, using defaults")
		return domain.DefaultDomainSettings(d)
	}
	return cfg
}

func (g *ExternalDataGateway) skipped(d domain.DataDomain, started time.Time) {
	g.logger.WithField("domain", d).Debug("Domain disabled, skipping external call")
	metrics.ObserveFetch(string(d), domain.Outcome(domain.ErrConfigurationSkip), started)
}

func (g *ExternalDataGateway) failed(d domain.DataDomain, err error, started time.Time) {
	g.logger.WithFields(logrus.Fields{"domain": d, "error": err}).Warn("External data fetch failed")
	metrics.ObserveFetch(string(d), domain.Outcome(err), started)
}
