package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/smartscreen/backend/internal/datasource"
	"github.com/smartscreen/backend/internal/domain"
	"github.com/smartscreen/backend/internal/metrics"
	"github.com/smartscreen/backend/pkg/geo"
)

// IPLocator resolves a location from the host's public IP
type IPLocator interface {
	Locate(ctx context.Context, url string, timeout time.Duration) (domain.Location, error)
}

// LocationResolver owns the single process-wide current location.
// Readers take a copy under a read lock; writers build the complete record
// and publish it in one assignment.
type LocationResolver struct {
	settings  domain.SettingsStore
	locator   IPLocator
	geocoders []datasource.ReverseGeocoder
	logger    *logrus.Entry

	mu      sync.RWMutex
	current domain.Location

	// writeMu serialises SetBrowserLocation and Clear; lazy lookups in Get
	// only publish when no writer holds it.
	writeMu sync.Mutex
	lookups singleflight.Group
}

// NewLocationResolver creates a resolver in the uninitialized state
func NewLocationResolver(settings domain.SettingsStore, locator IPLocator, geocoders ...datasource.ReverseGeocoder) *LocationResolver {
	return &LocationResolver{
		settings:  settings,
		locator:   locator,
		geocoders: geocoders,
		logger:    logrus.WithField("component", "location"),
		current:   emptyLocation(),
	}
}

func emptyLocation() domain.Location {
	return domain.Location{Source: domain.SourceNone}
}

// Initialize attempts an IP lookup; on failure the state stays empty
func (r *LocationResolver) Initialize(ctx context.Context) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	r.initializeLocked(ctx)
}

func (r *LocationResolver) initializeLocked(ctx context.Context) {
	r.logger.Info("Initializing location from IP lookup")
	loc, err := r.lookupIP(ctx)
	if err != nil {
		r.logger.WithError(err).Warn("IP-based location unavailable during initialization")
		return
	}
	r.publish(loc)
	r.logger.WithField("city", loc.City).Info("Initialized with IP-based location")
}

// Get returns the current record, or on empty state tries a fresh IP lookup.
// Failures are never cached, so every call on empty state retries.
func (r *LocationResolver) Get(ctx context.Context) domain.Location {
	if loc := r.Current(); !loc.IsEmpty() {
		return loc
	}

	r.logger.Debug("No current location, falling back to IP lookup")
	loc, err := r.lookupIP(ctx)
	if err != nil {
		r.logger.WithError(err).Warn("IP-based location lookup failed")
		return emptyLocation()
	}

	if r.writeMu.TryLock() {
		if r.Current().IsEmpty() {
			r.publish(loc)
		}
		r.writeMu.Unlock()
	}
	return loc
}

// Current returns the stored record without triggering a lookup
func (r *LocationResolver) Current() domain.Location {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// SetBrowserLocation replaces the state with browser-reported coordinates.
// A usable city is adopted directly; otherwise the coordinates are reverse
// geocoded, and failing that the IP lookup is used.
func (r *LocationResolver) SetBrowserLocation(ctx context.Context, lat, lon float64, city, region, country string) domain.Location {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	log := r.logger.WithFields(logrus.Fields{"lat": lat, "lon": lon, "city": city})
	if prev := r.Current(); !prev.IsEmpty() {
		log = log.WithField("moved_km", geo.RoundTo(geo.Haversine(prev.Latitude, prev.Longitude, lat, lon), 2))
	}
	log.Info("Setting browser location")
	r.publish(emptyLocation())

	if city != "" && city != domain.UnknownCity {
		loc := domain.Location{
			Latitude:  lat,
			Longitude: lon,
			City:      city,
			Region:    region,
			Country:   country,
			Source:    domain.SourceBrowser,
		}
		r.publish(loc)
		return loc
	}

	place, err := r.reverseGeocode(ctx, lat, lon)
	if err == nil {
		loc := domain.Location{
			Latitude:  lat,
			Longitude: lon,
			City:      place.City,
			Region:    place.Region,
			Country:   place.Country,
			Timezone:  place.Timezone,
			Source:    domain.SourceBrowser,
		}
		r.publish(loc)
		log.WithField("resolved_city", place.City).Info("Reverse geocoding successful")
		return loc
	}
	log.WithError(err).Warn("Reverse geocoding failed, using IP-based location")

	loc, err := r.lookupIP(ctx)
	if err != nil {
		log.WithError(err).Warn("IP-based fallback failed, location left empty")
		return emptyLocation()
	}
	r.publish(loc)
	return loc
}

// Clear wipes the state and immediately re-runs Initialize
func (r *LocationResolver) Clear(ctx context.Context) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.publish(emptyLocation())
	r.logger.Info("Location data cleared")
	r.initializeLocked(ctx)
}

// HasValidLocation reports whether the stored record names a real city
func (r *LocationResolver) HasValidLocation() bool {
	return r.Current().IsValid()
}

// IsPermissionGranted is derived from the source of the stored record
func (r *LocationResolver) IsPermissionGranted() bool {
	return r.Current().Source == domain.SourceBrowser
}

// Status summarises the stored record
func (r *LocationResolver) Status() domain.LocationStatus {
	loc := r.Current()
	status := domain.LocationStatus{
		HasLocationData:      !loc.IsEmpty(),
		HasValidLocationData: loc.IsValid(),
		PermissionGranted:    loc.Source == domain.SourceBrowser,
		LocationRequested:    !loc.IsEmpty(),
		IsExpired:            loc.IsEmpty(),
		Source:               loc.Source,
	}
	if !loc.IsEmpty() {
		status.Location = &loc
	}
	return status
}

func (r *LocationResolver) publish(loc domain.Location) {
	r.mu.Lock()
	r.current = loc
	r.mu.Unlock()
	metrics.SetLocationSource(string(loc.Source))
}

// lookupIP coalesces concurrent lookups into one network call
func (r *LocationResolver) lookupIP(ctx context.Context) (domain.Location, error) {
	v, err, _ := r.lookups.Do("ip", func() (any, error) {
		cfg := r.config(ctx)
		if !cfg.Enabled || cfg.URL == "" {
			return domain.Location{}, fmt.Errorf("location: %w: location lookup disabled", domain.ErrConfigurationSkip)
		}
		return r.locator.Locate(ctx, cfg.URL, cfg.Timeout())
	})
	if err != nil {
		return domain.Location{}, err
	}
	return v.(domain.Location), nil
}

func (r *LocationResolver) reverseGeocode(ctx context.Context, lat, lon float64) (domain.Place, error) {
	if len(r.geocoders) == 0 {
		return domain.Place{}, fmt.Errorf("location: %w: no reverse geocoders configured", domain.ErrConfigurationSkip)
	}

	timeout := r.config(ctx).Timeout()
	var lastErr error
	for _, g := range r.geocoders {
		place, err := g.Reverse(ctx, lat, lon, timeout)
		if err == nil {
			return place, nil
		}
		r.logger.WithFields(logrus.Fields{"provider": g.Name(), "error": err}).Warn("Reverse geocoder failed")
		lastErr = err
	}
	return domain.Place{}, fmt.Errorf("location: all reverse geocoders failed: %w", lastErr)
}

func (r *LocationResolver) config(ctx context.Context) domain.DomainSettings {
	cfg, err := r.settings.GetDomainConfig(ctx, domain.DomainLocation)
	if err != nil {
		r.logger.WithError(err).Warn("Failed to read location settings, using defaults")
		return domain.DefaultDomainSettings(domain.DomainLocation)
	}
	return cfg
}
