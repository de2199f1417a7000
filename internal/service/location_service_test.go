package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartscreen/backend/internal/datasource"
	"github.com/smartscreen/backend/internal/domain"
)

var errIPDown = fmt.Errorf("ipapi: %w", domain.ErrTransport)

func newResolver(locator *fakeLocator, geocoders ...datasource.ReverseGeocoder) (*LocationResolver, *fakeSettings) {
	settings := newFakeSettings()
	return NewLocationResolver(settings, locator, geocoders...), settings
}

func TestLocationResolver_Initialize(t *testing.T) {
	r, _ := newResolver(&fakeLocator{loc: bengaluru})

	assert.True(t, r.Current().IsEmpty())
	r.Initialize(context.Background())

	assert.Equal(t, bengaluru, r.Current())
	assert.True(t, r.HasValidLocation())
	assert.False(t, r.IsPermissionGranted())
}

func TestLocationResolver_InitializeFailureLeavesEmpty(t *testing.T) {
	r, _ := newResolver(&fakeLocator{err: errIPDown})

	r.Initialize(context.Background())

	assert.Equal(t, domain.SourceNone, r.Current().Source)
	assert.False(t, r.HasValidLocation())
}

func TestLocationResolver_GetRetriesUntilLookupSucceeds(t *testing.T) {
	locator := &fakeLocator{err: errIPDown}
	r, _ := newResolver(locator)
	ctx := context.Background()

	assert.True(t, r.Get(ctx).IsEmpty())
	assert.True(t, r.Get(ctx).IsEmpty())
	assert.Equal(t, int32(2), locator.calls.Load())

	locator.set(bengaluru, nil)
	assert.Equal(t, bengaluru, r.Get(ctx))
	assert.Equal(t, bengaluru, r.Current())

	// cached now
	r.Get(ctx)
	assert.Equal(t, int32(3), locator.calls.Load())
}

func TestLocationResolver_LocationDisabled(t *testing.T) {
	locator := &fakeLocator{loc: bengaluru}
	r, settings := newResolver(locator)
	settings.update(domain.DomainLocation, func(c *domain.DomainSettings) { c.Enabled = false })

	assert.True(t, r.Get(context.Background()).IsEmpty())
	assert.Zero(t, locator.calls.Load())
}

func TestLocationResolver_BrowserCityAdopted(t *testing.T) {
	geo := &fakeGeocoder{name: "geo", place: domain.Place{City: "Elsewhere"}}
	r, _ := newResolver(&fakeLocator{loc: bengaluru}, geo)

	loc := r.SetBrowserLocation(context.Background(), 12.97, 77.59, "Bangalore", "Karnataka", "India")

	assert.Equal(t, domain.Location{
		Latitude: 12.97, Longitude: 77.59,
		City: "Bangalore", Region: "Karnataka", Country: "India",
		Source: domain.SourceBrowser,
	}, loc)
	assert.Equal(t, loc, r.Current())
	assert.True(t, r.IsPermissionGranted())
	assert.Zero(t, geo.calls.Load())
}

func TestLocationResolver_BrowserUnknownCityIsGeocoded(t *testing.T) {
	failing := &fakeGeocoder{name: "first", err: fmt.Errorf("no hits: %w", domain.ErrDataUnavailable)}
	working := &fakeGeocoder{name: "second", place: domain.Place{City: "Mysuru", Region: "Karnataka", Country: "India", Timezone: "Asia/Kolkata"}}
	locator := &fakeLocator{loc: bengaluru}
	r, _ := newResolver(locator, failing, working)

	loc := r.SetBrowserLocation(context.Background(), 12.29, 76.63, domain.UnknownCity, "", "")

	assert.Equal(t, "Mysuru", loc.City)
	assert.Equal(t, "Asia/Kolkata", loc.Timezone)
	assert.Equal(t, domain.SourceBrowser, loc.Source)
	assert.Equal(t, 12.29, loc.Latitude)
	assert.Equal(t, int32(1), failing.calls.Load())
	assert.Equal(t, int32(1), working.calls.Load())
	assert.Zero(t, locator.calls.Load())
}

func TestLocationResolver_BrowserFallsBackToIP(t *testing.T) {
	geo := &fakeGeocoder{name: "geo", err: fmt.Errorf("down: %w", domain.ErrTransport)}
	r, _ := newResolver(&fakeLocator{loc: bengaluru}, geo)

	loc := r.SetBrowserLocation(context.Background(), 1, 2, "", "", "")

	assert.Equal(t, bengaluru, loc)
	assert.Equal(t, domain.SourceIP, r.Current().Source)
}

func TestLocationResolver_BrowserEverythingFails(t *testing.T) {
	r, _ := newResolver(&fakeLocator{err: errIPDown})

	loc := r.SetBrowserLocation(context.Background(), 1, 2, "Unknown", "", "")

	assert.True(t, loc.IsEmpty())
	assert.True(t, r.Current().IsEmpty())
}

func TestLocationResolver_BrowserReplacesPreviousRecord(t *testing.T) {
	r, _ := newResolver(&fakeLocator{loc: bengaluru})
	ctx := context.Background()
	r.SetBrowserLocation(ctx, 19.07, 72.87, "Mumbai", "Maharashtra", "India")
	r.SetBrowserLocation(ctx, 28.61, 77.20, "Delhi", "", "India")

	cur := r.Current()
	assert.Equal(t, "Delhi", cur.City)
	assert.Empty(t, cur.Region)
}

func TestLocationResolver_Clear(t *testing.T) {
	r, _ := newResolver(&fakeLocator{loc: bengaluru})
	ctx := context.Background()
	r.SetBrowserLocation(ctx, 19.07, 72.87, "Mumbai", "Maharashtra", "India")

	r.Clear(ctx)

	assert.Equal(t, bengaluru, r.Current())
	assert.False(t, r.IsPermissionGranted())
}

func TestLocationResolver_ClearWithIPDown(t *testing.T) {
	locator := &fakeLocator{loc: bengaluru}
	r, _ := newResolver(locator)
	ctx := context.Background()
	r.Initialize(ctx)

	locator.set(domain.Location{}, errIPDown)
	r.Clear(ctx)

	assert.True(t, r.Current().IsEmpty())
}

func TestLocationResolver_Status(t *testing.T) {
	r, _ := newResolver(&fakeLocator{err: errIPDown})

	empty := r.Status()
	assert.False(t, empty.HasLocationData)
	assert.False(t, empty.HasValidLocationData)
	assert.True(t, empty.IsExpired)
	assert.Nil(t, empty.Location)
	assert.Equal(t, domain.SourceNone, empty.Source)

	r.SetBrowserLocation(context.Background(), 12.97, 77.59, "Bangalore", "Karnataka", "India")
	status := r.Status()
	assert.True(t, status.HasLocationData)
	assert.True(t, status.HasValidLocationData)
	assert.True(t, status.PermissionGranted)
	assert.True(t, status.LocationRequested)
	assert.False(t, status.IsExpired)
	require.NotNil(t, status.Location)
	assert.Equal(t, "Bangalore", status.Location.City)
}

func TestLocationResolver_ConcurrentGetCoalescesLookups(t *testing.T) {
	locator := &fakeLocator{loc: bengaluru, delay: 50 * time.Millisecond}
	r, _ := newResolver(locator)

	var wg sync.WaitGroup
	results := make([]domain.Location, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.Get(context.Background())
		}(i)
	}
	wg.Wait()

	for _, loc := range results {
		assert.Equal(t, bengaluru, loc)
	}
	assert.Less(t, locator.calls.Load(), int32(len(results)))
	assert.Equal(t, bengaluru, r.Current())
}

func TestLocationResolver_ReadersNeverSeeMixedRecords(t *testing.T) {
	r, _ := newResolver(&fakeLocator{loc: bengaluru})
	ctx := context.Background()

	cities := map[float64]string{19.07: "Mumbai", 28.61: "Delhi", 13.08: "Chennai"}

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				loc := r.Current()
				if loc.Source == domain.SourceBrowser {
					assert.Equal(t, cities[loc.Latitude], loc.City)
				}
			}
		}()
	}

	for n := 0; n < 200; n++ {
		for lat, city := range cities {
			r.SetBrowserLocation(ctx, lat, 77, city, "", "India")
		}
	}
	close(stop)
	wg.Wait()
}
