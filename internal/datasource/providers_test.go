package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartscreen/backend/internal/domain"
)

func TestIPLocator_Locate(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{
		"city": "Bengaluru", "region": "Karnataka", "country_name": "India",
		"latitude": 12.9716, "longitude": 77.5946, "timezone": "Asia/Kolkata"
	}`)

	loc, err := NewIPLocator(NewClient()).Locate(context.Background(), srv.URL, time.Second)
	require.NoError(t, err)
	assert.Equal(t, domain.Location{
		Latitude: 12.9716, Longitude: 77.5946,
		City: "Bengaluru", Region: "Karnataka", Country: "India",
		Timezone: "Asia/Kolkata", Source: domain.SourceIP,
	}, loc)
}

func TestIPLocator_RateLimitedResponse(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"error": true, "reason": "RateLimited"}`)

	_, err := NewIPLocator(NewClient()).Locate(context.Background(), srv.URL, time.Second)
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestIPLocator_MissingFields(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"region": "Karnataka"}`)

	_, err := NewIPLocator(NewClient()).Locate(context.Background(), srv.URL, time.Second)
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestOpenMeteoGeocoder_Reverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "12.9716", r.URL.Query().Get("latitude"))
		assert.Equal(t, "77.5946", r.URL.Query().Get("longitude"))
		_, _ = w.Write([]byte(`{"results":[{"name":"Bengaluru","admin1":"Karnataka","country":"India","timezone":"Asia/Kolkata"}]}`))
	}))
	defer srv.Close()

	place, err := NewOpenMeteoGeocoder(NewClient(), srv.URL).Reverse(context.Background(), 12.9716, 77.5946, time.Second)
	require.NoError(t, err)
	assert.Equal(t, domain.Place{City: "Bengaluru", Region: "Karnataka", Country: "India", Timezone: "Asia/Kolkata"}, place)
}

func TestOpenMeteoGeocoder_NoResults(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"generationtime_ms": 0.1}`)

	_, err := NewOpenMeteoGeocoder(NewClient(), srv.URL).Reverse(context.Background(), 0, 0, time.Second)
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
}

func TestNominatimGeocoder_PrefersCityOverTown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "37.774900", r.URL.Query().Get("lat"))
		assert.Equal(t, "-122.419400", r.URL.Query().Get("lon"))
		_, _ = w.Write([]byte(`{"address":{"city":"Big City","town":"Small Town","state":"California","country":"United States"}}`))
	}))
	defer srv.Close()

	place, err := NewNominatimGeocoder(NewClient(), srv.URL).Reverse(context.Background(), 37.7749, -122.4194, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "Big City", place.City)
	assert.Equal(t, "California", place.Region)
	assert.Equal(t, "United States", place.Country)
}

func TestNominatimGeocoder_CountyFallback(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"address":{"county":"Some County","state":"Nevada"}}`)

	place, err := NewNominatimGeocoder(NewClient(), srv.URL).Reverse(context.Background(), 38, -117, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "Some County", place.City)
}

func TestNominatimGeocoder_NotFound(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"error":"Unable to geocode"}`)

	_, err := NewNominatimGeocoder(NewClient(), srv.URL).Reverse(context.Background(), 0, 0, time.Second)
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
}

func TestOpenMeteoWeather_Current(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "temperature_2m,relative_humidity_2m,weather_code", r.URL.Query().Get("current"))
		_, _ = w.Write([]byte(`{"current":{"temperature_2m":24.36,"relative_humidity_2m":71,"weather_code":95}}`))
	}))
	defer srv.Close()

	cur, err := NewOpenMeteoWeather(NewClient()).Current(context.Background(), srv.URL, 12.97, 77.59, time.Second)
	require.NoError(t, err)
	assert.InDelta(t, 24.36, cur.TemperatureC, 0.001)
	assert.InDelta(t, 71, cur.HumidityPct, 0.001)
	assert.Equal(t, 95, cur.WeatherCode)
}

func TestOpenMeteoWeather_MissingField(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"current":{"temperature_2m":24.3}}`)

	_, err := NewOpenMeteoWeather(NewClient()).Current(context.Background(), srv.URL, 0, 0, time.Second)
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestQuoteProviders_Schemas(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		build    func(*Client, string) *JSONQuoteProvider
		expected domain.Quote
	}{
		{
			name:     "quotable",
			body:     `{"content":"Stay hungry.","author":"Steve Jobs","tags":["Wisdom"]}`,
			build:    NewQuotableProvider,
			expected: domain.Quote{Text: "Stay hungry.", Author: "Steve Jobs", Category: "Wisdom"},
		},
		{
			name:     "zenquotes",
			body:     `[{"q":"Act as if.","a":"William James","h":"<blockquote/>"}]`,
			build:    NewZenQuotesProvider,
			expected: domain.Quote{Text: "Act as if.", Author: "William James", Category: "Inspiration"},
		},
		{
			name:     "dummyjson",
			body:     `{"id":1,"quote":"Keep going.","author":"Anonymous"}`,
			build:    NewDummyJSONProvider,
			expected: domain.Quote{Text: "Keep going.", Author: "Anonymous", Category: "Inspiration"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := jsonServer(t, http.StatusOK, tt.body)
			q, err := tt.build(NewClient(), srv.URL).Fetch(context.Background(), time.Second)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, q)
		})
	}
}

func TestQuoteProvider_EmptyTextIsParseFailure(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"content":"   ","author":"Nobody"}`)

	_, err := NewQuotableProvider(NewClient(), srv.URL).Fetch(context.Background(), time.Second)
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestQuoteProvider_MissingAuthorDefaults(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"quote":"Begin anywhere."}`)

	q, err := NewDummyJSONProvider(NewClient(), srv.URL).Fetch(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "Unknown", q.Author)
}
