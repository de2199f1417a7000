package datasource

import (
	"context"
	"fmt"
	"time"

	"github.com/smartscreen/backend/internal/domain"
)

const (
	OpenMeteoGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	NominatimReverseURL   = "https://nominatim.openstreetmap.org/reverse"
)

// ReverseGeocoder resolves place names for a coordinate pair
type ReverseGeocoder interface {
	Name() string
	Reverse(ctx context.Context, lat, lon float64, timeout time.Duration) (domain.Place, error)
}

// OpenMeteoGeocoder queries the Open-Meteo geocoding API
type OpenMeteoGeocoder struct {
	client *Client
	url    string
}

// NewOpenMeteoGeocoder creates a geocoder; an empty url uses the public endpoint
func NewOpenMeteoGeocoder(client *Client, url string) *OpenMeteoGeocoder {
	if url == "" {
		url = OpenMeteoGeocodingURL
	}
	return &OpenMeteoGeocoder{client: client, url: url}
}

func (g *OpenMeteoGeocoder) Name() string { return "open-meteo" }

// Reverse returns the first result's name, admin1, country and timezone
func (g *OpenMeteoGeocoder) Reverse(ctx context.Context, lat, lon float64, timeout time.Duration) (domain.Place, error) {
	doc, err := g.client.GetJSON(ctx, g.url, map[string]string{
		"name":      "",
		"count":     "1",
		"language":  "en",
		"format":    "json",
		"latitude":  fmt.Sprintf("%.4f", lat),
		"longitude": fmt.Sprintf("%.4f", lon),
	}, timeout)
	if err != nil {
		return domain.Place{}, err
	}

	first := doc.Get("results.0")
	if !first.Exists() {
		return domain.Place{}, fmt.Errorf("datasource: %w: no geocoding results", domain.ErrDataUnavailable)
	}
	city := first.Get("name").String()
	if city == "" {
		return domain.Place{}, fmt.Errorf("datasource: %w: geocoding result has no name", domain.ErrParse)
	}

	return domain.Place{
		City:     city,
		Region:   first.Get("admin1").String(),
		Country:  first.Get("country").String(),
		Timezone: first.Get("timezone").String(),
	}, nil
}

// NominatimGeocoder queries OpenStreetMap's Nominatim reverse endpoint.
// Nominatim allows at most one request per second, so give it a rate-limited Client.
type NominatimGeocoder struct {
	client *Client
	url    string
}

// NewNominatimGeocoder creates a geocoder; an empty url uses the public endpoint
func NewNominatimGeocoder(client *Client, url string) *NominatimGeocoder {
	if url == "" {
		url = NominatimReverseURL
	}
	return &NominatimGeocoder{client: client, url: url}
}

func (g *NominatimGeocoder) Name() string { return "nominatim" }

// Reverse prefers city, then town, village and county
func (g *NominatimGeocoder) Reverse(ctx context.Context, lat, lon float64, timeout time.Duration) (domain.Place, error) {
	doc, err := g.client.GetJSON(ctx, g.url, map[string]string{
		"format":         "json",
		"lat":            fmt.Sprintf("%.6f", lat),
		"lon":            fmt.Sprintf("%.6f", lon),
		"zoom":           "10",
		"addressdetails": "1",
	}, timeout)
	if err != nil {
		return domain.Place{}, err
	}

	addr := doc.Get("address")
	if !addr.Exists() {
		return domain.Place{}, fmt.Errorf("datasource: %w: location not found", domain.ErrDataUnavailable)
	}

	var city string
	for _, field := range []string{"city", "town", "village", "county"} {
		if v := addr.Get(field).String(); v != "" {
			city = v
			break
		}
	}
	if city == "" {
		return domain.Place{}, fmt.Errorf("datasource: %w: location not found", domain.ErrDataUnavailable)
	}

	return domain.Place{
		City:    city,
		Region:  addr.Get("state").String(),
		Country: addr.Get("country").String(),
	}, nil
}
