package service

import (
	"context"
	"fmt"
	"time"

	"github.com/smartscreen/backend/internal/domain"
)

// WeatherProvider reads current conditions for a coordinate pair
type WeatherProvider interface {
	Current(ctx context.Context, url string, lat, lon float64, timeout time.Duration) (domain.CurrentConditions, error)
}

// WeatherService handles weather data fetching
type WeatherService struct {
	provider WeatherProvider
}

// NewWeatherService creates a new weather service
func NewWeatherService(provider WeatherProvider) *WeatherService {
	return &WeatherService{provider: provider}
}

// wmoRange maps an inclusive range of WMO codes to a condition
type wmoRange struct {
	from, to  int
	condition string
}

var wmoConditions = []wmoRange{
	{0, 0, "Clear Sky"},
	{1, 3, "Partly Cloudy"},
	{45, 48, "Foggy"},
	{51, 55, "Drizzle"},
	{56, 57, "Freezing Drizzle"},
	{61, 65, "Rain"},
	{66, 67, "Freezing Rain"},
	{71, 75, "Snow"},
	{77, 77, "Snow Grains"},
	{80, 82, "Rain Showers"},
	{85, 86, "Snow Showers"},
	{95, 95, "Thunderstorm"},
	{96, 99, "Thunderstorm with Hail"},
}

// DescribeWeatherCode maps a WMO weather code to display text
func DescribeWeatherCode(code int) string {
	for _, r := range wmoConditions {
		if code >= r.from && code <= r.to {
			return r.condition
		}
	}
	return "Unknown"
}

// GetCurrentWeather fetches current weather at loc, which must be valid
func (s *WeatherService) GetCurrentWeather(ctx context.Context, cfg domain.DomainSettings, loc domain.Location) (domain.Weather, error) {
	if !loc.IsValid() {
		return domain.Weather{}, fmt.Errorf("weather: %w: no valid location", domain.ErrDataUnavailable)
	}

	cur, err := s.provider.Current(ctx, cfg.URL, loc.Latitude, loc.Longitude, cfg.Timeout())
	if err != nil {
		return domain.Weather{}, fmt.Errorf("weather: failed to fetch current conditions: %w", err)
	}

	return domain.Weather{
		Temperature: fmt.Sprintf("%.1f°C", cur.TemperatureC),
		Condition:   DescribeWeatherCode(cur.WeatherCode),
		Humidity:    fmt.Sprintf("%.0f%%", cur.HumidityPct),
		Location:    loc.City,
		Source:      string(loc.Source),
	}, nil
}

// getFallbackWeather returns the static payload shown when fallback mode is on
func (s *WeatherService) getFallbackWeather(loc domain.Location) domain.Weather {
	city := loc.City
	if city == "" {
		city = domain.UnknownCity
	}
	return domain.Weather{
		Temperature: "22.0°C",
		Condition:   "Partly Cloudy",
		Humidity:    "65%",
		Location:    city,
		Source:      domain.FallbackSource,
	}
}
