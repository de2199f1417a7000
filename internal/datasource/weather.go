package datasource

import (
	"context"
	"fmt"
	"time"

	"github.com/smartscreen/backend/internal/domain"
)

// OpenMeteoWeather reads current conditions from an Open-Meteo forecast endpoint
type OpenMeteoWeather struct {
	client *Client
}

// NewOpenMeteoWeather creates a new weather provider
func NewOpenMeteoWeather(client *Client) *OpenMeteoWeather {
	return &OpenMeteoWeather{client: client}
}

// Current requests temperature, relative humidity and the WMO weather code
func (w *OpenMeteoWeather) Current(ctx context.Context, url string, lat, lon float64, timeout time.Duration) (domain.CurrentConditions, error) {
	doc, err := w.client.GetJSON(ctx, url, map[string]string{
		"latitude":  fmt.Sprintf("%.4f", lat),
		"longitude": fmt.Sprintf("%.4f", lon),
		"current":   "temperature_2m,relative_humidity_2m,weather_code",
		"timezone":  "auto",
	}, timeout)
	if err != nil {
		return domain.CurrentConditions{}, err
	}

	current := doc.Get("current")
	if err := requireFields(current, "temperature_2m", "relative_humidity_2m", "weather_code"); err != nil {
		return domain.CurrentConditions{}, err
	}

	return domain.CurrentConditions{
		TemperatureC: current.Get("temperature_2m").Float(),
		HumidityPct:  current.Get("relative_humidity_2m").Float(),
		WeatherCode:  int(current.Get("weather_code").Int()),
	}, nil
}
