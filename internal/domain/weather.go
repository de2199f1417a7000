package domain

// FallbackSource tags static payloads served instead of live data
const FallbackSource = "Fallback"

// Weather is the display-ready weather payload; every field is a preformatted string
type Weather struct {
	Temperature string `json:"temperature"`
	Condition   string `json:"condition"`
	Humidity    string `json:"humidity"`
	Location    string `json:"location"`
	Source      string `json:"source"`
}

// EmptyWeather is returned when weather is disabled, unconfigured or unavailable
func EmptyWeather() Weather {
	return Weather{}
}

// CurrentConditions is the raw reading from a weather provider
type CurrentConditions struct {
	TemperatureC float64
	HumidityPct  float64
	WeatherCode  int
}
