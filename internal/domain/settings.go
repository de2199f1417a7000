package domain

import "time"

// DataDomain identifies an external data domain
type DataDomain string

const (
	DomainWeather  DataDomain = "weather"
	DomainQuote    DataDomain = "quote"
	DomainTraffic  DataDomain = "traffic"
	DomainLocation DataDomain = "location"
)

// Setting keys as stored by the settings store
const (
	SettingFallbackMode = "fallback.mode"
	SettingAPITimeout   = "api.timeout"
	SettingMaxRetries   = "api.max.retries"
)

// URLKey returns "<domain>.api.url"
func (d DataDomain) URLKey() string { return string(d) + ".api.url" }

// EnabledKey returns "<domain>.api.enabled"
func (d DataDomain) EnabledKey() string { return string(d) + ".api.enabled" }

// GlobalSettings apply to every domain
type GlobalSettings struct {
	FallbackModeEnabled bool `json:"fallbackModeEnabled"`
	APITimeoutSeconds   int  `json:"apiTimeoutSeconds"`
	// MaxRetries is carried for completeness; fetches make a single attempt per provider.
	MaxRetries int `json:"maxRetries"`
}

// DomainSettings is the per-call configuration for one data domain
type DomainSettings struct {
	GlobalSettings
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
}

// Timeout converts APITimeoutSeconds, defaulting to 10s when unset
func (s DomainSettings) Timeout() time.Duration {
	if s.APITimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(s.APITimeoutSeconds) * time.Second
}

// Default endpoints
const (
	DefaultWeatherURL  = "https://api.open-meteo.com/v1/forecast"
	DefaultQuoteURL    = "https://api.quotable.io/random"
	DefaultLocationURL = "https://ipapi.co/json/"
)

// DefaultDomainSettings is used when the settings store has no value or fails
func DefaultDomainSettings(d DataDomain) DomainSettings {
	s := DomainSettings{
		GlobalSettings: GlobalSettings{
			FallbackModeEnabled: true,
			APITimeoutSeconds:   10,
			MaxRetries:          3,
		},
		Enabled: true,
	}
	switch d {
	case DomainWeather:
		s.URL = DefaultWeatherURL
	case DomainQuote:
		s.URL = DefaultQuoteURL
	case DomainLocation:
		s.URL = DefaultLocationURL
	}
	return s
}
