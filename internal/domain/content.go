package domain

// Content keys
const (
	KeyTimestamp     = "timestamp"
	KeyDayCategory   = "dayCategory"
	KeyDisplayName   = "displayName"
	KeyGreeting      = "greeting"
	KeyTime          = "time"
	KeyDate          = "date"
	KeyQuote         = "quote"
	KeyWeather       = "weather"
	KeyTraffic       = "traffic"
	KeyLocation      = "location"
	KeyCustomMessage = "customMessage"
	KeyUserName      = "userName"
)

// BaselineKeys are stitched in by the composer on every request
var BaselineKeys = []string{KeyTimestamp, KeyDayCategory, KeyDisplayName}

// ContentMap is built fresh per request; later writes overwrite earlier ones
type ContentMap map[string]any

// HasOnlyBaseline reports whether no routine contributed any key
func (c ContentMap) HasOnlyBaseline() bool {
	for k := range c {
		if !isBaseline(k) {
			return false
		}
	}
	return true
}

// String returns the value at key when it is a string
func (c ContentMap) String(key string) (string, bool) {
	v, ok := c[key].(string)
	return v, ok
}

func isBaseline(key string) bool {
	for _, b := range BaselineKeys {
		if b == key {
			return true
		}
	}
	return false
}
