package domain

// LocationSource attributes where the current location came from
type LocationSource string

const (
	SourceIP      LocationSource = "ip"
	SourceBrowser LocationSource = "browser"
	SourceNone    LocationSource = "none"
)

// UnknownCity is the placeholder providers and browsers send when no city is known
const UnknownCity = "Unknown"

// Location is the process-wide current location record
type Location struct {
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
	City      string         `json:"city"`
	Region    string         `json:"region"`
	Country   string         `json:"country"`
	Timezone  string         `json:"timezone,omitempty"`
	Source    LocationSource `json:"source"`
}

// IsEmpty reports whether no location has been resolved
func (l Location) IsEmpty() bool {
	return l.Source == "" || l.Source == SourceNone
}

// IsValid reports whether the record names a real city
func (l Location) IsValid() bool {
	return !l.IsEmpty() && l.City != "" && l.City != UnknownCity
}

// Place is what a reverse geocoder returns for a coordinate pair
type Place struct {
	City     string
	Region   string
	Country  string
	Timezone string
}

// LocationStatus summarises the resolver state for the UI
type LocationStatus struct {
	HasLocationData      bool           `json:"hasLocationData"`
	HasValidLocationData bool           `json:"hasValidLocationData"`
	PermissionGranted    bool           `json:"permissionGranted"`
	LocationRequested    bool           `json:"locationRequested"`
	IsExpired            bool           `json:"isExpired"`
	Source               LocationSource `json:"source"`
	Location             *Location      `json:"location,omitempty"`
}
