package domain

// TrafficDistance is the fixed commute distance shown on the display
const TrafficDistance = "8.5 km"

// Traffic is the display-ready commute summary
type Traffic struct {
	Status     string `json:"status"`
	TravelTime string `json:"travelTime"`
	Distance   string `json:"distance"`
	Message    string `json:"message"`
	Location   string `json:"location"`
	Source     string `json:"source"`
}
