package service

import (
	"fmt"
	"time"

	"github.com/smartscreen/backend/internal/domain"
)

// TrafficService estimates commute conditions from the time of day.
// There is no live traffic feed behind it.
type TrafficService struct{}

// NewTrafficService creates a new traffic service
func NewTrafficService() *TrafficService {
	return &TrafficService{}
}

// GetCurrentTraffic applies the rush-hour rule for now at loc
func (s *TrafficService) GetCurrentTraffic(now time.Time, loc domain.Location) domain.Traffic {
	status, travelTime := s.congestion(now.Hour())
	city := cityOrUnknown(loc)

	source := string(loc.Source)
	if source == "" {
		source = string(domain.SourceNone)
	}

	return domain.Traffic{
		Status:     status,
		TravelTime: travelTime,
		Distance:   domain.TrafficDistance,
		Message:    s.message(status, city),
		Location:   city,
		Source:     source,
	}
}

// congestion returns status and travel time for an hour of day
func (s *TrafficService) congestion(hour int) (string, string) {
	switch {
	case hour >= 7 && hour <= 9: // Morning rush
		return "Heavy", "35 min"
	case hour >= 17 && hour <= 19: // Evening rush
		return "Heavy", "40 min"
	default:
		return "Moderate", "20 min"
	}
}

func (s *TrafficService) message(status, city string) string {
	if status == "Heavy" {
		return fmt.Sprintf("Heavy traffic in %s. Consider leaving early.", city)
	}
	return fmt.Sprintf("Traffic is moving normally in %s.", city)
}

// getFallbackTraffic is served when the traffic domain is disabled
func (s *TrafficService) getFallbackTraffic(loc domain.Location) domain.Traffic {
	return domain.Traffic{
		Status:     "Moderate",
		TravelTime: "20 min",
		Distance:   domain.TrafficDistance,
		Message:    "Live traffic is disabled. Showing typical conditions.",
		Location:   cityOrUnknown(loc),
		Source:     domain.FallbackSource,
	}
}

func cityOrUnknown(loc domain.Location) string {
	if loc.IsValid() {
		return loc.City
	}
	return domain.UnknownCity
}
