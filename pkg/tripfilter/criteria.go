package tripfilter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/thoas/go-funk"

	"airtrip-service/internal/domain/entity"
)

// Stop presets offered by the client
const (
	StopsAll  = "all"
	StopsNone = "none"
	StopsOne  = "one"
	StopsTwo  = "two"
)

// StopPreset maps a preset name to a MaxStops value; "all" means unrestricted
func StopPreset(name string) (*int, error) {
	var stops int
	switch strings.ToLower(name) {
	case StopsAll, "":
		return nil, nil
	case StopsNone:
		stops = 0
	case StopsOne:
		stops = 1
	case StopsTwo:
		stops = 2
	default:
		return nil, fmt.Errorf("unknown stop preset %q", name)
	}
	return &stops, nil
}

// ParseClock converts "HH:MM" to minutes after midnight
func ParseClock(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid clock time %q", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid clock time %q", value)
	}
	return hours*60 + minutes, nil
}

// ValidateCriteria rejects criteria that can never be evaluated
func ValidateCriteria(c entity.FilterCriteria) error {
	if c.LatestDeparture != nil {
		if _, err := ParseClock(*c.LatestDeparture); err != nil {
			return fmt.Errorf("latest departure: %w", err)
		}
	}
	if c.LatestArrival != nil {
		if _, err := ParseClock(*c.LatestArrival); err != nil {
			return fmt.Errorf("latest arrival: %w", err)
		}
	}
	if c.MaxStops != nil && *c.MaxStops < 0 {
		return fmt.Errorf("max stops cannot be negative")
	}
	if c.MinPrice != nil && c.MaxPrice != nil && *c.MinPrice > *c.MaxPrice {
		return fmt.Errorf("min price %.2f is above max price %.2f", *c.MinPrice, *c.MaxPrice)
	}
	return nil
}

// Match reports whether a trip satisfies every criterion. Ground trips have no
// flight, so only the price and total trip time criteria apply to them.
func Match(trip *entity.Trip, c entity.FilterCriteria) bool {
	if c.MinPrice != nil && trip.FlightPrice < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && trip.FlightPrice > *c.MaxPrice {
		return false
	}
	if c.MaxTripTime != nil && trip.TotalTripTime() > *c.MaxTripTime {
		return false
	}
	if trip.IsGround() || trip.DepartingFlight == nil {
		return true
	}

	dep := trip.DepartingFlight
	if c.MaxStops != nil && dep.NumberOfStops > *c.MaxStops {
		return false
	}
	if c.MaxFlightTime != nil && trip.TotalFlightTime() > *c.MaxFlightTime {
		return false
	}
	if !clockWithin(dep.DepartureTime.Hour()*60+dep.DepartureTime.Minute(), c.LatestDeparture) {
		return false
	}
	if !clockWithin(dep.ArrivalTime.Hour()*60+dep.ArrivalTime.Minute(), c.LatestArrival) {
		return false
	}
	if c.DepAirports != nil && !funk.ContainsString(c.DepAirports, dep.DepartureAirport) {
		return false
	}
	if c.ArrAirports != nil && !funk.ContainsString(c.ArrAirports, dep.ArrivalAirport) {
		return false
	}
	if c.Airlines != nil {
		for _, airline := range dep.Airlines {
			if !funk.ContainsString(c.Airlines, airline) {
				return false
			}
		}
	}
	return true
}

func clockWithin(minutes int, latest *string) bool {
	if latest == nil {
		return true
	}
	limit, err := ParseClock(*latest)
	if err != nil {
		return true
	}
	return minutes <= limit
}
