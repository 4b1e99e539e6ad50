package entity

// ItineraryKind tags the variant held by a Trip
type ItineraryKind string

const (
	ItineraryFlight ItineraryKind = "flight"
	ItineraryGround ItineraryKind = "ground"
)

// GroundLeg is a direct ground-transport itinerary with no flight segment
type GroundLeg struct {
	Mode     TransportMode `json:"mode"`
	Label    string        `json:"label"`
	TimeTo   int           `json:"timeTo"`
	TimeBack *int          `json:"timeBack,omitempty"`
}

// Trip is one ranked itinerary. Exactly one of the flight fields or Ground is
// populated, according to Kind. ReturningFlight / TimeBack / TotalRetTime are
// present iff the search was round-trip.
type Trip struct {
	Kind            ItineraryKind `json:"kind"`
	DepartingFlight *Flight       `json:"departingFlight,omitempty"`
	ReturningFlight *Flight       `json:"returningFlight,omitempty"`
	Ground          *GroundLeg    `json:"ground,omitempty"`
	FlightPrice     float64       `json:"flightPrice"`
	TotalDepTime    int           `json:"totalDepTime"`
	TotalRetTime    *int          `json:"totalRetTime,omitempty"`
}

// NewFlightTrip builds a flight itinerary and derives its totals
func NewFlightTrip(departing *Flight, returning *Flight, price float64) Trip {
	trip := Trip{
		Kind:            ItineraryFlight,
		DepartingFlight: departing,
		ReturningFlight: returning,
		FlightPrice:     price,
		TotalDepTime:    departing.DoorToDoorTime(),
	}
	if returning != nil {
		ret := returning.DoorToDoorTime()
		trip.TotalRetTime = &ret
	}
	return trip
}

// NewGroundTrip builds a direct ground-transport itinerary; timeBack is nil for one-way searches
func NewGroundTrip(mode TransportMode, timeTo int, timeBack *int) Trip {
	return Trip{
		Kind: ItineraryGround,
		Ground: &GroundLeg{
			Mode:     mode,
			Label:    mode.Label(),
			TimeTo:   timeTo,
			TimeBack: timeBack,
		},
		FlightPrice:  0,
		TotalDepTime: timeTo,
		TotalRetTime: timeBack,
	}
}

// IsGround reports whether the trip has no flight segment
func (t *Trip) IsGround() bool {
	return t.Kind == ItineraryGround
}

// TotalTripTime is the door-to-door time of both directions
func (t *Trip) TotalTripTime() int {
	total := t.TotalDepTime
	if t.TotalRetTime != nil {
		total += *t.TotalRetTime
	}
	return total
}

// TotalFlightTime is the airborne time of both directions, zero for ground trips
func (t *Trip) TotalFlightTime() int {
	total := 0
	if t.DepartingFlight != nil {
		total += t.DepartingFlight.FlightTime
	}
	if t.ReturningFlight != nil {
		total += t.ReturningFlight.FlightTime
	}
	return total
}
