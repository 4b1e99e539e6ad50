package entity

import "time"

// StopOver is an intermediate airport within one flight leg
type StopOver struct {
	AirportCode      string    `json:"airportCode"`
	StopOverDuration int       `json:"stopOverDuration"` // seconds
	ArrivalTime      time.Time `json:"arrivalTime"`
}

// Flight is one priced leg as returned by the fare source.
// Times are airport-local wall clock.
type Flight struct {
	Airlines         []string   `json:"airlines"`
	DepartureAirport string     `json:"departureAirport"`
	ArrivalAirport   string     `json:"arrivalAirport"`
	DepartureTime    time.Time  `json:"departureTime"`
	ArrivalTime      time.Time  `json:"arrivalTime"`
	FlightTime       int        `json:"flightTime"` // airborne seconds
	NumberOfStops    int        `json:"numberOfStops"`
	Price            float64    `json:"price"`
	LegID            string     `json:"legId,omitempty"`
	StopOvers        []StopOver `json:"stopOvers"`
	TimeToAirport    int        `json:"timeToAirport"`
	TimeFromAirport  int        `json:"timeFromAirport"`
}

// StopOverTime returns the total layover seconds of the leg
func (f *Flight) StopOverTime() int {
	total := 0
	for _, stop := range f.StopOvers {
		total += stop.StopOverDuration
	}
	return total
}

// DoorToDoorTime returns ground access, airborne and layover seconds combined
func (f *Flight) DoorToDoorTime() int {
	return f.TimeToAirport + f.FlightTime + f.StopOverTime() + f.TimeFromAirport
}
