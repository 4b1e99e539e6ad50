package entity

// Airport represents a catalog airport, optionally annotated with the ground
// travel time from a search origin
type Airport struct {
	IATA       string     `json:"iata"`
	Name       string     `json:"name,omitempty"`
	City       string     `json:"city,omitempty"`
	Coordinate Coordinate `json:"coordinate"`
	TravelTime int        `json:"travelTime"` // seconds from the search origin
}
