package entity

// FilterCriteria narrows a result set. A nil field places no restriction.
// For the code sets, nil allows everything and an empty non-nil slice allows nothing;
// they are never omitted when encoded so JSON null and [] keep that distinction.
type FilterCriteria struct {
	MaxStops        *int     `json:"maxStops,omitempty"`
	MinPrice        *float64 `json:"minPrice,omitempty"`
	MaxPrice        *float64 `json:"maxPrice,omitempty"`
	MaxTripTime     *int     `json:"maxTripTime,omitempty"`
	MaxFlightTime   *int     `json:"maxFlightTime,omitempty"`
	LatestDeparture *string  `json:"latestDeparture,omitempty"` // HH:MM
	LatestArrival   *string  `json:"latestArrival,omitempty"`   // HH:MM
	Airlines        []string `json:"airlines"`
	DepAirports     []string `json:"depAirports"`
	ArrAirports     []string `json:"arrAirports"`
}

// FilterState is the serializable cursor over one result set
type FilterState struct {
	Criteria FilterCriteria `json:"criteria"`
	Loaded   int            `json:"loaded"`
}
