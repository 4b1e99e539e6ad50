package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Cabin classes accepted by the fare source
const (
	CabinEconomy        = "ECONOMY"
	CabinPremiumEconomy = "PREMIUM_ECONOMY"
	CabinBusiness       = "BUSINESS"
	CabinFirst          = "FIRST"
)

// DateLayout is the format of DepartDate and ReturnDate
const DateLayout = "2006-01-02"

// SearchParams holds the user's search request
type SearchParams struct {
	CabinClass    string        `json:"cabinClass"`
	RoundTrip     bool          `json:"roundTrip"`
	AdultPass     int           `json:"adultPass"`
	ChildPass     int           `json:"childPass"`
	InfantPass    int           `json:"infantPass"`
	DepartDate    string        `json:"departDate"`
	ReturnDate    string        `json:"returnDate,omitempty"`
	DepartAddress string        `json:"departAddress"`
	DepartCoord   *Coordinate   `json:"departCoord,omitempty"`
	ArriveAddress string        `json:"arriveAddress"`
	ArriveCoord   *Coordinate   `json:"arriveCoord,omitempty"`
	DepartMode    TransportMode `json:"departMode"`
	ArriveMode    TransportMode `json:"arriveMode"`
	MaxTimeStart  int           `json:"maxTimeStart"` // seconds
	MaxTimeEnd    int           `json:"maxTimeEnd"`   // seconds
}

// Validate checks the request and returns every problem found joined together
func (p *SearchParams) Validate() error {
	var problems []string

	switch strings.ToUpper(p.CabinClass) {
	case CabinEconomy, CabinPremiumEconomy, CabinBusiness, CabinFirst:
	case "":
		problems = append(problems, "cabin class is required")
	default:
		problems = append(problems, fmt.Sprintf("unknown cabin class %q", p.CabinClass))
	}

	if p.AdultPass < 1 {
		problems = append(problems, "at least one adult passenger is required")
	}
	if p.ChildPass < 0 || p.InfantPass < 0 {
		problems = append(problems, "passenger counts cannot be negative")
	}

	depart, err := time.Parse(DateLayout, p.DepartDate)
	if err != nil {
		problems = append(problems, "depart date must be YYYY-MM-DD")
	}
	if p.RoundTrip {
		ret, retErr := time.Parse(DateLayout, p.ReturnDate)
		switch {
		case retErr != nil:
			problems = append(problems, "return date must be YYYY-MM-DD for a round trip")
		case err == nil && ret.Before(depart):
			problems = append(problems, "return date cannot be before depart date")
		}
	}

	if strings.TrimSpace(p.DepartAddress) == "" && p.DepartCoord == nil {
		problems = append(problems, "depart address is required")
	}
	if strings.TrimSpace(p.ArriveAddress) == "" && p.ArriveCoord == nil {
		problems = append(problems, "arrive address is required")
	}
	if !p.DepartMode.Valid() {
		problems = append(problems, fmt.Sprintf("unknown depart mode %q", p.DepartMode))
	}
	if !p.ArriveMode.Valid() {
		problems = append(problems, fmt.Sprintf("unknown arrive mode %q", p.ArriveMode))
	}
	if p.MaxTimeStart <= 0 || p.MaxTimeEnd <= 0 {
		problems = append(problems, "time budgets must be positive")
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.New(strings.Join(problems, "; "))
}
