package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() SearchParams {
	return SearchParams{
		CabinClass:    "economy",
		AdultPass:     1,
		DepartDate:    "2026-12-01",
		DepartAddress: "350 5th Ave, New York",
		ArriveAddress: "6801 Hollywood Blvd, Los Angeles",
		DepartMode:    ModeDriving,
		ArriveMode:    ModeTransit,
		MaxTimeStart:  3600,
		MaxTimeEnd:    3600,
	}
}

func TestSearchParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *SearchParams)
		wantErr string
	}{
		{"valid one way", func(p *SearchParams) {}, ""},
		{"valid round trip", func(p *SearchParams) {
			p.RoundTrip = true
			p.ReturnDate = "2026-12-08"
		}, ""},
		{"explicit coordinate replaces address", func(p *SearchParams) {
			p.DepartAddress = ""
			p.DepartCoord = &Coordinate{Lat: 40.7, Lng: -74.0}
		}, ""},
		{"missing cabin", func(p *SearchParams) { p.CabinClass = "" }, "cabin class is required"},
		{"unknown cabin", func(p *SearchParams) { p.CabinClass = "steerage" }, "unknown cabin class"},
		{"no adults", func(p *SearchParams) { p.AdultPass = 0 }, "at least one adult"},
		{"negative infants", func(p *SearchParams) { p.InfantPass = -1 }, "cannot be negative"},
		{"bad depart date", func(p *SearchParams) { p.DepartDate = "12/01/2026" }, "depart date"},
		{"round trip without return", func(p *SearchParams) { p.RoundTrip = true }, "return date must be"},
		{"return before depart", func(p *SearchParams) {
			p.RoundTrip = true
			p.ReturnDate = "2026-11-30"
		}, "cannot be before depart"},
		{"missing arrive address", func(p *SearchParams) { p.ArriveAddress = "  " }, "arrive address is required"},
		{"unknown mode", func(p *SearchParams) { p.DepartMode = "teleport" }, "unknown depart mode"},
		{"zero budget", func(p *SearchParams) { p.MaxTimeEnd = 0 }, "time budgets must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSearchParamsValidateJoinsProblems(t *testing.T) {
	p := validParams()
	p.AdultPass = 0
	p.MaxTimeStart = 0

	err := p.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one adult")
	assert.Contains(t, err.Error(), "; time budgets must be positive")
}

func TestNewFlightTripTotals(t *testing.T) {
	dep := &Flight{
		FlightTime:      3 * 3600,
		TimeToAirport:   1800,
		TimeFromAirport: 1200,
		StopOvers:       []StopOver{{AirportCode: "ORD", StopOverDuration: 2700}},
	}
	ret := &Flight{FlightTime: 4 * 3600, TimeToAirport: 1200, TimeFromAirport: 1800}

	oneWay := NewFlightTrip(dep, nil, 180)
	assert.Equal(t, ItineraryFlight, oneWay.Kind)
	assert.Equal(t, 1800+3*3600+2700+1200, oneWay.TotalDepTime)
	assert.Nil(t, oneWay.TotalRetTime)
	assert.Equal(t, oneWay.TotalDepTime, oneWay.TotalTripTime())
	assert.Equal(t, 3*3600, oneWay.TotalFlightTime())

	round := NewFlightTrip(dep, ret, 320)
	require.NotNil(t, round.TotalRetTime)
	assert.Equal(t, 1200+4*3600+1800, *round.TotalRetTime)
	assert.Equal(t, round.TotalDepTime+*round.TotalRetTime, round.TotalTripTime())
	assert.Equal(t, 7*3600, round.TotalFlightTime())
	assert.False(t, round.IsGround())
}

func TestNewGroundTrip(t *testing.T) {
	back := 5400
	trip := NewGroundTrip(ModeTransit, 5000, &back)

	assert.True(t, trip.IsGround())
	assert.Equal(t, 0.0, trip.FlightPrice)
	assert.Equal(t, "Public Transit", trip.Ground.Label)
	assert.Equal(t, 5000, trip.TotalDepTime)
	assert.Equal(t, 10400, trip.TotalTripTime())
	assert.Equal(t, 0, trip.TotalFlightTime())
}

func TestTransportMode(t *testing.T) {
	assert.True(t, ModeDriving.Valid())
	assert.Equal(t, "Car", ModeDriving.Label())
	assert.Equal(t, 6.0, ModeWalking.AverageSpeedKmh())
	assert.False(t, TransportMode("hovercraft").Valid())
}

func TestFilterCriteriaEncodesCodeSets(t *testing.T) {
	unset, err := json.Marshal(FilterCriteria{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"airlines":null,"depAirports":null,"arrAirports":null}`, string(unset))

	none, err := json.Marshal(FilterCriteria{Airlines: []string{}, DepAirports: []string{}, ArrAirports: []string{"LAX"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"airlines":[],"depAirports":[],"arrAirports":["LAX"]}`, string(none))

	var decoded FilterCriteria
	require.NoError(t, json.Unmarshal(none, &decoded))
	assert.NotNil(t, decoded.Airlines)
	assert.Empty(t, decoded.Airlines)
	assert.Equal(t, []string{"LAX"}, decoded.ArrAirports)

	require.NoError(t, json.Unmarshal(unset, &decoded))
	assert.Nil(t, decoded.Airlines)
}

func TestSearchParamsEncodesJSONOnly(t *testing.T) {
	p := validParams()
	p.DepartCoord = &Coordinate{Lat: 40.75, Lng: -73.99}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded SearchParams
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, p, decoded)
	assert.Contains(t, string(data), `"departCoord":{"lat":40.75,"lng":-73.99}`)
}
