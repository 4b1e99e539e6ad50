package usecase

import (
	"testing"

	"airtrip-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tripPrices(trips []entity.Trip) []float64 {
	prices := make([]float64, 0, len(trips))
	for _, trip := range trips {
		prices = append(prices, trip.FlightPrice)
	}
	return prices
}

func TestAggregateSingleQueryScenario(t *testing.T) {
	jfkAccess := jfk
	jfkAccess.TravelTime = 1200
	laxAccess := lax
	laxAccess.TravelTime = 1800

	tripLists := [][]entity.Trip{{
		oneWayTrip("JFK", "LAX", 200, "AA"),
		oneWayTrip("JFK", "LAX", 150, "DL"),
	}}

	result := NewResultAggregator().Aggregate(tripLists, nil, []entity.Airport{jfkAccess}, []entity.Airport{laxAccess}, FareStats{Queried: 1})

	assert.Equal(t, []float64{150, 200}, tripPrices(result.Trips))
	assert.Equal(t, 150.0, result.MinPrice)
	assert.Equal(t, 200.0, result.MaxPrice)
	assert.Equal(t, []string{"DL", "AA"}, result.Airlines)
	assert.Equal(t, []string{"JFK"}, result.DepAirports)
	assert.Equal(t, []string{"LAX"}, result.ArrAirports)
	assert.Equal(t, 1, result.PairingsQueried)
}

func TestAggregateEmpty(t *testing.T) {
	result := NewResultAggregator().Aggregate(nil, nil, nil, nil, FareStats{})

	require.NotNil(t, result.Trips)
	assert.Empty(t, result.Trips)
	assert.Equal(t, 0.0, result.MinPrice)
	assert.Equal(t, 0.0, result.MaxPrice)
	assert.Empty(t, result.Airlines)
}

func TestAggregateSortedWithinBounds(t *testing.T) {
	tripLists := [][]entity.Trip{
		{oneWayTrip("JFK", "LAX", 320, "AA"), oneWayTrip("JFK", "LAX", 90, "B6")},
		{},
		{oneWayTrip("LGA", "BUR", 410, "UA"), oneWayTrip("LGA", "BUR", 90, "AA")},
	}
	ground := entity.NewGroundTrip(entity.ModeDriving, 150000, nil)

	result := NewResultAggregator().Aggregate(tripLists, []entity.Trip{ground}, []entity.Airport{jfk, lga}, []entity.Airport{lax, bur}, FareStats{Queried: 3, Failed: 1})

	assert.Equal(t, []float64{0, 90, 90, 320, 410}, tripPrices(result.Trips))
	for _, trip := range result.Trips {
		assert.GreaterOrEqual(t, trip.FlightPrice, result.MinPrice)
		assert.LessOrEqual(t, trip.FlightPrice, result.MaxPrice)
	}
	// Equal prices keep construction order
	assert.Equal(t, "JFK", result.Trips[1].DepartingFlight.DepartureAirport)
	assert.Equal(t, "LGA", result.Trips[2].DepartingFlight.DepartureAirport)
	assert.Equal(t, 1, result.PairingsFailed)
}

func TestAggregateDeduplicatesAirlinesAndAirports(t *testing.T) {
	var trips []entity.Trip
	for i := 0; i < 10; i++ {
		departing := &entity.Flight{Airlines: []string{"AA", "BA"}, DepartureAirport: "JFK", ArrivalAirport: "LAX"}
		returning := &entity.Flight{Airlines: []string{"AA"}, DepartureAirport: "LAX", ArrivalAirport: "JFK"}
		trips = append(trips, entity.NewFlightTrip(departing, returning, float64(100+i)))
	}

	result := NewResultAggregator().Aggregate([][]entity.Trip{trips}, nil,
		[]entity.Airport{jfk, jfk, lga}, []entity.Airport{lax}, FareStats{Queried: 1})

	assert.Equal(t, []string{"AA", "BA"}, result.Airlines)
	assert.Equal(t, []string{"JFK", "LGA"}, result.DepAirports)
}
