package usecase

import (
	"sort"

	"airtrip-service/internal/domain/entity"

	"github.com/thoas/go-funk"
)

// ResultAggregator merges priced pairings and ground baselines into one ranked result
type ResultAggregator struct{}

// NewResultAggregator creates a new result aggregator
func NewResultAggregator() *ResultAggregator {
	return &ResultAggregator{}
}

// Aggregate flattens pairing results in pairing order followed by the placeholders,
// then ranks by price. Equal prices keep that construction order.
func (a *ResultAggregator) Aggregate(tripLists [][]entity.Trip, placeholders []entity.Trip, depAirports, arrAirports []entity.Airport, stats FareStats) *entity.ResultInfo {
	trips := make([]entity.Trip, 0)
	for _, list := range tripLists {
		trips = append(trips, list...)
	}
	trips = append(trips, placeholders...)

	sort.SliceStable(trips, func(i, j int) bool {
		return trips[i].FlightPrice < trips[j].FlightPrice
	})

	result := &entity.ResultInfo{
		Airlines:        collectAirlines(trips),
		DepAirports:     airportCodes(depAirports),
		ArrAirports:     airportCodes(arrAirports),
		Trips:           trips,
		PairingsQueried: stats.Queried,
		PairingsFailed:  stats.Failed,
	}
	if len(trips) > 0 {
		result.MinPrice = trips[0].FlightPrice
		result.MaxPrice = trips[len(trips)-1].FlightPrice
	}
	return result
}

func collectAirlines(trips []entity.Trip) []string {
	var codes []string
	for _, trip := range trips {
		if trip.DepartingFlight != nil {
			codes = append(codes, trip.DepartingFlight.Airlines...)
		}
		if trip.ReturningFlight != nil {
			codes = append(codes, trip.ReturningFlight.Airlines...)
		}
	}
	return funk.UniqString(codes)
}

func airportCodes(airports []entity.Airport) []string {
	codes := make([]string, 0, len(airports))
	for _, airport := range airports {
		codes = append(codes, airport.IATA)
	}
	return funk.UniqString(codes)
}
