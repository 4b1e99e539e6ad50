package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"airtrip-service/internal/domain/entity"
	"airtrip-service/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orchestratorFixture struct {
	orchestrator *SearchOrchestrator
	geocode      *fakeGeocodeRepo
	travel       *fakeTravelRepo
	fares        *fakeFareRepo
	sessions     *fakeSessionRepo
}

func newOrchestratorFixture(times map[entity.Coordinate]int) *orchestratorFixture {
	geocode := &fakeGeocodeRepo{coords: map[string]*entity.Coordinate{
		"Times Square, New York": &manhattan,
		"Hollywood, Los Angeles": &hollywood,
	}}
	travel := &fakeTravelRepo{times: times}
	fares := &fakeFareRepo{fn: func(q repository.FareQuery) ([]entity.Trip, error) {
		return []entity.Trip{
			oneWayTrip(q.Origin, q.Destination, 200, "AA"),
			oneWayTrip(q.Origin, q.Destination, 150, "DL"),
		}, nil
	}}
	sessions := newFakeSessionRepo()

	m := testMetrics()
	log := testLogger()
	rangeFinder := NewRangeFinder(&fakeAirportRepo{airports: []entity.Airport{jfk, lga, lax, bur}}, travel,
		RangeFinderConfig{BatchSize: 25, PrefilterMargin: 0.25, MaxRetries: 1, InitialBackoff: time.Millisecond}, m, log)
	orchestrator := NewSearchOrchestrator(
		geocode,
		sessions,
		rangeFinder,
		NewPairingEnumerator(rangeFinder, log),
		NewFareAggregator(fares, FareAggregatorConfig{MaxInflight: 2, QueryTimeout: time.Second, InitialBackoff: time.Millisecond}, m, log),
		NewResultAggregator(),
		5*time.Second,
		m,
		log,
	)

	return &orchestratorFixture{
		orchestrator: orchestrator,
		geocode:      geocode,
		travel:       travel,
		fares:        fares,
		sessions:     sessions,
	}
}

func searchParams() entity.SearchParams {
	return entity.SearchParams{
		CabinClass:    "economy",
		AdultPass:     1,
		DepartDate:    "2025-06-01",
		DepartAddress: "Times Square, New York",
		ArriveAddress: "Hollywood, Los Angeles",
		DepartMode:    entity.ModeDriving,
		ArriveMode:    entity.ModeDriving,
		MaxTimeStart:  3600,
		MaxTimeEnd:    3600,
	}
}

func flightCount(trips []entity.Trip) int {
	count := 0
	for _, trip := range trips {
		if !trip.IsGround() {
			count++
		}
	}
	return count
}

func TestSearchSinglePairingScenario(t *testing.T) {
	fixture := newOrchestratorFixture(map[entity.Coordinate]int{
		jfk.Coordinate: 1200,
		lax.Coordinate: 1800,
	})

	result, err := fixture.orchestrator.Search(context.Background(), "s1", searchParams())
	require.NoError(t, err)

	assert.Equal(t, []float64{150, 200}, tripPrices(result.Trips))
	assert.Equal(t, 150.0, result.MinPrice)
	assert.Equal(t, 200.0, result.MaxPrice)
	assert.Equal(t, []string{"JFK"}, result.DepAirports)
	assert.Equal(t, []string{"LAX"}, result.ArrAirports)
	assert.Equal(t, 1, result.PairingsQueried)

	require.Len(t, fixture.fares.queries, 1)
	query := fixture.fares.queries[0]
	assert.Equal(t, "ECONOMY", query.CabinClass)
	assert.Equal(t, 1200, query.AccessTo)
	assert.Equal(t, 1800, query.AccessFrom)

	session, ok := fixture.sessions.sessions["s1"]
	require.True(t, ok)
	assert.Equal(t, &manhattan, session.Params.DepartCoord)
	assert.Equal(t, 10, session.Filter.Loaded)
}

func TestSearchNoArrivalAirportsYieldsOnlyGroundTrip(t *testing.T) {
	fixture := newOrchestratorFixture(map[entity.Coordinate]int{
		jfk.Coordinate: 1200,
		hollywood:      150000,
	})

	result, err := fixture.orchestrator.Search(context.Background(), "s1", searchParams())
	require.NoError(t, err)

	require.Len(t, result.Trips, 1)
	assert.True(t, result.Trips[0].IsGround())
	assert.Equal(t, 0, flightCount(result.Trips))
	assert.Equal(t, 0, fixture.fares.queryCount())
	assert.Empty(t, result.ArrAirports)
}

func TestSearchReusesCachedCoordinates(t *testing.T) {
	fixture := newOrchestratorFixture(map[entity.Coordinate]int{jfk.Coordinate: 1200})

	_, err := fixture.orchestrator.Search(context.Background(), "s1", searchParams())
	require.NoError(t, err)
	assert.Equal(t, 2, fixture.geocode.calls)

	_, err = fixture.orchestrator.Search(context.Background(), "s1", searchParams())
	require.NoError(t, err)
	assert.Equal(t, 2, fixture.geocode.calls)

	// A new session geocodes again
	_, err = fixture.orchestrator.Search(context.Background(), "s2", searchParams())
	require.NoError(t, err)
	assert.Equal(t, 4, fixture.geocode.calls)
}

func TestSearchErrors(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		fixture := newOrchestratorFixture(nil)
		params := searchParams()
		params.AdultPass = 0

		_, err := fixture.orchestrator.Search(context.Background(), "s1", params)
		var validationErr *ValidationError
		assert.True(t, errors.As(err, &validationErr))
		assert.Equal(t, 0, fixture.geocode.calls)
	})

	t.Run("unresolvable address", func(t *testing.T) {
		fixture := newOrchestratorFixture(nil)
		params := searchParams()
		params.ArriveAddress = "Atlantis"

		_, err := fixture.orchestrator.Search(context.Background(), "s1", params)
		var geocodeErr *GeocodeError
		require.True(t, errors.As(err, &geocodeErr))
		assert.Equal(t, "Atlantis", geocodeErr.Address)
	})

	t.Run("range lookup failure", func(t *testing.T) {
		fixture := newOrchestratorFixture(nil)
		fixture.travel.failures = []error{errors.New("REQUEST_DENIED"), errors.New("REQUEST_DENIED")}

		_, err := fixture.orchestrator.Search(context.Background(), "s1", searchParams())
		var rangeErr *RangeLookupError
		assert.True(t, errors.As(err, &rangeErr))
		_, saved := fixture.sessions.sessions["s1"]
		assert.False(t, saved)
	})
}

func TestSessionFilterFlow(t *testing.T) {
	fixture := newOrchestratorFixture(map[entity.Coordinate]int{
		jfk.Coordinate: 1200,
		lax.Coordinate: 1800,
	})
	ctx := context.Background()

	_, err := fixture.orchestrator.Search(ctx, "s1", searchParams())
	require.NoError(t, err)

	maxPrice := 160.0
	page, err := fixture.orchestrator.Filter(ctx, "s1", entity.FilterCriteria{MaxPrice: &maxPrice})
	require.NoError(t, err)
	assert.Equal(t, []float64{150}, tripPrices(page.Trips))
	assert.Equal(t, 1, page.Total)
	assert.False(t, page.ShouldLoad)

	page, err = fixture.orchestrator.LoadMore(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 20, page.Loaded)
	assert.Equal(t, []float64{150}, tripPrices(page.Trips))

	page, err = fixture.orchestrator.ResetFilter(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []float64{150, 200}, tripPrices(page.Trips))

	badClock := "7pm"
	_, err = fixture.orchestrator.Filter(ctx, "s1", entity.FilterCriteria{LatestDeparture: &badClock})
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))

	_, err = fixture.orchestrator.LoadMore(ctx, "unknown")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
