package repository

import (
	"context"
	"testing"
	"time"

	"airtrip-service/internal/domain/entity"
	"airtrip-service/internal/domain/repository"
	"airtrip-service/pkg/tripfilter"

	redisV8 "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository(time.Minute)

	_, err := repo.Load(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	session := &entity.SearchSession{
		ID:     "abc",
		Result: &entity.ResultInfo{MinPrice: 150, MaxPrice: 200},
		Filter: entity.FilterState{Loaded: 20},
	}
	require.NoError(t, repo.Save(ctx, session))

	loaded, err := repo.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 20, loaded.Filter.Loaded)
	assert.Equal(t, 150.0, loaded.Result.MinPrice)

	// Mutating the loaded copy does not change the stored session
	loaded.Filter.Loaded = 30
	again, err := repo.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 20, again.Filter.Loaded)
}

func sessionFixture(criteria entity.FilterCriteria) *entity.SearchSession {
	eastern := time.FixedZone("EST", -5*3600)
	flight := func(dep, arr string, airline string, departAt, arriveAt time.Time) *entity.Flight {
		return &entity.Flight{
			Airlines:         []string{airline},
			DepartureAirport: dep,
			ArrivalAirport:   arr,
			DepartureTime:    departAt,
			ArrivalTime:      arriveAt,
			FlightTime:       6 * 3600,
			StopOvers:        []entity.StopOver{},
			TimeToAirport:    1800,
			TimeFromAirport:  1200,
		}
	}
	back := 31000

	trips := []entity.Trip{
		entity.NewGroundTrip(entity.ModeDriving, 30000, &back),
		entity.NewFlightTrip(
			flight("JFK", "LAX", "AA", time.Date(2026, 12, 1, 8, 0, 0, 0, eastern), time.Date(2026, 12, 1, 11, 0, 0, 0, eastern)),
			flight("LAX", "JFK", "AA", time.Date(2026, 12, 8, 9, 0, 0, 0, eastern), time.Date(2026, 12, 8, 17, 0, 0, 0, eastern)),
			150),
		entity.NewFlightTrip(
			flight("EWR", "LAX", "UA", time.Date(2026, 12, 1, 19, 30, 0, 0, eastern), time.Date(2026, 12, 1, 22, 45, 0, 0, eastern)),
			flight("LAX", "EWR", "UA", time.Date(2026, 12, 8, 7, 0, 0, 0, eastern), time.Date(2026, 12, 8, 15, 0, 0, 0, eastern)),
			200),
	}

	return &entity.SearchSession{
		ID: "abc",
		Params: entity.SearchParams{
			CabinClass:    entity.CabinEconomy,
			RoundTrip:     true,
			AdultPass:     1,
			DepartDate:    "2026-12-01",
			ReturnDate:    "2026-12-08",
			DepartAddress: "350 5th Ave, New York",
			DepartCoord:   &entity.Coordinate{Lat: 40.7484, Lng: -73.9857},
			ArriveAddress: "6801 Hollywood Blvd, Los Angeles",
			ArriveCoord:   &entity.Coordinate{Lat: 34.1016, Lng: -118.3406},
			DepartMode:    entity.ModeDriving,
			ArriveMode:    entity.ModeDriving,
			MaxTimeStart:  3600,
			MaxTimeEnd:    3600,
		},
		Result: &entity.ResultInfo{
			Airlines:        []string{"AA", "UA"},
			DepAirports:     []string{"JFK", "EWR"},
			ArrAirports:     []string{"LAX"},
			MinPrice:        0,
			MaxPrice:        200,
			Trips:           trips,
			PairingsQueried: 2,
		},
		Filter: entity.FilterState{Criteria: criteria, Loaded: 20},
	}
}

func TestSessionJSONRoundTrip(t *testing.T) {
	latest := "12:00"
	testCases := []struct {
		name     string
		criteria entity.FilterCriteria
		visible  int
	}{
		{name: "nil sets allow everything", criteria: entity.FilterCriteria{}, visible: 3},
		{name: "empty airline set allows no flights", criteria: entity.FilterCriteria{Airlines: []string{}}, visible: 1},
		{name: "empty departure set allows no flights", criteria: entity.FilterCriteria{DepAirports: []string{}}, visible: 1},
		{name: "populated sets", criteria: entity.FilterCriteria{Airlines: []string{"UA"}, ArrAirports: []string{"LAX"}}, visible: 2},
		{name: "departure clock uses local wall time", criteria: entity.FilterCriteria{LatestDeparture: &latest}, visible: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			original := sessionFixture(tc.criteria)

			data, err := encodeSession(original)
			require.NoError(t, err)
			decoded, err := decodeSession(data)
			require.NoError(t, err)

			assert.Equal(t, original.Params, decoded.Params)
			assert.Equal(t, original.Filter, decoded.Filter)
			assert.Equal(t, tc.criteria.Airlines == nil, decoded.Filter.Criteria.Airlines == nil)
			assert.Equal(t, tc.criteria.DepAirports == nil, decoded.Filter.Criteria.DepAirports == nil)
			require.Len(t, decoded.Result.Trips, 3)

			ground := decoded.Result.Trips[0]
			assert.True(t, ground.IsGround())
			require.NotNil(t, ground.TotalRetTime)
			assert.Equal(t, 31000, *ground.TotalRetTime)

			dep := decoded.Result.Trips[1].DepartingFlight
			require.NotNil(t, dep)
			assert.True(t, original.Result.Trips[1].DepartingFlight.DepartureTime.Equal(dep.DepartureTime))
			assert.Equal(t, 8, dep.DepartureTime.Hour())
			assert.Equal(t, 11, dep.ArrivalTime.Hour())

			before := tripfilter.Restore(original.Result, original.Filter)
			after := tripfilter.Restore(decoded.Result, decoded.Filter)
			assert.Equal(t, tc.visible, before.Total())
			assert.Equal(t, before.Total(), after.Total())
			assert.Equal(t, 20, after.Loaded())
		})
	}
}

func TestDecodeSessionRejectsGarbage(t *testing.T) {
	_, err := decodeSession([]byte("not json"))
	assert.Error(t, err)
}

func TestRedisSessionRepositoryUnavailable(t *testing.T) {
	client := redisV8.NewClient(&redisV8.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	repo := NewRedisSessionRepository(client, time.Minute)

	_, err := repo.Load(context.Background(), "abc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)

	err = repo.Save(context.Background(), sessionFixture(entity.FilterCriteria{}))
	assert.Error(t, err)
}
