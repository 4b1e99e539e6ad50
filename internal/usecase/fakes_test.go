package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"airtrip-service/internal/domain/entity"
	"airtrip-service/internal/domain/repository"
	"airtrip-service/pkg/logger"
	"airtrip-service/pkg/metrics"
)

var (
	manhattan = entity.Coordinate{Lat: 40.7580, Lng: -73.9855}
	hollywood = entity.Coordinate{Lat: 34.0928, Lng: -118.3287}

	jfk = entity.Airport{IATA: "JFK", Name: "John F. Kennedy", Coordinate: entity.Coordinate{Lat: 40.6413, Lng: -73.7781}}
	lga = entity.Airport{IATA: "LGA", Name: "LaGuardia", Coordinate: entity.Coordinate{Lat: 40.7769, Lng: -73.8740}}
	ewr = entity.Airport{IATA: "EWR", Name: "Newark", Coordinate: entity.Coordinate{Lat: 40.6895, Lng: -74.1745}}
	lax = entity.Airport{IATA: "LAX", Name: "Los Angeles", Coordinate: entity.Coordinate{Lat: 33.9416, Lng: -118.4085}}
	bur = entity.Airport{IATA: "BUR", Name: "Burbank", Coordinate: entity.Coordinate{Lat: 34.2007, Lng: -118.3587}}
)

func testLogger() logger.Logger {
	return logger.NewNopLogger()
}

func testMetrics() *metrics.Metrics {
	return metrics.NewMetrics("test")
}

type fakeAirportRepo struct {
	airports []entity.Airport
	err      error
}

func (r *fakeAirportRepo) ListAll(ctx context.Context) ([]entity.Airport, error) {
	return r.airports, r.err
}

// fakeTravelRepo answers by destination coordinate; unknown destinations are unreachable
type fakeTravelRepo struct {
	mu       sync.Mutex
	times    map[entity.Coordinate]int
	failures []error // returned, in order, before answering
	calls    int
	batches  [][]entity.Coordinate
}

func (r *fakeTravelRepo) MatrixTimes(ctx context.Context, origin entity.Coordinate, destinations []entity.Coordinate, mode entity.TransportMode) ([]repository.TravelTime, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.batches = append(r.batches, destinations)
	if len(r.failures) > 0 {
		err := r.failures[0]
		r.failures = r.failures[1:]
		return nil, err
	}

	times := make([]repository.TravelTime, len(destinations))
	for i, d := range destinations {
		if seconds, ok := r.times[d]; ok {
			times[i] = repository.TravelTime{Seconds: seconds, Reachable: true}
		}
	}
	return times, nil
}

type fakeRouter struct {
	times map[entity.TransportMode]GroundTimes
	err   error
}

func (r *fakeRouter) PointToPoint(ctx context.Context, origin, destination entity.Coordinate, mode entity.TransportMode) (GroundTimes, error) {
	if r.err != nil {
		return GroundTimes{}, r.err
	}
	return r.times[mode], nil
}

type fakeFareRepo struct {
	mu       sync.Mutex
	fn       func(query repository.FareQuery) ([]entity.Trip, error)
	delay    time.Duration
	queries  []repository.FareQuery
	inflight int32
	peak     int32
}

func (r *fakeFareRepo) QueryFares(ctx context.Context, query repository.FareQuery) ([]entity.Trip, error) {
	current := atomic.AddInt32(&r.inflight, 1)
	defer atomic.AddInt32(&r.inflight, -1)
	for {
		peak := atomic.LoadInt32(&r.peak)
		if current <= peak || atomic.CompareAndSwapInt32(&r.peak, peak, current) {
			break
		}
	}

	r.mu.Lock()
	r.queries = append(r.queries, query)
	r.mu.Unlock()

	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return r.fn(query)
}

func (r *fakeFareRepo) queryCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queries)
}

type fakeGeocodeRepo struct {
	coords map[string]*entity.Coordinate
	calls  int
}

func (r *fakeGeocodeRepo) Geocode(ctx context.Context, address string) (*entity.Coordinate, error) {
	r.calls++
	return r.coords[address], nil
}

type fakeSessionRepo struct {
	sessions map[string]entity.SearchSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]entity.SearchSession{}}
}

func (r *fakeSessionRepo) Load(ctx context.Context, id string) (*entity.SearchSession, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &session, nil
}

func (r *fakeSessionRepo) Save(ctx context.Context, session *entity.SearchSession) error {
	r.sessions[session.ID] = *session
	return nil
}

type fakeCredentialRepo struct {
	credentials map[string]entity.Credential
}

func newFakeCredentialRepo() *fakeCredentialRepo {
	return &fakeCredentialRepo{credentials: map[string]entity.Credential{}}
}

func (r *fakeCredentialRepo) FindByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	credential, ok := r.credentials[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &credential, nil
}

func (r *fakeCredentialRepo) Save(ctx context.Context, credential *entity.Credential) error {
	r.credentials[credential.Email] = *credential
	return nil
}

type fakeMailRepo struct {
	links []string
}

func (r *fakeMailRepo) SendPasswordReset(ctx context.Context, email, link string) error {
	r.links = append(r.links, link)
	return nil
}

func oneWayTrip(dep, arr string, price float64, airlines ...string) entity.Trip {
	flight := &entity.Flight{
		Airlines:         airlines,
		DepartureAirport: dep,
		ArrivalAirport:   arr,
		FlightTime:       6 * 3600,
		Price:            price,
	}
	return entity.NewFlightTrip(flight, nil, price)
}
