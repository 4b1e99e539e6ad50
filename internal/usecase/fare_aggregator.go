package usecase

import (
	"context"
	"errors"
	"time"

	"airtrip-service/internal/domain/entity"
	"airtrip-service/internal/domain/repository"
	"airtrip-service/pkg/logger"
	"airtrip-service/pkg/metrics"
	"airtrip-service/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// MaxResultsPerPair caps the itineraries kept from each pairing
const MaxResultsPerPair = 3

// FareAggregatorConfig bounds the fare fan-out
type FareAggregatorConfig struct {
	MaxInflight    int
	QueryTimeout   time.Duration
	MaxRetries     int
	InitialBackoff time.Duration
}

// FareStats counts how the pairings of one search fared
type FareStats struct {
	Queried int
	Failed  int
}

// FareAggregator prices every pairing concurrently under a fixed in-flight limit
type FareAggregator struct {
	fareRepo repository.FareRepository
	config   FareAggregatorConfig
	metrics  *metrics.Metrics
	logger   logger.Logger
}

// NewFareAggregator creates a new fare aggregator
func NewFareAggregator(fareRepo repository.FareRepository, config FareAggregatorConfig, metrics *metrics.Metrics, logger logger.Logger) *FareAggregator {
	if config.MaxInflight <= 0 {
		config.MaxInflight = 4
	}
	if config.QueryTimeout <= 0 {
		config.QueryTimeout = 20 * time.Second
	}
	if config.InitialBackoff <= 0 {
		config.InitialBackoff = 250 * time.Millisecond
	}

	return &FareAggregator{
		fareRepo: fareRepo,
		config:   config,
		metrics:  metrics,
		logger:   logger,
	}
}

// PriceAll queries every pairing and returns one trip slice per pairing, in pairing order.
// A failed pairing leaves its slot empty; only cancellation of ctx fails the call.
func (a *FareAggregator) PriceAll(ctx context.Context, pairs []Pairing, params *entity.SearchParams) ([][]entity.Trip, FareStats, error) {
	results := make([][]entity.Trip, len(pairs))
	failed := make([]bool, len(pairs))
	stats := FareStats{Queried: len(pairs)}

	var g errgroup.Group
	g.SetLimit(a.config.MaxInflight)

	for i, pair := range pairs {
		i, pair := i, pair
		g.Go(func() error {
			if ctx.Err() != nil {
				failed[i] = true
				return nil
			}

			trips, err := a.queryPair(ctx, pair, params)
			if err != nil {
				failed[i] = true
				a.metrics.FareQueries.WithLabelValues("failure").Inc()
				a.logger.Warn("Fare query failed",
					"origin", pair.Departure.IATA,
					"destination", pair.Arrival.IATA,
					"error", err)
				return nil
			}

			if len(trips) > MaxResultsPerPair {
				trips = trips[:MaxResultsPerPair]
			}
			results[i] = trips
			a.metrics.FareQueries.WithLabelValues("success").Inc()
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	for _, f := range failed {
		if f {
			stats.Failed++
		}
	}

	a.logger.Info("Priced pairings",
		"queried", stats.Queried,
		"failed", stats.Failed)

	return results, stats, nil
}

func (a *FareAggregator) queryPair(ctx context.Context, pair Pairing, params *entity.SearchParams) ([]entity.Trip, error) {
	query := repository.FareQuery{
		Origin:      pair.Departure.IATA,
		Destination: pair.Arrival.IATA,
		DepartDate:  params.DepartDate,
		Adults:      params.AdultPass,
		Children:    params.ChildPass,
		Infants:     params.InfantPass,
		CabinClass:  params.CabinClass,
		AccessTo:    pair.Departure.TravelTime,
		AccessFrom:  pair.Arrival.TravelTime,
		MaxResults:  MaxResultsPerPair,
	}
	if params.RoundTrip {
		query.ReturnDate = params.ReturnDate
	}

	policy := utils.RetryPolicy{
		MaxRetries:     a.config.MaxRetries,
		InitialBackoff: a.config.InitialBackoff,
		Retryable: func(err error) bool {
			// A per-attempt timeout is worth retrying while the search itself is still alive
			return errors.Is(err, repository.ErrTemporary) ||
				(errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil)
		},
	}

	var trips []entity.Trip
	err := utils.Retry(ctx, policy, func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, a.config.QueryTimeout)
		defer cancel()

		var err error
		trips, err = a.fareRepo.QueryFares(attemptCtx, query)
		return err
	})
	return trips, err
}
