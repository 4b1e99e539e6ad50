package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"airtrip-service/internal/domain/entity"
	"airtrip-service/internal/domain/repository"
	"airtrip-service/pkg/logger"
	"airtrip-service/pkg/metrics"
	"airtrip-service/pkg/utils"
)

// RangeFinderConfig tunes the airport range lookup
type RangeFinderConfig struct {
	BatchSize       int
	PrefilterMargin float64
	MaxRetries      int
	InitialBackoff  time.Duration
}

// GroundTimes is the direct ground travel time between two addresses
type GroundTimes struct {
	TimeTo        int
	TimeBack      int
	Reachable     bool
	BackReachable bool
}

// RangeFinder discovers the airports reachable from a coordinate within a time budget
type RangeFinder struct {
	airportRepo repository.AirportRepository
	travelRepo  repository.TravelTimeRepository
	config      RangeFinderConfig
	metrics     *metrics.Metrics
	logger      logger.Logger
}

// NewRangeFinder creates a new range finder
func NewRangeFinder(
	airportRepo repository.AirportRepository,
	travelRepo repository.TravelTimeRepository,
	config RangeFinderConfig,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *RangeFinder {
	if config.BatchSize <= 0 {
		config.BatchSize = 25
	}
	if config.PrefilterMargin < 0 {
		config.PrefilterMargin = 0
	}
	if config.InitialBackoff <= 0 {
		config.InitialBackoff = 200 * time.Millisecond
	}

	return &RangeFinder{
		airportRepo: airportRepo,
		travelRepo:  travelRepo,
		config:      config,
		metrics:     metrics,
		logger:      logger,
	}
}

// FindCandidates returns the airports reachable within budgetSeconds, nearest first
func (f *RangeFinder) FindCandidates(ctx context.Context, origin entity.Coordinate, budgetSeconds int, mode entity.TransportMode) ([]entity.Airport, error) {
	if budgetSeconds <= 0 {
		return []entity.Airport{}, nil
	}

	catalog, err := f.airportRepo.ListAll(ctx)
	if err != nil {
		f.metrics.RangeLookups.WithLabelValues("failure").Inc()
		return nil, &RangeLookupError{Op: "catalog", Err: err}
	}

	candidates := f.prefilter(catalog, origin, budgetSeconds, mode)
	f.logger.Debug("Prefiltered airports",
		"mode", mode,
		"budget", budgetSeconds,
		"catalog", len(catalog),
		"candidates", len(candidates))

	survivors := make([]entity.Airport, 0, len(candidates))
	for start := 0; start < len(candidates); start += f.config.BatchSize {
		batch := candidates[start:utils.MinInt(start+f.config.BatchSize, len(candidates))]

		destinations := make([]entity.Coordinate, 0, len(batch))
		for _, airport := range batch {
			destinations = append(destinations, airport.Coordinate)
		}

		times, err := f.matrixWithRetry(ctx, origin, destinations, mode)
		if err != nil {
			f.metrics.RangeLookups.WithLabelValues("failure").Inc()
			if ctx.Err() != nil {
				return nil, fmt.Errorf("range lookup interrupted: %w", ctx.Err())
			}
			return nil, &RangeLookupError{Op: "travel time", Err: err}
		}
		if len(times) != len(batch) {
			f.metrics.RangeLookups.WithLabelValues("failure").Inc()
			return nil, &RangeLookupError{Op: "travel time", Err: fmt.Errorf("expected %d travel times, got %d", len(batch), len(times))}
		}

		for i, airport := range batch {
			if !times[i].Reachable || times[i].Seconds > budgetSeconds {
				continue
			}
			airport.TravelTime = times[i].Seconds
			survivors = append(survivors, airport)
		}
	}

	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].TravelTime < survivors[j].TravelTime
	})

	f.metrics.RangeLookups.WithLabelValues("success").Inc()
	f.logger.Info("Found reachable airports",
		"mode", mode,
		"budget", budgetSeconds,
		"airports", len(survivors))

	return survivors, nil
}

// PointToPoint returns the direct ground travel time in both directions
func (f *RangeFinder) PointToPoint(ctx context.Context, origin, destination entity.Coordinate, mode entity.TransportMode) (GroundTimes, error) {
	var result GroundTimes

	to, err := f.matrixWithRetry(ctx, origin, []entity.Coordinate{destination}, mode)
	if err != nil {
		return result, &RangeLookupError{Op: "direct route", Err: err}
	}
	back, err := f.matrixWithRetry(ctx, destination, []entity.Coordinate{origin}, mode)
	if err != nil {
		return result, &RangeLookupError{Op: "direct return route", Err: err}
	}

	if len(to) == 1 && to[0].Reachable {
		result.TimeTo = to[0].Seconds
		result.Reachable = true
	}
	if len(back) == 1 && back[0].Reachable {
		result.TimeBack = back[0].Seconds
		result.BackReachable = true
	}
	return result, nil
}

// prefilter keeps airports whose straight-line estimate fits the budget plus margin, in catalog order
func (f *RangeFinder) prefilter(catalog []entity.Airport, origin entity.Coordinate, budgetSeconds int, mode entity.TransportMode) []entity.Airport {
	limit := float64(budgetSeconds) * (1 + f.config.PrefilterMargin)
	speed := mode.AverageSpeedKmh()

	candidates := make([]entity.Airport, 0)
	for _, airport := range catalog {
		km := utils.HaversineKm(origin.Lat, origin.Lng, airport.Coordinate.Lat, airport.Coordinate.Lng)
		if float64(utils.EstimateSeconds(km, speed)) <= limit {
			candidates = append(candidates, airport)
		}
	}
	return candidates
}

func (f *RangeFinder) matrixWithRetry(ctx context.Context, origin entity.Coordinate, destinations []entity.Coordinate, mode entity.TransportMode) ([]repository.TravelTime, error) {
	var times []repository.TravelTime
	policy := utils.RetryPolicy{
		MaxRetries:     f.config.MaxRetries,
		InitialBackoff: f.config.InitialBackoff,
		Retryable: func(err error) bool {
			return errors.Is(err, repository.ErrTemporary)
		},
	}

	err := utils.Retry(ctx, policy, func(ctx context.Context) error {
		var err error
		times, err = f.travelRepo.MatrixTimes(ctx, origin, destinations, mode)
		if err != nil {
			f.logger.Warn("Travel time lookup failed",
				"mode", mode,
				"destinations", len(destinations),
				"error", err)
		}
		return err
	})
	return times, err
}
