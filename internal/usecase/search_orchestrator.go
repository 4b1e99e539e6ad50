package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"airtrip-service/internal/domain/entity"
	"airtrip-service/internal/domain/repository"
	"airtrip-service/pkg/logger"
	"airtrip-service/pkg/metrics"
	"airtrip-service/pkg/tripfilter"

	"golang.org/x/sync/errgroup"
)

// ResultsPage is the visible slice of a session's filtered results
type ResultsPage struct {
	Trips      []entity.Trip `json:"trips"`
	ShouldLoad bool          `json:"shouldLoad"`
	Total      int           `json:"total"`
	Loaded     int           `json:"loaded"`
}

// SearchOrchestrator runs a trip search end to end and serves follow-up
// filter and pagination requests from the cached session
type SearchOrchestrator struct {
	geocodeRepo   repository.GeocodeRepository
	sessionRepo   repository.SessionRepository
	rangeFinder   *RangeFinder
	enumerator    *PairingEnumerator
	fares         *FareAggregator
	aggregator    *ResultAggregator
	searchTimeout time.Duration
	metrics       *metrics.Metrics
	logger        logger.Logger
}

// NewSearchOrchestrator creates a new search orchestrator
func NewSearchOrchestrator(
	geocodeRepo repository.GeocodeRepository,
	sessionRepo repository.SessionRepository,
	rangeFinder *RangeFinder,
	enumerator *PairingEnumerator,
	fares *FareAggregator,
	aggregator *ResultAggregator,
	searchTimeout time.Duration,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *SearchOrchestrator {
	if searchTimeout <= 0 {
		searchTimeout = 60 * time.Second
	}

	return &SearchOrchestrator{
		geocodeRepo:   geocodeRepo,
		sessionRepo:   sessionRepo,
		rangeFinder:   rangeFinder,
		enumerator:    enumerator,
		fares:         fares,
		aggregator:    aggregator,
		searchTimeout: searchTimeout,
		metrics:       metrics,
		logger:        logger,
	}
}

// Search finds, prices and ranks every itinerary for params and stores the result in the session
func (o *SearchOrchestrator) Search(ctx context.Context, sessionID string, params entity.SearchParams) (*entity.ResultInfo, error) {
	start := time.Now()
	log := o.logger.With("sessionId", sessionID)

	result, err := o.search(ctx, sessionID, params, log)

	o.metrics.SearchDuration.Observe(time.Since(start).Seconds())
	o.metrics.SearchesTotal.WithLabelValues(searchOutcome(err)).Inc()
	if err != nil {
		o.metrics.ErrorsCount.WithLabelValues("search").Inc()
		log.Error("Search failed", "error", err, "duration", time.Since(start).String())
		return nil, err
	}

	log.Info("Search completed",
		"trips", len(result.Trips),
		"pairingsQueried", result.PairingsQueried,
		"pairingsFailed", result.PairingsFailed,
		"duration", time.Since(start).String())
	return result, nil
}

func (o *SearchOrchestrator) search(ctx context.Context, sessionID string, params entity.SearchParams, log logger.Logger) (*entity.ResultInfo, error) {
	if err := params.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}
	params.CabinClass = strings.ToUpper(params.CabinClass)

	ctx, cancel := context.WithTimeout(ctx, o.searchTimeout)
	defer cancel()

	previous, err := o.sessionRepo.Load(ctx, sessionID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Warn("Failed to load previous session", "error", err)
	}
	var prevParams *entity.SearchParams
	if previous != nil {
		prevParams = &previous.Params
	}

	// Step 1: Resolve both addresses, reusing cached coordinates when the address is unchanged
	params.DepartCoord, err = o.resolveCoordinate(ctx, params.DepartAddress, params.DepartCoord, prevAddress(prevParams, true), prevCoord(prevParams, true))
	if err != nil {
		return nil, err
	}
	params.ArriveCoord, err = o.resolveCoordinate(ctx, params.ArriveAddress, params.ArriveCoord, prevAddress(prevParams, false), prevCoord(prevParams, false))
	if err != nil {
		return nil, err
	}

	// Step 2: Find reachable airports on both sides concurrently
	var depAirports, arrAirports []entity.Airport
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		depAirports, err = o.rangeFinder.FindCandidates(gctx, *params.DepartCoord, params.MaxTimeStart, params.DepartMode)
		return err
	})
	g.Go(func() error {
		var err error
		arrAirports, err = o.rangeFinder.FindCandidates(gctx, *params.ArriveCoord, params.MaxTimeEnd, params.ArriveMode)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, o.deadlineAware(ctx, err)
	}

	// Step 3: Enumerate pairings and ground baselines
	plan, err := o.enumerator.Enumerate(ctx, depAirports, arrAirports, &params)
	if err != nil {
		return nil, o.deadlineAware(ctx, err)
	}

	// Step 4: Price every pairing
	tripLists, stats, err := o.fares.PriceAll(ctx, plan.Pairs, &params)
	if err != nil {
		return nil, o.deadlineAware(ctx, err)
	}

	// Step 5: Merge and rank
	result := o.aggregator.Aggregate(tripLists, plan.GroundTrips, depAirports, arrAirports, stats)

	session := &entity.SearchSession{
		ID:     sessionID,
		Params: params,
		Result: result,
		Filter: tripfilter.New(result.Trips).State(),
	}
	if err := o.sessionRepo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save search session: %w", err)
	}

	return result, nil
}

func (o *SearchOrchestrator) resolveCoordinate(ctx context.Context, address string, explicit *entity.Coordinate, cachedAddress string, cached *entity.Coordinate) (*entity.Coordinate, error) {
	if explicit != nil {
		return explicit, nil
	}
	address = strings.TrimSpace(address)
	if cached != nil && cachedAddress == address {
		o.logger.Debug("Reusing cached coordinate", "address", address)
		return cached, nil
	}

	coord, err := o.geocodeRepo.Geocode(ctx, address)
	if err != nil {
		if ctx.Err() != nil {
			return nil, o.deadlineAware(ctx, err)
		}
		return nil, &GeocodeError{Address: address, Err: err}
	}
	if coord == nil {
		return nil, &GeocodeError{Address: address}
	}
	return coord, nil
}

// deadlineAware reports an expired search deadline in preference to the error it caused
func (o *SearchOrchestrator) deadlineAware(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("search deadline exceeded: %w", context.DeadlineExceeded)
	}
	return err
}

func prevAddress(params *entity.SearchParams, depart bool) string {
	if params == nil {
		return ""
	}
	if depart {
		return strings.TrimSpace(params.DepartAddress)
	}
	return strings.TrimSpace(params.ArriveAddress)
}

func prevCoord(params *entity.SearchParams, depart bool) *entity.Coordinate {
	if params == nil {
		return nil
	}
	if depart {
		return params.DepartCoord
	}
	return params.ArriveCoord
}

func searchOutcome(err error) string {
	var validationErr *ValidationError
	var geocodeErr *GeocodeError
	var rangeErr *RangeLookupError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &validationErr):
		return "invalid"
	case errors.As(err, &geocodeErr):
		return "geocode_failed"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &rangeErr):
		return "range_failed"
	default:
		return "error"
	}
}

// Filter applies new criteria to the session's results and rewinds pagination
func (o *SearchOrchestrator) Filter(ctx context.Context, sessionID string, criteria entity.FilterCriteria) (*ResultsPage, error) {
	return o.withEngine(ctx, sessionID, func(engine *tripfilter.Engine) error {
		if err := engine.SetCriteria(criteria); err != nil {
			return &ValidationError{Err: err}
		}
		engine.ApplyFilter()
		return nil
	})
}

// ResetFilter clears every criterion on the session's results
func (o *SearchOrchestrator) ResetFilter(ctx context.Context, sessionID string) (*ResultsPage, error) {
	return o.withEngine(ctx, sessionID, func(engine *tripfilter.Engine) error {
		engine.ResetFilter()
		return nil
	})
}

// LoadMore reveals the next page of the session's filtered results
func (o *SearchOrchestrator) LoadMore(ctx context.Context, sessionID string) (*ResultsPage, error) {
	return o.withEngine(ctx, sessionID, func(engine *tripfilter.Engine) error {
		engine.LoadMore()
		return nil
	})
}

func (o *SearchOrchestrator) withEngine(ctx context.Context, sessionID string, apply func(engine *tripfilter.Engine) error) (*ResultsPage, error) {
	session, err := o.sessionRepo.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load search session: %w", err)
	}
	if session.Result == nil {
		return nil, ErrSessionNotFound
	}

	engine := tripfilter.Restore(session.Result, session.Filter)
	if err := apply(engine); err != nil {
		return nil, err
	}

	session.Filter = engine.State()
	if err := o.sessionRepo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save search session: %w", err)
	}

	return &ResultsPage{
		Trips:      engine.Displayed(),
		ShouldLoad: engine.ShouldLoad(),
		Total:      engine.Total(),
		Loaded:     engine.Loaded(),
	}, nil
}
