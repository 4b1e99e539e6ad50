package usecase

import (
	"context"
	"fmt"

	"airtrip-service/internal/domain/entity"
	"airtrip-service/pkg/logger"
)

// GroundRouter answers direct ground travel times between two coordinates
type GroundRouter interface {
	PointToPoint(ctx context.Context, origin, destination entity.Coordinate, mode entity.TransportMode) (GroundTimes, error)
}

// Pairing is one departure/arrival airport combination to price
type Pairing struct {
	Departure entity.Airport
	Arrival   entity.Airport
}

// PairingPlan is everything a search needs to price plus the ground baselines
type PairingPlan struct {
	Pairs       []Pairing
	GroundTrips []entity.Trip
}

// PairingEnumerator builds the pairings and ground placeholders for one search
type PairingEnumerator struct {
	router GroundRouter
	logger logger.Logger
}

// NewPairingEnumerator creates a new pairing enumerator
func NewPairingEnumerator(router GroundRouter, logger logger.Logger) *PairingEnumerator {
	return &PairingEnumerator{
		router: router,
		logger: logger,
	}
}

// Enumerate pairs every departure airport with every arrival airport of a different
// code, and adds one direct-ground trip per distinct transport mode
func (e *PairingEnumerator) Enumerate(ctx context.Context, dep, arr []entity.Airport, params *entity.SearchParams) (*PairingPlan, error) {
	if params.DepartCoord == nil || params.ArriveCoord == nil {
		return nil, fmt.Errorf("search coordinates are not resolved")
	}

	plan := &PairingPlan{
		Pairs:       make([]Pairing, 0, len(dep)*len(arr)),
		GroundTrips: make([]entity.Trip, 0, 2),
	}

	modes := []entity.TransportMode{params.DepartMode}
	if params.ArriveMode != params.DepartMode {
		modes = append(modes, params.ArriveMode)
	}

	for _, mode := range modes {
		trip, ok, err := e.groundTrip(ctx, params, mode)
		if err != nil {
			return nil, err
		}
		if ok {
			plan.GroundTrips = append(plan.GroundTrips, trip)
		}
	}

	for _, d := range dep {
		for _, a := range arr {
			if d.IATA == a.IATA {
				continue
			}
			plan.Pairs = append(plan.Pairs, Pairing{Departure: d, Arrival: a})
		}
	}

	e.logger.Info("Enumerated pairings",
		"departureAirports", len(dep),
		"arrivalAirports", len(arr),
		"pairs", len(plan.Pairs),
		"groundTrips", len(plan.GroundTrips))

	return plan, nil
}

// groundTrip builds the direct placeholder for one mode. A failed or routeless
// lookup drops the placeholder; only cancellation is returned as an error.
func (e *PairingEnumerator) groundTrip(ctx context.Context, params *entity.SearchParams, mode entity.TransportMode) (entity.Trip, bool, error) {
	times, err := e.router.PointToPoint(ctx, *params.DepartCoord, *params.ArriveCoord, mode)
	if err != nil {
		if ctx.Err() != nil {
			return entity.Trip{}, false, ctx.Err()
		}
		e.logger.Warn("Direct ground lookup failed", "mode", mode, "error", err)
		return entity.Trip{}, false, nil
	}
	if !times.Reachable || (params.RoundTrip && !times.BackReachable) {
		e.logger.Info("No direct ground route", "mode", mode)
		return entity.Trip{}, false, nil
	}

	var timeBack *int
	if params.RoundTrip {
		back := times.TimeBack
		timeBack = &back
	}
	return entity.NewGroundTrip(mode, times.TimeTo, timeBack), true, nil
}
