package tripfilter

import (
	"airtrip-service/internal/domain/entity"
)

const (
	// DefaultLoaded is how many trips are displayed before any LoadMore
	DefaultLoaded = 10
	// LoadStep is how many more trips each LoadMore reveals
	LoadStep = 10
)

// Engine filters and paginates one immutable result set without any network access
type Engine struct {
	base     []entity.Trip
	criteria entity.FilterCriteria
	filtered []entity.Trip
	loaded   int
}

// New creates an engine showing the whole result set
func New(trips []entity.Trip) *Engine {
	return &Engine{
		base:     trips,
		filtered: trips,
		loaded:   DefaultLoaded,
	}
}

// Restore rebuilds an engine from a result and a previously saved state
func Restore(result *entity.ResultInfo, state entity.FilterState) *Engine {
	var trips []entity.Trip
	if result != nil {
		trips = result.Trips
	}
	e := New(trips)
	e.criteria = state.Criteria
	e.filtered = e.compute()
	if state.Loaded > 0 {
		e.loaded = state.Loaded
	}
	return e
}

// SetCriteria validates and stores new criteria; call ApplyFilter to use them
func (e *Engine) SetCriteria(c entity.FilterCriteria) error {
	if err := ValidateCriteria(c); err != nil {
		return err
	}
	e.criteria = c
	return nil
}

// Criteria returns the active criteria
func (e *Engine) Criteria() entity.FilterCriteria {
	return e.criteria
}

// ApplyFilter recomputes the filtered set from the base and rewinds the cursor
func (e *Engine) ApplyFilter() {
	e.filtered = e.compute()
	e.loaded = DefaultLoaded
}

// ResetFilter clears every criterion and shows the full base again
func (e *Engine) ResetFilter() {
	e.criteria = entity.FilterCriteria{}
	e.filtered = e.base
}

// LoadMore reveals the next page of the filtered set
func (e *Engine) LoadMore() {
	e.loaded += LoadStep
}

// Displayed returns the visible prefix of the filtered set
func (e *Engine) Displayed() []entity.Trip {
	end := len(e.filtered)
	if e.loaded < end {
		end = e.loaded
	}
	return e.filtered[:end]
}

// ShouldLoad reports whether more filtered trips exist past the cursor
func (e *Engine) ShouldLoad() bool {
	return len(e.filtered) > e.loaded
}

// Total returns the size of the filtered set
func (e *Engine) Total() int {
	return len(e.filtered)
}

// Loaded returns the cursor position
func (e *Engine) Loaded() int {
	return e.loaded
}

// State returns the serializable form of the engine's context
func (e *Engine) State() entity.FilterState {
	return entity.FilterState{
		Criteria: e.criteria,
		Loaded:   e.loaded,
	}
}

func (e *Engine) compute() []entity.Trip {
	filtered := make([]entity.Trip, 0, len(e.base))
	for i := range e.base {
		if Match(&e.base[i], e.criteria) {
			filtered = append(filtered, e.base[i])
		}
	}
	return filtered
}
