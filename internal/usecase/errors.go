package usecase

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a filter request refers to an unknown or expired session
var ErrSessionNotFound = errors.New("search session not found")

// ValidationError reports unusable search input
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid search request: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// GeocodeError reports an address that could not be resolved to a coordinate
type GeocodeError struct {
	Address string
	Err     error // nil when the geocoder simply found nothing
}

func (e *GeocodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not geocode address %q: %v", e.Address, e.Err)
	}
	return fmt.Sprintf("could not geocode address %q", e.Address)
}

func (e *GeocodeError) Unwrap() error {
	return e.Err
}

// RangeLookupError reports that reachable airports could not be determined
type RangeLookupError struct {
	Op  string
	Err error
}

func (e *RangeLookupError) Error() string {
	return fmt.Sprintf("range lookup failed during %s: %v", e.Op, e.Err)
}

func (e *RangeLookupError) Unwrap() error {
	return e.Err
}
