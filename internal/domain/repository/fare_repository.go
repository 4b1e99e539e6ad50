package repository

import (
	"context"

	"airtrip-service/internal/domain/entity"
)

// FareQuery is one priced lookup between two airports
type FareQuery struct {
	Origin      string
	Destination string
	DepartDate  string
	ReturnDate  string // empty for one-way
	Adults      int
	Children    int
	Infants     int
	CabinClass  string
	AccessTo    int // seconds from the origin address to Origin
	AccessFrom  int // seconds from Destination to the destination address
	MaxResults  int
}

// FareRepository defines the interface for the external fare source
type FareRepository interface {
	QueryFares(ctx context.Context, query FareQuery) ([]entity.Trip, error)
}
