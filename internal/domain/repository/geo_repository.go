package repository

import (
	"context"

	"airtrip-service/internal/domain/entity"
)

// GeocodeRepository resolves free-form addresses to coordinates
type GeocodeRepository interface {
	// Geocode returns nil and no error when the address cannot be resolved
	Geocode(ctx context.Context, address string) (*entity.Coordinate, error)
}

// TravelTime is one cell of a travel-time matrix row
type TravelTime struct {
	Seconds   int
	Reachable bool
}

// TravelTimeRepository looks up ground travel times from one origin to many destinations
type TravelTimeRepository interface {
	// MatrixTimes returns one entry per destination, in destination order
	MatrixTimes(ctx context.Context, origin entity.Coordinate, destinations []entity.Coordinate, mode entity.TransportMode) ([]TravelTime, error)
}
