package repository

import (
	"context"

	"airtrip-service/internal/domain/entity"
)

// AirportRepository defines the interface for the airport catalog
type AirportRepository interface {
	ListAll(ctx context.Context) ([]entity.Airport, error)
}
