package repository

import (
	"context"
	"fmt"
	"time"

	"airtrip-service/internal/domain/entity"
	"airtrip-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirportRepository implements the AirportRepository interface
type GormAirportRepository struct {
	db *gorm.DB
}

// NewGormAirportRepository creates a new GORM airport repository
func NewGormAirportRepository(db *gorm.DB) repository.AirportRepository {
	return &GormAirportRepository{
		db: db,
	}
}

// AirportModel GORM model for the airport catalog
type AirportModel struct {
	ID        uint           `gorm:"primaryKey"`
	IATA      string         `gorm:"column:iata;size:3;uniqueIndex"`
	Name      string         `gorm:"column:name"`
	City      string         `gorm:"column:city"`
	Latitude  float64        `gorm:"column:latitude"`
	Longitude float64        `gorm:"column:longitude"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (AirportModel) TableName() string {
	return "m_airports"
}

// ListAll returns every active airport in catalog order
func (r *GormAirportRepository) ListAll(ctx context.Context) ([]entity.Airport, error) {
	var rows []AirportModel
	result := r.db.WithContext(ctx).Where("iata <> ''").Order("id").Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list airports: %w", result.Error)
	}

	// Convert GORM models to domain entities
	airports := make([]entity.Airport, 0, len(rows))
	for _, row := range rows {
		airports = append(airports, entity.Airport{
			IATA: row.IATA,
			Name: row.Name,
			City: row.City,
			Coordinate: entity.Coordinate{
				Lat: row.Latitude,
				Lng: row.Longitude,
			},
		})
	}
	return airports, nil
}
