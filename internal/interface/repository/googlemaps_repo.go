package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"airtrip-service/internal/domain/entity"
	"airtrip-service/internal/domain/repository"
	"airtrip-service/pkg/logger"

	"googlemaps.github.io/maps"
)

// GoogleMapsRepository implements geocoding and travel-time lookups over the Google Maps APIs
type GoogleMapsRepository struct {
	client *maps.Client
	logger logger.Logger
}

// NewGoogleMapsRepository creates a new Google Maps repository
func NewGoogleMapsRepository(apiKey string, logger logger.Logger, opts ...maps.ClientOption) (*GoogleMapsRepository, error) {
	opts = append([]maps.ClientOption{
		maps.WithAPIKey(apiKey),
		maps.WithHTTPClient(&http.Client{Transport: &mapsStatusTransport{next: http.DefaultTransport}}),
	}, opts...)
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}

	return &GoogleMapsRepository{
		client: client,
		logger: logger,
	}, nil
}

// Geocode resolves an address to its first matching coordinate
func (r *GoogleMapsRepository) Geocode(ctx context.Context, address string) (*entity.Coordinate, error) {
	results, err := r.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			r.logger.Info("Address could not be geocoded", "address", address)
			return nil, nil
		}
		return nil, classifyMapsError(ctx, "geocode", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	location := results[0].Geometry.Location
	return &entity.Coordinate{Lat: location.Lat, Lng: location.Lng}, nil
}

// MatrixTimes returns the travel time from origin to every destination, in order
func (r *GoogleMapsRepository) MatrixTimes(ctx context.Context, origin entity.Coordinate, destinations []entity.Coordinate, mode entity.TransportMode) ([]repository.TravelTime, error) {
	if len(destinations) == 0 {
		return []repository.TravelTime{}, nil
	}

	dests := make([]string, 0, len(destinations))
	for _, d := range destinations {
		dests = append(dests, latLng(d))
	}

	resp, err := r.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{latLng(origin)},
		Destinations: dests,
		Mode:         mapsMode(mode),
	})
	if err != nil {
		return nil, classifyMapsError(ctx, "distance matrix", err)
	}
	if len(resp.Rows) != 1 || len(resp.Rows[0].Elements) != len(destinations) {
		return nil, fmt.Errorf("distance matrix returned unexpected shape for %d destinations", len(destinations))
	}

	times := make([]repository.TravelTime, len(destinations))
	for i, element := range resp.Rows[0].Elements {
		if element == nil || element.Status != "OK" {
			continue
		}
		times[i] = repository.TravelTime{
			Seconds:   int(element.Duration.Seconds()),
			Reachable: true,
		}
	}

	return times, nil
}

func latLng(c entity.Coordinate) string {
	return fmt.Sprintf("%f,%f", c.Lat, c.Lng)
}

func mapsMode(mode entity.TransportMode) maps.Mode {
	switch mode {
	case entity.ModeTransit:
		return maps.TravelModeTransit
	case entity.ModeBicycling:
		return maps.TravelModeBicycling
	case entity.ModeWalking:
		return maps.TravelModeWalking
	default:
		return maps.TravelModeDriving
	}
}

// mapsStatusError is returned by mapsStatusTransport for throttled or failed HTTP responses.
// The maps client decodes any response body as JSON, so without it a 503 page would
// surface as a JSON syntax error.
type mapsStatusError struct {
	StatusCode int
}

func (e *mapsStatusError) Error() string {
	return fmt.Sprintf("maps api returned http status %d", e.StatusCode)
}

type mapsStatusTransport struct {
	next http.RoundTripper
}

func (t *mapsStatusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		resp.Body.Close()
		return nil, &mapsStatusError{StatusCode: resp.StatusCode}
	}
	return resp, nil
}

// Non-OK API statuses come back from the maps client as "maps: <STATUS> - <message>"
var temporaryMapsStatuses = []string{"maps: OVER_QUERY_LIMIT", "maps: UNKNOWN_ERROR"}

// classifyMapsError marks quota and server failures as retryable
func classifyMapsError(ctx context.Context, operation string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var statusErr *mapsStatusError
	if errors.As(err, &statusErr) {
		return fmt.Errorf("%w: %s: %v", repository.ErrTemporary, operation, err)
	}
	for _, status := range temporaryMapsStatuses {
		if strings.Contains(err.Error(), status) {
			return fmt.Errorf("%w: %s: %v", repository.ErrTemporary, operation, err)
		}
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}
