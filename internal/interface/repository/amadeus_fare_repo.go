package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"airtrip-service/internal/domain/entity"
	"airtrip-service/internal/domain/repository"
	"airtrip-service/pkg/logger"
	"airtrip-service/pkg/utils"
)

// amadeusTimeLayout is the airport-local timestamp format used by flight offers
const amadeusTimeLayout = "2006-01-02T15:04:05"

// AmadeusFareRepository queries the Amadeus Flight Offers Search API
type AmadeusFareRepository struct {
	client  *http.Client
	baseURL string
	logger  logger.Logger
}

// NewAmadeusFareRepository creates a new fare repository; client must attach bearer tokens
func NewAmadeusFareRepository(client *http.Client, baseURL string, logger logger.Logger) repository.FareRepository {
	return &AmadeusFareRepository{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

type amadeusEndpoint struct {
	IataCode string `json:"iataCode"`
	At       string `json:"at"`
}

type amadeusSegment struct {
	Departure     amadeusEndpoint `json:"departure"`
	Arrival       amadeusEndpoint `json:"arrival"`
	CarrierCode   string          `json:"carrierCode"`
	Number        string          `json:"number"`
	Duration      string          `json:"duration"`
	NumberOfStops int             `json:"numberOfStops"`
}

type amadeusItinerary struct {
	Duration string           `json:"duration"`
	Segments []amadeusSegment `json:"segments"`
}

type amadeusOffer struct {
	ID          string             `json:"id"`
	Itineraries []amadeusItinerary `json:"itineraries"`
	Price       struct {
		Currency   string `json:"currency"`
		GrandTotal string `json:"grandTotal"`
	} `json:"price"`
}

type amadeusResponse struct {
	Data   []amadeusOffer `json:"data"`
	Errors []struct {
		Status int    `json:"status"`
		Code   int    `json:"code"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// QueryFares returns the cheapest offers for one airport pairing as trips
func (r *AmadeusFareRepository) QueryFares(ctx context.Context, query repository.FareQuery) ([]entity.Trip, error) {
	params := url.Values{}
	params.Set("originLocationCode", query.Origin)
	params.Set("destinationLocationCode", query.Destination)
	params.Set("departureDate", query.DepartDate)
	if query.ReturnDate != "" {
		params.Set("returnDate", query.ReturnDate)
	}
	params.Set("adults", strconv.Itoa(query.Adults))
	if query.Children > 0 {
		params.Set("children", strconv.Itoa(query.Children))
	}
	if query.Infants > 0 {
		params.Set("infants", strconv.Itoa(query.Infants))
	}
	if query.CabinClass != "" {
		params.Set("travelClass", strings.ToUpper(query.CabinClass))
	}
	params.Set("currencyCode", "USD")
	if query.MaxResults > 0 {
		params.Set("max", strconv.Itoa(query.MaxResults))
	}

	endpoint := fmt.Sprintf("%s/v2/shopping/flight-offers?%s", r.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: failed to send request: %v", repository.ErrTemporary, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", repository.ErrTemporary, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: amadeus returned status %d", repository.ErrTemporary, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("amadeus returned status %d: %s", resp.StatusCode, string(body))
	}

	var response amadeusResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode flight offers: %w", err)
	}

	trips := make([]entity.Trip, 0, len(response.Data))
	for _, offer := range response.Data {
		trip, err := r.toTrip(offer, query)
		if err != nil {
			r.logger.Warn("Skipping malformed flight offer",
				"offerId", offer.ID,
				"origin", query.Origin,
				"destination", query.Destination,
				"error", err)
			continue
		}
		trips = append(trips, trip)
	}

	r.logger.Debug("Fetched flight offers",
		"origin", query.Origin,
		"destination", query.Destination,
		"offers", len(response.Data),
		"trips", len(trips))

	return trips, nil
}

func (r *AmadeusFareRepository) toTrip(offer amadeusOffer, query repository.FareQuery) (entity.Trip, error) {
	price, err := strconv.ParseFloat(offer.Price.GrandTotal, 64)
	if err != nil {
		return entity.Trip{}, fmt.Errorf("invalid grand total %q: %w", offer.Price.GrandTotal, err)
	}

	roundTrip := query.ReturnDate != ""
	expected := 1
	if roundTrip {
		expected = 2
	}
	if len(offer.Itineraries) < expected {
		return entity.Trip{}, fmt.Errorf("expected %d itineraries, got %d", expected, len(offer.Itineraries))
	}

	departing, err := toFlight(offer.Itineraries[0], fmt.Sprintf("%s-0", offer.ID), price)
	if err != nil {
		return entity.Trip{}, fmt.Errorf("departing itinerary: %w", err)
	}
	departing.TimeToAirport = query.AccessTo
	departing.TimeFromAirport = query.AccessFrom

	var returning *entity.Flight
	if roundTrip {
		returning, err = toFlight(offer.Itineraries[1], fmt.Sprintf("%s-1", offer.ID), price)
		if err != nil {
			return entity.Trip{}, fmt.Errorf("returning itinerary: %w", err)
		}
		// The return leg starts at the destination end and finishes at the origin end
		returning.TimeToAirport = query.AccessFrom
		returning.TimeFromAirport = query.AccessTo
	}

	return entity.NewFlightTrip(departing, returning, price), nil
}

func toFlight(itinerary amadeusItinerary, legID string, price float64) (*entity.Flight, error) {
	segments := itinerary.Segments
	if len(segments) == 0 {
		return nil, fmt.Errorf("itinerary has no segments")
	}

	flight := &entity.Flight{
		Airlines:         []string{},
		DepartureAirport: segments[0].Departure.IataCode,
		ArrivalAirport:   segments[len(segments)-1].Arrival.IataCode,
		NumberOfStops:    len(segments) - 1,
		Price:            price,
		LegID:            legID,
		StopOvers:        []entity.StopOver{},
	}

	seen := make(map[string]bool)
	arrivals := make([]time.Time, len(segments))
	for i, seg := range segments {
		if seg.CarrierCode != "" && !seen[seg.CarrierCode] {
			seen[seg.CarrierCode] = true
			flight.Airlines = append(flight.Airlines, seg.CarrierCode)
		}

		seconds, err := utils.ParseISODuration(seg.Duration)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		flight.FlightTime += seconds

		departAt, err := time.Parse(amadeusTimeLayout, seg.Departure.At)
		if err != nil {
			return nil, fmt.Errorf("segment %d departure: %w", i, err)
		}
		arrivals[i], err = time.Parse(amadeusTimeLayout, seg.Arrival.At)
		if err != nil {
			return nil, fmt.Errorf("segment %d arrival: %w", i, err)
		}

		if i == 0 {
			flight.DepartureTime = departAt
		} else {
			// Connection happens at one airport, so local wall clocks are comparable
			flight.StopOvers = append(flight.StopOvers, entity.StopOver{
				AirportCode:      segments[i-1].Arrival.IataCode,
				StopOverDuration: int(departAt.Sub(arrivals[i-1]).Seconds()),
				ArrivalTime:      arrivals[i-1],
			})
		}
	}
	flight.ArrivalTime = arrivals[len(arrivals)-1]

	return flight, nil
}
