package airline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"skybook/pkg/logger"
)

// Client is the REST interface to the airline inventory backend. The backend
// is the sole authority over flights, bookings and seat assignments; skybook
// never persists any of this state itself.
type Client interface {
	SearchFlights(ctx context.Context, params SearchParams) ([]Flight, error)
	GetFlight(ctx context.Context, id int) (*Flight, error)
	CreateFlight(ctx context.Context, input FlightInput) (*Flight, error)
	UpdateFlight(ctx context.Context, id int, input FlightInput) (*Flight, error)
	DeleteFlight(ctx context.Context, id int) error
	GetAirlines(ctx context.Context) ([]string, error)
	GetPriceRange(ctx context.Context, travelers int) (*PriceRange, error)

	GetBookedSeats(ctx context.Context, flightID int) ([]string, error)
	CreateBooking(ctx context.Context, req BookingRequest) ([]BookingRecord, error)

	GetStats(ctx context.Context) (*Stats, error)
}

type client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates a backend client. A zero timeout keeps the http.Client
// default; no per-request deadline is set beyond that.
func NewClient(baseURL string, timeout time.Duration) Client {
	return &client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     logger.GetDefault(),
	}
}

func (c *client) SearchFlights(ctx context.Context, params SearchParams) ([]Flight, error) {
	query := url.Values{}
	if params.DepartureCity != "" {
		query.Set("departure_city", params.DepartureCity)
	}
	if params.ArrivalCity != "" {
		query.Set("arrival_city", params.ArrivalCity)
	}
	if params.Date != "" {
		query.Set("date", params.Date)
	}
	if params.Skip > 0 {
		query.Set("skip", strconv.Itoa(params.Skip))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}

	path := "/api/flights/"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var flights []Flight
	if err := c.get(ctx, "flights", path, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *client) GetFlight(ctx context.Context, id int) (*Flight, error) {
	var flight Flight
	if err := c.get(ctx, "flight", fmt.Sprintf("/api/flights/%d", id), &flight); err != nil {
		return nil, err
	}
	return &flight, nil
}

func (c *client) CreateFlight(ctx context.Context, input FlightInput) (*Flight, error) {
	var flight Flight
	if err := c.send(ctx, "create flight", http.MethodPost, "/api/flights/", input, &flight); err != nil {
		return nil, err
	}
	return &flight, nil
}

func (c *client) UpdateFlight(ctx context.Context, id int, input FlightInput) (*Flight, error) {
	var flight Flight
	if err := c.send(ctx, "update flight", http.MethodPut, fmt.Sprintf("/api/flights/%d", id), input, &flight); err != nil {
		return nil, err
	}
	return &flight, nil
}

func (c *client) DeleteFlight(ctx context.Context, id int) error {
	return c.send(ctx, "delete flight", http.MethodDelete, fmt.Sprintf("/api/flights/%d", id), nil, nil)
}

func (c *client) GetAirlines(ctx context.Context) ([]string, error) {
	var airlines []string
	if err := c.get(ctx, "airlines", "/api/flights/airlines", &airlines); err != nil {
		return nil, err
	}
	return airlines, nil
}

func (c *client) GetPriceRange(ctx context.Context, travelers int) (*PriceRange, error) {
	if travelers < 1 {
		travelers = 1
	}
	var pr PriceRange
	path := fmt.Sprintf("/api/flights/price-range?travelers=%d", travelers)
	if err := c.get(ctx, "price range", path, &pr); err != nil {
		return nil, err
	}
	return &pr, nil
}

// GetBookedSeats fetches the authoritative booked seat identifiers for a
// flight. On any failure the caller must treat the booked set as unknown.
func (c *client) GetBookedSeats(ctx context.Context, flightID int) ([]string, error) {
	var seats []string
	path := fmt.Sprintf("/api/bookings/flight/%d/seats", flightID)
	if err := c.get(ctx, "booked seats", path, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}

// CreateBooking submits a booking. A 409 maps to *SeatConflictError, a 400
// to *ValidationError carrying the backend's detail message verbatim, and
// anything else unexpected to *FetchError.
func (c *client) CreateBooking(ctx context.Context, req BookingRequest) ([]BookingRecord, error) {
	var records []BookingRecord
	if err := c.send(ctx, "create booking", http.MethodPost, "/api/bookings/", req, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *client) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.get(ctx, "stats", "/api/stats/", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *client) get(ctx context.Context, op, path string, dest interface{}) error {
	return c.send(ctx, op, http.MethodGet, path, nil, dest)
}

func (c *client) send(ctx context.Context, op, method, path string, body, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.LogBackendCall(ctx, method, path, 0, time.Since(start), err)
		return &FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	c.log.LogBackendCall(ctx, method, path, resp.StatusCode, time.Since(start), nil)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if dest == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return &FetchError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
		}
		return nil
	}

	detail := decodeDetail(resp.Body)
	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case http.StatusConflict:
		return &SeatConflictError{Detail: detail}
	case http.StatusBadRequest:
		return &ValidationError{Detail: detail}
	default:
		return &FetchError{Op: op, Status: resp.StatusCode}
	}
}

// decodeDetail extracts the backend's {"detail": "..."} error body
func decodeDetail(body io.Reader) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	return payload.Detail
}
