package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skybook/internal/airline"
)

// fakeBackend implements airline.Client in memory for handler tests
type fakeBackend struct {
	flight       *airline.Flight
	bookedSeats  []string
	bookingErr   error
	bookings     []airline.BookingRequest
	seatFetchErr error
}

func (f *fakeBackend) SearchFlights(ctx context.Context, params airline.SearchParams) ([]airline.Flight, error) {
	return []airline.Flight{*f.flight}, nil
}

func (f *fakeBackend) GetFlight(ctx context.Context, id int) (*airline.Flight, error) {
	if f.flight == nil || f.flight.ID != id {
		return nil, airline.ErrNotFound
	}
	flight := *f.flight
	return &flight, nil
}

func (f *fakeBackend) CreateFlight(ctx context.Context, input airline.FlightInput) (*airline.Flight, error) {
	return nil, nil
}

func (f *fakeBackend) UpdateFlight(ctx context.Context, id int, input airline.FlightInput) (*airline.Flight, error) {
	return nil, nil
}

func (f *fakeBackend) DeleteFlight(ctx context.Context, id int) error { return nil }

func (f *fakeBackend) GetAirlines(ctx context.Context) ([]string, error) { return nil, nil }

func (f *fakeBackend) GetPriceRange(ctx context.Context, travelers int) (*airline.PriceRange, error) {
	return &airline.PriceRange{}, nil
}

func (f *fakeBackend) GetBookedSeats(ctx context.Context, flightID int) ([]string, error) {
	if f.seatFetchErr != nil {
		return nil, f.seatFetchErr
	}
	return f.bookedSeats, nil
}

func (f *fakeBackend) CreateBooking(ctx context.Context, req airline.BookingRequest) ([]airline.BookingRecord, error) {
	f.bookings = append(f.bookings, req)
	if f.bookingErr != nil {
		return nil, f.bookingErr
	}
	records := make([]airline.BookingRecord, len(req.SeatNumbers))
	for i, seat := range req.SeatNumbers {
		records[i] = airline.BookingRecord{
			ID:               i + 1,
			FlightID:         req.FlightID,
			BookingReference: req.BookingReference,
			SeatNumber:       seat,
			BookingStatus:    "confirmed",
		}
	}
	return records, nil
}

func (f *fakeBackend) GetStats(ctx context.Context) (*airline.Stats, error) {
	return &airline.Stats{}, nil
}

func newTestRouter(backend *fakeBackend) *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := NewStore(backend, nil, 30*time.Minute, 1, 10)
	controller := NewController(store)

	engine := gin.New()
	api := engine.Group("/api/v1")
	SetupBookingRoutes(api, controller)
	return engine
}

func defaultBackend() *fakeBackend {
	return &fakeBackend{
		flight: &airline.Flight{
			ID:             42,
			FlightNumber:   "SB101",
			DepartureCity:  "Oslo",
			ArrivalCity:    "Lisbon",
			Price:          100,
			AvailableSeats: 50,
		},
		bookedSeats: []string{"1A"},
	}
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, engine *gin.Engine) string {
	t.Helper()
	w := doJSON(t, engine, http.MethodPost, "/api/v1/sessions", gin.H{"flight_id": 42})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data SessionView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.ID)
	return resp.Data.ID
}

func TestCreateSession(t *testing.T) {
	engine := newTestRouter(defaultBackend())

	w := doJSON(t, engine, http.MethodPost, "/api/v1/sessions", gin.H{"flight_id": 42})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Data SessionView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SB101", resp.Data.Flight.FlightNumber)
	assert.Len(t, resp.Data.Passengers, 1)
	assert.Equal(t, StateIdle, resp.Data.State)
	assert.True(t, resp.Data.SeatMapLoaded)
}

func TestCreateSessionUnknownFlight(t *testing.T) {
	engine := newTestRouter(defaultBackend())

	w := doJSON(t, engine, http.MethodPost, "/api/v1/sessions", gin.H{"flight_id": 77})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSessionFailsWhenSeatFetchFails(t *testing.T) {
	backend := defaultBackend()
	backend.seatFetchErr = &airline.FetchError{Op: "booked seats", Status: 500}
	engine := newTestRouter(backend)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/sessions", gin.H{"flight_id": 42})

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestResizeTravelersClamped(t *testing.T) {
	engine := newTestRouter(defaultBackend())
	id := createSession(t, engine)

	// Cap is min(available seats, configured max travelers) = 10
	w := doJSON(t, engine, http.MethodPut, "/api/v1/sessions/"+id+"/travelers", gin.H{"travelers": 25})

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data struct {
			Requested int `json:"requested"`
			Applied   int `json:"applied"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 25, resp.Data.Requested)
	assert.Equal(t, 10, resp.Data.Applied)
}

func TestAssignSeatConflictReturnsSeatMap(t *testing.T) {
	engine := newTestRouter(defaultBackend())
	id := createSession(t, engine)

	// 1A is in the booked set
	w := doJSON(t, engine, http.MethodPut, "/api/v1/sessions/"+id+"/passengers/0/seat", gin.H{"seat": "1A"})

	require.Equal(t, http.StatusConflict, w.Code)
	var resp struct {
		Data struct {
			SeatMap []SeatView `json:"seat_map"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.SeatMap, 120)
}

func TestAssignAndClearSeat(t *testing.T) {
	engine := newTestRouter(defaultBackend())
	id := createSession(t, engine)

	w := doJSON(t, engine, http.MethodPut, "/api/v1/sessions/"+id+"/passengers/0/seat", gin.H{"seat": "2B"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data SessionView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2B", resp.Data.Passengers[0].Seat)

	w = doJSON(t, engine, http.MethodDelete, "/api/v1/sessions/"+id+"/passengers/0/seat", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data.Passengers[0].Seat)
}

func TestSeatMapView(t *testing.T) {
	engine := newTestRouter(defaultBackend())
	id := createSession(t, engine)

	doJSON(t, engine, http.MethodPut, "/api/v1/sessions/"+id+"/passengers/0/seat", gin.H{"seat": "2B"})
	w := doJSON(t, engine, http.MethodGet, "/api/v1/sessions/"+id+"/seatmap", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data struct {
			Loaded bool       `json:"loaded"`
			Seats  []SeatView `json:"seats"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Loaded)
	require.Len(t, resp.Data.Seats, 120)

	statuses := make(map[string]string, len(resp.Data.Seats))
	for _, seat := range resp.Data.Seats {
		statuses[seat.Seat] = seat.Status
	}
	assert.Equal(t, "booked", statuses["1A"])
	assert.Equal(t, "selected", statuses["2B"])
	assert.Equal(t, "available", statuses["20F"])
}

func TestSubmitEndToEnd(t *testing.T) {
	backend := defaultBackend()
	engine := newTestRouter(backend)
	id := createSession(t, engine)

	doJSON(t, engine, http.MethodPut, "/api/v1/sessions/"+id+"/passengers/0", Passenger{
		FirstName: "Ada", LastName: "Lovelace", Age: 36,
		Gender: GenderFemale, SeatPreference: SeatPreferenceWindow, MealPreference: MealVegan,
	})
	doJSON(t, engine, http.MethodPut, "/api/v1/sessions/"+id+"/passengers/0/seat", gin.H{"seat": "3C"})

	w := doJSON(t, engine, http.MethodPost, "/api/v1/sessions/"+id+"/submit", gin.H{
		"contact_email": "ada@example.com",
		"contact_phone": "+14155550123",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Data Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, StateSucceeded, resp.Data.State)
	assert.NotEmpty(t, resp.Data.Reference)

	require.Len(t, backend.bookings, 1)
	assert.Equal(t, []string{"3C"}, backend.bookings[0].SeatNumbers)
	assert.Equal(t, 42, backend.bookings[0].FlightID)
}

func TestSubmitValidationErrors(t *testing.T) {
	engine := newTestRouter(defaultBackend())
	id := createSession(t, engine)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/sessions/"+id+"/submit", gin.H{
		"contact_email": "not-an-email",
		"contact_phone": "123",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Errors []FieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Errors)
}

func TestSubmitSeatConflict(t *testing.T) {
	backend := defaultBackend()
	backend.bookingErr = &airline.SeatConflictError{Detail: "Seats no longer available: 3C"}
	engine := newTestRouter(backend)
	id := createSession(t, engine)

	doJSON(t, engine, http.MethodPut, "/api/v1/sessions/"+id+"/passengers/0", Passenger{
		FirstName: "Ada", LastName: "Lovelace", Age: 36,
		Gender: GenderFemale, SeatPreference: SeatPreferenceWindow, MealPreference: MealVegan,
	})
	doJSON(t, engine, http.MethodPut, "/api/v1/sessions/"+id+"/passengers/0/seat", gin.H{"seat": "3C"})

	w := doJSON(t, engine, http.MethodPost, "/api/v1/sessions/"+id+"/submit", gin.H{
		"contact_email": "ada@example.com",
		"contact_phone": "+14155550123",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUnknownSessionIs404(t *testing.T) {
	engine := newTestRouter(defaultBackend())

	w := doJSON(t, engine, http.MethodGet, "/api/v1/sessions/nope", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionExpires(t *testing.T) {
	backend := defaultBackend()
	gin.SetMode(gin.TestMode)
	store := NewStore(backend, nil, time.Nanosecond, 1, 10)

	session, err := store.Create(context.Background(), 42)
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	_, err = store.Get(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
