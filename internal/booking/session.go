package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"skybook/internal/airline"
	"skybook/internal/events"
	"skybook/internal/seatmap"
	"skybook/pkg/logger"
)

// ErrSessionNotFound means the session ID is unknown or the session expired
var ErrSessionNotFound = errors.New("booking session not found")

// Session is one browser's in-progress booking for one flight. All durable
// state lives in the backend; a session only carries the draft-in-progress
// (roster, seat picks, submission state) and evaporates on expiry.
//
// Every mutating call locks the session, so roster edits, seat assignments
// and submissions from the same session are serialized.
type Session struct {
	ID      string
	Flight  *airline.Flight
	Roster  *Roster
	SeatMap *seatmap.Map
	Coord   *Coordinator

	maxTravelers int

	mu         sync.Mutex
	lastActive time.Time
}

func (s *Session) touch() {
	s.lastActive = time.Now()
}

// Resize sets the traveler count, clamped to the flight's capacity and the
// per-booking traveler cap, and returns the applied count.
func (s *Session) Resize(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	max := s.Flight.AvailableSeats
	if s.maxTravelers > 0 && s.maxTravelers < max {
		max = s.maxTravelers
	}
	return s.Roster.Resize(n, max)
}

// UpdatePassenger replaces the editable fields of passenger i
func (s *Session) UpdatePassenger(i int, p Passenger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.Roster.Update(i, p)
}

// AssignSeat claims seat for passenger i. A seat rejected as booked
// triggers one seat map reload before the error is returned, so the caller
// sees current availability on re-render.
func (s *Session) AssignSeat(ctx context.Context, i int, seat string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	err := s.Roster.AssignSeat(i, seat, s.SeatMap)
	if errors.Is(err, ErrSeatBooked) {
		if reloadErr := s.SeatMap.Reload(ctx); reloadErr == nil {
			logger.GetDefault().LogSeatMapReloaded(ctx, s.SeatMap.FlightID(), len(s.SeatMap.BookedSeats()))
		}
	}
	return err
}

// ClearSeat releases passenger i's seat
func (s *Session) ClearSeat(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.Roster.ClearSeat(i)
}

// RefreshSeatMap refetches the booked set on user request
func (s *Session) RefreshSeatMap(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.SeatMap.Reload(ctx)
}

// Submit runs the coordinator over the session's current roster
func (s *Session) Submit(ctx context.Context, contactEmail, contactPhone string) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.Coord.Submit(ctx, s.ID, s.Flight, s.Roster, contactEmail, contactPhone)
}

// Snapshot returns a consistent read of the session for rendering
func (s *Session) Snapshot() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	view := SessionView{
		ID:            s.ID,
		Flight:        s.Flight,
		Passengers:    s.Roster.Passengers(),
		State:         s.Coord.State(),
		SeatMapLoaded: s.SeatMap.Loaded(),
		TotalPrice:    s.Flight.Price * float64(s.Roster.Len()),
	}
	if last := s.Coord.LastResult(); last != nil {
		view.LastResult = last
	}
	return view
}

// SeatMapView renders the full grid with each seat's status
func (s *Session) SeatMapView() []SeatView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	seats := make([]SeatView, 0, seatmap.SeatCount)
	for _, id := range seatmap.Grid() {
		view := SeatView{Seat: id, Status: "available"}
		if s.SeatMap.IsBooked(id) {
			view.Status = "booked"
		} else if owner := s.Roster.SeatOwner(id); owner >= 0 {
			view.Status = "selected"
			view.Passenger = owner
		}
		seats = append(seats, view)
	}
	return seats
}

// SessionView is the session snapshot returned to the browser
type SessionView struct {
	ID            string            `json:"id"`
	Flight        *airline.Flight   `json:"flight"`
	Passengers    []Passenger       `json:"passengers"`
	State         State             `json:"state"`
	SeatMapLoaded bool              `json:"seat_map_loaded"`
	TotalPrice    float64           `json:"total_price"`
	LastResult    *Result           `json:"last_result,omitempty"`
}

// SeatView is one grid cell in the rendered seat map
type SeatView struct {
	Seat      string `json:"seat"`
	Status    string `json:"status"` // available | selected | booked
	Passenger int    `json:"passenger,omitempty"`
}

// Store holds the live booking sessions in memory. Expiry is lazy: expired
// sessions are dropped when looked up or when a new session is created.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session

	api          airline.Client
	events       events.Publisher
	ttl          time.Duration
	userID       int
	maxTravelers int
	log          *logger.Logger
}

// NewStore creates an empty session store
func NewStore(api airline.Client, publisher events.Publisher, ttl time.Duration, userID, maxTravelers int) *Store {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Store{
		sessions:     make(map[string]*Session),
		api:          api,
		events:       publisher,
		ttl:          ttl,
		userID:       userID,
		maxTravelers: maxTravelers,
		log:          logger.GetDefault(),
	}
}

// Create starts a booking session for flightID: it fetches the flight,
// loads the booked-seat set and seeds a one-traveler roster. Either fetch
// failing fails the creation; a session never starts with an unknown flight
// or an unknown booked set.
func (s *Store) Create(ctx context.Context, flightID int) (*Session, error) {
	flight, err := s.api.GetFlight(ctx, flightID)
	if err != nil {
		return nil, err
	}

	seatMap := seatmap.New(s.api)
	if err := seatMap.Load(ctx, flightID); err != nil {
		return nil, err
	}

	session := &Session{
		ID:           uuid.New().String(),
		Flight:       flight,
		Roster:       NewRoster(1),
		SeatMap:      seatMap,
		Coord:        NewCoordinator(s.api, seatMap, s.events, s.userID),
		maxTravelers: s.maxTravelers,
		lastActive:   time.Now(),
	}

	s.mu.Lock()
	s.evictExpiredLocked()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.log.WithSessionID(session.ID).Info("booking session created",
		"flight_id", flightID,
		"booked_seats", len(seatMap.BookedSeats()),
	)
	return session, nil
}

// Get returns the session for id, expiring it first if it idled out
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.expired(session) {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Delete removes a session explicitly (e.g. after a confirmed booking)
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked()
	return len(s.sessions)
}

func (s *Store) expired(session *Session) bool {
	if s.ttl <= 0 {
		return false
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return time.Since(session.lastActive) > s.ttl
}

func (s *Store) evictExpiredLocked() {
	for id, session := range s.sessions {
		if s.expired(session) {
			delete(s.sessions, id)
		}
	}
}
