package seatmap

import (
	"context"
	"fmt"
	"strconv"
	"sync"
)

// Every flight exposes the same fixed cabin: rows 1..20, columns A..F,
// regardless of aircraft type.
const Rows = 20

var Columns = []string{"A", "B", "C", "D", "E", "F"}

// SeatCount is the total number of seats in the grid
const SeatCount = Rows * 6

// SeatID builds a seat identifier like "12C" from a row and column index
func SeatID(row int, col int) string {
	return strconv.Itoa(row) + Columns[col]
}

// ParseSeat validates a seat identifier against the grid, returning its row
// and column index.
func ParseSeat(seat string) (row int, col int, err error) {
	if len(seat) < 2 {
		return 0, 0, fmt.Errorf("invalid seat %q", seat)
	}

	letter := seat[len(seat)-1:]
	col = -1
	for i, c := range Columns {
		if c == letter {
			col = i
			break
		}
	}
	if col == -1 {
		return 0, 0, fmt.Errorf("invalid seat %q: unknown column %q", seat, letter)
	}

	row, convErr := strconv.Atoi(seat[:len(seat)-1])
	if convErr != nil || row < 1 || row > Rows {
		return 0, 0, fmt.Errorf("invalid seat %q: row out of range", seat)
	}
	return row, col, nil
}

// IsValidSeat reports whether seat names a seat on the grid
func IsValidSeat(seat string) bool {
	_, _, err := ParseSeat(seat)
	return err == nil
}

// Grid returns every seat identifier in row-major order
func Grid() []string {
	seats := make([]string, 0, SeatCount)
	for row := 1; row <= Rows; row++ {
		for col := range Columns {
			seats = append(seats, SeatID(row, col))
		}
	}
	return seats
}

// Fetcher retrieves the authoritative booked-seat set for a flight
type Fetcher interface {
	GetBookedSeats(ctx context.Context, flightID int) ([]string, error)
}

// Map is the client-side mirror of one flight's booked seats. The booked set
// is authoritative backend state: it is replaced wholesale by Load/Reload and
// never mutated locally. Until a load succeeds the set is unknown and
// IsBooked/IsAvailable must not be trusted — callers gate on Loaded().
//
// Reloads are keyed by flight ID and stamped with a generation counter so a
// slow response for an earlier flight (or an earlier reload of the same
// flight) can never overwrite a fresher one.
type Map struct {
	mu         sync.Mutex
	fetcher    Fetcher
	flightID   int
	generation uint64
	booked     map[string]struct{}
	loaded     bool
}

// New creates an empty, unloaded seat map
func New(fetcher Fetcher) *Map {
	return &Map{fetcher: fetcher}
}

// Load switches the map to flightID and fetches its booked set. Any reload
// still in flight for a previous flight is invalidated.
func (m *Map) Load(ctx context.Context, flightID int) error {
	m.mu.Lock()
	if m.flightID != flightID {
		m.flightID = flightID
		m.booked = nil
		m.loaded = false
	}
	m.generation++
	gen := m.generation
	m.mu.Unlock()

	seats, err := m.fetcher.GetBookedSeats(ctx, flightID)
	if err != nil {
		// Booked set stays unknown; booking remains blocked.
		return err
	}

	booked := make(map[string]struct{}, len(seats))
	for _, s := range seats {
		booked[s] = struct{}{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.flightID != flightID || gen != m.generation {
		// A newer load superseded this response; discard it.
		return nil
	}
	m.booked = booked
	m.loaded = true
	return nil
}

// Reload refetches the booked set for the current flight
func (m *Map) Reload(ctx context.Context) error {
	m.mu.Lock()
	flightID := m.flightID
	m.mu.Unlock()
	if flightID == 0 {
		return fmt.Errorf("seat map has no flight loaded")
	}
	return m.Load(ctx, flightID)
}

// FlightID returns the flight the map is currently keyed to (0 if none)
func (m *Map) FlightID() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flightID
}

// Loaded reports whether the booked set reflects a successful fetch
func (m *Map) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

// IsBooked reports whether seat is held by a confirmed reservation per the
// last successful fetch. An unloaded map reports every seat as booked so an
// unknown set can never be mistaken for an empty one.
func (m *Map) IsBooked(seat string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.loaded {
		return true
	}
	_, ok := m.booked[seat]
	return ok
}

// BookedSeats returns the current booked set as a sorted-by-grid-order slice
func (m *Map) BookedSeats() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	seats := make([]string, 0, len(m.booked))
	for _, s := range Grid() {
		if _, ok := m.booked[s]; ok {
			seats = append(seats, s)
		}
	}
	return seats
}

// IsAvailable reports whether seat can be claimed by the passenger at
// excluding: it must not be booked, and not selected by any other passenger.
// selections[i] is passenger i's current seat ("" when unassigned).
func (m *Map) IsAvailable(seat string, selections []string, excluding int) bool {
	if !IsValidSeat(seat) || m.IsBooked(seat) {
		return false
	}
	for i, s := range selections {
		if i != excluding && s == seat {
			return false
		}
	}
	return true
}
