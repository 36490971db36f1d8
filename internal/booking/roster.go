package booking

import (
	"errors"
	"fmt"

	"skybook/internal/seatmap"
)

// ErrSeatBooked means the requested seat is (or may be) held by a confirmed
// reservation. The caller should refresh the seat map and re-render.
var ErrSeatBooked = errors.New("seat is already booked")

// Roster is the ordered list of travelers being booked together. Indexes are
// stable: entries are only ever appended or truncated from the end, never
// reordered, so passenger i keeps meaning the same traveler across edits.
//
// Roster is not safe for concurrent use; the owning session serializes
// access to it.
type Roster struct {
	passengers []Passenger
}

// NewRoster creates a roster with n default passengers
func NewRoster(n int) *Roster {
	if n < 1 {
		n = 1
	}
	r := &Roster{}
	for i := 0; i < n; i++ {
		r.passengers = append(r.passengers, defaultPassenger())
	}
	return r
}

// Len returns the current traveler count
func (r *Roster) Len() int {
	return len(r.passengers)
}

// Passengers returns a copy of the roster entries
func (r *Roster) Passengers() []Passenger {
	out := make([]Passenger, len(r.passengers))
	copy(out, r.passengers)
	return out
}

// Passenger returns the entry at index i
func (r *Roster) Passenger(i int) (Passenger, error) {
	if i < 0 || i >= len(r.passengers) {
		return Passenger{}, fmt.Errorf("no passenger at index %d", i)
	}
	return r.passengers[i], nil
}

// Update replaces the editable fields of passenger i, leaving its seat
// assignment untouched.
func (r *Roster) Update(i int, p Passenger) error {
	if i < 0 || i >= len(r.passengers) {
		return fmt.Errorf("no passenger at index %d", i)
	}
	seat := r.passengers[i].Seat
	r.passengers[i] = p
	r.passengers[i].Seat = seat
	return nil
}

// Resize sets the traveler count, clamped to [1, availableSeats]. Growing
// appends defaults; shrinking truncates from the end, silently discarding
// the dropped entries' data and seats. Surviving entries are never touched.
// It returns the count actually applied.
func (r *Roster) Resize(n int, availableSeats int) int {
	max := availableSeats
	if max < 1 {
		max = 1
	}
	if n < 1 {
		n = 1
	}
	if n > max {
		n = max
	}

	for len(r.passengers) < n {
		r.passengers = append(r.passengers, defaultPassenger())
	}
	r.passengers = r.passengers[:n]
	return n
}

// Selections returns each passenger's seat by index ("" when unassigned)
func (r *Roster) Selections() []string {
	seats := make([]string, len(r.passengers))
	for i, p := range r.passengers {
		seats[i] = p.Seat
	}
	return seats
}

// SelectedSeats returns only the assigned seats, in passenger order
func (r *Roster) SelectedSeats() []string {
	seats := make([]string, 0, len(r.passengers))
	for _, p := range r.passengers {
		if p.Seat != "" {
			seats = append(seats, p.Seat)
		}
	}
	return seats
}

// AssignSeat gives seat to passenger i. If another passenger in this roster
// holds the seat it is taken from them first; eviction and reassignment are
// one atomic step, so two passengers never hold the same seat and the seat
// is never observed unowned in between. A seat in the booked set is rejected
// with ErrSeatBooked.
func (r *Roster) AssignSeat(i int, seat string, booked interface{ IsBooked(string) bool }) error {
	if i < 0 || i >= len(r.passengers) {
		return fmt.Errorf("no passenger at index %d", i)
	}
	if !seatmap.IsValidSeat(seat) {
		return fmt.Errorf("invalid seat %q", seat)
	}
	if booked.IsBooked(seat) {
		return ErrSeatBooked
	}

	for j := range r.passengers {
		if j != i && r.passengers[j].Seat == seat {
			r.passengers[j].Seat = ""
		}
	}
	r.passengers[i].Seat = seat
	return nil
}

// ClearSeat removes passenger i's seat assignment
func (r *Roster) ClearSeat(i int) error {
	if i < 0 || i >= len(r.passengers) {
		return fmt.Errorf("no passenger at index %d", i)
	}
	r.passengers[i].Seat = ""
	return nil
}

// Validate checks every passenger's fields and seat against the booked set,
// collecting all failures in one pass.
func (r *Roster) Validate(booked interface{ IsBooked(string) bool }) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]int, len(r.passengers))

	for i, p := range r.passengers {
		if p.FirstName == "" {
			errs = append(errs, FieldError{Passenger: i, Field: "first_name", Message: "first name is required"})
		}
		if p.LastName == "" {
			errs = append(errs, FieldError{Passenger: i, Field: "last_name", Message: "last name is required"})
		}
		if p.Age < 0 || p.Age > 120 {
			errs = append(errs, FieldError{Passenger: i, Field: "age", Message: "age must be between 0 and 120"})
		}
		if !p.Gender.IsValid() {
			errs = append(errs, FieldError{Passenger: i, Field: "gender", Message: "unknown gender"})
		}
		if !p.SeatPreference.IsValid() {
			errs = append(errs, FieldError{Passenger: i, Field: "seat_preference", Message: "unknown seat preference"})
		}
		if !p.MealPreference.IsValid() {
			errs = append(errs, FieldError{Passenger: i, Field: "meal_preference", Message: "unknown meal preference"})
		}

		switch {
		case p.Seat == "":
			errs = append(errs, FieldError{Passenger: i, Field: "seat", Message: "every passenger needs a seat"})
		case !seatmap.IsValidSeat(p.Seat):
			errs = append(errs, FieldError{Passenger: i, Field: "seat", Message: fmt.Sprintf("seat %q is not on this aircraft", p.Seat)})
		case booked.IsBooked(p.Seat):
			errs = append(errs, FieldError{Passenger: i, Field: "seat", Message: fmt.Sprintf("seat %s is no longer available", p.Seat)})
		default:
			if prev, dup := seen[p.Seat]; dup {
				errs = append(errs, FieldError{
					Passenger: i,
					Field:     "seat",
					Message:   fmt.Sprintf("seat %s is already taken by passenger %d", p.Seat, prev+1),
				})
			} else {
				seen[p.Seat] = i
			}
		}
	}
	return errs
}

// SeatOwner returns the index of the passenger holding seat, or -1
func (r *Roster) SeatOwner(seat string) int {
	for i, p := range r.passengers {
		if p.Seat == seat {
			return i
		}
	}
	return -1
}
