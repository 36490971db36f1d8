package booking

import (
	"regexp"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

// BookedChecker answers whether a seat is held by a confirmed reservation
type BookedChecker interface {
	IsBooked(seat string) bool
}

// BuildDraft validates the roster and contact details and assembles a Draft.
// It is a pure function of its inputs: it never mutates the roster, never
// touches the network, and collects every failure in one pass instead of
// stopping at the first. On any failure it returns nil and the full error
// list; the draft and the errors are never both non-empty.
func BuildDraft(flightID int, contactEmail, contactPhone string, roster *Roster, booked BookedChecker) (*Draft, ValidationErrors) {
	var errs ValidationErrors

	if !emailPattern.MatchString(contactEmail) {
		errs = append(errs, FieldError{
			Passenger: DraftLevel,
			Field:     "contact_email",
			Message:   "a valid contact email is required",
		})
	}
	if !phonePattern.MatchString(contactPhone) {
		errs = append(errs, FieldError{
			Passenger: DraftLevel,
			Field:     "contact_phone",
			Message:   "a valid contact phone number is required (10-15 digits)",
		})
	}

	errs = append(errs, roster.Validate(booked)...)

	if len(errs) > 0 {
		return nil, errs
	}

	return &Draft{
		FlightID:     flightID,
		ContactEmail: contactEmail,
		ContactPhone: contactPhone,
		Passengers:   roster.Passengers(),
	}, nil
}

// SeatNumbers returns the draft's seats in passenger order
func (d *Draft) SeatNumbers() []string {
	seats := make([]string, len(d.Passengers))
	for i, p := range d.Passengers {
		seats[i] = p.Seat
	}
	return seats
}
