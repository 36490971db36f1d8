package booking

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"sync"
	"time"

	"skybook/internal/airline"
	"skybook/internal/events"
	"skybook/internal/seatmap"
	"skybook/pkg/logger"
)

// ErrSubmissionInFlight means a submission is already running; duplicates
// are rejected rather than queued.
var ErrSubmissionInFlight = errors.New("a submission is already in progress")

// SubmitAPI is the slice of the backend the coordinator needs
type SubmitAPI interface {
	CreateBooking(ctx context.Context, req airline.BookingRequest) ([]airline.BookingRecord, error)
}

// Coordinator drives one session's booking submission through its state
// machine. It owns the submission state exclusively: nothing else in the
// session moves it between Idle, Validating, Submitting and the outcome
// states.
type Coordinator struct {
	mu       sync.Mutex
	api      SubmitAPI
	seatMap  *seatmap.Map
	events   events.Publisher
	log      *logger.Logger
	userID   int
	state    State
	inFlight bool
	last     *Result
}

// NewCoordinator creates an idle coordinator for one booking session
func NewCoordinator(api SubmitAPI, seatMap *seatmap.Map, publisher events.Publisher, userID int) *Coordinator {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Coordinator{
		api:     api,
		seatMap: seatMap,
		events:  publisher,
		log:     logger.GetDefault(),
		userID:  userID,
		state:   StateIdle,
	}
}

// State returns the current submission state
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastResult returns the outcome of the most recent submission, nil before
// the first one.
func (c *Coordinator) LastResult() *Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Submit validates the roster against the flight and current seat map,
// builds the draft and sends it to the backend. While one submission is in
// flight every further call fails with ErrSubmissionInFlight. A succeeded
// coordinator refuses further submissions.
//
// On a seat conflict (backend 409) the seat map is reloaded exactly once
// before the result is returned, so the caller re-renders against fresh
// availability; no booking reference exists in that outcome.
func (c *Coordinator) Submit(ctx context.Context, sessionID string, flight *airline.Flight, roster *Roster, contactEmail, contactPhone string) (*Result, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	if c.state == StateSucceeded {
		c.mu.Unlock()
		return nil, errors.New("booking already confirmed for this session")
	}
	c.inFlight = true
	c.state = StateValidating
	c.mu.Unlock()

	result := c.submit(ctx, sessionID, flight, roster, contactEmail, contactPhone)

	c.mu.Lock()
	c.inFlight = false
	c.state = result.State
	c.last = result
	c.mu.Unlock()
	return result, nil
}

func (c *Coordinator) submit(ctx context.Context, sessionID string, flight *airline.Flight, roster *Roster, contactEmail, contactPhone string) *Result {
	// Capacity check runs before any local field validation so an
	// over-capacity roster fails fast without touching the backend.
	if roster.Len() > flight.AvailableSeats {
		return &Result{
			State:   StateFailed,
			Failure: FailureCapacity,
			Message: fmt.Sprintf("only %d seats are available on this flight", flight.AvailableSeats),
			Errors: []FieldError{{
				Passenger: DraftLevel,
				Field:     "travelers",
				Message:   fmt.Sprintf("%d travelers exceed the %d available seats", roster.Len(), flight.AvailableSeats),
			}},
		}
	}

	draft, errs := BuildDraft(flight.ID, contactEmail, contactPhone, roster, c.seatMap)
	if len(errs) > 0 {
		return &Result{
			State:   StateFailed,
			Failure: FailureValidation,
			Message: "please correct the highlighted fields",
			Errors:  errs,
		}
	}

	c.mu.Lock()
	c.state = StateSubmitting
	c.mu.Unlock()

	reference := NewReference()
	seats := draft.SeatNumbers()
	c.log.LogBookingSubmitted(ctx, sessionID, flight.ID, seats)

	records, err := c.api.CreateBooking(ctx, airline.BookingRequest{
		FlightID:         flight.ID,
		UserID:           c.userID,
		BookingReference: reference,
		SeatNumbers:      seats,
	})
	if err != nil {
		return c.failure(ctx, sessionID, flight.ID, seats, err)
	}

	if len(records) > 0 && records[0].BookingReference != "" {
		reference = records[0].BookingReference
	}
	c.log.LogBookingConfirmed(ctx, sessionID, reference, flight.ID)
	c.publish(ctx, events.BookingEvent{
		Type:             events.EventBookingConfirmed,
		SessionID:        sessionID,
		FlightID:         flight.ID,
		BookingReference: reference,
		SeatNumbers:      seats,
		ContactEmail:     draft.ContactEmail,
	})

	return &Result{
		State:     StateSucceeded,
		Reference: reference,
		Draft:     draft,
		Message:   "booking confirmed",
	}
}

func (c *Coordinator) failure(ctx context.Context, sessionID string, flightID int, seats []string, err error) *Result {
	switch {
	case airline.IsSeatConflict(err):
		c.log.LogSeatConflict(ctx, sessionID, flightID, err.Error())
		reloaded := true
		if reloadErr := c.seatMap.Reload(ctx); reloadErr != nil {
			// Booked set is now unknown, which still blocks reuse of the
			// contested seats.
			reloaded = false
			c.log.WithError(reloadErr).Warn("seat map reload after conflict failed")
		}
		c.publish(ctx, events.BookingEvent{
			Type:        events.EventBookingConflict,
			SessionID:   sessionID,
			FlightID:    flightID,
			SeatNumbers: seats,
			Detail:      err.Error(),
		})
		return &Result{
			State:       StateConflict,
			Failure:     FailureConflict,
			Message:     err.Error(),
			SeatsReload: reloaded,
		}

	case airline.IsValidation(err):
		return &Result{
			State:   StateFailed,
			Failure: FailureBackend,
			Message: err.Error(),
		}

	default:
		c.publish(ctx, events.BookingEvent{
			Type:      events.EventBookingFailed,
			SessionID: sessionID,
			FlightID:  flightID,
			Detail:    err.Error(),
		})
		return &Result{
			State:   StateFailed,
			Failure: FailureTransport,
			Message: "booking could not be submitted, please try again",
		}
	}
}

func (c *Coordinator) publish(ctx context.Context, event events.BookingEvent) {
	if err := c.events.Publish(ctx, event); err != nil {
		c.log.WithError(err).Warn("failed to publish booking event")
	}
}

const referenceCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewReference generates a client-side booking reference: "BK", the current
// epoch milliseconds, and a 5-character random suffix. The backend may
// replace it with its own reference in the response.
func NewReference() string {
	suffix := make([]byte, 5)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(referenceCharset))))
		if err != nil {
			// crypto/rand failing is unrecoverable for reference quality;
			// fall back to a time-derived character.
			suffix[i] = referenceCharset[time.Now().UnixNano()%int64(len(referenceCharset))]
			continue
		}
		suffix[i] = referenceCharset[n.Int64()]
	}
	return "BK" + strconv.FormatInt(time.Now().UnixMilli(), 10) + string(suffix)
}
