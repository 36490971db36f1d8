package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skybook/internal/airline"
	"skybook/internal/shared/utils/response"
)

type Controller struct {
	store *Store
}

func NewController(store *Store) *Controller {
	return &Controller{store: store}
}

// CreateSessionRequest starts a booking flow for one flight
type CreateSessionRequest struct {
	FlightID int `json:"flight_id" binding:"required,gt=0"`
}

// ResizeRequest sets the traveler count; out-of-range values are clamped,
// never rejected.
type ResizeRequest struct {
	Travelers int `json:"travelers"`
}

// AssignSeatRequest claims a seat for one passenger
type AssignSeatRequest struct {
	Seat string `json:"seat" binding:"required"`
}

// SubmitRequest carries the contact details for submission
type SubmitRequest struct {
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
}

// CreateSession handles POST /api/v1/sessions
func (ct *Controller) CreateSession(ctx *gin.Context) {
	var req CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	session, err := ct.store.Create(ctx.Request.Context(), req.FlightID)
	if err != nil {
		if errors.Is(err, airline.ErrNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Flight not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusBadGateway, "Could not start booking session", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking session created", session.Snapshot(), nil)
}

// GetSession handles GET /api/v1/sessions/:id
func (ct *Controller) GetSession(ctx *gin.Context) {
	session, ok := ct.session(ctx)
	if !ok {
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Booking session", session.Snapshot(), nil)
}

// DeleteSession handles DELETE /api/v1/sessions/:id
func (ct *Controller) DeleteSession(ctx *gin.Context) {
	ct.store.Delete(ctx.Param("id"))
	response.RespondJSON(ctx, "success", http.StatusOK, "Booking session discarded", nil, nil)
}

// ResizeTravelers handles PUT /api/v1/sessions/:id/travelers
func (ct *Controller) ResizeTravelers(ctx *gin.Context) {
	session, ok := ct.session(ctx)
	if !ok {
		return
	}

	var req ResizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	applied := session.Resize(req.Travelers)
	response.RespondJSON(ctx, "success", http.StatusOK, "Traveler count updated",
		gin.H{"requested": req.Travelers, "applied": applied, "session": session.Snapshot()}, nil)
}

// UpdatePassenger handles PUT /api/v1/sessions/:id/passengers/:index
func (ct *Controller) UpdatePassenger(ctx *gin.Context) {
	session, ok := ct.session(ctx)
	if !ok {
		return
	}
	index, ok := ct.passengerIndex(ctx)
	if !ok {
		return
	}

	var passenger Passenger
	if err := ctx.ShouldBindJSON(&passenger); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := session.UpdatePassenger(index, passenger); err != nil {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Unknown passenger", nil, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Passenger updated", session.Snapshot(), nil)
}

// AssignSeat handles PUT /api/v1/sessions/:id/passengers/:index/seat
func (ct *Controller) AssignSeat(ctx *gin.Context) {
	session, ok := ct.session(ctx)
	if !ok {
		return
	}
	index, ok := ct.passengerIndex(ctx)
	if !ok {
		return
	}

	var req AssignSeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := session.AssignSeat(ctx.Request.Context(), index, req.Seat); err != nil {
		if errors.Is(err, ErrSeatBooked) {
			// Seat map was refreshed; the client should re-render it.
			response.RespondJSON(ctx, "error", http.StatusConflict, "Seat is already booked",
				gin.H{"seat_map": session.SeatMapView()}, err.Error())
			return
		}
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Could not assign seat", nil, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Seat assigned", session.Snapshot(), nil)
}

// ClearSeat handles DELETE /api/v1/sessions/:id/passengers/:index/seat
func (ct *Controller) ClearSeat(ctx *gin.Context) {
	session, ok := ct.session(ctx)
	if !ok {
		return
	}
	index, ok := ct.passengerIndex(ctx)
	if !ok {
		return
	}

	if err := session.ClearSeat(index); err != nil {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Unknown passenger", nil, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Seat released", session.Snapshot(), nil)
}

// GetSeatMap handles GET /api/v1/sessions/:id/seatmap
func (ct *Controller) GetSeatMap(ctx *gin.Context) {
	session, ok := ct.session(ctx)
	if !ok {
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Seat map",
		gin.H{"loaded": session.SeatMap.Loaded(), "seats": session.SeatMapView()}, nil)
}

// RefreshSeatMap handles POST /api/v1/sessions/:id/seatmap/refresh
func (ct *Controller) RefreshSeatMap(ctx *gin.Context) {
	session, ok := ct.session(ctx)
	if !ok {
		return
	}

	if err := session.RefreshSeatMap(ctx.Request.Context()); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadGateway, "Could not refresh seat map", nil, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Seat map refreshed",
		gin.H{"loaded": session.SeatMap.Loaded(), "seats": session.SeatMapView()}, nil)
}

// Submit handles POST /api/v1/sessions/:id/submit
func (ct *Controller) Submit(ctx *gin.Context) {
	session, ok := ct.session(ctx)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := session.Submit(ctx.Request.Context(), req.ContactEmail, req.ContactPhone)
	if err != nil {
		if errors.Is(err, ErrSubmissionInFlight) {
			response.RespondJSON(ctx, "error", http.StatusTooManyRequests, "Submission already in progress", nil, err.Error())
			return
		}
		response.RespondJSON(ctx, "error", http.StatusConflict, "Submission rejected", nil, err.Error())
		return
	}

	switch result.State {
	case StateSucceeded:
		response.RespondJSON(ctx, "success", http.StatusCreated, result.Message, result, nil)
	case StateConflict:
		response.RespondJSON(ctx, "error", http.StatusConflict, result.Message,
			gin.H{"result": result, "seat_map": session.SeatMapView()}, nil)
	default:
		code := http.StatusBadRequest
		if result.Failure == FailureTransport {
			code = http.StatusBadGateway
		}
		response.RespondJSON(ctx, "error", code, result.Message, result, result.Errors)
	}
}

func (ct *Controller) session(ctx *gin.Context) (*Session, bool) {
	session, err := ct.store.Get(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking session not found", nil, err.Error())
		return nil, false
	}
	return session, true
}

func (ct *Controller) passengerIndex(ctx *gin.Context) (int, bool) {
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil || index < 0 {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid passenger index", nil, nil)
		return 0, false
	}
	return index, true
}
