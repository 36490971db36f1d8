package airline

import "time"

// Flight mirrors the inventory backend's flight resource. Price is the
// per-person fare; AvailableSeats is the backend's remaining-capacity count,
// which bounds the traveler roster size.
type Flight struct {
	ID             int       `json:"id"`
	FlightNumber   string    `json:"flight_number"`
	DepartureCity  string    `json:"departure_city"`
	ArrivalCity    string    `json:"arrival_city"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	Price          float64   `json:"price"`
	AvailableSeats int       `json:"available_seats"`
}

// FlightInput is the create/update payload for the admin flight CRUD proxy
type FlightInput struct {
	FlightNumber   string    `json:"flight_number"`
	DepartureCity  string    `json:"departure_city"`
	ArrivalCity    string    `json:"arrival_city"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	Price          float64   `json:"price"`
	AvailableSeats int       `json:"available_seats"`
}

// SearchParams are the supported flight list filters
type SearchParams struct {
	DepartureCity string
	ArrivalCity   string
	Date          string // YYYY-MM-DD
	Skip          int
	Limit         int
}

// BookingRequest is the booking submission payload. One request books every
// seat in SeatNumbers under a single booking reference; the backend either
// commits all of them or rejects the whole request.
type BookingRequest struct {
	FlightID         int      `json:"flight_id"`
	UserID           int      `json:"user_id"`
	BookingReference string   `json:"booking_reference"`
	SeatNumbers      []string `json:"seat_numbers"`
}

// BookingRecord is one per-seat booking row returned by the backend
type BookingRecord struct {
	ID               int       `json:"id"`
	UserID           int       `json:"user_id"`
	FlightID         int       `json:"flight_id"`
	BookingReference string    `json:"booking_reference"`
	SeatNumber       string    `json:"seat_number"`
	BookingStatus    string    `json:"booking_status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// PriceRange is the min/max fare across the catalog for a traveler count
type PriceRange struct {
	MinPrice float64 `json:"min_price"`
	MaxPrice float64 `json:"max_price"`
}

// Stats is the admin dashboard summary
type Stats struct {
	TotalFlights    int `json:"total_flights"`
	TotalBookings   int `json:"total_bookings"`
	UpcomingFlights int `json:"upcoming_flights"`
}
