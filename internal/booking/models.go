package booking

// Gender is an advisory passenger attribute
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// IsValid checks if the gender value is one of the accepted options
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// SeatPreference is advisory only: it never constrains which seat a
// passenger may actually select.
type SeatPreference string

const (
	SeatPreferenceWindow SeatPreference = "window"
	SeatPreferenceMiddle SeatPreference = "middle"
	SeatPreferenceAisle  SeatPreference = "aisle"
	SeatPreferenceNone   SeatPreference = "no-preference"
)

// IsValid checks if the seat preference is one of the accepted options
func (p SeatPreference) IsValid() bool {
	switch p {
	case SeatPreferenceWindow, SeatPreferenceMiddle, SeatPreferenceAisle, SeatPreferenceNone:
		return true
	}
	return false
}

// MealPreference selects the onboard meal
type MealPreference string

const (
	MealRegular    MealPreference = "regular"
	MealVegetarian MealPreference = "vegetarian"
	MealVegan      MealPreference = "vegan"
	MealKosher     MealPreference = "kosher"
	MealHalal      MealPreference = "halal"
	MealGlutenFree MealPreference = "gluten-free"
)

// IsValid checks if the meal preference is one of the accepted options
func (m MealPreference) IsValid() bool {
	switch m {
	case MealRegular, MealVegetarian, MealVegan, MealKosher, MealHalal, MealGlutenFree:
		return true
	}
	return false
}

// Passenger is one traveler in the roster. Seat is empty until assigned.
type Passenger struct {
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	Age            int            `json:"age"`
	Gender         Gender         `json:"gender"`
	SeatPreference SeatPreference `json:"seat_preference"`
	MealPreference MealPreference `json:"meal_preference"`
	Seat           string         `json:"seat,omitempty"`
}

// defaultPassenger returns the field defaults applied when the roster grows
func defaultPassenger() Passenger {
	return Passenger{
		Age:            30,
		Gender:         GenderMale,
		SeatPreference: SeatPreferenceWindow,
		MealPreference: MealRegular,
	}
}

// DraftLevel marks a FieldError that applies to the draft as a whole rather
// than to one passenger (e.g. contact fields, capacity).
const DraftLevel = -1

// FieldError is one field-level validation failure
type FieldError struct {
	Passenger int    `json:"passenger"` // index into the roster, or DraftLevel
	Field     string `json:"field"`
	Message   string `json:"message"`
}

// ValidationErrors aggregates every failure found by a validation pass
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "no validation errors"
	}
	return v[0].Message
}

// Draft is an assembled, locally validated, not-yet-submitted booking
// request. It is produced only by BuildDraft.
type Draft struct {
	FlightID     int         `json:"flight_id"`
	ContactEmail string      `json:"contact_email"`
	ContactPhone string      `json:"contact_phone"`
	Passengers   []Passenger `json:"passengers"`
}

// State is the coordinator's submission state machine
type State string

const (
	StateIdle       State = "IDLE"
	StateValidating State = "VALIDATING"
	StateSubmitting State = "SUBMITTING"
	StateSucceeded  State = "SUCCEEDED"
	StateConflict   State = "CONFLICT"
	StateFailed     State = "FAILED"
)

// IsTerminal reports whether the submission finished successfully. Conflict
// and Failed allow another attempt after the user intervenes; Succeeded
// does not.
func (s State) IsTerminal() bool {
	return s == StateSucceeded
}

// FailureKind discriminates why a submission did not succeed
type FailureKind string

const (
	FailureNone       FailureKind = ""
	FailureValidation FailureKind = "VALIDATION"
	FailureCapacity   FailureKind = "CAPACITY"
	FailureConflict   FailureKind = "SEAT_CONFLICT"
	FailureBackend    FailureKind = "BACKEND_VALIDATION"
	FailureTransport  FailureKind = "TRANSPORT"
)

// Result is the coordinator's discriminated submission outcome. Exactly one
// of the failure fields is meaningful for non-success states; Reference is
// set only on success.
type Result struct {
	State       State        `json:"state"`
	Failure     FailureKind  `json:"failure,omitempty"`
	Message     string       `json:"message,omitempty"`
	Errors      []FieldError `json:"errors,omitempty"`
	Reference   string       `json:"booking_reference,omitempty"`
	Draft       *Draft       `json:"draft,omitempty"`
	SeatsReload bool         `json:"seat_map_reloaded,omitempty"`
}
