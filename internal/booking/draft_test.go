package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRoster(t *testing.T, seats ...string) *Roster {
	t.Helper()
	r := NewRoster(len(seats))
	for i, seat := range seats {
		require.NoError(t, r.Update(i, Passenger{
			FirstName:      "Pat",
			LastName:       "Smith",
			Age:            30,
			Gender:         GenderOther,
			SeatPreference: SeatPreferenceAisle,
			MealPreference: MealVegetarian,
		}))
		if seat != "" {
			require.NoError(t, r.AssignSeat(i, seat, noneBooked()))
		}
	}
	return r
}

func TestBuildDraftSuccess(t *testing.T) {
	roster := validRoster(t, "1A", "1B")

	draft, errs := BuildDraft(42, "pat@example.com", "+14155550123", roster, noneBooked())

	require.Empty(t, errs)
	require.NotNil(t, draft)
	assert.Equal(t, 42, draft.FlightID)
	assert.Equal(t, "pat@example.com", draft.ContactEmail)
	assert.Equal(t, []string{"1A", "1B"}, draft.SeatNumbers())
	require.Len(t, draft.Passengers, 2)
}

func TestBuildDraftDoesNotMutateRoster(t *testing.T) {
	roster := validRoster(t, "1A")
	before := roster.Passengers()

	draft, errs := BuildDraft(1, "pat@example.com", "4155550123", roster, noneBooked())
	require.Empty(t, errs)

	// Mutating the draft must not leak back into the roster.
	draft.Passengers[0].FirstName = "changed"
	draft.Passengers[0].Seat = "9F"

	assert.Equal(t, before, roster.Passengers())
}

func TestBuildDraftContactValidation(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		phone     string
		wantField string
	}{
		{name: "malformed email", email: "not-an-email", phone: "+14155550123", wantField: "contact_email"},
		{name: "email missing domain", email: "pat@", phone: "+14155550123", wantField: "contact_email"},
		{name: "empty email", email: "", phone: "+14155550123", wantField: "contact_email"},
		{name: "phone too short", email: "pat@example.com", phone: "12345", wantField: "contact_phone"},
		{name: "phone too long", email: "pat@example.com", phone: "1234567890123456", wantField: "contact_phone"},
		{name: "phone with letters", email: "pat@example.com", phone: "415555CALL", wantField: "contact_phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roster := validRoster(t, "1A")

			draft, errs := BuildDraft(1, tt.email, tt.phone, roster, noneBooked())

			assert.Nil(t, draft)
			require.NotEmpty(t, errs)
			found := false
			for _, fieldErr := range errs {
				if fieldErr.Field == tt.wantField {
					found = true
					assert.Equal(t, DraftLevel, fieldErr.Passenger)
				}
			}
			assert.True(t, found, "expected an error on %s", tt.wantField)
		})
	}
}

func TestBuildDraftPhoneAcceptsLeadingPlus(t *testing.T) {
	roster := validRoster(t, "1A")

	draft, errs := BuildDraft(1, "pat@example.com", "+4915123456789", roster, noneBooked())

	assert.Empty(t, errs)
	assert.NotNil(t, draft)
}

func TestBuildDraftPassengerValidation(t *testing.T) {
	roster := NewRoster(1)
	require.NoError(t, roster.Update(0, Passenger{
		FirstName:      "",
		LastName:       "",
		Age:            150,
		Gender:         Gender("unknown"),
		SeatPreference: SeatPreference("floor"),
		MealPreference: MealPreference("seconds"),
	}))

	draft, errs := BuildDraft(1, "pat@example.com", "4155550123", roster, noneBooked())

	assert.Nil(t, draft)
	fields := make(map[string]int)
	for _, fieldErr := range errs {
		assert.Equal(t, 0, fieldErr.Passenger)
		fields[fieldErr.Field]++
	}
	for _, field := range []string{"first_name", "last_name", "age", "gender", "seat_preference", "meal_preference", "seat"} {
		assert.Contains(t, fields, field)
	}
}

func TestBuildDraftCollectsAllErrorsInOnePass(t *testing.T) {
	roster := NewRoster(2)
	// Both passengers missing everything, plus bad contact details.
	draft, errs := BuildDraft(1, "bad", "bad", roster, noneBooked())

	assert.Nil(t, draft)
	passengersSeen := make(map[int]bool)
	for _, fieldErr := range errs {
		passengersSeen[fieldErr.Passenger] = true
	}
	assert.True(t, passengersSeen[DraftLevel])
	assert.True(t, passengersSeen[0])
	assert.True(t, passengersSeen[1], "validation must not stop at the first failing passenger")
}

func TestBuildDraftSeatChecks(t *testing.T) {
	t.Run("missing seat", func(t *testing.T) {
		roster := validRoster(t, "")
		draft, errs := BuildDraft(1, "pat@example.com", "4155550123", roster, noneBooked())
		assert.Nil(t, draft)
		require.Len(t, errs, 1)
		assert.Equal(t, "seat", errs[0].Field)
	})

	t.Run("booked seat", func(t *testing.T) {
		roster := validRoster(t, "1A")
		booked := &stubBooked{booked: map[string]bool{"1A": true}}
		draft, errs := BuildDraft(1, "pat@example.com", "4155550123", roster, booked)
		assert.Nil(t, draft)
		require.Len(t, errs, 1)
		assert.Equal(t, "seat", errs[0].Field)
		assert.Equal(t, 0, errs[0].Passenger)
	})
}
