package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBooked struct {
	booked map[string]bool
}

func (s *stubBooked) IsBooked(seat string) bool {
	return s.booked[seat]
}

func noneBooked() *stubBooked {
	return &stubBooked{booked: map[string]bool{}}
}

func TestNewRosterDefaults(t *testing.T) {
	r := NewRoster(2)

	require.Equal(t, 2, r.Len())
	for _, p := range r.Passengers() {
		assert.Equal(t, 30, p.Age)
		assert.Equal(t, GenderMale, p.Gender)
		assert.Equal(t, SeatPreferenceWindow, p.SeatPreference)
		assert.Equal(t, MealRegular, p.MealPreference)
		assert.Empty(t, p.Seat)
	}
}

func TestRosterResize(t *testing.T) {
	tests := []struct {
		name           string
		start          int
		resizeTo       int
		availableSeats int
		want           int
	}{
		{name: "grow", start: 1, resizeTo: 4, availableSeats: 10, want: 4},
		{name: "shrink", start: 4, resizeTo: 2, availableSeats: 10, want: 2},
		{name: "clamped to capacity", start: 1, resizeTo: 8, availableSeats: 5, want: 5},
		{name: "clamped to one", start: 3, resizeTo: 0, availableSeats: 10, want: 1},
		{name: "zero capacity still keeps one", start: 1, resizeTo: 3, availableSeats: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRoster(tt.start)
			applied := r.Resize(tt.resizeTo, tt.availableSeats)
			assert.Equal(t, tt.want, applied)
			assert.Equal(t, tt.want, r.Len())
		})
	}
}

func TestRosterResizePreservesPrefix(t *testing.T) {
	r := NewRoster(3)
	require.NoError(t, r.Update(0, Passenger{FirstName: "Ada", LastName: "Lovelace", Age: 36, Gender: GenderFemale, SeatPreference: SeatPreferenceAisle, MealPreference: MealVegan}))
	require.NoError(t, r.Update(1, Passenger{FirstName: "Alan", LastName: "Turing", Age: 41, Gender: GenderMale, SeatPreference: SeatPreferenceWindow, MealPreference: MealRegular}))
	require.NoError(t, r.AssignSeat(0, "4A", noneBooked()))
	require.NoError(t, r.AssignSeat(2, "4C", noneBooked()))

	// Shrink 3 -> 2: the first two survive untouched, the third is gone.
	r.Resize(2, 10)

	require.Equal(t, 2, r.Len())
	first, err := r.Passenger(0)
	require.NoError(t, err)
	assert.Equal(t, "Ada", first.FirstName)
	assert.Equal(t, "4A", first.Seat)
	second, err := r.Passenger(1)
	require.NoError(t, err)
	assert.Equal(t, "Alan", second.FirstName)

	// Grow back: the new entry is a fresh default, not the old passenger.
	r.Resize(3, 10)
	third, err := r.Passenger(2)
	require.NoError(t, err)
	assert.Empty(t, third.FirstName)
	assert.Empty(t, third.Seat)
	assert.Equal(t, 30, third.Age)
}

func TestRosterUpdateKeepsSeat(t *testing.T) {
	r := NewRoster(1)
	require.NoError(t, r.AssignSeat(0, "7F", noneBooked()))

	require.NoError(t, r.Update(0, Passenger{FirstName: "Grace", LastName: "Hopper", Age: 52, Gender: GenderFemale, SeatPreference: SeatPreferenceWindow, MealPreference: MealRegular, Seat: "1A"}))

	p, err := r.Passenger(0)
	require.NoError(t, err)
	assert.Equal(t, "Grace", p.FirstName)
	assert.Equal(t, "7F", p.Seat, "seat assignment only changes via AssignSeat")
}

func TestAssignSeatEvictsPreviousOwner(t *testing.T) {
	r := NewRoster(2)
	require.NoError(t, r.AssignSeat(0, "12C", noneBooked()))

	// Passenger 1 claims the same seat: last writer wins atomically.
	require.NoError(t, r.AssignSeat(1, "12C", noneBooked()))

	assert.Equal(t, []string{"", "12C"}, r.Selections())
	assert.Equal(t, 1, r.SeatOwner("12C"))
}

func TestAssignSeatRejectsBooked(t *testing.T) {
	r := NewRoster(1)
	booked := &stubBooked{booked: map[string]bool{"1A": true}}

	err := r.AssignSeat(0, "1A", booked)

	require.ErrorIs(t, err, ErrSeatBooked)
	assert.Equal(t, []string{""}, r.Selections(), "rejected seat must not be assigned")
}

func TestAssignSeatRejectsInvalid(t *testing.T) {
	r := NewRoster(1)

	assert.Error(t, r.AssignSeat(0, "42Z", noneBooked()))
	assert.Error(t, r.AssignSeat(0, "", noneBooked()))
	assert.Error(t, r.AssignSeat(5, "1A", noneBooked()))
}

func TestClearSeat(t *testing.T) {
	r := NewRoster(1)
	require.NoError(t, r.AssignSeat(0, "3B", noneBooked()))

	require.NoError(t, r.ClearSeat(0))

	assert.Equal(t, []string{""}, r.Selections())
	assert.Equal(t, -1, r.SeatOwner("3B"))
	assert.Error(t, r.ClearSeat(9))
}

func TestRosterValidate(t *testing.T) {
	r := NewRoster(2)
	require.NoError(t, r.Update(0, Passenger{
		FirstName: "Ada", LastName: "Lovelace", Age: 36,
		Gender: GenderFemale, SeatPreference: SeatPreferenceWindow, MealPreference: MealVegan,
	}))
	require.NoError(t, r.AssignSeat(0, "4A", noneBooked()))
	// Passenger 1 keeps defaults: names empty, no seat.

	errs := r.Validate(noneBooked())

	fields := make(map[int][]string)
	for _, e := range errs {
		fields[e.Passenger] = append(fields[e.Passenger], e.Field)
	}
	assert.Empty(t, fields[0], "complete passenger has no errors")
	assert.ElementsMatch(t, []string{"first_name", "last_name", "seat"}, fields[1])
}

func TestSelectedSeats(t *testing.T) {
	r := NewRoster(3)
	require.NoError(t, r.AssignSeat(0, "1A", noneBooked()))
	require.NoError(t, r.AssignSeat(2, "2B", noneBooked()))

	assert.Equal(t, []string{"1A", "2B"}, r.SelectedSeats())
	assert.Equal(t, []string{"1A", "", "2B"}, r.Selections())
}
