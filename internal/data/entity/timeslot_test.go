package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeSlot(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		end     int
		wantErr bool
	}{
		{"valid morning slot", 540, 600, false},
		{"full day", 0, 1440, false},
		{"zero length", 600, 600, true},
		{"inverted", 600, 540, true},
		{"negative start", -10, 60, true},
		{"past midnight", 1380, 1500, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, err := NewTimeSlot(tt.start, tt.end)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeSlot)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.start, slot.Start)
			assert.Equal(t, tt.end, slot.End)
		})
	}
}

func TestTimeSlot_Overlaps(t *testing.T) {
	nineToTen, err := ParseTimeSlot("09:00", "10:00")
	require.NoError(t, err)

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"identical", "09:00", "10:00", true},
		{"contained", "09:15", "09:45", true},
		{"straddles start", "08:30", "09:30", true},
		{"straddles end", "09:30", "10:30", true},
		{"touching before", "08:00", "09:00", false},
		{"touching after", "10:00", "11:00", false},
		{"disjoint", "11:00", "12:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other, err := ParseTimeSlot(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, nineToTen.Overlaps(other))
			assert.Equal(t, tt.want, other.Overlaps(nineToTen))
		})
	}
}

func TestTimeSlot_Hours(t *testing.T) {
	slot, err := ParseTimeSlot("09:00", "10:30")
	require.NoError(t, err)
	assert.InDelta(t, 1.5, slot.Hours(), 1e-9)
	assert.Equal(t, 90, slot.Duration())
}

func TestParseTimeSlot_Invalid(t *testing.T) {
	_, err := ParseTimeSlot("9am", "10:00")
	assert.Error(t, err)

	_, err = ParseTimeSlot("10:00", "09:00")
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestTimeSlot_Clock(t *testing.T) {
	slot, err := ParseTimeSlot("06:05", "22:30")
	require.NoError(t, err)
	assert.Equal(t, "06:05", slot.StartClock())
	assert.Equal(t, "22:30", slot.EndClock())
}
