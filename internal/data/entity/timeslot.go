package entity

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTimeSlot = errors.New("time slot start must be before end")

const minutesPerDay = 24 * 60

// TimeSlot is a half-open [Start, End) time-of-day window in minutes from
// midnight. Touching slots (a.End == b.Start) do not overlap.
type TimeSlot struct {
	Start int `db:"start_minute"`
	End   int `db:"end_minute"`
}

func NewTimeSlot(start, end int) (TimeSlot, error) {
	if start < 0 || end > minutesPerDay {
		return TimeSlot{}, fmt.Errorf("time slot %d-%d outside day bounds: %w", start, end, ErrInvalidTimeSlot)
	}
	if start >= end {
		return TimeSlot{}, fmt.Errorf("time slot %d-%d: %w", start, end, ErrInvalidTimeSlot)
	}
	return TimeSlot{Start: start, End: end}, nil
}

// ParseTimeSlot builds a slot from "15:04" formatted clock times.
func ParseTimeSlot(start, end string) (TimeSlot, error) {
	s, err := parseClock(start)
	if err != nil {
		return TimeSlot{}, err
	}
	e, err := parseClock(end)
	if err != nil {
		return TimeSlot{}, err
	}
	return NewTimeSlot(s, e)
}

func parseClock(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("parse clock time %q: %w", value, ErrInvalidTimeSlot)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func (s TimeSlot) Overlaps(o TimeSlot) bool {
	return s.Start < o.End && o.Start < s.End
}

func (s TimeSlot) Contains(o TimeSlot) bool {
	return s.Start <= o.Start && o.End <= s.End
}

func (s TimeSlot) Duration() time.Duration {
	return time.Duration(s.End-s.Start) * time.Minute
}

// Hours returns the slot length in fractional hours, for pricing.
func (s TimeSlot) Hours() float64 {
	return float64(s.End-s.Start) / 60.0
}

func (s TimeSlot) String() string {
	return fmt.Sprintf("%s-%s", formatClock(s.Start), formatClock(s.End))
}

func (s TimeSlot) StartClock() string { return formatClock(s.Start) }
func (s TimeSlot) EndClock() string   { return formatClock(s.End) }

func formatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
