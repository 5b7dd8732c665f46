package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a one-off daily reservation of Units capacity units on a
// court for a single date and time slot.
type Booking struct {
	Base
	Reference     string        `db:"reference"`
	CourtID       uuid.UUID     `db:"court_id"`
	Date          time.Time     `db:"date"`
	Slot          TimeSlot      `db:"-"`
	Units         int           `db:"units"`
	CustomerName  string        `db:"customer_name"`
	CustomerPhone string        `db:"customer_phone"`
	Accessories   []*BookingAccessory
	TotalPrice    float64       `db:"total_price"`
	Discount      float64       `db:"discount"`
	AmountPaid    float64       `db:"amount_paid"`
	Status        BookingStatus `db:"status"`
	Rescheduled   bool          `db:"rescheduled"`
}

// Occupies reports whether the booking consumes capacity overlapping the
// given slot on the given date. Cancelled bookings free their units.
func (b *Booking) Occupies(date time.Time, slot TimeSlot) bool {
	return b.Status == BookingStatusConfirmed && SameDay(b.Date, date) && b.Slot.Overlaps(slot)
}

// Expired reports whether the booking's end time has passed.
func (b *Booking) Expired(now time.Time) bool {
	end := Day(b.Date).Add(time.Duration(b.Slot.End) * time.Minute)
	return now.After(end)
}

func (b *Booking) Outstanding() float64 {
	return b.TotalPrice - b.AmountPaid
}
