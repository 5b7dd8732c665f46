package entity

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceRecord is a per-day presence marker for a membership,
// mutually exclusive with being on leave for that date.
type AttendanceRecord struct {
	BaseSimple
	MembershipID uuid.UUID `db:"membership_id"`
	Date         time.Time `db:"date"`
}
