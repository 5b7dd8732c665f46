package entity

import (
	"time"

	"github.com/google/uuid"
)

type LeaveStatus string

const (
	LeaveStatusGranted LeaveStatus = "granted"
)

type LeaveKind string

const (
	LeaveKindLeave   LeaveKind = "leave"
	LeaveKindHoliday LeaveKind = "holiday"
)

// LeaveRecord marks a membership absent for [StartDate, EndDate] inclusive.
// Once granted it is append-only; the linked compensation window records
// the extension actually applied to the membership end date.
type LeaveRecord struct {
	Base
	MembershipID      uuid.UUID   `db:"membership_id"`
	StartDate         time.Time   `db:"start_date"`
	EndDate           time.Time   `db:"end_date"`
	Reason            string      `db:"reason"`
	Kind              LeaveKind   `db:"kind"`
	Status            LeaveStatus `db:"status"`
	CompensationStart *time.Time  `db:"compensation_start"`
	CompensationEnd   *time.Time  `db:"compensation_end"`
}

// Covers reports whether the given date falls inside the leave range.
func (l *LeaveRecord) Covers(date time.Time) bool {
	return l.Status == LeaveStatusGranted && DateWithin(date, l.StartDate, l.EndDate)
}

// Days is the inclusive length of the leave in days.
func (l *LeaveRecord) Days() int {
	return DaysBetween(l.StartDate, l.EndDate) + 1
}
