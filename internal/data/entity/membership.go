package entity

import (
	"time"

	"github.com/google/uuid"
)

type MembershipStatus string

const (
	MembershipStatusActive     MembershipStatus = "active"
	MembershipStatusEnded      MembershipStatus = "ended"
	MembershipStatusTerminated MembershipStatus = "terminated"
)

// MembershipPackage defines duration and pricing for team memberships.
type MembershipPackage struct {
	Base
	Name           string  `db:"name"`
	DurationDays   int     `db:"duration_days"`
	PricePerPerson float64 `db:"price_per_person"`
	MaxTeamSize    int     `db:"max_team_size"`
}

type TeamMember struct {
	BaseSimple
	MembershipID uuid.UUID `db:"membership_id"`
	Name         string    `db:"name"`
	Phone        string    `db:"phone"`
}

// Membership occupies one capacity unit on its court inside Window for
// every day in [StartDate, CurrentEndDate], except days covered by a
// granted leave. CurrentEndDate advances under renewal and compensation.
type Membership struct {
	Base
	PackageID      uuid.UUID        `db:"package_id"`
	CourtID        uuid.UUID        `db:"court_id"`
	Window         TimeSlot         `db:"-"`
	StartDate      time.Time        `db:"start_date"`
	CurrentEndDate time.Time        `db:"current_end_date"`
	Status         MembershipStatus `db:"status"`
	Members        []*TeamMember
}

// CoversDate reports whether the membership window runs on the given date,
// ignoring leave. Terminated and ended memberships occupy nothing.
func (m *Membership) CoversDate(date time.Time) bool {
	return m.Status == MembershipStatusActive && DateWithin(date, m.StartDate, m.CurrentEndDate)
}

// Occupies reports whether the membership consumes a capacity unit
// overlapping the given slot on the given date, ignoring leave.
func (m *Membership) Occupies(date time.Time, slot TimeSlot) bool {
	return m.CoversDate(date) && m.Window.Overlaps(slot)
}
