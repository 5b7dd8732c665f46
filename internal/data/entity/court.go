package entity

import "github.com/google/uuid"

type CourtStatus string

const (
	CourtStatusAvailable        CourtStatus = "available"
	CourtStatusUnderMaintenance CourtStatus = "under_maintenance"
	CourtStatusEvent            CourtStatus = "event"
	CourtStatusTournament       CourtStatus = "tournament"
	CourtStatusMembership       CourtStatus = "membership"
	CourtStatusCoaching         CourtStatus = "coaching"
)

// Court is a physical resource with an integer concurrent-use capacity.
// Capacity is 1 for exclusive-use courts and N for shared resources such
// as a pool, where one unit is one lane-space.
type Court struct {
	Base
	SportID  uuid.UUID   `db:"sport_id"`
	Name     string      `db:"name"`
	Capacity int         `db:"capacity"`
	Status   CourtStatus `db:"status"`
	// Exclusive courts reject daily bookings outright whenever the status
	// is anything other than available. Non-exclusive membership courts
	// stay bookable outside the membership window.
	Exclusive bool `db:"exclusive"`
}

// AcceptsBookings gates new daily bookings on operator-set status,
// independent of time-slot occupancy.
func (c *Court) AcceptsBookings() bool {
	if c.Status == CourtStatusAvailable {
		return true
	}
	if c.Status == CourtStatusMembership && !c.Exclusive {
		return true
	}
	return false
}
