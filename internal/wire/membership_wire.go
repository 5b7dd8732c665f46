package wire

import (
	"court-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMembership(r chi.Router, membershipHandler *adaptor.MembershipHandler) {
	r.Route("/api/memberships", func(r chi.Router) {
		// POST /api/memberships - Create a membership with its team
		r.Post("/", membershipHandler.CreateMembership)

		// POST /api/memberships/check-clash - Probe a membership window
		r.Post("/check-clash", membershipHandler.CheckClash)

		// POST /api/memberships/leave - Grant leave and extend the membership
		r.Post("/leave", membershipHandler.GrantLeave)

		// GET /api/memberships/{id} - Membership details with team members
		r.Get("/{id}", membershipHandler.GetMembership)

		// POST /api/memberships/{id}/renew - Renew for another package period
		r.Post("/{id}/renew", membershipHandler.RenewMembership)

		// DELETE /api/memberships/{id} - Terminate
		r.Delete("/{id}", membershipHandler.TerminateMembership)

		// POST /api/memberships/{id}/holiday-compensation - Compensate one holiday
		r.Post("/{id}/holiday-compensation", membershipHandler.CompensateHoliday)

		// POST /api/memberships/{id}/attendance - Mark attendance for a date
		r.Post("/{id}/attendance", membershipHandler.MarkAttendance)

		// GET /api/memberships/{id}/attendance - Attendance history
		r.Get("/{id}/attendance", membershipHandler.AttendanceHistory)

		// GET /api/memberships/{id}/leaves - Leave history
		r.Get("/{id}/leaves", membershipHandler.LeaveHistory)

		// GET /api/memberships/{id}/leave-status?date= - On-leave check
		r.Get("/{id}/leave-status", membershipHandler.LeaveStatus)
	})

	// POST /api/holidays - Declare a facility-wide holiday
	r.Post("/api/holidays", membershipHandler.DeclareHoliday)
}
