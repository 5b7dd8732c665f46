package wire

import (
	"court-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/bookings", func(r chi.Router) {
		// POST /api/bookings - Admit and confirm a booking
		r.Post("/", bookingHandler.CreateBooking)

		// GET /api/bookings/{id} - Booking details
		r.Get("/{id}", bookingHandler.GetBooking)

		// GET /api/bookings/reference/{reference} - Lookup by booking reference
		r.Get("/reference/{reference}", bookingHandler.GetBookingByReference)

		// PUT /api/bookings/{id} - Reschedule or amend a booking
		r.Put("/{id}", bookingHandler.UpdateBooking)

		// DELETE /api/bookings/{id} - Cancel a booking
		r.Delete("/{id}", bookingHandler.CancelBooking)

		// POST /api/bookings/{id}/payments - Record a partial payment
		r.Post("/{id}/payments", bookingHandler.AddPayment)
	})

	// GET /api/courts/{id}/bookings?date=YYYY-MM-DD - Daily court schedule
	r.Get("/api/courts/{id}/bookings", bookingHandler.GetCourtBookings)
}
