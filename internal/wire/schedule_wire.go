package wire

import (
	"court-booking/internal/adaptor"
	"court-booking/pkg/middleware"
	"court-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
)

func wireSchedule(r chi.Router, scheduleHandler *adaptor.ScheduleHandler, config *utils.Config) {
	// Probe endpoints are called on every keystroke of a booking form,
	// so they carry a per-IP rate limit.
	r.Route("/api/schedule", func(r chi.Router) {
		r.Use(middleware.RateLimit(config.RateLimit.RequestsPerSecond, config.RateLimit.Burst))

		// POST /api/schedule/check-clash - Non-binding availability probe
		r.Post("/check-clash", scheduleHandler.CheckClash)

		// POST /api/schedule/price - Non-binding price quote
		r.Post("/price", scheduleHandler.CalculatePrice)

		// GET /api/schedule/heatmap - Sub-slot availability grid
		r.Get("/heatmap", scheduleHandler.Heatmap)
	})
}
