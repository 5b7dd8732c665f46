package wire

import (
	"court-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler) {
	r.Route("/api/sports", func(r chi.Router) {
		// GET /api/sports - List sports with hourly rates
		r.Get("/", catalogHandler.ListSports)

		// POST /api/sports - Add a sport
		r.Post("/", catalogHandler.CreateSport)

		// PUT /api/sports/{id}/rate - Change the hourly rate
		r.Put("/{id}/rate", catalogHandler.UpdateSportRate)
	})

	r.Route("/api/courts", func(r chi.Router) {
		// GET /api/courts - List courts
		r.Get("/", catalogHandler.ListCourts)

		// POST /api/courts - Add a court
		r.Post("/", catalogHandler.CreateCourt)

		// GET /api/courts/{id} - Court details
		r.Get("/{id}", catalogHandler.GetCourt)

		// PUT /api/courts/{id}/status - Move a court between statuses
		r.Put("/{id}/status", catalogHandler.UpdateCourtStatus)
	})

	r.Route("/api/accessories", func(r chi.Router) {
		// GET /api/accessories - List rentable accessories
		r.Get("/", catalogHandler.ListAccessories)

		// POST /api/accessories - Add an accessory
		r.Post("/", catalogHandler.CreateAccessory)
	})

	r.Route("/api/packages", func(r chi.Router) {
		// GET /api/packages - List membership packages
		r.Get("/", catalogHandler.ListPackages)

		// POST /api/packages - Add a package
		r.Post("/", catalogHandler.CreatePackage)
	})
}
