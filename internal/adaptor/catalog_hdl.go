package adaptor

import (
	"encoding/json"
	"net/http"

	"court-booking/internal/dto/request"
	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// CreateSport handles POST /api/sports
func (h *CatalogHandler) CreateSport(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	sport, err := h.service.CreateSport(r.Context(), &req)
	if err != nil {
		writeServiceError(h.log, w, err, "create sport")
		return
	}

	utils.ResponseCreated(w, "Sport created", sport)
}

// ListSports handles GET /api/sports
func (h *CatalogHandler) ListSports(w http.ResponseWriter, r *http.Request) {
	sports, err := h.service.ListSports(r.Context())
	if err != nil {
		writeServiceError(h.log, w, err, "list sports")
		return
	}

	utils.ResponseSuccess(w, "success", sports)
}

// UpdateSportRate handles PUT /api/sports/{id}/rate
func (h *CatalogHandler) UpdateSportRate(w http.ResponseWriter, r *http.Request) {
	sportID := chi.URLParam(r, "id")

	var req request.UpdateSportRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.UpdateSportRate(r.Context(), sportID, &req); err != nil {
		writeServiceError(h.log, w, err, "update sport rate")
		return
	}

	utils.ResponseSuccess(w, "Sport rate updated", nil)
}

// CreateCourt handles POST /api/courts
func (h *CatalogHandler) CreateCourt(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCourtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	court, err := h.service.CreateCourt(r.Context(), &req)
	if err != nil {
		writeServiceError(h.log, w, err, "create court")
		return
	}

	utils.ResponseCreated(w, "Court created", court)
}

// ListCourts handles GET /api/courts
func (h *CatalogHandler) ListCourts(w http.ResponseWriter, r *http.Request) {
	courts, err := h.service.ListCourts(r.Context())
	if err != nil {
		writeServiceError(h.log, w, err, "list courts")
		return
	}

	utils.ResponseSuccess(w, "success", courts)
}

// GetCourt handles GET /api/courts/{id}
func (h *CatalogHandler) GetCourt(w http.ResponseWriter, r *http.Request) {
	courtID := chi.URLParam(r, "id")

	court, err := h.service.GetCourtByID(r.Context(), courtID)
	if err != nil {
		writeServiceError(h.log, w, err, "get court")
		return
	}

	utils.ResponseSuccess(w, "success", court)
}

// UpdateCourtStatus handles PUT /api/courts/{id}/status
func (h *CatalogHandler) UpdateCourtStatus(w http.ResponseWriter, r *http.Request) {
	courtID := chi.URLParam(r, "id")

	var req request.UpdateCourtStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.UpdateCourtStatus(r.Context(), courtID, &req); err != nil {
		writeServiceError(h.log, w, err, "update court status")
		return
	}

	utils.ResponseSuccess(w, "Court status updated", nil)
}

// CreateAccessory handles POST /api/accessories
func (h *CatalogHandler) CreateAccessory(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAccessoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	accessory, err := h.service.CreateAccessory(r.Context(), &req)
	if err != nil {
		writeServiceError(h.log, w, err, "create accessory")
		return
	}

	utils.ResponseCreated(w, "Accessory created", accessory)
}

// ListAccessories handles GET /api/accessories
func (h *CatalogHandler) ListAccessories(w http.ResponseWriter, r *http.Request) {
	accessories, err := h.service.ListAccessories(r.Context())
	if err != nil {
		writeServiceError(h.log, w, err, "list accessories")
		return
	}

	utils.ResponseSuccess(w, "success", accessories)
}

// CreatePackage handles POST /api/packages
func (h *CatalogHandler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	pkg, err := h.service.CreatePackage(r.Context(), &req)
	if err != nil {
		writeServiceError(h.log, w, err, "create package")
		return
	}

	utils.ResponseCreated(w, "Package created", pkg)
}

// ListPackages handles GET /api/packages
func (h *CatalogHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.service.ListPackages(r.Context())
	if err != nil {
		writeServiceError(h.log, w, err, "list packages")
		return
	}

	utils.ResponseSuccess(w, "success", packages)
}
