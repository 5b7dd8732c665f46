package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"court-booking/internal/data/entity"
	"court-booking/internal/dto/request"
	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScheduleHandler serves the read-side probes: clash checks, price
// quotes and the availability heatmap.
type ScheduleHandler struct {
	booking usecase.BookingService
	heatmap usecase.HeatmapService
	log     *zap.Logger
}

func NewScheduleHandler(booking usecase.BookingService, heatmap usecase.HeatmapService, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		booking: booking,
		heatmap: heatmap,
		log:     log.With(zap.String("handler", "schedule")),
	}
}

// CheckClash handles POST /api/schedule/check-clash
func (h *ScheduleHandler) CheckClash(w http.ResponseWriter, r *http.Request) {
	var req request.CheckClashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.booking.CheckClash(r.Context(), &req)
	if err != nil {
		writeServiceError(h.log, w, err, "check clash")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// CalculatePrice handles POST /api/schedule/price
func (h *ScheduleHandler) CalculatePrice(w http.ResponseWriter, r *http.Request) {
	var req request.CalculatePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	quote, err := h.booking.CalculatePrice(r.Context(), &req)
	if err != nil {
		writeServiceError(h.log, w, err, "calculate price")
		return
	}

	utils.ResponseSuccess(w, "success", quote)
}

// Heatmap handles GET /api/schedule/heatmap?date=YYYY-MM-DD&court_ids=a,b&sub_slot_minutes=30
func (h *ScheduleHandler) Heatmap(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date, err := entity.ParseDate(query.Get("date"))
	if err != nil {
		utils.ResponseBadRequest(w, "Query parameter 'date' must be YYYY-MM-DD", nil)
		return
	}

	var courtIDs []uuid.UUID
	if raw := query.Get("court_ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				utils.ResponseBadRequest(w, "Invalid court ID "+part, nil)
				return
			}
			courtIDs = append(courtIDs, id)
		}
	}

	subSlotMinutes := utils.ParseInt(query.Get("sub_slot_minutes"), 0)

	heatmap, err := h.heatmap.Heatmap(r.Context(), courtIDs, date, subSlotMinutes)
	if err != nil {
		writeServiceError(h.log, w, err, "heatmap")
		return
	}

	utils.ResponseSuccess(w, "success", heatmap)
}
