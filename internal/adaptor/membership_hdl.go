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

type MembershipHandler struct {
	service usecase.MembershipService
	ledger  usecase.LedgerService
	log     *zap.Logger
}

func NewMembershipHandler(service usecase.MembershipService, ledger usecase.LedgerService, log *zap.Logger) *MembershipHandler {
	return &MembershipHandler{
		service: service,
		ledger:  ledger,
		log:     log.With(zap.String("handler", "membership")),
	}
}

// CreateMembership handles POST /api/memberships
func (h *MembershipHandler) CreateMembership(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMembershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	membership, err := h.service.CreateMembership(r.Context(), &req)
	if err != nil {
		writeServiceError(h.log, w, err, "create membership")
		return
	}

	utils.ResponseCreated(w, "Membership created", membership)
}

// GetMembership handles GET /api/memberships/{id}
func (h *MembershipHandler) GetMembership(w http.ResponseWriter, r *http.Request) {
	membershipID := chi.URLParam(r, "id")

	membership, err := h.service.GetMembershipByID(r.Context(), membershipID)
	if err != nil {
		writeServiceError(h.log, w, err, "get membership")
		return
	}

	utils.ResponseSuccess(w, "success", membership)
}

// CheckClash handles POST /api/memberships/check-clash
func (h *MembershipHandler) CheckClash(w http.ResponseWriter, r *http.Request) {
	var req request.MembershipCheckClashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.CheckMembershipClash(r.Context(), &req)
	if err != nil {
		writeServiceError(h.log, w, err, "membership check clash")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// RenewMembership handles POST /api/memberships/{id}/renew
func (h *MembershipHandler) RenewMembership(w http.ResponseWriter, r *http.Request) {
	membershipID := chi.URLParam(r, "id")

	var req request.RenewMembershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	membership, err := h.service.RenewMembership(r.Context(), membershipID, &req)
	if err != nil {
		writeServiceError(h.log, w, err, "renew membership")
		return
	}

	utils.ResponseSuccess(w, "Membership renewed", membership)
}

// TerminateMembership handles DELETE /api/memberships/{id}
func (h *MembershipHandler) TerminateMembership(w http.ResponseWriter, r *http.Request) {
	membershipID := chi.URLParam(r, "id")

	if err := h.service.TerminateMembership(r.Context(), membershipID); err != nil {
		writeServiceError(h.log, w, err, "terminate membership")
		return
	}

	utils.ResponseSuccess(w, "Membership terminated", nil)
}

// GrantLeave handles POST /api/memberships/leave
func (h *MembershipHandler) GrantLeave(w http.ResponseWriter, r *http.Request) {
	var req request.GrantLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.GrantLeave(r.Context(), &req)
	if err != nil {
		writeServiceError(h.log, w, err, "grant leave")
		return
	}

	// A conflicting extension window is reported with 409 so the caller
	// retries with custom_extension_start_date.
	if result.Status == usecase.ExtensionStatusConflict {
		utils.ResponseConflict(w, "Extension window conflicts", result)
		return
	}

	utils.ResponseSuccess(w, "Leave granted", result)
}

// DeclareHoliday handles POST /api/holidays
func (h *MembershipHandler) DeclareHoliday(w http.ResponseWriter, r *http.Request) {
	var req request.DeclareHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	holiday, err := h.service.DeclareHoliday(r.Context(), &req)
	if err != nil {
		writeServiceError(h.log, w, err, "declare holiday")
		return
	}

	utils.ResponseCreated(w, "Holiday declared", holiday)
}

// CompensateHoliday handles POST /api/memberships/{id}/holiday-compensation
func (h *MembershipHandler) CompensateHoliday(w http.ResponseWriter, r *http.Request) {
	membershipID := chi.URLParam(r, "id")

	var req request.HolidayCompensationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.CompensateHoliday(r.Context(), membershipID, &req)
	if err != nil {
		writeServiceError(h.log, w, err, "compensate holiday")
		return
	}

	if result.Status == usecase.ExtensionStatusConflict {
		utils.ResponseConflict(w, "Extension window conflicts", result)
		return
	}

	utils.ResponseSuccess(w, "Holiday compensated", result)
}

// MarkAttendance handles POST /api/memberships/{id}/attendance
func (h *MembershipHandler) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	membershipID := chi.URLParam(r, "id")

	var req request.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.ledger.MarkAttendance(r.Context(), membershipID, &req); err != nil {
		writeServiceError(h.log, w, err, "mark attendance")
		return
	}

	utils.ResponseSuccess(w, "Attendance marked", nil)
}

// LeaveStatus handles GET /api/memberships/{id}/leave-status?date=YYYY-MM-DD
func (h *MembershipHandler) LeaveStatus(w http.ResponseWriter, r *http.Request) {
	membershipID := chi.URLParam(r, "id")

	date := r.URL.Query().Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "Query parameter 'date' is required", nil)
		return
	}

	onLeave, leave, err := h.ledger.IsOnLeave(r.Context(), membershipID, date)
	if err != nil {
		writeServiceError(h.log, w, err, "leave status")
		return
	}

	utils.ResponseSuccess(w, "success", map[string]any{
		"on_leave": onLeave,
		"leave":    leave,
	})
}

// AttendanceHistory handles GET /api/memberships/{id}/attendance
func (h *MembershipHandler) AttendanceHistory(w http.ResponseWriter, r *http.Request) {
	membershipID := chi.URLParam(r, "id")

	history, err := h.ledger.AttendanceHistory(r.Context(), membershipID)
	if err != nil {
		writeServiceError(h.log, w, err, "attendance history")
		return
	}

	utils.ResponseSuccess(w, "success", history)
}

// LeaveHistory handles GET /api/memberships/{id}/leaves
func (h *MembershipHandler) LeaveHistory(w http.ResponseWriter, r *http.Request) {
	membershipID := chi.URLParam(r, "id")

	history, err := h.ledger.LeaveHistory(r.Context(), membershipID)
	if err != nil {
		writeServiceError(h.log, w, err, "leave history")
		return
	}

	utils.ResponseSuccess(w, "success", history)
}
