package adaptor

import (
	"errors"
	"net/http"

	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Booking    *BookingHandler
	Schedule   *ScheduleHandler
	Membership *MembershipHandler
	Catalog    *CatalogHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking:    NewBookingHandler(service.Booking, log),
		Schedule:   NewScheduleHandler(service.Booking, service.Heatmap, log),
		Membership: NewMembershipHandler(service.Membership, service.Ledger, log),
		Catalog:    NewCatalogHandler(service.Catalog, log),
	}
}

// writeServiceError maps service sentinels onto HTTP statuses.
func writeServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrConflict),
		errors.Is(err, usecase.ErrCapacityExceeded),
		errors.Is(err, usecase.ErrCourtUnavailable),
		errors.Is(err, usecase.ErrDuplicateLeave),
		errors.Is(err, usecase.ErrAlreadyOnLeave):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrInvalidDiscount):
		log.Warn(operation+" failed - invalid input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
