package usecase

import (
	"context"
	"fmt"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/internal/dto/request"
	"court-booking/internal/dto/response"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	UpdateBooking(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string) error
	AddPayment(ctx context.Context, bookingID string, req *request.AddPaymentRequest) (*response.BookingResponse, error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetBookingByReference(ctx context.Context, reference string) (*response.BookingResponse, error)
	GetCourtBookings(ctx context.Context, courtID, date string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// CheckClash is the unlocked UI pre-submission probe. The result is
	// best-effort and never a reservation.
	CheckClash(ctx context.Context, req *request.CheckClashRequest) (*response.ClashResponse, error)
	CalculatePrice(ctx context.Context, req *request.CalculatePriceRequest) (*response.PriceResponse, error)
}

type bookingService struct {
	repo    *repository.Repository
	clash   ClashService
	pricing PricingService
	locks   *courtLocks
	log     *zap.Logger
}

func NewBookingService(repo *repository.Repository, clash ClashService, pricing PricingService, locks *courtLocks, log *zap.Logger) BookingService {
	return &bookingService{
		repo:    repo,
		clash:   clash,
		pricing: pricing,
		locks:   locks,
		log:     log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	courtID, err := uuid.Parse(req.CourtID)
	if err != nil {
		return nil, fmt.Errorf("invalid court ID %s: %w", req.CourtID, ErrValidation)
	}

	date, err := entity.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %s: %w", req.Date, ErrValidation)
	}

	slot, err := entity.ParseTimeSlot(req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrValidation)
	}

	units := req.SlotsBooked
	if units == 0 {
		units = 1
	}

	court, err := s.repo.Court.FindByID(ctx, courtID)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if court == nil {
		return nil, fmt.Errorf("court %s: %w", req.CourtID, ErrNotFound)
	}

	accessories, err := parseAccessorySelections(req.Accessories)
	if err != nil {
		return nil, err
	}

	// Price from the same inputs the preview used; the committed value is
	// authoritative.
	quote, err := s.pricing.Quote(ctx, court.SportID, slot, units, accessories, req.DiscountAmount)
	if err != nil {
		return nil, err
	}

	if req.AmountPaid > quote.Total {
		return nil, fmt.Errorf("amount paid %.2f exceeds total %.2f: %w", req.AmountPaid, quote.Total, ErrValidation)
	}

	// Authoritative admission check inside the court's lock domain; the
	// earlier probe result may be stale by now.
	unlock := s.locks.Lock(courtID)
	defer unlock()

	av, err := s.clash.CheckAvailability(ctx, CheckRequest{
		CourtID:        courtID,
		Date:           date,
		Slot:           slot,
		RequestedUnits: units,
	})
	if err != nil {
		return nil, err
	}
	if !av.Admit {
		s.log.Info("Booking rejected at commit",
			zap.String("court_id", req.CourtID),
			zap.String("date", req.Date),
			zap.String("slot", slot.String()),
			zap.String("reason", av.Reason),
			zap.Int("available_units", av.AvailableUnits),
		)
		return nil, admissionError(av)
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Reference:     utils.GenerateBookingReference(),
		CourtID:       courtID,
		Date:          entity.Day(date),
		Slot:          slot,
		Units:         units,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		TotalPrice:    quote.Total,
		Discount:      quote.Discount,
		AmountPaid:    req.AmountPaid,
		Status:        entity.BookingStatusConfirmed,
	}
	for _, line := range quote.Lines {
		booking.Accessories = append(booking.Accessories, &entity.BookingAccessory{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			BookingID:   booking.ID,
			AccessoryID: line.AccessoryID,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("court_id", req.CourtID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
		zap.String("court_id", req.CourtID),
		zap.String("date", req.Date),
		zap.String("slot", slot.String()),
		zap.Int("units", units),
		zap.Float64("total_price", booking.TotalPrice),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID %s: %w", bookingID, ErrValidation)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}
	if booking.Status != entity.BookingStatusConfirmed {
		return nil, fmt.Errorf("booking %s is %s, cannot edit: %w", bookingID, booking.Status, ErrValidation)
	}
	if booking.Expired(time.Now()) && booking.Outstanding() <= 0 {
		return nil, fmt.Errorf("booking %s already completed: %w", bookingID, ErrValidation)
	}

	date, err := entity.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %s: %w", req.Date, ErrValidation)
	}

	slot, err := entity.ParseTimeSlot(req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrValidation)
	}

	units := req.SlotsBooked
	if units == 0 {
		units = booking.Units
	}

	court, err := s.repo.Court.FindByID(ctx, booking.CourtID)
	if err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	if court == nil {
		return nil, fmt.Errorf("court %s: %w", booking.CourtID.String(), ErrNotFound)
	}

	accessories, err := parseAccessorySelections(req.Accessories)
	if err != nil {
		return nil, err
	}

	quote, err := s.pricing.Quote(ctx, court.SportID, slot, units, accessories, req.DiscountAmount)
	if err != nil {
		return nil, err
	}

	moved := !entity.SameDay(booking.Date, date) || booking.Slot != slot

	// Re-validate the rescheduled interval at commit time, excluding the
	// booking's own occupancy.
	unlock := s.locks.Lock(booking.CourtID)
	defer unlock()

	av, err := s.clash.CheckAvailability(ctx, CheckRequest{
		CourtID:          booking.CourtID,
		Date:             date,
		Slot:             slot,
		RequestedUnits:   units,
		ExcludeBookingID: &booking.ID,
	})
	if err != nil {
		return nil, err
	}
	if !av.Admit {
		s.log.Info("Reschedule rejected at commit",
			zap.String("booking_id", bookingID),
			zap.String("reason", av.Reason),
			zap.Int("available_units", av.AvailableUnits),
		)
		return nil, admissionError(av)
	}

	booking.Date = entity.Day(date)
	booking.Slot = slot
	booking.Units = units
	booking.TotalPrice = quote.Total
	booking.Discount = quote.Discount
	booking.Rescheduled = booking.Rescheduled || moved
	booking.UpdatedAt = time.Now()

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		s.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, fmt.Errorf("update booking %s: %w", bookingID, err)
	}

	s.log.Info("Booking updated",
		zap.String("booking_id", bookingID),
		zap.Bool("rescheduled", moved),
		zap.String("date", req.Date),
		zap.String("slot", slot.String()),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("invalid booking ID %s: %w", bookingID, ErrValidation)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}
	if booking == nil {
		return fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}
	if booking.Status == entity.BookingStatusCancelled {
		return fmt.Errorf("booking %s already cancelled: %w", bookingID, ErrValidation)
	}

	// Cancellation is immediate and local; the freed units are visible to
	// the next admission check.
	if err := s.repo.Booking.UpdateStatus(ctx, id, entity.BookingStatusCancelled); err != nil {
		s.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("reference", booking.Reference),
	)

	return nil
}

func (s *bookingService) AddPayment(ctx context.Context, bookingID string, req *request.AddPaymentRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID %s: %w", bookingID, ErrValidation)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("add payment: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}
	if booking.Status != entity.BookingStatusConfirmed {
		return nil, fmt.Errorf("booking %s is %s, cannot take payment: %w", bookingID, booking.Status, ErrValidation)
	}
	if req.Amount > booking.Outstanding() {
		return nil, fmt.Errorf("payment %.2f exceeds outstanding %.2f: %w", req.Amount, booking.Outstanding(), ErrValidation)
	}

	if err := s.repo.Booking.AddPayment(ctx, id, req.Amount); err != nil {
		s.log.Error("Failed to add payment",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, fmt.Errorf("add payment to booking %s: %w", bookingID, err)
	}

	booking.AmountPaid += req.Amount

	s.log.Info("Payment added",
		zap.String("booking_id", bookingID),
		zap.Float64("amount", req.Amount),
		zap.Float64("amount_paid", booking.AmountPaid),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID %s: %w", bookingID, ErrValidation)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookingByReference(ctx context.Context, reference string) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("get booking by reference: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", reference, ErrNotFound)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetCourtBookings(ctx context.Context, courtID, date string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	id, err := uuid.Parse(courtID)
	if err != nil {
		return nil, fmt.Errorf("invalid court ID %s: %w", courtID, ErrValidation)
	}

	day, err := entity.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %s: %w", date, ErrValidation)
	}

	bookings, err := s.repo.Booking.FindByCourtDate(ctx, id, day, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("get court bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByCourtDate(ctx, id, day)
	if err != nil {
		return nil, fmt.Errorf("count court bookings: %w", err)
	}

	responses := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		responses[i] = response.BookingToResponse(b)
	}

	return response.NewPaginatedResponse(responses, page.Page, page.PerPage, total), nil
}

func (s *bookingService) CheckClash(ctx context.Context, req *request.CheckClashRequest) (*response.ClashResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	courtID, err := uuid.Parse(req.CourtID)
	if err != nil {
		return nil, fmt.Errorf("invalid court ID %s: %w", req.CourtID, ErrValidation)
	}

	date, err := entity.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %s: %w", req.Date, ErrValidation)
	}

	slot, err := entity.ParseTimeSlot(req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrValidation)
	}

	units := req.SlotsBooked
	if units == 0 {
		units = 1
	}

	check := CheckRequest{
		CourtID:        courtID,
		Date:           date,
		Slot:           slot,
		RequestedUnits: units,
	}
	if req.BookingID != nil {
		excludeID, err := uuid.Parse(*req.BookingID)
		if err != nil {
			return nil, fmt.Errorf("invalid booking ID %s: %w", *req.BookingID, ErrValidation)
		}
		check.ExcludeBookingID = &excludeID
	}

	av, err := s.clash.CheckAvailability(ctx, check)
	if err != nil {
		return nil, err
	}

	resp := &response.ClashResponse{
		Admit:          av.Admit,
		AvailableUnits: av.AvailableUnits,
	}
	switch {
	case av.Admit:
		resp.Message = "slot is available"
	case av.Reason == ReasonCourtUnavailable:
		resp.Message = "court is not open for booking"
	default:
		resp.Message = fmt.Sprintf("capacity exceeded, %d unit(s) available", av.AvailableUnits)
	}

	return resp, nil
}

func (s *bookingService) CalculatePrice(ctx context.Context, req *request.CalculatePriceRequest) (*response.PriceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	sportID, err := uuid.Parse(req.SportID)
	if err != nil {
		return nil, fmt.Errorf("invalid sport ID %s: %w", req.SportID, ErrValidation)
	}

	slot, err := entity.ParseTimeSlot(req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrValidation)
	}

	units := req.SlotsBooked
	if units == 0 {
		units = 1
	}

	accessories, err := parseAccessorySelections(req.Accessories)
	if err != nil {
		return nil, err
	}

	quote, err := s.pricing.Quote(ctx, sportID, slot, units, accessories, req.DiscountAmount)
	if err != nil {
		return nil, err
	}

	return &response.PriceResponse{
		DurationHours:    quote.DurationHours,
		BasePrice:        quote.Base,
		AccessoriesTotal: quote.AccessoriesTotal,
		DiscountAmount:   quote.Discount,
		TotalPrice:       quote.Total,
	}, nil
}

func parseAccessorySelections(reqs []request.BookingAccessoryRequest) ([]AccessorySelection, error) {
	selections := make([]AccessorySelection, 0, len(reqs))
	for _, a := range reqs {
		accessoryID, err := uuid.Parse(a.AccessoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid accessory ID %s: %w", a.AccessoryID, ErrValidation)
		}
		selections = append(selections, AccessorySelection{
			AccessoryID: accessoryID,
			Quantity:    a.Quantity,
		})
	}
	return selections, nil
}

// admissionError maps a rejected availability decision to the commit-time
// conflict taxonomy.
func admissionError(av *Availability) error {
	if av.Reason == ReasonCourtUnavailable {
		return fmt.Errorf("%w", ErrCourtUnavailable)
	}
	return fmt.Errorf("%w: %d unit(s) available", ErrConflict, av.AvailableUnits)
}
