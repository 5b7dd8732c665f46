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

const (
	ExtensionStatusSuccess  = "success"
	ExtensionStatusConflict = "conflict"
)

type MembershipService interface {
	CreateMembership(ctx context.Context, req *request.CreateMembershipRequest) (*response.MembershipResponse, error)
	GetMembershipByID(ctx context.Context, membershipID string) (*response.MembershipResponse, error)
	CheckMembershipClash(ctx context.Context, req *request.MembershipCheckClashRequest) (*response.MembershipClashResponse, error)
	RenewMembership(ctx context.Context, membershipID string, req *request.RenewMembershipRequest) (*response.MembershipResponse, error)
	TerminateMembership(ctx context.Context, membershipID string) error

	// GrantLeave runs the extension engine for one leave transaction:
	// validate, compute the compensating date shift, re-validate the
	// shifted window, and commit atomically. A conflicting extension
	// window is a structured result, not an error; the caller retries
	// with a custom extension start date.
	GrantLeave(ctx context.Context, req *request.GrantLeaveRequest) (*response.ExtensionResponse, error)

	// DeclareHoliday records a facility-wide closure and reports the
	// memberships entitled to compensation. The fan-out itself is owned
	// by an external scheduler calling CompensateHoliday per membership.
	DeclareHoliday(ctx context.Context, req *request.DeclareHolidayRequest) (*response.HolidayResponse, error)
	CompensateHoliday(ctx context.Context, membershipID string, req *request.HolidayCompensationRequest) (*response.ExtensionResponse, error)
}

type membershipService struct {
	repo  *repository.Repository
	clash ClashService
	locks *courtLocks
	log   *zap.Logger
}

func NewMembershipService(repo *repository.Repository, clash ClashService, locks *courtLocks, log *zap.Logger) MembershipService {
	return &membershipService{
		repo:  repo,
		clash: clash,
		locks: locks,
		log:   log.With(zap.String("service", "membership")),
	}
}

func (s *membershipService) CreateMembership(ctx context.Context, req *request.CreateMembershipRequest) (*response.MembershipResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create membership validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		return nil, fmt.Errorf("invalid package ID %s: %w", req.PackageID, ErrValidation)
	}
	courtID, err := uuid.Parse(req.CourtID)
	if err != nil {
		return nil, fmt.Errorf("invalid court ID %s: %w", req.CourtID, ErrValidation)
	}
	startDate, err := entity.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %s: %w", req.StartDate, ErrValidation)
	}
	window, err := entity.ParseTimeSlot(req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrValidation)
	}

	pkg, err := s.repo.Package.FindByID(ctx, packageID)
	if err != nil {
		return nil, fmt.Errorf("create membership: %w", err)
	}
	if pkg == nil {
		return nil, fmt.Errorf("package %s: %w", req.PackageID, ErrNotFound)
	}
	if len(req.Members) > pkg.MaxTeamSize {
		return nil, fmt.Errorf("team size %d exceeds package maximum %d: %w", len(req.Members), pkg.MaxTeamSize, ErrValidation)
	}

	court, err := s.repo.Court.FindByID(ctx, courtID)
	if err != nil {
		return nil, fmt.Errorf("create membership: %w", err)
	}
	if court == nil {
		return nil, fmt.Errorf("court %s: %w", req.CourtID, ErrNotFound)
	}

	endDate := entity.AddDays(startDate, pkg.DurationDays-1)

	// Commit-time re-check of the whole window under the court lock.
	unlock := s.locks.Lock(courtID)
	defer unlock()

	if conflicts, err := s.validateWindow(ctx, courtID, window, startDate, endDate, nil); err != nil {
		return nil, err
	} else if len(conflicts) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrConflict, conflicts[0].Message)
	}

	now := time.Now()
	membership := &entity.Membership{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PackageID:      packageID,
		CourtID:        courtID,
		Window:         window,
		StartDate:      entity.Day(startDate),
		CurrentEndDate: endDate,
		Status:         entity.MembershipStatusActive,
	}
	for _, m := range req.Members {
		membership.Members = append(membership.Members, &entity.TeamMember{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			MembershipID: membership.ID,
			Name:         m.Name,
			Phone:        m.Phone,
		})
	}

	if err := s.repo.Membership.Create(ctx, membership); err != nil {
		s.log.Error("Failed to create membership",
			zap.Error(err),
			zap.String("court_id", req.CourtID),
		)
		return nil, fmt.Errorf("create membership: %w", err)
	}

	s.log.Info("Membership created",
		zap.String("membership_id", membership.ID.String()),
		zap.String("court_id", req.CourtID),
		zap.String("window", window.String()),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", endDate.Format(entity.DateLayout)),
		zap.Int("team_size", len(membership.Members)),
	)

	resp := response.MembershipToResponse(membership)
	return &resp, nil
}

func (s *membershipService) GetMembershipByID(ctx context.Context, membershipID string) (*response.MembershipResponse, error) {
	membership, err := s.findMembership(ctx, membershipID)
	if err != nil {
		return nil, err
	}

	resp := response.MembershipToResponse(membership)
	return &resp, nil
}

func (s *membershipService) CheckMembershipClash(ctx context.Context, req *request.MembershipCheckClashRequest) (*response.MembershipClashResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		return nil, fmt.Errorf("invalid package ID %s: %w", req.PackageID, ErrValidation)
	}
	courtID, err := uuid.Parse(req.CourtID)
	if err != nil {
		return nil, fmt.Errorf("invalid court ID %s: %w", req.CourtID, ErrValidation)
	}
	startDate, err := entity.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %s: %w", req.StartDate, ErrValidation)
	}
	window, err := entity.ParseTimeSlot(req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrValidation)
	}

	pkg, err := s.repo.Package.FindByID(ctx, packageID)
	if err != nil {
		return nil, fmt.Errorf("membership check clash: %w", err)
	}
	if pkg == nil {
		return nil, fmt.Errorf("package %s: %w", req.PackageID, ErrNotFound)
	}

	endDate := entity.AddDays(startDate, pkg.DurationDays-1)

	// Unlocked probe; the create path re-validates under the lock.
	conflicts, err := s.validateWindow(ctx, courtID, window, startDate, endDate, nil)
	if err != nil {
		return nil, err
	}

	resp := &response.MembershipClashResponse{IsClashing: len(conflicts) > 0}
	if resp.IsClashing {
		resp.Message = fmt.Sprintf("%d day(s) clash, first on %s", len(conflicts), conflicts[0].Date)
	} else {
		resp.Message = "membership window is available"
	}

	return resp, nil
}

func (s *membershipService) RenewMembership(ctx context.Context, membershipID string, req *request.RenewMembershipRequest) (*response.MembershipResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	membership, err := s.findMembership(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if membership.Status == entity.MembershipStatusTerminated {
		return nil, fmt.Errorf("membership %s is terminated: %w", membershipID, ErrValidation)
	}

	startDate, err := entity.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %s: %w", req.StartDate, ErrValidation)
	}

	pkg, err := s.repo.Package.FindByID(ctx, membership.PackageID)
	if err != nil {
		return nil, fmt.Errorf("renew membership: %w", err)
	}
	if pkg == nil {
		return nil, fmt.Errorf("package %s: %w", membership.PackageID.String(), ErrNotFound)
	}

	endDate := entity.AddDays(startDate, pkg.DurationDays-1)

	unlock := s.locks.Lock(membership.CourtID)
	defer unlock()

	conflicts, err := s.validateWindow(ctx, membership.CourtID, membership.Window, startDate, endDate, &membership.ID)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrConflict, conflicts[0].Message)
	}

	if err := s.repo.Membership.Renew(ctx, membership.ID, startDate, endDate); err != nil {
		s.log.Error("Failed to renew membership",
			zap.Error(err),
			zap.String("membership_id", membershipID),
		)
		return nil, fmt.Errorf("renew membership %s: %w", membershipID, err)
	}

	membership.StartDate = entity.Day(startDate)
	membership.CurrentEndDate = endDate
	membership.Status = entity.MembershipStatusActive

	s.log.Info("Membership renewed",
		zap.String("membership_id", membershipID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", endDate.Format(entity.DateLayout)),
	)

	resp := response.MembershipToResponse(membership)
	return &resp, nil
}

func (s *membershipService) TerminateMembership(ctx context.Context, membershipID string) error {
	membership, err := s.findMembership(ctx, membershipID)
	if err != nil {
		return err
	}
	if membership.Status == entity.MembershipStatusTerminated {
		return fmt.Errorf("membership %s already terminated: %w", membershipID, ErrValidation)
	}

	// Termination is irreversible.
	if err := s.repo.Membership.UpdateStatus(ctx, membership.ID, entity.MembershipStatusTerminated); err != nil {
		s.log.Error("Failed to terminate membership",
			zap.Error(err),
			zap.String("membership_id", membershipID),
		)
		return fmt.Errorf("terminate membership %s: %w", membershipID, err)
	}

	s.log.Info("Membership terminated", zap.String("membership_id", membershipID))
	return nil
}

func (s *membershipService) GrantLeave(ctx context.Context, req *request.GrantLeaveRequest) (*response.ExtensionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Grant leave validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	startDate, err := entity.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %s: %w", req.StartDate, ErrValidation)
	}
	endDate, err := entity.ParseDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %s: %w", req.EndDate, ErrValidation)
	}

	var customStart *time.Time
	if req.CustomExtensionStartDate != nil {
		parsed, err := entity.ParseDate(*req.CustomExtensionStartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid custom extension start %s: %w", *req.CustomExtensionStartDate, ErrValidation)
		}
		customStart = &parsed
	}

	return s.grantCompensation(ctx, req.MembershipID, startDate, endDate, req.Reason, entity.LeaveKindLeave, customStart)
}

func (s *membershipService) DeclareHoliday(ctx context.Context, req *request.DeclareHolidayRequest) (*response.HolidayResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	date, err := entity.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %s: %w", req.Date, ErrValidation)
	}

	existing, err := s.repo.Holiday.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("declare holiday: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("holiday already declared for %s: %w", req.Date, ErrValidation)
	}

	holiday := &entity.Holiday{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Date:   entity.Day(date),
		Reason: req.Reason,
	}

	if err := s.repo.Holiday.Create(ctx, holiday); err != nil {
		s.log.Error("Failed to create holiday",
			zap.Error(err),
			zap.String("date", req.Date),
		)
		return nil, fmt.Errorf("declare holiday: %w", err)
	}

	// Every membership operating that day is entitled to one
	// compensation day; the external scheduler fans out per membership.
	affected, err := s.repo.Membership.FindActiveCoveringDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("declare holiday: %w", err)
	}

	resp := &response.HolidayResponse{
		ID:     holiday.ID.String(),
		Date:   req.Date,
		Reason: req.Reason,
	}
	for _, m := range affected {
		resp.AffectedMemberships = append(resp.AffectedMemberships, m.ID.String())
	}

	s.log.Info("Holiday declared",
		zap.String("date", req.Date),
		zap.String("reason", req.Reason),
		zap.Int("affected_memberships", len(affected)),
	)

	return resp, nil
}

func (s *membershipService) CompensateHoliday(ctx context.Context, membershipID string, req *request.HolidayCompensationRequest) (*response.ExtensionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	date, err := entity.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %s: %w", req.Date, ErrValidation)
	}

	holiday, err := s.repo.Holiday.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("compensate holiday: %w", err)
	}
	if holiday == nil {
		return nil, fmt.Errorf("no holiday declared for %s: %w", req.Date, ErrNotFound)
	}

	var customStart *time.Time
	if req.CustomExtensionStartDate != nil {
		parsed, err := entity.ParseDate(*req.CustomExtensionStartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid custom extension start %s: %w", *req.CustomExtensionStartDate, ErrValidation)
		}
		customStart = &parsed
	}

	// Single-day compensation, otherwise identical to a leave grant.
	return s.grantCompensation(ctx, membershipID, date, date, "holiday: "+holiday.Reason, entity.LeaveKindHoliday, customStart)
}

// grantCompensation is the extension engine. Steps: duplicate guard,
// leave-window audit, default or custom extension window, per-day
// re-validation, atomic commit.
func (s *membershipService) grantCompensation(ctx context.Context, membershipID string, leaveStart, leaveEnd time.Time, reason string, kind entity.LeaveKind, customStart *time.Time) (*response.ExtensionResponse, error) {
	if leaveEnd.Before(leaveStart) {
		return nil, fmt.Errorf("leave end %s before start %s: %w",
			leaveEnd.Format(entity.DateLayout), leaveStart.Format(entity.DateLayout), ErrValidation)
	}

	membership, err := s.findMembership(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if membership.Status != entity.MembershipStatusActive {
		return nil, fmt.Errorf("membership %s is %s: %w", membershipID, membership.Status, ErrValidation)
	}

	leaveDays := entity.DaysBetween(leaveStart, leaveEnd) + 1

	// Granting the same range twice must not double-compensate.
	duplicate, err := s.repo.Leave.ExistsForRange(ctx, membership.ID, leaveStart, leaveEnd)
	if err != nil {
		return nil, fmt.Errorf("grant leave: %w", err)
	}
	if duplicate {
		return nil, fmt.Errorf("membership %s leave %s..%s: %w",
			membershipID, leaveStart.Format(entity.DateLayout), leaveEnd.Format(entity.DateLayout), ErrDuplicateLeave)
	}

	unlock := s.locks.Lock(membership.CourtID)
	defer unlock()

	// The leave window itself needs no availability: going on leave frees
	// the slot. But ad-hoc bookings already sitting inside the reserved
	// window mean it was double-booked by administrative override; report
	// them so the operator can follow up.
	var conflicts []response.ExtensionConflict
	for day := entity.Day(leaveStart); !day.After(entity.Day(leaveEnd)); day = entity.AddDays(day, 1) {
		if !membership.CoversDate(day) {
			continue
		}
		av, err := s.clash.CheckAvailability(ctx, CheckRequest{
			CourtID:             membership.CourtID,
			Date:                day,
			Slot:                membership.Window,
			ExcludeMembershipID: &membership.ID,
		})
		if err != nil {
			return nil, err
		}
		for _, b := range av.Overlapping {
			conflicts = append(conflicts, response.ExtensionConflict{
				Date:    day.Format(entity.DateLayout),
				Type:    ConflictTypeBookingExtension,
				Message: fmt.Sprintf("booking %s already occupies the membership window %s", b.Reference, membership.Window.String()),
			})
		}
	}

	// Default shift: the end date moves forward by exactly the number of
	// leave days, same daily time-of-day window.
	extStart := entity.AddDays(membership.CurrentEndDate, 1)
	if customStart != nil {
		if !customStart.After(membership.CurrentEndDate) {
			return nil, fmt.Errorf("custom extension start %s must be after current end date %s: %w",
				customStart.Format(entity.DateLayout), membership.CurrentEndDate.Format(entity.DateLayout), ErrValidation)
		}
		extStart = entity.Day(*customStart)
	}
	extEnd := entity.AddDays(extStart, leaveDays-1)

	extConflicts, err := s.validateWindow(ctx, membership.CourtID, membership.Window, extStart, extEnd, &membership.ID)
	if err != nil {
		return nil, err
	}

	if len(extConflicts) > 0 {
		// Not an error: the engine does not auto-search for a free
		// window. The caller picks an alternate extension start.
		s.log.Info("Extension window conflicts",
			zap.String("membership_id", membershipID),
			zap.String("extension_start", extStart.Format(entity.DateLayout)),
			zap.Int("conflict_days", len(extConflicts)),
		)
		return &response.ExtensionResponse{
			Status:    ExtensionStatusConflict,
			Conflicts: append(conflicts, extConflicts...),
		}, nil
	}

	now := time.Now()
	leave := &entity.LeaveRecord{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MembershipID:      membership.ID,
		StartDate:         entity.Day(leaveStart),
		EndDate:           entity.Day(leaveEnd),
		Reason:            reason,
		Kind:              kind,
		Status:            entity.LeaveStatusGranted,
		CompensationStart: &extStart,
		CompensationEnd:   &extEnd,
	}

	// Atomic per attempt: the full compensation window is recorded or
	// nothing is.
	if err := s.repo.Membership.ApplyExtension(ctx, membership.ID, extEnd, leave); err != nil {
		s.log.Error("Failed to apply extension",
			zap.Error(err),
			zap.String("membership_id", membershipID),
		)
		return nil, fmt.Errorf("apply extension for membership %s: %w", membershipID, err)
	}

	s.log.Info("Leave granted",
		zap.String("membership_id", membershipID),
		zap.String("kind", string(kind)),
		zap.String("leave", leaveStart.Format(entity.DateLayout)+".."+leaveEnd.Format(entity.DateLayout)),
		zap.String("extension", extStart.Format(entity.DateLayout)+".."+extEnd.Format(entity.DateLayout)),
		zap.Int("leave_days", leaveDays),
	)

	return &response.ExtensionResponse{
		Status:         ExtensionStatusSuccess,
		NewEndDate:     extEnd.Format(entity.DateLayout),
		ExtensionStart: extStart.Format(entity.DateLayout),
		ExtensionEnd:   extEnd.Format(entity.DateLayout),
		Conflicts:      conflicts,
	}, nil
}

// validateWindow checks the membership window for every day in
// [startDate, endDate] at one capacity unit.
func (s *membershipService) validateWindow(ctx context.Context, courtID uuid.UUID, window entity.TimeSlot, startDate, endDate time.Time, excludeMembershipID *uuid.UUID) ([]response.ExtensionConflict, error) {
	var conflicts []response.ExtensionConflict
	for day := entity.Day(startDate); !day.After(entity.Day(endDate)); day = entity.AddDays(day, 1) {
		av, err := s.clash.CheckAvailability(ctx, CheckRequest{
			CourtID:             courtID,
			Date:                day,
			Slot:                window,
			RequestedUnits:      1,
			ExcludeMembershipID: excludeMembershipID,
			ForMembership:       true,
		})
		if err != nil {
			return nil, err
		}
		if !av.Admit {
			msg := fmt.Sprintf("window %s has no free unit on %s", window.String(), day.Format(entity.DateLayout))
			if av.Reason == ReasonCourtUnavailable {
				msg = fmt.Sprintf("court is unavailable on %s", day.Format(entity.DateLayout))
			}
			conflicts = append(conflicts, response.ExtensionConflict{
				Date:    day.Format(entity.DateLayout),
				Type:    ConflictTypeMembershipExtension,
				Message: msg,
			})
		}
	}
	return conflicts, nil
}

func (s *membershipService) findMembership(ctx context.Context, membershipID string) (*entity.Membership, error) {
	id, err := uuid.Parse(membershipID)
	if err != nil {
		return nil, fmt.Errorf("invalid membership ID %s: %w", membershipID, ErrValidation)
	}

	membership, err := s.repo.Membership.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find membership: %w", err)
	}
	if membership == nil {
		return nil, fmt.Errorf("membership %s: %w", membershipID, ErrNotFound)
	}

	return membership, nil
}
