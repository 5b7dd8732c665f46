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

type LedgerService interface {
	// MarkAttendance records presence for the date. Marking twice is a
	// no-op; marking a date covered by granted leave is rejected.
	MarkAttendance(ctx context.Context, membershipID string, req *request.MarkAttendanceRequest) error
	IsOnLeave(ctx context.Context, membershipID string, date string) (bool, *response.LeaveRecordResponse, error)
	AttendanceHistory(ctx context.Context, membershipID string) (*response.AttendanceHistoryResponse, error)
	LeaveHistory(ctx context.Context, membershipID string) (*response.LeaveHistoryResponse, error)
}

type ledgerService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewLedgerService(repo *repository.Repository, log *zap.Logger) LedgerService {
	return &ledgerService{
		repo: repo,
		log:  log.With(zap.String("service", "ledger")),
	}
}

func (s *ledgerService) MarkAttendance(ctx context.Context, membershipID string, req *request.MarkAttendanceRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, membership, err := s.findMembership(ctx, membershipID)
	if err != nil {
		return err
	}

	date, err := entity.ParseDate(req.Date)
	if err != nil {
		return fmt.Errorf("invalid date %s: %w", req.Date, ErrValidation)
	}
	if !membership.CoversDate(date) {
		return fmt.Errorf("date %s is outside the membership period: %w", req.Date, ErrValidation)
	}

	// Attendance and leave are mutually exclusive per day.
	leave, err := s.repo.Leave.FindCovering(ctx, id, date)
	if err != nil {
		return fmt.Errorf("mark attendance: %w", err)
	}
	if leave != nil {
		return fmt.Errorf("membership %s is on leave on %s: %w", membershipID, req.Date, ErrAlreadyOnLeave)
	}

	marked, err := s.repo.Attendance.Exists(ctx, id, date)
	if err != nil {
		return fmt.Errorf("mark attendance: %w", err)
	}
	if marked {
		s.log.Debug("Attendance already marked",
			zap.String("membership_id", membershipID),
			zap.String("date", req.Date),
		)
		return nil
	}

	record := &entity.AttendanceRecord{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		MembershipID: id,
		Date:         entity.Day(date),
	}

	if err := s.repo.Attendance.Upsert(ctx, record); err != nil {
		s.log.Error("Failed to mark attendance",
			zap.Error(err),
			zap.String("membership_id", membershipID),
			zap.String("date", req.Date),
		)
		return err
	}

	s.log.Info("Attendance marked",
		zap.String("membership_id", membershipID),
		zap.String("date", req.Date),
	)

	return nil
}

func (s *ledgerService) IsOnLeave(ctx context.Context, membershipID string, date string) (bool, *response.LeaveRecordResponse, error) {
	id, _, err := s.findMembership(ctx, membershipID)
	if err != nil {
		return false, nil, err
	}

	day, err := entity.ParseDate(date)
	if err != nil {
		return false, nil, fmt.Errorf("invalid date %s: %w", date, ErrValidation)
	}

	leave, err := s.repo.Leave.FindCovering(ctx, id, day)
	if err != nil {
		return false, nil, fmt.Errorf("check leave: %w", err)
	}
	if leave == nil {
		return false, nil, nil
	}

	resp := response.LeaveToResponse(leave)
	return true, &resp, nil
}

func (s *ledgerService) AttendanceHistory(ctx context.Context, membershipID string) (*response.AttendanceHistoryResponse, error) {
	id, _, err := s.findMembership(ctx, membershipID)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.Attendance.FindByMembership(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("attendance history: %w", err)
	}

	resp := &response.AttendanceHistoryResponse{
		MembershipID:  membershipID,
		AttendedDates: make([]string, 0, len(records)),
	}
	for _, r := range records {
		resp.AttendedDates = append(resp.AttendedDates, r.Date.Format(entity.DateLayout))
	}

	return resp, nil
}

func (s *ledgerService) LeaveHistory(ctx context.Context, membershipID string) (*response.LeaveHistoryResponse, error) {
	id, _, err := s.findMembership(ctx, membershipID)
	if err != nil {
		return nil, err
	}

	leaves, err := s.repo.Leave.FindByMembership(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("leave history: %w", err)
	}

	resp := &response.LeaveHistoryResponse{
		MembershipID: membershipID,
		LeaveWindows: make([]response.LeaveRecordResponse, 0, len(leaves)),
	}
	for _, l := range leaves {
		resp.LeaveWindows = append(resp.LeaveWindows, response.LeaveToResponse(l))
	}

	return resp, nil
}

func (s *ledgerService) findMembership(ctx context.Context, membershipID string) (uuid.UUID, *entity.Membership, error) {
	id, err := uuid.Parse(membershipID)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("invalid membership ID %s: %w", membershipID, ErrValidation)
	}

	membership, err := s.repo.Membership.FindByID(ctx, id)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("find membership: %w", err)
	}
	if membership == nil {
		return uuid.Nil, nil, fmt.Errorf("membership %s: %w", membershipID, ErrNotFound)
	}

	return id, membership, nil
}
