package usecase

import (
	"context"
	"fmt"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckRequest describes one admission query against a court, date and
// time slot.
type CheckRequest struct {
	CourtID        uuid.UUID
	Date           time.Time
	Slot           entity.TimeSlot
	RequestedUnits int
	// ExcludeBookingID skips the booking being edited so self-overlap is
	// not a false conflict.
	ExcludeBookingID *uuid.UUID
	// ExcludeMembershipID skips a membership's own occupancy during
	// extension validation.
	ExcludeMembershipID *uuid.UUID
	// ForMembership skips the daily-booking status gate; membership
	// windows live on membership-designated courts. Maintenance still
	// blocks.
	ForMembership bool
}

// Availability is the admission decision plus the occupancy detail the
// heatmap builds on.
type Availability struct {
	Admit          bool
	Reason         string
	AvailableUnits int
	OccupiedUnits  int
	// Overlapping confirmed bookings, a read projection for tooltips.
	Overlapping []*entity.Booking
}

type ClashService interface {
	// CheckAvailability decides admit/reject for requested units. With
	// RequestedUnits zero it is a pure occupancy read.
	//
	// This runs both as the UI pre-submission probe and as the final
	// authority immediately before a commit; committing callers must hold
	// the court lock so the two evaluations cannot interleave with a
	// concurrent writer.
	CheckAvailability(ctx context.Context, req CheckRequest) (*Availability, error)
}

type clashService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewClashService(repo *repository.Repository, log *zap.Logger) ClashService {
	return &clashService{
		repo: repo,
		log:  log.With(zap.String("service", "clash")),
	}
}

func (s *clashService) CheckAvailability(ctx context.Context, req CheckRequest) (*Availability, error) {
	court, err := s.repo.Court.FindByID(ctx, req.CourtID)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if court == nil {
		return nil, fmt.Errorf("court %s: %w", req.CourtID.String(), ErrNotFound)
	}

	// Operator-set status gates daily bookings regardless of occupancy.
	if req.RequestedUnits > 0 {
		blocked := !court.AcceptsBookings()
		if req.ForMembership {
			blocked = court.Status == entity.CourtStatusUnderMaintenance
		}
		if blocked {
			return &Availability{
				Admit:          false,
				Reason:         ReasonCourtUnavailable,
				AvailableUnits: 0,
				OccupiedUnits:  court.Capacity,
			}, nil
		}
	}

	occupied, overlapping, err := s.unitsOverlapping(ctx, court, req)
	if err != nil {
		return nil, err
	}

	available := court.Capacity - occupied
	if available < 0 {
		available = 0
	}

	av := &Availability{
		Admit:          occupied+req.RequestedUnits <= court.Capacity,
		AvailableUnits: available,
		OccupiedUnits:  occupied,
		Overlapping:    overlapping,
	}
	if !av.Admit {
		av.Reason = ReasonCapacityExceeded
	}

	return av, nil
}

// unitsOverlapping sums unit counts of confirmed bookings and
// membership-occupied windows overlapping the query interval. Half-open
// semantics: touching endpoints do not overlap. A membership on leave
// for the date frees its unit.
func (s *clashService) unitsOverlapping(ctx context.Context, court *entity.Court, req CheckRequest) (int, []*entity.Booking, error) {
	bookings, err := s.repo.Booking.FindConfirmedByCourtDate(ctx, court.ID, req.Date)
	if err != nil {
		return 0, nil, fmt.Errorf("load bookings for overlap: %w", err)
	}

	occupied := 0
	var overlapping []*entity.Booking
	for _, b := range bookings {
		if req.ExcludeBookingID != nil && b.ID == *req.ExcludeBookingID {
			continue
		}
		if b.Occupies(req.Date, req.Slot) {
			occupied += b.Units
			overlapping = append(overlapping, b)
		}
	}

	memberships, err := s.repo.Membership.FindActiveByCourt(ctx, court.ID)
	if err != nil {
		return 0, nil, fmt.Errorf("load memberships for overlap: %w", err)
	}

	for _, m := range memberships {
		if req.ExcludeMembershipID != nil && m.ID == *req.ExcludeMembershipID {
			continue
		}
		if !m.Occupies(req.Date, req.Slot) {
			continue
		}
		leave, err := s.repo.Leave.FindCovering(ctx, m.ID, req.Date)
		if err != nil {
			return 0, nil, fmt.Errorf("load leave for overlap: %w", err)
		}
		if leave != nil {
			// On leave: the slot is freed for that day.
			continue
		}
		occupied++
	}

	return occupied, overlapping, nil
}
