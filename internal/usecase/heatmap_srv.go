package usecase

import (
	"context"
	"fmt"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/internal/dto/response"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type HeatmapService interface {
	// Heatmap partitions the operating day into fixed sub-slots per court
	// and classifies each. Pure function of current reservation state,
	// recomputed on every read and never cached; a cell can go stale the
	// moment a concurrent commit lands.
	Heatmap(ctx context.Context, courtIDs []uuid.UUID, date time.Time, subSlotMinutes int) ([]*response.CourtHeatmap, error)
}

type heatmapService struct {
	repo        *repository.Repository
	clash       ClashService
	openMinute  int
	closeMinute int
	defaultSub  int
	log         *zap.Logger
}

func NewHeatmapService(repo *repository.Repository, clash ClashService, facility utils.FacilityConfig, log *zap.Logger) (HeatmapService, error) {
	day, err := entity.ParseTimeSlot(facility.OpeningTime, facility.ClosingTime)
	if err != nil {
		return nil, fmt.Errorf("facility operating hours: %w", err)
	}

	sub := facility.SubSlotMinutes
	if sub <= 0 {
		sub = 30
	}

	return &heatmapService{
		repo:        repo,
		clash:       clash,
		openMinute:  day.Start,
		closeMinute: day.End,
		defaultSub:  sub,
		log:         log.With(zap.String("service", "heatmap")),
	}, nil
}

func (s *heatmapService) Heatmap(ctx context.Context, courtIDs []uuid.UUID, date time.Time, subSlotMinutes int) ([]*response.CourtHeatmap, error) {
	if subSlotMinutes <= 0 {
		subSlotMinutes = s.defaultSub
	}

	if len(courtIDs) == 0 {
		courts, err := s.repo.Court.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("heatmap: %w", err)
		}
		for _, c := range courts {
			courtIDs = append(courtIDs, c.ID)
		}
	}

	grids := make([]*response.CourtHeatmap, 0, len(courtIDs))
	for _, courtID := range courtIDs {
		grid, err := s.courtHeatmap(ctx, courtID, date, subSlotMinutes)
		if err != nil {
			return nil, err
		}
		grids = append(grids, grid)
	}

	return grids, nil
}

func (s *heatmapService) courtHeatmap(ctx context.Context, courtID uuid.UUID, date time.Time, subSlotMinutes int) (*response.CourtHeatmap, error) {
	court, err := s.repo.Court.FindByID(ctx, courtID)
	if err != nil {
		return nil, fmt.Errorf("heatmap court: %w", err)
	}
	if court == nil {
		return nil, fmt.Errorf("court %s: %w", courtID.String(), ErrNotFound)
	}

	grid := &response.CourtHeatmap{
		CourtID:   court.ID.String(),
		CourtName: court.Name,
		Capacity:  court.Capacity,
		Status:    string(court.Status),
	}

	maintenance := court.Status != entity.CourtStatusAvailable

	for start := s.openMinute; start < s.closeMinute; start += subSlotMinutes {
		end := start + subSlotMinutes
		if end > s.closeMinute {
			end = s.closeMinute
		}
		slot, err := entity.NewTimeSlot(start, end)
		if err != nil {
			return nil, fmt.Errorf("heatmap sub-slot: %w", err)
		}

		cell := response.HeatmapCell{
			StartTime: slot.StartClock(),
			EndTime:   slot.EndClock(),
		}

		// Occupancy read: zero requested units.
		av, err := s.clash.CheckAvailability(ctx, CheckRequest{
			CourtID: courtID,
			Date:    date,
			Slot:    slot,
		})
		if err != nil {
			return nil, err
		}

		cell.AvailableUnits = av.AvailableUnits
		for _, b := range av.Overlapping {
			cell.Bookings = append(cell.Bookings, response.BookingSummary{
				ID:           b.ID.String(),
				Reference:    b.Reference,
				StartTime:    b.Slot.StartClock(),
				EndTime:      b.Slot.EndClock(),
				SlotsBooked:  b.Units,
				CustomerName: b.CustomerName,
			})
		}

		switch {
		case maintenance:
			cell.State = response.CellUnderMaintenance
		case av.AvailableUnits == court.Capacity:
			cell.State = response.CellAvailable
		case av.AvailableUnits == 0:
			cell.State = response.CellBooked
		default:
			cell.State = response.CellPartial
		}

		grid.Cells = append(grid.Cells, cell)
	}

	return grid, nil
}
