package usecase

import (
	"context"
	"testing"

	"court-booking/internal/data/entity"
	"court-booking/internal/dto/response"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHeatmapService(t *testing.T, store *memStore) HeatmapService {
	t.Helper()
	repo := newTestRepository(store)
	log := testLogger()
	clash := NewClashService(repo, log)
	svc, err := NewHeatmapService(repo, clash, utils.FacilityConfig{
		OpeningTime:    "06:00",
		ClosingTime:    "22:00",
		SubSlotMinutes: 30,
	}, log)
	require.NoError(t, err)
	return svc
}

func cellAt(t *testing.T, grid *response.CourtHeatmap, start string) response.HeatmapCell {
	t.Helper()
	for _, cell := range grid.Cells {
		if cell.StartTime == start {
			return cell
		}
	}
	t.Fatalf("no cell starting at %s", start)
	return response.HeatmapCell{}
}

func TestHeatmap_Classification(t *testing.T) {
	store := newMemStore()
	sport := store.addSport(100)
	court := store.addCourt(sport.ID, 2, entity.CourtStatusAvailable)
	date := mustDate(t, "2025-06-10")

	// 09:00-10:00 fully booked, 10:00-11:00 half booked.
	store.addBooking(court.ID, date, mustSlot(t, "09:00", "10:00"), 2)
	booking := store.addBooking(court.ID, date, mustSlot(t, "10:00", "11:00"), 1)

	svc := newHeatmapService(t, store)

	grids, err := svc.Heatmap(context.Background(), []uuid.UUID{court.ID}, date, 30)
	require.NoError(t, err)
	require.Len(t, grids, 1)

	grid := grids[0]
	assert.Equal(t, court.ID.String(), grid.CourtID)
	// 06:00..22:00 at 30 minutes.
	assert.Len(t, grid.Cells, 32)

	assert.Equal(t, response.CellAvailable, cellAt(t, grid, "06:00").State)
	assert.Equal(t, response.CellBooked, cellAt(t, grid, "09:00").State)
	assert.Equal(t, response.CellBooked, cellAt(t, grid, "09:30").State)
	assert.Equal(t, response.CellPartial, cellAt(t, grid, "10:30").State)
	assert.Equal(t, response.CellAvailable, cellAt(t, grid, "11:00").State)

	t.Run("cells carry booking summaries for tooltips", func(t *testing.T) {
		cell := cellAt(t, grid, "10:30")
		require.Len(t, cell.Bookings, 1)
		assert.Equal(t, booking.Reference, cell.Bookings[0].Reference)
		assert.Equal(t, 1, cell.AvailableUnits)
	})
}

func TestHeatmap_MaintenanceCourt(t *testing.T) {
	store := newMemStore()
	sport := store.addSport(100)
	court := store.addCourt(sport.ID, 2, entity.CourtStatusUnderMaintenance)

	svc := newHeatmapService(t, store)

	grids, err := svc.Heatmap(context.Background(), []uuid.UUID{court.ID}, mustDate(t, "2025-06-10"), 60)
	require.NoError(t, err)
	require.Len(t, grids, 1)

	for _, cell := range grids[0].Cells {
		assert.Equal(t, response.CellUnderMaintenance, cell.State)
	}
}

func TestHeatmap_DefaultsToAllCourts(t *testing.T) {
	store := newMemStore()
	sport := store.addSport(100)
	store.addCourt(sport.ID, 2, entity.CourtStatusAvailable)
	store.addCourt(sport.ID, 4, entity.CourtStatusAvailable)

	svc := newHeatmapService(t, store)

	grids, err := svc.Heatmap(context.Background(), nil, mustDate(t, "2025-06-10"), 0)
	require.NoError(t, err)
	assert.Len(t, grids, 2)

	// Zero sub-slot falls back to the configured default of 30 minutes.
	assert.Len(t, grids[0].Cells, 32)
}

func TestHeatmap_MembershipWindowShowsOccupied(t *testing.T) {
	store := newMemStore()
	sport := store.addSport(100)
	court := store.addCourt(sport.ID, 1, entity.CourtStatusAvailable)
	pkg := store.addPackage(30, 4)
	store.addMembership(pkg.ID, court.ID, mustSlot(t, "18:00", "19:00"),
		mustDate(t, "2025-06-01"), mustDate(t, "2025-06-30"))

	svc := newHeatmapService(t, store)

	grids, err := svc.Heatmap(context.Background(), []uuid.UUID{court.ID}, mustDate(t, "2025-06-10"), 30)
	require.NoError(t, err)

	grid := grids[0]
	assert.Equal(t, response.CellBooked, cellAt(t, grid, "18:00").State)
	assert.Equal(t, response.CellBooked, cellAt(t, grid, "18:30").State)
	assert.Equal(t, response.CellAvailable, cellAt(t, grid, "19:00").State)
}
