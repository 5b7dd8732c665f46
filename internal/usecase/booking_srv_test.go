package usecase

import (
	"context"
	"sync"
	"testing"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingService(store *memStore) (BookingService, *repository.Repository) {
	repo := newTestRepository(store)
	log := testLogger()
	clash := NewClashService(repo, log)
	pricing := NewPricingService(repo, log)
	return NewBookingService(repo, clash, pricing, newCourtLocks(), log), repo
}

func TestCreateBooking(t *testing.T) {
	store := newMemStore()
	sport := store.addSport(100)
	court := store.addCourt(sport.ID, 2, entity.CourtStatusAvailable)
	svc, _ := newBookingService(store)
	ctx := context.Background()

	req := &request.CreateBookingRequest{
		CourtID:      court.ID.String(),
		Date:         "2025-06-10",
		StartTime:    "09:00",
		EndTime:      "10:30",
		SlotsBooked:  1,
		CustomerName: "Dina Putri",
		AmountPaid:   50,
	}

	booking, err := svc.CreateBooking(ctx, req)
	require.NoError(t, err)

	assert.NotEmpty(t, booking.Reference)
	assert.Equal(t, entity.BookingStatusConfirmed, booking.Status)
	assert.InDelta(t, 150.0, booking.TotalPrice, 1e-9)
	assert.InDelta(t, 50.0, booking.AmountPaid, 1e-9)

	t.Run("fills the remaining unit", func(t *testing.T) {
		_, err := svc.CreateBooking(ctx, req)
		require.NoError(t, err)
	})

	t.Run("third overlapping booking is rejected", func(t *testing.T) {
		_, err := svc.CreateBooking(ctx, req)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("touching slot still admits", func(t *testing.T) {
		after := *req
		after.StartTime = "10:30"
		after.EndTime = "11:30"
		after.AmountPaid = 0
		_, err := svc.CreateBooking(ctx, &after)
		require.NoError(t, err)
	})
}

func TestCreateBooking_Validation(t *testing.T) {
	store := newMemStore()
	sport := store.addSport(100)
	court := store.addCourt(sport.ID, 2, entity.CourtStatusAvailable)
	svc, _ := newBookingService(store)
	ctx := context.Background()

	base := request.CreateBookingRequest{
		CourtID:      court.ID.String(),
		Date:         "2025-06-10",
		StartTime:    "09:00",
		EndTime:      "10:00",
		CustomerName: "Dina Putri",
	}

	t.Run("inverted slot", func(t *testing.T) {
		req := base
		req.StartTime = "10:00"
		req.EndTime = "09:00"
		_, err := svc.CreateBooking(ctx, &req)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("overpayment", func(t *testing.T) {
		req := base
		req.AmountPaid = 500
		_, err := svc.CreateBooking(ctx, &req)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("discount above total", func(t *testing.T) {
		req := base
		req.DiscountAmount = 9999
		_, err := svc.CreateBooking(ctx, &req)
		assert.ErrorIs(t, err, ErrInvalidDiscount)
	})

	t.Run("court under maintenance", func(t *testing.T) {
		closed := store.addCourt(sport.ID, 2, entity.CourtStatusUnderMaintenance)
		req := base
		req.CourtID = closed.ID.String()
		_, err := svc.CreateBooking(ctx, &req)
		assert.ErrorIs(t, err, ErrCourtUnavailable)
	})
}

// Concurrent admissions for the last unit must serialize: exactly one
// wins, the rest observe the updated occupancy.
func TestCreateBooking_ConcurrentLastUnit(t *testing.T) {
	store := newMemStore()
	sport := store.addSport(100)
	court := store.addCourt(sport.ID, 1, entity.CourtStatusAvailable)
	svc, _ := newBookingService(store)

	req := request.CreateBookingRequest{
		CourtID:      court.ID.String(),
		Date:         "2025-06-10",
		StartTime:    "09:00",
		EndTime:      "10:00",
		CustomerName: "Dina Putri",
	}

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := req
			_, errs[i] = svc.CreateBooking(context.Background(), &r)
		}(i)
	}
	wg.Wait()

	admitted := 0
	for _, err := range errs {
		if err == nil {
			admitted++
		} else {
			assert.ErrorIs(t, err, ErrConflict)
		}
	}
	assert.Equal(t, 1, admitted)
}

func TestUpdateBooking_Reschedule(t *testing.T) {
	store := newMemStore()
	sport := store.addSport(100)
	court := store.addCourt(sport.ID, 1, entity.CourtStatusAvailable)
	svc, _ := newBookingService(store)
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, &request.CreateBookingRequest{
		CourtID:      court.ID.String(),
		Date:         "2025-06-10",
		StartTime:    "09:00",
		EndTime:      "10:00",
		CustomerName: "Dina Putri",
	})
	require.NoError(t, err)

	t.Run("moves to a free slot", func(t *testing.T) {
		updated, err := svc.UpdateBooking(ctx, created.ID, &request.UpdateBookingRequest{
			Date:      "2025-06-10",
			StartTime: "14:00",
			EndTime:   "15:00",
		})
		require.NoError(t, err)
		assert.True(t, updated.Rescheduled)
		assert.Equal(t, "14:00", updated.StartTime)
	})

	t.Run("overlapping its old slot is fine after the move", func(t *testing.T) {
		_, err := svc.CreateBooking(ctx, &request.CreateBookingRequest{
			CourtID:      court.ID.String(),
			Date:         "2025-06-10",
			StartTime:    "09:00",
			EndTime:      "10:00",
			CustomerName: "Budi Santoso",
		})
		require.NoError(t, err)
	})

	t.Run("cannot move onto an occupied slot", func(t *testing.T) {
		_, err := svc.UpdateBooking(ctx, created.ID, &request.UpdateBookingRequest{
			Date:      "2025-06-10",
			StartTime: "09:30",
			EndTime:   "10:30",
		})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("re-amending in place does not clash with itself", func(t *testing.T) {
		updated, err := svc.UpdateBooking(ctx, created.ID, &request.UpdateBookingRequest{
			Date:        "2025-06-10",
			StartTime:   "14:00",
			EndTime:     "15:00",
			SlotsBooked: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, "14:00", updated.StartTime)
	})
}

func TestCancelBooking_FreesUnits(t *testing.T) {
	store := newMemStore()
	sport := store.addSport(100)
	court := store.addCourt(sport.ID, 1, entity.CourtStatusAvailable)
	svc, _ := newBookingService(store)
	ctx := context.Background()

	req := request.CreateBookingRequest{
		CourtID:      court.ID.String(),
		Date:         "2025-06-10",
		StartTime:    "09:00",
		EndTime:      "10:00",
		CustomerName: "Dina Putri",
	}

	created, err := svc.CreateBooking(ctx, &req)
	require.NoError(t, err)

	_, err = svc.CreateBooking(ctx, &req)
	require.ErrorIs(t, err, ErrConflict)

	require.NoError(t, svc.CancelBooking(ctx, created.ID))

	// Cancellation is visible to the next admission immediately.
	_, err = svc.CreateBooking(ctx, &req)
	require.NoError(t, err)

	t.Run("double cancel rejected", func(t *testing.T) {
		err := svc.CancelBooking(ctx, created.ID)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestAddPayment(t *testing.T) {
	store := newMemStore()
	sport := store.addSport(100)
	court := store.addCourt(sport.ID, 1, entity.CourtStatusAvailable)
	svc, _ := newBookingService(store)
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, &request.CreateBookingRequest{
		CourtID:      court.ID.String(),
		Date:         "2025-06-10",
		StartTime:    "09:00",
		EndTime:      "10:00",
		CustomerName: "Dina Putri",
		AmountPaid:   40,
	})
	require.NoError(t, err)

	updated, err := svc.AddPayment(ctx, created.ID, &request.AddPaymentRequest{Amount: 60})
	require.NoError(t, err)
	assert.InDelta(t, 100.0, updated.AmountPaid, 1e-9)

	t.Run("cannot exceed outstanding", func(t *testing.T) {
		_, err := svc.AddPayment(ctx, created.ID, &request.AddPaymentRequest{Amount: 1})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestCheckClash_Probe(t *testing.T) {
	store := newMemStore()
	sport := store.addSport(100)
	court := store.addCourt(sport.ID, 4, entity.CourtStatusAvailable)
	store.addBooking(court.ID, mustDate(t, "2025-06-10"), mustSlot(t, "09:00", "10:00"), 3)
	svc, _ := newBookingService(store)

	resp, err := svc.CheckClash(context.Background(), &request.CheckClashRequest{
		CourtID:     court.ID.String(),
		Date:        "2025-06-10",
		StartTime:   "09:30",
		EndTime:     "09:45",
		SlotsBooked: 2,
	})
	require.NoError(t, err)
	assert.False(t, resp.Admit)
	assert.Equal(t, 1, resp.AvailableUnits)
}

func TestGetBookingByReference(t *testing.T) {
	store := newMemStore()
	sport := store.addSport(100)
	court := store.addCourt(sport.ID, 1, entity.CourtStatusAvailable)
	svc, _ := newBookingService(store)
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, &request.CreateBookingRequest{
		CourtID:      court.ID.String(),
		Date:         "2025-06-10",
		StartTime:    "09:00",
		EndTime:      "10:00",
		CustomerName: "Dina Putri",
	})
	require.NoError(t, err)

	found, err := svc.GetBookingByReference(ctx, created.Reference)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	t.Run("unknown reference", func(t *testing.T) {
		_, err := svc.GetBookingByReference(ctx, "BK-00000000-000000-0000")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
