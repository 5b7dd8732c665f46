package usecase

import (
	"context"
	"testing"

	"court-booking/internal/data/entity"
	"court-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkAttendance(t *testing.T) {
	store := newMemStore()
	sport := store.addSport(100)
	court := store.addCourt(sport.ID, 1, entity.CourtStatusMembership)
	pkg := store.addPackage(30, 4)
	membership := store.addMembership(pkg.ID, court.ID, mustSlot(t, "18:00", "19:00"),
		mustDate(t, "2025-06-01"), mustDate(t, "2025-06-30"))

	svc := NewLedgerService(newTestRepository(store), testLogger())
	ctx := context.Background()

	require.NoError(t, svc.MarkAttendance(ctx, membership.ID.String(), &request.MarkAttendanceRequest{
		Date: "2025-06-10",
	}))

	t.Run("marking twice is idempotent", func(t *testing.T) {
		require.NoError(t, svc.MarkAttendance(ctx, membership.ID.String(), &request.MarkAttendanceRequest{
			Date: "2025-06-10",
		}))

		history, err := svc.AttendanceHistory(ctx, membership.ID.String())
		require.NoError(t, err)
		assert.Equal(t, []string{"2025-06-10"}, history.AttendedDates)
	})

	t.Run("outside the membership period", func(t *testing.T) {
		err := svc.MarkAttendance(ctx, membership.ID.String(), &request.MarkAttendanceRequest{
			Date: "2025-07-15",
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("blocked on a leave day", func(t *testing.T) {
		store.leaves = append(store.leaves, &entity.LeaveRecord{
			MembershipID: membership.ID,
			StartDate:    mustDate(t, "2025-06-15"),
			EndDate:      mustDate(t, "2025-06-17"),
			Kind:         entity.LeaveKindLeave,
			Status:       entity.LeaveStatusGranted,
		})

		err := svc.MarkAttendance(ctx, membership.ID.String(), &request.MarkAttendanceRequest{
			Date: "2025-06-16",
		})
		assert.ErrorIs(t, err, ErrAlreadyOnLeave)

		// Day after the leave window is fine again.
		require.NoError(t, svc.MarkAttendance(ctx, membership.ID.String(), &request.MarkAttendanceRequest{
			Date: "2025-06-18",
		}))
	})
}

func TestIsOnLeave(t *testing.T) {
	store := newMemStore()
	sport := store.addSport(100)
	court := store.addCourt(sport.ID, 1, entity.CourtStatusMembership)
	pkg := store.addPackage(30, 4)
	membership := store.addMembership(pkg.ID, court.ID, mustSlot(t, "18:00", "19:00"),
		mustDate(t, "2025-06-01"), mustDate(t, "2025-06-30"))

	store.leaves = append(store.leaves, &entity.LeaveRecord{
		MembershipID: membership.ID,
		StartDate:    mustDate(t, "2025-06-15"),
		EndDate:      mustDate(t, "2025-06-17"),
		Reason:       "travel",
		Kind:         entity.LeaveKindLeave,
		Status:       entity.LeaveStatusGranted,
	})

	svc := NewLedgerService(newTestRepository(store), testLogger())
	ctx := context.Background()

	onLeave, record, err := svc.IsOnLeave(ctx, membership.ID.String(), "2025-06-16")
	require.NoError(t, err)
	assert.True(t, onLeave)
	require.NotNil(t, record)
	assert.Equal(t, "2025-06-15", record.StartDate)

	onLeave, record, err = svc.IsOnLeave(ctx, membership.ID.String(), "2025-06-18")
	require.NoError(t, err)
	assert.False(t, onLeave)
	assert.Nil(t, record)
}

func TestLeaveHistory(t *testing.T) {
	store := newMemStore()
	sport := store.addSport(100)
	court := store.addCourt(sport.ID, 1, entity.CourtStatusMembership)
	pkg := store.addPackage(30, 4)
	membership := store.addMembership(pkg.ID, court.ID, mustSlot(t, "18:00", "19:00"),
		mustDate(t, "2025-06-01"), mustDate(t, "2025-06-30"))
	other := store.addMembership(pkg.ID, court.ID, mustSlot(t, "06:00", "07:00"),
		mustDate(t, "2025-06-01"), mustDate(t, "2025-06-30"))

	store.leaves = append(store.leaves,
		&entity.LeaveRecord{
			MembershipID: membership.ID,
			StartDate:    mustDate(t, "2025-06-15"),
			EndDate:      mustDate(t, "2025-06-17"),
			Kind:         entity.LeaveKindLeave,
			Status:       entity.LeaveStatusGranted,
		},
		&entity.LeaveRecord{
			MembershipID: other.ID,
			StartDate:    mustDate(t, "2025-06-20"),
			EndDate:      mustDate(t, "2025-06-20"),
			Kind:         entity.LeaveKindHoliday,
			Status:       entity.LeaveStatusGranted,
		},
	)

	svc := NewLedgerService(newTestRepository(store), testLogger())

	history, err := svc.LeaveHistory(context.Background(), membership.ID.String())
	require.NoError(t, err)
	require.Len(t, history.LeaveWindows, 1)
	assert.Equal(t, "2025-06-15", history.LeaveWindows[0].StartDate)
}

func TestLedger_UnknownMembership(t *testing.T) {
	store := newMemStore()
	svc := NewLedgerService(newTestRepository(store), testLogger())

	err := svc.MarkAttendance(context.Background(), uuid.NewString(), &request.MarkAttendanceRequest{
		Date: "2025-06-10",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
