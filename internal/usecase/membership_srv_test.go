package usecase

import (
	"context"
	"errors"
	"testing"

	"court-booking/internal/data/entity"
	"court-booking/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMembershipService(store *memStore) MembershipService {
	repo := newTestRepository(store)
	log := testLogger()
	clash := NewClashService(repo, log)
	return NewMembershipService(repo, clash, newCourtLocks(), log)
}

func TestCreateMembership(t *testing.T) {
	store := newMemStore()
	sport := store.addSport(100)
	court := store.addCourt(sport.ID, 2, entity.CourtStatusMembership)
	pkg := store.addPackage(30, 4)
	svc := newMembershipService(store)
	ctx := context.Background()

	req := &request.CreateMembershipRequest{
		PackageID: pkg.ID.String(),
		CourtID:   court.ID.String(),
		StartDate: "2025-06-01",
		StartTime: "18:00",
		EndTime:   "19:00",
		Members: []request.TeamMemberRequest{
			{Name: "Dina Putri"},
			{Name: "Budi Santoso"},
		},
	}

	created, err := svc.CreateMembership(ctx, req)
	require.NoError(t, err)

	// A 30-day package starting 06-01 runs through 06-30 inclusive.
	assert.Equal(t, "2025-06-01", created.StartDate)
	assert.Equal(t, "2025-06-30", created.CurrentEndDate)
	assert.Len(t, created.Members, 2)

	t.Run("team size above package maximum", func(t *testing.T) {
		over := *req
		over.Members = []request.TeamMemberRequest{
			{Name: "a1"}, {Name: "a2"}, {Name: "a3"}, {Name: "a4"}, {Name: "a5"},
		}
		_, err := svc.CreateMembership(ctx, &over)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("second membership takes the last unit", func(t *testing.T) {
		_, err := svc.CreateMembership(ctx, req)
		require.NoError(t, err)
	})

	t.Run("third overlapping membership is rejected", func(t *testing.T) {
		_, err := svc.CreateMembership(ctx, req)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("disjoint window still fits", func(t *testing.T) {
		early := *req
		early.StartTime = "06:00"
		early.EndTime = "07:00"
		_, err := svc.CreateMembership(ctx, &early)
		require.NoError(t, err)
	})
}

func TestGrantLeave_ExtendsEndDate(t *testing.T) {
	store := newMemStore()
	sport := store.addSport(100)
	court := store.addCourt(sport.ID, 1, entity.CourtStatusMembership)
	pkg := store.addPackage(30, 4)
	membership := store.addMembership(pkg.ID, court.ID, mustSlot(t, "18:00", "19:00"),
		mustDate(t, "2025-06-01"), mustDate(t, "2025-06-30"))

	svc := newMembershipService(store)
	ctx := context.Background()

	result, err := svc.GrantLeave(ctx, &request.GrantLeaveRequest{
		MembershipID: membership.ID.String(),
		StartDate:    "2025-06-10",
		EndDate:      "2025-06-12",
		Reason:       "travel",
	})
	require.NoError(t, err)

	// Three leave days push the end date three days past 06-30.
	assert.Equal(t, ExtensionStatusSuccess, result.Status)
	assert.Equal(t, "2025-07-03", result.NewEndDate)
	assert.Equal(t, "2025-07-01", result.ExtensionStart)
	assert.Equal(t, "2025-07-03", result.ExtensionEnd)
	assert.Empty(t, result.Conflicts)

	assert.Equal(t, "2025-07-03", membership.CurrentEndDate.Format(entity.DateLayout))

	require.Len(t, store.leaves, 1)
	leave := store.leaves[0]
	assert.Equal(t, entity.LeaveKindLeave, leave.Kind)
	require.NotNil(t, leave.CompensationStart)
	assert.Equal(t, "2025-07-01", leave.CompensationStart.Format(entity.DateLayout))

	t.Run("same range twice is a duplicate", func(t *testing.T) {
		_, err := svc.GrantLeave(ctx, &request.GrantLeaveRequest{
			MembershipID: membership.ID.String(),
			StartDate:    "2025-06-10",
			EndDate:      "2025-06-12",
		})
		assert.ErrorIs(t, err, ErrDuplicateLeave)
	})
}

func TestGrantLeave_ExtensionConflict(t *testing.T) {
	store := newMemStore()
	sport := store.addSport(100)
	court := store.addCourt(sport.ID, 1, entity.CourtStatusMembership)
	pkg := store.addPackage(30, 4)
	membership := store.addMembership(pkg.ID, court.ID, mustSlot(t, "18:00", "19:00"),
		mustDate(t, "2025-06-01"), mustDate(t, "2025-06-30"))

	// A booking already holds the window on 07-02, inside the default
	// extension 07-01..07-03.
	store.addBooking(court.ID, mustDate(t, "2025-07-02"), mustSlot(t, "18:00", "19:00"), 1)

	svc := newMembershipService(store)
	ctx := context.Background()

	req := &request.GrantLeaveRequest{
		MembershipID: membership.ID.String(),
		StartDate:    "2025-06-10",
		EndDate:      "2025-06-12",
	}

	result, err := svc.GrantLeave(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, ExtensionStatusConflict, result.Status)
	assert.Empty(t, result.NewEndDate)
	require.NotEmpty(t, result.Conflicts)
	assert.Equal(t, "2025-07-02", result.Conflicts[0].Date)
	assert.Equal(t, ConflictTypeMembershipExtension, result.Conflicts[0].Type)

	// Nothing committed on conflict.
	assert.Equal(t, "2025-06-30", membership.CurrentEndDate.Format(entity.DateLayout))
	assert.Empty(t, store.leaves)

	t.Run("retry with a custom extension start", func(t *testing.T) {
		custom := "2025-07-05"
		req.CustomExtensionStartDate = &custom

		result, err := svc.GrantLeave(ctx, req)
		require.NoError(t, err)

		assert.Equal(t, ExtensionStatusSuccess, result.Status)
		assert.Equal(t, "2025-07-05", result.ExtensionStart)
		assert.Equal(t, "2025-07-07", result.NewEndDate)
		assert.Equal(t, "2025-07-07", membership.CurrentEndDate.Format(entity.DateLayout))
	})

	t.Run("custom start before current end is rejected", func(t *testing.T) {
		custom := "2025-06-20"
		_, err := svc.GrantLeave(ctx, &request.GrantLeaveRequest{
			MembershipID:             membership.ID.String(),
			StartDate:                "2025-06-15",
			EndDate:                  "2025-06-15",
			CustomExtensionStartDate: &custom,
		})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestGrantLeave_ReportsBookingsInsideLeaveWindow(t *testing.T) {
	store := newMemStore()
	sport := store.addSport(100)
	court := store.addCourt(sport.ID, 2, entity.CourtStatusMembership)
	pkg := store.addPackage(30, 4)
	membership := store.addMembership(pkg.ID, court.ID, mustSlot(t, "18:00", "19:00"),
		mustDate(t, "2025-06-01"), mustDate(t, "2025-06-30"))

	// An ad-hoc booking sits inside the member's reserved window on a
	// leave day; the grant still succeeds but the overlap is surfaced.
	store.addBooking(court.ID, mustDate(t, "2025-06-10"), mustSlot(t, "18:00", "19:00"), 1)

	svc := newMembershipService(store)

	result, err := svc.GrantLeave(context.Background(), &request.GrantLeaveRequest{
		MembershipID: membership.ID.String(),
		StartDate:    "2025-06-10",
		EndDate:      "2025-06-10",
	})
	require.NoError(t, err)

	assert.Equal(t, ExtensionStatusSuccess, result.Status)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, ConflictTypeBookingExtension, result.Conflicts[0].Type)
	assert.Equal(t, "2025-06-10", result.Conflicts[0].Date)
}

func TestGrantLeave_CommitIsAtomic(t *testing.T) {
	store := newMemStore()
	sport := store.addSport(100)
	court := store.addCourt(sport.ID, 1, entity.CourtStatusMembership)
	pkg := store.addPackage(30, 4)
	membership := store.addMembership(pkg.ID, court.ID, mustSlot(t, "18:00", "19:00"),
		mustDate(t, "2025-06-01"), mustDate(t, "2025-06-30"))

	store.applyExtensionErr = errors.New("connection reset")

	svc := newMembershipService(store)

	_, err := svc.GrantLeave(context.Background(), &request.GrantLeaveRequest{
		MembershipID: membership.ID.String(),
		StartDate:    "2025-06-10",
		EndDate:      "2025-06-12",
	})
	require.Error(t, err)

	// Failed commit leaves no partial state behind.
	assert.Equal(t, "2025-06-30", membership.CurrentEndDate.Format(entity.DateLayout))
	assert.Empty(t, store.leaves)
}

func TestDeclareAndCompensateHoliday(t *testing.T) {
	store := newMemStore()
	sport := store.addSport(100)
	court := store.addCourt(sport.ID, 1, entity.CourtStatusMembership)
	pkg := store.addPackage(30, 4)
	membership := store.addMembership(pkg.ID, court.ID, mustSlot(t, "18:00", "19:00"),
		mustDate(t, "2025-06-01"), mustDate(t, "2025-06-30"))

	svc := newMembershipService(store)
	ctx := context.Background()

	holiday, err := svc.DeclareHoliday(ctx, &request.DeclareHolidayRequest{
		Date:   "2025-06-17",
		Reason: "public holiday",
	})
	require.NoError(t, err)
	require.Len(t, holiday.AffectedMemberships, 1)
	assert.Equal(t, membership.ID.String(), holiday.AffectedMemberships[0])

	t.Run("same date twice rejected", func(t *testing.T) {
		_, err := svc.DeclareHoliday(ctx, &request.DeclareHolidayRequest{
			Date:   "2025-06-17",
			Reason: "public holiday",
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("compensation extends by one day", func(t *testing.T) {
		result, err := svc.CompensateHoliday(ctx, membership.ID.String(), &request.HolidayCompensationRequest{
			Date: "2025-06-17",
		})
		require.NoError(t, err)

		assert.Equal(t, ExtensionStatusSuccess, result.Status)
		assert.Equal(t, "2025-07-01", result.NewEndDate)
		assert.Equal(t, "2025-07-01", membership.CurrentEndDate.Format(entity.DateLayout))

		require.Len(t, store.leaves, 1)
		assert.Equal(t, entity.LeaveKindHoliday, store.leaves[0].Kind)
	})

	t.Run("compensation without a declared holiday", func(t *testing.T) {
		_, err := svc.CompensateHoliday(ctx, membership.ID.String(), &request.HolidayCompensationRequest{
			Date: "2025-06-18",
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRenewMembership(t *testing.T) {
	store := newMemStore()
	sport := store.addSport(100)
	court := store.addCourt(sport.ID, 1, entity.CourtStatusMembership)
	pkg := store.addPackage(30, 4)
	membership := store.addMembership(pkg.ID, court.ID, mustSlot(t, "18:00", "19:00"),
		mustDate(t, "2025-06-01"), mustDate(t, "2025-06-30"))

	svc := newMembershipService(store)
	ctx := context.Background()

	renewed, err := svc.RenewMembership(ctx, membership.ID.String(), &request.RenewMembershipRequest{
		StartDate: "2025-07-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-07-01", renewed.StartDate)
	assert.Equal(t, "2025-07-30", renewed.CurrentEndDate)

	t.Run("terminated membership cannot renew", func(t *testing.T) {
		require.NoError(t, svc.TerminateMembership(ctx, membership.ID.String()))

		_, err := svc.RenewMembership(ctx, membership.ID.String(), &request.RenewMembershipRequest{
			StartDate: "2025-08-01",
		})
		assert.ErrorIs(t, err, ErrValidation)
	})
}
