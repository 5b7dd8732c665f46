package usecase

import (
	"context"
	"sync"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memStore is an in-memory stand-in for the postgres repositories so
// the services can be exercised without a database.
type memStore struct {
	mu sync.Mutex

	sports      map[uuid.UUID]*entity.Sport
	courts      map[uuid.UUID]*entity.Court
	accessories map[uuid.UUID]*entity.Accessory
	bookings    map[uuid.UUID]*entity.Booking
	packages    map[uuid.UUID]*entity.MembershipPackage
	memberships map[uuid.UUID]*entity.Membership
	leaves      []*entity.LeaveRecord
	holidays    []*entity.Holiday
	attendance  []*entity.AttendanceRecord

	// applyExtensionErr simulates a transaction failure.
	applyExtensionErr error
}

func newMemStore() *memStore {
	return &memStore{
		sports:      make(map[uuid.UUID]*entity.Sport),
		courts:      make(map[uuid.UUID]*entity.Court),
		accessories: make(map[uuid.UUID]*entity.Accessory),
		bookings:    make(map[uuid.UUID]*entity.Booking),
		packages:    make(map[uuid.UUID]*entity.MembershipPackage),
		memberships: make(map[uuid.UUID]*entity.Membership),
	}
}

func newTestRepository(store *memStore) *repository.Repository {
	return &repository.Repository{
		Sport:      &fakeSportRepo{store},
		Court:      &fakeCourtRepo{store},
		Accessory:  &fakeAccessoryRepo{store},
		Booking:    &fakeBookingRepo{store},
		Package:    &fakePackageRepo{store},
		Membership: &fakeMembershipRepo{store},
		Leave:      &fakeLeaveRepo{store},
		Holiday:    &fakeHolidayRepo{store},
		Attendance: &fakeAttendanceRepo{store},
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

// Seeding helpers.

func (s *memStore) addSport(rate float64) *entity.Sport {
	sport := &entity.Sport{
		Base:       entity.Base{ID: uuid.New()},
		Name:       "badminton",
		HourlyRate: rate,
	}
	s.sports[sport.ID] = sport
	return sport
}

func (s *memStore) addCourt(sportID uuid.UUID, capacity int, status entity.CourtStatus) *entity.Court {
	court := &entity.Court{
		Base:     entity.Base{ID: uuid.New()},
		SportID:  sportID,
		Name:     "court A",
		Capacity: capacity,
		Status:   status,
	}
	s.courts[court.ID] = court
	return court
}

func (s *memStore) addBooking(courtID uuid.UUID, date time.Time, slot entity.TimeSlot, units int) *entity.Booking {
	booking := &entity.Booking{
		Base:      entity.Base{ID: uuid.New()},
		Reference: "BK-" + uuid.NewString()[:8],
		CourtID:   courtID,
		Date:      entity.Day(date),
		Slot:      slot,
		Units:     units,
		Status:    entity.BookingStatusConfirmed,
	}
	s.bookings[booking.ID] = booking
	return booking
}

func (s *memStore) addPackage(durationDays, maxTeamSize int) *entity.MembershipPackage {
	pkg := &entity.MembershipPackage{
		Base:           entity.Base{ID: uuid.New()},
		Name:           "monthly",
		DurationDays:   durationDays,
		PricePerPerson: 50,
		MaxTeamSize:    maxTeamSize,
	}
	s.packages[pkg.ID] = pkg
	return pkg
}

func (s *memStore) addMembership(pkgID, courtID uuid.UUID, window entity.TimeSlot, start, end time.Time) *entity.Membership {
	membership := &entity.Membership{
		Base:           entity.Base{ID: uuid.New()},
		PackageID:      pkgID,
		CourtID:        courtID,
		Window:         window,
		StartDate:      entity.Day(start),
		CurrentEndDate: entity.Day(end),
		Status:         entity.MembershipStatusActive,
	}
	s.memberships[membership.ID] = membership
	return membership
}

type fakeSportRepo struct{ s *memStore }

func (r *fakeSportRepo) Create(ctx context.Context, sport *entity.Sport) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sports[sport.ID] = sport
	return nil
}

func (r *fakeSportRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Sport, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.sports[id], nil
}

func (r *fakeSportRepo) FindAll(ctx context.Context) ([]*entity.Sport, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Sport
	for _, sport := range r.s.sports {
		out = append(out, sport)
	}
	return out, nil
}

func (r *fakeSportRepo) UpdateRate(ctx context.Context, id uuid.UUID, hourlyRate float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sport, ok := r.s.sports[id]; ok {
		sport.HourlyRate = hourlyRate
	}
	return nil
}

type fakeCourtRepo struct{ s *memStore }

func (r *fakeCourtRepo) Create(ctx context.Context, court *entity.Court) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.courts[court.ID] = court
	return nil
}

func (r *fakeCourtRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Court, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.courts[id], nil
}

func (r *fakeCourtRepo) FindAll(ctx context.Context) ([]*entity.Court, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Court
	for _, court := range r.s.courts {
		out = append(out, court)
	}
	return out, nil
}

func (r *fakeCourtRepo) Update(ctx context.Context, court *entity.Court) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.courts[court.ID] = court
	return nil
}

func (r *fakeCourtRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.CourtStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if court, ok := r.s.courts[id]; ok {
		court.Status = status
	}
	return nil
}

type fakeAccessoryRepo struct{ s *memStore }

func (r *fakeAccessoryRepo) Create(ctx context.Context, accessory *entity.Accessory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.accessories[accessory.ID] = accessory
	return nil
}

func (r *fakeAccessoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Accessory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.accessories[id], nil
}

func (r *fakeAccessoryRepo) FindAll(ctx context.Context) ([]*entity.Accessory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Accessory
	for _, accessory := range r.s.accessories {
		out = append(out, accessory)
	}
	return out, nil
}

type fakeBookingRepo struct{ s *memStore }

func (r *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.bookings[id], nil
}

func (r *fakeBookingRepo) FindByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.bookings {
		if b.Reference == reference {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b, ok := r.s.bookings[id]; ok {
		b.Status = status
	}
	return nil
}

func (r *fakeBookingRepo) AddPayment(ctx context.Context, id uuid.UUID, amount float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b, ok := r.s.bookings[id]; ok {
		b.AmountPaid += amount
	}
	return nil
}

func (r *fakeBookingRepo) FindConfirmedByCourtDate(ctx context.Context, courtID uuid.UUID, date time.Time) ([]*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.s.bookings {
		if b.CourtID == courtID && b.Status == entity.BookingStatusConfirmed && entity.SameDay(b.Date, date) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindByCourtDate(ctx context.Context, courtID uuid.UUID, date time.Time, limit, offset int) ([]*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.s.bookings {
		if b.CourtID == courtID && entity.SameDay(b.Date, date) {
			out = append(out, b)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeBookingRepo) CountByCourtDate(ctx context.Context, courtID uuid.UUID, date time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, b := range r.s.bookings {
		if b.CourtID == courtID && entity.SameDay(b.Date, date) {
			count++
		}
	}
	return count, nil
}

type fakePackageRepo struct{ s *memStore }

func (r *fakePackageRepo) Create(ctx context.Context, pkg *entity.MembershipPackage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.packages[pkg.ID] = pkg
	return nil
}

func (r *fakePackageRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.MembershipPackage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.packages[id], nil
}

func (r *fakePackageRepo) FindAll(ctx context.Context) ([]*entity.MembershipPackage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.MembershipPackage
	for _, pkg := range r.s.packages {
		out = append(out, pkg)
	}
	return out, nil
}

type fakeMembershipRepo struct{ s *memStore }

func (r *fakeMembershipRepo) Create(ctx context.Context, membership *entity.Membership) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.memberships[membership.ID] = membership
	return nil
}

func (r *fakeMembershipRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Membership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.memberships[id], nil
}

func (r *fakeMembershipRepo) FindActiveByCourt(ctx context.Context, courtID uuid.UUID) ([]*entity.Membership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Membership
	for _, m := range r.s.memberships {
		if m.CourtID == courtID && m.Status == entity.MembershipStatusActive {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMembershipRepo) FindActiveCoveringDate(ctx context.Context, date time.Time) ([]*entity.Membership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Membership
	for _, m := range r.s.memberships {
		if m.CoversDate(date) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMembershipRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.MembershipStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.memberships[id]; ok {
		m.Status = status
	}
	return nil
}

func (r *fakeMembershipRepo) Renew(ctx context.Context, id uuid.UUID, start, end time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.memberships[id]; ok {
		m.StartDate = entity.Day(start)
		m.CurrentEndDate = entity.Day(end)
		m.Status = entity.MembershipStatusActive
	}
	return nil
}

func (r *fakeMembershipRepo) ApplyExtension(ctx context.Context, membershipID uuid.UUID, newEndDate time.Time, leave *entity.LeaveRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.applyExtensionErr != nil {
		return r.s.applyExtensionErr
	}
	if m, ok := r.s.memberships[membershipID]; ok {
		m.CurrentEndDate = entity.Day(newEndDate)
	}
	r.s.leaves = append(r.s.leaves, leave)
	return nil
}

type fakeLeaveRepo struct{ s *memStore }

func (r *fakeLeaveRepo) FindByMembership(ctx context.Context, membershipID uuid.UUID) ([]*entity.LeaveRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.LeaveRecord
	for _, l := range r.s.leaves {
		if l.MembershipID == membershipID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLeaveRepo) FindCovering(ctx context.Context, membershipID uuid.UUID, date time.Time) (*entity.LeaveRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.leaves {
		if l.MembershipID == membershipID && l.Covers(date) {
			return l, nil
		}
	}
	return nil, nil
}

func (r *fakeLeaveRepo) ExistsForRange(ctx context.Context, membershipID uuid.UUID, start, end time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.leaves {
		if l.MembershipID == membershipID && entity.SameDay(l.StartDate, start) && entity.SameDay(l.EndDate, end) {
			return true, nil
		}
	}
	return false, nil
}

type fakeHolidayRepo struct{ s *memStore }

func (r *fakeHolidayRepo) Create(ctx context.Context, holiday *entity.Holiday) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.holidays = append(r.s.holidays, holiday)
	return nil
}

func (r *fakeHolidayRepo) FindByDate(ctx context.Context, date time.Time) (*entity.Holiday, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, h := range r.s.holidays {
		if entity.SameDay(h.Date, date) {
			return h, nil
		}
	}
	return nil, nil
}

func (r *fakeHolidayRepo) FindAll(ctx context.Context) ([]*entity.Holiday, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]*entity.Holiday(nil), r.s.holidays...), nil
}

type fakeAttendanceRepo struct{ s *memStore }

func (r *fakeAttendanceRepo) Upsert(ctx context.Context, record *entity.AttendanceRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.attendance {
		if a.MembershipID == record.MembershipID && entity.SameDay(a.Date, record.Date) {
			return nil
		}
	}
	r.s.attendance = append(r.s.attendance, record)
	return nil
}

func (r *fakeAttendanceRepo) Exists(ctx context.Context, membershipID uuid.UUID, date time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.attendance {
		if a.MembershipID == membershipID && entity.SameDay(a.Date, date) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAttendanceRepo) FindByMembership(ctx context.Context, membershipID uuid.UUID) ([]*entity.AttendanceRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.AttendanceRecord
	for _, a := range r.s.attendance {
		if a.MembershipID == membershipID {
			out = append(out, a)
		}
	}
	return out, nil
}
