package repository

import (
	"court-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Sport      SportRepository
	Court      CourtRepository
	Accessory  AccessoryRepository
	Booking    BookingRepository
	Package    PackageRepository
	Membership MembershipRepository
	Leave      LeaveRepository
	Holiday    HolidayRepository
	Attendance AttendanceRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Sport:      NewSportRepository(db, log),
		Court:      NewCourtRepository(db, log),
		Accessory:  NewAccessoryRepository(db, log),
		Booking:    NewBookingRepository(db, log),
		Package:    NewPackageRepository(db, log),
		Membership: NewMembershipRepository(db, log),
		Leave:      NewLeaveRepository(db, log),
		Holiday:    NewHolidayRepository(db, log),
		Attendance: NewAttendanceRepository(db, log),
	}
}
