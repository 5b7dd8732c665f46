package repository

import (
	"context"
	"fmt"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AttendanceRepository interface {
	// Upsert marks attendance for the date; marking twice is a no-op.
	Upsert(ctx context.Context, record *entity.AttendanceRecord) error
	Exists(ctx context.Context, membershipID uuid.UUID, date time.Time) (bool, error)
	FindByMembership(ctx context.Context, membershipID uuid.UUID) ([]*entity.AttendanceRecord, error)
}

type attendanceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAttendanceRepository(db database.PgxIface, log *zap.Logger) AttendanceRepository {
	return &attendanceRepository{
		db:  db,
		log: log.With(zap.String("repository", "attendance")),
	}
}

func (r *attendanceRepository) Upsert(ctx context.Context, record *entity.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records (id, membership_id, date, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (membership_id, date) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.MembershipID,
		entity.Day(record.Date),
		record.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert attendance",
			zap.Error(err),
			zap.String("membership_id", record.MembershipID.String()),
			zap.Time("date", record.Date),
		)
		return fmt.Errorf("mark attendance for membership %s: %w", record.MembershipID.String(), err)
	}

	return nil
}

func (r *attendanceRepository) Exists(ctx context.Context, membershipID uuid.UUID, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendance_records WHERE membership_id = $1 AND date = $2
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, membershipID, entity.Day(date)).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check attendance",
			zap.Error(err),
			zap.String("membership_id", membershipID.String()),
		)
		return false, fmt.Errorf("check attendance for membership %s: %w", membershipID.String(), err)
	}

	return exists, nil
}

func (r *attendanceRepository) FindByMembership(ctx context.Context, membershipID uuid.UUID) ([]*entity.AttendanceRecord, error) {
	query := `
		SELECT id, membership_id, date, created_at
		FROM attendance_records
		WHERE membership_id = $1
		ORDER BY date
	`

	rows, err := r.db.Query(ctx, query, membershipID)
	if err != nil {
		r.log.Error("Failed to find attendance records",
			zap.Error(err),
			zap.String("membership_id", membershipID.String()),
		)
		return nil, fmt.Errorf("find attendance for membership %s: %w", membershipID.String(), err)
	}
	defer rows.Close()

	var records []*entity.AttendanceRecord
	for rows.Next() {
		var record entity.AttendanceRecord
		err := rows.Scan(
			&record.ID,
			&record.MembershipID,
			&record.Date,
			&record.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan attendance row", zap.Error(err))
			return nil, fmt.Errorf("scan attendance row: %w", err)
		}
		records = append(records, &record)
	}

	return records, nil
}
