package repository

import (
	"context"
	"fmt"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type LeaveRepository interface {
	FindByMembership(ctx context.Context, membershipID uuid.UUID) ([]*entity.LeaveRecord, error)
	FindCovering(ctx context.Context, membershipID uuid.UUID, date time.Time) (*entity.LeaveRecord, error)
	ExistsForRange(ctx context.Context, membershipID uuid.UUID, start, end time.Time) (bool, error)
}

type leaveRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLeaveRepository(db database.PgxIface, log *zap.Logger) LeaveRepository {
	return &leaveRepository{
		db:  db,
		log: log.With(zap.String("repository", "leave")),
	}
}

const leaveColumns = `id, membership_id, start_date, end_date, reason, kind, status,
	compensation_start, compensation_end, created_at, updated_at`

func scanLeave(row pgx.Row) (*entity.LeaveRecord, error) {
	var leave entity.LeaveRecord
	err := row.Scan(
		&leave.ID,
		&leave.MembershipID,
		&leave.StartDate,
		&leave.EndDate,
		&leave.Reason,
		&leave.Kind,
		&leave.Status,
		&leave.CompensationStart,
		&leave.CompensationEnd,
		&leave.CreatedAt,
		&leave.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &leave, nil
}

func (r *leaveRepository) FindByMembership(ctx context.Context, membershipID uuid.UUID) ([]*entity.LeaveRecord, error) {
	query := `
		SELECT ` + leaveColumns + `
		FROM leave_records
		WHERE membership_id = $1
		ORDER BY start_date
	`

	rows, err := r.db.Query(ctx, query, membershipID)
	if err != nil {
		r.log.Error("Failed to find leave records",
			zap.Error(err),
			zap.String("membership_id", membershipID.String()),
		)
		return nil, fmt.Errorf("find leave records for membership %s: %w", membershipID.String(), err)
	}
	defer rows.Close()

	var records []*entity.LeaveRecord
	for rows.Next() {
		leave, err := scanLeave(rows)
		if err != nil {
			r.log.Error("Failed to scan leave record row", zap.Error(err))
			return nil, fmt.Errorf("scan leave record row: %w", err)
		}
		records = append(records, leave)
	}

	return records, nil
}

func (r *leaveRepository) FindCovering(ctx context.Context, membershipID uuid.UUID, date time.Time) (*entity.LeaveRecord, error) {
	query := `
		SELECT ` + leaveColumns + `
		FROM leave_records
		WHERE membership_id = $1 AND status = 'granted' AND start_date <= $2 AND end_date >= $2
		LIMIT 1
	`

	leave, err := scanLeave(r.db.QueryRow(ctx, query, membershipID, entity.Day(date)))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find covering leave record",
			zap.Error(err),
			zap.String("membership_id", membershipID.String()),
		)
		return nil, fmt.Errorf("find covering leave for membership %s: %w", membershipID.String(), err)
	}

	return leave, nil
}

func (r *leaveRepository) ExistsForRange(ctx context.Context, membershipID uuid.UUID, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_records
			WHERE membership_id = $1 AND status = 'granted' AND start_date = $2 AND end_date = $3
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, membershipID, entity.Day(start), entity.Day(end)).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check duplicate leave",
			zap.Error(err),
			zap.String("membership_id", membershipID.String()),
		)
		return false, fmt.Errorf("check duplicate leave for membership %s: %w", membershipID.String(), err)
	}

	return exists, nil
}
