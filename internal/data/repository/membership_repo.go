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

type MembershipRepository interface {
	Create(ctx context.Context, membership *entity.Membership) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Membership, error)
	FindActiveByCourt(ctx context.Context, courtID uuid.UUID) ([]*entity.Membership, error)
	FindActiveCoveringDate(ctx context.Context, date time.Time) ([]*entity.Membership, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.MembershipStatus) error
	Renew(ctx context.Context, id uuid.UUID, start, end time.Time) error

	// ApplyExtension advances the membership end date and records the leave
	// with its linked compensation window in one transaction. Either both
	// writes land or neither does.
	ApplyExtension(ctx context.Context, membershipID uuid.UUID, newEndDate time.Time, leave *entity.LeaveRecord) error
}

type membershipRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMembershipRepository(db database.PgxIface, log *zap.Logger) MembershipRepository {
	return &membershipRepository{
		db:  db,
		log: log.With(zap.String("repository", "membership")),
	}
}

const membershipColumns = `id, package_id, court_id, start_minute, end_minute,
	start_date, current_end_date, status, created_at, updated_at`

func scanMembership(row pgx.Row) (*entity.Membership, error) {
	var m entity.Membership
	err := row.Scan(
		&m.ID,
		&m.PackageID,
		&m.CourtID,
		&m.Window.Start,
		&m.Window.End,
		&m.StartDate,
		&m.CurrentEndDate,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *membershipRepository) Create(ctx context.Context, membership *entity.Membership) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create membership tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO memberships (` + membershipColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = tx.Exec(ctx, query,
		membership.ID,
		membership.PackageID,
		membership.CourtID,
		membership.Window.Start,
		membership.Window.End,
		membership.StartDate,
		membership.CurrentEndDate,
		membership.Status,
		membership.CreatedAt,
		membership.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create membership",
			zap.Error(err),
			zap.String("court_id", membership.CourtID.String()),
		)
		return fmt.Errorf("create membership: %w", err)
	}

	memberQuery := `
		INSERT INTO team_members (id, membership_id, name, phone, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, member := range membership.Members {
		_, err = tx.Exec(ctx, memberQuery,
			member.ID,
			member.MembershipID,
			member.Name,
			member.Phone,
			member.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create team member",
				zap.Error(err),
				zap.String("membership_id", membership.ID.String()),
			)
			return fmt.Errorf("create team member: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create membership: %w", err)
	}

	return nil
}

func (r *membershipRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE id = $1`

	membership, err := scanMembership(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find membership by ID",
			zap.Error(err),
			zap.String("membership_id", id.String()),
		)
		return nil, fmt.Errorf("find membership by ID %s: %w", id.String(), err)
	}

	members, err := r.findMembers(ctx, membership.ID)
	if err != nil {
		return nil, err
	}
	membership.Members = members

	return membership, nil
}

func (r *membershipRepository) findMembers(ctx context.Context, membershipID uuid.UUID) ([]*entity.TeamMember, error) {
	query := `
		SELECT id, membership_id, name, phone, created_at
		FROM team_members
		WHERE membership_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, membershipID)
	if err != nil {
		r.log.Error("Failed to find team members",
			zap.Error(err),
			zap.String("membership_id", membershipID.String()),
		)
		return nil, fmt.Errorf("find team members %s: %w", membershipID.String(), err)
	}
	defer rows.Close()

	var members []*entity.TeamMember
	for rows.Next() {
		var member entity.TeamMember
		err := rows.Scan(
			&member.ID,
			&member.MembershipID,
			&member.Name,
			&member.Phone,
			&member.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan team member row", zap.Error(err))
			return nil, fmt.Errorf("scan team member row: %w", err)
		}
		members = append(members, &member)
	}

	return members, nil
}

func (r *membershipRepository) FindActiveByCourt(ctx context.Context, courtID uuid.UUID) ([]*entity.Membership, error) {
	query := `
		SELECT ` + membershipColumns + `
		FROM memberships
		WHERE court_id = $1 AND status = 'active'
		ORDER BY start_date
	`

	return r.queryMemberships(ctx, query, courtID)
}

func (r *membershipRepository) FindActiveCoveringDate(ctx context.Context, date time.Time) ([]*entity.Membership, error) {
	query := `
		SELECT ` + membershipColumns + `
		FROM memberships
		WHERE status = 'active' AND start_date <= $1 AND current_end_date >= $1
		ORDER BY start_date
	`

	return r.queryMemberships(ctx, query, entity.Day(date))
}

func (r *membershipRepository) queryMemberships(ctx context.Context, query string, args ...any) ([]*entity.Membership, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query memberships", zap.Error(err))
		return nil, fmt.Errorf("query memberships: %w", err)
	}
	defer rows.Close()

	var memberships []*entity.Membership
	for rows.Next() {
		membership, err := scanMembership(rows)
		if err != nil {
			r.log.Error("Failed to scan membership row", zap.Error(err))
			return nil, fmt.Errorf("scan membership row: %w", err)
		}
		memberships = append(memberships, membership)
	}

	return memberships, nil
}

func (r *membershipRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.MembershipStatus) error {
	query := `UPDATE memberships SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update membership status",
			zap.Error(err),
			zap.String("membership_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update membership %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("membership %s not found", id.String())
	}

	return nil
}

func (r *membershipRepository) Renew(ctx context.Context, id uuid.UUID, start, end time.Time) error {
	query := `
		UPDATE memberships
		SET start_date = $2, current_end_date = $3, status = 'active', updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, entity.Day(start), entity.Day(end))
	if err != nil {
		r.log.Error("Failed to renew membership",
			zap.Error(err),
			zap.String("membership_id", id.String()),
		)
		return fmt.Errorf("renew membership %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("membership %s not found", id.String())
	}

	return nil
}

func (r *membershipRepository) ApplyExtension(ctx context.Context, membershipID uuid.UUID, newEndDate time.Time, leave *entity.LeaveRecord) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin apply extension tx: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`UPDATE memberships SET current_end_date = $2, updated_at = NOW() WHERE id = $1`,
		membershipID, entity.Day(newEndDate),
	)
	if err != nil {
		r.log.Error("Failed to extend membership end date",
			zap.Error(err),
			zap.String("membership_id", membershipID.String()),
		)
		return fmt.Errorf("extend membership %s: %w", membershipID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("membership %s not found", membershipID.String())
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO leave_records (id, membership_id, start_date, end_date, reason, kind, status,
			compensation_start, compensation_end, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		leave.ID,
		leave.MembershipID,
		leave.StartDate,
		leave.EndDate,
		leave.Reason,
		leave.Kind,
		leave.Status,
		leave.CompensationStart,
		leave.CompensationEnd,
		leave.CreatedAt,
		leave.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to record leave",
			zap.Error(err),
			zap.String("membership_id", membershipID.String()),
		)
		return fmt.Errorf("record leave for membership %s: %w", membershipID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit extension for membership %s: %w", membershipID.String(), err)
	}

	return nil
}
