package repository

import (
	"context"
	"fmt"

	"court-booking/internal/data/entity"
	"court-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CourtRepository interface {
	Create(ctx context.Context, court *entity.Court) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Court, error)
	FindAll(ctx context.Context) ([]*entity.Court, error)
	Update(ctx context.Context, court *entity.Court) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.CourtStatus) error
}

type courtRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCourtRepository(db database.PgxIface, log *zap.Logger) CourtRepository {
	return &courtRepository{
		db:  db,
		log: log.With(zap.String("repository", "court")),
	}
}

func (r *courtRepository) Create(ctx context.Context, court *entity.Court) error {
	query := `
		INSERT INTO courts (id, sport_id, name, capacity, status, exclusive, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		court.ID,
		court.SportID,
		court.Name,
		court.Capacity,
		court.Status,
		court.Exclusive,
		court.CreatedAt,
		court.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create court",
			zap.Error(err),
			zap.String("name", court.Name),
		)
		return fmt.Errorf("create court %s: %w", court.Name, err)
	}

	return nil
}

func (r *courtRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Court, error) {
	query := `
		SELECT id, sport_id, name, capacity, status, exclusive, created_at, updated_at
		FROM courts
		WHERE id = $1
	`

	var court entity.Court
	err := r.db.QueryRow(ctx, query, id).Scan(
		&court.ID,
		&court.SportID,
		&court.Name,
		&court.Capacity,
		&court.Status,
		&court.Exclusive,
		&court.CreatedAt,
		&court.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find court by ID",
			zap.Error(err),
			zap.String("court_id", id.String()),
		)
		return nil, fmt.Errorf("find court by ID %s: %w", id.String(), err)
	}

	return &court, nil
}

func (r *courtRepository) FindAll(ctx context.Context) ([]*entity.Court, error) {
	query := `
		SELECT id, sport_id, name, capacity, status, exclusive, created_at, updated_at
		FROM courts
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find courts", zap.Error(err))
		return nil, fmt.Errorf("find all courts: %w", err)
	}
	defer rows.Close()

	var courts []*entity.Court
	for rows.Next() {
		var court entity.Court
		err := rows.Scan(
			&court.ID,
			&court.SportID,
			&court.Name,
			&court.Capacity,
			&court.Status,
			&court.Exclusive,
			&court.CreatedAt,
			&court.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan court row", zap.Error(err))
			return nil, fmt.Errorf("scan court row: %w", err)
		}
		courts = append(courts, &court)
	}

	return courts, nil
}

func (r *courtRepository) Update(ctx context.Context, court *entity.Court) error {
	query := `
		UPDATE courts
		SET sport_id = $2, name = $3, capacity = $4, status = $5, exclusive = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		court.ID,
		court.SportID,
		court.Name,
		court.Capacity,
		court.Status,
		court.Exclusive,
		court.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update court",
			zap.Error(err),
			zap.String("court_id", court.ID.String()),
		)
		return fmt.Errorf("update court %s: %w", court.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("court %s not found", court.ID.String())
	}

	return nil
}

func (r *courtRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.CourtStatus) error {
	query := `UPDATE courts SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update court status",
			zap.Error(err),
			zap.String("court_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update court %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("court %s not found", id.String())
	}

	return nil
}
