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

type SportRepository interface {
	Create(ctx context.Context, sport *entity.Sport) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Sport, error)
	FindAll(ctx context.Context) ([]*entity.Sport, error)
	UpdateRate(ctx context.Context, id uuid.UUID, hourlyRate float64) error
}

type sportRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSportRepository(db database.PgxIface, log *zap.Logger) SportRepository {
	return &sportRepository{
		db:  db,
		log: log.With(zap.String("repository", "sport")),
	}
}

func (r *sportRepository) Create(ctx context.Context, sport *entity.Sport) error {
	query := `
		INSERT INTO sports (id, name, hourly_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		sport.ID,
		sport.Name,
		sport.HourlyRate,
		sport.CreatedAt,
		sport.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create sport",
			zap.Error(err),
			zap.String("name", sport.Name),
		)
		return fmt.Errorf("create sport %s: %w", sport.Name, err)
	}

	return nil
}

func (r *sportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Sport, error) {
	query := `
		SELECT id, name, hourly_rate, created_at, updated_at
		FROM sports
		WHERE id = $1
	`

	var sport entity.Sport
	err := r.db.QueryRow(ctx, query, id).Scan(
		&sport.ID,
		&sport.Name,
		&sport.HourlyRate,
		&sport.CreatedAt,
		&sport.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find sport by ID",
			zap.Error(err),
			zap.String("sport_id", id.String()),
		)
		return nil, fmt.Errorf("find sport by ID %s: %w", id.String(), err)
	}

	return &sport, nil
}

func (r *sportRepository) FindAll(ctx context.Context) ([]*entity.Sport, error) {
	query := `
		SELECT id, name, hourly_rate, created_at, updated_at
		FROM sports
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find sports", zap.Error(err))
		return nil, fmt.Errorf("find all sports: %w", err)
	}
	defer rows.Close()

	var sports []*entity.Sport
	for rows.Next() {
		var sport entity.Sport
		err := rows.Scan(
			&sport.ID,
			&sport.Name,
			&sport.HourlyRate,
			&sport.CreatedAt,
			&sport.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan sport row", zap.Error(err))
			return nil, fmt.Errorf("scan sport row: %w", err)
		}
		sports = append(sports, &sport)
	}

	return sports, nil
}

func (r *sportRepository) UpdateRate(ctx context.Context, id uuid.UUID, hourlyRate float64) error {
	query := `UPDATE sports SET hourly_rate = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, hourlyRate)
	if err != nil {
		r.log.Error("Failed to update sport rate",
			zap.Error(err),
			zap.String("sport_id", id.String()),
			zap.Float64("hourly_rate", hourlyRate),
		)
		return fmt.Errorf("update sport %s rate: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("sport %s not found", id.String())
	}

	return nil
}
