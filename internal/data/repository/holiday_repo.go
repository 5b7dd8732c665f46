package repository

import (
	"context"
	"fmt"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type HolidayRepository interface {
	Create(ctx context.Context, holiday *entity.Holiday) error
	FindByDate(ctx context.Context, date time.Time) (*entity.Holiday, error)
	FindAll(ctx context.Context) ([]*entity.Holiday, error)
}

type holidayRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHolidayRepository(db database.PgxIface, log *zap.Logger) HolidayRepository {
	return &holidayRepository{
		db:  db,
		log: log.With(zap.String("repository", "holiday")),
	}
}

func (r *holidayRepository) Create(ctx context.Context, holiday *entity.Holiday) error {
	query := `
		INSERT INTO holidays (id, date, reason, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		holiday.ID,
		entity.Day(holiday.Date),
		holiday.Reason,
		holiday.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create holiday",
			zap.Error(err),
			zap.Time("date", holiday.Date),
		)
		return fmt.Errorf("create holiday %s: %w", holiday.Date.Format(entity.DateLayout), err)
	}

	return nil
}

func (r *holidayRepository) FindByDate(ctx context.Context, date time.Time) (*entity.Holiday, error) {
	query := `SELECT id, date, reason, created_at FROM holidays WHERE date = $1`

	var holiday entity.Holiday
	err := r.db.QueryRow(ctx, query, entity.Day(date)).Scan(
		&holiday.ID,
		&holiday.Date,
		&holiday.Reason,
		&holiday.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find holiday by date",
			zap.Error(err),
			zap.Time("date", date),
		)
		return nil, fmt.Errorf("find holiday by date %s: %w", date.Format(entity.DateLayout), err)
	}

	return &holiday, nil
}

func (r *holidayRepository) FindAll(ctx context.Context) ([]*entity.Holiday, error) {
	query := `SELECT id, date, reason, created_at FROM holidays ORDER BY date`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find holidays", zap.Error(err))
		return nil, fmt.Errorf("find all holidays: %w", err)
	}
	defer rows.Close()

	var holidays []*entity.Holiday
	for rows.Next() {
		var holiday entity.Holiday
		err := rows.Scan(
			&holiday.ID,
			&holiday.Date,
			&holiday.Reason,
			&holiday.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan holiday row", zap.Error(err))
			return nil, fmt.Errorf("scan holiday row: %w", err)
		}
		holidays = append(holidays, &holiday)
	}

	return holidays, nil
}
