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

type AccessoryRepository interface {
	Create(ctx context.Context, accessory *entity.Accessory) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Accessory, error)
	FindAll(ctx context.Context) ([]*entity.Accessory, error)
}

type accessoryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAccessoryRepository(db database.PgxIface, log *zap.Logger) AccessoryRepository {
	return &accessoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "accessory")),
	}
}

func (r *accessoryRepository) Create(ctx context.Context, accessory *entity.Accessory) error {
	query := `
		INSERT INTO accessories (id, name, unit_price, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		accessory.ID,
		accessory.Name,
		accessory.UnitPrice,
		accessory.Stock,
		accessory.CreatedAt,
		accessory.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create accessory",
			zap.Error(err),
			zap.String("name", accessory.Name),
		)
		return fmt.Errorf("create accessory %s: %w", accessory.Name, err)
	}

	return nil
}

func (r *accessoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Accessory, error) {
	query := `
		SELECT id, name, unit_price, stock, created_at, updated_at
		FROM accessories
		WHERE id = $1
	`

	var accessory entity.Accessory
	err := r.db.QueryRow(ctx, query, id).Scan(
		&accessory.ID,
		&accessory.Name,
		&accessory.UnitPrice,
		&accessory.Stock,
		&accessory.CreatedAt,
		&accessory.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find accessory by ID",
			zap.Error(err),
			zap.String("accessory_id", id.String()),
		)
		return nil, fmt.Errorf("find accessory by ID %s: %w", id.String(), err)
	}

	return &accessory, nil
}

func (r *accessoryRepository) FindAll(ctx context.Context) ([]*entity.Accessory, error) {
	query := `
		SELECT id, name, unit_price, stock, created_at, updated_at
		FROM accessories
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find accessories", zap.Error(err))
		return nil, fmt.Errorf("find all accessories: %w", err)
	}
	defer rows.Close()

	var accessories []*entity.Accessory
	for rows.Next() {
		var accessory entity.Accessory
		err := rows.Scan(
			&accessory.ID,
			&accessory.Name,
			&accessory.UnitPrice,
			&accessory.Stock,
			&accessory.CreatedAt,
			&accessory.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan accessory row", zap.Error(err))
			return nil, fmt.Errorf("scan accessory row: %w", err)
		}
		accessories = append(accessories, &accessory)
	}

	return accessories, nil
}
