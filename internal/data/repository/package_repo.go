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

type PackageRepository interface {
	Create(ctx context.Context, pkg *entity.MembershipPackage) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.MembershipPackage, error)
	FindAll(ctx context.Context) ([]*entity.MembershipPackage, error)
}

type packageRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPackageRepository(db database.PgxIface, log *zap.Logger) PackageRepository {
	return &packageRepository{
		db:  db,
		log: log.With(zap.String("repository", "package")),
	}
}

func (r *packageRepository) Create(ctx context.Context, pkg *entity.MembershipPackage) error {
	query := `
		INSERT INTO membership_packages (id, name, duration_days, price_per_person, max_team_size, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		pkg.ID,
		pkg.Name,
		pkg.DurationDays,
		pkg.PricePerPerson,
		pkg.MaxTeamSize,
		pkg.CreatedAt,
		pkg.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create membership package",
			zap.Error(err),
			zap.String("name", pkg.Name),
		)
		return fmt.Errorf("create membership package %s: %w", pkg.Name, err)
	}

	return nil
}

func (r *packageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MembershipPackage, error) {
	query := `
		SELECT id, name, duration_days, price_per_person, max_team_size, created_at, updated_at
		FROM membership_packages
		WHERE id = $1
	`

	var pkg entity.MembershipPackage
	err := r.db.QueryRow(ctx, query, id).Scan(
		&pkg.ID,
		&pkg.Name,
		&pkg.DurationDays,
		&pkg.PricePerPerson,
		&pkg.MaxTeamSize,
		&pkg.CreatedAt,
		&pkg.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find membership package by ID",
			zap.Error(err),
			zap.String("package_id", id.String()),
		)
		return nil, fmt.Errorf("find membership package by ID %s: %w", id.String(), err)
	}

	return &pkg, nil
}

func (r *packageRepository) FindAll(ctx context.Context) ([]*entity.MembershipPackage, error) {
	query := `
		SELECT id, name, duration_days, price_per_person, max_team_size, created_at, updated_at
		FROM membership_packages
		ORDER BY duration_days
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find membership packages", zap.Error(err))
		return nil, fmt.Errorf("find all membership packages: %w", err)
	}
	defer rows.Close()

	var packages []*entity.MembershipPackage
	for rows.Next() {
		var pkg entity.MembershipPackage
		err := rows.Scan(
			&pkg.ID,
			&pkg.Name,
			&pkg.DurationDays,
			&pkg.PricePerPerson,
			&pkg.MaxTeamSize,
			&pkg.CreatedAt,
			&pkg.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan membership package row", zap.Error(err))
			return nil, fmt.Errorf("scan membership package row: %w", err)
		}
		packages = append(packages, &pkg)
	}

	return packages, nil
}
