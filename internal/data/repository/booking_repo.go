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

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByReference(ctx context.Context, reference string) (*entity.Booking, error)
	Update(ctx context.Context, booking *entity.Booking) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error
	AddPayment(ctx context.Context, id uuid.UUID, amount float64) error

	// Scheduling queries
	FindConfirmedByCourtDate(ctx context.Context, courtID uuid.UUID, date time.Time) ([]*entity.Booking, error)
	FindByCourtDate(ctx context.Context, courtID uuid.UUID, date time.Time, limit, offset int) ([]*entity.Booking, error)
	CountByCourtDate(ctx context.Context, courtID uuid.UUID, date time.Time) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, reference, court_id, date, start_minute, end_minute, units,
	customer_name, customer_phone, total_price, discount, amount_paid, status, rescheduled,
	created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.CourtID,
		&booking.Date,
		&booking.Slot.Start,
		&booking.Slot.End,
		&booking.Units,
		&booking.CustomerName,
		&booking.CustomerPhone,
		&booking.TotalPrice,
		&booking.Discount,
		&booking.AmountPaid,
		&booking.Status,
		&booking.Rescheduled,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err = tx.Exec(ctx, query,
		booking.ID,
		booking.Reference,
		booking.CourtID,
		booking.Date,
		booking.Slot.Start,
		booking.Slot.End,
		booking.Units,
		booking.CustomerName,
		booking.CustomerPhone,
		booking.TotalPrice,
		booking.Discount,
		booking.AmountPaid,
		booking.Status,
		booking.Rescheduled,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("reference", booking.Reference),
			zap.String("court_id", booking.CourtID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.Reference, err)
	}

	accessoryQuery := `
		INSERT INTO booking_accessories (id, booking_id, accessory_id, quantity, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, acc := range booking.Accessories {
		_, err = tx.Exec(ctx, accessoryQuery,
			acc.ID,
			acc.BookingID,
			acc.AccessoryID,
			acc.Quantity,
			acc.UnitPrice,
			acc.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create booking accessory",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
			return fmt.Errorf("create booking accessory: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create booking %s: %w", booking.Reference, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	accessories, err := r.findAccessories(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	booking.Accessories = accessories

	return booking, nil
}

func (r *bookingRepository) FindByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE reference = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, reference))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by reference",
			zap.Error(err),
			zap.String("reference", reference),
		)
		return nil, fmt.Errorf("find booking by reference %s: %w", reference, err)
	}

	return booking, nil
}

func (r *bookingRepository) findAccessories(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingAccessory, error) {
	query := `
		SELECT id, booking_id, accessory_id, quantity, unit_price, created_at
		FROM booking_accessories
		WHERE booking_id = $1
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find booking accessories",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find booking accessories %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var accessories []*entity.BookingAccessory
	for rows.Next() {
		var acc entity.BookingAccessory
		err := rows.Scan(
			&acc.ID,
			&acc.BookingID,
			&acc.AccessoryID,
			&acc.Quantity,
			&acc.UnitPrice,
			&acc.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking accessory row", zap.Error(err))
			return nil, fmt.Errorf("scan booking accessory row: %w", err)
		}
		accessories = append(accessories, &acc)
	}

	return accessories, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET court_id = $2, date = $3, start_minute = $4, end_minute = $5, units = $6,
		    customer_name = $7, customer_phone = $8, total_price = $9, discount = $10,
		    amount_paid = $11, status = $12, rescheduled = $13, updated_at = $14
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.CourtID,
		booking.Date,
		booking.Slot.Start,
		booking.Slot.End,
		booking.Units,
		booking.CustomerName,
		booking.CustomerPhone,
		booking.TotalPrice,
		booking.Discount,
		booking.AmountPaid,
		booking.Status,
		booking.Rescheduled,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	return nil
}

func (r *bookingRepository) AddPayment(ctx context.Context, id uuid.UUID, amount float64) error {
	query := `UPDATE bookings SET amount_paid = amount_paid + $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, amount)
	if err != nil {
		r.log.Error("Failed to add booking payment",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.Float64("amount", amount),
		)
		return fmt.Errorf("add payment to booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	return nil
}

func (r *bookingRepository) FindConfirmedByCourtDate(ctx context.Context, courtID uuid.UUID, date time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE court_id = $1 AND date = $2 AND status = 'confirmed'
		ORDER BY start_minute
	`

	return r.queryBookings(ctx, query, courtID, entity.Day(date))
}

func (r *bookingRepository) FindByCourtDate(ctx context.Context, courtID uuid.UUID, date time.Time, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE court_id = $1 AND date = $2
		ORDER BY start_minute
		LIMIT $3 OFFSET $4
	`

	return r.queryBookings(ctx, query, courtID, entity.Day(date), limit, offset)
}

func (r *bookingRepository) CountByCourtDate(ctx context.Context, courtID uuid.UUID, date time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE court_id = $1 AND date = $2`

	var count int64
	err := r.db.QueryRow(ctx, query, courtID, entity.Day(date)).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by court and date",
			zap.Error(err),
			zap.String("court_id", courtID.String()),
		)
		return 0, fmt.Errorf("count bookings for court %s: %w", courtID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query bookings", zap.Error(err))
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}
