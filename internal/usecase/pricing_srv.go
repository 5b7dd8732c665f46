package usecase

import (
	"context"
	"fmt"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccessorySelection is one requested accessory line.
type AccessorySelection struct {
	AccessoryID uuid.UUID
	Quantity    int
}

// Quote is the price breakdown for a booking. Idempotent and
// side-effect-free; the same inputs at preview and at commit must yield
// the same total, and the committed value is authoritative.
type Quote struct {
	DurationHours    float64
	Base             float64
	AccessoriesTotal float64
	Discount         float64
	Total            float64
	// Lines carry the unit-price snapshots persisted with the booking.
	Lines []*entity.BookingAccessory
}

type PricingService interface {
	Quote(ctx context.Context, sportID uuid.UUID, slot entity.TimeSlot, units int, accessories []AccessorySelection, discount float64) (*Quote, error)
}

type pricingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPricingService(repo *repository.Repository, log *zap.Logger) PricingService {
	return &pricingService{
		repo: repo,
		log:  log.With(zap.String("service", "pricing")),
	}
}

func (s *pricingService) Quote(ctx context.Context, sportID uuid.UUID, slot entity.TimeSlot, units int, accessories []AccessorySelection, discount float64) (*Quote, error) {
	if units < 1 {
		return nil, fmt.Errorf("units must be at least 1: %w", ErrValidation)
	}

	sport, err := s.repo.Sport.FindByID(ctx, sportID)
	if err != nil {
		return nil, fmt.Errorf("quote: %w", err)
	}
	if sport == nil {
		return nil, fmt.Errorf("sport %s: %w", sportID.String(), ErrNotFound)
	}

	// Durations are not required to be whole hours.
	hours := slot.Hours()
	base := sport.HourlyRate * hours * float64(units)

	accessoriesTotal := 0.0
	lines := make([]*entity.BookingAccessory, 0, len(accessories))
	for _, sel := range accessories {
		if sel.Quantity < 1 {
			return nil, fmt.Errorf("accessory quantity must be at least 1: %w", ErrValidation)
		}
		accessory, err := s.repo.Accessory.FindByID(ctx, sel.AccessoryID)
		if err != nil {
			return nil, fmt.Errorf("quote accessory: %w", err)
		}
		if accessory == nil {
			return nil, fmt.Errorf("accessory %s: %w", sel.AccessoryID.String(), ErrNotFound)
		}
		accessoriesTotal += accessory.UnitPrice * float64(sel.Quantity)
		lines = append(lines, &entity.BookingAccessory{
			AccessoryID: accessory.ID,
			Quantity:    sel.Quantity,
			UnitPrice:   accessory.UnitPrice,
		})
	}

	if discount < 0 || discount > base+accessoriesTotal {
		return nil, fmt.Errorf("discount %.2f against %.2f: %w", discount, base+accessoriesTotal, ErrInvalidDiscount)
	}

	return &Quote{
		DurationHours:    hours,
		Base:             base,
		AccessoriesTotal: accessoriesTotal,
		Discount:         discount,
		Total:            base + accessoriesTotal - discount,
		Lines:            lines,
	}, nil
}
