package usecase

import (
	"time"

	"court-booking/internal/data/repository"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

// Service bundles the use cases behind one dependency for the HTTP
// layer. All court-mutating services share a single lock registry so
// that admission decisions for the same court serialize.
type Service struct {
	Clash      ClashService
	Pricing    PricingService
	Booking    BookingService
	Heatmap    HeatmapService
	Membership MembershipService
	Ledger     LedgerService
	Catalog    CatalogService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) (*Service, error) {
	locks := newCourtLocks()

	clash := NewClashService(repo, log)
	pricing := NewPricingService(repo, log)

	heatmap, err := NewHeatmapService(repo, clash, config.Facility, log)
	if err != nil {
		return nil, err
	}

	return &Service{
		Clash:      clash,
		Pricing:    pricing,
		Booking:    NewBookingService(repo, clash, pricing, locks, log),
		Heatmap:    heatmap,
		Membership: NewMembershipService(repo, clash, locks, log),
		Ledger:     NewLedgerService(repo, log),
		Catalog:    NewCatalogService(repo, time.Duration(config.Cache.CatalogTTLSeconds)*time.Second, log),
	}, nil
}
