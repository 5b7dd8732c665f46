package usecase

import (
	"context"
	"fmt"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/internal/dto/request"
	"court-booking/internal/dto/response"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	cacheKeySports      = "sports"
	cacheKeyCourts      = "courts"
	cacheKeyAccessories = "accessories"
	cacheKeyPackages    = "packages"
)

type CatalogService interface {
	CreateSport(ctx context.Context, req *request.CreateSportRequest) (*response.SportResponse, error)
	ListSports(ctx context.Context) ([]response.SportResponse, error)
	UpdateSportRate(ctx context.Context, sportID string, req *request.UpdateSportRateRequest) error

	CreateCourt(ctx context.Context, req *request.CreateCourtRequest) (*response.CourtResponse, error)
	ListCourts(ctx context.Context) ([]response.CourtResponse, error)
	GetCourtByID(ctx context.Context, courtID string) (*response.CourtResponse, error)
	UpdateCourtStatus(ctx context.Context, courtID string, req *request.UpdateCourtStatusRequest) error

	CreateAccessory(ctx context.Context, req *request.CreateAccessoryRequest) (*response.AccessoryResponse, error)
	ListAccessories(ctx context.Context) ([]response.AccessoryResponse, error)

	CreatePackage(ctx context.Context, req *request.CreatePackageRequest) (*response.PackageResponse, error)
	ListPackages(ctx context.Context) ([]response.PackageResponse, error)
}

// catalogService fronts the catalog reads with a short-TTL cache. The
// catalog changes rarely while list endpoints back every booking form.
type catalogService struct {
	repo  *repository.Repository
	cache *gocache.Cache
	log   *zap.Logger
}

func NewCatalogService(repo *repository.Repository, ttl time.Duration, log *zap.Logger) CatalogService {
	return &catalogService{
		repo:  repo,
		cache: gocache.New(ttl, 2*ttl),
		log:   log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) CreateSport(ctx context.Context, req *request.CreateSportRequest) (*response.SportResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	sport := &entity.Sport{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:       req.Name,
		HourlyRate: req.HourlyRate,
	}

	if err := s.repo.Sport.Create(ctx, sport); err != nil {
		s.log.Error("Failed to create sport", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create sport: %w", err)
	}
	s.cache.Delete(cacheKeySports)

	s.log.Info("Sport created",
		zap.String("sport_id", sport.ID.String()),
		zap.String("name", req.Name),
		zap.Float64("hourly_rate", req.HourlyRate),
	)

	resp := response.SportToResponse(sport)
	return &resp, nil
}

func (s *catalogService) ListSports(ctx context.Context) ([]response.SportResponse, error) {
	if cached, ok := s.cache.Get(cacheKeySports); ok {
		return cached.([]response.SportResponse), nil
	}

	sports, err := s.repo.Sport.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sports: %w", err)
	}

	resp := make([]response.SportResponse, 0, len(sports))
	for _, sport := range sports {
		resp = append(resp, response.SportToResponse(sport))
	}
	s.cache.SetDefault(cacheKeySports, resp)

	return resp, nil
}

func (s *catalogService) UpdateSportRate(ctx context.Context, sportID string, req *request.UpdateSportRateRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(sportID)
	if err != nil {
		return fmt.Errorf("invalid sport ID %s: %w", sportID, ErrValidation)
	}

	sport, err := s.repo.Sport.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("update sport rate: %w", err)
	}
	if sport == nil {
		return fmt.Errorf("sport %s: %w", sportID, ErrNotFound)
	}

	// New rate applies to future quotes only; stored bookings keep the
	// price they were quoted at.
	if err := s.repo.Sport.UpdateRate(ctx, id, req.HourlyRate); err != nil {
		s.log.Error("Failed to update sport rate", zap.Error(err), zap.String("sport_id", sportID))
		return fmt.Errorf("update sport %s rate: %w", sportID, err)
	}
	s.cache.Delete(cacheKeySports)

	s.log.Info("Sport rate updated",
		zap.String("sport_id", sportID),
		zap.Float64("hourly_rate", req.HourlyRate),
	)

	return nil
}

func (s *catalogService) CreateCourt(ctx context.Context, req *request.CreateCourtRequest) (*response.CourtResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	sportID, err := uuid.Parse(req.SportID)
	if err != nil {
		return nil, fmt.Errorf("invalid sport ID %s: %w", req.SportID, ErrValidation)
	}

	sport, err := s.repo.Sport.FindByID(ctx, sportID)
	if err != nil {
		return nil, fmt.Errorf("create court: %w", err)
	}
	if sport == nil {
		return nil, fmt.Errorf("sport %s: %w", req.SportID, ErrNotFound)
	}

	now := time.Now()
	court := &entity.Court{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		SportID:   sportID,
		Name:      req.Name,
		Capacity:  req.Capacity,
		Status:    entity.CourtStatusAvailable,
		Exclusive: req.Exclusive,
	}

	if err := s.repo.Court.Create(ctx, court); err != nil {
		s.log.Error("Failed to create court", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create court: %w", err)
	}
	s.cache.Delete(cacheKeyCourts)

	s.log.Info("Court created",
		zap.String("court_id", court.ID.String()),
		zap.String("name", req.Name),
		zap.Int("capacity", req.Capacity),
	)

	resp := response.CourtToResponse(court)
	return &resp, nil
}

func (s *catalogService) ListCourts(ctx context.Context) ([]response.CourtResponse, error) {
	if cached, ok := s.cache.Get(cacheKeyCourts); ok {
		return cached.([]response.CourtResponse), nil
	}

	courts, err := s.repo.Court.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}

	resp := make([]response.CourtResponse, 0, len(courts))
	for _, court := range courts {
		resp = append(resp, response.CourtToResponse(court))
	}
	s.cache.SetDefault(cacheKeyCourts, resp)

	return resp, nil
}

func (s *catalogService) GetCourtByID(ctx context.Context, courtID string) (*response.CourtResponse, error) {
	id, err := uuid.Parse(courtID)
	if err != nil {
		return nil, fmt.Errorf("invalid court ID %s: %w", courtID, ErrValidation)
	}

	court, err := s.repo.Court.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get court: %w", err)
	}
	if court == nil {
		return nil, fmt.Errorf("court %s: %w", courtID, ErrNotFound)
	}

	resp := response.CourtToResponse(court)
	return &resp, nil
}

func (s *catalogService) UpdateCourtStatus(ctx context.Context, courtID string, req *request.UpdateCourtStatusRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(courtID)
	if err != nil {
		return fmt.Errorf("invalid court ID %s: %w", courtID, ErrValidation)
	}

	court, err := s.repo.Court.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("update court status: %w", err)
	}
	if court == nil {
		return fmt.Errorf("court %s: %w", courtID, ErrNotFound)
	}

	// Existing confirmed bookings survive a status change; the gate
	// applies to new admissions only.
	if err := s.repo.Court.UpdateStatus(ctx, id, entity.CourtStatus(req.Status)); err != nil {
		s.log.Error("Failed to update court status", zap.Error(err), zap.String("court_id", courtID))
		return fmt.Errorf("update court %s status: %w", courtID, err)
	}
	s.cache.Delete(cacheKeyCourts)

	s.log.Info("Court status updated",
		zap.String("court_id", courtID),
		zap.String("status", req.Status),
	)

	return nil
}

func (s *catalogService) CreateAccessory(ctx context.Context, req *request.CreateAccessoryRequest) (*response.AccessoryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	accessory := &entity.Accessory{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Stock:     req.Stock,
	}

	if err := s.repo.Accessory.Create(ctx, accessory); err != nil {
		s.log.Error("Failed to create accessory", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create accessory: %w", err)
	}
	s.cache.Delete(cacheKeyAccessories)

	s.log.Info("Accessory created",
		zap.String("accessory_id", accessory.ID.String()),
		zap.String("name", req.Name),
	)

	resp := response.AccessoryToResponse(accessory)
	return &resp, nil
}

func (s *catalogService) ListAccessories(ctx context.Context) ([]response.AccessoryResponse, error) {
	if cached, ok := s.cache.Get(cacheKeyAccessories); ok {
		return cached.([]response.AccessoryResponse), nil
	}

	accessories, err := s.repo.Accessory.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accessories: %w", err)
	}

	resp := make([]response.AccessoryResponse, 0, len(accessories))
	for _, a := range accessories {
		resp = append(resp, response.AccessoryToResponse(a))
	}
	s.cache.SetDefault(cacheKeyAccessories, resp)

	return resp, nil
}

func (s *catalogService) CreatePackage(ctx context.Context, req *request.CreatePackageRequest) (*response.PackageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	pkg := &entity.MembershipPackage{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:           req.Name,
		DurationDays:   req.DurationDays,
		PricePerPerson: req.PricePerPerson,
		MaxTeamSize:    req.MaxTeamSize,
	}

	if err := s.repo.Package.Create(ctx, pkg); err != nil {
		s.log.Error("Failed to create package", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create package: %w", err)
	}
	s.cache.Delete(cacheKeyPackages)

	s.log.Info("Package created",
		zap.String("package_id", pkg.ID.String()),
		zap.String("name", req.Name),
		zap.Int("duration_days", req.DurationDays),
	)

	resp := response.PackageToResponse(pkg)
	return &resp, nil
}

func (s *catalogService) ListPackages(ctx context.Context) ([]response.PackageResponse, error) {
	if cached, ok := s.cache.Get(cacheKeyPackages); ok {
		return cached.([]response.PackageResponse), nil
	}

	packages, err := s.repo.Package.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}

	resp := make([]response.PackageResponse, 0, len(packages))
	for _, p := range packages {
		resp = append(resp, response.PackageToResponse(p))
	}
	s.cache.SetDefault(cacheKeyPackages, resp)

	return resp, nil
}
