package response

import (
	"time"

	"court-booking/internal/data/entity"
)

type SportResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	HourlyRate float64   `json:"hourly_rate"`
	CreatedAt  time.Time `json:"created_at"`
}

func SportToResponse(s *entity.Sport) SportResponse {
	return SportResponse{
		ID:         s.ID.String(),
		Name:       s.Name,
		HourlyRate: s.HourlyRate,
		CreatedAt:  s.CreatedAt,
	}
}

type CourtResponse struct {
	ID        string    `json:"id"`
	SportID   string    `json:"sport_id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	Status    string    `json:"status"`
	Exclusive bool      `json:"exclusive"`
	CreatedAt time.Time `json:"created_at"`
}

func CourtToResponse(c *entity.Court) CourtResponse {
	return CourtResponse{
		ID:        c.ID.String(),
		SportID:   c.SportID.String(),
		Name:      c.Name,
		Capacity:  c.Capacity,
		Status:    string(c.Status),
		Exclusive: c.Exclusive,
		CreatedAt: c.CreatedAt,
	}
}

type AccessoryResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Stock     int     `json:"stock"`
}

func AccessoryToResponse(a *entity.Accessory) AccessoryResponse {
	return AccessoryResponse{
		ID:        a.ID.String(),
		Name:      a.Name,
		UnitPrice: a.UnitPrice,
		Stock:     a.Stock,
	}
}

type PackageResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	DurationDays   int     `json:"duration_days"`
	PricePerPerson float64 `json:"price_per_person"`
	MaxTeamSize    int     `json:"max_team_size"`
}

func PackageToResponse(p *entity.MembershipPackage) PackageResponse {
	return PackageResponse{
		ID:             p.ID.String(),
		Name:           p.Name,
		DurationDays:   p.DurationDays,
		PricePerPerson: p.PricePerPerson,
		MaxTeamSize:    p.MaxTeamSize,
	}
}
