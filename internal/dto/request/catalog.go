package request

type CreateSportRequest struct {
	Name       string  `json:"name" validate:"required,min=2"`
	HourlyRate float64 `json:"hourly_rate" validate:"required,gt=0"`
}

type UpdateSportRateRequest struct {
	HourlyRate float64 `json:"hourly_rate" validate:"required,gt=0"`
}

type CreateCourtRequest struct {
	SportID   string `json:"sport_id" validate:"required,uuid4"`
	Name      string `json:"name" validate:"required,min=2"`
	Capacity  int    `json:"capacity" validate:"required,min=1"`
	Exclusive bool   `json:"exclusive"`
}

type UpdateCourtStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available under_maintenance event tournament membership coaching"`
}

type CreateAccessoryRequest struct {
	Name      string  `json:"name" validate:"required,min=2"`
	UnitPrice float64 `json:"unit_price" validate:"required,gte=0"`
	Stock     int     `json:"stock" validate:"omitempty,gte=0"`
}

type CreatePackageRequest struct {
	Name           string  `json:"name" validate:"required,min=2"`
	DurationDays   int     `json:"duration_days" validate:"required,min=1"`
	PricePerPerson float64 `json:"price_per_person" validate:"required,gt=0"`
	MaxTeamSize    int     `json:"max_team_size" validate:"required,min=1"`
}
