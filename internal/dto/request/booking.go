package request

type BookingAccessoryRequest struct {
	AccessoryID string `json:"accessory_id" validate:"required,uuid4"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
}

type CreateBookingRequest struct {
	CourtID        string                    `json:"court_id" validate:"required,uuid4"`
	Date           string                    `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime      string                    `json:"start_time" validate:"required,datetime=15:04"`
	EndTime        string                    `json:"end_time" validate:"required,datetime=15:04"`
	SlotsBooked    int                       `json:"slots_booked" validate:"omitempty,min=1"`
	CustomerName   string                    `json:"customer_name" validate:"required,min=2"`
	CustomerPhone  string                    `json:"customer_phone" validate:"omitempty,min=6"`
	Accessories    []BookingAccessoryRequest `json:"accessories" validate:"omitempty,dive"`
	DiscountAmount float64                   `json:"discount_amount" validate:"omitempty,gte=0"`
	AmountPaid     float64                   `json:"amount_paid" validate:"omitempty,gte=0"`
}

type UpdateBookingRequest struct {
	Date           string                    `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime      string                    `json:"start_time" validate:"required,datetime=15:04"`
	EndTime        string                    `json:"end_time" validate:"required,datetime=15:04"`
	SlotsBooked    int                       `json:"slots_booked" validate:"omitempty,min=1"`
	Accessories    []BookingAccessoryRequest `json:"accessories" validate:"omitempty,dive"`
	DiscountAmount float64                   `json:"discount_amount" validate:"omitempty,gte=0"`
}

type AddPaymentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type CheckClashRequest struct {
	CourtID     string  `json:"court_id" validate:"required,uuid4"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string  `json:"end_time" validate:"required,datetime=15:04"`
	SlotsBooked int     `json:"slots_booked" validate:"omitempty,min=1"`
	BookingID   *string `json:"booking_id,omitempty" validate:"omitempty,uuid4"`
}

type CalculatePriceRequest struct {
	SportID        string                    `json:"sport_id" validate:"required,uuid4"`
	StartTime      string                    `json:"start_time" validate:"required,datetime=15:04"`
	EndTime        string                    `json:"end_time" validate:"required,datetime=15:04"`
	SlotsBooked    int                       `json:"slots_booked" validate:"omitempty,min=1"`
	Accessories    []BookingAccessoryRequest `json:"accessories" validate:"omitempty,dive"`
	DiscountAmount float64                   `json:"discount_amount" validate:"omitempty,gte=0"`
}
