package response

import (
	"time"

	"court-booking/internal/data/entity"
)

type BookingAccessoryResponse struct {
	AccessoryID string  `json:"accessory_id"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type BookingResponse struct {
	ID            string                     `json:"id"`
	Reference     string                     `json:"reference"`
	CourtID       string                     `json:"court_id"`
	Date          string                     `json:"date"`
	StartTime     string                     `json:"start_time"`
	EndTime       string                     `json:"end_time"`
	SlotsBooked   int                        `json:"slots_booked"`
	CustomerName  string                     `json:"customer_name"`
	CustomerPhone string                     `json:"customer_phone,omitempty"`
	Accessories   []BookingAccessoryResponse `json:"accessories,omitempty"`
	TotalPrice    float64                    `json:"total_price"`
	Discount      float64                    `json:"discount"`
	AmountPaid    float64                    `json:"amount_paid"`
	Status        entity.BookingStatus       `json:"status"`
	Rescheduled   bool                       `json:"rescheduled"`
	CreatedAt     time.Time                  `json:"created_at"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	accessories := make([]BookingAccessoryResponse, 0, len(b.Accessories))
	for _, acc := range b.Accessories {
		accessories = append(accessories, BookingAccessoryResponse{
			AccessoryID: acc.AccessoryID.String(),
			Quantity:    acc.Quantity,
			UnitPrice:   acc.UnitPrice,
		})
	}

	return BookingResponse{
		ID:            b.ID.String(),
		Reference:     b.Reference,
		CourtID:       b.CourtID.String(),
		Date:          b.Date.Format(entity.DateLayout),
		StartTime:     b.Slot.StartClock(),
		EndTime:       b.Slot.EndClock(),
		SlotsBooked:   b.Units,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		Accessories:   accessories,
		TotalPrice:    b.TotalPrice,
		Discount:      b.Discount,
		AmountPaid:    b.AmountPaid,
		Status:        b.Status,
		Rescheduled:   b.Rescheduled,
		CreatedAt:     b.CreatedAt,
	}
}

type PriceResponse struct {
	DurationHours    float64 `json:"duration_hours"`
	BasePrice        float64 `json:"base_price"`
	AccessoriesTotal float64 `json:"accessories_total"`
	DiscountAmount   float64 `json:"discount_amount"`
	TotalPrice       float64 `json:"total_price"`
}

type ClashResponse struct {
	Admit          bool   `json:"admit"`
	Message        string `json:"message"`
	AvailableUnits int    `json:"available_units"`
}
