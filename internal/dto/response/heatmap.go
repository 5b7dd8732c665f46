package response

// Heatmap cell states.
const (
	CellAvailable        = "available"
	CellPartial          = "partial"
	CellBooked           = "booked"
	CellUnderMaintenance = "under-maintenance"
)

// BookingSummary is the tooltip projection attached to a heatmap cell.
type BookingSummary struct {
	ID           string `json:"id"`
	Reference    string `json:"reference"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	SlotsBooked  int    `json:"slots_booked"`
	CustomerName string `json:"customer_name"`
}

type HeatmapCell struct {
	StartTime      string           `json:"start_time"`
	EndTime        string           `json:"end_time"`
	State          string           `json:"state"`
	AvailableUnits int              `json:"available_units"`
	Bookings       []BookingSummary `json:"bookings,omitempty"`
}

type CourtHeatmap struct {
	CourtID   string        `json:"court_id"`
	CourtName string        `json:"court_name"`
	Capacity  int           `json:"capacity"`
	Status    string        `json:"status"`
	Cells     []HeatmapCell `json:"cells"`
}
