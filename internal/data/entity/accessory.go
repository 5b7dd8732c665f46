package entity

import "github.com/google/uuid"

// Accessory is rentable equipment priced per unit (rackets, shuttles, towels).
type Accessory struct {
	Base
	Name      string  `db:"name"`
	UnitPrice float64 `db:"unit_price"`
	Stock     int     `db:"stock"`
}

// BookingAccessory snapshots the unit price at booking time so later
// catalog edits do not change historical totals.
type BookingAccessory struct {
	BaseSimple
	BookingID   uuid.UUID `db:"booking_id"`
	AccessoryID uuid.UUID `db:"accessory_id"`
	Quantity    int       `db:"quantity"`
	UnitPrice   float64   `db:"unit_price"`
}
