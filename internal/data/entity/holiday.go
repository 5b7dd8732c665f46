package entity

import "time"

// Holiday is a facility-wide closure date. Every membership whose window
// would have operated that day is entitled to one compensation day.
// Deleting a holiday does not retract compensation already applied.
type Holiday struct {
	BaseSimple
	Date   time.Time `db:"date"`
	Reason string    `db:"reason"`
}
