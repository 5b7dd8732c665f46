package entity

// Sport carries the hourly rate table. Rate edits apply only to future
// price calculations; persisted booking totals are never recomputed.
type Sport struct {
	Base
	Name       string  `db:"name"`
	HourlyRate float64 `db:"hourly_rate"`
}
