package entity

import "time"

const DateLayout = "2006-01-02"

// Day truncates a timestamp to its UTC calendar date. All scheduling
// arithmetic operates on dates normalized this way.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

func AddDays(date time.Time, days int) time.Time {
	return Day(date).AddDate(0, 0, days)
}

// DaysBetween counts calendar days from a to b; inclusive ranges add 1.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)) / (24 * time.Hour))
}

func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// DateWithin reports start <= date <= end, inclusive on both ends.
func DateWithin(date, start, end time.Time) bool {
	d := Day(date)
	return !d.Before(Day(start)) && !d.After(Day(end))
}
