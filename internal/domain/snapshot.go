package domain

// DateFormat is the calendar-date layout used to key equity snapshots.
const DateFormat = "2006-01-02"

// EquitySnapshot is one recorded (date, equity) observation. The persisted
// series holds at most one snapshot per calendar date in the reference
// timezone, in append order.
type EquitySnapshot struct {
	Date   string  // DateFormat, no time component
	Equity float64
}
