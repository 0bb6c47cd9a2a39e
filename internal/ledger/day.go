package ledger

import "time"

// Day keys group timestamps within one local-midnight-to-midnight
// window. The same rule is used for the diary view, the finished-day
// state and the water counter; mixing local and UTC keys would split
// one wall-clock day in two.

const dayKeyLayout = "2006-01-02"

// DayKeyOf returns the calendar day key for t in t's location.
func DayKeyOf(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ShiftDay moves t by offset calendar days, keeping the clock time.
func ShiftDay(t time.Time, offset int) time.Time {
	return t.AddDate(0, 0, offset)
}

// SameDay reports whether both instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayKeyOf(a) == DayKeyOf(b)
}
