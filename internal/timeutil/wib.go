// Package timeutil pins every date computation to store-local time.
// Sales timestamps, lookback windows and "today" all live in WIB
// (Asia/Jakarta, UTC+7); comparing date strings across zones is how
// off-by-one-day bugs happen.
package timeutil

import "time"

// WIB is the store-local timezone, a fixed UTC+7 offset.
var WIB = time.FixedZone("WIB", 7*60*60)

const dateLayout = "2006-01-02"

// NowWIB returns the current time in store-local time.
func NowWIB() time.Time {
	return time.Now().In(WIB)
}

// ToWIB converts t to store-local time.
func ToWIB(t time.Time) time.Time {
	return t.In(WIB)
}

// DateKey formats t as a YYYY-MM-DD string in store-local time.
// All map lookups keyed by day use this form.
func DateKey(t time.Time) string {
	return t.In(WIB).Format(dateLayout)
}

// ParseDate parses a YYYY-MM-DD string as a store-local midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, WIB)
}

// Midnight truncates t to store-local midnight.
func Midnight(t time.Time) time.Time {
	l := t.In(WIB)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, WIB)
}
