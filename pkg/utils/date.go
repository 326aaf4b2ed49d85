package utils

import (
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the wire format of DATE values.
const DateLayout = "2006-01-02"

// StartOfDayUTC drops the clock part of t, keeping its calendar day.
func StartOfDayUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ToDate converts t to a DATE value for its calendar day.
func ToDate(t time.Time) datatypes.Date {
	return datatypes.Date(StartOfDayUTC(t))
}

// FormatDate renders a DATE value as YYYY-MM-DD.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}
