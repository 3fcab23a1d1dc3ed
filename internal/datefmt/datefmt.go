// Package datefmt renders post dates for display. All output is computed on
// the post's calendar day pinned to 12:00 UTC, so the host time zone never
// shifts a date onto the neighbouring day.
package datefmt

import (
	"strconv"
	"time"

	"ylwblog/internal/domain/content"
)

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var monthAbbrs = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sept", "Oct", "Nov", "Dec",
}

// MonthName returns the full English month name for a zero-based index.
func MonthName(i int) string {
	if i < 0 || i > 11 {
		return ""
	}
	return monthNames[i]
}

// MonthAbbr returns the short month label for a zero-based index.
func MonthAbbr(i int) string {
	if i < 0 || i > 11 {
		return ""
	}
	return monthAbbrs[i]
}

// OrdinalSuffix follows the blog's long-standing table: 11, 12 and 13 get
// "th" like every other day outside {1,2,3,21,22,23,31}.
func OrdinalSuffix(day int) string {
	switch day {
	case 1, 21, 31:
		return "st"
	case 2, 22:
		return "nd"
	case 3, 23:
		return "rd"
	default:
		return "th"
	}
}

func Ordinal(day int) string {
	return strconv.Itoa(day) + OrdinalSuffix(day)
}

// NoonUTC keeps the calendar day of t as written and moves it to 12:00 UTC.
func NoonUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// Long renders "March 1, 2023".
func Long(t time.Time) string {
	n := NoonUTC(t)
	return MonthName(int(n.Month())-1) + " " + strconv.Itoa(n.Day()) + ", " + strconv.Itoa(n.Year())
}

// OrdinalLong renders "1st, March, 2023".
func OrdinalLong(t time.Time) string {
	n := NoonUTC(t)
	return Ordinal(n.Day()) + ", " + MonthName(int(n.Month())-1) + ", " + strconv.Itoa(n.Year())
}

// Format builds every display shape of a post date. The calendar fields come
// from the noon-UTC day; Timestamp keeps the instant itself so posts from the
// same day still sort by time.
func Format(t time.Time) content.PostDate {
	n := NoonUTC(t)
	month := int(n.Month()) - 1
	return content.PostDate{
		Year:      n.Year(),
		Month:     month,
		MonthAbbr: MonthAbbr(month),
		Day:       n.Day(),
		Timestamp: t.UnixMilli(),
		Long:      Long(n),
		Ordinal:   OrdinalLong(n),
	}
}
