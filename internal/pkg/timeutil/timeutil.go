package timeutil

import (
	"fmt"
	"math"
	"time"
)

const dateLayout = "2006-01-02"

// MinutesBetween returns the span between two instants in whole minutes,
// rounded half away from zero.
func MinutesBetween(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Minutes()))
}

// MinutesToHours converts whole minutes to decimal hours rounded to two
// places. Rounding happens here, once, so callers must sum minutes first
// and convert at the end.
func MinutesToHours(minutes int) float64 {
	return math.Round(float64(minutes)/60*100) / 100
}

// FormatHours renders whole minutes as "8h 30m".
func FormatHours(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// FormatDateLabel renders a YYYY-MM-DD date as a short label like "Jan 2".
// The input is returned as-is when it does not parse.
func FormatDateLabel(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2")
}

// PreviousWeek returns the most recent full Monday..Sunday week before the
// week containing now, as YYYY-MM-DD bounds.
func PreviousWeek(now time.Time) (start, end string) {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := now.AddDate(0, 0, -(weekday - 1))
	prevMonday := monday.AddDate(0, 0, -7)
	prevSunday := prevMonday.AddDate(0, 0, 6)
	return prevMonday.Format(dateLayout), prevSunday.Format(dateLayout)
}
