package pipeline

import (
	"math"
	"time"
)

// ISODate is the layout for week-beginning and slot dates.
const ISODate = "2006-01-02"

// WeekBeginning returns the most recent Sunday on or before t as an ISO date.
// A Sunday maps to itself.
func WeekBeginning(t time.Time) string {
	return t.AddDate(0, 0, -int(t.Weekday())).Format(ISODate)
}

// RoundHours rounds to the nearest half hour, ties to even at the 0.5
// granularity. The gap filler's exact-sum correction depends on this exact
// tie behavior, so it must not be swapped for half-away rounding.
func RoundHours(hours float64) float64 {
	const precision = 0.5
	return math.RoundToEven(hours/precision) * precision
}
