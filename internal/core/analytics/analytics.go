// Package analytics turns a flag's flat usage-timestamp log into the
// day-bucketed and hour-bucketed series rendered by the admin chart.
// All operations are pure and total: any slice of Unix-second timestamps
// produces a well-formed series.
package analytics

import (
	"fmt"
	"sort"
	"time"
)

// DayKeyLayout is the calendar-day bucket key format.
const DayKeyLayout = "02/01/2006"

// DailyPoint is one day bucket: a DD/MM/YYYY key and how many usage
// timestamps fell on that local calendar date.
type DailyPoint struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// HourlyPoint is one hour bucket within a single day.
type HourlyPoint struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

// Daily buckets timestamps by local calendar date in loc and returns one
// point per distinct day, sorted by actual calendar date ascending. The day
// keys are parsed back for the comparison rather than compared as strings:
// lexical order on DD/MM/YYYY misorders across months and years.
func Daily(timestamps []int64, loc *time.Location) []DailyPoint {
	if loc == nil {
		loc = time.Local
	}

	counts := make(map[string]int)
	for _, ts := range timestamps {
		key := time.Unix(ts, 0).In(loc).Format(DayKeyLayout)
		counts[key]++
	}

	points := make([]DailyPoint, 0, len(counts))
	for day, count := range counts {
		points = append(points, DailyPoint{Day: day, Count: count})
	}

	sort.Slice(points, func(i, j int) bool {
		a, _ := time.ParseInLocation(DayKeyLayout, points[i].Day, loc)
		b, _ := time.ParseInLocation(DayKeyLayout, points[j].Day, loc)
		return a.Before(b)
	})

	return points
}

// Hourly buckets the timestamps that fall on dayKey (local date in loc) by
// hour of day. The result always holds exactly 24 entries, "00:00" through
// "23:00" in order, with zero counts for empty hours; timestamps on other
// days are ignored.
func Hourly(timestamps []int64, dayKey string, loc *time.Location) []HourlyPoint {
	if loc == nil {
		loc = time.Local
	}

	points := make([]HourlyPoint, 24)
	for h := range points {
		points[h] = HourlyPoint{Hour: fmt.Sprintf("%02d:00", h)}
	}

	for _, ts := range timestamps {
		t := time.Unix(ts, 0).In(loc)
		if t.Format(DayKeyLayout) != dayKey {
			continue
		}
		points[t.Hour()].Count++
	}

	return points
}
