package analytics

import "time"

// Chart is a ready-to-render series for the admin UI line chart: parallel
// label/value slices plus the axis captions that switch between the daily
// and hourly views.
type Chart struct {
	Labels      []string `json:"labels"`
	Series      []int    `json:"series"`
	SeriesLabel string   `json:"series_label"`
	AxisLabel   string   `json:"axis_label"`
	// Days always lists the available day buckets so the view can render
	// its day-selection chips even while an hourly drill-down is shown.
	Days []string `json:"days"`
	// SelectedDay echoes the drill-down day, empty for the full history.
	SelectedDay string `json:"selected_day,omitempty"`
}

// BuildChart assembles the chart for a flag's usage log. With no selected
// day the daily series drives the chart; with a day selected the 24-bucket
// hourly series for that day takes over and the labels switch accordingly.
// Deselecting (passing an empty selectedDay again) returns to the daily
// view; that toggle lives in the caller.
func BuildChart(timestamps []int64, selectedDay string, loc *time.Location) Chart {
	daily := Daily(timestamps, loc)

	days := make([]string, len(daily))
	for i, p := range daily {
		days[i] = p.Day
	}

	if selectedDay == "" {
		labels := days
		series := make([]int, len(daily))
		for i, p := range daily {
			series[i] = p.Count
		}
		return Chart{
			Labels:      labels,
			Series:      series,
			SeriesLabel: "Usage per day",
			AxisLabel:   "Days",
			Days:        days,
		}
	}

	hourly := Hourly(timestamps, selectedDay, loc)
	labels := make([]string, len(hourly))
	series := make([]int, len(hourly))
	for i, p := range hourly {
		labels[i] = p.Hour
		series[i] = p.Count
	}
	return Chart{
		Labels:      labels,
		Series:      series,
		SeriesLabel: "Usage per hour",
		AxisLabel:   "Hours of day",
		Days:        days,
		SelectedDay: selectedDay,
	}
}
