package analytics

import (
	"fmt"
	"testing"
	"time"
)

func unix(t *testing.T, year int, month time.Month, day, hour, min int) int64 {
	t.Helper()
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC).Unix()
}

func TestDaily_Empty(t *testing.T) {
	points := Daily(nil, time.UTC)
	if len(points) != 0 {
		t.Fatalf("expected empty series, got %d points", len(points))
	}
}

func TestDaily_SingleDayAccumulates(t *testing.T) {
	timestamps := []int64{
		unix(t, 2023, time.December, 25, 0, 1),
		unix(t, 2023, time.December, 25, 9, 30),
		unix(t, 2023, time.December, 25, 9, 30), // duplicates count too
		unix(t, 2023, time.December, 25, 23, 59),
	}

	points := Daily(timestamps, time.UTC)
	if len(points) != 1 {
		t.Fatalf("expected one day bucket, got %d", len(points))
	}
	if points[0].Day != "25/12/2023" {
		t.Fatalf("unexpected day key: %s", points[0].Day)
	}
	if points[0].Count != len(timestamps) {
		t.Fatalf("expected count %d, got %d", len(timestamps), points[0].Count)
	}
}

func TestDaily_SortsByCalendarDateNotLexically(t *testing.T) {
	// Inserted out of order, and chosen so lexical order on DD/MM/YYYY
	// would put 01/01/2024 first.
	timestamps := []int64{
		unix(t, 2023, time.December, 25, 12, 0),
		unix(t, 2024, time.January, 1, 12, 0),
		unix(t, 2023, time.December, 31, 12, 0),
	}

	points := Daily(timestamps, time.UTC)
	want := []string{"25/12/2023", "31/12/2023", "01/01/2024"}
	if len(points) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(points))
	}
	for i, day := range want {
		if points[i].Day != day {
			t.Fatalf("position %d: expected %s, got %s", i, day, points[i].Day)
		}
	}
}

func TestHourly_AlwaysTwentyFourBuckets(t *testing.T) {
	for _, timestamps := range [][]int64{
		nil,
		{unix(t, 2023, time.December, 25, 14, 0)},
	} {
		points := Hourly(timestamps, "01/01/2020", time.UTC)
		if len(points) != 24 {
			t.Fatalf("expected 24 buckets, got %d", len(points))
		}
		for h, p := range points {
			want := fmt.Sprintf("%02d:00", h)
			if p.Hour != want {
				t.Fatalf("bucket %d: expected key %s, got %s", h, want, p.Hour)
			}
			if p.Count != 0 {
				t.Fatalf("bucket %s: expected zero count for unmatched day, got %d", p.Hour, p.Count)
			}
		}
	}
}

func TestHourly_CountsOnlySelectedDay(t *testing.T) {
	timestamps := []int64{
		unix(t, 2023, time.December, 25, 9, 15),
		unix(t, 2023, time.December, 25, 9, 45),
		unix(t, 2023, time.December, 25, 17, 0),
		unix(t, 2023, time.December, 26, 9, 0), // other day, ignored
	}

	points := Hourly(timestamps, "25/12/2023", time.UTC)
	if points[9].Count != 2 {
		t.Fatalf("expected 2 uses at 09:00, got %d", points[9].Count)
	}
	if points[17].Count != 1 {
		t.Fatalf("expected 1 use at 17:00, got %d", points[17].Count)
	}

	total := 0
	for _, p := range points {
		total += p.Count
	}
	if total != 3 {
		t.Fatalf("expected 3 matched timestamps, got %d", total)
	}
}

func TestHourly_SumMatchesDailyBucket(t *testing.T) {
	timestamps := []int64{
		unix(t, 2023, time.November, 14, 0, 0),
		unix(t, 2023, time.November, 14, 8, 10),
		unix(t, 2023, time.November, 14, 8, 50),
		unix(t, 2023, time.November, 14, 23, 59),
		unix(t, 2023, time.November, 15, 3, 0),
		unix(t, 2023, time.December, 1, 12, 0),
	}

	for _, day := range Daily(timestamps, time.UTC) {
		sum := 0
		for _, p := range Hourly(timestamps, day.Day, time.UTC) {
			sum += p.Count
		}
		if sum != day.Count {
			t.Fatalf("day %s: hourly sum %d != daily count %d", day.Day, sum, day.Count)
		}
	}
}

func TestBuildChart_SelectionSwitchesSeries(t *testing.T) {
	timestamps := []int64{
		unix(t, 2023, time.December, 25, 9, 0),
		unix(t, 2023, time.December, 25, 9, 30),
		unix(t, 2023, time.December, 26, 10, 0),
	}

	chart := BuildChart(timestamps, "", time.UTC)
	if chart.SeriesLabel != "Usage per day" {
		t.Fatalf("expected daily series, got %q", chart.SeriesLabel)
	}
	if len(chart.Labels) != 2 || chart.Labels[0] != "25/12/2023" {
		t.Fatalf("unexpected daily labels: %v", chart.Labels)
	}
	if chart.Series[0] != 2 || chart.Series[1] != 1 {
		t.Fatalf("unexpected daily series: %v", chart.Series)
	}

	drill := BuildChart(timestamps, "25/12/2023", time.UTC)
	if drill.SeriesLabel != "Usage per hour" {
		t.Fatalf("expected hourly series, got %q", drill.SeriesLabel)
	}
	if len(drill.Labels) != 24 {
		t.Fatalf("expected 24 hourly labels, got %d", len(drill.Labels))
	}
	if drill.Series[9] != 2 {
		t.Fatalf("expected 2 uses at 09:00, got %d", drill.Series[9])
	}
	// Day chips stay available during the drill-down.
	if len(drill.Days) != 2 {
		t.Fatalf("expected day list to survive drill-down, got %v", drill.Days)
	}
	if drill.SelectedDay != "25/12/2023" {
		t.Fatalf("expected selected day echoed, got %q", drill.SelectedDay)
	}
}
