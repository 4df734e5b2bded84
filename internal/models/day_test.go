package models

import (
	"testing"
	"time"
)

func TestBuildDayWindow_Wednesday14th(t *testing.T) {
	// 2024-08-14 was a Wednesday
	anchor := time.Date(2024, time.August, 14, 9, 30, 0, 0, time.UTC)

	want := DayWindow{
		{0, "Wed", 14},
		{1, "Thu", 15},
		{2, "Fri", 16},
		{3, "Sat", 17},
		{4, "Sun", 18},
		{5, "Mon", 19},
		{6, "Tue", 20},
	}

	if got := BuildDayWindow(anchor); got != want {
		t.Errorf("BuildDayWindow() = %v, want %v", got, want)
	}
}

func TestBuildDayWindow_IndexAligned(t *testing.T) {
	window := BuildDayWindow(time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC))

	for i, day := range window {
		if day.Index != i {
			t.Errorf("window[%d].Index = %d, want %d", i, day.Index, i)
		}
	}
}

func TestBuildDayWindow_Wrapping(t *testing.T) {
	tests := []struct {
		name      string
		anchor    time.Time
		wantDates [WindowSize]int
	}{
		{
			name:      "30-day month",
			anchor:    time.Date(2024, time.September, 30, 8, 0, 0, 0, time.UTC),
			wantDates: [WindowSize]int{30, 1, 2, 3, 4, 5, 6},
		},
		{
			name:      "29th of a 30-day month",
			anchor:    time.Date(2024, time.June, 29, 8, 0, 0, 0, time.UTC),
			wantDates: [WindowSize]int{29, 30, 1, 2, 3, 4, 5},
		},
		{
			name:      "leap february",
			anchor:    time.Date(2024, time.February, 27, 23, 59, 0, 0, time.UTC),
			wantDates: [WindowSize]int{27, 28, 29, 1, 2, 3, 4},
		},
		{
			name:      "non-leap february",
			anchor:    time.Date(2025, time.February, 27, 0, 0, 0, 0, time.UTC),
			wantDates: [WindowSize]int{27, 28, 1, 2, 3, 4, 5},
		},
		{
			name:      "year end",
			anchor:    time.Date(2024, time.December, 29, 12, 0, 0, 0, time.UTC),
			wantDates: [WindowSize]int{29, 30, 31, 1, 2, 3, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := BuildDayWindow(tt.anchor)
			for i, day := range window {
				if day.Date != tt.wantDates[i] {
					t.Errorf("window[%d].Date = %d, want %d", i, day.Date, tt.wantDates[i])
				}
				want := tt.anchor.AddDate(0, 0, i).Weekday()
				if day.DayName != weekdayNames[want] {
					t.Errorf("window[%d].DayName = %s, want %s", i, day.DayName, weekdayNames[want])
				}
			}
		})
	}
}

func TestBuildDayWindow_DSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	// Clocks spring forward on 2024-03-10 at 02:00
	anchor := time.Date(2024, time.March, 9, 0, 30, 0, 0, loc)
	window := BuildDayWindow(anchor)

	want := [WindowSize]int{9, 10, 11, 12, 13, 14, 15}
	for i, day := range window {
		if day.Date != want[i] {
			t.Errorf("window[%d].Date = %d, want %d", i, day.Date, want[i])
		}
	}
}

func TestDayWindow_Contains(t *testing.T) {
	var window DayWindow

	tests := []struct {
		index int
		want  bool
	}{
		{-1, false},
		{0, true},
		{6, true},
		{7, false},
	}

	for _, tt := range tests {
		if got := window.Contains(tt.index); got != tt.want {
			t.Errorf("Contains(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}
}

func TestDayDescriptor_Label(t *testing.T) {
	d := DayDescriptor{Index: 2, DayName: "Fri", Date: 16}
	if got := d.Label(); got != "Fri 16" {
		t.Errorf("Label() = %q, want %q", got, "Fri 16")
	}
}
