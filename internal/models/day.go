package models

import (
	"strconv"
	"time"
)

// WindowSize is the number of days offered for prediction, today included
const WindowSize = 7

// weekdayNames is indexed by time.Weekday (0 = Sunday)
var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DayDescriptor identifies one selectable day in the prediction window
type DayDescriptor struct {
	Index   int    // Offset from the anchor day (0 = today)
	DayName string // e.g., "Sun", "Mon"
	Date    int    // Day of month, 1..31
}

// DayWindow is the ordered seven-day range starting at the anchor date.
// DayWindow[i].Index == i for every entry.
type DayWindow [WindowSize]DayDescriptor

// BuildDayWindow returns the window of WindowSize days starting at anchor.
// Days are derived from calendar fields at local noon, so month/year
// boundaries and DST transitions never skip or repeat a date.
func BuildDayWindow(anchor time.Time) DayWindow {
	var window DayWindow
	year, month, day := anchor.Date()

	for i := 0; i < WindowSize; i++ {
		date := time.Date(year, month, day+i, 12, 0, 0, 0, anchor.Location())
		window[i] = DayDescriptor{
			Index:   i,
			DayName: weekdayNames[date.Weekday()],
			Date:    date.Day(),
		}
	}

	return window
}

// Contains reports whether index is a selectable day in the window
func (w DayWindow) Contains(index int) bool {
	return index >= 0 && index < len(w)
}

// Label returns the short "Wed 14" form used in the day dock
func (d DayDescriptor) Label() string {
	return d.DayName + " " + strconv.Itoa(d.Date)
}
