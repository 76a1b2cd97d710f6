package period

import (
	"iter"
	"slices"
	"time"
)

// LabelFormat selects how a month window is labelled.
type LabelFormat int

const (
	// LabelLong renders "January 2024".
	LabelLong LabelFormat = iota
	// LabelShort renders "Jan 2024".
	LabelShort
)

func (f LabelFormat) layout() string {
	if f == LabelShort {
		return "Jan 2006"
	}
	return "January 2006"
}

// Window is a closed interval [Start, End] covering one calendar month.
type Window struct {
	Start time.Time
	End   time.Time
	Label string
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// MonthOf returns the window of the calendar month containing t, in t's location.
// End is the last instant of the month's last day.
func MonthOf(t time.Time, format LabelFormat) Window {
	loc := t.Location()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	last := start.AddDate(0, 1, -1)
	end := time.Date(last.Year(), last.Month(), last.Day(), 23, 59, 59, 999999999, loc)
	return Window{Start: start, End: end, Label: start.Format(format.layout())}
}

// MonthSeq yields the count calendar months ending with the month of endingAt,
// oldest first. The sequence is a pure function of its arguments and may be
// ranged over any number of times.
func MonthSeq(count int, endingAt time.Time, format LabelFormat) iter.Seq[Window] {
	return func(yield func(Window) bool) {
		current := time.Date(endingAt.Year(), endingAt.Month(), 1, 0, 0, 0, 0, endingAt.Location())
		for i := count - 1; i >= 0; i-- {
			if !yield(MonthOf(current.AddDate(0, -i, 0), format)) {
				return
			}
		}
	}
}

// MonthWindows collects MonthSeq into a slice of exactly max(count, 0) windows.
func MonthWindows(count int, endingAt time.Time, format LabelFormat) []Window {
	if count <= 0 {
		return []Window{}
	}
	return slices.Collect(MonthSeq(count, endingAt, format))
}
