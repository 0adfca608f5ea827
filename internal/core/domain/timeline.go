package domain

import (
	"fmt"
	"sort"
	"time"
)

// Event is a labelled point in time.
type Event struct {
	Date  time.Time
	Label string
}

// NewEvent creates an event. An empty label is derived from the date.
func NewEvent(date time.Time, label string) Event {
	if label == "" {
		label = "Event of " + FormatTimestamp(date)
	}
	return Event{Date: date, Label: label}
}

// Period is a labelled time span. End is never before Start.
type Period struct {
	Label string
	Start time.Time
	End   time.Time
}

// NewPeriod creates a period from start to end.
// An empty label is derived from the bounds.
func NewPeriod(label string, start, end time.Time) (Period, error) {
	if end.Before(start) {
		return Period{}, fmt.Errorf("%w: end must be posterior to start", ErrInvalidInput)
	}
	if label == "" {
		label = fmt.Sprintf("Period from %s to %s", FormatTimestamp(start), FormatTimestamp(end))
	}
	return Period{Label: label, Start: start, End: end}, nil
}

// Overlap reports whether the two periods share at least one instant.
func (p Period) Overlap(other Period) bool {
	return !(p.End.Before(other.Start) || other.End.Before(p.Start))
}

// Duration returns the length of the period.
func (p Period) Duration() time.Duration {
	return p.End.Sub(p.Start)
}

// Timeline collects periods and point events.
type Timeline struct {
	Periods []Period
	Events  []Event
}

// Lanes packs the periods into lanes of non-overlapping periods.
// Periods are taken in start order and placed in the first lane they fit;
// each lane can be drawn on a single line.
func (t *Timeline) Lanes() [][]Period {
	periods := append([]Period(nil), t.Periods...)
	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].Start.Before(periods[j].Start)
	})

	var lanes [][]Period
	for _, period := range periods {
		placed := false
		for i, lane := range lanes {
			if !overlapsAny(lane, period) {
				lanes[i] = append(lane, period)
				placed = true
				break
			}
		}
		if !placed {
			lanes = append(lanes, []Period{period})
		}
	}
	return lanes
}

func overlapsAny(lane []Period, period Period) bool {
	for _, p := range lane {
		if p.Overlap(period) {
			return true
		}
	}
	return false
}

// Limits returns the earliest and latest instants of the timeline.
// ok is false when the timeline is empty.
func (t *Timeline) Limits() (first, last time.Time, ok bool) {
	var dates []time.Time
	for _, p := range t.Periods {
		dates = append(dates, p.Start, p.End)
	}
	for _, e := range t.Events {
		dates = append(dates, e.Date)
	}
	if len(dates) == 0 {
		return time.Time{}, time.Time{}, false
	}

	first, last = dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}
	return first, last, true
}

// Duration returns the span between the timeline limits.
func (t *Timeline) Duration() time.Duration {
	first, last, ok := t.Limits()
	if !ok {
		return 0
	}
	return last.Sub(first)
}
