package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var timelineOrigin = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

func day(n int) time.Time {
	return timelineOrigin.AddDate(0, 0, n)
}

func mustPeriod(t *testing.T, label string, startDay, length int) Period {
	t.Helper()
	p, err := NewPeriod(label, day(startDay), day(startDay+length))
	require.NoError(t, err)
	return p
}

func sampleTimeline(t *testing.T) *Timeline {
	t.Helper()
	tl := &Timeline{}
	for _, pe := range []struct {
		label       string
		start, size int
	}{
		{"p0", -5, 10},
		{"p1", 0, 10},
		{"p2", 4, 1},
		{"p3", 30, 21},
		{"p4", -20, 10},
	} {
		tl.Periods = append(tl.Periods, mustPeriod(t, pe.label, pe.start, pe.size))
	}
	tl.Events = append(tl.Events,
		NewEvent(day(3), "beginning of t1"),
		NewEvent(day(25), "end of an era"),
		NewEvent(day(0), ""),
		NewEvent(day(-4), "event"),
	)
	return tl
}

func TestNewEvent_DefaultLabel(t *testing.T) {
	ev := NewEvent(timelineOrigin, "")
	assert.Equal(t, "Event of 2000-01-01T00:00:00Z", ev.Label)
}

func TestNewPeriod(t *testing.T) {
	p, err := NewPeriod("", day(0), day(2))
	require.NoError(t, err)

	assert.Equal(t, "Period from 2000-01-01T00:00:00Z to 2000-01-03T00:00:00Z", p.Label)
	assert.Equal(t, 48*time.Hour, p.Duration())
}

func TestNewPeriod_EndBeforeStart(t *testing.T) {
	_, err := NewPeriod("bad", day(2), day(0))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPeriod_Overlap(t *testing.T) {
	tests := []struct {
		name string
		a, b Period
		want bool
	}{
		{"disjoint", mustPeriod(t, "a", 0, 1), mustPeriod(t, "b", 5, 1), false},
		{"nested", mustPeriod(t, "a", 0, 10), mustPeriod(t, "b", 2, 1), true},
		{"partial", mustPeriod(t, "a", 0, 5), mustPeriod(t, "b", 3, 5), true},
		{"touching", mustPeriod(t, "a", 0, 5), mustPeriod(t, "b", 5, 5), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlap(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlap(tt.a))
		})
	}
}

func TestTimeline_Lanes(t *testing.T) {
	tl := sampleTimeline(t)

	lanes := tl.Lanes()

	labels := make([][]string, len(lanes))
	for i, lane := range lanes {
		for _, p := range lane {
			labels[i] = append(labels[i], p.Label)
		}
	}
	assert.Equal(t, [][]string{
		{"p4", "p0", "p3"},
		{"p1"},
		{"p2"},
	}, labels)

	for _, lane := range lanes {
		for i := range lane {
			for j := i + 1; j < len(lane); j++ {
				assert.False(t, lane[i].Overlap(lane[j]))
			}
		}
	}
}

func TestTimeline_LanesDoesNotReorderPeriods(t *testing.T) {
	tl := sampleTimeline(t)
	tl.Lanes()
	assert.Equal(t, "p0", tl.Periods[0].Label)
}

func TestTimeline_Limits(t *testing.T) {
	tl := sampleTimeline(t)

	first, last, ok := tl.Limits()

	require.True(t, ok)
	assert.Equal(t, day(-20), first)
	assert.Equal(t, day(51), last)
	assert.Equal(t, 71*24*time.Hour, tl.Duration())
}

func TestTimeline_Empty(t *testing.T) {
	tl := &Timeline{}

	_, _, ok := tl.Limits()

	assert.False(t, ok)
	assert.Zero(t, tl.Duration())
	assert.Empty(t, tl.Lanes())
}
