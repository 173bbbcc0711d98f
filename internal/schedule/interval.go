// Package schedule implements the room reservation core: a minute-granular
// interval model scoped to one room and one calendar day, and the conflict
// resolution that decides whether a candidate reservation may be confirmed.
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidRange = errors.New("end time must be after start time")
	ErrInvalidClock = errors.New("time must be in HH:MM format")
)

// Interval is a room-scoped, day-scoped time span used for overlap
// comparison. Boundaries are minutes since midnight; the original HH:MM
// labels and the source reservation's id and area ride along for conflict
// reporting.
type Interval struct {
	Room     string
	Day      time.Time
	Start    string
	End      string
	StartMin int
	EndMin   int

	ID   string
	Area string

	// DayFallback marks intervals whose date could not be parsed and was
	// replaced with the current date. Overlap checks still run against them.
	DayFallback bool
}

// ParseClock converts an "HH:MM" value to minutes since midnight.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	return hour*60 + minute, nil
}

// NewInterval builds the interval for one room, date and time range.
// It fails with ErrInvalidClock on malformed times and with ErrInvalidRange
// when the range is empty or inverted; such candidates must never reach the
// conflict resolver.
func NewInterval(room, date, start, end string) (Interval, error) {
	startMin, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	if startMin >= endMin {
		return Interval{}, fmt.Errorf("%w: %s >= %s", ErrInvalidRange, start, end)
	}

	day, parsed := NormalizeDate(date)

	return Interval{
		Room:        room,
		Day:         day,
		Start:       start,
		End:         end,
		StartMin:    startMin,
		EndMin:      endMin,
		DayFallback: !parsed,
	}, nil
}

// TimeRange renders the span as shown to users, e.g. "09:00 - 10:00".
func (iv Interval) TimeRange() string {
	return fmt.Sprintf("%s - %s", iv.Start, iv.End)
}

// Overlaps reports whether two intervals intersect. Intervals on different
// rooms or different days never overlap. Time ranges are half-open, so a
// reservation ending exactly when another starts does not collide.
func Overlaps(a, b Interval) bool {
	if a.Room != b.Room || !a.Day.Equal(b.Day) {
		return false
	}
	return a.StartMin < b.EndMin && b.StartMin < a.EndMin
}
