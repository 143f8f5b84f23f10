package macro

import (
	"fmt"
	"strings"
	"time"

	"github.com/teranos/mousemacro/errors"
)

// TimeOfDay is an offset from local midnight in [0, 24h).
type TimeOfDay time.Duration

const day = 24 * time.Hour

// NewTimeOfDay builds a TimeOfDay from clock fields.
func NewTimeOfDay(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, errors.NewInvalidArgumentError("invalid time of day %02d:%02d:%02d", hour, minute, second)
	}
	d := time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second
	return TimeOfDay(d), nil
}

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimeOfDay(t.Hour(), t.Minute(), t.Second())
		}
	}
	return 0, errors.NewInvalidArgumentError("invalid time of day %q (use HH:MM or HH:MM:SS)", s)
}

// TimeOfDayOf returns the wall-clock time of day of t in t's location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	d := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second + time.Duration(t.Nanosecond())
	return TimeOfDay(d)
}

func (t TimeOfDay) String() string {
	d := time.Duration(t)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// TimeRange is a daily window, start inclusive and end exclusive.
// When End < Start the window wraps past midnight.
type TimeRange struct {
	Start TimeOfDay
	End   TimeOfDay
}

// NewTimeRange rejects zero-length and out-of-day bounds.
func NewTimeRange(start, end TimeOfDay) (TimeRange, error) {
	if start < 0 || time.Duration(start) >= day || end < 0 || time.Duration(end) >= day {
		return TimeRange{}, errors.NewInvalidArgumentError("time range bounds must be within a day, got %s-%s", start, end)
	}
	if start == end {
		return TimeRange{}, errors.NewInvalidArgumentError("time range %s-%s is empty", start, end)
	}
	return TimeRange{Start: start, End: end}, nil
}

// OverMidnight reports whether the window wraps past midnight.
func (r TimeRange) OverMidnight() bool {
	return r.End < r.Start
}

// Contains reports whether t falls inside the window.
func (r TimeRange) Contains(t TimeOfDay) bool {
	if r.OverMidnight() {
		return t >= r.Start || t < r.End
	}
	return t >= r.Start && t < r.End
}

func (r TimeRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// Schedule decides whether a tick may click at a given time of day.
//
// The variant set is closed: Always and Window.
type Schedule interface {
	Allowed(t TimeOfDay) bool
	String() string
	schedule()
}

// Always allows every time of day.
type Always struct{}

func (Always) Allowed(TimeOfDay) bool { return true }
func (Always) String() string         { return "always" }
func (Always) schedule()              {}

// Window allows only times inside Range.
type Window struct {
	Range TimeRange
}

func (w Window) Allowed(t TimeOfDay) bool { return w.Range.Contains(t) }
func (w Window) String() string           { return "window " + w.Range.String() }
func (Window) schedule()                  {}
