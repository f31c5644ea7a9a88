package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOnly is a time-of-day with millisecond precision and no date.
type TimeOnly struct {
	hour        int
	minute      int
	second      int
	millisecond int
}

// NewTimeOnly builds a time-of-day, normalizing overflow into a 24-hour clock.
func NewTimeOnly(hour, minute, second, millisecond int) TimeOnly {
	return timeOnlyFromMillis(((hour*60+minute)*60+second)*1000 + millisecond)
}

// TimeOf extracts the wall-clock time-of-day of t in t's location.
func TimeOf(t time.Time) TimeOnly {
	return TimeOnly{
		hour:        t.Hour(),
		minute:      t.Minute(),
		second:      t.Second(),
		millisecond: t.Nanosecond() / int(time.Millisecond),
	}
}

// ParseTimeOnly parses "HH:MM" or "HH:MM:SS".
func ParseTimeOnly(s string) (TimeOnly, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return TimeOnly{}, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	limits := []int{23, 59, 59}
	vals := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > limits[i] {
			return TimeOnly{}, fmt.Errorf("invalid time %q", s)
		}
		vals[i] = n
	}
	return TimeOnly{hour: vals[0], minute: vals[1], second: vals[2]}, nil
}

func timeOnlyFromMillis(ms int) TimeOnly {
	const day = 24 * 60 * 60 * 1000
	ms %= day
	if ms < 0 {
		ms += day
	}
	return TimeOnly{
		hour:        ms / 3_600_000,
		minute:      ms / 60_000 % 60,
		second:      ms / 1000 % 60,
		millisecond: ms % 1000,
	}
}

func (t TimeOnly) Hour() int { return t.hour }

func (t TimeOnly) Minute() int { return t.minute }

func (t TimeOnly) Second() int { return t.second }

func (t TimeOnly) Millisecond() int { return t.millisecond }

// SinceMidnight is the offset of the time-of-day from midnight.
func (t TimeOnly) SinceMidnight() time.Duration {
	return time.Duration(t.hour)*time.Hour +
		time.Duration(t.minute)*time.Minute +
		time.Duration(t.second)*time.Second +
		time.Duration(t.millisecond)*time.Millisecond
}

func (t TimeOnly) Compare(o TimeOnly) int {
	a, b := t.SinceMidnight(), o.SinceMidnight()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (t TimeOnly) Before(o TimeOnly) bool { return t.Compare(o) < 0 }

func (t TimeOnly) Equal(o TimeOnly) bool { return t.Compare(o) == 0 }

// Format renders HH:MM for time inputs.
func (t TimeOnly) Format() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

func (t TimeOnly) String() string {
	return fmt.Sprintf("%02d:%02d:%02d.%03d", t.hour, t.minute, t.second, t.millisecond)
}
