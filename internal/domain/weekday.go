package domain

import (
	"fmt"
	"strings"
	"time"
)

// WeekdayFlags is a set of weekdays backed by a bitmask: bit 0 is Sunday and
// bit 6 is Saturday, matching time.Weekday numbering.
type WeekdayFlags uint8

const (
	FlagSunday WeekdayFlags = 1 << iota
	FlagMonday
	FlagTuesday
	FlagWednesday
	FlagThursday
	FlagFriday
	FlagSaturday

	NoWeekdays  WeekdayFlags = 0
	AllWeekdays WeekdayFlags = 1<<7 - 1
)

var weekdayAbbrev = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// FlagOf returns the single-bit flag for d.
func FlagOf(d time.Weekday) WeekdayFlags {
	if d < time.Sunday || d > time.Saturday {
		return NoWeekdays
	}
	return 1 << uint(d)
}

// CombineWeekdays unions the given days into one flag set.
func CombineWeekdays(days ...time.Weekday) WeekdayFlags {
	var f WeekdayFlags
	for _, d := range days {
		f |= FlagOf(d)
	}
	return f
}

// ParseWeekdays accepts a comma separated list of day names ("mon,wed" or
// "monday,wednesday").
func ParseWeekdays(s string) (WeekdayFlags, error) {
	var f WeekdayFlags
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if len(name) > 3 {
			name = name[:3]
		}
		d, ok := weekdayAbbrev[name]
		if !ok {
			return NoWeekdays, fmt.Errorf("unknown weekday %q", part)
		}
		f |= FlagOf(d)
	}
	return f, nil
}

func (f WeekdayFlags) Has(d time.Weekday) bool {
	bit := FlagOf(d)
	return bit != NoWeekdays && f&bit != 0
}

// Valid reports whether no bits above Saturday are set.
func (f WeekdayFlags) Valid() bool {
	return f&^AllWeekdays == 0
}

func (f WeekdayFlags) IsEmpty() bool {
	return f&AllWeekdays == 0
}

// BasicFlags enumerates the single-day flags contained in f, Sunday first.
func (f WeekdayFlags) BasicFlags() []WeekdayFlags {
	out := make([]WeekdayFlags, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if bit := FlagOf(d); f&bit != 0 {
			out = append(out, bit)
		}
	}
	return out
}

// Days enumerates the weekdays contained in f, Sunday first.
func (f WeekdayFlags) Days() []time.Weekday {
	out := make([]time.Weekday, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if f.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

func (f WeekdayFlags) String() string {
	days := f.Days()
	if len(days) == 0 {
		return "None"
	}
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, d.String())
	}
	return strings.Join(names, "|")
}
