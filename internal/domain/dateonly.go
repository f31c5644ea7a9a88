package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const isoDateLayout = "2006-01-02"

// DateOnly is a calendar date without a time-of-day. The wrapped time is always
// midnight in the date's location, so comparisons only see the calendar date.
type DateOnly struct {
	t time.Time
}

// NewDateOnly builds a date from its components. Out-of-range values are
// normalized the way time.Date normalizes them.
func NewDateOnly(year int, month time.Month, day int, loc *time.Location) DateOnly {
	if loc == nil {
		loc = time.Local
	}
	return DateOnly{t: time.Date(year, month, day, 0, 0, 0, 0, loc)}
}

// DateOf strips the time-of-day from t, keeping t's location.
func DateOf(t time.Time) DateOnly {
	y, m, d := t.Date()
	return NewDateOnly(y, m, d, t.Location())
}

// Today returns the current calendar date according to clock.
func Today(clock Clock) DateOnly {
	return DateOf(clock.Now())
}

// ParseDateOnly parses a YYYY-MM-DD string as a date in loc.
func ParseDateOnly(s string, loc *time.Location) (DateOnly, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(isoDateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return DateOnly{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOnly{t: t}, nil
}

func (d DateOnly) IsZero() bool { return d.t.IsZero() }

func (d DateOnly) Year() int { return d.t.Year() }

func (d DateOnly) Month() time.Month { return d.t.Month() }

func (d DateOnly) Day() int { return d.t.Day() }

func (d DateOnly) Weekday() time.Weekday { return d.t.Weekday() }

func (d DateOnly) Location() *time.Location { return d.t.Location() }

// Time returns local midnight of the date.
func (d DateOnly) Time() time.Time { return d.t }

// UnixMilli returns the epoch milliseconds of the date's UTC midnight, i.e.
// local midnight corrected by the zone offset.
func (d DateOnly) UnixMilli() int64 {
	return time.Date(d.t.Year(), d.t.Month(), d.t.Day(), 0, 0, 0, 0, time.UTC).UnixMilli()
}

// AddDays moves the date by n calendar days. DST transitions never shift the
// result off midnight.
func (d DateOnly) AddDays(n int) DateOnly {
	return NewDateOnly(d.t.Year(), d.t.Month(), d.t.Day()+n, d.t.Location())
}

// WithTime combines the date with a time-of-day in the date's location.
func (d DateOnly) WithTime(t TimeOnly) time.Time {
	return time.Date(
		d.t.Year(), d.t.Month(), d.t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Millisecond()*int(time.Millisecond),
		d.t.Location(),
	)
}

func (d DateOnly) Compare(o DateOnly) int {
	a, b := d.UnixMilli(), o.UnixMilli()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (d DateOnly) Before(o DateOnly) bool { return d.Compare(o) < 0 }

func (d DateOnly) After(o DateOnly) bool { return d.Compare(o) > 0 }

func (d DateOnly) Equal(o DateOnly) bool { return d.Compare(o) == 0 }

// ISOString formats the date as zero-padded YYYY-MM-DD.
func (d DateOnly) ISOString() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.t.Year(), int(d.t.Month()), d.t.Day())
}

func (d DateOnly) String() string {
	return d.t.Format("Mon Jan 02 2006")
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.ISOString() + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return errors.New("date must be a JSON string")
	}
	parsed, err := ParseDateOnly(s[1:len(s)-1], time.Local)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
