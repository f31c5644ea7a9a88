package domain

import (
	"fmt"
	"time"
)

// RoundTo is a rounding unit for resolved end times.
type RoundTo string

const (
	RoundNone      RoundTo = "NONE"
	Round10Minutes RoundTo = "10_MINUTES"
	Round15Minutes RoundTo = "15_MINUTES"
	Round30Minutes RoundTo = "30_MINUTES"
	Round1Hour     RoundTo = "1_HOUR"
)

// IntervalMinutes returns the unit length in minutes; ok is false for NONE,
// the empty value and unknown units.
func (r RoundTo) IntervalMinutes() (minutes int, ok bool) {
	switch r {
	case Round10Minutes:
		return 10, true
	case Round15Minutes:
		return 15, true
	case Round30Minutes:
		return 30, true
	case Round1Hour:
		return 60, true
	default:
		return 0, false
	}
}

// Valid accepts the known units and the empty value (no rounding).
func (r RoundTo) Valid() bool {
	if r == "" || r == RoundNone {
		return true
	}
	_, ok := r.IntervalMinutes()
	return ok
}

// RoundToFromMinutes maps a legacy minute count onto a rounding unit.
func RoundToFromMinutes(minutes int) (RoundTo, error) {
	switch minutes {
	case 0:
		return RoundNone, nil
	case 10:
		return Round10Minutes, nil
	case 15:
		return Round15Minutes, nil
	case 30:
		return Round30Minutes, nil
	case 60:
		return Round1Hour, nil
	default:
		return "", fmt.Errorf("no rounding unit for %d minutes", minutes)
	}
}

// RoundTime rounds t up to the next boundary of r. A time exactly on a
// boundary with zero seconds and sub-seconds is returned unchanged. The result
// always has zero seconds. The adjustment is added as elapsed time so the
// result never precedes t, even inside a repeated DST hour.
func RoundTime(t time.Time, r RoundTo) time.Time {
	interval, ok := r.IntervalMinutes()
	if !ok {
		return t
	}

	minutes := t.Minute()
	target := minutes / interval * interval
	if t.Second() > 0 || t.Nanosecond() > 0 || minutes%interval > 0 {
		target += interval
	}

	delta := time.Duration(target-minutes)*time.Minute -
		time.Duration(t.Second())*time.Second -
		time.Duration(t.Nanosecond())
	return t.Add(delta).Round(0)
}
