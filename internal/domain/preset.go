package domain

import (
	"errors"
	"fmt"
	"time"
)

type ClosureEndType string

const (
	ClosureEndFixed      ClosureEndType = "FIXED"
	ClosureEndDurational ClosureEndType = "DURATIONAL"
)

var ErrUnsupportedEndType = errors.New("unsupported end type")

// HourMinute is a wall-clock time or a duration expressed in hours and minutes.
type HourMinute struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

func (hm HourMinute) TotalMinutes() int {
	return hm.Hours*60 + hm.Minutes
}

func (hm HourMinute) Duration() time.Duration {
	return time.Duration(hm.TotalMinutes()) * time.Minute
}

func (hm HourMinute) TimeOnly() TimeOnly {
	return NewTimeOnly(hm.Hours, hm.Minutes, 0, 0)
}

// ClosureEnd describes how the end of a closure is derived. Time and
// PostponeBy belong to FIXED; Duration belongs to DURATIONAL.
type ClosureEnd struct {
	Type       ClosureEndType `json:"type"`
	Time       *HourMinute    `json:"time,omitempty"`
	PostponeBy int            `json:"postponeBy,omitempty"`
	Duration   *HourMinute    `json:"duration,omitempty"`
	RoundTo    RoundTo        `json:"roundTo,omitempty"`
}

func FixedEnd(at HourMinute, postponeBy int, roundTo RoundTo) ClosureEnd {
	return ClosureEnd{Type: ClosureEndFixed, Time: &at, PostponeBy: postponeBy, RoundTo: roundTo}
}

func DurationalEnd(d HourMinute, roundTo RoundTo) ClosureEnd {
	return ClosureEnd{Type: ClosureEndDurational, Duration: &d, RoundTo: roundTo}
}

// Validate checks that exactly the fields of the declared variant are set.
func (e ClosureEnd) Validate() error {
	if !e.RoundTo.Valid() {
		return fmt.Errorf("unknown rounding unit %q", e.RoundTo)
	}
	switch e.Type {
	case ClosureEndFixed:
		if e.Time == nil {
			return errors.New("fixed end requires time")
		}
		if e.Duration != nil {
			return errors.New("fixed end must not carry a duration")
		}
		if e.Time.Hours < 0 || e.Time.Hours > 23 || e.Time.Minutes < 0 || e.Time.Minutes > 59 {
			return fmt.Errorf("fixed end time %02d:%02d is out of range", e.Time.Hours, e.Time.Minutes)
		}
		if e.PostponeBy < 0 {
			return errors.New("postponeBy must not be negative")
		}
	case ClosureEndDurational:
		if e.Duration == nil {
			return errors.New("durational end requires duration")
		}
		if e.Time != nil || e.PostponeBy != 0 {
			return errors.New("durational end must not carry a fixed time")
		}
		if e.Duration.Hours < 0 || e.Duration.Minutes < 0 || e.Duration.Minutes > 59 {
			return errors.New("duration is out of range")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedEndType, e.Type)
	}
	return nil
}

// ClosureDetails is the declarative closure template carried by a preset.
type ClosureDetails struct {
	Description string                  `json:"description,omitempty"`
	StartDate   *SerializedDateResolver `json:"startDate,omitempty"`
	StartTime   *HourMinute             `json:"startTime,omitempty"`
	End         ClosureEnd              `json:"end"`
}

func (c ClosureDetails) Validate() error {
	if c.StartDate != nil {
		if _, err := LookupDateResolver(c.StartDate.Type); err != nil {
			return err
		}
		if c.StartDate.Type == ResolverSpecificDayOfWeek {
			if c.StartDate.Args == nil || c.StartDate.Args.DayOfWeek == nil {
				return errors.New("SPECIFIC_DAY_OF_WEEK requires dayOfWeek")
			}
			mask := WeekdayFlags(*c.StartDate.Args.DayOfWeek)
			if *c.StartDate.Args.DayOfWeek < 0 || !mask.Valid() || mask.IsEmpty() {
				return fmt.Errorf("invalid dayOfWeek mask %d", *c.StartDate.Args.DayOfWeek)
			}
		}
	}
	if st := c.StartTime; st != nil {
		if st.Hours < 0 || st.Hours > 23 || st.Minutes < 0 || st.Minutes > 59 {
			return fmt.Errorf("start time %02d:%02d is out of range", st.Hours, st.Minutes)
		}
	}
	return c.End.Validate()
}

// ClosurePreset is a named, reusable closure template. ID and the timestamps
// are assigned by the store.
type ClosurePreset struct {
	ID             int64          `json:"id"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	ClosureDetails ClosureDetails `json:"closureDetails"`
}
