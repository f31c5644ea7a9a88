package domain

import (
	"errors"
	"fmt"
	"time"
)

// Timeframe is a concrete pair of instants.
type Timeframe struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

func (tf Timeframe) Duration() time.Duration {
	return tf.EndDate.Sub(tf.StartDate)
}

// ClosureTimes is the result of expanding a timeframe with a recurring mode.
type ClosureTimes struct {
	Timeframes []Timeframe `json:"timeframes"`
}

type RecurringModeID string

const (
	RecurringModeDaily    RecurringModeID = "DAILY"
	RecurringModeInterval RecurringModeID = "INTERVAL"
)

// CalculateInput pairs the overall timeframe with mode specific fields.
type CalculateInput[F any] struct {
	Timeframe    Timeframe
	FieldsValues F
}

// RecurringMode expands one overall timeframe into individual closures.
type RecurringMode[F any] interface {
	ID() RecurringModeID
	Name() string
	CalculateClosureTimes(in CalculateInput[F]) (ClosureTimes, error)
}

var (
	_ RecurringMode[DailyFields]    = DailyRecurringMode{}
	_ RecurringMode[IntervalFields] = IntervalRecurringMode{}
)

// DailyFields selects the weekdays a daily closure is active on.
type DailyFields struct {
	Days []time.Weekday `json:"days"`
}

// DailyRecurringMode repeats the timeframe's time-of-day window on every
// selected weekday between its start and end.
type DailyRecurringMode struct{}

func (DailyRecurringMode) ID() RecurringModeID { return RecurringModeDaily }

func (DailyRecurringMode) Name() string { return "Daily" }

func (DailyRecurringMode) CalculateClosureTimes(in CalculateInput[DailyFields]) (ClosureTimes, error) {
	selected := CombineWeekdays(in.FieldsValues.Days...)

	daily := dailyTimeframes(in.Timeframe)
	out := make([]Timeframe, 0, len(daily))
	for _, tf := range daily {
		if selected.Has(tf.StartDate.Weekday()) {
			out = append(out, tf)
		}
	}
	return ClosureTimes{Timeframes: out}, nil
}

// dailyTimeframes slices tf into one window per calendar day, all computed in
// the location of tf.StartDate.
func dailyTimeframes(tf Timeframe) []Timeframe {
	if !tf.EndDate.After(tf.StartDate) {
		return nil
	}

	loc := tf.StartDate.Location()
	overallStart := tf.StartDate
	overallEnd := tf.EndDate.In(loc)

	startTOD := TimeOf(overallStart)
	endTOD := TimeOf(overallEnd)
	overnight := !startTOD.Before(endTOD)

	out := make([]Timeframe, 0, 8)
	for day := DateOf(overallStart); day.Time().Before(overallEnd); day = day.AddDays(1) {
		idealStart := day.WithTime(startTOD)
		endDay := day
		if overnight {
			endDay = day.AddDays(1)
		}
		idealEnd := endDay.WithTime(endTOD)

		segStart := idealStart
		if segStart.Before(overallStart) {
			segStart = overallStart
		}
		segEnd := idealEnd
		if segEnd.After(overallEnd) {
			segEnd = overallEnd
		}

		if segStart.Before(segEnd) {
			out = append(out, Timeframe{StartDate: segStart, EndDate: segEnd})
		}
	}
	return out
}

// IntervalAnchorPoint selects which edge of the previous closure the interval
// to the next one is measured from.
type IntervalAnchorPoint string

const (
	AnchorDefault                IntervalAnchorPoint = "DEFAULT"
	AnchorStartOfPreviousClosure IntervalAnchorPoint = "START_OF_PREVIOUS_CLOSURE"
	AnchorEndOfPreviousClosure   IntervalAnchorPoint = "END_OF_PREVIOUS_CLOSURE"
)

var ErrInvalidIntervalFields = errors.New("interval recurring mode: invalid field values")

// IntervalFields configures interval recurrence. Durations are in minutes; a
// nil field is treated as a missing value.
type IntervalFields struct {
	ClosureDuration         *int                `json:"closureDuration"`
	IntervalBetweenClosures *int                `json:"intervalBetweenClosures"`
	AnchorPoint             IntervalAnchorPoint `json:"anchorPoint,omitempty"`
}

// DefaultAnchorPoint measures from the end of the previous closure when
// measuring from its start would make closures overlap.
func DefaultAnchorPoint(closureDuration, intervalBetweenClosures int) IntervalAnchorPoint {
	if closureDuration >= intervalBetweenClosures {
		return AnchorEndOfPreviousClosure
	}
	return AnchorStartOfPreviousClosure
}

// IntervalRecurringMode emits fixed-length closures separated by a fixed
// interval until the next closure would end after the timeframe.
type IntervalRecurringMode struct{}

func (IntervalRecurringMode) ID() RecurringModeID { return RecurringModeInterval }

func (IntervalRecurringMode) Name() string { return "Interval-Based" }

func (IntervalRecurringMode) CalculateClosureTimes(in CalculateInput[IntervalFields]) (ClosureTimes, error) {
	f := in.FieldsValues
	if f.ClosureDuration == nil || f.IntervalBetweenClosures == nil {
		return ClosureTimes{}, ErrInvalidIntervalFields
	}
	duration := *f.ClosureDuration
	interval := *f.IntervalBetweenClosures
	if duration < 0 || interval < 0 {
		return ClosureTimes{}, fmt.Errorf("%w: closureDuration=%d intervalBetweenClosures=%d", ErrInvalidIntervalFields, duration, interval)
	}

	anchor := f.AnchorPoint
	if anchor == "" || anchor == AnchorDefault {
		anchor = DefaultAnchorPoint(duration, interval)
	}
	var step int
	switch anchor {
	case AnchorStartOfPreviousClosure:
		step = interval
	case AnchorEndOfPreviousClosure:
		step = duration + interval
	default:
		return ClosureTimes{}, fmt.Errorf("unexpected anchor point: %q", anchor)
	}
	// each closure must start strictly after the previous one
	if step == 0 {
		return ClosureTimes{}, fmt.Errorf("%w: closures anchored to %s never advance", ErrInvalidIntervalFields, anchor)
	}

	closureLen := time.Duration(duration) * time.Minute
	gap := time.Duration(interval) * time.Minute

	out := make([]Timeframe, 0, 8)
	cursor := in.Timeframe.StartDate
	for {
		end := cursor.Add(closureLen)
		if end.After(in.Timeframe.EndDate) {
			break
		}
		out = append(out, Timeframe{StartDate: cursor, EndDate: end})

		if anchor == AnchorStartOfPreviousClosure {
			cursor = cursor.Add(gap)
		} else {
			cursor = end.Add(gap)
		}
	}
	return ClosureTimes{Timeframes: out}, nil
}
