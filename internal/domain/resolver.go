package domain

import (
	"errors"
	"fmt"
	"time"
)

// DateResolverType names a registered date resolver.
type DateResolverType string

const (
	ResolverCurrentDate       DateResolverType = "CURRENT_DATE"
	ResolverSpecificDayOfWeek DateResolverType = "SPECIFIC_DAY_OF_WEEK"
)

var ErrUnknownDateResolver = errors.New("unknown date resolver")

// SerializedDateResolver is the persisted form of a start-date rule.
// Args is nil for CURRENT_DATE.
type SerializedDateResolver struct {
	Type DateResolverType  `json:"type"`
	Args *DateResolverArgs `json:"args"`
}

type DateResolverArgs struct {
	// DayOfWeek is a WeekdayFlags mask.
	DayOfWeek *int `json:"dayOfWeek,omitempty"`
}

// DateResolverFunc maps resolver arguments onto a date, relative to now.
type DateResolverFunc func(now time.Time, args *DateResolverArgs) (DateOnly, error)

var dateResolvers = map[DateResolverType]DateResolverFunc{
	ResolverCurrentDate:       resolveCurrentDate,
	ResolverSpecificDayOfWeek: resolveSpecificDayOfWeek,
}

// LookupDateResolver returns the resolver registered under name.
func LookupDateResolver(name DateResolverType) (DateResolverFunc, error) {
	fn, ok := dateResolvers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDateResolver, name)
	}
	return fn, nil
}

// ResolveDate resolves a serialized rule against now.
func ResolveDate(r SerializedDateResolver, now time.Time) (DateOnly, error) {
	fn, err := LookupDateResolver(r.Type)
	if err != nil {
		return DateOnly{}, err
	}
	return fn(now, r.Args)
}

// CurrentDateResolver is the serialized CURRENT_DATE rule.
func CurrentDateResolver() SerializedDateResolver {
	return SerializedDateResolver{Type: ResolverCurrentDate}
}

// DayOfWeekResolver is the serialized SPECIFIC_DAY_OF_WEEK rule for days.
func DayOfWeekResolver(days WeekdayFlags) SerializedDateResolver {
	mask := int(days)
	return SerializedDateResolver{
		Type: ResolverSpecificDayOfWeek,
		Args: &DateResolverArgs{DayOfWeek: &mask},
	}
}

func resolveCurrentDate(now time.Time, _ *DateResolverArgs) (DateOnly, error) {
	return DateOf(now), nil
}

// resolveSpecificDayOfWeek returns the earliest date strictly after today that
// falls on one of the masked weekdays. "Today" and its weekday are taken from
// the UTC calendar; a match on today itself resolves to the same day next week.
// The candidate is built in now's location, so east of UTC shortly after local
// midnight (while the UTC date is still yesterday) the result can equal the
// local today.
func resolveSpecificDayOfWeek(now time.Time, args *DateResolverArgs) (DateOnly, error) {
	if args == nil || args.DayOfWeek == nil {
		return DateOnly{}, errors.New("invalid arguments for SPECIFIC_DAY_OF_WEEK resolver: dayOfWeek is required")
	}

	flags := WeekdayFlags(*args.DayOfWeek)
	days := flags.Days()
	if len(days) == 0 {
		return DateOnly{}, fmt.Errorf("no valid days of the week found in dayOfWeek: %d", *args.DayOfWeek)
	}

	utc := now.UTC()
	today := utc.Weekday()
	y, m, d := utc.Date()

	var earliest DateOnly
	for i, target := range days {
		ahead := (int(target) + 7 - int(today)) % 7
		if ahead == 0 {
			ahead = 7
		}
		candidate := NewDateOnly(y, m, d+ahead, now.Location())
		if i == 0 || candidate.Before(earliest) {
			earliest = candidate
		}
	}
	return earliest, nil
}
