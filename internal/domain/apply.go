package domain

import (
	"fmt"
	"log/slog"
	"time"
)

// ClosureEditorForm is the host form a preset is applied onto.
type ClosureEditorForm interface {
	Start() time.Time
	SetStart(time.Time)
	SetEnd(time.Time)
	SetDescription(string)
}

// PresetApplier resolves presets into concrete closure times.
type PresetApplier struct {
	clock Clock
	log   *slog.Logger
}

func NewPresetApplier(clock Clock, log *slog.Logger) *PresetApplier {
	if clock == nil {
		clock = SystemClock(nil)
	}
	if log == nil {
		log = slog.Default()
	}
	return &PresetApplier{
		clock: clock,
		log:   log.With(slog.String("component", "closure-presets")),
	}
}

// Apply resolves preset against the form's current start date and pushes the
// result into form: description (when set), then start, then end. Nothing is
// written to the form when resolution fails.
func (a *PresetApplier) Apply(preset ClosurePreset, form ClosureEditorForm) error {
	a.log.Debug("applying closure preset", slog.Int64("preset_id", preset.ID), slog.String("preset_name", preset.Name))

	start, end, err := a.ResolveClosureTimes(preset.ClosureDetails, DateOf(form.Start()))
	if err != nil {
		return err
	}

	if preset.ClosureDetails.Description != "" {
		form.SetDescription(preset.ClosureDetails.Description)
	}
	a.log.Debug("applying resolved start", slog.Time("start", start))
	form.SetStart(start)
	a.log.Debug("applying resolved end", slog.Time("end", end))
	form.SetEnd(end)
	return nil
}

// ResolveClosureTimes computes the start and end instants for details.
// defaultDate is used when the details carry no start-date rule.
func (a *PresetApplier) ResolveClosureTimes(details ClosureDetails, defaultDate DateOnly) (time.Time, time.Time, error) {
	now := a.clock.Now()

	start, err := a.resolveStart(details, defaultDate, now)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := resolveEnd(details.End, start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func (a *PresetApplier) resolveStart(details ClosureDetails, defaultDate DateOnly, now time.Time) (time.Time, error) {
	date := defaultDate
	if details.StartDate != nil {
		resolved, err := ResolveDate(*details.StartDate, now)
		if err != nil {
			return time.Time{}, err
		}
		a.log.Debug("resolved start date",
			slog.String("resolver", string(details.StartDate.Type)),
			slog.String("date", resolved.ISOString()),
		)
		date = resolved
	} else if date.IsZero() {
		date = DateOf(now)
	}

	var tod TimeOnly
	if details.StartTime != nil {
		tod = details.StartTime.TimeOnly()
	} else {
		a.log.Debug("no start time on preset, using current time")
		tod = TimeOf(now.In(date.Location()))
	}

	return date.WithTime(tod), nil
}

func resolveEnd(end ClosureEnd, start time.Time) (time.Time, error) {
	switch end.Type {
	case ClosureEndDurational:
		if end.Duration == nil {
			return time.Time{}, fmt.Errorf("durational end requires duration")
		}
		return RoundTime(start.Add(end.Duration.Duration()), end.RoundTo), nil
	case ClosureEndFixed:
		if end.Time == nil {
			return time.Time{}, fmt.Errorf("fixed end requires time")
		}
		y, m, d := start.Date()
		endAt := time.Date(y, m, d, end.Time.Hours, end.Time.Minutes, 0, 0, start.Location())
		if TimeOf(endAt).Before(TimeOf(start)) {
			// overnight closure
			endAt = time.Date(y, m, d+1, end.Time.Hours, end.Time.Minutes, 0, 0, start.Location())
		}
		endAt = endAt.Add(time.Duration(end.PostponeBy) * time.Minute)
		return RoundTime(endAt, end.RoundTo), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnsupportedEndType, end.Type)
	}
}
