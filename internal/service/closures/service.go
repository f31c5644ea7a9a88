package closures

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"closures/backend/internal/domain"
	"closures/backend/internal/store"
)

type Service struct {
	repo    store.PresetRepository
	applier *domain.PresetApplier
	loc     *time.Location
	log     *slog.Logger
}

type Options struct {
	// Location is the editor's local time zone. Defaults to time.Local.
	Location *time.Location
	Clock    domain.Clock
	Logger   *slog.Logger
}

func NewService(repo store.PresetRepository, opts Options) *Service {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	clock := opts.Clock
	if clock == nil {
		clock = domain.SystemClock(loc)
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		repo:    repo,
		applier: domain.NewPresetApplier(clock, log),
		loc:     loc,
		log:     log.With(slog.String("component", "closures-service")),
	}
}

func (s *Service) Location() *time.Location {
	return s.loc
}

type PresetInput struct {
	Name           string                `json:"name" validate:"required,max=100"`
	Description    string                `json:"description" validate:"max=500"`
	ClosureDetails domain.ClosureDetails `json:"closureDetails" validate:"-"`
}

func (in PresetInput) normalized() (PresetInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validateStruct(in); err != nil {
		return PresetInput{}, err
	}
	if in.ClosureDetails.End.RoundTo == "" {
		in.ClosureDetails.End.RoundTo = domain.RoundNone
	}
	if err := in.ClosureDetails.Validate(); err != nil {
		return PresetInput{}, wrapValidationError("closureDetails", err)
	}
	return in, nil
}

func (s *Service) CreatePreset(ctx context.Context, in PresetInput) (domain.ClosurePreset, error) {
	in, err := in.normalized()
	if err != nil {
		return domain.ClosurePreset{}, err
	}
	return s.repo.Create(ctx, domain.ClosurePreset{
		Name:           in.Name,
		Description:    in.Description,
		ClosureDetails: in.ClosureDetails,
	})
}

func (s *Service) UpdatePreset(ctx context.Context, id int64, in PresetInput) (domain.ClosurePreset, error) {
	if id <= 0 {
		return domain.ClosurePreset{}, validationError("id is required")
	}
	in, err := in.normalized()
	if err != nil {
		return domain.ClosurePreset{}, err
	}
	return s.repo.Update(ctx, domain.ClosurePreset{
		ID:             id,
		Name:           in.Name,
		Description:    in.Description,
		ClosureDetails: in.ClosureDetails,
	})
}

func (s *Service) DeletePreset(ctx context.Context, id int64) error {
	if id <= 0 {
		return validationError("id is required")
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetPreset(ctx context.Context, id int64) (domain.ClosurePreset, error) {
	if id <= 0 {
		return domain.ClosurePreset{}, validationError("id is required")
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListPresets(ctx context.Context) ([]domain.ClosurePreset, error) {
	return s.repo.List(ctx)
}

// ApplyPreset loads preset id and applies it onto form.
func (s *Service) ApplyPreset(ctx context.Context, id int64, form domain.ClosureEditorForm) error {
	preset, err := s.GetPreset(ctx, id)
	if err != nil {
		return err
	}
	return s.applyResolved(preset, form)
}

type Resolution struct {
	PresetID    int64     `json:"presetId"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// ResolvePreset applies preset id onto a draft whose start is currentStart.
// A zero currentStart means the form has no date yet.
func (s *Service) ResolvePreset(ctx context.Context, id int64, currentStart time.Time) (Resolution, error) {
	preset, err := s.GetPreset(ctx, id)
	if err != nil {
		return Resolution{}, err
	}
	return s.ResolveLoaded(preset, currentStart)
}

// ResolveLoaded is ResolvePreset for a preset that is already in hand.
func (s *Service) ResolveLoaded(preset domain.ClosurePreset, currentStart time.Time) (Resolution, error) {
	draft := &ClosureDraft{}
	if !currentStart.IsZero() {
		draft.StartAt = currentStart.In(s.loc)
	}
	if err := s.applyResolved(preset, draft); err != nil {
		return Resolution{}, err
	}
	return Resolution{
		PresetID:    preset.ID,
		Description: draft.Description,
		Start:       draft.StartAt,
		End:         draft.EndAt,
	}, nil
}

func (s *Service) applyResolved(preset domain.ClosurePreset, form domain.ClosureEditorForm) error {
	if err := s.applier.Apply(preset, form); err != nil {
		s.log.Warn("preset application failed", slog.Int64("preset_id", preset.ID), slog.Any("err", err))
		return wrapValidationError(fmt.Sprintf("preset %q cannot be applied", preset.Name), err)
	}
	return nil
}

type RecurringInput struct {
	Mode      domain.RecurringModeID `json:"mode" validate:"required,oneof=DAILY INTERVAL"`
	StartDate time.Time              `json:"startDate" validate:"required"`
	EndDate   time.Time              `json:"endDate" validate:"required"`
	Daily     *DailyInput            `json:"daily,omitempty"`
	Interval  *domain.IntervalFields `json:"interval,omitempty" validate:"-"`
}

type DailyInput struct {
	Days []time.Weekday `json:"days" validate:"dive,min=0,max=6"`
}

// CalculateRecurring expands the timeframe with the selected recurring mode.
// Both instants are interpreted in the service location.
func (s *Service) CalculateRecurring(ctx context.Context, in RecurringInput) (domain.ClosureTimes, error) {
	if err := validateStruct(in); err != nil {
		return domain.ClosureTimes{}, err
	}
	tf := domain.Timeframe{StartDate: in.StartDate.In(s.loc), EndDate: in.EndDate.In(s.loc)}

	var (
		out domain.ClosureTimes
		err error
	)
	switch in.Mode {
	case domain.RecurringModeDaily:
		if in.Daily == nil {
			return domain.ClosureTimes{}, validationError("daily is required")
		}
		out, err = domain.DailyRecurringMode{}.CalculateClosureTimes(domain.CalculateInput[domain.DailyFields]{
			Timeframe:    tf,
			FieldsValues: domain.DailyFields{Days: in.Daily.Days},
		})
	case domain.RecurringModeInterval:
		if in.Interval == nil {
			return domain.ClosureTimes{}, validationError("interval is required")
		}
		out, err = domain.IntervalRecurringMode{}.CalculateClosureTimes(domain.CalculateInput[domain.IntervalFields]{
			Timeframe:    tf,
			FieldsValues: *in.Interval,
		})
	}
	if err != nil {
		return domain.ClosureTimes{}, &ValidationError{msg: err.Error(), cause: err}
	}

	s.log.DebugContext(ctx, "recurring closures calculated",
		slog.String("mode", string(in.Mode)),
		slog.Int("count", len(out.Timeframes)),
	)
	return out, nil
}
