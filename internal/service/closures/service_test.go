package closures

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"closures/backend/internal/domain"
	"closures/backend/internal/store"
)

type fakeRepo struct {
	createFn func(ctx context.Context, preset domain.ClosurePreset) (domain.ClosurePreset, error)
	updateFn func(ctx context.Context, preset domain.ClosurePreset) (domain.ClosurePreset, error)
	deleteFn func(ctx context.Context, id int64) error
	getFn    func(ctx context.Context, id int64) (domain.ClosurePreset, error)
	listFn   func(ctx context.Context) ([]domain.ClosurePreset, error)
}

func (f *fakeRepo) Create(ctx context.Context, preset domain.ClosurePreset) (domain.ClosurePreset, error) {
	if f.createFn == nil {
		panic("Create not configured")
	}
	return f.createFn(ctx, preset)
}

func (f *fakeRepo) Update(ctx context.Context, preset domain.ClosurePreset) (domain.ClosurePreset, error) {
	if f.updateFn == nil {
		panic("Update not configured")
	}
	return f.updateFn(ctx, preset)
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteFn == nil {
		panic("Delete not configured")
	}
	return f.deleteFn(ctx, id)
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (domain.ClosurePreset, error) {
	if f.getFn == nil {
		panic("Get not configured")
	}
	return f.getFn(ctx, id)
}

func (f *fakeRepo) List(ctx context.Context) ([]domain.ClosurePreset, error) {
	if f.listFn == nil {
		panic("List not configured")
	}
	return f.listFn(ctx)
}

func fixedService(t *testing.T, repo store.PresetRepository, now time.Time) *Service {
	t.Helper()
	return NewService(repo, Options{Location: now.Location(), Clock: domain.FixedClock(now)})
}

func durational(h, m int, r domain.RoundTo) domain.ClosureDetails {
	return domain.ClosureDetails{End: domain.DurationalEnd(domain.HourMinute{Hours: h, Minutes: m}, r)}
}

func TestServiceCreatePreset_ValidationErrorType(t *testing.T) {
	svc := NewService(&fakeRepo{}, Options{})

	tests := []struct {
		name string
		in   PresetInput
		want string
	}{
		{name: "blank name", in: PresetInput{Name: "   ", ClosureDetails: durational(1, 0, "")}, want: "name is required"},
		{name: "long name", in: PresetInput{Name: strings.Repeat("x", 101), ClosureDetails: durational(1, 0, "")}, want: "name must be at most 100 characters"},
		{name: "bad end", in: PresetInput{Name: "x", ClosureDetails: domain.ClosureDetails{End: domain.ClosureEnd{Type: "OPEN_ENDED"}}}},
		{name: "bad start time", in: PresetInput{Name: "x", ClosureDetails: domain.ClosureDetails{
			StartTime: &domain.HourMinute{Hours: 24},
			End:       domain.DurationalEnd(domain.HourMinute{Hours: 1}, ""),
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePreset(context.Background(), tt.in)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("error type = %T (%v), want *ValidationError", err, err)
			}
			if tt.want != "" && vErr.Error() != tt.want {
				t.Fatalf("error = %q, want %q", vErr.Error(), tt.want)
			}
		})
	}
}

func TestServiceCreatePreset_TrimsAndDefaultsRounding(t *testing.T) {
	var got domain.ClosurePreset
	svc := NewService(&fakeRepo{
		createFn: func(ctx context.Context, preset domain.ClosurePreset) (domain.ClosurePreset, error) {
			got = preset
			preset.ID = 1
			return preset, nil
		},
	}, Options{})

	out, err := svc.CreatePreset(context.Background(), PresetInput{
		Name:           "  Lunch closure ",
		ClosureDetails: durational(1, 0, ""),
	})
	if err != nil {
		t.Fatalf("CreatePreset error: %v", err)
	}
	if out.ID != 1 {
		t.Fatalf("id = %d, want 1", out.ID)
	}
	if got.Name != "Lunch closure" {
		t.Fatalf("name = %q, want %q", got.Name, "Lunch closure")
	}
	if got.ClosureDetails.End.RoundTo != domain.RoundNone {
		t.Fatalf("roundTo = %q, want NONE", got.ClosureDetails.End.RoundTo)
	}
}

func TestServiceUpdatePreset_PassesIDAndStoreErrors(t *testing.T) {
	svc := NewService(&fakeRepo{
		updateFn: func(ctx context.Context, preset domain.ClosurePreset) (domain.ClosurePreset, error) {
			if preset.ID != 9 {
				t.Fatalf("id = %d, want 9", preset.ID)
			}
			return domain.ClosurePreset{}, store.ErrNotFound
		},
	}, Options{})

	_, err := svc.UpdatePreset(context.Background(), 9, PresetInput{Name: "x", ClosureDetails: durational(0, 30, "")})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	var vErr *ValidationError
	if _, err := svc.UpdatePreset(context.Background(), 0, PresetInput{Name: "x"}); !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if err := svc.DeletePreset(context.Background(), -1); !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
}

func TestServiceResolvePreset_Durational(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("LoadLocation error: %v", err)
	}
	now := time.Date(2025, 4, 17, 8, 0, 0, 0, loc)

	svc := fixedService(t, &fakeRepo{
		getFn: func(ctx context.Context, id int64) (domain.ClosurePreset, error) {
			details := durational(1, 37, domain.Round15Minutes)
			details.StartTime = &domain.HourMinute{Hours: 10, Minutes: 8}
			details.Description = "roadworks"
			return domain.ClosurePreset{ID: id, Name: "p", ClosureDetails: details}, nil
		},
	}, now)

	current := time.Date(2025, 5, 2, 6, 0, 0, 0, time.UTC)
	res, err := svc.ResolvePreset(context.Background(), 4, current)
	if err != nil {
		t.Fatalf("ResolvePreset error: %v", err)
	}

	wantStart := time.Date(2025, 5, 2, 10, 8, 0, 0, loc)
	wantEnd := time.Date(2025, 5, 2, 11, 45, 0, 0, loc)
	if !res.Start.Equal(wantStart) || !res.End.Equal(wantEnd) {
		t.Fatalf("resolved %v - %v, want %v - %v", res.Start, res.End, wantStart, wantEnd)
	}
	if res.Description != "roadworks" || res.PresetID != 4 {
		t.Fatalf("resolution = %+v", res)
	}
}

func TestServiceResolvePreset_NoCurrentStartUsesClockDate(t *testing.T) {
	now := time.Date(2025, 4, 17, 13, 0, 0, 0, time.UTC)
	svc := fixedService(t, &fakeRepo{
		getFn: func(ctx context.Context, id int64) (domain.ClosurePreset, error) {
			details := domain.ClosureDetails{
				StartTime: &domain.HourMinute{Hours: 22},
				End:       domain.FixedEnd(domain.HourMinute{Hours: 5}, 0, domain.RoundNone),
			}
			return domain.ClosurePreset{ID: id, ClosureDetails: details}, nil
		},
	}, now)

	res, err := svc.ResolvePreset(context.Background(), 1, time.Time{})
	if err != nil {
		t.Fatalf("ResolvePreset error: %v", err)
	}
	if want := time.Date(2025, 4, 17, 22, 0, 0, 0, time.UTC); !res.Start.Equal(want) {
		t.Fatalf("start = %v, want %v", res.Start, want)
	}
	if want := time.Date(2025, 4, 18, 5, 0, 0, 0, time.UTC); !res.End.Equal(want) {
		t.Fatalf("end = %v, want %v", res.End, want)
	}
}

func TestServiceApplyPreset_FailureLeavesFormUntouched(t *testing.T) {
	now := time.Date(2025, 4, 17, 13, 0, 0, 0, time.UTC)
	svc := fixedService(t, &fakeRepo{
		getFn: func(ctx context.Context, id int64) (domain.ClosurePreset, error) {
			return domain.ClosurePreset{ID: id, Name: "broken", ClosureDetails: domain.ClosureDetails{
				End: domain.ClosureEnd{Type: "SOMETIME"},
			}}, nil
		},
	}, now)

	start := time.Date(2025, 4, 20, 9, 0, 0, 0, time.UTC)
	draft := &ClosureDraft{StartAt: start}
	err := svc.ApplyPreset(context.Background(), 2, draft)

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if !errors.Is(err, domain.ErrUnsupportedEndType) {
		t.Fatalf("err = %v, want it to wrap ErrUnsupportedEndType", err)
	}
	if !draft.StartAt.Equal(start) || !draft.EndAt.IsZero() || draft.Description != "" {
		t.Fatalf("draft mutated: %+v", draft)
	}
}

func TestServiceApplyPreset_NotFound(t *testing.T) {
	svc := NewService(&fakeRepo{
		getFn: func(ctx context.Context, id int64) (domain.ClosurePreset, error) {
			return domain.ClosurePreset{}, store.ErrNotFound
		},
	}, Options{})

	if err := svc.ApplyPreset(context.Background(), 3, &ClosureDraft{}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestServiceCalculateRecurring_Daily(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation error: %v", err)
	}
	svc := NewService(&fakeRepo{}, Options{Location: loc})

	out, err := svc.CalculateRecurring(context.Background(), RecurringInput{
		Mode:      domain.RecurringModeDaily,
		StartDate: time.Date(2025, 1, 6, 9, 0, 0, 0, loc).UTC(),
		EndDate:   time.Date(2025, 1, 10, 17, 0, 0, 0, loc).UTC(),
		Daily:     &DailyInput{Days: []time.Weekday{time.Monday, time.Wednesday}},
	})
	if err != nil {
		t.Fatalf("CalculateRecurring error: %v", err)
	}
	if len(out.Timeframes) != 2 {
		t.Fatalf("len(timeframes) = %d, want 2", len(out.Timeframes))
	}
	wed := out.Timeframes[1]
	if !wed.StartDate.Equal(time.Date(2025, 1, 8, 9, 0, 0, 0, loc)) || !wed.EndDate.Equal(time.Date(2025, 1, 8, 17, 0, 0, 0, loc)) {
		t.Fatalf("wednesday = %v - %v", wed.StartDate, wed.EndDate)
	}
}

func TestServiceCalculateRecurring_Interval(t *testing.T) {
	svc := NewService(&fakeRepo{}, Options{Location: time.UTC})
	d, i := 10, 60

	out, err := svc.CalculateRecurring(context.Background(), RecurringInput{
		Mode:      domain.RecurringModeInterval,
		StartDate: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		Interval:  &domain.IntervalFields{ClosureDuration: &d, IntervalBetweenClosures: &i},
	})
	if err != nil {
		t.Fatalf("CalculateRecurring error: %v", err)
	}
	if len(out.Timeframes) != 3 {
		t.Fatalf("len(timeframes) = %d, want 3", len(out.Timeframes))
	}
}

func TestServiceCalculateRecurring_Errors(t *testing.T) {
	svc := NewService(&fakeRepo{}, Options{Location: time.UTC})
	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Hour)
	zero := 0

	tests := []struct {
		name string
		in   RecurringInput
		want string
	}{
		{name: "missing mode", in: RecurringInput{StartDate: start, EndDate: end}, want: "mode is required"},
		{name: "unknown mode", in: RecurringInput{Mode: "WEEKLY", StartDate: start, EndDate: end}, want: "mode must be one of DAILY, INTERVAL"},
		{name: "daily without fields", in: RecurringInput{Mode: domain.RecurringModeDaily, StartDate: start, EndDate: end}, want: "daily is required"},
		{name: "bad weekday", in: RecurringInput{Mode: domain.RecurringModeDaily, StartDate: start, EndDate: end, Daily: &DailyInput{Days: []time.Weekday{7}}}},
		{name: "interval without fields", in: RecurringInput{Mode: domain.RecurringModeInterval, StartDate: start, EndDate: end}, want: "interval is required"},
		{name: "zero duration", in: RecurringInput{Mode: domain.RecurringModeInterval, StartDate: start, EndDate: end, Interval: &domain.IntervalFields{ClosureDuration: &zero, IntervalBetweenClosures: &zero}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CalculateRecurring(context.Background(), tt.in)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if tt.want != "" && vErr.Error() != tt.want {
				t.Fatalf("error = %q, want %q", vErr.Error(), tt.want)
			}
		})
	}
}

func TestServiceCalculateRecurring_DegenerateRangeIsEmpty(t *testing.T) {
	svc := NewService(&fakeRepo{}, Options{Location: time.UTC})
	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	out, err := svc.CalculateRecurring(context.Background(), RecurringInput{
		Mode:      domain.RecurringModeDaily,
		StartDate: start,
		EndDate:   start.Add(-time.Hour),
		Daily:     &DailyInput{Days: []time.Weekday{time.Wednesday}},
	})
	if err != nil {
		t.Fatalf("CalculateRecurring error: %v", err)
	}
	if len(out.Timeframes) != 0 {
		t.Fatalf("len(timeframes) = %d, want 0", len(out.Timeframes))
	}
}

func TestServiceResolvePreset_KeepsResolverErrorChain(t *testing.T) {
	now := time.Date(2025, 4, 17, 13, 0, 0, 0, time.UTC)
	svc := fixedService(t, &fakeRepo{
		getFn: func(ctx context.Context, id int64) (domain.ClosurePreset, error) {
			return domain.ClosurePreset{ID: id, Name: "moon", ClosureDetails: domain.ClosureDetails{
				StartDate: &domain.SerializedDateResolver{Type: "FULL_MOON"},
				End:       domain.DurationalEnd(domain.HourMinute{Hours: 1}, domain.RoundNone),
			}}, nil
		},
	}, now)

	_, err := svc.ResolvePreset(context.Background(), 4, time.Time{})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if !errors.Is(err, domain.ErrUnknownDateResolver) {
		t.Fatalf("err = %v, want it to wrap ErrUnknownDateResolver", err)
	}
	if !strings.Contains(err.Error(), `preset "moon" cannot be applied`) {
		t.Fatalf("message = %q", err.Error())
	}
}
