package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"closures/backend/internal/domain"
	"closures/backend/internal/ics"
	closuresvc "closures/backend/internal/service/closures"
	"closures/backend/internal/store"
)

type ClosuresServer struct {
	svc closuresService
	log *slog.Logger
	now func() time.Time
}

var _ ClosuresServiceServer = (*ClosuresServer)(nil)

type closuresService interface {
	ListPresets(ctx context.Context) ([]domain.ClosurePreset, error)
	GetPreset(ctx context.Context, id int64) (domain.ClosurePreset, error)
	CreatePreset(ctx context.Context, in closuresvc.PresetInput) (domain.ClosurePreset, error)
	UpdatePreset(ctx context.Context, id int64, in closuresvc.PresetInput) (domain.ClosurePreset, error)
	DeletePreset(ctx context.Context, id int64) error
	ResolvePreset(ctx context.Context, id int64, currentStart time.Time) (closuresvc.Resolution, error)
	CalculateRecurring(ctx context.Context, in closuresvc.RecurringInput) (domain.ClosureTimes, error)
}

func NewClosuresServer(svc closuresService, log *slog.Logger) *ClosuresServer {
	if log == nil {
		log = slog.Default()
	}
	return &ClosuresServer{
		svc: svc,
		log: log.With(slog.String("component", "grpc.closures")),
		now: time.Now,
	}
}

func (s *ClosuresServer) rpcLog(ctx context.Context, rpc string) *slog.Logger {
	log := s.log.With(slog.String("rpc", rpc))
	if id := RequestIDFromContext(ctx); id != "" {
		log = log.With(slog.String("request_id", id))
	}
	return log
}

// toStatus maps service and store errors onto gRPC codes. Unknown errors are
// logged and hidden behind codes.Internal.
func toStatus(log *slog.Logger, err error, failure string, attrs ...any) error {
	var vErr *closuresvc.ValidationError
	switch {
	case errors.As(err, &vErr):
		log.Warn("invalid request", append([]any{slog.Any("err", err)}, attrs...)...)
		return status.Error(codes.InvalidArgument, vErr.Error())
	case errors.Is(err, store.ErrNotFound):
		log.Info("preset not found", attrs...)
		return status.Error(codes.NotFound, "preset not found")
	case errors.Is(err, store.ErrInvalidPreset):
		log.Warn("preset rejected by store", append([]any{slog.Any("err", err)}, attrs...)...)
		return status.Error(codes.InvalidArgument, "preset is invalid")
	case errors.Is(err, store.ErrUnsupportedSchemaVersion):
		log.Error("preset stored with unsupported schema", append([]any{slog.Any("err", err)}, attrs...)...)
		return status.Error(codes.FailedPrecondition, "preset was saved by a newer version and cannot be read")
	case errors.Is(err, context.DeadlineExceeded):
		log.Warn(failure, append([]any{slog.Any("err", err)}, attrs...)...)
		return status.Error(codes.DeadlineExceeded, "request timed out")
	default:
		log.Error(failure, append([]any{slog.Any("err", err)}, attrs...)...)
		return status.Error(codes.Internal, "internal error")
	}
}

func (s *ClosuresServer) ListPresets(ctx context.Context, req *ListPresetsRequest) (*ListPresetsResponse, error) {
	log := s.rpcLog(ctx, "ListPresets")

	presets, err := s.svc.ListPresets(ctx)
	if err != nil {
		return nil, toStatus(log, err, "presets list failed")
	}

	out := make([]*domain.ClosurePreset, 0, len(presets))
	for i := range presets {
		out = append(out, &presets[i])
	}
	log.Debug("presets listed", slog.Int("count", len(out)))
	return &ListPresetsResponse{Presets: out}, nil
}

func (s *ClosuresServer) GetPreset(ctx context.Context, req *GetPresetRequest) (*GetPresetResponse, error) {
	log := s.rpcLog(ctx, "GetPreset")

	if req == nil {
		log.Warn("invalid request", slog.String("reason", "nil_request"))
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	p, err := s.svc.GetPreset(ctx, req.ID)
	if err != nil {
		return nil, toStatus(log, err, "preset get failed", slog.Int64("preset_id", req.ID))
	}
	return &GetPresetResponse{Preset: &p}, nil
}

func (s *ClosuresServer) CreatePreset(ctx context.Context, req *CreatePresetRequest) (*CreatePresetResponse, error) {
	log := s.rpcLog(ctx, "CreatePreset")

	if req == nil {
		log.Warn("invalid request", slog.String("reason", "nil_request"))
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if req.ClosureDetails == nil {
		log.Warn("invalid request", slog.String("reason", "missing_closure_details"))
		return nil, status.Error(codes.InvalidArgument, "closureDetails is required")
	}

	p, err := s.svc.CreatePreset(ctx, closuresvc.PresetInput{
		Name:           req.Name,
		Description:    req.Description,
		ClosureDetails: *req.ClosureDetails,
	})
	if err != nil {
		return nil, toStatus(log, err, "preset create failed", slog.String("preset_name", req.Name))
	}

	log.Info("preset created", slog.Int64("preset_id", p.ID), slog.String("preset_name", p.Name))
	return &CreatePresetResponse{Preset: &p}, nil
}

func (s *ClosuresServer) UpdatePreset(ctx context.Context, req *UpdatePresetRequest) (*UpdatePresetResponse, error) {
	log := s.rpcLog(ctx, "UpdatePreset")

	if req == nil {
		log.Warn("invalid request", slog.String("reason", "nil_request"))
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if req.ClosureDetails == nil {
		log.Warn("invalid request", slog.String("reason", "missing_closure_details"), slog.Int64("preset_id", req.ID))
		return nil, status.Error(codes.InvalidArgument, "closureDetails is required")
	}

	p, err := s.svc.UpdatePreset(ctx, req.ID, closuresvc.PresetInput{
		Name:           req.Name,
		Description:    req.Description,
		ClosureDetails: *req.ClosureDetails,
	})
	if err != nil {
		return nil, toStatus(log, err, "preset update failed", slog.Int64("preset_id", req.ID))
	}

	log.Info("preset updated", slog.Int64("preset_id", p.ID))
	return &UpdatePresetResponse{Preset: &p}, nil
}

func (s *ClosuresServer) DeletePreset(ctx context.Context, req *DeletePresetRequest) (*DeletePresetResponse, error) {
	log := s.rpcLog(ctx, "DeletePreset")

	if req == nil {
		log.Warn("invalid request", slog.String("reason", "nil_request"))
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if err := s.svc.DeletePreset(ctx, req.ID); err != nil {
		return nil, toStatus(log, err, "preset delete failed", slog.Int64("preset_id", req.ID))
	}

	log.Info("preset deleted", slog.Int64("preset_id", req.ID))
	return &DeletePresetResponse{}, nil
}

func (s *ClosuresServer) ResolvePreset(ctx context.Context, req *ResolvePresetRequest) (*ResolvePresetResponse, error) {
	log := s.rpcLog(ctx, "ResolvePreset")

	if req == nil {
		log.Warn("invalid request", slog.String("reason", "nil_request"))
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	var current time.Time
	if req.CurrentStart != nil {
		current = *req.CurrentStart
	}

	res, err := s.svc.ResolvePreset(ctx, req.ID, current)
	if err != nil {
		return nil, toStatus(log, err, "preset resolve failed", slog.Int64("preset_id", req.ID))
	}

	log.Debug("preset resolved",
		slog.Int64("preset_id", req.ID),
		slog.Time("start", res.Start),
		slog.Time("end", res.End),
	)
	return &ResolvePresetResponse{Description: res.Description, Start: res.Start, End: res.End}, nil
}

func recurringInput(req *CalculateRecurringClosuresRequest) (closuresvc.RecurringInput, error) {
	if req == nil {
		return closuresvc.RecurringInput{}, status.Error(codes.InvalidArgument, "recurring settings are required")
	}
	if req.StartDate == nil || req.EndDate == nil {
		return closuresvc.RecurringInput{}, status.Error(codes.InvalidArgument, "startDate and endDate are required")
	}
	in := closuresvc.RecurringInput{
		Mode:      req.Mode,
		StartDate: *req.StartDate,
		EndDate:   *req.EndDate,
		Interval:  req.Interval,
	}
	if req.Mode == domain.RecurringModeDaily {
		in.Daily = &closuresvc.DailyInput{Days: req.Days}
	}
	return in, nil
}

func (s *ClosuresServer) CalculateRecurringClosures(ctx context.Context, req *CalculateRecurringClosuresRequest) (*CalculateRecurringClosuresResponse, error) {
	log := s.rpcLog(ctx, "CalculateRecurringClosures")

	in, err := recurringInput(req)
	if err != nil {
		log.Warn("invalid request", slog.Any("err", err))
		return nil, err
	}
	times, err := s.svc.CalculateRecurring(ctx, in)
	if err != nil {
		return nil, toStatus(log, err, "recurring closures failed", slog.String("mode", string(in.Mode)))
	}

	out := times.Timeframes
	if out == nil {
		out = []domain.Timeframe{}
	}
	return &CalculateRecurringClosuresResponse{Timeframes: out}, nil
}

func (s *ClosuresServer) ExportClosuresICS(ctx context.Context, req *ExportClosuresICSRequest) (*ExportClosuresICSResponse, error) {
	log := s.rpcLog(ctx, "ExportClosuresICS")

	if req == nil {
		log.Warn("invalid request", slog.String("reason", "nil_request"))
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	in, err := recurringInput(req.Recurring)
	if err != nil {
		log.Warn("invalid request", slog.Any("err", err))
		return nil, err
	}
	times, err := s.svc.CalculateRecurring(ctx, in)
	if err != nil {
		return nil, toStatus(log, err, "recurring closures failed", slog.String("mode", string(in.Mode)))
	}
	if len(times.Timeframes) == 0 {
		log.Info("nothing to export", slog.String("mode", string(in.Mode)))
		return nil, status.Error(codes.FailedPrecondition, "recurring settings produce no closures")
	}

	cal, err := ics.Export(times.Timeframes, ics.ExportOptions{
		Summary:     req.Summary,
		Description: req.Description,
		Now:         s.now(),
	})
	if err != nil {
		return nil, toStatus(log, err, "ics export failed")
	}

	log.Info("closures exported", slog.Int("events", len(times.Timeframes)))
	return &ExportClosuresICSResponse{Calendar: string(cal), Events: len(times.Timeframes)}, nil
}
