package grpc

import (
	"time"

	"closures/backend/internal/domain"
)

type ListPresetsRequest struct{}

type ListPresetsResponse struct {
	Presets []*domain.ClosurePreset `json:"presets"`
}

type GetPresetRequest struct {
	ID int64 `json:"id"`
}

type GetPresetResponse struct {
	Preset *domain.ClosurePreset `json:"preset"`
}

type CreatePresetRequest struct {
	Name           string                 `json:"name"`
	Description    string                 `json:"description,omitempty"`
	ClosureDetails *domain.ClosureDetails `json:"closureDetails"`
}

type CreatePresetResponse struct {
	Preset *domain.ClosurePreset `json:"preset"`
}

type UpdatePresetRequest struct {
	ID             int64                  `json:"id"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description,omitempty"`
	ClosureDetails *domain.ClosureDetails `json:"closureDetails"`
}

type UpdatePresetResponse struct {
	Preset *domain.ClosurePreset `json:"preset"`
}

type DeletePresetRequest struct {
	ID int64 `json:"id"`
}

type DeletePresetResponse struct{}

type ResolvePresetRequest struct {
	ID int64 `json:"id"`
	// CurrentStart is the start currently shown in the editor, if any.
	CurrentStart *time.Time `json:"currentStart,omitempty"`
}

type ResolvePresetResponse struct {
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

type CalculateRecurringClosuresRequest struct {
	Mode      domain.RecurringModeID `json:"mode"`
	StartDate *time.Time             `json:"startDate"`
	EndDate   *time.Time             `json:"endDate"`
	Days      []time.Weekday         `json:"days,omitempty"`
	Interval  *domain.IntervalFields `json:"interval,omitempty"`
}

type CalculateRecurringClosuresResponse struct {
	Timeframes []domain.Timeframe `json:"timeframes"`
}

type ExportClosuresICSRequest struct {
	Recurring   *CalculateRecurringClosuresRequest `json:"recurring"`
	Summary     string                             `json:"summary,omitempty"`
	Description string                             `json:"description,omitempty"`
}

type ExportClosuresICSResponse struct {
	Calendar string `json:"calendar"`
	Events   int    `json:"events"`
}
