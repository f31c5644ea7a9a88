package closures

import (
	"time"

	"closures/backend/internal/domain"
)

// ClosureDraft is an in-memory closure form. It lets presets be resolved
// without a host editor.
type ClosureDraft struct {
	StartAt     time.Time
	EndAt       time.Time
	Description string
}

var _ domain.ClosureEditorForm = (*ClosureDraft)(nil)

func (d *ClosureDraft) Start() time.Time { return d.StartAt }

func (d *ClosureDraft) SetStart(t time.Time) { d.StartAt = t }

func (d *ClosureDraft) SetEnd(t time.Time) { d.EndAt = t }

func (d *ClosureDraft) SetDescription(s string) { d.Description = s }
