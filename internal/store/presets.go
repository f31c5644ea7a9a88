package store

import (
	"context"

	"closures/backend/internal/domain"
)

// PresetRepository persists closure presets. Ids and timestamps are assigned
// by the repository; List returns presets ordered by name.
type PresetRepository interface {
	Create(ctx context.Context, preset domain.ClosurePreset) (domain.ClosurePreset, error)
	Update(ctx context.Context, preset domain.ClosurePreset) (domain.ClosurePreset, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (domain.ClosurePreset, error)
	List(ctx context.Context) ([]domain.ClosurePreset, error)
}
