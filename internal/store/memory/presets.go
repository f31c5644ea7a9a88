// Package memory holds presets in process memory. The CLI uses it to resolve
// presets loaded from a file without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"closures/backend/internal/domain"
	"closures/backend/internal/store"
)

type PresetRepo struct {
	mu      sync.RWMutex
	nextID  int64
	presets map[int64]domain.ClosurePreset
	now     func() time.Time
}

var _ store.PresetRepository = (*PresetRepo)(nil)

func NewPresetRepo() *PresetRepo {
	return &PresetRepo{
		presets: make(map[int64]domain.ClosurePreset),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *PresetRepo) Create(ctx context.Context, preset domain.ClosurePreset) (domain.ClosurePreset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := r.now()
	preset.ID = r.nextID
	preset.CreatedAt = now
	preset.UpdatedAt = now
	r.presets[preset.ID] = preset
	return preset, nil
}

func (r *PresetRepo) Update(ctx context.Context, preset domain.ClosurePreset) (domain.ClosurePreset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.presets[preset.ID]
	if !ok {
		return domain.ClosurePreset{}, store.ErrNotFound
	}
	preset.CreatedAt = existing.CreatedAt
	preset.UpdatedAt = r.now()
	r.presets[preset.ID] = preset
	return preset, nil
}

func (r *PresetRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.presets[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.presets, id)
	return nil
}

func (r *PresetRepo) Get(ctx context.Context, id int64) (domain.ClosurePreset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.presets[id]
	if !ok {
		return domain.ClosurePreset{}, store.ErrNotFound
	}
	return p, nil
}

func (r *PresetRepo) List(ctx context.Context) ([]domain.ClosurePreset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.ClosurePreset, 0, len(r.presets))
	for _, p := range r.presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// FindByName returns the first preset, in List order, named name.
func (r *PresetRepo) FindByName(ctx context.Context, name string) (domain.ClosurePreset, error) {
	all, err := r.List(ctx)
	if err != nil {
		return domain.ClosurePreset{}, err
	}
	for _, p := range all {
		if p.Name == name {
			return p, nil
		}
	}
	return domain.ClosurePreset{}, store.ErrNotFound
}
