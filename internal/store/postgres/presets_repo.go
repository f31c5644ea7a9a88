package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"closures/backend/internal/domain"
	"closures/backend/internal/store"
)

type presetRecord struct {
	bun.BaseModel `bun:"table:closure_presets"`

	ID             int64           `bun:"id,pk,autoincrement"`
	Name           string          `bun:"name,notnull"`
	Description    string          `bun:"description,notnull"`
	SchemaVersion  int             `bun:"schema_version,notnull"`
	ClosureDetails json.RawMessage `bun:"closure_details,type:jsonb,notnull"`
	CreatedAt      time.Time       `bun:"created_at,notnull"`
	UpdatedAt      time.Time       `bun:"updated_at,notnull"`
}

var _ bun.BeforeAppendModelHook = (*presetRecord)(nil)

func (r *presetRecord) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		if r.UpdatedAt.IsZero() {
			r.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		r.UpdatedAt = now
	}
	return nil
}

func recordFromPreset(p domain.ClosurePreset) (presetRecord, error) {
	version, raw, err := store.EncodeClosureDetails(p.ClosureDetails)
	if err != nil {
		return presetRecord{}, err
	}
	return presetRecord{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		SchemaVersion:  version,
		ClosureDetails: raw,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}, nil
}

func (r presetRecord) toDomain() (domain.ClosurePreset, error) {
	details, err := store.DecodeClosureDetails(r.SchemaVersion, r.ClosureDetails)
	if err != nil {
		return domain.ClosurePreset{}, err
	}
	return domain.ClosurePreset{
		ID:             r.ID,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		Name:           r.Name,
		Description:    r.Description,
		ClosureDetails: details,
	}, nil
}

type PresetRepo struct {
	db *bun.DB
}

func NewPresetRepo(db *bun.DB) *PresetRepo {
	return &PresetRepo{db: db}
}

var _ store.PresetRepository = (*PresetRepo)(nil)

func (r *PresetRepo) Create(ctx context.Context, preset domain.ClosurePreset) (domain.ClosurePreset, error) {
	rec, err := recordFromPreset(preset)
	if err != nil {
		return domain.ClosurePreset{}, err
	}
	rec.ID = 0

	if _, err := r.db.NewInsert().Model(&rec).Returning("*").Exec(ctx); err != nil {
		return domain.ClosurePreset{}, mapPgError(err)
	}
	return rec.toDomain()
}

// Update replaces name, description and closure details of an existing preset.
func (r *PresetRepo) Update(ctx context.Context, preset domain.ClosurePreset) (domain.ClosurePreset, error) {
	rec, err := recordFromPreset(preset)
	if err != nil {
		return domain.ClosurePreset{}, err
	}

	var out presetRecord
	err = r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model(&rec).
			Column("name", "description", "schema_version", "closure_details", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return mapPgError(err)
		}
		if err := requireAffected(res); err != nil {
			return err
		}
		return tx.NewSelect().Model(&out).Where("id = ?", rec.ID).Limit(1).Scan(ctx)
	})
	if err != nil {
		return domain.ClosurePreset{}, err
	}
	return out.toDomain()
}

func (r *PresetRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*presetRecord)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PresetRepo) Get(ctx context.Context, id int64) (domain.ClosurePreset, error) {
	var rec presetRecord
	err := r.db.NewSelect().Model(&rec).Where("id = ?", id).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ClosurePreset{}, store.ErrNotFound
	}
	if err != nil {
		return domain.ClosurePreset{}, err
	}
	return rec.toDomain()
}

// List returns all presets sorted by name. Ties keep creation order.
func (r *PresetRepo) List(ctx context.Context) ([]domain.ClosurePreset, error) {
	var rows []presetRecord
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("name ASC, id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ClosurePreset, 0, len(rows))
	for _, rec := range rows {
		p, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23514" {
		return store.ErrInvalidPreset
	}
	return err
}
