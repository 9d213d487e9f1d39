package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
)

type ManualRepository struct {
	db *sql.DB
}

func NewManualRepository(db *sql.DB) *ManualRepository {
	return &ManualRepository{db: db}
}

func (r *ManualRepository) InsertManual(ctx context.Context, record *domain.ManualRecord) error {
	manualJSON, err := json.Marshal(record.Manual)
	if err != nil {
		return fmt.Errorf("marshal manual: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO brand_manuals (id, brand_id, manual, version, created_at)
VALUES ($1,$2,$3,$4,$5)
`, record.ID, record.BrandID, manualJSON, record.Version, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert manual: %w", err)
	}
	return nil
}

func (r *ManualRepository) GetManualByID(ctx context.Context, id string) (*domain.ManualRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, brand_id, manual, version, created_at
FROM brand_manuals
WHERE id = $1
`, id)

	record, err := scanManual(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get manual", fmt.Errorf("id=%s", id))
		}
		return nil, err
	}
	return record, nil
}

func (r *ManualRepository) GetLatestManual(ctx context.Context, brandID string) (*domain.ManualRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, brand_id, manual, version, created_at
FROM brand_manuals
WHERE brand_id = $1
ORDER BY version DESC
LIMIT 1
`, brandID)

	record, err := scanManual(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNoManual, "get latest manual", fmt.Errorf("brand_id=%s", brandID))
		}
		return nil, err
	}
	return record, nil
}

func scanManual(row *sql.Row) (*domain.ManualRecord, error) {
	var record domain.ManualRecord
	var manualRaw []byte

	err := row.Scan(&record.ID, &record.BrandID, &manualRaw, &record.Version, &record.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(manualRaw, &record.Manual); err != nil {
		return nil, fmt.Errorf("unmarshal manual: %w", err)
	}
	return &record, nil
}
