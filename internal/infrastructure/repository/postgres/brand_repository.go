package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
)

type BrandRepository struct {
	db *sql.DB
}

func NewBrandRepository(db *sql.DB) *BrandRepository {
	return &BrandRepository{db: db}
}

func (r *BrandRepository) CreateBrand(ctx context.Context, brand *domain.Brand) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO brands (id, name, description, created_by, created_at)
VALUES ($1,$2,$3,$4,$5)
`, brand.ID, brand.Name, brand.Description, brand.CreatedBy, brand.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert brand: %w", err)
	}
	return nil
}

func (r *BrandRepository) GetBrand(ctx context.Context, id string) (*domain.Brand, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, description, created_by, created_at
FROM brands
WHERE id = $1
`, id)

	var brand domain.Brand
	err := row.Scan(&brand.ID, &brand.Name, &brand.Description, &brand.CreatedBy, &brand.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get brand", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("scan brand: %w", err)
	}
	return &brand, nil
}

func (r *BrandRepository) ListBrands(ctx context.Context, limit int) ([]domain.Brand, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, description, created_by, created_at
FROM brands
ORDER BY created_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query brands: %w", err)
	}
	defer rows.Close()

	var brands []domain.Brand
	for rows.Next() {
		var brand domain.Brand
		if err := rows.Scan(&brand.ID, &brand.Name, &brand.Description, &brand.CreatedBy, &brand.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		brands = append(brands, brand)
	}
	return brands, rows.Err()
}

func (r *BrandRepository) GetVisualRules(ctx context.Context, brandID string) (*domain.VisualRules, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT brand_id, colors, logo_rules, typography, image_style, notes, updated_at
FROM brand_visual_rules
WHERE brand_id = $1
`, brandID)

	var (
		rules     domain.VisualRules
		colorsRaw []byte
		logoRaw   []byte
		typoRaw   []byte
		imageRaw  []byte
	)
	err := row.Scan(&rules.BrandID, &colorsRaw, &logoRaw, &typoRaw, &imageRaw, &rules.Notes, &rules.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// A brand without stored rules still has (empty) rules; the
			// manual generator relies on that.
			rules = domain.VisualRules{BrandID: brandID}
			rules.EnsureDefaults()
			return &rules, nil
		}
		return nil, fmt.Errorf("scan visual rules: %w", err)
	}

	for _, pair := range []struct {
		raw []byte
		dst *[]string
	}{
		{colorsRaw, &rules.Colors},
		{logoRaw, &rules.LogoRules},
		{typoRaw, &rules.Typography},
		{imageRaw, &rules.ImageStyle},
	} {
		if err := json.Unmarshal(pair.raw, pair.dst); err != nil {
			return nil, fmt.Errorf("unmarshal visual rules: %w", err)
		}
	}
	rules.EnsureDefaults()
	return &rules, nil
}

func (r *BrandRepository) UpsertVisualRules(ctx context.Context, rules *domain.VisualRules) error {
	colorsJSON, err := json.Marshal(rules.Colors)
	if err != nil {
		return fmt.Errorf("marshal colors: %w", err)
	}
	logoJSON, err := json.Marshal(rules.LogoRules)
	if err != nil {
		return fmt.Errorf("marshal logo rules: %w", err)
	}
	typoJSON, err := json.Marshal(rules.Typography)
	if err != nil {
		return fmt.Errorf("marshal typography: %w", err)
	}
	imageJSON, err := json.Marshal(rules.ImageStyle)
	if err != nil {
		return fmt.Errorf("marshal image style: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO brand_visual_rules (brand_id, colors, logo_rules, typography, image_style, notes, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (brand_id) DO UPDATE SET
	colors = EXCLUDED.colors,
	logo_rules = EXCLUDED.logo_rules,
	typography = EXCLUDED.typography,
	image_style = EXCLUDED.image_style,
	notes = EXCLUDED.notes,
	updated_at = EXCLUDED.updated_at
`, rules.BrandID, colorsJSON, logoJSON, typoJSON, imageJSON, rules.Notes, rules.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert visual rules: %w", err)
	}
	return nil
}
