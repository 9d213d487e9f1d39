package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
	"github.com/dmoralesf/brand-guardian/internal/core/ports"
)

const brandListLimit = 50

// BrandUseCase manages brands and their user-defined visual rules.
type BrandUseCase struct {
	brands ports.BrandRepository
}

func NewBrandUseCase(brands ports.BrandRepository) *BrandUseCase {
	return &BrandUseCase{brands: brands}
}

func (uc *BrandUseCase) CreateBrand(ctx context.Context, name, description string, profile domain.Profile) (*domain.Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.WrapError(domain.ErrValidation, "create brand", fmt.Errorf("name is required"))
	}
	brand := &domain.Brand{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedBy:   profile.ID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.brands.CreateBrand(ctx, brand); err != nil {
		return nil, fmt.Errorf("persist brand: %w", err)
	}
	return brand, nil
}

func (uc *BrandUseCase) GetBrand(ctx context.Context, id string) (*domain.Brand, error) {
	brand, err := uc.brands.GetBrand(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch brand: %w", err)
	}
	return brand, nil
}

func (uc *BrandUseCase) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	brands, err := uc.brands.ListBrands(ctx, brandListLimit)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	if brands == nil {
		brands = []domain.Brand{}
	}
	return brands, nil
}

// SetVisualRules replaces the brand's visual rule set. Unset fields fall
// back to defaults so the manual generator always has a complete source.
func (uc *BrandUseCase) SetVisualRules(ctx context.Context, brandID string, rules domain.VisualRules) (*domain.VisualRules, error) {
	if _, err := uc.brands.GetBrand(ctx, brandID); err != nil {
		return nil, fmt.Errorf("fetch brand: %w", err)
	}
	rules.BrandID = brandID
	rules.EnsureDefaults()
	rules.UpdatedAt = time.Now().UTC()
	if err := uc.brands.UpsertVisualRules(ctx, &rules); err != nil {
		return nil, fmt.Errorf("persist visual rules: %w", err)
	}
	return &rules, nil
}

func (uc *BrandUseCase) GetVisualRules(ctx context.Context, brandID string) (*domain.VisualRules, error) {
	rules, err := uc.brands.GetVisualRules(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("fetch visual rules: %w", err)
	}
	return rules, nil
}
