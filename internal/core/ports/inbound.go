package ports

import (
	"context"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
)

// ManualRequest carries the brand context used to generate a manual.
type ManualRequest struct {
	BrandName        string `json:"brand_name"`
	Product          string `json:"product"`
	Tone             string `json:"tone"`
	Audience         string `json:"audience"`
	ExtraConstraints string `json:"extra_constraints,omitempty"`
}

// BrandService manages brands and their visual rules.
type BrandService interface {
	CreateBrand(ctx context.Context, name, description string, profile domain.Profile) (*domain.Brand, error)
	GetBrand(ctx context.Context, id string) (*domain.Brand, error)
	ListBrands(ctx context.Context) ([]domain.Brand, error)
	SetVisualRules(ctx context.Context, brandID string, rules domain.VisualRules) (*domain.VisualRules, error)
	GetVisualRules(ctx context.Context, brandID string) (*domain.VisualRules, error)
}

// ManualBuilder is the inbound contract for manual generation and reads.
type ManualBuilder interface {
	CreateManual(ctx context.Context, brandID string, req ManualRequest) (*domain.ManualRecord, error)
	GetManual(ctx context.Context, manualID string) (*domain.ManualRecord, error)
	GetLatestManual(ctx context.Context, brandID string) (*domain.ManualRecord, error)
}

// ManualIndexer is the inbound contract for asynchronous chunk indexing.
type ManualIndexer interface {
	IndexByID(ctx context.Context, manualID string) error
}

type GenerateRequest struct {
	BrandID string             `json:"brand_id"`
	Type    domain.ContentType `json:"type"`
	Brief   string             `json:"brief"`
}

// ContentGenerator is the inbound contract for the RAG generation flow.
type ContentGenerator interface {
	Generate(ctx context.Context, req GenerateRequest, profile domain.Profile) (*domain.ContentItem, error)
	GetContent(ctx context.Context, contentID string) (*domain.ContentItem, error)
}

// GovernanceService tracks the content approval lifecycle.
type GovernanceService interface {
	Approve(ctx context.Context, contentID, comment string, profile domain.Profile) (*domain.ContentItem, error)
	Reject(ctx context.Context, contentID, comment string, profile domain.Profile) (*domain.ContentItem, error)
	Inbox(ctx context.Context, profile domain.Profile) ([]domain.ContentItem, error)
}

// ImageAuditor runs the multimodal compliance audit flows.
type ImageAuditor interface {
	AuditBrandImage(ctx context.Context, brandID, filename, mimeType string, image []byte, profile domain.Profile) (*domain.AuditReport, error)
	AuditContentImage(ctx context.Context, contentID, filename, mimeType string, image []byte, profile domain.Profile) (*domain.AuditReport, error)
	ListByBrand(ctx context.Context, brandID string, limit int) ([]domain.AuditReport, error)
}
